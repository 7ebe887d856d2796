// Copyright 2025 The WordServe Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package main implements the wordtree spelling server and CLI [DBG] application.

WordTree keeps a word list in an ordered tree compared with locale-aware
collation. It checks words, suggests words sharing a prefix and learns new
words, appending them to the word list file so they survive a restart.
It can operate as a MessagePack IPC server for integration with editors, as
an HTTP JSON API for the browser UI, or as a CLI for testing and debugging.

# Usage

Start the IPC server with default settings:

	wordtree

Serve the HTTP API as well, with a custom word list and debug logs:

	wordtree -http :8080 -dict /path/to/words.txt -d

Run in CLI mode, interactively or for a single command:

	wordtree -c
	wordtree -c add zebra
	wordtree -c -method trie suggest ap 5

# Configuration

Runtime configuration is a TOML file in the user config directory, created
with defaults when missing:

	[server]
	default_limit = 10
	max_limit = 64
	default_method = "bst"
	http_addr = ""

	[dict]
	path = "dictionary.txt"
	persist = true
	locale = "en"

Flags override the file.

# Methods

Two backends answer every request: "bst", the collation ordered tree, and
"trie", a patricia trie. Both hold the same words; requests pick one with the
method field and default to default_method. "hashmap", which the browser UI
sends, is accepted as another name for "trie".

# Command Line Flags

	-version     Show current version
	-d           Enable debug mode with detailed logging
	-c           Run in CLI mode instead of server mode
	-config      Path to a config file
	-dict        Word list file
	-limit       Number of suggestions to return
	-method      Default backend, bst or trie
	-http        Address for the HTTP API, empty to disable
	-no-persist  Keep added words in memory only
	-no-filter   Disable CLI input filtering
*/
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/bastiangx/wordtree/internal/cli"
	"github.com/bastiangx/wordtree/internal/logger"
	"github.com/bastiangx/wordtree/internal/utils"
	"github.com/bastiangx/wordtree/pkg/config"
	"github.com/bastiangx/wordtree/pkg/dictionary"
	"github.com/bastiangx/wordtree/pkg/server"
	"github.com/bastiangx/wordtree/pkg/suggest"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

const (
	Version = "0.3.0"
	AppName = "wordtree"
	gh      = "https://github.com/bastiangx/wordtree"
)

// main parses flags, loads the dictionary and hands over to the server or
// the CLI. It does not implement logic for them and only manages the flow.
func main() {
	showVersion := flag.Bool("version", false, "Show current version")
	debugMode := flag.Bool("d", false, "Toggle debug mode")
	cliMode := flag.Bool("c", false, "Run CLI -- useful for testing and debugging")
	configFile := flag.String("config", "", "Path to a custom config file")
	dictFile := flag.String("dict", "", "Word list file (default from config)")
	limit := flag.Int("limit", 0, "Number of suggestions to return (default from config)")
	method := flag.String("method", "", "Default method: bst or trie (default from config)")
	httpAddr := flag.String("http", "", "Serve the HTTP API on this address (default from config)")
	noPersist := flag.Bool("no-persist", false, "Do not append added words to the word list")
	noFilter := flag.Bool("no-filter", false, "Disable CLI input filtering (DBG only)")

	flag.Parse()

	if *showVersion {
		printVersion()
		os.Exit(0)
	}

	logger.Setup(*debugMode)

	pathResolver, err := utils.NewPathResolver()
	if err != nil {
		log.Fatalf("Failed to initialize path resolver: %v", err)
	}

	cfg, configPath := config.LoadConfigWithPriority(*configFile, pathResolver.GetConfigPath(config.FileName))
	log.Debugf("Using config file: (%s) in %s", utils.GetAbsolutePath(configPath), pathResolver.ConfigDir())
	applyFlags(cfg, *dictFile, *limit, *method, *httpAddr, *noPersist, *noFilter)

	dictPath := pathResolver.ResolveDictPath(cfg.Dict.Path)
	checker, err := newChecker(cfg, dictPath)
	if err != nil {
		log.Fatalf("Failed to init dictionary: %v", err)
	}

	if *cliMode {
		log.SetReportTimestamp(false)
		log.Debug("Input info:", "limit", cfg.CLI.DefaultLimit, "method", cfg.Server.DefaultMethod, "noFilter", cfg.CLI.NoFilter)

		inputHandler := cli.NewInputHandler(checker, os.Stdin, os.Stdout, cfg.CLI.DefaultLimit, cfg.CLI.NoFilter)
		if flag.NArg() > 0 {
			if err := inputHandler.RunOnce(strings.Join(flag.Args(), " ")); err != nil {
				log.Fatalf("CLI error: %v", err)
			}
			return
		}
		if err := inputHandler.Start(); err != nil {
			log.Fatalf("CLI error: %v", err)
		}
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	showStartupInfo(dictPath, checker)
	if err := serve(ctx, checker, cfg.Server); err != nil {
		log.Fatalf("Server error: %v", err)
	}
	fmt.Fprintf(os.Stderr, "\nExiting...\n")
}

// applyFlags lets non-zero flag values override the config file.
func applyFlags(cfg *config.Config, dict string, limit int, method, httpAddr string, noPersist, noFilter bool) {
	if dict != "" {
		cfg.Dict.Path = dict
	}
	if limit > 0 {
		cfg.Server.DefaultLimit = limit
		cfg.CLI.DefaultLimit = limit
	}
	if method != "" {
		cfg.Server.DefaultMethod = method
	}
	if httpAddr != "" {
		cfg.Server.HTTPAddr = httpAddr
	}
	if noPersist {
		cfg.Dict.Persist = false
	}
	if noFilter {
		cfg.CLI.NoFilter = true
	}
	cfg.Validate()
}

// newChecker loads the word list into every backend.
func newChecker(cfg *config.Config, dictPath string) (*suggest.Checker, error) {
	start := time.Now()
	words, err := dictionary.LoadFile(dictPath)
	if err != nil {
		return nil, err
	}
	backends, err := suggest.NewBackends(cfg.LocaleTag(), words)
	if err != nil {
		return nil, err
	}
	log.Debugf("Dictionary ready: %s words from %s in %v", utils.FormatWithCommas(len(words)), dictPath, time.Since(start))

	opts := suggest.Options{
		DefaultMethod: cfg.Server.DefaultMethod,
		SuggestLimit:  cfg.Server.DefaultLimit,
		MaxLimit:      cfg.Server.MaxLimit,
		MaxWordLen:    cfg.Server.MaxWordLen,
	}
	if cfg.Dict.Persist {
		opts.Persister = dictionary.NewAppender(dictPath)
	} else {
		log.Warn("Persistence disabled, added words are lost on exit")
	}
	return suggest.NewChecker(backends, opts)
}

// serve runs IPC on stdin/stdout and, when configured, the HTTP API.
// Closing stdin ends IPC; the HTTP API keeps going until ctx is done.
func serve(ctx context.Context, checker *suggest.Checker, cfg config.ServerConfig) error {
	ipcDone := make(chan error, 1)
	go func() {
		ipcDone <- server.NewServer(checker, os.Stdin, os.Stdout).Start()
	}()

	if cfg.HTTPAddr == "" {
		select {
		case err := <-ipcDone:
			return err
		case <-ctx.Done():
			return nil
		}
	}

	httpDone := make(chan error, 1)
	go func() {
		httpDone <- server.ServeHTTP(ctx, cfg.HTTPAddr, server.NewHTTPHandler(checker, cfg.AllowedOrigins))
	}()

	select {
	case err := <-ipcDone:
		if err != nil {
			return err
		}
		log.Debug("IPC input closed, HTTP API still serving")
		return <-httpDone
	case err := <-httpDone:
		return err
	}
}

func printVersion() {
	banner := log.NewWithOptions(os.Stderr, log.Options{
		ReportCaller:    false,
		ReportTimestamp: false,
		Prefix:          "",
	})

	styles := log.DefaultStyles()
	styles.Values["version"] = lipgloss.NewStyle().Bold(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"}).
		Background(lipgloss.AdaptiveColor{Light: "#f2e9e1", Dark: "#26233a"})
	styles.Values["gh"] = lipgloss.NewStyle().Italic(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
	banner.SetStyles(styles)

	banner.Print("")
	banner.Print("[ WordTree ] Spell checks against an ordered word tree")
	banner.Print("", "version", Version)
	banner.Print("")
	banner.Print("use -h or --help to see available options")
	banner.Print("Github Repo", "gh", gh)
}

// showStartupInfo displays some basic info about the init process.
func showStartupInfo(dictPath string, checker *suggest.Checker) {
	currentLevel := log.GetLevel()
	log.SetLevel(log.InfoLevel)
	defer log.SetLevel(currentLevel)

	stats := checker.Stats()
	fmt.Fprintln(os.Stderr, "===========")
	fmt.Fprintln(os.Stderr, " WordTree ")
	fmt.Fprintln(os.Stderr, "===========")
	log.Infof("Version: %s", Version)
	log.Infof("Process ID: [ %d ]", os.Getpid())
	log.Infof("word list: ( %s )", utils.GetAbsolutePath(dictPath))
	log.Infof("words: %s", utils.FormatWithCommas(stats[suggest.MethodBST+".words"]))
	log.Infof("methods: %s (default %s)", strings.Join(checker.Methods(), ", "), checker.DefaultMethod())
	log.Info("status: ready")
	fmt.Fprintln(os.Stderr, "===========")
	fmt.Fprintln(os.Stderr, "Press Ctrl+C to exit")
}
