// Package cli handles cmd line input for checking, adding and listing words
// in real time. Useful for debugging without an IPC client.
package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/bastiangx/wordtree/internal/logger"
	"github.com/bastiangx/wordtree/internal/utils"
	"github.com/bastiangx/wordtree/pkg/suggest"
	"github.com/charmbracelet/log"
)

const (
	listPreview = 50
	maxShown    = 40
)

// InputHandler reads commands line by line and prints results.
//
//	apple          check a word
//	check apple    same
//	add apple      add and persist a word
//	list           every word in order
//	suggest ap 5   up to 5 suggestions for "ap"
//	stats          backend sizes
//	method trie    switch the backend used for the rest of the session
type InputHandler struct {
	checker      *suggest.Checker
	in           io.Reader
	out          *log.Logger
	method       string
	suggestLimit int
	noFilter     bool
	requestCount int
}

// NewInputHandler creates a handler reading from in and printing to out.
func NewInputHandler(checker *suggest.Checker, in io.Reader, out io.Writer, limit int, noFilter bool) *InputHandler {
	return &InputHandler{
		checker:      checker,
		in:           in,
		out:          logger.NewTo(out, ""),
		method:       checker.DefaultMethod(),
		suggestLimit: limit,
		noFilter:     noFilter,
	}
}

// Start runs the read loop until the input ends.
func (h *InputHandler) Start() error {
	h.out.Print("WordTree CLI")
	h.out.Print("type a word to check it, or: add <w>, list, suggest <prefix> [n], stats, method <bst|trie> (Ctrl+D to exit)")

	scanner := bufio.NewScanner(h.in)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		h.handleInput(line)
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading input: %w", err)
	}
	log.Debugf("CLI done after %d requests", h.requestCount)
	return nil
}

// RequestCount returns how many non-empty lines were handled.
func (h *InputHandler) RequestCount() int {
	return h.requestCount
}

func (h *InputHandler) handleInput(line string) {
	h.requestCount++
	cmd, rest, _ := strings.Cut(line, " ")
	rest = strings.TrimSpace(rest)

	switch strings.ToLower(cmd) {
	case "check":
		h.check(rest)
	case "add":
		h.add(rest)
	case "list":
		h.list()
	case "suggest":
		h.suggest(rest)
	case "stats":
		h.stats()
	case "method":
		h.setMethod(rest)
	default:
		h.check(line)
	}
}

// allowed applies the input filter unless it was disabled.
func (h *InputHandler) allowed(word string) bool {
	if h.noFilter {
		log.Debug("Input filtering disabled")
		return true
	}
	if !utils.IsValidInput(word) {
		h.out.Warnf("Ignoring '%s' (filtered out)", word)
		return false
	}
	return true
}

func (h *InputHandler) check(word string) {
	if !h.allowed(word) {
		return
	}
	res, err := h.checker.Check(word, h.method)
	if err != nil {
		h.out.Errorf("Check failed: %v", err)
		return
	}
	if res.Found {
		h.out.Printf("'%s' is spelled correctly (%s, %v)", res.Word, res.Method, res.Elapsed)
		return
	}
	h.out.Printf("'%s' not found (%s, %v)", res.Word, res.Method, res.Elapsed)
	h.printWords("Suggestions:", res.Suggestions)
}

func (h *InputHandler) add(word string) {
	if !h.allowed(word) {
		return
	}
	res, err := h.checker.Add(word, h.method)
	if err != nil {
		h.out.Errorf("Add failed: %v", err)
		return
	}
	h.out.Printf("%s: '%s' (%v)", res.Message, res.Word, res.Elapsed)
	if res.PersistError != "" {
		h.out.Warnf("Word kept in memory only: %s", res.PersistError)
	}
}

func (h *InputHandler) list() {
	res, err := h.checker.List(h.method)
	if err != nil {
		h.out.Errorf("List failed: %v", err)
		return
	}
	h.out.Printf("%s words via %s (%v)", utils.FormatWithCommas(res.Count), res.Method, res.Elapsed)
	words := res.Words
	if len(words) > listPreview {
		words = words[:listPreview]
	}
	h.printWords("", words)
	if res.Count > listPreview {
		h.out.Printf("... and %s more", utils.FormatWithCommas(res.Count-listPreview))
	}
}

func (h *InputHandler) suggest(args string) {
	fields := strings.Fields(args)
	prefix, limit := "", h.suggestLimit
	if len(fields) > 0 {
		prefix = fields[0]
	}
	if len(fields) > 1 {
		n, err := strconv.Atoi(fields[1])
		if err != nil {
			h.out.Errorf("Invalid limit: %s", fields[1])
			return
		}
		limit = n
	}

	words, err := h.checker.Suggest(prefix, limit, h.method)
	if err != nil {
		h.out.Errorf("Suggest failed: %v", err)
		return
	}
	if len(words) == 0 {
		h.out.Warnf("No suggestions for prefix: '%s'", prefix)
		return
	}
	h.printWords(fmt.Sprintf("Found %d suggestions for prefix '%s':", len(words), prefix), words)
}

func (h *InputHandler) stats() {
	stats := h.checker.Stats()
	keys := make([]string, 0, len(stats))
	for k := range stats {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		h.out.Printf("%-12s %10s", k, utils.FormatWithCommas(stats[k]))
	}
}

func (h *InputHandler) setMethod(method string) {
	name, err := h.checker.ResolveMethod(strings.ToLower(method))
	if err != nil || method == "" {
		h.out.Errorf("%v: %q (have %s)", suggest.ErrUnknownMethod, method, strings.Join(h.checker.Methods(), ", "))
		return
	}
	h.method = name
	h.out.Printf("Using %s", name)
}

func (h *InputHandler) printWords(header string, words []string) {
	if header != "" {
		h.out.Print(header)
	}
	for i, w := range words {
		h.out.Printf("%2d. %s", i+1, utils.Truncate(w, maxShown))
	}
}

// ErrNoInput is returned by RunOnce when the line is blank.
var ErrNoInput = errors.New("no input")

// RunOnce handles a single command line, as given with -c on the command line.
func (h *InputHandler) RunOnce(line string) error {
	line = strings.TrimSpace(line)
	if line == "" {
		return ErrNoInput
	}
	h.handleInput(line)
	return nil
}
