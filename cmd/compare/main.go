// Copyright 2025 The WordServe Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Command compare loads a word list into every backend and prints how long
// loading, lookups and suggestions take on each.
//
//	compare -dict dictionary.txt -n 1000 -prefix ap -out sorted.txt
package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/bastiangx/wordtree/internal/logger"
	"github.com/bastiangx/wordtree/internal/utils"
	"github.com/bastiangx/wordtree/pkg/dictionary"
	"github.com/bastiangx/wordtree/pkg/suggest"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/charmbracelet/log"
	"golang.org/x/text/language"
)

var probes = []string{"apple", "zebra", "cat", "dog", "elephant", "notfound", "xyz", "test", "hello", "world"}

type result struct {
	method  string
	words   int
	depth   string
	load    time.Duration
	lookup  time.Duration
	found   int
	suggest time.Duration
}

func main() {
	dictFile := flag.String("dict", "dictionary.txt", "Word list file")
	locale := flag.String("locale", "en", "Collation locale")
	rounds := flag.Int("n", 1000, "Lookup rounds over the probe words")
	prefix := flag.String("prefix", "ap", "Prefix to time suggestions for")
	limit := flag.Int("limit", 10, "Suggestions per request")
	outFile := flag.String("out", "", "Write the normalized, deduplicated word list in collation order to this file")
	debugMode := flag.Bool("d", false, "Toggle debug mode")
	flag.Parse()

	logger.Setup(*debugMode)

	tag, err := language.Parse(*locale)
	if err != nil {
		log.Fatalf("Invalid locale %q: %v", *locale, err)
	}
	words, err := dictionary.LoadFile(*dictFile)
	if err != nil {
		log.Fatalf("Failed to load word list: %v", err)
	}
	if len(words) == 0 {
		log.Fatalf("No words in %s", *dictFile)
	}

	var (
		results []result
		sorted  []string
	)
	for _, method := range []string{suggest.MethodBST, suggest.MethodTrie} {
		dict, res, err := measure(method, tag, words, *rounds, *prefix, *limit)
		if err != nil {
			log.Fatalf("%s: %v", method, err)
		}
		if method == suggest.MethodBST {
			sorted = dict.Words()
		}
		results = append(results, res)
	}

	if *outFile != "" {
		if err := writeSorted(*outFile, sorted); err != nil {
			log.Fatalf("Failed to write %s: %v", *outFile, err)
		}
		log.Infof("Wrote %s words to %s", utils.FormatWithCommas(len(sorted)), *outFile)
	}

	fmt.Printf("%s words from %s, %d rounds over %d probes\n\n",
		utils.FormatWithCommas(len(words)), *dictFile, *rounds, len(probes))
	fmt.Println(render(results))
}

func measure(method string, tag language.Tag, words []string, rounds int, prefix string, limit int) (suggest.IDictionary, result, error) {
	dict, err := suggest.NewBackend(method, tag)
	if err != nil {
		return nil, result{}, err
	}
	res := result{method: method, depth: "-"}

	start := time.Now()
	dict.BulkLoad(words)
	res.load = time.Since(start)
	res.words = dict.Len()
	if d, ok := dict.(interface{ Depth() int }); ok {
		res.depth = utils.FormatWithCommas(d.Depth())
	}

	start = time.Now()
	for i := 0; i < rounds; i++ {
		for _, w := range probes {
			if dict.Contains(w) {
				res.found++
			}
		}
	}
	res.lookup = time.Since(start)
	res.found /= max(rounds, 1)

	start = time.Now()
	for i := 0; i < rounds; i++ {
		dict.Suggest(prefix, limit)
	}
	res.suggest = time.Since(start)

	log.Debugf("%s: load=%v lookup=%v suggest=%v", method, res.load, res.lookup, res.suggest)
	return dict, res, nil
}

func writeSorted(path string, words []string) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := dictionary.WriteWords(file, words); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

func render(results []result) string {
	headerStyle := lipgloss.NewStyle().Bold(true).Padding(0, 1).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
	cellStyle := lipgloss.NewStyle().Padding(0, 1)

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("method", "words", "depth", "load", "lookups", "found", "suggest").
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})

	for _, r := range results {
		t.Row(
			r.method,
			utils.FormatWithCommas(r.words),
			r.depth,
			r.load.String(),
			r.lookup.String(),
			strconv.Itoa(r.found)+"/"+strconv.Itoa(len(probes)),
			r.suggest.String(),
		)
	}
	return t.Render()
}

func init() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [flags]\n", os.Args[0])
		flag.PrintDefaults()
	}
}
