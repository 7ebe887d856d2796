// Package dictionary reads and appends line-delimited word lists.
package dictionary

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/bastiangx/wordtree/pkg/wordset"
	"github.com/charmbracelet/log"
)

// maxLineSize bounds a single line; longer lines fail the scan.
const maxLineSize = 64 * 1024

// ReadWords reads one word per line. Lines are normalized the same way the
// word set normalizes input, and blank lines are skipped.
func ReadWords(r io.Reader) ([]string, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 4096), maxLineSize)

	var words []string
	line := 0
	for scanner.Scan() {
		line++
		word := wordset.Normalize(scanner.Text())
		if word == "" {
			continue
		}
		words = append(words, word)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading word list after line %d: %w", line, err)
	}
	return words, nil
}

// LoadFile reads the word list at path. A missing file is not an error: the
// dictionary simply starts empty.
func LoadFile(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			log.Warnf("Word list %s not found, starting with an empty dictionary", path)
			return nil, nil
		}
		return nil, fmt.Errorf("failed to open word list %s: %w", path, err)
	}
	defer file.Close()

	if err := ValidateFileFormat(path); err != nil {
		return nil, err
	}

	words, err := ReadWords(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	log.Debugf("Loaded %d words from %s", len(words), path)
	return words, nil
}

// WriteWords writes words one per line.
func WriteWords(w io.Writer, words []string) error {
	bw := bufio.NewWriter(w)
	for _, word := range words {
		if _, err := bw.WriteString(strings.TrimSpace(word) + "\n"); err != nil {
			return err
		}
	}
	return bw.Flush()
}
