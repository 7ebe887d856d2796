package dictionary

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Appender adds words to the end of a word list file, one per line, in the
// order Append is called. The file is opened for each word so that external
// edits between requests are not clobbered.
type Appender struct {
	path string
	mu   sync.Mutex
}

// NewAppender returns an Appender for path. The file and its directory are
// created on first use.
func NewAppender(path string) *Appender {
	return &Appender{path: path}
}

// Path returns the file words are appended to.
func (a *Appender) Path() string {
	return a.path
}

// Append writes word followed by a newline.
func (a *Appender) Append(word string) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if dir := filepath.Dir(a.path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory for %s: %w", a.path, err)
		}
	}
	file, err := os.OpenFile(a.path, os.O_APPEND|os.O_CREATE|os.O_RDWR, 0644)
	if err != nil {
		return fmt.Errorf("failed to open %s for append: %w", a.path, err)
	}
	line := word + "\n"
	if missingNewline(file) {
		line = "\n" + line
	}
	if _, err := file.WriteString(line); err != nil {
		file.Close()
		return fmt.Errorf("failed to append to %s: %w", a.path, err)
	}
	return file.Close()
}

// missingNewline reports whether a non-empty file lacks a trailing newline.
func missingNewline(file *os.File) bool {
	info, err := file.Stat()
	if err != nil || info.Size() == 0 {
		return false
	}
	last := make([]byte, 1)
	if _, err := file.ReadAt(last, info.Size()-1); err != nil {
		return false
	}
	return last[0] != '\n'
}
