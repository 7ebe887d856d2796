package dictionary

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/log"
)

// FileFormat represents the kinds of word list files recognised
type FileFormat int

const (
	FormatUnknown FileFormat = iota
	FormatText               // one word per line
	FormatHunspell           // .dic with a leading entry count
)

// FormatInfo contains metadata about a word list format
type FormatInfo struct {
	Format      FileFormat
	Description string
	Extensions  []string
}

var supportedFormats = map[FileFormat]FormatInfo{
	FormatText: {
		Format:      FormatText,
		Description: "Plain Text Word List",
		Extensions:  []string{".txt", ".lst", ""},
	},
	FormatHunspell: {
		Format:      FormatHunspell,
		Description: "Hunspell Dictionary",
		Extensions:  []string{".dic"},
	},
}

// sniffSize is how much of a file is inspected to tell text from binary.
const sniffSize = 1024

// ValidateFileFormat checks that path looks like a text word list.
func ValidateFileFormat(path string) error {
	format, err := DetectFileFormat(path)
	if err != nil {
		return err
	}
	if format == FormatHunspell {
		return fmt.Errorf("file %s is a hunspell dictionary, convert it to one word per line first", path)
	}
	return nil
}

// DetectFileFormat guesses the format of path from its extension and content.
func DetectFileFormat(path string) (FileFormat, error) {
	file, err := os.Open(path)
	if err != nil {
		return FormatUnknown, fmt.Errorf("failed to open file %s: %w", path, err)
	}
	defer file.Close()

	head := make([]byte, sniffSize)
	n, err := io.ReadFull(file, head)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return FormatUnknown, fmt.Errorf("failed to read from %s: %w", path, err)
	}
	head = head[:n]

	if !looksLikeText(head) {
		return FormatUnknown, fmt.Errorf("file %s does not look like a text word list", path)
	}

	ext := strings.ToLower(filepath.Ext(path))
	for _, format := range []FileFormat{FormatHunspell, FormatText} {
		info, _ := GetFormatInfo(format)
		for _, e := range info.Extensions {
			if ext == e {
				log.Debugf("Detected %s for %s", info.Description, path)
				return format, nil
			}
		}
	}
	// unknown extension, but the content is text
	return FormatText, nil
}

// GetFormatInfo returns information about a specific format
func GetFormatInfo(format FileFormat) (FormatInfo, bool) {
	info, exists := supportedFormats[format]
	return info, exists
}

func looksLikeText(head []byte) bool {
	if bytes.IndexByte(head, 0) >= 0 {
		return false
	}
	// a multi-byte rune may be cut at the end of the sample
	for len(head) > 0 && !utf8.Valid(head) {
		if len(head) <= sniffSize-utf8.UTFMax {
			return false
		}
		head = head[:len(head)-1]
	}
	return true
}
