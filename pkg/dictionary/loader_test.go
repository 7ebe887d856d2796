package dictionary

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadWords(t *testing.T) {
	input := "Apple\n  banana  \n\n\tCHERRY\r\n   \nápple\n"
	words, err := ReadWords(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, []string{"apple", "banana", "cherry", "ápple"}, words)
}

func TestReadWordsKeepsDuplicatesAndOrder(t *testing.T) {
	words, err := ReadWords(strings.NewReader("b\na\nb\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "a", "b"}, words)
}

func TestReadWordsLineTooLong(t *testing.T) {
	_, err := ReadWords(strings.NewReader(strings.Repeat("x", maxLineSize+1)))
	assert.Error(t, err)
}

func TestLoadFileMissing(t *testing.T) {
	words, err := LoadFile(filepath.Join(t.TempDir(), "nope.txt"))
	require.NoError(t, err)
	assert.Empty(t, words)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dictionary.txt")
	require.NoError(t, os.WriteFile(path, []byte("zebra\nApple\n"), 0644))

	words, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"zebra", "apple"}, words)
}

func TestLoadFileRejectsBinary(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dict_0001.bin")
	require.NoError(t, os.WriteFile(path, []byte{0x03, 0x00, 0x00, 0x00, 'a'}, 0644))

	_, err := LoadFile(path)
	assert.Error(t, err)
}

func TestAppender(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dictionary.txt")
	a := NewAppender(path)
	assert.Equal(t, path, a.Path())

	require.NoError(t, a.Append("kiwi"))
	require.NoError(t, a.Append("apple"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "kiwi\napple\n", string(data))

	words, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"kiwi", "apple"}, words)
}

func TestAppenderAddsMissingNewline(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dictionary.txt")
	require.NoError(t, os.WriteFile(path, []byte("apple"), 0644))

	require.NoError(t, NewAppender(path).Append("pear"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "apple\npear\n", string(data))
}

func TestWriteWords(t *testing.T) {
	var sb strings.Builder
	require.NoError(t, WriteWords(&sb, []string{"a", " b "}))
	assert.Equal(t, "a\nb\n", sb.String())
}

func TestDetectFileFormat(t *testing.T) {
	dir := t.TempDir()
	write := func(name, content string) string {
		p := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(p, []byte(content), 0644))
		return p
	}

	format, err := DetectFileFormat(write("words.txt", "a\nb\n"))
	require.NoError(t, err)
	assert.Equal(t, FormatText, format)

	format, err = DetectFileFormat(write("words", "a\n"))
	require.NoError(t, err)
	assert.Equal(t, FormatText, format)

	format, err = DetectFileFormat(write("en_US.dic", "2\nhello/S\nworld\n"))
	require.NoError(t, err)
	assert.Equal(t, FormatHunspell, format)
	assert.Error(t, ValidateFileFormat(filepath.Join(dir, "en_US.dic")))

	_, err = DetectFileFormat(write("bad.txt", "\xff\xfe\x00\x00"))
	assert.Error(t, err)

	info, ok := GetFormatInfo(FormatText)
	assert.True(t, ok)
	assert.Contains(t, info.Extensions, ".txt")
}
