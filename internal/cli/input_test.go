package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/bastiangx/wordtree/pkg/suggest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

func newHandler(t *testing.T, input string, noFilter bool, words ...string) (*InputHandler, *bytes.Buffer) {
	t.Helper()
	backends, err := suggest.NewBackends(language.English, words)
	require.NoError(t, err)
	checker, err := suggest.NewChecker(backends, suggest.Options{})
	require.NoError(t, err)

	var out bytes.Buffer
	return NewInputHandler(checker, strings.NewReader(input), &out, 3, noFilter), &out
}

func TestInputCheck(t *testing.T) {
	h, out := newHandler(t, "apple\n\ncheck appl\n", false, "apple", "apply", "banana")
	require.NoError(t, h.Start())

	assert.Equal(t, 2, h.RequestCount())
	assert.Contains(t, out.String(), "'apple' is spelled correctly")
	assert.Contains(t, out.String(), "'appl' not found")
	assert.Contains(t, out.String(), " 2. apply")
}

func TestInputAddListSuggest(t *testing.T) {
	input := strings.Join([]string{
		"add Cherry",
		"add cherry",
		"method trie",
		"list",
		"suggest ch 1",
		"suggest zz",
		"stats",
	}, "\n")
	h, out := newHandler(t, input, false, "banana", "chair")
	require.NoError(t, h.Start())

	got := out.String()
	assert.Contains(t, got, suggest.MsgAdded+": 'cherry'")
	assert.Contains(t, got, suggest.MsgExists+": 'cherry'")
	assert.Contains(t, got, "Using trie")
	assert.Contains(t, got, "3 words via trie")
	assert.Contains(t, got, "Found 1 suggestions for prefix 'ch'")
	assert.Contains(t, got, "Found 3 suggestions for prefix 'zz'")
	assert.Contains(t, got, "bst.words")
	assert.Contains(t, got, "trie.words")
}

func TestInputFilter(t *testing.T) {
	h, out := newHandler(t, "12345\nadd a$b\n", false, "apple")
	require.NoError(t, h.Start())
	assert.Contains(t, out.String(), "Ignoring '12345'")
	assert.Contains(t, out.String(), "Ignoring 'a$b'")

	h, out = newHandler(t, "add 12345\n", true)
	require.NoError(t, h.Start())
	assert.Contains(t, out.String(), suggest.MsgAdded)
}

func TestInputErrors(t *testing.T) {
	h, out := newHandler(t, "method btree\nsuggest ap lots\n", false, "apple")
	require.NoError(t, h.Start())
	assert.Contains(t, out.String(), "unknown method")
	assert.Contains(t, out.String(), "Invalid limit: lots")
}

func TestInputMethodAlias(t *testing.T) {
	h, out := newHandler(t, "method hashmap\nlist\n", false, "apple")
	require.NoError(t, h.Start())
	assert.Contains(t, out.String(), "Using trie")
	assert.Contains(t, out.String(), "1 words via trie")
}

func TestRunOnce(t *testing.T) {
	h, out := newHandler(t, "", false, "apple")
	assert.ErrorIs(t, h.RunOnce("   "), ErrNoInput)
	require.NoError(t, h.RunOnce("check apple"))
	assert.Contains(t, out.String(), "'apple' is spelled correctly")
}
