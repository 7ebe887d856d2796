package server

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"testing"

	"github.com/bastiangx/wordtree/pkg/suggest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"
	"golang.org/x/text/language"
)

func newChecker(t *testing.T, p suggest.Persister, words ...string) *suggest.Checker {
	t.Helper()
	backends, err := suggest.NewBackends(language.English, words)
	require.NoError(t, err)
	c, err := suggest.NewChecker(backends, suggest.Options{Persister: p})
	require.NoError(t, err)
	return c
}

// runIPC feeds the requests through a server and returns the decoded replies,
// the ready message included.
func runIPC(t *testing.T, c *suggest.Checker, reqs ...any) []map[string]any {
	t.Helper()
	var in bytes.Buffer
	enc := msgpack.NewEncoder(&in)
	for _, r := range reqs {
		require.NoError(t, enc.Encode(r))
	}

	var out bytes.Buffer
	srv := NewServer(c, &in, &out)
	require.NoError(t, srv.Start())
	assert.Equal(t, len(reqs), srv.RequestCount())

	var replies []map[string]any
	dec := msgpack.NewDecoder(&out)
	for {
		m, err := dec.DecodeMap()
		if errors.Is(err, io.EOF) {
			break
		}
		require.NoError(t, err)
		replies = append(replies, m)
	}
	return replies
}

func toStrings(t *testing.T, v any) []string {
	t.Helper()
	raw, ok := v.([]any)
	require.True(t, ok, "expected array, got %T", v)
	out := make([]string, len(raw))
	for i, r := range raw {
		out[i] = fmt.Sprint(r)
	}
	return out
}

func TestServerReadyOnEmptyInput(t *testing.T) {
	replies := runIPC(t, newChecker(t, nil, "apple"))
	require.Len(t, replies, 1)
	assert.Equal(t, "ready", replies[0]["status"])
}

func TestServerCheck(t *testing.T) {
	c := newChecker(t, nil, "apple", "application", "apply", "banana")
	replies := runIPC(t, c,
		Request{ID: "1", Cmd: CmdCheck, Word: "Apple"},
		Request{ID: "2", Cmd: CmdCheck, Word: "appl", Method: suggest.MethodTrie},
	)
	require.Len(t, replies, 3)

	hit := replies[1]
	assert.Equal(t, "1", hit["id"])
	assert.Equal(t, "apple", hit["w"])
	assert.Equal(t, true, hit["f"])
	assert.NotContains(t, hit, "s")
	assert.Equal(t, suggest.MethodBST, hit["m"])

	miss := replies[2]
	assert.Equal(t, false, miss["f"])
	assert.Equal(t, suggest.MethodTrie, miss["m"])
	assert.Equal(t, []string{"apple", "application", "apply"}, toStrings(t, miss["s"]))
}

func TestServerAddThenList(t *testing.T) {
	p := &fakePersister{}
	c := newChecker(t, p, "banana")
	replies := runIPC(t, c,
		Request{ID: "a", Cmd: CmdAdd, Word: "Cherry"},
		Request{ID: "b", Cmd: CmdAdd, Word: "cherry"},
		Request{ID: "c", Cmd: CmdList, Method: suggest.MethodTrie},
	)
	require.Len(t, replies, 4)

	assert.Equal(t, true, replies[1]["ok"])
	assert.Equal(t, suggest.MsgAdded, replies[1]["msg"])
	assert.Equal(t, true, replies[1]["p"])

	assert.Equal(t, false, replies[2]["ok"])
	assert.Equal(t, suggest.MsgExists, replies[2]["msg"])

	assert.Equal(t, []string{"banana", "cherry"}, toStrings(t, replies[3]["ws"]))
	assert.EqualValues(t, 2, replies[3]["c"])
	assert.Equal(t, []string{"cherry"}, p.words)
}

func TestServerAddPersistFailure(t *testing.T) {
	c := newChecker(t, &fakePersister{err: errors.New("disk full")})
	replies := runIPC(t, c,
		Request{ID: "1", Cmd: CmdAdd, Word: "kiwi"},
		Request{ID: "2", Cmd: CmdCheck, Word: "kiwi"},
	)
	require.Len(t, replies, 3)
	assert.Equal(t, true, replies[1]["ok"])
	assert.Equal(t, false, replies[1]["p"])
	assert.Equal(t, "disk full", replies[1]["pe"])
	assert.Equal(t, true, replies[2]["f"])
}

func TestServerSuggestStatsHealth(t *testing.T) {
	c := newChecker(t, nil, "car", "card", "care", "cat")
	replies := runIPC(t, c,
		Request{ID: "1", Cmd: CmdSuggest, Word: "car", Limit: 2},
		Request{ID: "2", Cmd: CmdStats},
		Request{ID: "3", Cmd: CmdHealth},
	)
	require.Len(t, replies, 4)

	assert.Equal(t, []string{"car", "card"}, toStrings(t, replies[1]["s"]))
	assert.EqualValues(t, 2, replies[1]["c"])

	stats, ok := replies[2]["stats"].(map[string]any)
	require.True(t, ok)
	assert.EqualValues(t, 4, stats["bst.words"])
	assert.EqualValues(t, 4, stats["trie.words"])
	assert.Contains(t, stats, "bst.depth")

	assert.Equal(t, "3", replies[3]["id"])
	assert.Equal(t, "ok", replies[3]["status"])
}

func TestServerErrors(t *testing.T) {
	c := newChecker(t, nil, "apple")
	replies := runIPC(t, c,
		Request{ID: "1", Cmd: CmdCheck, Word: "   "},
		Request{ID: "2", Cmd: CmdCheck, Word: "apple", Method: "btree"},
		Request{ID: "3", Cmd: "spell"},
		"not a request",
		Request{ID: "4", Cmd: CmdHealth},
	)
	require.Len(t, replies, 6)

	for _, r := range replies[1:5] {
		assert.EqualValues(t, http.StatusBadRequest, r["c"])
		assert.NotEmpty(t, r["e"])
	}
	assert.Equal(t, suggest.ErrEmptyWord.Error(), replies[1]["e"])
	assert.Equal(t, "Unknown command: spell", replies[3]["e"])
	assert.Equal(t, "ok", replies[5]["status"])
}

func TestStatusCode(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, StatusCode(suggest.ErrEmptyWord))
	assert.Equal(t, http.StatusBadRequest, StatusCode(fmt.Errorf("x: %w", suggest.ErrUnknownMethod)))
	assert.Equal(t, http.StatusInternalServerError, StatusCode(errors.New("boom")))
}

type fakePersister struct {
	words []string
	err   error
}

func (p *fakePersister) Append(word string) error {
	if p.err != nil {
		return p.err
	}
	p.words = append(p.words, word)
	return nil
}

func TestServerHashmapMethod(t *testing.T) {
	c := newChecker(t, nil, "apple")
	replies := runIPC(t, c, Request{ID: "1", Cmd: CmdCheck, Word: "apple", Method: "hashmap"})
	require.Len(t, replies, 2)
	assert.Equal(t, true, replies[1]["f"])
	assert.Equal(t, suggest.MethodTrie, replies[1]["m"])
}
