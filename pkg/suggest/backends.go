package suggest

import (
	"time"

	"github.com/bastiangx/wordtree/pkg/wordset"
	"github.com/charmbracelet/log"
	"golang.org/x/text/language"
)

// NewBackends builds one backend per method and bulk loads words into each,
// in the order given.
func NewBackends(tag language.Tag, words []string, methods ...string) (map[string]IDictionary, error) {
	if len(methods) == 0 {
		methods = []string{MethodBST, MethodTrie}
	}
	backends := make(map[string]IDictionary, len(methods))
	for _, method := range methods {
		dict, err := NewBackend(method, tag)
		if err != nil {
			return nil, err
		}
		start := time.Now()
		added := dict.BulkLoad(words)
		log.Debugf("Loaded %d words (%d new) into %s in %v", len(words), added, method, time.Since(start))
		backends[method] = dict
	}
	return backends, nil
}

// NewBackend returns an empty backend for method.
func NewBackend(method string, tag language.Tag) (IDictionary, error) {
	switch method {
	case MethodBST:
		return wordset.New(wordset.WithLocale(tag)), nil
	case MethodTrie:
		return NewTrieIndex(tag), nil
	default:
		return nil, ErrUnknownMethod
	}
}
