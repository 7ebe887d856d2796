package suggest

import (
	"github.com/bastiangx/wordtree/pkg/wordset"
	"github.com/charmbracelet/log"
	"github.com/tchap/go-patricia/v2/patricia"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// TrieIndex is a patricia trie backend. It answers the same questions as the
// tree in package wordset, with prefix lookups that only visit the matching
// subtree. Results are sorted with the same collation before they are returned.
type TrieIndex struct {
	trie  *patricia.Trie
	coll  *collate.Collator
	count int
}

// NewTrieIndex creates an empty index ordering its output for tag.
func NewTrieIndex(tag language.Tag) *TrieIndex {
	return &TrieIndex{
		trie: patricia.NewTrie(),
		coll: collate.New(tag),
	}
}

func (t *TrieIndex) Insert(word string) bool {
	word = wordset.Normalize(word)
	if word == "" {
		return false
	}
	if !t.trie.Insert(patricia.Prefix(word), true) {
		return false
	}
	t.count++
	return true
}

func (t *TrieIndex) Contains(word string) bool {
	word = wordset.Normalize(word)
	if word == "" {
		return false
	}
	return t.trie.Match(patricia.Prefix(word))
}

func (t *TrieIndex) Words() []string {
	words := make([]string, 0, t.count)
	err := t.trie.Visit(func(p patricia.Prefix, _ patricia.Item) error {
		words = append(words, string(p))
		return nil
	})
	if err != nil {
		log.Errorf("Error visiting trie: %v", err)
	}
	t.coll.SortStrings(words)
	return words
}

func (t *TrieIndex) Suggest(prefix string, limit int) []string {
	if limit <= 0 {
		return []string{}
	}
	prefix = wordset.Normalize(prefix)
	if prefix == "" {
		return truncate(t.Words(), limit)
	}

	var matches []string
	err := t.trie.VisitSubtree(patricia.Prefix(prefix), func(p patricia.Prefix, _ patricia.Item) error {
		matches = append(matches, string(p))
		return nil
	})
	if err != nil {
		log.Errorf("Error visiting trie subtree: %v", err)
	}

	if len(matches) == 0 {
		matches = t.Words()
	} else {
		t.coll.SortStrings(matches)
	}
	return truncate(matches, limit)
}

func truncate(words []string, limit int) []string {
	if len(words) > limit {
		return words[:limit]
	}
	return words
}

func (t *TrieIndex) BulkLoad(words []string) int {
	added := 0
	for _, w := range words {
		if t.Insert(w) {
			added++
		}
	}
	return added
}

func (t *TrieIndex) Len() int {
	return t.count
}
