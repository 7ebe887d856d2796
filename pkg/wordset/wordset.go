// Package wordset is the core of wordtree: an unbalanced binary search tree of
// normalized words ordered by locale-aware collation.
//
// The tree shape depends only on insertion order. Inserting an already sorted
// list degrades the tree into a linked list (depth == Len), which slows lookups
// down but never changes what they return.
//
// A WordSet has no internal locking. Callers sharing one between goroutines
// must serialize every call, reads included.
package wordset

import (
	"strings"

	"golang.org/x/text/language"
)

// DefaultSuggestLimit is used by callers that have no limit of their own.
const DefaultSuggestLimit = 10

// node owns its two children exclusively; there are no parent links.
type node struct {
	word  string
	left  *node
	right *node
}

// WordSet is an ordered set of normalized words.
type WordSet struct {
	root  *node
	cmp   comparator
	count int
}

// Option configures a WordSet.
type Option func(*settings)

type settings struct {
	locale language.Tag
}

// WithLocale sets the collation language used to order words.
func WithLocale(tag language.Tag) Option {
	return func(s *settings) {
		s.locale = tag
	}
}

// New creates an empty WordSet.
func New(opts ...Option) *WordSet {
	s := settings{locale: DefaultLocale}
	for _, opt := range opts {
		opt(&s)
	}
	return &WordSet{cmp: newComparator(s.locale)}
}

// Insert adds word after normalizing it. Empty words and words already present
// are ignored. It reports whether a new word was stored.
func (ws *WordSet) Insert(word string) bool {
	word = Normalize(word)
	if word == "" {
		return false
	}

	link := &ws.root
	for *link != nil {
		c := ws.cmp.compare(word, (*link).word)
		switch {
		case c == 0:
			return false
		case c < 0:
			link = &(*link).left
		default:
			link = &(*link).right
		}
	}
	*link = &node{word: word}
	ws.count++
	return true
}

// Contains reports whether the normalized word is stored.
func (ws *WordSet) Contains(word string) bool {
	word = Normalize(word)
	n := ws.root
	for n != nil {
		c := ws.cmp.compare(word, n.word)
		switch {
		case c == 0:
			return true
		case c < 0:
			n = n.left
		default:
			n = n.right
		}
	}
	return false
}

// Words returns every stored word in ascending order.
func (ws *WordSet) Words() []string {
	words := make([]string, 0, ws.count)
	ws.walk(func(w string) bool {
		words = append(words, w)
		return true
	})
	return words
}

// Suggest returns up to limit stored words starting with the normalized word,
// smallest first. When nothing matches, it returns the first limit words of
// the dictionary instead. An empty prefix matches every word.
func (ws *WordSet) Suggest(word string, limit int) []string {
	if limit <= 0 {
		return []string{}
	}
	prefix := Normalize(word)

	matches := make([]string, 0, min(limit, ws.count))
	ws.walk(func(w string) bool {
		if strings.HasPrefix(w, prefix) {
			matches = append(matches, w)
		}
		return len(matches) < limit
	})
	if len(matches) > 0 {
		return matches
	}
	return ws.first(limit)
}

// BulkLoad inserts words in order and returns how many were new.
func (ws *WordSet) BulkLoad(words []string) int {
	added := 0
	for _, w := range words {
		if ws.Insert(w) {
			added++
		}
	}
	return added
}

// Len returns the number of stored words.
func (ws *WordSet) Len() int {
	return ws.count
}

// Depth returns the number of nodes on the longest root-to-leaf path.
func (ws *WordSet) Depth() int {
	if ws.root == nil {
		return 0
	}
	type frame struct {
		n     *node
		depth int
	}
	deepest := 0
	stack := []frame{{ws.root, 1}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		deepest = max(deepest, f.depth)
		if f.n.left != nil {
			stack = append(stack, frame{f.n.left, f.depth + 1})
		}
		if f.n.right != nil {
			stack = append(stack, frame{f.n.right, f.depth + 1})
		}
	}
	return deepest
}

// first returns the limit smallest words.
func (ws *WordSet) first(limit int) []string {
	words := make([]string, 0, min(limit, ws.count))
	ws.walk(func(w string) bool {
		words = append(words, w)
		return len(words) < limit
	})
	return words
}

// walk visits words in ascending order until visit returns false.
func (ws *WordSet) walk(visit func(word string) bool) {
	var stack []*node
	n := ws.root
	for n != nil || len(stack) > 0 {
		for n != nil {
			stack = append(stack, n)
			n = n.left
		}
		n = stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if !visit(n.word) {
			return
		}
		n = n.right
	}
}
