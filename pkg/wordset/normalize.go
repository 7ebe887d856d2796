package wordset

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// DefaultLocale is the collation language used when none is given.
var DefaultLocale = language.English

// Normalize trims surrounding whitespace, lower-cases a word and composes it
// to NFC, so "café" typed with a combining accent matches the precomposed form.
// Every stored word and every query goes through it before comparison.
func Normalize(word string) string {
	return norm.NFC.String(cases.Lower(language.Und).String(strings.TrimSpace(word)))
}

// comparator orders normalized words the way a dictionary would.
// Not safe for concurrent use: the collator reuses internal buffers.
type comparator struct {
	coll *collate.Collator
}

func newComparator(tag language.Tag) comparator {
	return comparator{coll: collate.New(tag)}
}

// compare returns -1, 0 or +1.
func (c comparator) compare(a, b string) int {
	return c.coll.CompareString(a, b)
}

// Sort orders words in place with the collation rules of tag.
func Sort(words []string, tag language.Tag) {
	collate.New(tag).SortStrings(words)
}
