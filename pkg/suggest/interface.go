// Package suggest puts the word backends behind one interface and serializes
// the check, add and list requests the transports make against them.
package suggest

// IDictionary defines the operations every word backend provides.
type IDictionary interface {
	// Insert stores a word, reporting whether it was new
	Insert(word string) bool

	// Contains reports whether a word is stored
	Contains(word string) bool

	// Words returns every word in ascending order
	Words() []string

	// Suggest returns up to limit words sharing the prefix,
	// or the first limit words when none do
	Suggest(prefix string, limit int) []string

	// BulkLoad inserts words in order, returning the count of new ones
	BulkLoad(words []string) int

	// Len returns the number of stored words
	Len() int
}

// Persister stores accepted words outside the process.
type Persister interface {
	Append(word string) error
}

// Backend names accepted as a request method.
const (
	MethodBST  = "bst"
	MethodTrie = "trie"
	// MethodHashmap is what the browser UI sends for its second backend.
	MethodHashmap = "hashmap"
)

var methodAliases = map[string]string{
	MethodHashmap: MethodTrie,
}
