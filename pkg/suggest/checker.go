package suggest

import (
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/bastiangx/wordtree/pkg/wordset"
	"github.com/charmbracelet/log"
)

var (
	ErrEmptyWord     = errors.New("word is required")
	ErrWordTooLong   = errors.New("word is too long")
	ErrUnknownMethod = errors.New("unknown method")
)

// Messages returned by Add.
const (
	MsgAdded  = "Word added successfully"
	MsgExists = "Word already exists"
)

// Options tunes a Checker. Zero values fall back to the defaults below.
type Options struct {
	DefaultMethod string
	SuggestLimit  int
	MaxLimit      int
	MaxWordLen    int
	// Persister receives every newly added word; nil keeps words in memory only.
	Persister Persister
}

const (
	defaultMaxLimit   = 64
	defaultMaxWordLen = 256
)

// CheckResult is the answer to a spelling check.
type CheckResult struct {
	Word        string
	Found       bool
	Suggestions []string
	Method      string
	Elapsed     time.Duration
}

// AddResult is the answer to an add request.
type AddResult struct {
	Word         string
	Added        bool
	Message      string
	Persisted    bool
	PersistError string
	Elapsed      time.Duration
}

// ListResult holds every word of one backend.
type ListResult struct {
	Words   []string
	Count   int
	Method  string
	Elapsed time.Duration
}

// Checker owns the backends for the life of the process and serializes every
// call into them with one mutex.
type Checker struct {
	mu       sync.Mutex
	backends map[string]IDictionary
	opts     Options
}

// NewChecker wraps already loaded backends keyed by method name.
func NewChecker(backends map[string]IDictionary, opts Options) (*Checker, error) {
	if len(backends) == 0 {
		return nil, fmt.Errorf("no backends configured")
	}
	if opts.DefaultMethod == "" {
		opts.DefaultMethod = MethodBST
	}
	if name, ok := methodAliases[opts.DefaultMethod]; ok {
		opts.DefaultMethod = name
	}
	if _, ok := backends[opts.DefaultMethod]; !ok {
		return nil, fmt.Errorf("default method %q: %w", opts.DefaultMethod, ErrUnknownMethod)
	}
	if opts.MaxLimit <= 0 {
		opts.MaxLimit = defaultMaxLimit
	}
	if opts.SuggestLimit <= 0 {
		opts.SuggestLimit = wordset.DefaultSuggestLimit
	}
	opts.SuggestLimit = min(opts.SuggestLimit, opts.MaxLimit)
	if opts.MaxWordLen <= 0 {
		opts.MaxWordLen = defaultMaxWordLen
	}
	return &Checker{backends: backends, opts: opts}, nil
}

// Methods returns the configured backend names, sorted.
func (c *Checker) Methods() []string {
	names := make([]string, 0, len(c.backends))
	for name := range c.backends {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DefaultMethod returns the method used when a request names none.
func (c *Checker) DefaultMethod() string {
	return c.opts.DefaultMethod
}

// Check looks a word up and, when it is missing, attaches suggestions.
func (c *Checker) Check(word, method string) (CheckResult, error) {
	method, dict, err := c.backend(method)
	if err != nil {
		return CheckResult{}, err
	}
	word, err = c.validate(word)
	if err != nil {
		return CheckResult{}, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	start := time.Now()
	res := CheckResult{Word: word, Method: method}
	res.Found = dict.Contains(word)
	if !res.Found {
		res.Suggestions = dict.Suggest(word, c.opts.SuggestLimit)
	}
	res.Elapsed = time.Since(start)

	log.Debugf("check %q via %s: found=%t in %v", word, method, res.Found, res.Elapsed)
	return res, nil
}

// Add inserts a new word into every backend and persists it. A failed write
// is reported in the result but the word stays in memory.
func (c *Checker) Add(word, method string) (AddResult, error) {
	method, dict, err := c.backend(method)
	if err != nil {
		return AddResult{}, err
	}
	word, err = c.validate(word)
	if err != nil {
		return AddResult{}, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	start := time.Now()
	res := AddResult{Word: word, Message: MsgExists}
	if !dict.Insert(word) {
		res.Elapsed = time.Since(start)
		return res, nil
	}
	for name, other := range c.backends {
		if name != method {
			other.Insert(word)
		}
	}
	res.Added = true
	res.Message = MsgAdded

	if c.opts.Persister != nil {
		if err := c.opts.Persister.Append(word); err != nil {
			log.Errorf("Failed to persist word %q: %v", word, err)
			res.PersistError = err.Error()
		} else {
			res.Persisted = true
		}
	}
	res.Elapsed = time.Since(start)

	log.Debugf("add %q via %s: persisted=%t in %v", word, method, res.Persisted, res.Elapsed)
	return res, nil
}

// List returns every word of one backend in ascending order.
func (c *Checker) List(method string) (ListResult, error) {
	method, dict, err := c.backend(method)
	if err != nil {
		return ListResult{}, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	start := time.Now()
	words := dict.Words()
	return ListResult{
		Words:   words,
		Count:   len(words),
		Method:  method,
		Elapsed: time.Since(start),
	}, nil
}

// Suggest returns suggestions for a prefix. Non-positive limits use the
// configured default and large ones are clamped to the maximum.
func (c *Checker) Suggest(prefix string, limit int, method string) ([]string, error) {
	_, dict, err := c.backend(method)
	if err != nil {
		return nil, err
	}
	if utf8.RuneCountInString(wordset.Normalize(prefix)) > c.opts.MaxWordLen {
		return nil, ErrWordTooLong
	}
	if limit <= 0 {
		limit = c.opts.SuggestLimit
	}
	limit = min(limit, c.opts.MaxLimit)

	c.mu.Lock()
	defer c.mu.Unlock()
	return dict.Suggest(prefix, limit), nil
}

// Stats reports the size of every backend, plus tree depth where known.
func (c *Checker) Stats() map[string]int {
	c.mu.Lock()
	defer c.mu.Unlock()

	stats := make(map[string]int, 2*len(c.backends))
	for name, dict := range c.backends {
		stats[name+".words"] = dict.Len()
		if d, ok := dict.(interface{ Depth() int }); ok {
			stats[name+".depth"] = d.Depth()
		}
	}
	return stats
}

// ResolveMethod maps a requested method onto a configured backend name.
// An empty method selects the default; aliases resolve to their backend.
func (c *Checker) ResolveMethod(method string) (string, error) {
	if method == "" {
		return c.opts.DefaultMethod, nil
	}
	if name, ok := methodAliases[method]; ok {
		method = name
	}
	if _, ok := c.backends[method]; !ok {
		return "", fmt.Errorf("%q: %w", method, ErrUnknownMethod)
	}
	return method, nil
}

func (c *Checker) backend(method string) (string, IDictionary, error) {
	name, err := c.ResolveMethod(method)
	if err != nil {
		return "", nil, err
	}
	return name, c.backends[name], nil
}

func (c *Checker) validate(word string) (string, error) {
	word = wordset.Normalize(word)
	if word == "" {
		return "", ErrEmptyWord
	}
	if utf8.RuneCountInString(word) > c.opts.MaxWordLen {
		return "", ErrWordTooLong
	}
	return word, nil
}
