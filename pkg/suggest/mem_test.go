//go:build test

package suggest

import (
	"fmt"
	"runtime"
	"sync"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

var memPrefixes = [][]string{
	{"a", "ab", "abc", "abcd", "abcde"},
	{"h", "he", "hel", "hell", "hello"},
	{"w", "wo", "wor", "worl", "world"},
	{"p", "pr", "pro", "prog", "progr", "progra", "program"},
	{"i", "in", "int", "inte", "inter", "intern", "interna", "internat"},
}

func memChecker(t *testing.T) *Checker {
	t.Helper()
	log.SetLevel(log.ErrorLevel)
	words := make([]string, 0, 20000)
	for i := range 20000 {
		words = append(words, fmt.Sprintf("%c%c%cword%d", 'a'+rune(i%26), 'a'+rune(i/26%26), 'a'+rune(i/676%26), i))
	}
	backends, err := NewBackends(language.English, words)
	require.NoError(t, err)
	c, err := NewChecker(backends, Options{})
	require.NoError(t, err)
	return c
}

// readOnly runs check and suggest requests, which must not retain memory.
func readOnly(c *Checker, rounds int) int {
	ops := 0
	for i := 0; i < rounds; i++ {
		for _, pattern := range memPrefixes {
			for _, prefix := range pattern {
				for _, method := range []string{MethodBST, MethodTrie} {
					c.Check(prefix, method)
					c.Suggest(prefix, 10, method)
					ops += 2
				}
			}
		}
	}
	return ops
}

func heapDelta(t *testing.T, run func() int) {
	t.Helper()
	var baseline runtime.MemStats
	runtime.GC()
	runtime.ReadMemStats(&baseline)
	baselineGoroutines := runtime.NumGoroutine()

	ops := run()

	var final runtime.MemStats
	runtime.GC()
	runtime.ReadMemStats(&final)

	memDelta := int64(final.HeapAlloc) - int64(baseline.HeapAlloc)
	goroutineDelta := runtime.NumGoroutine() - baselineGoroutines
	memPerOp := float64(memDelta) / float64(ops)
	t.Logf("ops=%d mem_delta=%d bytes mem_per_op=%.2f goroutine_delta=%d", ops, memDelta, memPerOp, goroutineDelta)

	if memPerOp > 100 {
		t.Errorf("excessive memory retained per operation: %.2f bytes", memPerOp)
	}
	if goroutineDelta > 2 {
		t.Errorf("goroutine leak detected: %d goroutines leaked", goroutineDelta)
	}
}

func TestMemoryReadOnly(t *testing.T) {
	c := memChecker(t)
	for _, rounds := range []int{10, 50, 100} {
		t.Run(fmt.Sprintf("rounds_%d", rounds), func(t *testing.T) {
			heapDelta(t, func() int { return readOnly(c, rounds) })
		})
	}
}

func TestMemoryConcurrent(t *testing.T) {
	c := memChecker(t)
	for _, workers := range []int{2, 4, 8} {
		t.Run(fmt.Sprintf("workers_%d", workers), func(t *testing.T) {
			heapDelta(t, func() int {
				var (
					wg  sync.WaitGroup
					mu  sync.Mutex
					ops int
				)
				for i := 0; i < workers; i++ {
					wg.Add(1)
					go func() {
						defer wg.Done()
						n := readOnly(c, 100/workers)
						mu.Lock()
						ops += n
						mu.Unlock()
					}()
				}
				wg.Wait()
				return ops
			})
		})
	}
}
