// Package rules generates the winning lines of an N×N board and checks boards
// against them.
package rules

import (
	"slices"
	"sync"
)

// Pattern is one winning line: N flat, 0-based board indices. Patterns are
// shared between callers and must not be modified.
type Pattern []int

// Catalog caches the patterns of every board size it has been asked for.
// Entries are built once per size and never evicted.
type Catalog struct {
	entries sync.Map // int -> *catalogEntry
}

type catalogEntry struct {
	once     sync.Once
	patterns []Pattern
}

func NewCatalog() *Catalog {
	return &Catalog{}
}

var defaultCatalog = NewCatalog()

// Default returns the process-wide catalog used by GetPatterns and IsWinning.
func Default() *Catalog {
	return defaultCatalog
}

func GetPatterns(n int) []Pattern {
	return defaultCatalog.Patterns(n)
}

// Patterns returns the 2N+2 lines of an N×N board, generating them on first use.
// Concurrent first calls for the same N all observe the same slice.
func (c *Catalog) Patterns(n int) []Pattern {
	if n < 1 {
		return nil
	}
	v, ok := c.entries.Load(n)
	if !ok {
		v, _ = c.entries.LoadOrStore(n, &catalogEntry{})
	}
	e := v.(*catalogEntry)
	e.once.Do(func() {
		e.patterns = Generate(n)
	})
	return e.patterns
}

// Sizes lists the board sizes currently held, ascending.
func (c *Catalog) Sizes() []int {
	var sizes []int
	c.entries.Range(func(k, _ any) bool {
		sizes = append(sizes, k.(int))
		return true
	})
	slices.Sort(sizes)
	return sizes
}

// Generate builds the lines of an N×N board without caching: N columns, N rows,
// then the main and anti diagonal.
func Generate(n int) []Pattern {
	if n < 1 {
		return nil
	}
	patterns := make([]Pattern, 0, 2*n+2)

	// Positions are computed 1-based and stored 0-based.
	for i := 1; i <= n; i++ {
		p := make(Pattern, n)
		for j := 0; j < n; j++ {
			p[j] = i + n*j - 1
		}
		patterns = append(patterns, p)
	}

	for i := 0; i < n; i++ {
		p := make(Pattern, n)
		for j := 1; j <= n; j++ {
			p[j-1] = i*n + j - 1
		}
		patterns = append(patterns, p)
	}

	diag := make(Pattern, n)
	anti := make(Pattern, n)
	for i := 0; i < n; i++ {
		diag[i] = i*n + i
		anti[i] = i*n + (n - i) - 1
	}
	return append(patterns, diag, anti)
}
