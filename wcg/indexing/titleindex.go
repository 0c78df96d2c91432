package indexing

import (
	"sort"
	"sync/atomic"

	"github.com/armon/go-radix"
)

// TitleIndexStats tracks lookup counts for the title index
type TitleIndexStats struct {
	Titles        int64
	Lookups       int64
	PrefixLookups int64
}

// TitleIndex provides O(k) exact and prefix lookups over page titles using a
// compressed trie, where k is the length of the title searched.
// It is built once and then only read, so lookups take no locks.
type TitleIndex struct {
	tree          *radix.Tree
	lookups       atomic.Int64
	prefixLookups atomic.Int64
}

// NewTitleIndex builds the trie from every title key in pages.
func NewTitleIndex(pages *PageIndex) *TitleIndex {
	idx := &TitleIndex{tree: radix.New()}
	if pages == nil {
		return idx
	}
	pages.EachTitle(func(title string, refs []PageRef) bool {
		idx.tree.Insert(title, len(refs))
		return true
	})
	return idx
}

// Lookup reports whether title is indexed and how many ids share it.
func (idx *TitleIndex) Lookup(title string) (int, bool) {
	idx.lookups.Add(1)
	v, ok := idx.tree.Get(title)
	if !ok {
		return 0, false
	}
	return v.(int), true
}

// PrefixLookup returns every title starting with prefix, sorted.
func (idx *TitleIndex) PrefixLookup(prefix string) []string {
	idx.prefixLookups.Add(1)
	var results []string
	idx.tree.WalkPrefix(prefix, func(key string, _ interface{}) bool {
		results = append(results, key)
		return false // Continue walking
	})
	// radix walks in lexical order already; keep the guarantee explicit
	sort.Strings(results)
	return results
}

func (idx *TitleIndex) Size() int { return idx.tree.Len() }

// GetStats returns a copy of the current statistics
func (idx *TitleIndex) GetStats() TitleIndexStats {
	return TitleIndexStats{
		Titles:        int64(idx.tree.Len()),
		Lookups:       idx.lookups.Load(),
		PrefixLookups: idx.prefixLookups.Load(),
	}
}
