// Package graph traverses a frozen category graph snapshot.
//
// # Ownership Model
//
// A Snapshot owns its Page Index, Link Index and Title Index. NewSnapshot freezes
// both indices; after that nothing mutates them, so any number of goroutines can
// query one Snapshot at once. Each traversal allocates its own queue and visited
// set. Clone gives a fully independent deep copy for callers that need one.
package graph

import (
	"time"

	"github.com/google/uuid"

	"github.com/ZanzyTHEbar/wikigraph/wcg/indexing"
)

// Snapshot is an immutable pair of indices over one symbol table.
type Snapshot struct {
	ID      uuid.UUID
	Pages   *indexing.PageIndex
	Links   *indexing.LinkIndex
	Titles  *indexing.TitleIndex
	BuiltAt time.Time
}

// NewSnapshot freezes pages and links and builds the title index. Nil indices
// are treated as empty.
//
// When both indices share one symbol table the snapshot takes ownership of
// them: they are frozen in place and the caller must not mutate them
// afterwards. When the tables differ, pages is copied onto a clone of its table
// and links is re-keyed onto that clone, leaving the caller's indices and
// tables untouched.
func NewSnapshot(pages *indexing.PageIndex, links *indexing.LinkIndex) *Snapshot {
	if pages == nil {
		var syms *indexing.Symbols
		if links != nil {
			syms = links.Symbols()
		}
		pages = indexing.NewPageIndex(syms)
	}
	if links == nil {
		links = indexing.NewLinkIndex(pages.Symbols())
	}
	if links.Symbols() != pages.Symbols() {
		syms := pages.Symbols().Clone()
		pages = pages.CloneWith(syms)
		links = links.RekeyWith(syms)
	}

	pages.Freeze()
	links.Freeze()
	return &Snapshot{
		ID:      uuid.New(),
		Pages:   pages,
		Links:   links,
		Titles:  indexing.NewTitleIndex(pages),
		BuiltAt: time.Now(),
	}
}

// Symbols returns the table both indices intern into.
func (s *Snapshot) Symbols() *indexing.Symbols { return s.Pages.Symbols() }

// Clone returns a deep copy sharing no maps or slices with s. The copy is
// frozen and gets its own ID.
func (s *Snapshot) Clone() *Snapshot {
	syms := s.Symbols().Clone()
	pages := s.Pages.CloneWith(syms)
	links := s.Links.CloneWith(syms)
	pages.Freeze()
	links.Freeze()
	return &Snapshot{
		ID:      uuid.New(),
		Pages:   pages,
		Links:   links,
		Titles:  indexing.NewTitleIndex(pages),
		BuiltAt: s.BuiltAt,
	}
}
