package indexing

import (
	roaring "github.com/RoaringBitmap/roaring"
)

// HandleSet is a roaring bitmap of handles. Traversals use one per call as
// their visited set, so concurrent queries never share state.
type HandleSet struct {
	bm *roaring.Bitmap
}

func NewHandleSet(hs ...Handle) *HandleSet {
	return &HandleSet{bm: roaring.BitmapOf(hs...)}
}

func (s *HandleSet) Add(h Handle) { s.bm.Add(h) }

// CheckedAdd adds h and reports whether it was absent.
func (s *HandleSet) CheckedAdd(h Handle) bool { return s.bm.CheckedAdd(h) }

func (s *HandleSet) Contains(h Handle) bool { return s.bm.Contains(h) }

func (s *HandleSet) Len() int { return int(s.bm.GetCardinality()) }

// Handles returns members in ascending order.
func (s *HandleSet) Handles() []Handle { return s.bm.ToArray() }

// Union returns a new set; neither operand is modified.
func (s *HandleSet) Union(other *HandleSet) *HandleSet {
	return &HandleSet{bm: roaring.Or(s.bm, other.bm)}
}

func (s *HandleSet) Clone() *HandleSet {
	return &HandleSet{bm: s.bm.Clone()}
}
