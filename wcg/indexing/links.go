package indexing

import (
	"fmt"
)

// LinkIndex maps category labels to their (child id, membership) entries and
// child ids to their (parent label, membership) entries. The two directions are
// separate maps, so a label that happens to look like an id is never confused
// with one.
type LinkIndex struct {
	syms    *Symbols
	byLabel map[Handle][]Link
	byChild map[Handle][]Link
	records int
	frozen  bool
}

func NewLinkIndex(syms *Symbols) *LinkIndex {
	if syms == nil {
		syms = NewSymbols()
	}
	return &LinkIndex{
		syms:    syms,
		byLabel: make(map[Handle][]Link),
		byChild: make(map[Handle][]Link),
	}
}

// Add records one membership in both directions.
func (l *LinkIndex) Add(childID, label string, typ MembershipType) error {
	if l.frozen {
		return ErrFrozen
	}
	ch := l.syms.Intern(childID)
	lh := l.syms.Intern(label)
	l.byLabel[lh] = append(l.byLabel[lh], Link{Other: ch, Type: typ})
	l.byChild[ch] = append(l.byChild[ch], Link{Other: lh, Type: typ})
	l.records++
	return nil
}

func (l *LinkIndex) Freeze() { l.frozen = true }

func (l *LinkIndex) Frozen() bool { return l.frozen }

func (l *LinkIndex) Symbols() *Symbols { return l.syms }

// Len returns the number of link records added.
func (l *LinkIndex) Len() int { return l.records }

// NumLabels returns the number of distinct parent labels.
func (l *LinkIndex) NumLabels() int { return len(l.byLabel) }

// HasLabel reports whether label has at least one member.
func (l *LinkIndex) HasLabel(label string) bool {
	h, ok := l.syms.Lookup(label)
	if !ok {
		return false
	}
	return l.HasLabelHandle(h)
}

func (l *LinkIndex) HasLabelHandle(h Handle) bool {
	_, ok := l.byLabel[h]
	return ok
}

// HasChild reports whether childID is classified under at least one label.
func (l *LinkIndex) HasChild(childID string) bool {
	h, ok := l.syms.Lookup(childID)
	if !ok {
		return false
	}
	_, ok = l.byChild[h]
	return ok
}

// HasKey reports whether key is known as either a label or a child id.
func (l *LinkIndex) HasKey(key string) bool {
	return l.HasLabel(key) || l.HasChild(key)
}

// LinksByLabel returns the stored members of a label handle.
// The slice is shared with the index and must not be modified.
func (l *LinkIndex) LinksByLabel(h Handle) []Link { return l.byLabel[h] }

// LinksByChild returns the stored parents of a child handle.
// The slice is shared with the index and must not be modified.
func (l *LinkIndex) LinksByChild(h Handle) []Link { return l.byChild[h] }

// ByLabel returns a copy of the members of label.
func (l *LinkIndex) ByLabel(label string) []Link {
	h, ok := l.syms.Lookup(label)
	if !ok {
		return nil
	}
	return append([]Link(nil), l.byLabel[h]...)
}

// ByChild returns a copy of the parents of childID.
func (l *LinkIndex) ByChild(childID string) []Link {
	h, ok := l.syms.Lookup(childID)
	if !ok {
		return nil
	}
	return append([]Link(nil), l.byChild[h]...)
}

// EachLink calls fn once per record, in label-keyed form, until fn returns false.
func (l *LinkIndex) EachLink(fn func(label Handle, link Link) bool) {
	for lh, links := range l.byLabel {
		for _, lk := range links {
			if !fn(lh, lk) {
				return
			}
		}
	}
}

func (l *LinkIndex) Clone() *LinkIndex {
	return l.CloneWith(l.syms.Clone())
}

// CloneWith deep-copies the index onto syms, which must be a clone of the
// index's own table.
func (l *LinkIndex) CloneWith(syms *Symbols) *LinkIndex {
	c := &LinkIndex{
		syms:    syms,
		byLabel: make(map[Handle][]Link, len(l.byLabel)),
		byChild: make(map[Handle][]Link, len(l.byChild)),
		records: l.records,
	}
	for h, links := range l.byLabel {
		c.byLabel[h] = append([]Link(nil), links...)
	}
	for h, links := range l.byChild {
		c.byChild[h] = append([]Link(nil), links...)
	}
	return c
}

// RekeyWith copies the index onto an unrelated symbol table, translating every
// handle by name. Each entry list keeps its insertion order. The copy is not frozen.
func (l *LinkIndex) RekeyWith(syms *Symbols) *LinkIndex {
	c := &LinkIndex{
		syms:    syms,
		byLabel: make(map[Handle][]Link, len(l.byLabel)),
		byChild: make(map[Handle][]Link, len(l.byChild)),
		records: l.records,
	}
	remap := func(links []Link) []Link {
		out := make([]Link, len(links))
		for i, lk := range links {
			out[i] = Link{Other: syms.Intern(l.syms.Name(lk.Other)), Type: lk.Type}
		}
		return out
	}
	for h, links := range l.byLabel {
		c.byLabel[syms.Intern(l.syms.Name(h))] = remap(links)
	}
	for h, links := range l.byChild {
		c.byChild[syms.Intern(l.syms.Name(h))] = remap(links)
	}
	return c
}

// Validate checks that every entry has its reciprocal in the other direction.
func (l *LinkIndex) Validate() []error {
	var errs []error
	for lh, links := range l.byLabel {
		for _, lk := range links {
			if !containsLink(l.byChild[lk.Other], Link{Other: lh, Type: lk.Type}) {
				errs = append(errs, fmt.Errorf("link_reciprocal_missing: label %q -> child %q has no reverse entry",
					l.syms.Name(lh), l.syms.Name(lk.Other)))
			}
		}
	}
	for ch, links := range l.byChild {
		for _, lk := range links {
			if !containsLink(l.byLabel[lk.Other], Link{Other: ch, Type: lk.Type}) {
				errs = append(errs, fmt.Errorf("link_reciprocal_missing: child %q -> label %q has no reverse entry",
					l.syms.Name(ch), l.syms.Name(lk.Other)))
			}
		}
	}
	return errs
}

func containsLink(links []Link, want Link) bool {
	for _, lk := range links {
		if lk == want {
			return true
		}
	}
	return false
}
