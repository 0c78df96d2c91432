package indexing

import (
	"fmt"
)

// PageIndex maps page identifiers to (title, namespace) pairs and titles to
// (identifier, namespace) pairs. Both directions are multi-valued and keep
// insertion order; a title exported under several ids maps to all of them.
type PageIndex struct {
	syms    *Symbols
	byID    map[Handle][]PageRef
	byTitle map[Handle][]PageRef
	records int
	frozen  bool
}

// NewPageIndex creates an empty index interning into syms. A nil syms gets a
// private table; share one table with the LinkIndex to build a snapshot.
func NewPageIndex(syms *Symbols) *PageIndex {
	if syms == nil {
		syms = NewSymbols()
	}
	return &PageIndex{
		syms:    syms,
		byID:    make(map[Handle][]PageRef),
		byTitle: make(map[Handle][]PageRef),
	}
}

// Add records one page in both directions. Namespace filtering is the loader's job.
func (p *PageIndex) Add(id string, ns Namespace, title string) error {
	if p.frozen {
		return ErrFrozen
	}
	idh := p.syms.Intern(id)
	th := p.syms.Intern(title)
	p.byID[idh] = append(p.byID[idh], PageRef{Key: th, Namespace: ns})
	p.byTitle[th] = append(p.byTitle[th], PageRef{Key: idh, Namespace: ns})
	p.records++
	return nil
}

// Freeze makes the index read-only. After Freeze it is safe for concurrent readers.
func (p *PageIndex) Freeze() { p.frozen = true }

func (p *PageIndex) Frozen() bool { return p.frozen }

func (p *PageIndex) Symbols() *Symbols { return p.syms }

// Len returns the number of page records added.
func (p *PageIndex) Len() int { return p.records }

// HasID reports whether id is a key of the identifier direction.
func (p *PageIndex) HasID(id string) bool {
	h, ok := p.syms.Lookup(id)
	if !ok {
		return false
	}
	_, ok = p.byID[h]
	return ok
}

// HasTitle reports whether title is a key of the title direction.
func (p *PageIndex) HasTitle(title string) bool {
	h, ok := p.syms.Lookup(title)
	if !ok {
		return false
	}
	_, ok = p.byTitle[h]
	return ok
}

// HasKey reports whether key is known as either an identifier or a title.
func (p *PageIndex) HasKey(key string) bool {
	return p.HasID(key) || p.HasTitle(key)
}

// RefsByID returns the stored entries for an identifier handle.
// The slice is shared with the index and must not be modified.
func (p *PageIndex) RefsByID(h Handle) []PageRef { return p.byID[h] }

// RefsByTitle returns the stored entries for a title handle.
// The slice is shared with the index and must not be modified.
func (p *PageIndex) RefsByTitle(h Handle) []PageRef { return p.byTitle[h] }

// ByID returns a copy of the (title handle, namespace) entries for id.
func (p *PageIndex) ByID(id string) []PageRef {
	h, ok := p.syms.Lookup(id)
	if !ok {
		return nil
	}
	return append([]PageRef(nil), p.byID[h]...)
}

// ByTitle returns a copy of the (id handle, namespace) entries for title.
func (p *PageIndex) ByTitle(title string) []PageRef {
	h, ok := p.syms.Lookup(title)
	if !ok {
		return nil
	}
	return append([]PageRef(nil), p.byTitle[h]...)
}

// TitlesOf resolves an identifier to its titles.
func (p *PageIndex) TitlesOf(id string) []string {
	return p.names(p.ByID(id))
}

// IDsOf resolves a title to its identifiers.
func (p *PageIndex) IDsOf(title string) []string {
	return p.names(p.ByTitle(title))
}

// FirstID returns the first identifier recorded for title.
func (p *PageIndex) FirstID(title string) (string, bool) {
	refs := p.ByTitle(title)
	if len(refs) == 0 {
		return "", false
	}
	return p.syms.Name(refs[0].Key), true
}

// EachTitle calls fn for every title key until fn returns false.
func (p *PageIndex) EachTitle(fn func(title string, refs []PageRef) bool) {
	for h, refs := range p.byTitle {
		if !fn(p.syms.Name(h), refs) {
			return
		}
	}
}

func (p *PageIndex) names(refs []PageRef) []string {
	if len(refs) == 0 {
		return nil
	}
	out := make([]string, len(refs))
	for i, r := range refs {
		out[i] = p.syms.Name(r.Key)
	}
	return out
}

// Clone returns a deep copy with its own symbol table. The copy is not frozen.
func (p *PageIndex) Clone() *PageIndex {
	return p.CloneWith(p.syms.Clone())
}

// CloneWith deep-copies the index onto syms, which must be a clone of the
// index's own table (handles are reused as-is).
func (p *PageIndex) CloneWith(syms *Symbols) *PageIndex {
	c := &PageIndex{
		syms:    syms,
		byID:    make(map[Handle][]PageRef, len(p.byID)),
		byTitle: make(map[Handle][]PageRef, len(p.byTitle)),
		records: p.records,
	}
	for h, refs := range p.byID {
		c.byID[h] = append([]PageRef(nil), refs...)
	}
	for h, refs := range p.byTitle {
		c.byTitle[h] = append([]PageRef(nil), refs...)
	}
	return c
}

// Validate checks that every entry has its reciprocal in the other direction.
func (p *PageIndex) Validate() []error {
	var errs []error
	for idh, refs := range p.byID {
		for _, r := range refs {
			if !containsRef(p.byTitle[r.Key], PageRef{Key: idh, Namespace: r.Namespace}) {
				errs = append(errs, fmt.Errorf("page_reciprocal_missing: id %q -> title %q has no reverse entry",
					p.syms.Name(idh), p.syms.Name(r.Key)))
			}
		}
	}
	for th, refs := range p.byTitle {
		for _, r := range refs {
			if !containsRef(p.byID[r.Key], PageRef{Key: th, Namespace: r.Namespace}) {
				errs = append(errs, fmt.Errorf("page_reciprocal_missing: title %q -> id %q has no reverse entry",
					p.syms.Name(th), p.syms.Name(r.Key)))
			}
		}
	}
	return errs
}

func containsRef(refs []PageRef, want PageRef) bool {
	for _, r := range refs {
		if r == want {
			return true
		}
	}
	return false
}
