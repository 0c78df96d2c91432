package graph

import (
	"sort"
	"time"

	"github.com/ZanzyTHEbar/wikigraph/wcg/indexing"
)

// Set is an unordered set of titles or labels.
type Set map[string]struct{}

func (s Set) Has(v string) bool {
	_, ok := s[v]
	return ok
}

func (s Set) Len() int { return len(s) }

// Sorted returns the members in lexical order.
func (s Set) Sorted() []string {
	out := make([]string, 0, len(s))
	for v := range s {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

// Engine answers ancestor and descendant queries over one Snapshot.
// It holds no per-query state and is safe for concurrent use.
type Engine struct {
	snap   *Snapshot
	root   string
	tracer Tracer
}

type EngineOption func(*Engine)

// WithTracer installs a traversal hook. A nil tracer disables tracing.
func WithTracer(t Tracer) EngineOption {
	return func(e *Engine) {
		e.tracer = t
	}
}

// NewEngine binds an engine to snap. root is the label at which ancestor
// searches stop. A nil snap is treated as an empty graph.
func NewEngine(snap *Snapshot, root string, opts ...EngineOption) *Engine {
	if snap == nil {
		snap = NewSnapshot(nil, nil)
	}
	e := &Engine{snap: snap, root: root}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Engine) Snapshot() *Snapshot { return e.snap }

func (e *Engine) Root() string { return e.root }

// AncestorCategories walks breadth-first up the membership edges of title and
// returns every category label discovered. The walk stops once the root label
// has been discovered or nothing is left to expand; the result is transitive,
// not just direct parents. Unknown titles give an empty set.
func (e *Engine) AncestorCategories(title string) Set {
	start := time.Now()
	syms := e.snap.Symbols()
	pages, links := e.snap.Pages, e.snap.Links

	th, ok := syms.Lookup(title)
	if !ok || len(pages.RefsByTitle(th)) == 0 {
		e.observe(OpAncestors, start, 0, 0)
		return Set{}
	}
	rootH, rootKnown := syms.Lookup(e.root)

	seeds := pages.RefsByTitle(th)
	queue := make([]indexing.Handle, 0, len(seeds))
	visited := indexing.NewHandleSet()
	for _, ref := range seeds {
		queue = append(queue, ref.Key)
		visited.Add(ref.Key)
	}

	found := indexing.NewHandleSet()
	rootFound := false
	expanded := 0
	for len(queue) > 0 && !rootFound {
		id := queue[0]
		queue = queue[1:]
		expanded++
		e.emit(Event{Kind: EventNodeVisited, Op: OpAncestors}, id, 0)

		for _, lk := range links.LinksByChild(id) {
			label := lk.Other
			refs := pages.RefsByTitle(label)
			if len(refs) == 0 {
				// No page record for the category: keep the label, nothing to expand.
				if !found.CheckedAdd(label) {
					continue
				}
			} else {
				catID := refs[0].Key
				if !visited.CheckedAdd(catID) {
					continue
				}
				found.Add(label)
				queue = append(queue, catID)
			}
			e.emit(Event{Kind: EventEdgeFollowed, Op: OpAncestors, Membership: lk.Type}, label, id)

			if rootKnown && label == rootH && !rootFound {
				rootFound = true
				e.emit(Event{Kind: EventRootFound, Op: OpAncestors}, label, id)
			}
		}
	}

	e.observe(OpAncestors, start, expanded, found.Len())
	return e.names(found)
}

// ParentCategories returns the labels title is directly a member of, across all
// identifiers sharing the title, in first-seen order.
func (e *Engine) ParentCategories(title string) []string {
	start := time.Now()
	syms := e.snap.Symbols()
	th, ok := syms.Lookup(title)
	if !ok {
		e.observe(OpParents, start, 0, 0)
		return nil
	}

	seen := indexing.NewHandleSet()
	var out []string
	refs := e.snap.Pages.RefsByTitle(th)
	for _, ref := range refs {
		for _, lk := range e.snap.Links.LinksByChild(ref.Key) {
			if seen.CheckedAdd(lk.Other) {
				out = append(out, syms.Name(lk.Other))
			}
		}
	}
	e.observe(OpParents, start, len(refs), len(out))
	return out
}

// DescendantInstances walks breadth-first down subcat edges from label and
// returns the titles of every page-typed member reached. Each category is
// expanded at most once, so cycles terminate. Labels with no members give an
// empty set.
func (e *Engine) DescendantInstances(label string) Set {
	return e.names(e.descendantHandles(label))
}

func (e *Engine) descendantHandles(label string) *indexing.HandleSet {
	start := time.Now()
	syms := e.snap.Symbols()
	pages, links := e.snap.Pages, e.snap.Links

	result := indexing.NewHandleSet()
	lh, ok := syms.Lookup(label)
	if !ok || !links.HasLabelHandle(lh) {
		e.observe(OpDescendants, start, 0, 0)
		return result
	}

	visited := indexing.NewHandleSet(lh)
	queue := []indexing.Handle{lh}
	expanded := 0
	for len(queue) > 0 {
		cat := queue[0]
		queue = queue[1:]
		expanded++
		e.emit(Event{Kind: EventNodeVisited, Op: OpDescendants}, cat, 0)

		for _, lk := range links.LinksByLabel(cat) {
			for _, ref := range pages.RefsByID(lk.Other) {
				switch lk.Type {
				case indexing.MembershipPage:
					result.Add(ref.Key)
				case indexing.MembershipSubcat:
					if visited.Contains(ref.Key) || !links.HasLabelHandle(ref.Key) {
						continue
					}
					visited.Add(ref.Key)
					queue = append(queue, ref.Key)
					e.emit(Event{Kind: EventEdgeFollowed, Op: OpDescendants, Membership: lk.Type}, ref.Key, cat)
				}
			}
		}
	}

	e.observe(OpDescendants, start, expanded, result.Len())
	return result
}

func (e *Engine) names(hs *indexing.HandleSet) Set {
	syms := e.snap.Symbols()
	out := make(Set, hs.Len())
	for _, h := range hs.Handles() {
		out[syms.Name(h)] = struct{}{}
	}
	return out
}

// emit resolves names only when a tracer is installed.
func (e *Engine) emit(ev Event, node, from indexing.Handle) {
	if e.tracer == nil {
		return
	}
	syms := e.snap.Symbols()
	ev.Node = syms.Name(node)
	if ev.Kind == EventEdgeFollowed || ev.Kind == EventRootFound {
		ev.From = syms.Name(from)
	}
	e.tracer.Trace(ev)
}

func (e *Engine) observe(op string, start time.Time, expanded, results int) {
	result := "found"
	if results == 0 {
		result = "empty"
	}
	traversalsTotal.WithLabelValues(op, result).Inc()
	traversalDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
	traversalExpanded.WithLabelValues(op).Observe(float64(expanded))
}
