// Package taxonomy exposes the category graph as a taxonomy: instance and
// category predicates, the configured root, and its cached instance count.
package taxonomy

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	internal "github.com/ZanzyTHEbar/wikigraph/wcg"
	"github.com/ZanzyTHEbar/wikigraph/wcg/config"
	"github.com/ZanzyTHEbar/wikigraph/wcg/graph"
	"github.com/ZanzyTHEbar/wikigraph/wcg/indexing"
	"github.com/ZanzyTHEbar/wikigraph/wcg/records"
)

// Taxonomy is a read-only view over one snapshot. All methods are safe for
// concurrent use.
type Taxonomy struct {
	root     string
	snap     *graph.Snapshot
	engine   *graph.Engine
	oracle   Specificity
	tracer   graph.Tracer
	logger   zerolog.Logger
	numInsts int
}

type Option func(*Taxonomy)

// WithRoot overrides the root category label.
func WithRoot(root string) Option {
	return func(t *Taxonomy) {
		if root != "" {
			t.root = root
		}
	}
}

// WithSpecificity sets the oracle used by IsInstance and IsCategory.
func WithSpecificity(s Specificity) Option {
	return func(t *Taxonomy) {
		if s != nil {
			t.oracle = s
		}
	}
}

// WithTracer forwards traversal events to tr.
func WithTracer(tr graph.Tracer) Option {
	return func(t *Taxonomy) {
		t.tracer = tr
	}
}

// WithLogger sets a custom logger
func WithLogger(logger zerolog.Logger) Option {
	return func(t *Taxonomy) {
		t.logger = logger
	}
}

// New builds a taxonomy over snap and counts the root's instances once.
// A nil snap is an empty graph.
func New(snap *graph.Snapshot, opts ...Option) *Taxonomy {
	if snap == nil {
		snap = graph.NewSnapshot(nil, nil)
	}
	t := &Taxonomy{
		root:   internal.DefaultRootCategory,
		snap:   snap,
		oracle: MemberSpecificity,
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(t)
	}
	var engineOpts []graph.EngineOption
	if t.tracer != nil {
		engineOpts = append(engineOpts, graph.WithTracer(t.tracer))
	}
	t.engine = graph.NewEngine(snap, t.root, engineOpts...)
	t.numInsts = t.engine.DescendantInstances(t.root).Len()

	t.logger.Info().Str("snapshot", snap.ID.String()).Str("root", t.root).
		Int("pages", snap.Pages.Len()).Int("links", snap.Links.Len()).
		Int("instances", t.numInsts).Msg("taxonomy ready")
	return t
}

// FromIndices freezes pages and links into a snapshot and builds a taxonomy.
func FromIndices(pages *indexing.PageIndex, links *indexing.LinkIndex, opts ...Option) *Taxonomy {
	return New(graph.NewSnapshot(pages, links), opts...)
}

// Open loads both export files. Ingestion errors are the only failures.
func Open(pagesPath, linksPath string, opts ...Option) (*Taxonomy, error) {
	probe := &Taxonomy{logger: zerolog.Nop()}
	for _, opt := range opts {
		opt(probe)
	}
	loader := records.NewLoader(records.WithLogger(probe.logger))
	pages, links, err := loader.LoadFiles(pagesPath, linksPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load category graph: %w", err)
	}
	return FromIndices(pages, links, opts...), nil
}

// FromConfig opens the sources named in cfg with its root and trace settings.
func FromConfig(cfg *config.Config, logger zerolog.Logger, opts ...Option) (*Taxonomy, error) {
	base := []Option{WithRoot(cfg.Taxonomy.Root), WithLogger(logger)}
	if cfg.Query.Trace {
		base = append(base, WithTracer(graph.NewLogTracer(logger)))
	}
	return Open(cfg.Sources.Pages, cfg.Sources.CategoryLinks, append(base, opts...)...)
}

// Root returns the configured root category label.
func (t *Taxonomy) Root() string { return t.root }

// NumInstances returns the instance count under the root, computed at construction.
func (t *Taxonomy) NumInstances() int { return t.numInsts }

// Specificity consults the oracle for node.
func (t *Taxonomy) Specificity(node string) int { return t.oracle.Specificity(t, node) }

// IsInstance reports whether node is a known page id or title with zero specificity.
func (t *Taxonomy) IsInstance(node string) bool {
	return t.snap.Pages.HasKey(node) && t.Specificity(node) == 0
}

// IsCategory reports whether node is a known label or child id with positive specificity.
func (t *Taxonomy) IsCategory(node string) bool {
	return t.snap.Links.HasKey(node) && t.Specificity(node) > 0
}

// AncestorCategories returns the categories found walking up from node until
// the root is reached. See graph.Engine.AncestorCategories.
func (t *Taxonomy) AncestorCategories(node string) graph.Set {
	return t.engine.AncestorCategories(node)
}

// DescendantInstances returns the instance pages under the category node.
func (t *Taxonomy) DescendantInstances(node string) graph.Set {
	return t.engine.DescendantInstances(node)
}

// ParentCategories returns only the direct parents of node.
func (t *Taxonomy) ParentCategories(node string) []string {
	return t.engine.ParentCategories(node)
}

func (t *Taxonomy) DescendantCounts(ctx context.Context, labels []string, workers int) (map[string]int, error) {
	return t.engine.DescendantCounts(ctx, labels, workers)
}

func (t *Taxonomy) BatchAncestors(ctx context.Context, titles []string, workers int) (map[string]graph.Set, error) {
	return t.engine.BatchAncestors(ctx, titles, workers)
}

// SearchTitles returns known page titles starting with prefix.
func (t *Taxonomy) SearchTitles(prefix string) []string {
	return t.snap.Titles.PrefixLookup(prefix)
}

// CategoryCycles reports categories that are, transitively, their own subcategories.
func (t *Taxonomy) CategoryCycles() [][]string {
	return t.snap.CategoryCycles()
}

// Snapshot returns the shared frozen snapshot.
func (t *Taxonomy) Snapshot() *graph.Snapshot { return t.snap }

// Pages returns a private, mutable copy of the Page Index.
func (t *Taxonomy) Pages() *indexing.PageIndex { return t.snap.Pages.Clone() }

// Links returns a private, mutable copy of the Category-Link Index.
func (t *Taxonomy) Links() *indexing.LinkIndex { return t.snap.Links.Clone() }
