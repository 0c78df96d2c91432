package graph

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ZanzyTHEbar/wikigraph/wcg/indexing"
)

func TestSnapshot(t *testing.T) {
	t.Run("freezes both indices", func(t *testing.T) {
		snap := recipesSnapshot(t)
		assert.True(t, snap.Pages.Frozen())
		assert.True(t, snap.Links.Frozen())
		assert.ErrorIs(t, snap.Pages.Add("9", art, "'Pear'"), indexing.ErrFrozen)
		assert.Equal(t, 3, snap.Titles.Size())
	})

	t.Run("clone shares nothing with the original", func(t *testing.T) {
		snap := recipesSnapshot(t)
		c := snap.Clone()
		assert.NotEqual(t, snap.ID, c.ID)
		assert.NotSame(t, snap.Symbols(), c.Symbols())

		c.Symbols().Intern("'Pear'")
		_, ok := snap.Symbols().Lookup("'Pear'")
		assert.False(t, ok)

		e := NewEngine(c, "'Recipes'")
		assert.Equal(t, []string{"'Apple'"}, e.DescendantInstances("'Recipes'").Sorted())
	})

	t.Run("links interned elsewhere are re-keyed", func(t *testing.T) {
		pi := indexing.NewPageIndex(nil)
		require.NoError(t, pi.Add("1", art, "'Apple'"))
		require.NoError(t, pi.Add("2", cat, "'Fruits'"))
		li := indexing.NewLinkIndex(nil)
		require.NoError(t, li.Add("1", "'Fruits'", pg))

		snap := NewSnapshot(pi, li)
		assert.Same(t, snap.Pages.Symbols(), snap.Links.Symbols())
		assert.Empty(t, snap.Links.Validate())
		assert.Equal(t, []string{"'Apple'"}, NewEngine(snap, "'Fruits'").DescendantInstances("'Fruits'").Sorted())
	})

	t.Run("re-keyed links keep their order across builds", func(t *testing.T) {
		for i := 0; i < 25; i++ {
			pi := indexing.NewPageIndex(nil)
			for _, p := range []page{{"1", art, "P"}, {"2", cat, "A"}, {"3", cat, "B"}, {"4", cat, "Root"}, {"5", cat, "X"}} {
				require.NoError(t, pi.Add(p.id, p.ns, p.title))
			}
			li := indexing.NewLinkIndex(nil)
			for _, l := range []link{{"1", "A", pg}, {"1", "B", pg}, {"2", "Root", sub}, {"3", "X", sub}} {
				require.NoError(t, li.Add(l.child, l.label, l.typ))
			}

			e := NewEngine(NewSnapshot(pi, li), "Root")
			require.Equal(t, []string{"A", "B"}, e.ParentCategories("P"))
			require.Equal(t, []string{"A", "B", "Root"}, e.AncestorCategories("P").Sorted(),
				"A is expanded first and reaches the root before B's parent is explored")
		}
	})

	t.Run("indices on other tables are left untouched", func(t *testing.T) {
		pi := indexing.NewPageIndex(nil)
		require.NoError(t, pi.Add("1", art, "'Apple'"))
		li := indexing.NewLinkIndex(nil)
		require.NoError(t, li.Add("1", "'Ghost'", pg))

		snap := NewSnapshot(pi, li)
		assert.False(t, pi.Frozen())
		assert.False(t, li.Frozen())
		_, ok := pi.Symbols().Lookup("'Ghost'")
		assert.False(t, ok, "caller's page table gains no names")
		_, ok = snap.Symbols().Lookup("'Ghost'")
		assert.True(t, ok)
		assert.NotSame(t, pi, snap.Pages)
		assert.Equal(t, []string{"'Ghost'"}, NewEngine(snap, "Root").ParentCategories("'Apple'"))
	})

	t.Run("nil indices are empty", func(t *testing.T) {
		snap := NewSnapshot(nil, nil)
		assert.Equal(t, 0, snap.Pages.Len())
		assert.Equal(t, 0, snap.Links.Len())
	})
}

func TestSnapshot_CategoryCycles(t *testing.T) {
	snap := buildSnapshot(t,
		[]page{
			{"10", cat, "A"}, {"11", cat, "B"}, {"12", cat, "C"},
			{"13", cat, "Self"}, {"14", cat, "Acyclic"}, {"1", art, "Leaf"},
		},
		[]link{
			{"11", "A", sub}, {"12", "B", sub}, {"10", "C", sub},
			{"13", "Self", sub},
			{"14", "A", sub},
			{"1", "B", pg},
		},
	)

	assert.Equal(t, [][]string{{"A", "B", "C"}, {"Self"}}, snap.CategoryCycles())
	assert.Empty(t, recipesSnapshot(t).CategoryCycles())
}

func TestLogTracer(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf).Level(zerolog.TraceLevel)
	e := NewEngine(recipesSnapshot(t), "'Recipes'", WithTracer(NewLogTracer(logger)))

	e.AncestorCategories("'Apple'")
	assert.Contains(t, buf.String(), `"event":"root_found"`)
	assert.Contains(t, buf.String(), `"event":"edge_followed"`)
	assert.Contains(t, buf.String(), `"membership":"subcat"`)
}
