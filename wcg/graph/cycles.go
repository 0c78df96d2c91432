package graph

import (
	"sort"

	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"

	"github.com/ZanzyTHEbar/wikigraph/wcg/indexing"
)

// CategoryCycles reports groups of categories that are subcategories of each
// other, directly or through a chain. Each group is sorted; a category listed
// as its own subcategory forms a group of one. Groups are ordered by first label.
func (s *Snapshot) CategoryCycles() [][]string {
	syms := s.Symbols()
	g := simple.NewDirectedGraph()
	selfLoops := indexing.NewHandleSet()

	s.Links.EachLink(func(parent indexing.Handle, lk indexing.Link) bool {
		if lk.Type != indexing.MembershipSubcat {
			return true
		}
		for _, ref := range s.Pages.RefsByID(lk.Other) {
			child := ref.Key
			if child == parent {
				selfLoops.Add(child)
				continue
			}
			g.SetEdge(simple.Edge{F: simple.Node(int64(child)), T: simple.Node(int64(parent))})
		}
		return true
	})

	var groups [][]string
	for _, scc := range topo.TarjanSCC(g) {
		if len(scc) < 2 {
			continue
		}
		labels := make([]string, len(scc))
		for i, n := range scc {
			labels[i] = syms.Name(indexing.Handle(n.ID()))
		}
		sort.Strings(labels)
		groups = append(groups, labels)
	}
	for _, h := range selfLoops.Handles() {
		groups = append(groups, []string{syms.Name(h)})
	}

	sort.Slice(groups, func(i, j int) bool { return groups[i][0] < groups[j][0] })
	return groups
}
