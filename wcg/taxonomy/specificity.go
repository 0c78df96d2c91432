package taxonomy

// Specificity classifies a node: 0 for an instance, positive for a category
// with some ontological depth. It must never return a negative value.
type Specificity interface {
	Specificity(t *Taxonomy, node string) int
}

// SpecificityFunc adapts a function to Specificity.
type SpecificityFunc func(t *Taxonomy, node string) int

func (f SpecificityFunc) Specificity(t *Taxonomy, node string) int { return f(t, node) }

// MemberSpecificity is the number of direct members filed under node as a
// category label. Pages and memberless categories score 0.
var MemberSpecificity = SpecificityFunc(func(t *Taxonomy, node string) int {
	return len(t.snap.Links.ByLabel(node))
})

// DescendantSpecificity is the number of instance pages transitively under node.
var DescendantSpecificity = SpecificityFunc(func(t *Taxonomy, node string) int {
	return t.engine.DescendantInstances(node).Len()
})
