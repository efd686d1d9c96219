package selector

// Count returns how many products remain when every facet other than target
// keeps its current value and target is pinned to candidate. For FacetFeatures
// the candidate is added to the selected set, matching what choosing it does;
// an already selected feature counts the current selection. An empty candidate
// clears the facet.
func Count(products []Product, sel Selection, target Facet, candidate string) int {
	counted := sel.With(target, candidate)
	if target == FacetFeatures && candidate != "" {
		counted = sel
		if !contains(sel.Features, candidate) {
			counted = sel.ToggleFeature(candidate)
		}
	}
	preds := predicatesFor(counted, allFacets)
	n := 0
	for _, p := range products {
		if satisfiesAll(p, preds) {
			n++
		}
	}
	return n
}

// CountAll runs Count for every candidate and keys the result by candidate.
func CountAll(products []Product, sel Selection, target Facet, candidates []string) map[string]int {
	out := make(map[string]int, len(candidates))
	for _, v := range candidates {
		out[v] = Count(products, sel, target, v)
	}
	return out
}
