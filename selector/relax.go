package selector

// RelaxTag names the facet whose removal produced an alternative result, or
// RelaxedAll for the application-only fallback.
type RelaxTag string

// RelaxedAll tags the terminal fallback: every product for the application.
const RelaxedAll RelaxTag = "all"

// RelaxationOrder is the fixed order facets are dropped in. Application is
// never relaxed; it anchors the search.
var RelaxationOrder = []Facet{
	FacetFeatures,
	FacetEnvironment,
	FacetDuty,
	FacetMaterial,
	FacetConnection,
	FacetGuard,
	FacetAction,
	FacetTechnology,
}

// Relaxation is an alternative result set and the facet dropped to get it.
type Relaxation struct {
	Tag      RelaxTag  `json:"tag"`
	Products []Product `json:"products"`
}

// Relax drops facets from sel one at a time in RelaxationOrder, re-matching
// after each drop, and returns the first non-empty result. A dropped facet is
// never reinstated. When every drop still yields nothing the result is all
// products for the selected application, tagged RelaxedAll.
//
// Callers invoke Relax only when Match(products, sel) is empty.
func Relax(products []Product, sel Selection) Relaxation {
	active := sel
	for _, f := range RelaxationOrder {
		active = active.Without(f)
		if res := Match(products, active); len(res) > 0 {
			return Relaxation{Tag: RelaxTag(f), Products: res}
		}
	}
	anchor := Selection{Application: sel.Application, Features: []string{}}
	return Relaxation{Tag: RelaxedAll, Products: Match(products, anchor)}
}
