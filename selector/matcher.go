package selector

// Match returns the products satisfying every facet of sel, in catalog order.
// The result is never nil.
func Match(products []Product, sel Selection) []Product {
	return filter(products, predicatesFor(sel, allFacets))
}

// MatchCatalog is Match over a catalog snapshot.
func MatchCatalog(c Catalog, sel Selection) []Product {
	return Match(c.Products, sel)
}

func predicatesFor(sel Selection, facets []Facet) []Predicate {
	preds := make([]Predicate, 0, len(facets))
	for _, f := range facets {
		if !sel.Active(f) {
			continue
		}
		preds = append(preds, predicateFor(f, sel))
	}
	return preds
}

func filter(products []Product, preds []Predicate) []Product {
	out := make([]Product, 0, len(products))
	for _, p := range products {
		if satisfiesAll(p, preds) {
			out = append(out, p)
		}
	}
	return out
}

func satisfiesAll(p Product, preds []Predicate) bool {
	for _, pred := range preds {
		if !pred(p) {
			return false
		}
	}
	return true
}
