package selector

// Step is one wizard screen and the facet it sets.
type Step struct {
	ID    string `json:"id"`
	Facet Facet  `json:"facet"`
	Multi bool   `json:"multi"`
}

// Steps is the wizard sequence.
var Steps = []Step{
	{ID: "application", Facet: FacetApplication},
	{ID: "technology", Facet: FacetTechnology},
	{ID: "action", Facet: FacetAction},
	{ID: "environment", Facet: FacetEnvironment},
	{ID: "duty", Facet: FacetDuty},
	{ID: "material", Facet: FacetMaterial},
	{ID: "connection", Facet: FacetConnection},
	{ID: "guard", Facet: FacetGuard},
	{ID: "features", Facet: FacetFeatures, Multi: true},
}

// StepFor resolves a step id.
func StepFor(id string) (Step, bool) {
	for _, s := range Steps {
		if s.ID == id {
			return s, true
		}
	}
	return Step{}, false
}

func stepIndex(f Facet) int {
	for i, s := range Steps {
		if s.Facet == f {
			return i
		}
	}
	return -1
}

// Availability annotates an offered option with its live product count.
type Availability struct {
	Option   Option `json:"option"`
	Count    int    `json:"count"`
	Selected bool   `json:"selected"`
	Disabled bool   `json:"disabled"`
}

// Offered returns the options of facet f that pass their eligibility rules.
func Offered(c Catalog, sel Selection, f Facet) []Option {
	out := make([]Option, 0)
	for _, o := range c.OptionsFor(f) {
		if o.OfferedFor(sel) {
			out = append(out, o)
		}
	}
	return out
}

// StepOptions lists the offered options of facet f with counts. An option with
// no remaining products is disabled unless it is the active selection, which
// must stay clickable so it can be deselected.
func StepOptions(c Catalog, sel Selection, f Facet) []Availability {
	offered := Offered(c, sel, f)
	out := make([]Availability, 0, len(offered))
	for _, o := range offered {
		selected := isSelected(sel, f, o.ID)
		n := Count(c.Products, sel, f, o.ID)
		out = append(out, Availability{
			Option:   o,
			Count:    n,
			Selected: selected,
			Disabled: n == 0 && !selected,
		})
	}
	return out
}

func isSelected(sel Selection, f Facet, id string) bool {
	if f == FacetFeatures {
		return contains(sel.Features, id)
	}
	return sel.Get(f) == id
}

// Choose applies a step selection and returns the new Selection. Choosing the
// active value again deselects it; for the features step the id is toggled.
// Choices on later steps that are no longer offered are cleared.
func Choose(c Catalog, sel Selection, f Facet, value string) Selection {
	var next Selection
	switch {
	case f == FacetFeatures:
		next = sel.ToggleFeature(value)
	case sel.Get(f) == value:
		next = sel.Without(f)
	default:
		next = sel.With(f, value)
	}
	return prune(c, next, stepIndex(f))
}

// prune drops selections on steps after `from` whose option is not offered
// any more. Values without a matching option record are left alone.
func prune(c Catalog, sel Selection, from int) Selection {
	if from < 0 {
		return sel
	}
	out := sel
	for i := from + 1; i < len(Steps); i++ {
		f := Steps[i].Facet
		options := c.OptionsFor(f)
		if len(options) == 0 {
			continue
		}
		if f == FacetFeatures {
			kept := make([]string, 0, len(out.Features))
			for _, id := range out.Features {
				if o, ok := findOption(options, id); !ok || o.OfferedFor(out) {
					kept = append(kept, id)
				}
			}
			out = out.WithFeatures(kept...)
			continue
		}
		v := out.Get(f)
		if v == "" {
			continue
		}
		if o, ok := findOption(options, v); ok && !o.OfferedFor(out) {
			out = out.Without(f)
		}
	}
	return out
}

func findOption(options []Option, id string) (Option, bool) {
	for _, o := range options {
		if o.ID == id {
			return o, true
		}
	}
	return Option{}, false
}

// Outcome classifies a wizard result.
type Outcome string

const (
	// OutcomeExact: products satisfy every selected facet.
	OutcomeExact Outcome = "exact"
	// OutcomeAlternative: no exact match; Products come from relaxation.
	OutcomeAlternative Outcome = "alternative"
	// OutcomeCustomRequested: the buyer picked a custom pseudo-feature.
	OutcomeCustomRequested Outcome = "custom_requested"
	// OutcomeNoMatch: even the application-only fallback is empty.
	OutcomeNoMatch Outcome = "no_match"
)

// Result is what the results page shows.
type Result struct {
	Outcome  Outcome   `json:"outcome"`
	Products []Product `json:"products"`
	// RelaxedFacet is set only for OutcomeAlternative and OutcomeNoMatch.
	RelaxedFacet RelaxTag `json:"relaxed_facet,omitempty"`
	TopPick      *Product `json:"top_pick,omitempty"`
	Sort         SortMode `json:"sort"`
}

// NeedsCustomSolution reports whether the results page should offer the
// contact-us path instead of stock products.
func (r Result) NeedsCustomSolution() bool {
	return r.Outcome == OutcomeCustomRequested || r.Outcome == OutcomeNoMatch
}

// Resolve runs the full pipeline for a selection: exact match, custom-build
// short-circuit, relaxation when nothing matches, ranking and the top pick.
func Resolve(c Catalog, sel Selection, mode SortMode) Result {
	mode = ParseSortMode(string(mode))
	if sel.RequestsCustomBuild() {
		return Result{Outcome: OutcomeCustomRequested, Products: []Product{}, Sort: mode}
	}

	res := Result{Outcome: OutcomeExact, Sort: mode}
	products := Match(c.Products, sel)
	pinned := ""
	if len(products) == 0 {
		relaxed := Relax(c.Products, sel)
		products = relaxed.Products
		res.RelaxedFacet = relaxed.Tag
		res.Outcome = OutcomeAlternative
		if len(products) == 0 {
			res.Outcome = OutcomeNoMatch
		}
		pinned = sel.Environment
	}

	// The top pick ranks the matched list itself; the environment pin only
	// orders the displayed list.
	if top, ok := TopPick(products, sel.Duty); ok {
		res.TopPick = &top
	}
	res.Products = Sort(products, mode, pinned)
	return res
}
