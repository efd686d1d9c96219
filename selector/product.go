package selector

// Product is the matching view of a catalog item. Build it with NewProduct so
// the collection fields are always non-nil.
type Product struct {
	ID            string   `json:"id"`
	Series        string   `json:"series"`
	Description   string   `json:"description"`
	PartNumber    string   `json:"part_number"`
	Technology    string   `json:"technology"`
	Duty          string   `json:"duty"`
	IP            string   `json:"ip"`
	Actions       []string `json:"actions"`
	Applications  []string `json:"applications"`
	Material      string   `json:"material"`
	ConnectorType string   `json:"connector_type"`
	Features      []string `json:"features"`
	Flagship      bool     `json:"flagship"`
}

// NewProduct returns p with nil collection fields replaced by empty slices.
// It is the single normalization boundary in front of the matching pipeline.
func NewProduct(p Product) Product {
	p.Actions = nonNil(p.Actions)
	p.Applications = nonNil(p.Applications)
	p.Features = nonNil(p.Features)
	return p
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

// Eligibility gates which options are offered. Empty lists impose nothing.
type Eligibility struct {
	Applications          []string `json:"applications,omitempty"`
	Technologies          []string `json:"technologies,omitempty"`
	HiddenForTechnologies []string `json:"hidden_for_technologies,omitempty"`
}

// Option is one selectable value within a facet.
type Option struct {
	ID       string      `json:"id"`
	Category Facet       `json:"category"`
	Label    string      `json:"label"`
	Rules    Eligibility `json:"rules"`
}

// OfferedFor reports whether the option should be shown for sel.
func (o Option) OfferedFor(sel Selection) bool {
	if len(o.Rules.Applications) > 0 && !contains(o.Rules.Applications, sel.Application) {
		return false
	}
	if len(o.Rules.Technologies) > 0 && !contains(o.Rules.Technologies, sel.Technology) {
		return false
	}
	if sel.Technology != "" && contains(o.Rules.HiddenForTechnologies, sel.Technology) {
		return false
	}
	return true
}

// Catalog is a read-only snapshot of products and options, fixed for the
// lifetime of a wizard session.
type Catalog struct {
	Products []Product
	Options  []Option
}

// NewCatalog normalizes every product and keeps input order.
func NewCatalog(products []Product, options []Option) Catalog {
	ps := make([]Product, len(products))
	for i, p := range products {
		ps[i] = NewProduct(p)
	}
	opts := make([]Option, len(options))
	copy(opts, options)
	return Catalog{Products: ps, Options: opts}
}

// OptionsFor returns the options of one facet in catalog order.
func (c Catalog) OptionsFor(f Facet) []Option {
	out := make([]Option, 0)
	for _, o := range c.Options {
		if o.Category == f {
			out = append(out, o)
		}
	}
	return out
}

// Find looks a product up by id.
func (c Catalog) Find(id string) (Product, bool) {
	for _, p := range c.Products {
		if p.ID == id {
			return p, true
		}
	}
	return Product{}, false
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
