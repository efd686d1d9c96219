package selector

import (
	"strings"
)

// Predicate reports whether a product satisfies one facet constraint.
type Predicate func(Product) bool

// predicateFor builds the predicate of facet f under sel. An unset facet
// yields a predicate that accepts every product.
func predicateFor(f Facet, sel Selection) Predicate {
	switch f {
	case FacetApplication:
		return func(p Product) bool { return MatchApplication(p, sel.Application) }
	case FacetTechnology:
		return func(p Product) bool { return MatchTechnology(p, sel.Technology) }
	case FacetAction:
		return func(p Product) bool { return MatchAction(p, sel.Action) }
	case FacetEnvironment:
		return func(p Product) bool { return MatchEnvironment(p, sel.Environment) }
	case FacetDuty:
		return func(p Product) bool { return MatchDuty(p, sel.Duty) }
	case FacetMaterial:
		return func(p Product) bool { return MatchMaterial(p, sel.Material) }
	case FacetConnection:
		return func(p Product) bool { return MatchConnection(p, sel.Connection) }
	case FacetGuard:
		return func(p Product) bool { return MatchGuard(p, sel.Guard) }
	case FacetFeatures:
		hw := hardwareFeatures(sel.Features)
		return func(p Product) bool { return matchHardwareFeatures(p, hw) }
	case FacetSearch:
		q := strings.ToLower(strings.TrimSpace(sel.Search))
		return func(p Product) bool { return matchLoweredSearch(p, q) }
	}
	return func(Product) bool { return true }
}

// MatchApplication: the product is listed for the application.
func MatchApplication(p Product, v string) bool {
	return v == "" || contains(p.Applications, v)
}

// MatchTechnology: exact technology.
func MatchTechnology(p Product, v string) bool {
	return v == "" || p.Technology == v
}

// MatchAction: the product supports the action mode.
func MatchAction(p Product, v string) bool {
	return v == "" || contains(p.Actions, v)
}

// MatchEnvironment maps the environment to an IP requirement. Damp needs IP56
// or IP68, wet needs IP68. Dry, any and unknown values accept everything.
func MatchEnvironment(p Product, v string) bool {
	switch v {
	case EnvDamp:
		return p.IP == "IP56" || p.IP == "IP68"
	case EnvWet:
		return p.IP == "IP68"
	default:
		return true
	}
}

// MatchDuty: exact duty class.
func MatchDuty(p Product, v string) bool {
	return v == "" || p.Duty == v
}

// MatchMaterial: exact material label.
func MatchMaterial(p Product, v string) bool {
	return v == "" || p.Material == v
}

// MatchConnection: exact connector type. Products without one never match a
// set value.
func MatchConnection(p Product, v string) bool {
	return v == "" || p.ConnectorType == v
}

// MatchGuard tests for the shield feature. Values other than yes/no accept
// everything.
func MatchGuard(p Product, v string) bool {
	switch v {
	case GuardYes:
		return contains(p.Features, FeatureShield)
	case GuardNo:
		return !contains(p.Features, FeatureShield)
	default:
		return true
	}
}

// MatchFeatures requires every selected hardware feature (AND). Pseudo-features
// are dropped before testing.
func MatchFeatures(p Product, selected []string) bool {
	return matchHardwareFeatures(p, hardwareFeatures(selected))
}

// MatchSearch is a case-insensitive substring test over the product's
// searchable text.
func MatchSearch(p Product, q string) bool {
	return matchLoweredSearch(p, strings.ToLower(strings.TrimSpace(q)))
}

func matchHardwareFeatures(p Product, hw []string) bool {
	for _, id := range hw {
		if !contains(p.Features, id) {
			return false
		}
	}
	return true
}

func matchLoweredSearch(p Product, q string) bool {
	if q == "" {
		return true
	}
	return strings.Contains(searchText(p), q)
}

func searchText(p Product) string {
	parts := []string{p.Series, p.Description, p.Material, p.IP, p.PartNumber, p.ID}
	parts = append(parts, p.Features...)
	return strings.ToLower(strings.Join(parts, " "))
}

// hardwareFeatures strips the pseudo-features from a selection.
func hardwareFeatures(selected []string) []string {
	hw := make([]string, 0, len(selected))
	for _, id := range selected {
		if !IsPseudoFeature(id) {
			hw = append(hw, id)
		}
	}
	return hw
}
