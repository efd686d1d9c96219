// Package selector narrows the footswitch catalog down to the products that fit a
// wizard selection, relaxes constraints when nothing fits, counts live option
// availability and ranks results for presentation.
//
// Everything in this package is a pure function over values: no I/O, no globals
// that change after init, safe to call on every render.
package selector

import (
	"strings"
)

// Facet identifies one selectable product dimension.
type Facet string

const (
	FacetApplication Facet = "application"
	FacetTechnology  Facet = "technology"
	FacetAction      Facet = "action"
	FacetEnvironment Facet = "environment"
	FacetDuty        Facet = "duty"
	FacetMaterial    Facet = "material"
	FacetConnection  Facet = "connection"
	FacetGuard       Facet = "guard"
	FacetFeatures    Facet = "features"
	FacetSearch      Facet = "search"
)

// singleFacets are the single-valued slots of a Selection, in wizard order.
var singleFacets = []Facet{
	FacetApplication,
	FacetTechnology,
	FacetAction,
	FacetEnvironment,
	FacetDuty,
	FacetMaterial,
	FacetConnection,
	FacetGuard,
}

// allFacets is every facet a predicate exists for.
var allFacets = append(append([]Facet{}, singleFacets...), FacetFeatures, FacetSearch)

// ParseFacet resolves a facet token. ok is false for unknown tokens.
func ParseFacet(s string) (Facet, bool) {
	f := Facet(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range allFacets {
		if f == known {
			return f, true
		}
	}
	return "", false
}

// Technology values.
const (
	TechElectrical = "electrical"
	TechPneumatic  = "pneumatic"
	TechWireless   = "wireless"
)

// Action values.
const (
	ActionMomentary  = "momentary"
	ActionMaintained = "maintained"
	ActionVariable   = "variable"
)

// Duty classes, most robust first.
const (
	DutyHeavy  = "heavy"
	DutyMedium = "medium"
	DutyLight  = "light"
)

// Environment values.
const (
	EnvDry  = "dry"
	EnvAny  = "any"
	EnvDamp = "damp"
	EnvWet  = "wet"
)

// Guard values.
const (
	GuardYes = "yes"
	GuardNo  = "no"
)

// Feature tags. CustomCable and CustomConnector are pseudo-features: no product
// carries them, selecting one means the buyer needs a custom build.
const (
	FeatureShield          = "shield"
	FeatureTwin            = "twin"
	FeatureMultiStage      = "multi_stage"
	FeatureCustomCable     = "custom_cable"
	FeatureCustomConnector = "custom_connector"
)

// IsPseudoFeature reports whether id is one of the custom-engineering triggers.
func IsPseudoFeature(id string) bool {
	return id == FeatureCustomCable || id == FeatureCustomConnector
}

// NormalizeToken turns an identifier like "Feature-Custom-Cable" into its
// canonical catalog token ("custom_cable"). Free-text values such as material
// labels must not go through here.
func NormalizeToken(s string) string {
	t := strings.ToLower(strings.TrimSpace(s))
	t = strings.NewReplacer("-", "_", " ", "_").Replace(t)
	t = strings.TrimPrefix(t, "feature_")
	return t
}

// NormalizeTokens applies NormalizeToken to every element, dropping empties.
// The result is never nil.
func NormalizeTokens(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if t := NormalizeToken(s); t != "" {
			out = append(out, t)
		}
	}
	return out
}
