package selector

import "strings"

// Selection is the wizard state: one slot per single-valued facet (empty means
// unconstrained), the selected feature ids and a free-text search.
//
// Selection is a value object. Every update method returns a new Selection and
// leaves the receiver untouched.
type Selection struct {
	Application string   `json:"application"`
	Technology  string   `json:"technology"`
	Action      string   `json:"action"`
	Environment string   `json:"environment"`
	Duty        string   `json:"duty"`
	Material    string   `json:"material"`
	Connection  string   `json:"connection"`
	Guard       string   `json:"guard"`
	Features    []string `json:"features"`
	Search      string   `json:"search"`
}

// Get returns the value held for a single-valued facet or the search text.
// Features are not a single value; use Selection.Features.
func (s Selection) Get(f Facet) string {
	switch f {
	case FacetApplication:
		return s.Application
	case FacetTechnology:
		return s.Technology
	case FacetAction:
		return s.Action
	case FacetEnvironment:
		return s.Environment
	case FacetDuty:
		return s.Duty
	case FacetMaterial:
		return s.Material
	case FacetConnection:
		return s.Connection
	case FacetGuard:
		return s.Guard
	case FacetSearch:
		return s.Search
	}
	return ""
}

// With returns a copy with facet f set to value. For FacetFeatures the feature
// set is replaced by the single id value (or cleared when value is empty).
func (s Selection) With(f Facet, value string) Selection {
	out := s.clone()
	switch f {
	case FacetApplication:
		out.Application = value
	case FacetTechnology:
		out.Technology = value
	case FacetAction:
		out.Action = value
	case FacetEnvironment:
		out.Environment = value
	case FacetDuty:
		out.Duty = value
	case FacetMaterial:
		out.Material = value
	case FacetConnection:
		out.Connection = value
	case FacetGuard:
		out.Guard = value
	case FacetSearch:
		out.Search = value
	case FacetFeatures:
		out.Features = []string{}
		if value != "" {
			out.Features = []string{value}
		}
	}
	return out
}

// Without returns a copy with facet f unconstrained.
func (s Selection) Without(f Facet) Selection {
	return s.With(f, "")
}

// WithFeatures returns a copy holding exactly the given feature ids.
func (s Selection) WithFeatures(ids ...string) Selection {
	out := s.clone()
	out.Features = append([]string{}, ids...)
	return out
}

// ToggleFeature adds id to the feature set, or removes it if already present.
func (s Selection) ToggleFeature(id string) Selection {
	out := s.clone()
	kept := make([]string, 0, len(out.Features)+1)
	found := false
	for _, f := range out.Features {
		if f == id {
			found = true
			continue
		}
		kept = append(kept, f)
	}
	if !found {
		kept = append(kept, id)
	}
	out.Features = kept
	return out
}

// Reset returns the empty selection.
func (s Selection) Reset() Selection {
	return Selection{Features: []string{}}
}

// IsEmpty reports whether no facet constrains the result.
func (s Selection) IsEmpty() bool {
	for _, f := range singleFacets {
		if s.Get(f) != "" {
			return false
		}
	}
	return len(s.Features) == 0 && s.Search == ""
}

// Active reports whether facet f currently constrains the result.
func (s Selection) Active(f Facet) bool {
	if f == FacetFeatures {
		return len(hardwareFeatures(s.Features)) > 0
	}
	return s.Get(f) != ""
}

// RequestsCustomBuild reports whether a custom pseudo-feature was chosen.
func (s Selection) RequestsCustomBuild() bool {
	for _, f := range s.Features {
		if IsPseudoFeature(f) {
			return true
		}
	}
	return false
}

// Normalize canonicalizes token-valued slots. Material, connection and search
// are free text and are only trimmed.
func (s Selection) Normalize() Selection {
	out := s.clone()
	out.Application = NormalizeToken(s.Application)
	out.Technology = NormalizeToken(s.Technology)
	out.Action = NormalizeToken(s.Action)
	out.Environment = NormalizeToken(s.Environment)
	out.Duty = NormalizeToken(s.Duty)
	out.Guard = NormalizeToken(s.Guard)
	out.Material = strings.TrimSpace(s.Material)
	out.Connection = strings.TrimSpace(s.Connection)
	out.Search = strings.TrimSpace(s.Search)
	out.Features = NormalizeTokens(s.Features)
	return out
}

func (s Selection) clone() Selection {
	out := s
	out.Features = append([]string{}, s.Features...)
	return out
}
