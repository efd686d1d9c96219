package models

import "github.com/Treadle-Controls/treadle-cms-backend/selector"

// ═══════════════════════════════════════════════════════════
// Request Models
// ═══════════════════════════════════════════════════════════

// WizardOptionsRequest asks for the live options of one step.
type WizardOptionsRequest struct {
	Selection selector.Selection `json:"selection"`
	Step      string             `json:"step" binding:"required" example:"technology"`
}

// WizardChooseRequest applies one answer and returns the pruned selection.
type WizardChooseRequest struct {
	Selection selector.Selection `json:"selection"`
	Step      string             `json:"step" binding:"required" example:"technology"`
	Value     string             `json:"value" binding:"required" example:"pneumatic"`
}

// WizardResultsRequest resolves a selection into products.
type WizardResultsRequest struct {
	Selection selector.Selection `json:"selection"`
	Sort      string             `json:"sort" example:"relevance"`
}

// ═══════════════════════════════════════════════════════════
// Response Models
// ═══════════════════════════════════════════════════════════

type WizardStepResponse struct {
	ID      string            `json:"id"`
	Facet   selector.Facet    `json:"facet"`
	Multi   bool              `json:"multi"`
	Options []selector.Option `json:"options"`
}

type WizardOptionsResponse struct {
	Step      string                  `json:"step"`
	Facet     selector.Facet          `json:"facet"`
	Multi     bool                    `json:"multi"`
	Options   []selector.Availability `json:"options"`
	Selection selector.Selection      `json:"selection"`
}

// WizardResultsResponse is what the results page renders. Exact is false for
// relaxed matches; RelaxedFacet then names the constraint that was dropped.
type WizardResultsResponse struct {
	Outcome        selector.Outcome  `json:"outcome"`
	Exact          bool              `json:"exact"`
	Products       []Product         `json:"products"`
	RelaxedFacet   selector.RelaxTag `json:"relaxed_facet,omitempty"`
	CustomSolution bool              `json:"custom_solution"`
	TopPick        *Product          `json:"top_pick,omitempty"`
	Sort           selector.SortMode `json:"sort"`
	Total          int               `json:"total"`
}
