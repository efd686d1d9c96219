package wizard_controller

import (
	"errors"
	"net/http"
	"strings"

	catalog_cache "github.com/Treadle-Controls/treadle-cms-backend/cache"
	"github.com/Treadle-Controls/treadle-cms-backend/config"
	"github.com/Treadle-Controls/treadle-cms-backend/models"
	"github.com/Treadle-Controls/treadle-cms-backend/selector"
	"github.com/Treadle-Controls/treadle-cms-backend/services"
	"github.com/gin-gonic/gin"
)

// ─────────────────────────────────────────────────────────────
// Helpers
// ─────────────────────────────────────────────────────────────

// loadSnapshot fetches the catalog snapshot or writes the error response.
func loadSnapshot(c *gin.Context) (*catalog_cache.Snapshot, bool) {
	snap, err := services.LoadCatalog(c.Request.Context())
	if err != nil {
		config.Log.Errorf("[wizard.catalog] %v", err)
		status := http.StatusInternalServerError
		if errors.Is(err, services.ErrCatalogUnavailable) {
			status = http.StatusServiceUnavailable
		}
		c.JSON(status, models.ErrorResponse(c, "Product catalog is temporarily unavailable"))
		return nil, false
	}
	return snap, true
}

// stepOrFail resolves a step id or writes a 400.
func stepOrFail(c *gin.Context, id string) (selector.Step, bool) {
	step, ok := selector.StepFor(strings.ToLower(strings.TrimSpace(id)))
	if !ok {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Unknown wizard step: "+id))
		return selector.Step{}, false
	}
	return step, true
}

// optionValue canonicalizes a submitted answer for facet f.
func optionValue(f selector.Facet, v string) string {
	switch f {
	case selector.FacetMaterial, selector.FacetConnection:
		return strings.TrimSpace(v)
	}
	return selector.NormalizeToken(v)
}

func isOffered(options []selector.Option, id string) bool {
	for _, o := range options {
		if o.ID == id {
			return true
		}
	}
	return false
}

// buildResults resolves sel against the snapshot and joins presentation rows.
func buildResults(snap *catalog_cache.Snapshot, sel selector.Selection, sort string) models.WizardResultsResponse {
	res := selector.Resolve(snap.Catalog, sel, selector.SortMode(sort))

	out := models.WizardResultsResponse{
		Outcome:        res.Outcome,
		Exact:          res.Outcome == selector.OutcomeExact,
		Products:       snap.Rows(res.Products),
		RelaxedFacet:   res.RelaxedFacet,
		CustomSolution: res.NeedsCustomSolution(),
		Sort:           res.Sort,
		Total:          len(res.Products),
	}
	if res.TopPick != nil {
		if row, ok := snap.Product(res.TopPick.ID); ok {
			out.TopPick = &row
		}
	}
	return out
}
