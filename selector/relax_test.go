package selector

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRelax_Scenarios(t *testing.T) {
	ps := scenarioProducts()

	r := Relax(ps, Selection{Application: "industrial", Environment: EnvWet, Material: "Polymer"})
	assert.Equal(t, RelaxTag(FacetEnvironment), r.Tag)
	assert.Equal(t, []string{"b"}, ids(r.Products))

	r = Relax(ps, Selection{Application: "medical"})
	assert.Equal(t, RelaxedAll, r.Tag)
	assert.Empty(t, r.Products)
	assert.NotNil(t, r.Products)
}

func TestRelax_PriorityOrder(t *testing.T) {
	ps := testProducts()
	tests := []struct {
		name    string
		sel     Selection
		wantTag RelaxTag
		want    []string
	}{
		{
			name:    "features dropped first",
			sel:     Selection{Application: "industrial", Technology: TechPneumatic, Features: []string{FeatureMultiStage}},
			wantTag: RelaxTag(FacetFeatures),
			want:    []string{"fs-2"},
		},
		{
			name:    "environment before material",
			sel:     Selection{Application: "industrial", Environment: EnvWet, Material: "Polymer"},
			wantTag: RelaxTag(FacetEnvironment),
			want:    []string{"fs-4"},
		},
		{
			name:    "unset facets are no-op drops",
			sel:     Selection{Application: "industrial", Technology: TechPneumatic, Duty: DutyLight},
			wantTag: RelaxTag(FacetDuty),
			want:    []string{"fs-2"},
		},
		{
			name:    "technology is last",
			sel:     Selection{Application: "lab", Technology: TechElectrical},
			wantTag: RelaxTag(FacetTechnology),
			want:    []string{"fs-3"},
		},
		{
			name:    "search is only dropped by the terminal fallback",
			sel:     Selection{Application: "medical", Search: "zzz"},
			wantTag: RelaxedAll,
			want:    []string{"fs-1", "fs-3"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Empty(t, Match(ps, tt.sel), "fixture must have no exact match")
			r := Relax(ps, tt.sel)
			assert.Equal(t, tt.wantTag, r.Tag)
			assert.Equal(t, tt.want, ids(r.Products))
		})
	}
}

func TestRelax_Deterministic(t *testing.T) {
	ps := testProducts()
	sel := Selection{Application: "industrial", Environment: EnvWet, Material: "Polymer", Guard: GuardYes}
	first := Relax(ps, sel)
	for i := 0; i < 20; i++ {
		got := Relax(ps, sel)
		assert.Equal(t, first.Tag, got.Tag)
		assert.Equal(t, ids(first.Products), ids(got.Products))
	}
}

func TestRelax_DoesNotModifySelection(t *testing.T) {
	sel := Selection{Application: "industrial", Environment: EnvWet, Material: "Polymer", Features: []string{FeatureTwin}}
	_ = Relax(testProducts(), sel)
	assert.Equal(t, EnvWet, sel.Environment)
	assert.Equal(t, []string{FeatureTwin}, sel.Features)
}
