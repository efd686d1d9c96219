package selector

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func optionIDs(opts []Option) []string {
	out := make([]string, 0, len(opts))
	for _, o := range opts {
		out = append(out, o.ID)
	}
	return out
}

func TestSteps_CoverEveryRelaxableFacet(t *testing.T) {
	for _, f := range RelaxationOrder {
		assert.GreaterOrEqual(t, stepIndex(f), 0, "facet %s has no wizard step", f)
	}
	s, ok := StepFor("features")
	require.True(t, ok)
	assert.True(t, s.Multi)
	_, ok = StepFor("colour")
	assert.False(t, ok)
}

func TestOffered_Eligibility(t *testing.T) {
	c := testCatalog()

	got := Offered(c, Selection{Application: "industrial"}, FacetTechnology)
	assert.Equal(t, []string{TechElectrical, TechPneumatic}, optionIDs(got))

	got = Offered(c, Selection{Application: "lab"}, FacetTechnology)
	assert.Equal(t, []string{TechElectrical, TechPneumatic, TechWireless}, optionIDs(got))

	got = Offered(c, Selection{Application: "medical", Technology: TechWireless}, FacetFeatures)
	assert.NotContains(t, optionIDs(got), FeatureTwin)
}

func TestStepOptions_CountsAndDisabled(t *testing.T) {
	c := testCatalog()

	got := StepOptions(c, Selection{Application: "medical"}, FacetTechnology)
	require.Len(t, got, 3)
	assert.Equal(t, 1, got[0].Count)
	assert.Equal(t, 0, got[1].Count)
	assert.True(t, got[1].Disabled)
	assert.Equal(t, 1, got[2].Count)
	assert.False(t, got[2].Disabled)
}

func TestStepOptions_ActiveSelectionStaysClickable(t *testing.T) {
	c := testCatalog()
	sel := Selection{Application: "medical", Technology: TechPneumatic}

	got := StepOptions(c, sel, FacetTechnology)
	require.Len(t, got, 3)
	assert.Equal(t, TechPneumatic, got[1].Option.ID)
	assert.Equal(t, 0, got[1].Count)
	assert.True(t, got[1].Selected)
	assert.False(t, got[1].Disabled)
}

func TestChoose(t *testing.T) {
	c := testCatalog()

	sel := Choose(c, Selection{}, FacetApplication, "medical")
	sel = Choose(c, sel, FacetTechnology, TechWireless)
	assert.Equal(t, TechWireless, sel.Technology)

	// Choosing again deselects.
	again := Choose(c, sel, FacetTechnology, TechWireless)
	assert.Empty(t, again.Technology)
	assert.Equal(t, TechWireless, sel.Technology, "input selection must not change")

	// Switching application drops the technology it no longer offers.
	switched := Choose(c, sel, FacetApplication, "industrial")
	assert.Equal(t, "industrial", switched.Application)
	assert.Empty(t, switched.Technology)
}

func TestChoose_FeaturesToggleAndPrune(t *testing.T) {
	c := testCatalog()
	sel := Selection{Application: "medical", Technology: TechElectrical}

	sel = Choose(c, sel, FacetFeatures, FeatureTwin)
	sel = Choose(c, sel, FacetFeatures, FeatureShield)
	assert.Equal(t, []string{FeatureTwin, FeatureShield}, sel.Features)

	sel = Choose(c, sel, FacetFeatures, FeatureTwin)
	assert.Equal(t, []string{FeatureShield}, sel.Features)

	sel = Choose(c, sel, FacetFeatures, FeatureTwin)
	wireless := Choose(c, sel, FacetTechnology, TechWireless)
	assert.Equal(t, []string{FeatureShield}, wireless.Features)
}

func TestResolve_Exact(t *testing.T) {
	res := Resolve(testCatalog(), Selection{Application: "industrial", Environment: EnvWet}, SortRelevance)
	assert.Equal(t, OutcomeExact, res.Outcome)
	assert.Equal(t, []string{"fs-1"}, ids(res.Products))
	assert.Empty(t, res.RelaxedFacet)
	require.NotNil(t, res.TopPick)
	assert.Equal(t, "fs-1", res.TopPick.ID)
	assert.False(t, res.NeedsCustomSolution())
}

func TestResolve_EmptySelection(t *testing.T) {
	res := Resolve(testCatalog(), Selection{}, "")
	assert.Equal(t, OutcomeExact, res.Outcome)
	assert.Equal(t, SortRelevance, res.Sort)
	assert.Len(t, res.Products, 5)
}

func TestResolve_CustomBuildShortCircuits(t *testing.T) {
	sel := Selection{Application: "industrial", Features: []string{FeatureShield, FeatureCustomCable}}
	res := Resolve(testCatalog(), sel, SortDuty)
	assert.Equal(t, OutcomeCustomRequested, res.Outcome)
	assert.Empty(t, res.Products)
	assert.Empty(t, res.RelaxedFacet)
	assert.Nil(t, res.TopPick)
	assert.True(t, res.NeedsCustomSolution())
}

func TestResolve_Alternative(t *testing.T) {
	sel := Selection{Application: "industrial", Environment: EnvDamp, Material: "Polymer"}
	res := Resolve(testCatalog(), sel, SortRelevance)
	assert.Equal(t, OutcomeAlternative, res.Outcome)
	assert.Equal(t, RelaxTag(FacetEnvironment), res.RelaxedFacet)
	assert.Equal(t, []string{"fs-4"}, ids(res.Products))
	assert.False(t, res.NeedsCustomSolution())
}

func TestResolve_NoMatch(t *testing.T) {
	res := Resolve(testCatalog(), Selection{Application: "aerospace"}, SortIP)
	assert.Equal(t, OutcomeNoMatch, res.Outcome)
	assert.Equal(t, RelaxedAll, res.RelaxedFacet)
	assert.Empty(t, res.Products)
	assert.True(t, res.NeedsCustomSolution())
}

func TestStepOptions_FeatureCountsPredictChoose(t *testing.T) {
	c := testCatalog()
	selections := []Selection{
		{Application: "industrial"},
		{Application: "industrial", Features: []string{FeatureTwin}},
		{Application: "industrial", Features: []string{FeatureTwin, FeatureShield}},
		{Application: "medical", Technology: TechElectrical, Features: []string{FeatureShield}},
		{Application: "industrial", Technology: TechPneumatic},
	}

	for _, sel := range selections {
		for _, a := range StepOptions(c, sel, FacetFeatures) {
			if a.Selected {
				assert.Equal(t, len(Match(c.Products, sel)), a.Count, "selected %s, selection %+v", a.Option.ID, sel)
				continue
			}
			after := Match(c.Products, Choose(c, sel, FacetFeatures, a.Option.ID))
			assert.Equal(t, len(after), a.Count, "feature %s, selection %+v", a.Option.ID, sel)
			assert.Equal(t, len(after) == 0, a.Disabled, "feature %s, selection %+v", a.Option.ID, sel)
		}
	}
}

func TestStepOptions_FeatureDisabledWhenSetBecomesEmpty(t *testing.T) {
	c := testCatalog()
	sel := Selection{Application: "industrial", Features: []string{FeatureTwin}}

	byID := map[string]Availability{}
	for _, a := range StepOptions(c, sel, FacetFeatures) {
		byID[a.Option.ID] = a
	}
	assert.Equal(t, 1, byID[FeatureShield].Count)
	assert.False(t, byID[FeatureShield].Disabled)
	assert.Equal(t, 0, byID[FeatureMultiStage].Count)
	assert.True(t, byID[FeatureMultiStage].Disabled)
	assert.True(t, byID[FeatureTwin].Selected)
	assert.False(t, byID[FeatureTwin].Disabled)
}

func TestResolve_TopPickIgnoresEnvironmentPin(t *testing.T) {
	products := []Product{
		NewProduct(Product{ID: "sealed", Technology: TechElectrical, Duty: DutyHeavy, IP: "IP68",
			Applications: []string{"industrial"}, Material: "Steel"}),
		NewProduct(Product{ID: "flagship", Technology: TechElectrical, Duty: DutyLight, IP: "IP20",
			Applications: []string{"industrial"}, Material: "Steel", Flagship: true}),
	}
	sel := Selection{Application: "industrial", Environment: EnvWet, Duty: DutyMedium}

	res := Resolve(NewCatalog(products, nil), sel, SortRelevance)
	require.Equal(t, OutcomeAlternative, res.Outcome)
	assert.Equal(t, RelaxTag(FacetDuty), res.RelaxedFacet)

	// The list puts the environment match first; the top pick ranks on
	// flagship, then duty, then catalog order, regardless of environment.
	assert.Equal(t, []string{"sealed", "flagship"}, ids(res.Products))
	require.NotNil(t, res.TopPick)
	assert.Equal(t, "flagship", res.TopPick.ID)
}
