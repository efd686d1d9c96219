package main

import (
	"testing"

	"github.com/Treadle-Controls/treadle-cms-backend/models"
	"github.com/Treadle-Controls/treadle-cms-backend/selector"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCatalog_Parses(t *testing.T) {
	options, products, err := parseCatalog(defaultCatalog)
	require.NoError(t, err)
	assert.NotEmpty(t, options)
	assert.NotEmpty(t, products)

	categories := map[string]bool{}
	for _, o := range options {
		categories[o.Category] = true
		_, err := o.Eligibility()
		assert.NoError(t, err, "%s/%s", o.Category, o.Value)
	}
	for _, step := range selector.Steps {
		assert.True(t, categories[string(step.Facet)], "no options for %s", step.Facet)
	}
}

func TestDefaultCatalog_ProductsAreNormalized(t *testing.T) {
	_, products, err := parseCatalog(defaultCatalog)
	require.NoError(t, err)

	for _, p := range products {
		assert.NotEmpty(t, p.Applications, p.ID)
		assert.Contains(t, []string{"electrical", "pneumatic", "wireless"}, p.Technology, p.ID)
		assert.Contains(t, []string{"heavy", "medium", "light"}, p.Duty, p.ID)
	}
}

func TestDefaultCatalog_WirelessRules(t *testing.T) {
	options, _, err := parseCatalog(defaultCatalog)
	require.NoError(t, err)

	var wireless *models.Option
	for i := range options {
		if options[i].Category == "technology" && options[i].Value == "wireless" {
			wireless = &options[i]
		}
	}
	require.NotNil(t, wireless)
	rules, err := wireless.Eligibility()
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"medical", "lab"}, rules.Applications)
}

func TestParseCatalog_Errors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"bad yaml", "options: [\n"},
		{"unknown category", "options:\n  - {category: colour, value: red, label: Red}\n"},
		{"product without id", "products:\n  - {series: X, technology: electrical, duty: light, applications: [lab]}\n"},
		{"product without applications", "products:\n  - {id: A, technology: electrical, duty: light}\n"},
		{"duplicate product", "products:\n  - {id: A, applications: [lab]}\n  - {id: A, applications: [lab]}\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := parseCatalog([]byte(tt.yaml))
			assert.Error(t, err)
		})
	}
}
