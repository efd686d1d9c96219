package main

import (
	_ "embed"
	"fmt"

	"github.com/Treadle-Controls/treadle-cms-backend/models"
	"github.com/Treadle-Controls/treadle-cms-backend/selector"
	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var defaultCatalog []byte

type seedRules struct {
	Applications          []string `yaml:"applications"`
	Technologies          []string `yaml:"technologies"`
	HiddenForTechnologies []string `yaml:"hidden_for_technologies"`
}

type seedOption struct {
	Category    string     `yaml:"category"`
	Value       string     `yaml:"value"`
	Label       string     `yaml:"label"`
	Description string     `yaml:"description"`
	SortOrder   int        `yaml:"sort_order"`
	Rules       *seedRules `yaml:"rules"`
}

type seedProduct struct {
	ID             string   `yaml:"id"`
	Series         string   `yaml:"series"`
	Technology     string   `yaml:"technology"`
	Duty           string   `yaml:"duty"`
	IP             string   `yaml:"ip"`
	Actions        []string `yaml:"actions"`
	Applications   []string `yaml:"applications"`
	Material       string   `yaml:"material"`
	ConnectorType  string   `yaml:"connector_type"`
	Features       []string `yaml:"features"`
	Flagship       bool     `yaml:"flagship"`
	Description    string   `yaml:"description"`
	Image          string   `yaml:"image"`
	Link           string   `yaml:"link"`
	Voltage        string   `yaml:"voltage"`
	Amperage       string   `yaml:"amperage"`
	Certifications []string `yaml:"certifications"`
	Circuitry      string   `yaml:"circuitry"`
	PartNumber     string   `yaml:"part_number"`
}

type seedCatalog struct {
	Options  []seedOption  `yaml:"options"`
	Products []seedProduct `yaml:"products"`
}

// parseCatalog decodes and validates a seed catalog.
func parseCatalog(data []byte) ([]models.Option, []models.Product, error) {
	var raw seedCatalog
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, nil, fmt.Errorf("invalid catalog yaml: %w", err)
	}

	options := make([]models.Option, 0, len(raw.Options))
	for i, o := range raw.Options {
		req := models.OptionRequest{
			Category:    o.Category,
			Value:       o.Value,
			Label:       o.Label,
			Description: o.Description,
			SortOrder:   o.SortOrder,
		}
		if o.Rules != nil {
			req.Rules = &selector.Eligibility{
				Applications:          o.Rules.Applications,
				Technologies:          o.Rules.Technologies,
				HiddenForTechnologies: o.Rules.HiddenForTechnologies,
			}
		}
		opt, err := req.ToModel()
		if err != nil {
			return nil, nil, fmt.Errorf("option %d (%s): %w", i+1, o.Value, err)
		}
		options = append(options, opt)
	}

	products := make([]models.Product, 0, len(raw.Products))
	seen := make(map[string]bool, len(raw.Products))
	for _, p := range raw.Products {
		product := p.toModel()
		if product.ID == "" {
			return nil, nil, fmt.Errorf("product without id (series %q)", p.Series)
		}
		if seen[product.ID] {
			return nil, nil, fmt.Errorf("duplicate product id %s", product.ID)
		}
		if len(product.Applications) == 0 {
			return nil, nil, fmt.Errorf("product %s has no applications", product.ID)
		}
		seen[product.ID] = true
		products = append(products, product)
	}

	return options, products, nil
}

func (p seedProduct) toModel() models.Product {
	req := models.ProductRequest{
		ID:             p.ID,
		Series:         p.Series,
		Technology:     p.Technology,
		Duty:           p.Duty,
		IP:             p.IP,
		Actions:        p.Actions,
		Applications:   p.Applications,
		Material:       p.Material,
		Features:       p.Features,
		Flagship:       p.Flagship,
		Description:    p.Description,
		Image:          p.Image,
		Link:           p.Link,
		Voltage:        p.Voltage,
		Amperage:       p.Amperage,
		Certifications: p.Certifications,
		Circuitry:      p.Circuitry,
		PartNumber:     p.PartNumber,
	}
	if p.ConnectorType != "" {
		connector := p.ConnectorType
		req.ConnectorType = &connector
	}
	return req.ToModel()
}
