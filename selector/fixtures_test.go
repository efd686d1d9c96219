package selector

func ids(ps []Product) []string {
	out := make([]string, 0, len(ps))
	for _, p := range ps {
		out = append(out, p.ID)
	}
	return out
}

// scenarioProducts is the two-product catalog used by the worked examples.
func scenarioProducts() []Product {
	return []Product{
		NewProduct(Product{
			ID: "a", Technology: TechElectrical, Duty: DutyHeavy, IP: "IP68",
			Actions: []string{ActionMomentary}, Applications: []string{"industrial"},
			Material: "Steel", Features: []string{FeatureShield},
		}),
		NewProduct(Product{
			ID: "b", Technology: TechElectrical, Duty: DutyLight, IP: "IP20",
			Actions: []string{ActionMomentary}, Applications: []string{"industrial"},
			Material: "Polymer",
		}),
	}
}

func testProducts() []Product {
	return []Product{
		NewProduct(Product{
			ID: "fs-1", Series: "GKD", Description: "Heavy duty cast switch", PartNumber: "GKD-2S",
			Technology: TechElectrical, Duty: DutyHeavy, IP: "IP68",
			Actions: []string{ActionMomentary, ActionMaintained}, Applications: []string{"industrial", "medical"},
			Material: "Cast Iron", ConnectorType: "M12", Features: []string{FeatureShield, FeatureTwin}, Flagship: true,
		}),
		NewProduct(Product{
			ID: "fs-2", Series: "PN", Description: "Air actuated pedal", PartNumber: "PN-100",
			Technology: TechPneumatic, Duty: DutyMedium, IP: "IP56",
			Actions: []string{ActionMomentary}, Applications: []string{"industrial"},
			Material: "Aluminum", Features: []string{FeatureShield},
		}),
		NewProduct(Product{
			ID: "fs-3", Series: "RF", Description: "Cordless pedal", PartNumber: "RF-7",
			Technology: TechWireless, Duty: DutyLight, IP: "IP20",
			Actions: []string{ActionMomentary}, Applications: []string{"medical", "lab"},
			Material: "Polymer",
		}),
		NewProduct(Product{
			ID: "fs-4", Series: "GFS", Description: "Speed control pedal", PartNumber: "GFS-VAR",
			Technology: TechElectrical, Duty: DutyMedium, IP: "IP20",
			Actions: []string{ActionVariable}, Applications: []string{"industrial"},
			Material: "Polymer", ConnectorType: "Cable", Features: []string{FeatureMultiStage}, Flagship: true,
		}),
		NewProduct(Product{
			ID: "fs-5", Series: "MKF", Description: "Compact switch", PartNumber: "MKF-1",
			Technology: TechElectrical, Duty: DutyLight,
			Actions: []string{ActionMomentary}, Applications: []string{"industrial"},
			Material: "Steel", ConnectorType: "Cable", Features: []string{FeatureTwin},
		}),
	}
}

func testOptions() []Option {
	return []Option{
		{ID: "industrial", Category: FacetApplication, Label: "Industrial"},
		{ID: "medical", Category: FacetApplication, Label: "Medical"},
		{ID: "lab", Category: FacetApplication, Label: "Laboratory"},
		{ID: TechElectrical, Category: FacetTechnology, Label: "Electrical"},
		{ID: TechPneumatic, Category: FacetTechnology, Label: "Pneumatic"},
		{ID: TechWireless, Category: FacetTechnology, Label: "Wireless",
			Rules: Eligibility{Applications: []string{"medical", "lab"}}},
		{ID: FeatureShield, Category: FacetFeatures, Label: "Safety shield"},
		{ID: FeatureTwin, Category: FacetFeatures, Label: "Twin pedal",
			Rules: Eligibility{HiddenForTechnologies: []string{TechWireless}}},
		{ID: FeatureMultiStage, Category: FacetFeatures, Label: "Multi-stage"},
		{ID: FeatureCustomCable, Category: FacetFeatures, Label: "Custom cable"},
	}
}

func testCatalog() Catalog {
	return NewCatalog(testProducts(), testOptions())
}
