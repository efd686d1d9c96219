package services

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/Treadle-Controls/treadle-cms-backend/models"
	"github.com/Treadle-Controls/treadle-cms-backend/selector"
	"github.com/johnfercher/maroto/pkg/color"
	"github.com/johnfercher/maroto/pkg/consts"
	"github.com/johnfercher/maroto/pkg/pdf"
	"github.com/johnfercher/maroto/pkg/props"
)

var (
	pdfDarkGray   = color.Color{Red: 38, Green: 38, Blue: 34}
	pdfMediumGray = color.Color{Red: 121, Green: 119, Blue: 109}
	pdfAccent     = color.Color{Red: 196, Green: 92, Blue: 22}
)

// GenerateResultsPDF renders the wizard answers and the resulting products as
// a one-document selection sheet.
func GenerateResultsPDF(sel selector.Selection, res models.WizardResultsResponse, generatedAt time.Time) (*bytes.Buffer, error) {
	m := pdf.NewMaroto(consts.Portrait, consts.A4)
	m.SetPageMargins(20, 20, 20)

	m.Row(15, func() {
		m.Col(12, func() {
			m.Text("FOOT SWITCH SELECTION", props.Text{
				Size:  20,
				Style: consts.Bold,
				Color: pdfDarkGray,
			})
		})
	})
	m.Row(6, func() {
		m.Col(12, func() {
			m.Text(fmt.Sprintf("Generated %s", generatedAt.Format("Jan 02, 2006 15:04 MST")), props.Text{
				Size:  9,
				Color: pdfMediumGray,
			})
		})
	})

	m.Row(8, func() {})

	// Answers
	m.Row(6, func() {
		m.Col(12, func() {
			m.Text("YOUR REQUIREMENTS", props.Text{Size: 9, Style: consts.Bold, Color: pdfDarkGray})
		})
	})
	for _, line := range selectionLines(sel) {
		label, value := line[0], line[1]
		m.Row(5, func() {
			m.Col(4, func() {
				m.Text(label, props.Text{Size: 9, Color: pdfMediumGray})
			})
			m.Col(8, func() {
				m.Text(value, props.Text{Size: 9, Color: pdfDarkGray})
			})
		})
	}

	m.Row(8, func() {})

	// Outcome banner
	m.Row(8, func() {
		m.Col(12, func() {
			m.Text(outcomeHeadline(res), props.Text{Size: 11, Style: consts.Bold, Color: pdfAccent})
		})
	})

	if len(res.Products) > 0 {
		m.Row(6, func() {
			for _, h := range []struct {
				title string
				width uint
			}{{"Part", 3}, {"Series", 2}, {"Technology", 2}, {"Duty", 2}, {"IP", 1}, {"Material", 2}} {
				title := h.title
				m.Col(h.width, func() {
					m.Text(title, props.Text{Size: 8, Style: consts.Bold, Color: pdfDarkGray})
				})
			}
		})
		for _, p := range res.Products {
			p := p
			part := p.PartNumber
			if part == "" {
				part = p.ID
			}
			if res.TopPick != nil && res.TopPick.ID == p.ID {
				part += " *"
			}
			m.Row(6, func() {
				m.Col(3, func() { m.Text(part, props.Text{Size: 9, Color: pdfDarkGray}) })
				m.Col(2, func() { m.Text(p.Series, props.Text{Size: 9, Color: pdfDarkGray}) })
				m.Col(2, func() { m.Text(p.Technology, props.Text{Size: 9, Color: pdfDarkGray}) })
				m.Col(2, func() { m.Text(p.Duty, props.Text{Size: 9, Color: pdfDarkGray}) })
				m.Col(1, func() { m.Text(p.IP, props.Text{Size: 9, Color: pdfDarkGray}) })
				m.Col(2, func() { m.Text(p.Material, props.Text{Size: 9, Color: pdfDarkGray}) })
			})
		}
		if res.TopPick != nil {
			m.Row(6, func() {
				m.Col(12, func() {
					m.Text("* recommended", props.Text{Size: 8, Color: pdfMediumGray})
				})
			})
		}
	}

	if res.CustomSolution {
		m.Row(10, func() {
			m.Col(12, func() {
				m.Text("Our engineering team can build a custom switch for these requirements. Send this sheet with your enquiry.",
					props.Text{Size: 9, Color: pdfDarkGray})
			})
		})
	}

	buf, err := m.Output()
	if err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}
	return &buf, nil
}

func outcomeHeadline(res models.WizardResultsResponse) string {
	switch res.Outcome {
	case selector.OutcomeExact:
		return fmt.Sprintf("%d matching products", len(res.Products))
	case selector.OutcomeAlternative:
		return fmt.Sprintf("No exact match. %d alternatives without the %s requirement", len(res.Products), res.RelaxedFacet)
	case selector.OutcomeCustomRequested:
		return "Custom solution requested"
	default:
		return "No stock product fits these requirements"
	}
}

// selectionLines lists the answered steps in wizard order.
func selectionLines(sel selector.Selection) [][2]string {
	lines := make([][2]string, 0, len(selector.Steps)+1)
	for _, step := range selector.Steps {
		var v string
		if step.Facet == selector.FacetFeatures {
			v = strings.Join(sel.Features, ", ")
		} else {
			v = sel.Get(step.Facet)
		}
		if v == "" {
			continue
		}
		lines = append(lines, [2]string{strings.ToUpper(step.ID[:1]) + step.ID[1:], v})
	}
	if sel.Search != "" {
		lines = append(lines, [2]string{"Search", sel.Search})
	}
	if len(lines) == 0 {
		lines = append(lines, [2]string{"Requirements", "none selected"})
	}
	return lines
}
