package models

import (
	"encoding/json"
	"testing"

	"github.com/Treadle-Controls/treadle-cms-backend/selector"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStringList_ScanNeverNil(t *testing.T) {
	var l StringList
	require.NoError(t, l.Scan(nil))
	assert.NotNil(t, l)
	assert.Empty(t, l)

	require.NoError(t, l.Scan([]byte("null")))
	assert.NotNil(t, l)

	require.NoError(t, l.Scan(`["shield","twin"]`))
	assert.Equal(t, StringList{"shield", "twin"}, l)

	assert.Error(t, l.Scan(42))
}

func TestStringList_ValueAndJSON(t *testing.T) {
	v, err := StringList(nil).Value()
	require.NoError(t, err)
	assert.Equal(t, []byte("[]"), v)

	data, err := json.Marshal(struct {
		L StringList `json:"l"`
	}{})
	require.NoError(t, err)
	assert.JSONEq(t, `{"l":[]}`, string(data))
}

func TestProduct_ToSelector(t *testing.T) {
	p := Product{ID: "FS-1", Technology: "electrical", Duty: "heavy", IP: "IP68", Flagship: true}
	sp := p.ToSelector()

	assert.Equal(t, "FS-1", sp.ID)
	assert.NotNil(t, sp.Actions)
	assert.NotNil(t, sp.Applications)
	assert.NotNil(t, sp.Features)
	assert.Empty(t, sp.ConnectorType)
	assert.True(t, sp.Flagship)

	m12 := "M12"
	p.ConnectorType = &m12
	assert.Equal(t, "M12", p.ToSelector().ConnectorType)
}

func TestProductRequest_ToModelNormalizes(t *testing.T) {
	blank := "  "
	p := ProductRequest{
		ID:            " FS-2 ",
		Technology:    "Electrical",
		Duty:          "HEAVY",
		IP:            "ip56",
		Actions:       []string{"Momentary", ""},
		Applications:  []string{"Industrial"},
		Features:      []string{"Feature-Multi-Stage"},
		Material:      " Cast Iron ",
		ConnectorType: &blank,
	}.ToModel()

	assert.Equal(t, "FS-2", p.ID)
	assert.Equal(t, selector.TechElectrical, p.Technology)
	assert.Equal(t, selector.DutyHeavy, p.Duty)
	assert.Equal(t, "IP56", p.IP)
	assert.Equal(t, StringList{"momentary"}, p.Actions)
	assert.Equal(t, StringList{"industrial"}, p.Applications)
	assert.Equal(t, StringList{selector.FeatureMultiStage}, p.Features)
	assert.Equal(t, "Cast Iron", p.Material)
	assert.Nil(t, p.ConnectorType)
	assert.NotNil(t, p.Certifications)
}

func TestUpdateProductRequest_Apply(t *testing.T) {
	p := Product{ID: "FS-3", Technology: "electrical", Duty: "light", Features: StringList{"twin"}}
	tech := "Pneumatic"
	flag := true
	features := []string{}
	UpdateProductRequest{Technology: &tech, Flagship: &flag, Features: &features}.Apply(&p)

	assert.Equal(t, selector.TechPneumatic, p.Technology)
	assert.Equal(t, selector.DutyLight, p.Duty)
	assert.True(t, p.Flagship)
	assert.Empty(t, p.Features)
}

func TestOption_ToSelector(t *testing.T) {
	req := OptionRequest{
		Category: "technology",
		Value:    "Wireless",
		Label:    "Wireless",
		Rules:    &selector.Eligibility{Applications: []string{"Medical", "lab"}},
	}
	o, err := req.ToModel()
	require.NoError(t, err)
	assert.True(t, o.Active)
	assert.Equal(t, "wireless", o.Value)

	so, err := o.ToSelector()
	require.NoError(t, err)
	assert.Equal(t, selector.FacetTechnology, so.Category)
	assert.Equal(t, []string{"medical", "lab"}, so.Rules.Applications)
	assert.False(t, so.OfferedFor(selector.Selection{Application: "industrial"}))
	assert.True(t, so.OfferedFor(selector.Selection{Application: "medical"}))
}

func TestOptionRequest_RejectsUnknownCategory(t *testing.T) {
	_, err := OptionRequest{Category: "colour", Value: "red", Label: "Red"}.ToModel()
	assert.Error(t, err)

	_, err = OptionRequest{Category: "search", Value: "x", Label: "X"}.ToModel()
	assert.Error(t, err)
}

func TestOptionRequest_FreeTextValueKeepsCase(t *testing.T) {
	o, err := OptionRequest{Category: "material", Value: " Cast Iron ", Label: "Cast iron"}.ToModel()
	require.NoError(t, err)
	assert.Equal(t, "Cast Iron", o.Value)
}
