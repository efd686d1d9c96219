package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/Treadle-Controls/treadle-cms-backend/selector"
	"gorm.io/gorm"
)

// ═══════════════════════════════════════════════════════════
// JSONB Type Definitions
// ═══════════════════════════════════════════════════════════

// StringList is a jsonb string array that never scans to nil.
type StringList []string

// ═══════════════════════════════════════════════════════════
// Main Product Model (GORM)
// ═══════════════════════════════════════════════════════════

// Product is a foot switch in the catalog. ID is supplied by the catalog
// maintainer (e.g. FS-ELEC-01) and is stable across imports.
type Product struct {
	ID             string     `json:"id" gorm:"primaryKey;size:64"`
	Series         string     `json:"series" gorm:"index"`
	Technology     string     `json:"technology" gorm:"not null;index"`
	Duty           string     `json:"duty" gorm:"not null;index"`
	IP             string     `json:"ip" gorm:"column:ip"`
	Actions        StringList `json:"actions" gorm:"type:jsonb;not null;default:'[]'"`
	Applications   StringList `json:"applications" gorm:"type:jsonb;not null;default:'[]';index:,type:gin"`
	Material       string     `json:"material"`
	ConnectorType  *string    `json:"connector_type"`
	Features       StringList `json:"features" gorm:"type:jsonb;not null;default:'[]'"`
	Flagship       bool       `json:"flagship" gorm:"default:false;index"`
	Description    string     `json:"description" gorm:"type:text"`
	Image          string     `json:"image"` // Cloudinary URL
	Link           string     `json:"link"`
	Voltage        string     `json:"voltage"`
	Amperage       string     `json:"amperage"`
	Certifications StringList `json:"certifications" gorm:"type:jsonb;not null;default:'[]'"`
	Circuitry      string     `json:"circuitry"`
	PartNumber     string     `json:"part_number" gorm:"index"`
	CreatedAt      time.Time  `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt      time.Time  `json:"updated_at" gorm:"autoUpdateTime"`
}

// BeforeSave hook - canonicalize matching tokens
func (p *Product) BeforeSave(tx *gorm.DB) error {
	p.Normalize()
	return nil
}

// TableName specifies the table name
func (Product) TableName() string {
	return "products"
}

// Normalize canonicalizes the fields the matching engine compares. Material and
// connector stay free text and are only trimmed.
func (p *Product) Normalize() {
	p.ID = strings.TrimSpace(p.ID)
	p.Series = strings.TrimSpace(p.Series)
	p.Technology = selector.NormalizeToken(p.Technology)
	p.Duty = selector.NormalizeToken(p.Duty)
	p.IP = strings.ToUpper(strings.TrimSpace(p.IP))
	p.Actions = StringList(selector.NormalizeTokens(p.Actions))
	p.Applications = StringList(selector.NormalizeTokens(p.Applications))
	p.Features = StringList(selector.NormalizeTokens(p.Features))
	p.Material = strings.TrimSpace(p.Material)
	if p.ConnectorType != nil {
		v := strings.TrimSpace(*p.ConnectorType)
		if v == "" {
			p.ConnectorType = nil
		} else {
			p.ConnectorType = &v
		}
	}
	if p.Certifications == nil {
		p.Certifications = StringList{}
	}
}

// ToSelector is the normalization boundary in front of the matching engine:
// collection fields come out as non-nil slices and a missing connector is "".
func (p Product) ToSelector() selector.Product {
	connector := ""
	if p.ConnectorType != nil {
		connector = *p.ConnectorType
	}
	return selector.NewProduct(selector.Product{
		ID:            p.ID,
		Series:        p.Series,
		Description:   p.Description,
		PartNumber:    p.PartNumber,
		Technology:    p.Technology,
		Duty:          p.Duty,
		IP:            p.IP,
		Actions:       []string(p.Actions),
		Applications:  []string(p.Applications),
		Material:      p.Material,
		ConnectorType: connector,
		Features:      []string(p.Features),
		Flagship:      p.Flagship,
	})
}

// ═══════════════════════════════════════════════════════════
// Request Models
// ═══════════════════════════════════════════════════════════

type ProductRequest struct {
	ID             string   `json:"id" binding:"required,max=64" example:"FS-ELEC-01"`
	Series         string   `json:"series" example:"GKD"`
	Technology     string   `json:"technology" binding:"required,oneof=electrical pneumatic wireless" example:"electrical"`
	Duty           string   `json:"duty" binding:"required,oneof=heavy medium light" example:"heavy"`
	IP             string   `json:"ip" example:"IP68"`
	Actions        []string `json:"actions" example:"momentary,maintained"`
	Applications   []string `json:"applications" binding:"required,min=1" example:"industrial,medical"`
	Material       string   `json:"material" example:"Cast Iron"`
	ConnectorType  *string  `json:"connector_type" example:"M12"`
	Features       []string `json:"features" example:"shield,twin"`
	Flagship       bool     `json:"flagship"`
	Description    string   `json:"description"`
	Image          string   `json:"image"`
	Link           string   `json:"link"`
	Voltage        string   `json:"voltage" example:"250 VAC"`
	Amperage       string   `json:"amperage" example:"10 A"`
	Certifications []string `json:"certifications" example:"CE,UL"`
	Circuitry      string   `json:"circuitry" example:"1 NO + 1 NC"`
	PartNumber     string   `json:"part_number" example:"GKD-2-S"`
}

// ToModel builds a normalized Product from the request.
func (r ProductRequest) ToModel() Product {
	p := Product{
		ID:             r.ID,
		Series:         r.Series,
		Technology:     r.Technology,
		Duty:           r.Duty,
		IP:             r.IP,
		Actions:        StringList(r.Actions),
		Applications:   StringList(r.Applications),
		Material:       r.Material,
		ConnectorType:  r.ConnectorType,
		Features:       StringList(r.Features),
		Flagship:       r.Flagship,
		Description:    r.Description,
		Image:          r.Image,
		Link:           r.Link,
		Voltage:        r.Voltage,
		Amperage:       r.Amperage,
		Certifications: StringList(r.Certifications),
		Circuitry:      r.Circuitry,
		PartNumber:     r.PartNumber,
	}
	p.Normalize()
	return p
}

type UpdateProductRequest struct {
	Series         *string   `json:"series"`
	Technology     *string   `json:"technology" binding:"omitempty,oneof=electrical pneumatic wireless"`
	Duty           *string   `json:"duty" binding:"omitempty,oneof=heavy medium light"`
	IP             *string   `json:"ip"`
	Actions        *[]string `json:"actions"`
	Applications   *[]string `json:"applications" binding:"omitempty,min=1"`
	Material       *string   `json:"material"`
	ConnectorType  *string   `json:"connector_type"`
	Features       *[]string `json:"features"`
	Flagship       *bool     `json:"flagship"`
	Description    *string   `json:"description"`
	Image          *string   `json:"image"`
	Link           *string   `json:"link"`
	Voltage        *string   `json:"voltage"`
	Amperage       *string   `json:"amperage"`
	Certifications *[]string `json:"certifications"`
	Circuitry      *string   `json:"circuitry"`
	PartNumber     *string   `json:"part_number"`
}

// Apply copies every non-nil field onto p and re-normalizes it. An empty
// connector_type clears the connector.
func (r UpdateProductRequest) Apply(p *Product) {
	setString(&p.Series, r.Series)
	setString(&p.Technology, r.Technology)
	setString(&p.Duty, r.Duty)
	setString(&p.IP, r.IP)
	setList(&p.Actions, r.Actions)
	setList(&p.Applications, r.Applications)
	setString(&p.Material, r.Material)
	if r.ConnectorType != nil {
		v := *r.ConnectorType
		p.ConnectorType = &v
	}
	setList(&p.Features, r.Features)
	if r.Flagship != nil {
		p.Flagship = *r.Flagship
	}
	setString(&p.Description, r.Description)
	setString(&p.Image, r.Image)
	setString(&p.Link, r.Link)
	setString(&p.Voltage, r.Voltage)
	setString(&p.Amperage, r.Amperage)
	setList(&p.Certifications, r.Certifications)
	setString(&p.Circuitry, r.Circuitry)
	setString(&p.PartNumber, r.PartNumber)
	p.Normalize()
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

func setList(dst *StringList, v *[]string) {
	if v != nil {
		*dst = StringList(*v)
	}
}

// ═══════════════════════════════════════════════════════════
// Response Models
// ═══════════════════════════════════════════════════════════

type ProductStatsResponseItem struct {
	Type  string `json:"type"`
	Key   string `json:"key"`
	Count int    `json:"count"`
}

type ProductStatsResponse struct {
	TotalProducts    int                        `json:"total_products"`
	FlagshipProducts int                        `json:"flagship_products"`
	Breakdown        []ProductStatsResponseItem `json:"breakdown"`
}

// ═══════════════════════════════════════════════════════════
// JSONB Scanner/Valuer for GORM (Custom slice types)
// ═══════════════════════════════════════════════════════════

func (l *StringList) Scan(value interface{}) error {
	if value == nil {
		*l = make(StringList, 0)
		return nil
	}
	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return errors.New("failed to scan StringList")
	}
	if err := json.Unmarshal(bytes, l); err != nil {
		return err
	}
	if *l == nil {
		*l = make(StringList, 0)
	}
	return nil
}

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return json.Marshal([]string{})
	}
	return json.Marshal([]string(l))
}

// MarshalJSON keeps nil lists as [] in API responses.
func (l StringList) MarshalJSON() ([]byte, error) {
	if l == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]string(l))
}
