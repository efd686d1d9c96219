package models

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/Treadle-Controls/treadle-cms-backend/selector"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Option is one selectable answer of a wizard step. Value is the facet token
// products are matched against; it is unique within a category.
type Option struct {
	ID          uuid.UUID      `json:"id" gorm:"type:uuid;primaryKey"`
	Category    string         `json:"category" gorm:"not null;uniqueIndex:idx_options_category_value;index"`
	Value       string         `json:"value" gorm:"not null;uniqueIndex:idx_options_category_value"`
	Label       string         `json:"label" gorm:"not null"`
	Description string         `json:"description" gorm:"type:text"`
	SortOrder   int            `json:"sort_order" gorm:"default:0"`
	Active      bool           `json:"active" gorm:"default:true;index"`
	Rules       datatypes.JSON `json:"rules" gorm:"type:jsonb;not null;default:'{}'"` // {applications, technologies, hidden_for_technologies}
	CreatedAt   time.Time      `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt   time.Time      `json:"updated_at" gorm:"autoUpdateTime"`
}

// BeforeCreate hook - auto-generate UUID v7
func (o *Option) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.Must(uuid.NewV7())
	}
	if len(o.Rules) == 0 {
		o.Rules = datatypes.JSON("{}")
	}
	return nil
}

// TableName specifies the table name
func (Option) TableName() string {
	return "options"
}

// Eligibility decodes the rules column. An empty column imposes nothing.
func (o Option) Eligibility() (selector.Eligibility, error) {
	var rules selector.Eligibility
	if len(o.Rules) == 0 {
		return rules, nil
	}
	if err := json.Unmarshal(o.Rules, &rules); err != nil {
		return rules, fmt.Errorf("option %s/%s: invalid rules: %w", o.Category, o.Value, err)
	}
	rules.Applications = selector.NormalizeTokens(rules.Applications)
	rules.Technologies = selector.NormalizeTokens(rules.Technologies)
	rules.HiddenForTechnologies = selector.NormalizeTokens(rules.HiddenForTechnologies)
	return rules, nil
}

// ToSelector converts the row into the matching engine's option.
func (o Option) ToSelector() (selector.Option, error) {
	rules, err := o.Eligibility()
	if err != nil {
		return selector.Option{}, err
	}
	return selector.Option{
		ID:       o.Value,
		Category: selector.Facet(o.Category),
		Label:    o.Label,
		Rules:    rules,
	}, nil
}

// EncodeRules marshals eligibility rules for the rules column.
func EncodeRules(rules *selector.Eligibility) (datatypes.JSON, error) {
	if rules == nil {
		return datatypes.JSON("{}"), nil
	}
	data, err := json.Marshal(rules)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(data), nil
}

// normalizeOptionValue keeps free-text facets (material, connection) as
// typed and canonicalizes the token facets.
func normalizeOptionValue(category, value string) string {
	switch selector.Facet(category) {
	case selector.FacetMaterial, selector.FacetConnection:
		return strings.TrimSpace(value)
	}
	return selector.NormalizeToken(value)
}

// ═══════════════════════════════════════════════════════════
// Request Models
// ═══════════════════════════════════════════════════════════

type OptionRequest struct {
	Category    string                `json:"category" binding:"required" example:"technology"`
	Value       string                `json:"value" binding:"required" example:"wireless"`
	Label       string                `json:"label" binding:"required" example:"Wireless"`
	Description string                `json:"description"`
	SortOrder   int                   `json:"sort_order"`
	Active      *bool                 `json:"active"`
	Rules       *selector.Eligibility `json:"rules"`
}

// ToModel validates the category and builds the row.
func (r OptionRequest) ToModel() (Option, error) {
	f, ok := selector.ParseFacet(r.Category)
	if !ok || f == selector.FacetSearch {
		return Option{}, fmt.Errorf("unknown category %q", r.Category)
	}
	rules, err := EncodeRules(r.Rules)
	if err != nil {
		return Option{}, err
	}
	active := true
	if r.Active != nil {
		active = *r.Active
	}
	return Option{
		Category:    string(f),
		Value:       normalizeOptionValue(string(f), r.Value),
		Label:       strings.TrimSpace(r.Label),
		Description: r.Description,
		SortOrder:   r.SortOrder,
		Active:      active,
		Rules:       rules,
	}, nil
}

type UpdateOptionRequest struct {
	Label       *string               `json:"label" binding:"omitempty,min=1"`
	Value       *string               `json:"value" binding:"omitempty,min=1"`
	Description *string               `json:"description"`
	SortOrder   *int                  `json:"sort_order"`
	Active      *bool                 `json:"active"`
	Rules       *selector.Eligibility `json:"rules"`
}

// Apply copies the non-nil fields onto o.
func (r UpdateOptionRequest) Apply(o *Option) error {
	if r.Label != nil {
		o.Label = strings.TrimSpace(*r.Label)
	}
	if r.Value != nil {
		o.Value = normalizeOptionValue(o.Category, *r.Value)
	}
	if r.Description != nil {
		o.Description = *r.Description
	}
	if r.SortOrder != nil {
		o.SortOrder = *r.SortOrder
	}
	if r.Active != nil {
		o.Active = *r.Active
	}
	if r.Rules != nil {
		rules, err := EncodeRules(r.Rules)
		if err != nil {
			return err
		}
		o.Rules = rules
	}
	return nil
}
