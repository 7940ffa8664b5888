// Package catalog loads the read-only list of searchable items.
package catalog

import (
	"fmt"
	"strings"
)

// Item is one catalog entry. GRD and Description are required and
// searchable; the remaining fields are display-only.
type Item struct {
	GRD         string   `json:"grd" yaml:"grd" toml:"grd"`
	Description string   `json:"description" yaml:"description" toml:"description"`
	PriceKg     *float64 `json:"price_kg,omitempty" yaml:"price_kg,omitempty" toml:"price_kg,omitempty"`
	PriceLb     *float64 `json:"price_lb,omitempty" yaml:"price_lb,omitempty" toml:"price_lb,omitempty"`
	Category    string   `json:"category,omitempty" yaml:"category,omitempty" toml:"category,omitempty"`
	Notes       string   `json:"notes,omitempty" yaml:"notes,omitempty" toml:"notes,omitempty"`
}

// Label is the "{grd} - {description}" text shown in suggestion rows and
// written into the input on commit.
func (it Item) Label() string {
	return it.GRD + " - " + it.Description
}

func (it Item) validate(index int) error {
	if strings.TrimSpace(it.GRD) == "" {
		return fmt.Errorf("item %d: grd is required", index)
	}
	if strings.TrimSpace(it.Description) == "" {
		return fmt.Errorf("item %d (%s): description is required", index, it.GRD)
	}
	return nil
}

// Price returns a pointer to v. Handy for building items in code.
func Price(v float64) *float64 {
	return &v
}
