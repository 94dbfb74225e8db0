package stock

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/janenicoldelacruz-web/lakson-inventory/models"
)

// DisplayUnit is the unit an operator enters and sees on a line item.
type DisplayUnit string

const (
	UnitSack     DisplayUnit = "sack"
	UnitKilogram DisplayUnit = "kg"
	UnitPiece    DisplayUnit = "piece"
)

// ParseDisplayUnit normalizes a request-supplied unit string.
func ParseDisplayUnit(s string) (DisplayUnit, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "sack", "sacks":
		return UnitSack, nil
	case "kg", "kilogram", "kilograms":
		return UnitKilogram, nil
	case "piece", "pieces", "pc", "pcs":
		return UnitPiece, nil
	}
	return "", fmt.Errorf("%w: unknown unit %q", ErrInvalidUnit, s)
}

// PackRule overrides the sack weight for products whose name contains Match
// (case-insensitive). Pack sizes differ by variant (pre-starter feeds ship
// in smaller sacks than the rest of the same category) and the business
// supplies the table; none of it is hardcoded at call sites.
type PackRule struct {
	Match     string
	KgPerSack decimal.Decimal
}

// Converter is the single place quantities move between display units and
// stored units. Every consumer calls it; the rule is never re-derived inline.
type Converter struct {
	defaultKgPerSack decimal.Decimal
	rules            []PackRule
}

// NewConverter builds a converter from the business-supplied pack-size
// configuration. Rules are checked in order; the first match wins.
func NewConverter(defaultKgPerSack decimal.Decimal, rules []PackRule) *Converter {
	return &Converter{defaultKgPerSack: defaultKgPerSack, rules: rules}
}

// PackSize returns kilograms per sack for a weight-tracked product.
func (c *Converter) PackSize(p *models.Product) decimal.Decimal {
	name := strings.ToLower(p.Name)
	for _, r := range c.rules {
		if strings.Contains(name, strings.ToLower(r.Match)) {
			return r.KgPerSack
		}
	}
	return c.defaultKgPerSack
}

// ToStored converts a display-unit quantity to the product's stored unit
// (kilograms for weight-tracked products, pieces otherwise).
func (c *Converter) ToStored(p *models.Product, qty decimal.Decimal, unit DisplayUnit) (decimal.Decimal, error) {
	if p.IsWeightTracked() {
		switch unit {
		case UnitSack:
			return qty.Mul(c.PackSize(p)), nil
		case UnitKilogram:
			return qty, nil
		}
		return decimal.Zero, fmt.Errorf("%w: %s for weight-tracked product %q", ErrInvalidUnit, unit, p.Name)
	}
	if unit == UnitPiece {
		return qty, nil
	}
	return decimal.Zero, fmt.Errorf("%w: %s for count-tracked product %q", ErrInvalidUnit, unit, p.Name)
}

// ToDisplay converts a stored-unit quantity back to the given display unit.
// Exact inverse of ToStored; fractional results are returned as-is, rounding
// is a presentation concern.
func (c *Converter) ToDisplay(p *models.Product, qty decimal.Decimal, unit DisplayUnit) (decimal.Decimal, error) {
	if p.IsWeightTracked() {
		switch unit {
		case UnitSack:
			return qty.Div(c.PackSize(p)), nil
		case UnitKilogram:
			return qty, nil
		}
		return decimal.Zero, fmt.Errorf("%w: %s for weight-tracked product %q", ErrInvalidUnit, unit, p.Name)
	}
	if unit == UnitPiece {
		return qty, nil
	}
	return decimal.Zero, fmt.Errorf("%w: %s for count-tracked product %q", ErrInvalidUnit, unit, p.Name)
}

// DefaultUnit returns the display unit a product is normally transacted in.
func (c *Converter) DefaultUnit(p *models.Product) DisplayUnit {
	if p.IsWeightTracked() {
		return UnitSack
	}
	return UnitPiece
}

// FormatStored renders a stored quantity as a human string, e.g.
// "3 sacks + 1 kg (151 kg)" or "12 pcs".
func (c *Converter) FormatStored(p *models.Product, stored decimal.Decimal) string {
	if !p.IsWeightTracked() {
		return fmt.Sprintf("%s pcs", stored.Round(0))
	}
	pack := c.PackSize(p)
	sacks := stored.Div(pack).Floor()
	loose := stored.Sub(sacks.Mul(pack))
	if loose.IsZero() {
		return fmt.Sprintf("%s sacks (%s kg)", sacks, stored)
	}
	return fmt.Sprintf("%s sacks + %s kg (%s kg)", sacks, loose, stored)
}
