package catalog

import (
	"fmt"
	"strings"

	"github.com/lamuse/classtee-backend/pkg/enums"
	pkgerrors "github.com/lamuse/classtee-backend/pkg/errors"
)

// Variant is one color/size cell of a product's stock table.
type Variant struct {
	Color string `json:"color"`
	Size  string `json:"size"`
	Stock int    `json:"stock"`
}

// Product is an immutable catalog entry.
type Product struct {
	ID          string                `json:"id"`
	Name        string                `json:"name"`
	Description string                `json:"description"`
	Image       string                `json:"image"`
	Category    enums.ProductCategory `json:"category"`

	// BasePrice is authoritative; Price is the legacy list price.
	BasePrice int64     `json:"base_price"`
	Price     int64     `json:"price"`
	Colors    []string  `json:"colors"`
	Sizes     []string  `json:"sizes"`
	Variants  []Variant `json:"variants"`

	stock map[cell]int
}

type cell struct {
	color string
	size  string
}

// New validates p and returns a product ready for stock lookups. Every
// color/size combination must appear exactly once in Variants.
func New(p Product) (*Product, error) {
	p.ID = strings.TrimSpace(p.ID)
	if p.ID == "" {
		return nil, invalid("product id is required")
	}
	if !p.Category.IsValid() {
		return nil, invalid(fmt.Sprintf("product %s: unknown category %q", p.ID, p.Category))
	}
	if p.BasePrice < 0 || p.Price < 0 {
		return nil, invalid(fmt.Sprintf("product %s: prices must not be negative", p.ID))
	}
	if p.EffectiveBasePrice() == 0 {
		return nil, invalid(fmt.Sprintf("product %s: base price is required", p.ID))
	}
	if err := checkUnique(p.ID, "color", p.Colors); err != nil {
		return nil, err
	}
	if err := checkUnique(p.ID, "size", p.Sizes); err != nil {
		return nil, err
	}
	for _, size := range p.Sizes {
		// Selection keys are "<color>-<size>" split on the last hyphen.
		if strings.Contains(size, "-") {
			return nil, invalid(fmt.Sprintf("product %s: size %q must not contain a hyphen", p.ID, size))
		}
	}

	colors := toSet(p.Colors)
	sizes := toSet(p.Sizes)
	p.stock = make(map[cell]int, len(p.Variants))
	for _, v := range p.Variants {
		if !colors[v.Color] || !sizes[v.Size] {
			return nil, invalid(fmt.Sprintf("product %s: variant %s/%s is outside the color and size lists", p.ID, v.Color, v.Size))
		}
		if v.Stock < 0 {
			return nil, invalid(fmt.Sprintf("product %s: variant %s/%s has negative stock", p.ID, v.Color, v.Size))
		}
		key := cell{color: v.Color, size: v.Size}
		if _, dup := p.stock[key]; dup {
			return nil, invalid(fmt.Sprintf("product %s: duplicate variant %s/%s", p.ID, v.Color, v.Size))
		}
		p.stock[key] = v.Stock
	}
	if want := len(p.Colors) * len(p.Sizes); len(p.stock) != want {
		return nil, invalid(fmt.Sprintf("product %s: expected %d variants, got %d", p.ID, want, len(p.stock)))
	}

	p.Colors = append([]string(nil), p.Colors...)
	p.Sizes = append([]string(nil), p.Sizes...)
	p.Variants = make([]Variant, 0, len(p.stock))
	for _, color := range p.Colors {
		for _, size := range p.Sizes {
			p.Variants = append(p.Variants, Variant{Color: color, Size: size, Stock: p.stock[cell{color: color, size: size}]})
		}
	}
	return &p, nil
}

// Group is the pricing group derived from the category.
func (p *Product) Group() enums.ProductGroup {
	if p == nil {
		return ""
	}
	return p.Category.Group()
}

// EffectiveBasePrice returns BasePrice, or the legacy Price when BasePrice is unset.
func (p *Product) EffectiveBasePrice() int64 {
	if p == nil {
		return 0
	}
	if p.BasePrice > 0 {
		return p.BasePrice
	}
	return p.Price
}

// StockOf returns the stock of a color/size cell, 0 for unknown cells.
func (p *Product) StockOf(color, size string) int {
	if p == nil {
		return 0
	}
	return p.stock[cell{color: color, size: size}]
}

// HasColor reports whether color is offered.
func (p *Product) HasColor(color string) bool {
	if p == nil {
		return false
	}
	for _, c := range p.Colors {
		if c == color {
			return true
		}
	}
	return false
}

// HasVariant reports whether the color/size cell exists.
func (p *Product) HasVariant(color, size string) bool {
	if p == nil {
		return false
	}
	_, ok := p.stock[cell{color: color, size: size}]
	return ok
}

func checkUnique(productID, field string, values []string) error {
	if len(values) == 0 {
		return invalid(fmt.Sprintf("product %s: at least one %s is required", productID, field))
	}
	seen := make(map[string]struct{}, len(values))
	for _, v := range values {
		if strings.TrimSpace(v) == "" {
			return invalid(fmt.Sprintf("product %s: empty %s", productID, field))
		}
		if _, ok := seen[v]; ok {
			return invalid(fmt.Sprintf("product %s: duplicate %s %q", productID, field, v))
		}
		seen[v] = struct{}{}
	}
	return nil
}

func toSet(values []string) map[string]bool {
	set := make(map[string]bool, len(values))
	for _, v := range values {
		set[v] = true
	}
	return set
}

func invalid(msg string) error {
	return pkgerrors.New(pkgerrors.CodeValidation, msg)
}
