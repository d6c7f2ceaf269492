package selection

import (
	"time"

	"github.com/lamuse/classtee-backend/internal/catalog"
	"github.com/lamuse/classtee-backend/internal/pricing"
	"github.com/lamuse/classtee-backend/pkg/enums"
	pkgerrors "github.com/lamuse/classtee-backend/pkg/errors"
)

// Session is the stored form of an Aggregator.
type Session struct {
	ID              string                `json:"id"`
	ProductID       string                `json:"product_id"`
	SelectedColor   string                `json:"selected_color,omitempty"`
	Quantities      map[string]int        `json:"quantities"`
	Specification   pricing.Specification `json:"specification"`
	TeacherDiscount bool                  `json:"teacher_discount"`
	Touched         bool                  `json:"touched,omitempty"`
	CreatedAt       time.Time             `json:"created_at"`
	UpdatedAt       time.Time             `json:"updated_at"`
}

// Snapshot copies the aggregator into a Session. Timestamps are left to the caller.
func (a *Aggregator) Snapshot(id string) Session {
	return Session{
		ID:              id,
		ProductID:       a.product.ID,
		SelectedColor:   a.selectedColor,
		Quantities:      a.Quantities(),
		Specification:   a.spec,
		TeacherDiscount: a.teacherDiscount,
		Touched:         a.touched,
	}
}

// Restore rebuilds an aggregator from a stored session. Cells the product
// no longer carries are rejected rather than dropped.
func Restore(product *catalog.Product, s Session) (*Aggregator, error) {
	a, err := NewAggregator(product)
	if err != nil {
		return nil, err
	}
	if s.ProductID != product.ID {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "session belongs to another product")
	}
	if s.SelectedColor != "" && !product.HasColor(s.SelectedColor) {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "selected color no longer available; please restart selection")
	}
	a.selectedColor = s.SelectedColor
	a.spec = s.Specification.ForGroup(product.Group())
	a.teacherDiscount = s.TeacherDiscount
	a.touched = s.Touched
	for raw, qty := range s.Quantities {
		key, err := ParseVariantKey(raw)
		if err != nil {
			return nil, err
		}
		if !product.HasVariant(key.Color, key.Size) {
			return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "variant no longer available; please restart selection").
				WithDetails(map[string]any{"variant": raw})
		}
		if qty > 0 {
			a.quantities[key] = min(qty, MaxVariantQuantity)
		}
	}
	return a, nil
}

// Line is one selected cell.
type Line struct {
	Key      string `json:"key"`
	Color    string `json:"color"`
	Size     string `json:"size"`
	Quantity int    `json:"quantity"`
	Stock    int    `json:"stock"`
}

// Warning flags a cell whose quantity the stock table cannot cover.
type Warning struct {
	Type      enums.SelectionWarningType `json:"type"`
	Key       string                     `json:"key"`
	Requested int                        `json:"requested"`
	Stock     int                        `json:"stock"`
}

// Summary is the recomputed view returned after every event.
type Summary struct {
	SessionID       string                `json:"session_id,omitempty"`
	ProductID       string                `json:"product_id"`
	ProductName     string                `json:"product_name"`
	State           enums.SelectionState  `json:"state"`
	SelectedColor   string                `json:"selected_color,omitempty"`
	Stock           map[string]int        `json:"stock,omitempty"`
	Quantities      map[string]int        `json:"quantities"`
	Lines           []Line                `json:"lines"`
	TotalQuantity   int                   `json:"total_quantity"`
	Specification   pricing.Specification `json:"specification"`
	TeacherDiscount bool                  `json:"teacher_discount"`
	Price           pricing.Breakdown     `json:"price"`
	Warnings        []Warning             `json:"warnings"`
}
