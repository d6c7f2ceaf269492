package selection

import (
	"context"
	"strings"

	"github.com/lamuse/classtee-backend/internal/catalog"
	"github.com/lamuse/classtee-backend/internal/checkout"
	"github.com/lamuse/classtee-backend/internal/pricing"
	"github.com/lamuse/classtee-backend/pkg/enums"
	pkgerrors "github.com/lamuse/classtee-backend/pkg/errors"
)

type pricer interface {
	TotalPrice(ctx context.Context, product *catalog.Product, spec pricing.Specification, totalQuantity int, teacherCampaign bool) pricing.Breakdown
}

// Aggregator holds one shopper's choices for one product. Quantities never
// contain zero entries and the total is always their sum.
type Aggregator struct {
	product         *catalog.Product
	selectedColor   string
	quantities      map[VariantKey]int
	spec            pricing.Specification
	teacherDiscount bool
	// touched records that a size/quantity cell was edited since the last
	// color selection.
	touched bool
}

// NewAggregator starts an empty selection for product.
func NewAggregator(product *catalog.Product) (*Aggregator, error) {
	if product == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}
	return &Aggregator{product: product, quantities: map[VariantKey]int{}}, nil
}

func (a *Aggregator) Product() *catalog.Product {
	return a.product
}

func (a *Aggregator) SelectedColor() string {
	return a.selectedColor
}

func (a *Aggregator) Specification() pricing.Specification {
	return a.spec
}

func (a *Aggregator) TeacherDiscount() bool {
	return a.teacherDiscount
}

// SelectColor switches color and clears every quantity so stale cells never
// apply to the new color's stock table.
func (a *Aggregator) SelectColor(color string) error {
	color = strings.TrimSpace(color)
	if !a.product.HasColor(color) {
		return pkgerrors.New(pkgerrors.CodeValidation, "unknown color").
			WithDetails(map[string]any{"color": color, "product_id": a.product.ID})
	}
	a.selectedColor = color
	a.quantities = map[VariantKey]int{}
	a.touched = false
	return nil
}

// MaxVariantQuantity caps a single cell so totals stay well inside int.
const MaxVariantQuantity = 9999

// SetQuantity stores qty for the cell. Negative values count as zero, zero
// removes the cell and anything above MaxVariantQuantity is capped. Stock is
// not enforced here.
func (a *Aggregator) SetQuantity(color, size string, qty int) error {
	if a.selectedColor == "" {
		return pkgerrors.New(pkgerrors.CodeStateConflict, "select a color first")
	}
	key := VariantKey{Color: strings.TrimSpace(color), Size: strings.TrimSpace(size)}
	if !a.product.HasVariant(key.Color, key.Size) {
		return pkgerrors.New(pkgerrors.CodeValidation, "unknown variant").
			WithDetails(map[string]any{"variant": key.String(), "product_id": a.product.ID})
	}
	a.touched = true
	if qty <= 0 {
		delete(a.quantities, key)
		return nil
	}
	a.quantities[key] = min(qty, MaxVariantQuantity)
	return nil
}

// SetSpecification keeps only the fields that apply to the product group.
func (a *Aggregator) SetSpecification(spec pricing.Specification) {
	a.spec = spec.ForGroup(a.product.Group())
}

func (a *Aggregator) SetTeacherDiscount(enabled bool) {
	a.teacherDiscount = enabled
}

// Reset drops everything back to the empty state.
func (a *Aggregator) Reset() {
	a.selectedColor = ""
	a.quantities = map[VariantKey]int{}
	a.spec = pricing.Specification{}
	a.teacherDiscount = false
	a.touched = false
}

// StockOf returns 0 for unknown cells.
func (a *Aggregator) StockOf(color, size string) int {
	return a.product.StockOf(color, size)
}

func (a *Aggregator) TotalQuantity() int {
	total := 0
	for _, qty := range a.quantities {
		total += qty
	}
	return total
}

// Quantities returns a copy keyed by the wire form.
func (a *Aggregator) Quantities() map[string]int {
	out := make(map[string]int, len(a.quantities))
	for key, qty := range a.quantities {
		out[key.String()] = qty
	}
	return out
}

func (a *Aggregator) State() enums.SelectionState {
	switch {
	case a.TotalQuantity() > 0:
		return enums.SelectionStateReadyForCheckout
	case a.selectedColor == "":
		return enums.SelectionStateEmpty
	case a.touched:
		return enums.SelectionStateSizeOrQuantityChosen
	default:
		return enums.SelectionStateColorChosen
	}
}

// Price runs the selection through the pricing engine.
func (a *Aggregator) Price(ctx context.Context, engine pricer) pricing.Breakdown {
	return engine.TotalPrice(ctx, a.product, a.spec, a.TotalQuantity(), a.teacherDiscount)
}

// Summary renders the selection with its price, lines in stock-table order
// and stock warnings.
func (a *Aggregator) Summary(ctx context.Context, engine pricer) Summary {
	s := Summary{
		ProductID:       a.product.ID,
		ProductName:     a.product.Name,
		State:           a.State(),
		SelectedColor:   a.selectedColor,
		Quantities:      a.Quantities(),
		TotalQuantity:   a.TotalQuantity(),
		Specification:   a.spec,
		TeacherDiscount: a.teacherDiscount,
		Price:           a.Price(ctx, engine),
		Lines:           []Line{},
		Warnings:        []Warning{},
	}
	if a.selectedColor != "" {
		s.Stock = make(map[string]int, len(a.product.Sizes))
		for _, size := range a.product.Sizes {
			s.Stock[size] = a.product.StockOf(a.selectedColor, size)
		}
	}
	for _, color := range a.product.Colors {
		for _, size := range a.product.Sizes {
			key := VariantKey{Color: color, Size: size}
			qty, ok := a.quantities[key]
			if !ok {
				continue
			}
			stock := a.product.StockOf(color, size)
			s.Lines = append(s.Lines, Line{Key: key.String(), Color: color, Size: size, Quantity: qty, Stock: stock})
			switch {
			case stock == 0:
				s.Warnings = append(s.Warnings, Warning{Type: enums.SelectionWarningOutOfStock, Key: key.String(), Requested: qty, Stock: stock})
			case qty > stock:
				s.Warnings = append(s.Warnings, Warning{Type: enums.SelectionWarningExceedsStock, Key: key.String(), Requested: qty, Stock: stock})
			}
		}
	}
	return s
}

// OrderSummary freezes the selection into the value handed to checkout.
func (a *Aggregator) OrderSummary(ctx context.Context, engine pricer) (checkout.OrderSummary, error) {
	if a.State() != enums.SelectionStateReadyForCheckout {
		return checkout.OrderSummary{}, pkgerrors.New(pkgerrors.CodeStateConflict, "selection has no items").
			WithDetails(map[string]any{"state": a.State()})
	}
	return checkout.NewOrderSummary(a.product.ID, a.product.Name, a.spec, a.Quantities(), a.Price(ctx, engine), a.teacherDiscount)
}
