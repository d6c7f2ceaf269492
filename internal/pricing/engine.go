package pricing

import (
	"context"
	"fmt"
	"math"

	"github.com/lamuse/classtee-backend/internal/catalog"
	"github.com/lamuse/classtee-backend/pkg/logger"
)

const (
	reasonNilProduct   = "nil_product"
	reasonInvalidSpec  = "invalid_specification"
	reasonUnknownGroup = "unknown_group"
	reasonOverflow     = "overflow"
	reasonPanic        = "panic"
)

type fallbackRecorder interface {
	IncPricingFallback(reason string)
}

// Breakdown is the priced result of one selection before coupons.
type Breakdown struct {
	UnitPrice        int64 `json:"unit_price"`
	Quantity         int   `json:"quantity"`
	Subtotal         int64 `json:"subtotal"`
	CampaignDiscount int64 `json:"campaign_discount"`
	FinalPrice       int64 `json:"final_price"`
	RuleMatched      bool  `json:"rule_matched"`
	Degraded         bool  `json:"degraded,omitempty"`
}

// Engine prices products against a static rule table. It never fails: any
// internal problem degrades to the product's base price and is logged.
type Engine struct {
	rules   Rules
	logg    *logger.Logger
	metrics fallbackRecorder
}

// NewEngine builds an Engine. logg and metrics may be nil.
func NewEngine(rules Rules, logg *logger.Logger, metrics fallbackRecorder) *Engine {
	if logg == nil {
		logg = logger.Nop()
	}
	return &Engine{rules: rules, logg: logg, metrics: metrics}
}

// Rules exposes the table the engine prices against.
func (e *Engine) Rules() Rules {
	return e.rules
}

// UnitPrice returns the rule price for the product's group and spec, or the
// product's base price when nothing matches.
func (e *Engine) UnitPrice(ctx context.Context, product *catalog.Product, spec Specification) int64 {
	price, _ := e.unitPrice(ctx, product, spec)
	return price
}

func (e *Engine) unitPrice(ctx context.Context, product *catalog.Product, spec Specification) (price int64, matched bool) {
	if product == nil {
		e.fallback(ctx, "", reasonNilProduct, nil)
		return 0, false
	}
	base := product.EffectiveBasePrice()
	defer func() {
		if r := recover(); r != nil {
			e.fallback(ctx, product.ID, reasonPanic, fmt.Errorf("%v", r))
			price, matched = base, false
		}
	}()

	group := product.Group()
	if !group.IsValid() {
		e.fallback(ctx, product.ID, reasonUnknownGroup, nil)
		return base, false
	}
	normalized := spec.ForGroup(group)
	if err := normalized.Validate(); err != nil {
		e.fallback(ctx, product.ID, reasonInvalidSpec, err)
		return base, false
	}
	if normalized.IsEmpty() {
		return base, false
	}
	if rulePrice, ok := e.rules.Lookup(group, normalized); ok {
		return rulePrice, true
	}
	return base, false
}

// TotalPrice prices totalQuantity units. Negative quantities count as zero.
// The teacher campaign waives exactly one unit price regardless of quantity.
func (e *Engine) TotalPrice(ctx context.Context, product *catalog.Product, spec Specification, totalQuantity int, teacherCampaign bool) (b Breakdown) {
	if totalQuantity < 0 {
		totalQuantity = 0
	}
	if product == nil {
		e.fallback(ctx, "", reasonNilProduct, nil)
		return Breakdown{Quantity: totalQuantity, Degraded: true}
	}
	defer func() {
		if r := recover(); r != nil {
			e.fallback(ctx, product.ID, reasonPanic, fmt.Errorf("%v", r))
			b = baseBreakdown(product, totalQuantity)
		}
	}()

	unit, matched := e.unitPrice(ctx, product, spec)
	subtotal, ok := mulInt64(unit, int64(totalQuantity))
	if !ok {
		e.fallback(ctx, product.ID, reasonOverflow, nil)
		return baseBreakdown(product, totalQuantity)
	}

	var discount int64
	if teacherCampaign {
		discount = unit
	}
	return Breakdown{
		UnitPrice:        unit,
		Quantity:         totalQuantity,
		Subtotal:         subtotal,
		CampaignDiscount: discount,
		FinalPrice:       max(0, subtotal-discount),
		RuleMatched:      matched,
	}
}

func (e *Engine) fallback(ctx context.Context, productID, reason string, err error) {
	if e.metrics != nil {
		e.metrics.IncPricingFallback(reason)
	}
	ctx = e.logg.WithFields(ctx, map[string]any{"product_id": productID, "reason": reason})
	if err != nil {
		ctx = e.logg.WithField(ctx, "cause", err.Error())
	}
	e.logg.Warn(ctx, "pricing.fallback")
}

func baseBreakdown(product *catalog.Product, quantity int) Breakdown {
	base := product.EffectiveBasePrice()
	subtotal, ok := mulInt64(base, int64(quantity))
	if !ok {
		subtotal = math.MaxInt64
	}
	return Breakdown{
		UnitPrice:  base,
		Quantity:   quantity,
		Subtotal:   subtotal,
		FinalPrice: subtotal,
		Degraded:   true,
	}
}

func mulInt64(a, b int64) (int64, bool) {
	if a == 0 || b == 0 {
		return 0, true
	}
	c := a * b
	if c/b != a || (a == -1 && b == math.MinInt64) || (b == -1 && a == math.MinInt64) {
		return 0, false
	}
	return c, true
}
