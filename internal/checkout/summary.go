package checkout

import (
	"maps"

	"github.com/lamuse/classtee-backend/internal/pricing"
	pkgerrors "github.com/lamuse/classtee-backend/pkg/errors"
)

// OrderSummary is the priced selection handed from the product page to
// checkout. It is a value: once built it is never modified.
type OrderSummary struct {
	ProductID        string                `json:"product_id"`
	ProductName      string                `json:"product_name"`
	Specification    pricing.Specification `json:"specification"`
	Quantities       map[string]int        `json:"quantities"`
	TotalQuantity    int                   `json:"total_quantity"`
	UnitPrice        int64                 `json:"unit_price"`
	Subtotal         int64                 `json:"subtotal"`
	CampaignDiscount int64                 `json:"campaign_discount"`
	FinalPrice       int64                 `json:"final_price"`
	TeacherDiscount  bool                  `json:"teacher_discount"`
}

// NewOrderSummary copies quantities and checks the totals add up.
func NewOrderSummary(productID, productName string, spec pricing.Specification, quantities map[string]int, price pricing.Breakdown, teacherDiscount bool) (OrderSummary, error) {
	s := OrderSummary{
		ProductID:        productID,
		ProductName:      productName,
		Specification:    spec,
		Quantities:       maps.Clone(quantities),
		TotalQuantity:    price.Quantity,
		UnitPrice:        price.UnitPrice,
		Subtotal:         price.Subtotal,
		CampaignDiscount: price.CampaignDiscount,
		FinalPrice:       price.FinalPrice,
		TeacherDiscount:  teacherDiscount,
	}
	if err := s.Validate(); err != nil {
		return OrderSummary{}, err
	}
	return s, nil
}

// Validate rejects empty orders and quantity maps that disagree with the total.
func (s OrderSummary) Validate() error {
	if s.ProductID == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "order summary is missing the product")
	}
	if s.TotalQuantity <= 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "order summary has no items")
	}
	sum := 0
	for key, qty := range s.Quantities {
		if qty <= 0 {
			return pkgerrors.New(pkgerrors.CodeValidation, "order summary holds a non-positive quantity").WithDetails(map[string]any{"variant": key})
		}
		sum += qty
	}
	if sum != s.TotalQuantity {
		return pkgerrors.New(pkgerrors.CodeValidation, "order summary quantities do not add up")
	}
	if s.FinalPrice < 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "order summary has a negative price")
	}
	return nil
}
