package checkout

import (
	"time"

	"github.com/lamuse/classtee-backend/internal/payments"
	"github.com/lamuse/classtee-backend/internal/pricing"
	"github.com/lamuse/classtee-backend/pkg/enums"
)

// Customer is the order form.
type Customer struct {
	Name       string `json:"name" validate:"required,max=100"`
	NameKana   string `json:"name_kana,omitempty" validate:"omitempty,max=100"`
	Email      string `json:"email" validate:"required,email,max=254"`
	Phone      string `json:"phone" validate:"required,jp_phone"`
	PostalCode string `json:"postal_code" validate:"required,jp_postal_code"`
	Prefecture string `json:"prefecture" validate:"required,max=10"`
	Address    string `json:"address" validate:"required,max=200"`
	Building   string `json:"building,omitempty" validate:"omitempty,max=100"`
	Note       string `json:"note,omitempty" validate:"omitempty,max=1000"`
}

// Draft is the in-progress order kept in transient storage until the
// payment is confirmed.
type Draft struct {
	ID             string               `json:"id"`
	Summary        OrderSummary         `json:"summary"`
	Customer       *Customer            `json:"customer,omitempty"`
	CouponCode     string               `json:"coupon_code,omitempty"`
	CouponApplied  bool                 `json:"coupon_applied"`
	CouponPercent  int                  `json:"coupon_percent,omitempty"`
	CouponDiscount int64                `json:"coupon_discount"`
	PaymentMethod  enums.PaymentMethod  `json:"payment_method,omitempty"`
	Status         enums.CheckoutStatus `json:"status"`
	CreatedAt      time.Time            `json:"created_at"`
	UpdatedAt      time.Time            `json:"updated_at"`
}

// PayableTotal is the order price after the frozen coupon discount.
func (d *Draft) PayableTotal() int64 {
	return pricing.CheckoutTotal(d.Summary.FinalPrice, d.CouponDiscount)
}

// DraftView is a draft plus its derived payable amount.
type DraftView struct {
	Draft
	PayableTotal int64 `json:"payable_total"`
}

func viewOf(d *Draft) *DraftView {
	return &DraftView{Draft: *d, PayableTotal: d.PayableTotal()}
}

// Receipt is returned once an order is confirmed. The draft no longer exists.
type Receipt struct {
	OrderID        string                `json:"order_id"`
	Status         enums.CheckoutStatus  `json:"status"`
	Summary        OrderSummary          `json:"summary"`
	Customer       Customer              `json:"customer"`
	CouponCode     string                `json:"coupon_code,omitempty"`
	CouponDiscount int64                 `json:"coupon_discount"`
	PayableTotal   int64                 `json:"payable_total"`
	Instructions   payments.Instructions `json:"instructions"`
	ConfirmedAt    time.Time             `json:"confirmed_at"`
}
