package pricing

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// CouponDiscount returns floor(total * percent / 100). Percentages are
// clamped to 0..100 and non-positive totals yield no discount.
func CouponDiscount(total int64, percent int) int64 {
	if total <= 0 || percent <= 0 {
		return 0
	}
	if percent > 100 {
		percent = 100
	}
	return decimal.NewFromInt(total).
		Mul(decimal.NewFromInt(int64(percent))).
		Div(hundred).
		Floor().
		IntPart()
}

// CheckoutTotal subtracts the coupon discount, never going below zero.
func CheckoutTotal(finalPrice, couponDiscount int64) int64 {
	return max(0, finalPrice-couponDiscount)
}
