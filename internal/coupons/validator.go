package coupons

import (
	"context"
	"fmt"
	"strings"
)

// Coupon is a validated discount code.
type Coupon struct {
	Code    string `json:"code"`
	Percent int    `json:"percent"`
}

// Validator resolves coupon codes. A lookup service can replace the static
// table without touching checkout.
type Validator interface {
	Validate(ctx context.Context, code string) (Coupon, bool, error)
}

// StaticValidator matches codes case-insensitively against a fixed table.
type StaticValidator struct {
	codes map[string]int
}

// NewStaticValidator builds the table from code → percent pairs.
func NewStaticValidator(codes map[string]int) (*StaticValidator, error) {
	table := make(map[string]int, len(codes))
	for code, percent := range codes {
		normalized := normalize(code)
		if normalized == "" {
			return nil, fmt.Errorf("empty coupon code")
		}
		if percent <= 0 || percent > 100 {
			return nil, fmt.Errorf("coupon %s: percent must be within 1..100, got %d", normalized, percent)
		}
		table[normalized] = percent
	}
	return &StaticValidator{codes: table}, nil
}

func (v *StaticValidator) Validate(_ context.Context, code string) (Coupon, bool, error) {
	normalized := normalize(code)
	percent, ok := v.codes[normalized]
	if !ok {
		return Coupon{}, false, nil
	}
	return Coupon{Code: normalized, Percent: percent}, true, nil
}

func normalize(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
