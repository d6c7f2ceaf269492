package types

import "strings"

// Address is a Japanese postal address as returned by the postal-code lookup.
type Address struct {
	PostalCode string `json:"postal_code"`
	Prefecture string `json:"prefecture"`
	City       string `json:"city"`
	Town       string `json:"town"`
}

// Formatted joins the address parts the way they are written on a label.
func (a Address) Formatted() string {
	return strings.TrimSpace(a.Prefecture + a.City + a.Town)
}

// NormalizePostalCode strips the hyphen and full-width digits from a postal
// code. It returns "" when the result is not exactly seven digits.
func NormalizePostalCode(raw string) string {
	var b strings.Builder
	for _, r := range strings.TrimSpace(raw) {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r >= '０' && r <= '９':
			b.WriteRune('0' + (r - '０'))
		case r == '-' || r == 'ー' || r == '－':
		default:
			return ""
		}
	}
	if b.Len() != 7 {
		return ""
	}
	return b.String()
}
