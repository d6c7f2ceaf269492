package pricing

import "github.com/lamuse/classtee-backend/pkg/enums"

type ruleKey struct {
	group enums.ProductGroup
	spec  Specification
}

// Rule is one entry of the static price table.
type Rule struct {
	Group         enums.ProductGroup `json:"group"`
	Specification Specification      `json:"specification"`
	UnitPrice     int64              `json:"unit_price"`
}

// Rules is the static price table. It is built once and never mutated.
type Rules struct {
	ordered []ruleKey
	byKey   map[ruleKey]int64
}

// NewRules indexes the given rules; a later duplicate replaces an earlier one.
func NewRules(rules ...Rule) Rules {
	r := Rules{byKey: make(map[ruleKey]int64, len(rules))}
	for _, rule := range rules {
		key := ruleKey{group: rule.Group, spec: rule.Specification.ForGroup(rule.Group)}
		if _, exists := r.byKey[key]; !exists {
			r.ordered = append(r.ordered, key)
		}
		r.byKey[key] = rule.UnitPrice
	}
	return r
}

// DefaultRules is the storefront price table.
func DefaultRules() Rules {
	return NewRules(
		Rule{Group: enums.ProductGroupCustom, Specification: Specification{PrintLocation: enums.PrintLocationFront}, UnitPrice: 1500},
		Rule{Group: enums.ProductGroupCustom, Specification: Specification{PrintLocation: enums.PrintLocationBoth}, UnitPrice: 1800},
		Rule{Group: enums.ProductGroupCustom, Specification: Specification{Material: enums.MaterialPolyester, PrintLocation: enums.PrintLocationFront}, UnitPrice: 1500},
		Rule{Group: enums.ProductGroupCustom, Specification: Specification{Material: enums.MaterialPolyester, PrintLocation: enums.PrintLocationBoth}, UnitPrice: 1800},
		Rule{Group: enums.ProductGroupCustom, Specification: Specification{Material: enums.MaterialCotton, PrintLocation: enums.PrintLocationFront}, UnitPrice: 1500},
		Rule{Group: enums.ProductGroupCustom, Specification: Specification{Material: enums.MaterialCotton, PrintLocation: enums.PrintLocationBoth}, UnitPrice: 1800},
		Rule{Group: enums.ProductGroupUniform, Specification: Specification{BackPrint: enums.BackPrintNone}, UnitPrice: 1400},
		Rule{Group: enums.ProductGroupUniform, Specification: Specification{BackPrint: enums.BackPrintNameNumber}, UnitPrice: 1800},
	)
}

// Lookup returns the unit price for an exact (group, specification) match.
func (r Rules) Lookup(group enums.ProductGroup, spec Specification) (int64, bool) {
	price, ok := r.byKey[ruleKey{group: group, spec: spec}]
	return price, ok
}

// ForGroup lists the rules of one group in table order.
func (r Rules) ForGroup(group enums.ProductGroup) []Rule {
	out := make([]Rule, 0, len(r.ordered))
	for _, key := range r.ordered {
		if key.group == group {
			out = append(out, Rule{Group: key.group, Specification: key.spec, UnitPrice: r.byKey[key]})
		}
	}
	return out
}
