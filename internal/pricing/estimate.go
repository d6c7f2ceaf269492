package pricing

import "math"

// Estimate is the quick simulator price: every shirt at the flat template
// price. Negative quantities count as zero and the result saturates.
func Estimate(templatePrice int64, quantity int) int64 {
	if quantity <= 0 || templatePrice <= 0 {
		return 0
	}
	total, ok := mulInt64(templatePrice, int64(quantity))
	if !ok {
		return math.MaxInt64
	}
	return total
}
