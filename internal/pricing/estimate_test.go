package pricing

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEstimate(t *testing.T) {
	cases := []struct {
		name  string
		price int64
		qty   int
		want  int64
	}{
		{"default template", 980, 10, 9800},
		{"negative quantity", 980, -3, 0},
		{"zero quantity", 980, 0, 0},
		{"saturates", math.MaxInt64, 2, math.MaxInt64},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Estimate(tc.price, tc.qty))
		})
	}
}
