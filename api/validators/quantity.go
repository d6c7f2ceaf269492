package validators

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Quantity decodes the loose quantity field shoppers send from number
// inputs. Fractions are floored, anything that is not a number reads as 0
// and values past the int32 range are pinned to its edges so struct tags
// such as max= still see them.
type Quantity int

func (q *Quantity) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	raw := string(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			*q = 0
			return nil
		}
		raw = strings.TrimSpace(s)
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(f) {
		*q = 0
		return nil
	}
	f = math.Floor(f)
	switch {
	case f > math.MaxInt32:
		*q = math.MaxInt32
	case f < math.MinInt32:
		*q = math.MinInt32
	default:
		*q = Quantity(f)
	}
	return nil
}

func (q Quantity) Int() int {
	return int(q)
}
