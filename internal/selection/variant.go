package selection

import (
	"strings"

	pkgerrors "github.com/lamuse/classtee-backend/pkg/errors"
)

// VariantKey identifies one color/size cell of a product's stock table.
type VariantKey struct {
	Color string
	Size  string
}

// String renders the wire form "<color>-<size>".
func (k VariantKey) String() string {
	return k.Color + "-" + k.Size
}

// ParseVariantKey splits on the last hyphen; sizes never contain one.
func ParseVariantKey(raw string) (VariantKey, error) {
	raw = strings.TrimSpace(raw)
	idx := strings.LastIndex(raw, "-")
	if idx <= 0 || idx == len(raw)-1 {
		return VariantKey{}, pkgerrors.New(pkgerrors.CodeValidation, "variant key must look like <color>-<size>").
			WithDetails(map[string]any{"key": raw})
	}
	return VariantKey{Color: raw[:idx], Size: raw[idx+1:]}, nil
}
