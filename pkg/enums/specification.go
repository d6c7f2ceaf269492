package enums

import (
	"fmt"
	"strings"
)

// Material is the fabric option offered for custom garments.
type Material string

const (
	MaterialPolyester Material = "polyester"
	MaterialCotton    Material = "cotton"
)

var validMaterials = []Material{
	MaterialPolyester,
	MaterialCotton,
}

// String implements fmt.Stringer.
func (m Material) String() string {
	return string(m)
}

// IsValid reports whether the value is a known Material. The empty value
// (not chosen yet) is valid.
func (m Material) IsValid() bool {
	if m == "" {
		return true
	}
	for _, candidate := range validMaterials {
		if candidate == m {
			return true
		}
	}
	return false
}

// ParseMaterial converts raw input into a Material, ignoring case.
func ParseMaterial(value string) (Material, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", nil
	}
	for _, candidate := range validMaterials {
		if strings.EqualFold(string(candidate), value) {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid material %q", value)
}

// PrintLocation is where a custom garment gets printed.
type PrintLocation string

const (
	PrintLocationFront PrintLocation = "front"
	PrintLocationBoth  PrintLocation = "both"
)

var validPrintLocations = []PrintLocation{
	PrintLocationFront,
	PrintLocationBoth,
}

// String implements fmt.Stringer.
func (p PrintLocation) String() string {
	return string(p)
}

// IsValid reports whether the value is a known PrintLocation or empty.
func (p PrintLocation) IsValid() bool {
	if p == "" {
		return true
	}
	for _, candidate := range validPrintLocations {
		if candidate == p {
			return true
		}
	}
	return false
}

// ParsePrintLocation converts raw input into a PrintLocation, ignoring case.
func ParsePrintLocation(value string) (PrintLocation, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", nil
	}
	for _, candidate := range validPrintLocations {
		if strings.EqualFold(string(candidate), value) {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid print location %q", value)
}

// BackPrint is the back processing applied to uniforms.
type BackPrint string

const (
	BackPrintNone       BackPrint = "none"
	BackPrintNameNumber BackPrint = "nameNumber"
)

var validBackPrints = []BackPrint{
	BackPrintNone,
	BackPrintNameNumber,
}

// String implements fmt.Stringer.
func (b BackPrint) String() string {
	return string(b)
}

// IsValid reports whether the value is a known BackPrint or empty.
func (b BackPrint) IsValid() bool {
	if b == "" {
		return true
	}
	for _, candidate := range validBackPrints {
		if candidate == b {
			return true
		}
	}
	return false
}

// ParseBackPrint converts raw input into a BackPrint, ignoring case, so
// "namenumber" and "nameNumber" both map to BackPrintNameNumber.
func ParseBackPrint(value string) (BackPrint, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", nil
	}
	for _, candidate := range validBackPrints {
		if strings.EqualFold(string(candidate), value) {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid back print %q", value)
}
