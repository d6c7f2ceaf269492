package pricing

import (
	"fmt"

	"github.com/lamuse/classtee-backend/pkg/enums"
)

// Specification holds the shopper-chosen attributes that drive the unit
// price. Custom garments use Material and PrintLocation, uniforms use
// BackPrint. The struct is comparable and equality is the rule match.
type Specification struct {
	Material      enums.Material      `json:"material,omitempty"`
	PrintLocation enums.PrintLocation `json:"print_location,omitempty"`
	BackPrint     enums.BackPrint     `json:"back_print,omitempty"`
}

// ForGroup drops the fields that do not belong to group.
func (s Specification) ForGroup(group enums.ProductGroup) Specification {
	switch group {
	case enums.ProductGroupCustom:
		return Specification{Material: s.Material, PrintLocation: s.PrintLocation}
	case enums.ProductGroupUniform:
		return Specification{BackPrint: s.BackPrint}
	}
	return Specification{}
}

// IsEmpty reports whether nothing has been chosen.
func (s Specification) IsEmpty() bool {
	return s == Specification{}
}

// Validate checks every populated field against its enum.
func (s Specification) Validate() error {
	if !s.Material.IsValid() {
		return fmt.Errorf("invalid material %q", s.Material)
	}
	if !s.PrintLocation.IsValid() {
		return fmt.Errorf("invalid print location %q", s.PrintLocation)
	}
	if !s.BackPrint.IsValid() {
		return fmt.Errorf("invalid back print %q", s.BackPrint)
	}
	return nil
}

// ParseSpecification converts raw strings into a Specification.
func ParseSpecification(material, printLocation, backPrint string) (Specification, error) {
	m, err := enums.ParseMaterial(material)
	if err != nil {
		return Specification{}, err
	}
	p, err := enums.ParsePrintLocation(printLocation)
	if err != nil {
		return Specification{}, err
	}
	b, err := enums.ParseBackPrint(backPrint)
	if err != nil {
		return Specification{}, err
	}
	return Specification{Material: m, PrintLocation: p, BackPrint: b}, nil
}
