package enums

import "fmt"

// ProductCategory is the closed set of garment categories sold in the shop.
type ProductCategory string

const (
	ProductCategoryTShirt     ProductCategory = "tshirt"
	ProductCategoryPolo       ProductCategory = "polo"
	ProductCategorySoccer     ProductCategory = "soccer"
	ProductCategoryBasket     ProductCategory = "basket"
	ProductCategoryBaseball   ProductCategory = "baseball"
	ProductCategoryVolleyball ProductCategory = "volleyball"
)

var validProductCategories = []ProductCategory{
	ProductCategoryTShirt,
	ProductCategoryPolo,
	ProductCategorySoccer,
	ProductCategoryBasket,
	ProductCategoryBaseball,
	ProductCategoryVolleyball,
}

// String implements fmt.Stringer.
func (c ProductCategory) String() string {
	return string(c)
}

// IsValid reports whether the value is a known ProductCategory.
func (c ProductCategory) IsValid() bool {
	for _, candidate := range validProductCategories {
		if candidate == c {
			return true
		}
	}
	return false
}

// Group derives the pricing group of the category. Unknown categories have no group.
func (c ProductCategory) Group() ProductGroup {
	switch c {
	case ProductCategoryTShirt, ProductCategoryPolo:
		return ProductGroupCustom
	case ProductCategorySoccer, ProductCategoryBasket, ProductCategoryBaseball, ProductCategoryVolleyball:
		return ProductGroupUniform
	}
	return ""
}

// ParseProductCategory converts raw input into a ProductCategory.
func ParseProductCategory(value string) (ProductCategory, error) {
	for _, candidate := range validProductCategories {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid product category %q", value)
}

// ProductGroup splits the catalog into garments priced by print specification
// and jerseys priced by back processing.
type ProductGroup string

const (
	ProductGroupCustom  ProductGroup = "custom"
	ProductGroupUniform ProductGroup = "uniform"
)

// String implements fmt.Stringer.
func (g ProductGroup) String() string {
	return string(g)
}

// IsValid reports whether the value is a known ProductGroup.
func (g ProductGroup) IsValid() bool {
	return g == ProductGroupCustom || g == ProductGroupUniform
}
