package catalog

import "github.com/lamuse/classtee-backend/pkg/enums"

var (
	defaultColors = []string{"ホワイト", "ブラック", "ネイビー", "レッド", "ブルー"}
	defaultSizes  = []string{"XS", "S", "M", "L", "XL", "XXL"}
	kidsSizes     = []string{"XS", "S", "M"}
)

// stockOverrides is a hand-tuned stock table; any other cell holds defaultStock.
var stockOverrides = []struct {
	productID, color, size string
	stock                  int
}{
	{"tshirt-basic", "ホワイト", "M", 120},
	{"tshirt-basic", "ブラック", "M", 80},
	{"tshirt-basic", "レッド", "XXL", 0},
	{"tshirt-basic", "ブルー", "XS", 3},
	{"tshirt-basic", "ネイビー", "XXL", 5},
	{"tshirt-dry", "ホワイト", "XS", 0},
	{"tshirt-dry", "レッド", "XL", 8},
	{"polo-basic", "ブルー", "XXL", 0},
	{"soccer-pro", "ネイビー", "L", 12},
	{"soccer-pro", "レッド", "XS", 0},
	{"basket-mesh", "ホワイト", "XXL", 2},
}

const defaultStock = 50

type seedProduct struct {
	id, name, description, image string
	category                     enums.ProductCategory
	price                        int64
	sizes                        []string
}

var seedProducts = []seedProduct{
	{id: "tshirt-basic", name: "Tシャツ（ベーシック）", description: "クラスTの定番", image: "/assets/tshirt.svg", category: enums.ProductCategoryTShirt, price: 980},
	{id: "tshirt-dry", name: "Tシャツ（ドライ）", description: "速乾・軽量で快適", image: "/assets/tshirt.svg", category: enums.ProductCategoryTShirt, price: 1180},
	{id: "tshirt-long", name: "Tシャツ（ロング）", description: "肌寒い時期に最適", image: "/assets/tshirt.svg", category: enums.ProductCategoryTShirt, price: 1280},
	{id: "polo-basic", name: "ポロシャツ（ベーシック）", description: "きれいめで涼しい", image: "/assets/polo.svg", category: enums.ProductCategoryPolo, price: 1480},
	{id: "polo-pocket", name: "ポロシャツ（ポケット付）", description: "ちょっと便利な胸ポケット", image: "/assets/polo.svg", category: enums.ProductCategoryPolo, price: 1580},
	{id: "soccer-pro", name: "サッカーユニフォーム（PRO）", description: "試合向け高機能モデル", image: "/assets/soccer.svg", category: enums.ProductCategorySoccer, price: 1980},
	{id: "soccer-kids", name: "サッカーユニフォーム（KIDS）", description: "ジュニア向けサイズ", image: "/assets/soccer.svg", category: enums.ProductCategorySoccer, price: 1680, sizes: kidsSizes},
	{id: "basket-pro", name: "バスケユニフォーム（PRO）", description: "動きやすい軽量モデル", image: "/assets/basket.svg", category: enums.ProductCategoryBasket, price: 1980},
	{id: "basket-mesh", name: "バスケユニフォーム（メッシュ）", description: "通気性に優れた生地", image: "/assets/basket.svg", category: enums.ProductCategoryBasket, price: 1880},
}

// Seed returns the built-in product list in display order.
func Seed() []*Product {
	out := make([]*Product, 0, len(seedProducts))
	for _, sp := range seedProducts {
		sizes := sp.sizes
		if sizes == nil {
			sizes = defaultSizes
		}
		variants := make([]Variant, 0, len(defaultColors)*len(sizes))
		for _, color := range defaultColors {
			for _, size := range sizes {
				variants = append(variants, Variant{Color: color, Size: size, Stock: seedStockOf(sp.id, color, size)})
			}
		}
		p, err := New(Product{
			ID:          sp.id,
			Name:        sp.name,
			Description: sp.description,
			Image:       sp.image,
			Category:    sp.category,
			BasePrice:   sp.price,
			Price:       sp.price,
			Colors:      defaultColors,
			Sizes:       sizes,
			Variants:    variants,
		})
		if err != nil {
			panic(err)
		}
		out = append(out, p)
	}
	return out
}

func seedStockOf(productID, color, size string) int {
	for _, o := range stockOverrides {
		if o.productID == productID && o.color == color && o.size == size {
			return o.stock
		}
	}
	return defaultStock
}
