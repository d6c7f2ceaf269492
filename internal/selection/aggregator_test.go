package selection

import (
	"context"
	"math"
	"testing"

	"github.com/lamuse/classtee-backend/internal/catalog"
	"github.com/lamuse/classtee-backend/internal/pricing"
	"github.com/lamuse/classtee-backend/pkg/enums"
	pkgerrors "github.com/lamuse/classtee-backend/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedProduct(t *testing.T, id string) *catalog.Product {
	t.Helper()
	svc, err := catalog.NewService(catalog.Seed())
	require.NoError(t, err)
	p, err := svc.Get(context.Background(), id)
	require.NoError(t, err)
	return p
}

func assertTotalIsSum(t *testing.T, agg *Aggregator) {
	t.Helper()
	sum := 0
	for key, qty := range agg.Quantities() {
		assert.Positive(t, qty, "zero entry stored for %s", key)
		sum += qty
	}
	assert.Equal(t, sum, agg.TotalQuantity())
}

func TestAggregatorQuantityMapScenario(t *testing.T) {
	agg, err := NewAggregator(seedProduct(t, "tshirt-basic"))
	require.NoError(t, err)

	require.NoError(t, agg.SelectColor("ホワイト"))
	require.NoError(t, agg.SetQuantity("ホワイト", "M", 3))
	require.NoError(t, agg.SetQuantity("ブラック", "L", 2))
	assert.Equal(t, 5, agg.TotalQuantity())
	assertTotalIsSum(t, agg)

	require.NoError(t, agg.SetQuantity("ホワイト", "M", 0))
	assert.Equal(t, map[string]int{"ブラック-L": 2}, agg.Quantities())
	assert.Equal(t, 2, agg.TotalQuantity())
	assertTotalIsSum(t, agg)
}

func TestAggregatorNegativeQuantityClampsToZero(t *testing.T) {
	agg, err := NewAggregator(seedProduct(t, "tshirt-basic"))
	require.NoError(t, err)
	require.NoError(t, agg.SelectColor("ホワイト"))
	require.NoError(t, agg.SetQuantity("ホワイト", "S", 4))

	require.NoError(t, agg.SetQuantity("ホワイト", "S", -3))
	assert.Empty(t, agg.Quantities())
	assert.Zero(t, agg.TotalQuantity())
}

func TestAggregatorSelectColorClearsQuantities(t *testing.T) {
	agg, err := NewAggregator(seedProduct(t, "tshirt-basic"))
	require.NoError(t, err)
	require.NoError(t, agg.SelectColor("ホワイト"))
	require.NoError(t, agg.SetQuantity("ホワイト", "M", 3))

	require.NoError(t, agg.SelectColor("ネイビー"))
	assert.Empty(t, agg.Quantities())
	assert.Equal(t, enums.SelectionStateColorChosen, agg.State())

	err = agg.SelectColor("ゴールド")
	assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeValidation))
	assert.Equal(t, "ネイビー", agg.SelectedColor())
}

func TestAggregatorStateMachine(t *testing.T) {
	agg, err := NewAggregator(seedProduct(t, "tshirt-basic"))
	require.NoError(t, err)
	assert.Equal(t, enums.SelectionStateEmpty, agg.State())

	err = agg.SetQuantity("ホワイト", "M", 1)
	assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeStateConflict))

	require.NoError(t, agg.SelectColor("ホワイト"))
	assert.Equal(t, enums.SelectionStateColorChosen, agg.State())

	require.NoError(t, agg.SetQuantity("ホワイト", "M", 2))
	assert.Equal(t, enums.SelectionStateReadyForCheckout, agg.State())

	require.NoError(t, agg.SetQuantity("ホワイト", "M", 0))
	assert.Equal(t, enums.SelectionStateSizeOrQuantityChosen, agg.State())

	agg.Reset()
	assert.Equal(t, enums.SelectionStateEmpty, agg.State())
}

func TestAggregatorRejectsUnknownVariant(t *testing.T) {
	agg, err := NewAggregator(seedProduct(t, "soccer-kids"))
	require.NoError(t, err)
	require.NoError(t, agg.SelectColor("レッド"))

	err = agg.SetQuantity("レッド", "XL", 1)
	assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeValidation))
	assert.Zero(t, agg.StockOf("レッド", "XL"))
}

func TestAggregatorStockIsAdvisory(t *testing.T) {
	agg, err := NewAggregator(seedProduct(t, "tshirt-basic"))
	require.NoError(t, err)
	require.NoError(t, agg.SelectColor("ブルー"))
	require.NoError(t, agg.SetQuantity("ブルー", "XS", 10))
	require.NoError(t, agg.SetQuantity("レッド", "XXL", 1))

	assert.Equal(t, 11, agg.TotalQuantity())

	summary := agg.Summary(context.Background(), pricing.NewEngine(pricing.DefaultRules(), nil, nil))
	require.Len(t, summary.Warnings, 2)
	byKey := map[string]Warning{}
	for _, w := range summary.Warnings {
		byKey[w.Key] = w
	}
	assert.Equal(t, enums.SelectionWarningExceedsStock, byKey["ブルー-XS"].Type)
	assert.Equal(t, 3, byKey["ブルー-XS"].Stock)
	assert.Equal(t, enums.SelectionWarningOutOfStock, byKey["レッド-XXL"].Type)
	assert.Equal(t, 3, summary.Stock["XS"])
}

func TestAggregatorSummaryPricesSelection(t *testing.T) {
	agg, err := NewAggregator(seedProduct(t, "tshirt-basic"))
	require.NoError(t, err)
	require.NoError(t, agg.SelectColor("ホワイト"))
	require.NoError(t, agg.SetQuantity("ホワイト", "M", 3))
	require.NoError(t, agg.SetQuantity("ホワイト", "L", 2))
	agg.SetSpecification(pricing.Specification{PrintLocation: enums.PrintLocationBoth, BackPrint: enums.BackPrintNameNumber})
	agg.SetTeacherDiscount(true)

	assert.Equal(t, pricing.Specification{PrintLocation: enums.PrintLocationBoth}, agg.Specification())

	summary := agg.Summary(context.Background(), pricing.NewEngine(pricing.DefaultRules(), nil, nil))
	assert.Equal(t, int64(1800), summary.Price.UnitPrice)
	assert.Equal(t, int64(9000), summary.Price.Subtotal)
	assert.Equal(t, int64(1800), summary.Price.CampaignDiscount)
	assert.Equal(t, int64(7200), summary.Price.FinalPrice)
	require.Len(t, summary.Lines, 2)
	assert.Equal(t, "ホワイト-M", summary.Lines[0].Key)
	assert.Equal(t, "ホワイト-L", summary.Lines[1].Key)
}

func TestAggregatorOrderSummaryRequiresItems(t *testing.T) {
	engine := pricing.NewEngine(pricing.DefaultRules(), nil, nil)
	agg, err := NewAggregator(seedProduct(t, "tshirt-basic"))
	require.NoError(t, err)

	_, err = agg.OrderSummary(context.Background(), engine)
	assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeStateConflict))

	require.NoError(t, agg.SelectColor("ホワイト"))
	require.NoError(t, agg.SetQuantity("ホワイト", "M", 2))
	summary, err := agg.OrderSummary(context.Background(), engine)
	require.NoError(t, err)
	assert.Equal(t, 2, summary.TotalQuantity)
	assert.Equal(t, int64(1960), summary.FinalPrice)
}

func TestAggregatorCapsHugeQuantities(t *testing.T) {
	engine := pricing.NewEngine(pricing.DefaultRules(), nil, nil)
	product := seedProduct(t, "tshirt-basic")
	agg, err := NewAggregator(product)
	require.NoError(t, err)
	require.NoError(t, agg.SelectColor("ホワイト"))
	require.NoError(t, agg.SetQuantity("ホワイト", "M", math.MaxInt))
	require.NoError(t, agg.SetQuantity("ホワイト", "L", math.MaxInt))

	assert.Equal(t, 2*MaxVariantQuantity, agg.TotalQuantity())
	assert.Equal(t, enums.SelectionStateReadyForCheckout, agg.State())
	assertTotalIsSum(t, agg)

	summary, err := agg.OrderSummary(context.Background(), engine)
	require.NoError(t, err)
	assert.Equal(t, 2*MaxVariantQuantity, summary.TotalQuantity)
	assert.Positive(t, summary.FinalPrice)

	restored, err := Restore(product, Session{
		ID:            "s-big",
		ProductID:     product.ID,
		SelectedColor: "ホワイト",
		Quantities:    map[string]int{"ホワイト-M": math.MaxInt, "ホワイト-L": math.MaxInt},
	})
	require.NoError(t, err)
	assert.Equal(t, 2*MaxVariantQuantity, restored.TotalQuantity())
}

func TestSnapshotRestore(t *testing.T) {
	product := seedProduct(t, "tshirt-basic")
	agg, err := NewAggregator(product)
	require.NoError(t, err)
	require.NoError(t, agg.SelectColor("ホワイト"))
	require.NoError(t, agg.SetQuantity("ホワイト", "M", 3))
	agg.SetTeacherDiscount(true)

	restored, err := Restore(product, agg.Snapshot("s-1"))
	require.NoError(t, err)
	assert.Equal(t, agg.Quantities(), restored.Quantities())
	assert.Equal(t, agg.State(), restored.State())
	assert.True(t, restored.TeacherDiscount())

	_, err = Restore(product, Session{ID: "s-2", ProductID: product.ID, SelectedColor: "ホワイト", Quantities: map[string]int{"ホワイト-XXXL": 1}})
	assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeStateConflict))
}

func TestParseVariantKey(t *testing.T) {
	key, err := ParseVariantKey("ホワイト-M")
	require.NoError(t, err)
	assert.Equal(t, VariantKey{Color: "ホワイト", Size: "M"}, key)
	assert.Equal(t, "ホワイト-M", key.String())

	for _, raw := range []string{"", "ホワイト", "-M", "ホワイト-"} {
		_, err := ParseVariantKey(raw)
		assert.Error(t, err, raw)
	}
}
