package enums

import "testing"

func TestProductCategoryGroup(t *testing.T) {
	tests := []struct {
		category ProductCategory
		group    ProductGroup
	}{
		{ProductCategoryTShirt, ProductGroupCustom},
		{ProductCategoryPolo, ProductGroupCustom},
		{ProductCategorySoccer, ProductGroupUniform},
		{ProductCategoryBasket, ProductGroupUniform},
		{ProductCategoryBaseball, ProductGroupUniform},
		{ProductCategoryVolleyball, ProductGroupUniform},
		{ProductCategory("hoodie"), ""},
	}
	for _, tt := range tests {
		if got := tt.category.Group(); got != tt.group {
			t.Fatalf("%s: expected group %q got %q", tt.category, tt.group, got)
		}
	}
}

func TestParseProductCategory(t *testing.T) {
	if c, err := ParseProductCategory("polo"); err != nil || c != ProductCategoryPolo {
		t.Fatalf("expected polo, got %q err=%v", c, err)
	}
	if _, err := ParseProductCategory("Polo"); err == nil {
		t.Fatal("category parsing is case sensitive")
	}
}

func TestSpecificationEnumsAcceptEmpty(t *testing.T) {
	if !Material("").IsValid() || !PrintLocation("").IsValid() || !BackPrint("").IsValid() {
		t.Fatal("empty specification values mean not chosen and must be valid")
	}
	if Material("silk").IsValid() {
		t.Fatal("silk is not an offered material")
	}
	if _, err := ParseBackPrint("name"); err == nil {
		t.Fatal("expected invalid back print to fail")
	}
	if bp, err := ParseBackPrint("nameNumber"); err != nil || bp != BackPrintNameNumber {
		t.Fatalf("expected nameNumber, got %q err=%v", bp, err)
	}
	if pl, err := ParsePrintLocation(""); err != nil || pl != "" {
		t.Fatalf("expected empty print location, got %q err=%v", pl, err)
	}
}

func TestSpecificationEnumsIgnoreCase(t *testing.T) {
	for _, raw := range []string{"nameNumber", "namenumber", "NAMENUMBER", " nameNumber "} {
		if bp, err := ParseBackPrint(raw); err != nil || bp != BackPrintNameNumber {
			t.Fatalf("ParseBackPrint(%q) = %q, %v", raw, bp, err)
		}
	}
	if m, err := ParseMaterial("Cotton"); err != nil || m != MaterialCotton {
		t.Fatalf("expected cotton, got %q err=%v", m, err)
	}
	if pl, err := ParsePrintLocation("BOTH"); err != nil || pl != PrintLocationBoth {
		t.Fatalf("expected both, got %q err=%v", pl, err)
	}
}

func TestParsePaymentMethod(t *testing.T) {
	if _, err := ParsePaymentMethod("credit"); err == nil {
		t.Fatal("credit card payments are not offered")
	}
	if m, err := ParsePaymentMethod("bank"); err != nil || m != PaymentMethodBank {
		t.Fatalf("expected bank, got %q err=%v", m, err)
	}
}
