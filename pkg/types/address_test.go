package types

import "testing"

func TestNormalizePostalCode(t *testing.T) {
	tests := map[string]string{
		"150-0002":  "1500002",
		"1500002":   "1500002",
		" 150-0002": "1500002",
		"１５０－０００２": "1500002",
		"150-000":   "",
		"abc-defg":  "",
		"":          "",
	}
	for in, want := range tests {
		if got := NormalizePostalCode(in); got != want {
			t.Fatalf("NormalizePostalCode(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestAddressFormatted(t *testing.T) {
	addr := Address{PostalCode: "1500002", Prefecture: "東京都", City: "渋谷区", Town: "渋谷"}
	if got := addr.Formatted(); got != "東京都渋谷区渋谷" {
		t.Fatalf("unexpected formatted address %q", got)
	}
}
