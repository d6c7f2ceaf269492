package validators

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	pkgerrors "github.com/lamuse/classtee-backend/pkg/errors"
)

type formBody struct {
	Name       string `json:"name" validate:"required"`
	PostalCode string `json:"postal_code" validate:"required,jp_postal_code"`
}

func TestDecodeJSONBodyReportsFieldErrors(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"","postal_code":"12"}`))
	var body formBody
	err := DecodeJSONBody(req, &body)
	if !pkgerrors.HasCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	details, ok := pkgerrors.As(err).Details().(map[string]string)
	if !ok {
		t.Fatalf("expected field details, got %#v", pkgerrors.As(err).Details())
	}
	if details["name"] != "is required" || details["postal_code"] != "must be a 7 digit postal code" {
		t.Fatalf("unexpected details %v", details)
	}
}

func TestDecodeJSONBodyRejectsUnknownFields(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"a","postal_code":"1000001","extra":1}`))
	var body formBody
	if err := DecodeJSONBody(req, &body); !pkgerrors.HasCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestSanitizeString(t *testing.T) {
	if got := SanitizeString("  DISCOUNT5  ", 4); got != "DISC" {
		t.Fatalf("unexpected %q", got)
	}
}

func TestSanitizeStringKeepsRunesWhole(t *testing.T) {
	if got := SanitizeString("山田\t太郎", 3); got != "山田太" {
		t.Fatalf("unexpected %q", got)
	}
	if got := SanitizeString("\x00ok\n", 0); got != "ok" {
		t.Fatalf("unexpected %q", got)
	}
}

type quantityBody struct {
	Quantity Quantity `json:"quantity" validate:"max=9999"`
}

func TestQuantityDecodesLooseInput(t *testing.T) {
	cases := map[string]int{
		`{"quantity":3}`:       3,
		`{"quantity":2.5}`:     2,
		`{"quantity":"4"}`:     4,
		`{"quantity":"abc"}`:   0,
		`{"quantity":null}`:    0,
		`{"quantity":true}`:    0,
		`{"quantity":-2}`:      -2,
		`{"quantity":9999.99}`: 9999,
	}
	for body, want := range cases {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
		var got quantityBody
		if err := DecodeJSONBody(req, &got); err != nil {
			t.Fatalf("%s: unexpected error %v", body, err)
		}
		if got.Quantity.Int() != want {
			t.Fatalf("%s: expected %d, got %d", body, want, got.Quantity.Int())
		}
	}
}

func TestQuantityAboveMaxFailsValidation(t *testing.T) {
	for _, body := range []string{`{"quantity":10000}`, `{"quantity":1e300}`} {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
		var got quantityBody
		err := DecodeJSONBody(req, &got)
		if !pkgerrors.HasCode(err, pkgerrors.CodeValidation) {
			t.Fatalf("%s: expected validation error, got %v", body, err)
		}
		details, _ := pkgerrors.As(err).Details().(map[string]string)
		if details["quantity"] != "must be at most 9999" {
			t.Fatalf("%s: unexpected details %v", body, details)
		}
	}
}
