package validation

import (
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/lamuse/classtee-backend/pkg/types"
)

const (
	// TagPostalCode accepts NNN-NNNN and NNNNNNN postal codes.
	TagPostalCode = "jp_postal_code"
	// TagPhone accepts domestic phone numbers with optional hyphens.
	TagPhone = "jp_phone"
)

var phoneRe = regexp.MustCompile(`^0\d{9,10}$`)

// New returns a validator that reports json field names and knows the
// storefront's custom tags.
func New() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		tag := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if tag == "" || tag == "-" {
			return f.Name
		}
		return tag
	})
	_ = v.RegisterValidation(TagPostalCode, func(fl validator.FieldLevel) bool {
		return types.NormalizePostalCode(fl.Field().String()) != ""
	})
	_ = v.RegisterValidation(TagPhone, func(fl validator.FieldLevel) bool {
		return phoneRe.MatchString(strings.ReplaceAll(strings.TrimSpace(fl.Field().String()), "-", ""))
	})
	return v
}
