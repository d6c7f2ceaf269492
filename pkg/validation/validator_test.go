package validation

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type form struct {
	Postal string `json:"postal_code" validate:"required,jp_postal_code"`
	Phone  string `json:"phone" validate:"required,jp_phone"`
}

func TestCustomTags(t *testing.T) {
	v := New()

	require.NoError(t, v.Struct(form{Postal: "150-0002", Phone: "03-1234-5678"}))
	require.NoError(t, v.Struct(form{Postal: "1500002", Phone: "09012345678"}))

	err := v.Struct(form{Postal: "150-00", Phone: "12345"})
	require.Error(t, err)

	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	fields := map[string]string{}
	for _, fe := range verrs {
		fields[fe.Field()] = fe.Tag()
	}
	assert.Equal(t, map[string]string{"postal_code": TagPostalCode, "phone": TagPhone}, fields)
}
