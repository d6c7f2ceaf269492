package controllers

import (
	"net/http"

	"github.com/lamuse/classtee-backend/api/responses"
	"github.com/lamuse/classtee-backend/api/validators"
	"github.com/lamuse/classtee-backend/internal/pricing"
	"github.com/lamuse/classtee-backend/pkg/logger"
)

type estimateRequest struct {
	Template string              `json:"template" validate:"required,oneof=tshirt polo soccer basket"`
	Quantity validators.Quantity `json:"quantity"`
}

type estimateResponse struct {
	Template  string `json:"template"`
	Quantity  int    `json:"quantity"`
	UnitPrice int64  `json:"unit_price"`
	Total     int64  `json:"total"`
}

// Estimate backs the design simulator's running total.
func Estimate(templatePrice int64, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload estimateRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		quantity := payload.Quantity.Int()
		responses.WriteSuccess(w, estimateResponse{
			Template:  payload.Template,
			Quantity:  max(quantity, 0),
			UnitPrice: templatePrice,
			Total:     pricing.Estimate(templatePrice, quantity),
		})
	}
}
