package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/lamuse/classtee-backend/api/responses"
	"github.com/lamuse/classtee-backend/api/validators"
	"github.com/lamuse/classtee-backend/internal/pricing"
	"github.com/lamuse/classtee-backend/internal/selection"
	"github.com/lamuse/classtee-backend/pkg/enums"
	pkgerrors "github.com/lamuse/classtee-backend/pkg/errors"
	"github.com/lamuse/classtee-backend/pkg/logger"
)

// specificationPayload maps wire values onto the canonical enums, ignoring
// case. Unknown values pass through untouched so the pricing engine prices
// them at the base price rather than rejecting the request.
type specificationPayload struct {
	Material      string `json:"material"`
	PrintLocation string `json:"print_location"`
	BackPrint     string `json:"back_print"`
}

func (p specificationPayload) toSpecification() pricing.Specification {
	spec, err := pricing.ParseSpecification(p.Material, p.PrintLocation, p.BackPrint)
	if err == nil {
		return spec
	}
	return pricing.Specification{
		Material:      enums.Material(strings.TrimSpace(p.Material)),
		PrintLocation: enums.PrintLocation(strings.TrimSpace(p.PrintLocation)),
		BackPrint:     enums.BackPrint(strings.TrimSpace(p.BackPrint)),
	}
}

type startSelectionRequest struct {
	ProductID string `json:"product_id" validate:"required,max=64"`
}

type selectColorRequest struct {
	Color string `json:"color" validate:"required,max=32"`
}

// setQuantityRequest accepts either color+size or the "<color>-<size>" key.
type setQuantityRequest struct {
	Key      string              `json:"key,omitempty" validate:"omitempty,max=64"`
	Color    string              `json:"color,omitempty" validate:"omitempty,max=32"`
	Size     string              `json:"size,omitempty" validate:"omitempty,max=16"`
	Quantity validators.Quantity `json:"quantity" validate:"max=9999"`
}

type teacherDiscountRequest struct {
	Enabled bool `json:"enabled"`
}

func SelectionStart(svc selection.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload startSelectionRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		view, err := svc.Start(r.Context(), payload.ProductID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, view)
	}
}

func SelectionGet(svc selection.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeSelection(w, r, logg)(svc.Get(r.Context(), sessionID(r)))
	}
}

func SelectionColor(svc selection.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload selectColorRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		writeSelection(w, r, logg)(svc.SelectColor(r.Context(), sessionID(r), payload.Color))
	}
}

func SelectionQuantity(svc selection.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload setQuantityRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		key := selection.VariantKey{Color: payload.Color, Size: payload.Size}
		if payload.Key != "" {
			parsed, err := selection.ParseVariantKey(payload.Key)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
			key = parsed
		}
		if key.Color == "" || key.Size == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "color and size are required"))
			return
		}
		writeSelection(w, r, logg)(svc.SetQuantity(r.Context(), sessionID(r), key.Color, key.Size, payload.Quantity.Int()))
	}
}

func SelectionSpecification(svc selection.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload specificationPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		writeSelection(w, r, logg)(svc.SetSpecification(r.Context(), sessionID(r), payload.toSpecification()))
	}
}

func SelectionTeacherDiscount(svc selection.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload teacherDiscountRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		writeSelection(w, r, logg)(svc.SetTeacherDiscount(r.Context(), sessionID(r), payload.Enabled))
	}
}

func SelectionReset(svc selection.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeSelection(w, r, logg)(svc.Reset(r.Context(), sessionID(r)))
	}
}

// SelectionHandoff turns a ready selection into a checkout draft.
func SelectionHandoff(svc selection.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		draft, err := svc.Handoff(r.Context(), sessionID(r))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, draft)
	}
}

func sessionID(r *http.Request) string {
	return chi.URLParam(r, "sessionId")
}

func writeSelection(w http.ResponseWriter, r *http.Request, logg *logger.Logger) func(*selection.Summary, error) {
	return func(view *selection.Summary, err error) {
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, view)
	}
}
