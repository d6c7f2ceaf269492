package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/lamuse/classtee-backend/api/responses"
	"github.com/lamuse/classtee-backend/api/validators"
	"github.com/lamuse/classtee-backend/internal/checkout"
	"github.com/lamuse/classtee-backend/pkg/enums"
	pkgerrors "github.com/lamuse/classtee-backend/pkg/errors"
	"github.com/lamuse/classtee-backend/pkg/logger"
)

const maxCouponCodeLen = 32

type couponRequest struct {
	Code string `json:"code" validate:"required"`
}

type paymentMethodRequest struct {
	Method string `json:"method" validate:"required,oneof=convenience bank"`
}

func CheckoutGet(svc checkout.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeDraft(w, r, logg)(svc.Get(r.Context(), orderID(r)))
	}
}

// CheckoutCustomer stores the order form.
func CheckoutCustomer(svc checkout.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload checkout.Customer
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		writeDraft(w, r, logg)(svc.SubmitOrderForm(r.Context(), orderID(r), payload))
	}
}

func CheckoutCoupon(svc checkout.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload couponRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		code := validators.SanitizeString(payload.Code, maxCouponCodeLen)
		writeDraft(w, r, logg)(svc.ApplyCoupon(r.Context(), orderID(r), code))
	}
}

func CheckoutPaymentMethod(svc checkout.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload paymentMethodRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		method, err := enums.ParsePaymentMethod(payload.Method)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "unsupported payment method"))
			return
		}
		writeDraft(w, r, logg)(svc.ChoosePaymentMethod(r.Context(), orderID(r), method))
	}
}

// CheckoutConfirm runs the simulated payment. The request blocks until the
// payment settles or the client goes away.
func CheckoutConfirm(svc checkout.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		receipt, err := svc.Confirm(r.Context(), orderID(r))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, receipt)
	}
}

func orderID(r *http.Request) string {
	return chi.URLParam(r, "orderId")
}

func writeDraft(w http.ResponseWriter, r *http.Request, logg *logger.Logger) func(*checkout.DraftView, error) {
	return func(view *checkout.DraftView, err error) {
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, view)
	}
}
