package controllers

import (
	"net/http"
	"strings"

	"github.com/lamuse/classtee-backend/api/responses"
	"github.com/lamuse/classtee-backend/internal/address"
	pkgerrors "github.com/lamuse/classtee-backend/pkg/errors"
	"github.com/lamuse/classtee-backend/pkg/logger"
)

// AddressLookup fills the order form from a postal code.
func AddressLookup(svc address.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "address service unavailable"))
			return
		}

		postalCode := strings.TrimSpace(r.URL.Query().Get("postal_code"))
		if postalCode == "" {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeValidation, "postal_code is required"))
			return
		}

		addr, err := svc.Lookup(ctx, postalCode)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, addr)
	}
}
