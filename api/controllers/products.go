package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/lamuse/classtee-backend/api/responses"
	"github.com/lamuse/classtee-backend/api/validators"
	"github.com/lamuse/classtee-backend/internal/catalog"
	"github.com/lamuse/classtee-backend/internal/pricing"
	pkgerrors "github.com/lamuse/classtee-backend/pkg/errors"
	"github.com/lamuse/classtee-backend/pkg/logger"
	"github.com/lamuse/classtee-backend/pkg/pagination"
)

type productDetail struct {
	*catalog.Product
	Group        string         `json:"group"`
	PriceOptions []pricing.Rule `json:"price_options"`
}

type priceRequest struct {
	Specification   specificationPayload `json:"specification"`
	Quantity        validators.Quantity  `json:"quantity" validate:"max=99999"`
	TeacherDiscount bool                 `json:"teacher_discount"`
}

// ProductList lists the catalog, optionally filtered by ?category= and paged
// with ?limit= and ?cursor=. meta.count is the size of the filtered catalog.
func ProductList(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog unavailable"))
			return
		}
		query := r.URL.Query()
		params := pagination.Params{Cursor: query.Get("cursor")}
		if raw := strings.TrimSpace(query.Get("limit")); raw != "" {
			limit, err := strconv.Atoi(raw)
			if err != nil || limit < 1 {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "limit must be a positive integer"))
				return
			}
			params.Limit = limit
		}

		products, err := svc.List(r.Context(), query.Get("category"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		page, next, err := pagination.Page(products, params, func(p *catalog.Product) string { return p.ID })
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid cursor"))
			return
		}
		responses.WritePage(w, page, len(products), next)
	}
}

// ProductDetail returns one product with the price table for its group.
func ProductDetail(svc catalog.Service, engine *pricing.Engine, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		product, ok := loadProduct(w, r, svc, logg)
		if !ok {
			return
		}
		group := product.Group()
		responses.WriteSuccess(w, productDetail{
			Product:      product,
			Group:        group.String(),
			PriceOptions: engine.Rules().ForGroup(group),
		})
	}
}

// ProductStock answers ?color=&size= with the advisory stock count.
func ProductStock(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		product, ok := loadProduct(w, r, svc, logg)
		if !ok {
			return
		}
		color := strings.TrimSpace(r.URL.Query().Get("color"))
		size := strings.TrimSpace(r.URL.Query().Get("size"))
		responses.WriteSuccess(w, map[string]any{
			"product_id": product.ID,
			"color":      color,
			"size":       size,
			"stock":      product.StockOf(color, size),
		})
	}
}

// ProductPrice prices a specification and quantity without a session.
func ProductPrice(svc catalog.Service, engine *pricing.Engine, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		product, ok := loadProduct(w, r, svc, logg)
		if !ok {
			return
		}
		var payload priceRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		spec := payload.Specification.toSpecification()
		responses.WriteSuccess(w, engine.TotalPrice(r.Context(), product, spec, payload.Quantity.Int(), payload.TeacherDiscount))
	}
}

func loadProduct(w http.ResponseWriter, r *http.Request, svc catalog.Service, logg *logger.Logger) (*catalog.Product, bool) {
	if svc == nil {
		responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog unavailable"))
		return nil, false
	}
	product, err := svc.Get(r.Context(), chi.URLParam(r, "productId"))
	if err != nil {
		responses.WriteError(r.Context(), logg, w, err)
		return nil, false
	}
	return product, true
}
