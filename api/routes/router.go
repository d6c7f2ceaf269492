package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/lamuse/classtee-backend/api/controllers"
	"github.com/lamuse/classtee-backend/api/middleware"
	"github.com/lamuse/classtee-backend/internal/address"
	"github.com/lamuse/classtee-backend/internal/catalog"
	"github.com/lamuse/classtee-backend/internal/checkout"
	"github.com/lamuse/classtee-backend/internal/pricing"
	"github.com/lamuse/classtee-backend/internal/selection"
	"github.com/lamuse/classtee-backend/pkg/config"
	"github.com/lamuse/classtee-backend/pkg/logger"
	"github.com/lamuse/classtee-backend/pkg/redis"
)

// Services is everything the HTTP surface calls into.
type Services struct {
	Catalog   catalog.Service
	Pricing   *pricing.Engine
	Selection selection.Service
	Checkout  checkout.Service
	Address   address.Service

	Idempotency redis.IdempotencyStore
	// Readiness is pinged by /health/ready, keyed by dependency name.
	Readiness map[string]redis.Pinger
	// Metrics serves /metrics when set.
	Metrics http.Handler
}

func NewRouter(cfg *config.Config, logg *logger.Logger, svc Services) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(cfg.CORS.AllowedOrigins),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, svc.Readiness, logg))
	})
	if svc.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", svc.Metrics)
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/products", func(r chi.Router) {
			r.Get("/", controllers.ProductList(svc.Catalog, logg))
			r.Get("/{productId}", controllers.ProductDetail(svc.Catalog, svc.Pricing, logg))
			r.Get("/{productId}/stock", controllers.ProductStock(svc.Catalog, logg))
			r.Post("/{productId}/price", controllers.ProductPrice(svc.Catalog, svc.Pricing, logg))
		})
		r.Post("/estimates", controllers.Estimate(cfg.Catalog.EstimateBasePrice, logg))

		r.Route("/selections", func(r chi.Router) {
			r.Post("/", controllers.SelectionStart(svc.Selection, logg))
			r.Route("/{sessionId}", func(r chi.Router) {
				r.Get("/", controllers.SelectionGet(svc.Selection, logg))
				r.Put("/color", controllers.SelectionColor(svc.Selection, logg))
				r.Put("/quantities", controllers.SelectionQuantity(svc.Selection, logg))
				r.Put("/specification", controllers.SelectionSpecification(svc.Selection, logg))
				r.Put("/teacher-discount", controllers.SelectionTeacherDiscount(svc.Selection, logg))
				r.Post("/reset", controllers.SelectionReset(svc.Selection, logg))
				r.Post("/handoff", controllers.SelectionHandoff(svc.Selection, logg))
			})
		})

		r.Route("/checkout/{orderId}", func(r chi.Router) {
			r.Get("/", controllers.CheckoutGet(svc.Checkout, logg))
			r.Put("/customer", controllers.CheckoutCustomer(svc.Checkout, logg))
			r.Post("/coupon", controllers.CheckoutCoupon(svc.Checkout, logg))
			r.Put("/payment-method", controllers.CheckoutPaymentMethod(svc.Checkout, logg))
			r.With(middleware.Idempotency(svc.Idempotency, middleware.ConfirmIdempotencyTTL, logg)).Post("/confirm", controllers.CheckoutConfirm(svc.Checkout, logg))
		})

		r.Get("/address", controllers.AddressLookup(svc.Address, logg))
	})

	return r
}
