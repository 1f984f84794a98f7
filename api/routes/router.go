package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/lucaferrante/fornello-backend/api/controllers"
	"github.com/lucaferrante/fornello-backend/api/middleware"
	"github.com/lucaferrante/fornello-backend/internal/cart"
	"github.com/lucaferrante/fornello-backend/internal/catalog"
	"github.com/lucaferrante/fornello-backend/internal/orders"
	"github.com/lucaferrante/fornello-backend/pkg/config"
	"github.com/lucaferrante/fornello-backend/pkg/logger"
)

// Deps bundles everything the router wires into handlers.
type Deps struct {
	Config         *config.Config
	Logger         *logger.Logger
	DBPinger       controllers.Pinger
	CachePinger    controllers.Pinger
	CatalogService catalog.Service
	CartService    cart.Service
	OrdersService  orders.Service
	Metrics        prometheus.Gatherer
}

func NewRouter(deps Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(deps.Logger),
		middleware.RequestID(deps.Logger),
		middleware.Logging(deps.Logger),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(deps.Config))
		r.Get("/ready", controllers.HealthReady(deps.Config, deps.Logger, deps.DBPinger, deps.CachePinger))
	})

	if deps.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(deps.Metrics, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/menu", func(r chi.Router) {
			r.Get("/", controllers.MenuList(deps.CatalogService, deps.Logger))
			r.Get("/items/{itemId}", controllers.MenuItemDetail(deps.CatalogService, deps.Logger))
			r.Get("/presets/{presetId}", controllers.PresetDetail(deps.CatalogService, deps.Logger))
		})

		r.Post("/quote", controllers.Quote(deps.CatalogService, deps.Logger))

		r.Group(func(r chi.Router) {
			r.Use(middleware.Session(deps.Logger))

			r.Route("/cart", func(r chi.Router) {
				r.Get("/", controllers.CartFetch(deps.CartService, deps.Logger))
				r.Post("/lines", controllers.CartAddLine(deps.CartService, deps.Logger))
				r.Patch("/lines/{lineId}", controllers.CartUpdateLine(deps.CartService, deps.Logger))
				r.Delete("/lines/{lineId}", controllers.CartRemoveLine(deps.CartService, deps.Logger))
				r.Delete("/", controllers.CartClear(deps.CartService, deps.Logger))
			})

			r.Post("/checkout", controllers.Checkout(deps.OrdersService, deps.CartService, deps.Logger))
		})

		r.Route("/orders", func(r chi.Router) {
			r.Get("/track", controllers.OrderTrack(deps.OrdersService, deps.Logger))
			r.Get("/{orderId}", controllers.OrderDetail(deps.OrdersService, deps.Logger))
		})
	})

	r.Route("/api/admin/v1/orders", func(r chi.Router) {
		r.Get("/", controllers.AdminOrderList(deps.OrdersService, deps.Logger))
		r.Patch("/{orderId}/status", controllers.AdminOrderUpdateStatus(deps.OrdersService, deps.Logger))
	})

	return r
}
