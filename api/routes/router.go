package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/gujjushop/backend/api/controllers"
	"github.com/gujjushop/backend/api/middleware"
	"github.com/gujjushop/backend/api/responses"
	"github.com/gujjushop/backend/internal/cart"
	"github.com/gujjushop/backend/internal/catalog"
	"github.com/gujjushop/backend/internal/identity"
	"github.com/gujjushop/backend/internal/orders"
	"github.com/gujjushop/backend/pkg/auth/session"
	"github.com/gujjushop/backend/pkg/config"
	"github.com/gujjushop/backend/pkg/enums"
	pkgerrors "github.com/gujjushop/backend/pkg/errors"
	"github.com/gujjushop/backend/pkg/logger"
	"github.com/gujjushop/backend/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Dependencies collects everything the router wires together.
type Dependencies struct {
	Config      *config.Config
	Logger      *logger.Logger
	Sessions    session.AccessSessionChecker
	Identity    identity.Service
	Users       *identity.Repository
	Catalog     catalog.Service
	Carts       cart.Service
	Orders      orders.Service
	Registry    *prometheus.Registry
	HTTPMetrics *metrics.HTTPMetrics
}

// New assembles the full HTTP surface: public auth and catalog reads,
// role-scoped customer, merchant, rider and admin subtrees, plus health and
// metrics endpoints.
func New(deps Dependencies) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(middleware.Recoverer(logg))
	r.Use(middleware.RequestID(logg))
	r.Use(middleware.CORS())
	r.Use(middleware.Logging(logg))
	if deps.HTTPMetrics != nil {
		r.Use(middleware.Metrics(deps.HTTPMetrics))
	}

	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		responses.WriteError(req.Context(), logg, w,
			pkgerrors.New(pkgerrors.CodeNotFound, "route not found"))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, req *http.Request) {
		responses.WriteError(req.Context(), logg, w,
			pkgerrors.New(pkgerrors.CodeValidation, "method not allowed"))
	})

	r.Get("/health/live", controllers.Live())
	r.Get("/health/ready", controllers.Ready())
	if deps.Registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/auth/login", controllers.Login(deps.Identity, logg))

		// Catalog reads are public; the storefront renders before login.
		r.Get("/shops", controllers.ListShops(deps.Catalog, logg))
		r.Get("/shops/{shopID}", controllers.GetShop(deps.Catalog, logg))
		r.Get("/products", controllers.ListProducts(deps.Catalog, logg))
		r.Get("/products/{productID}", controllers.GetProduct(deps.Catalog, logg))

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWT, deps.Sessions, logg))

			r.Post("/auth/logout", controllers.Logout(deps.Identity, logg))
			r.Get("/auth/me", controllers.Me(deps.Identity, logg))

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireRole(logg, enums.RoleCustomer))

				r.Get("/cart", controllers.GetCart(deps.Carts, logg))
				r.Post("/cart/items", controllers.AddCartItem(deps.Carts, deps.Catalog, logg))
				r.Delete("/cart/items/{productID}", controllers.RemoveCartItem(deps.Carts, logg))
				r.Post("/checkout", controllers.Checkout(deps.Orders, deps.Identity, cfg.Delivery, logg))
				r.Get("/orders", controllers.ListMyOrders(deps.Orders, logg))
			})

			r.Route("/merchant", func(r chi.Router) {
				r.Use(middleware.RequireRole(logg, enums.RoleMerchant))

				r.Post("/products", controllers.AddProduct(deps.Catalog, logg))
				r.Patch("/shop/open", controllers.SetShopOpen(deps.Catalog, logg))
				r.Get("/orders", controllers.ListShopOrders(deps.Orders, logg))
				r.Post("/orders/{orderID}/status", controllers.UpdateShopOrderStatus(deps.Orders, logg))
			})

			r.Route("/rider", func(r chi.Router) {
				r.Use(middleware.RequireRole(logg, enums.RoleDeliveryPartner))

				r.Get("/deliveries", controllers.ListAvailableDeliveries(deps.Orders, logg))
				r.Get("/deliveries/mine", controllers.ListMyDeliveries(deps.Orders, logg))
				r.Post("/deliveries/{orderID}/claim", controllers.ClaimDelivery(deps.Orders, logg))
				r.Post("/deliveries/{orderID}/status", controllers.UpdateDeliveryStatus(deps.Orders, logg))
			})
		})
	})

	r.Route("/api/admin/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, deps.Sessions, logg))
		r.Use(middleware.RequireRole(logg, enums.RoleAdmin))

		r.Get("/orders", controllers.ListAllOrders(deps.Orders, logg))
		r.Get("/users", controllers.ListUsers(deps.Users, logg))
	})

	return r
}
