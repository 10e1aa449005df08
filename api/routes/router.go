package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hadyba/hadyshop/api/controllers"
	"github.com/hadyba/hadyshop/api/middleware"
	cartsvc "github.com/hadyba/hadyshop/internal/cart"
	categorysvc "github.com/hadyba/hadyshop/internal/categories"
	ordersvc "github.com/hadyba/hadyshop/internal/orders"
	productsvc "github.com/hadyba/hadyshop/internal/products"
	"github.com/hadyba/hadyshop/pkg/config"
	"github.com/hadyba/hadyshop/pkg/enums"
	"github.com/hadyba/hadyshop/pkg/logger"
	"github.com/hadyba/hadyshop/pkg/metrics"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	httpMetrics *metrics.HTTPMetrics,
	dbPinger controllers.Pinger,
	redisPinger controllers.Pinger,
	cartService cartsvc.Service,
	orderService ordersvc.Service,
	productService productsvc.Service,
	categoryService categorysvc.Service,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
	)
	if httpMetrics != nil {
		r.Use(httpMetrics.Middleware)
		r.Method(http.MethodGet, "/metrics", httpMetrics.Handler())
	}

	authed := middleware.Auth(cfg.JWT, logg)
	adminOnly := middleware.RequireRole(string(enums.UserRoleAdmin), logg)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, map[string]controllers.Pinger{
			"postgres": dbPinger,
			"redis":    redisPinger,
		}))
	})

	r.Route("/api/products", func(r chi.Router) {
		r.Get("/", controllers.ProductList(productService, logg))

		r.Group(func(r chi.Router) {
			r.Use(authed, adminOnly)
			r.Get("/deleted", controllers.AdminProductListDeleted(productService, logg))
			r.Post("/", controllers.AdminProductCreate(productService, logg))
			r.Put("/{id}", controllers.AdminProductUpdate(productService, logg))
			r.Delete("/{id}", controllers.AdminProductDelete(productService, logg))
			r.Post("/{id}/restore", controllers.AdminProductRestore(productService, logg))
		})

		r.Get("/{id}", controllers.ProductGet(productService, logg))
	})

	r.Route("/api/categories", func(r chi.Router) {
		r.Get("/", controllers.CategoryList(categoryService, logg))

		r.Group(func(r chi.Router) {
			r.Use(authed, adminOnly)
			r.Get("/deleted", controllers.AdminCategoryListDeleted(categoryService, logg))
			r.Post("/", controllers.AdminCategoryCreate(categoryService, logg))
			r.Put("/{id}", controllers.AdminCategoryUpdate(categoryService, logg))
			r.Delete("/{id}", controllers.AdminCategoryDelete(categoryService, logg))
			r.Post("/{id}/restore", controllers.AdminCategoryRestore(categoryService, logg))
		})

		r.Get("/{id}", controllers.CategoryGet(categoryService, logg))
	})

	r.Route("/api/cart", func(r chi.Router) {
		r.Use(authed)
		r.Get("/", controllers.CartGet(cartService, logg))
		r.Get("/count", controllers.CartCount(cartService, logg))
		r.Post("/add", controllers.CartAddItem(cartService, logg))
		r.Put("/update", controllers.CartUpdateQuantity(cartService, logg))
		r.Delete("/remove/{itemId}", controllers.CartRemoveItem(cartService, logg))
	})

	r.Route("/api/orders", func(r chi.Router) {
		r.Use(authed)
		r.Get("/user-orders", controllers.OrderListMine(orderService, logg))
		r.Post("/submit-order", controllers.OrderSubmit(orderService, logg))
		r.Post("/{id}/cancel", controllers.OrderCancel(orderService, logg))

		r.Group(func(r chi.Router) {
			r.Use(adminOnly)
			r.Get("/", controllers.AdminOrderList(orderService, logg))
			r.Get("/{id}", controllers.AdminOrderGet(orderService, logg))
			r.Put("/{id}/status", controllers.AdminOrderUpdateStatus(orderService, logg))
		})
	})

	return r
}
