package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/silverempire/commerce-backend/api/controllers"
	"github.com/silverempire/commerce-backend/api/middleware"
	"github.com/silverempire/commerce-backend/internal/categories"
	"github.com/silverempire/commerce-backend/internal/orders"
	"github.com/silverempire/commerce-backend/internal/products"
	"github.com/silverempire/commerce-backend/pkg/config"
	"github.com/silverempire/commerce-backend/pkg/db"
	"github.com/silverempire/commerce-backend/pkg/logger"
	"github.com/silverempire/commerce-backend/pkg/metrics"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	measures *metrics.APIMetrics,
	promGatherer prometheus.Gatherer,
	categoryService categories.Service,
	productService products.Service,
	orderService orders.Service,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(measures),
		middleware.CORS(cfg.CORS.AllowedOrigins),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, dbP, logg))
	})

	if promGatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(promGatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/api/public", func(r chi.Router) {
		r.Get("/ping", controllers.PublicPing())
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/categories", func(r chi.Router) {
			r.Get("/", controllers.ListCategories(categoryService, logg))
			r.Post("/", controllers.CreateCategory(categoryService, logg))
			r.Get("/tree", controllers.GetCategoryTree(categoryService, logg))
			r.Get("/roots", controllers.GetRootCategories(categoryService, logg))
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", controllers.GetCategory(categoryService, logg))
				r.Patch("/", controllers.UpdateCategory(categoryService, logg))
				r.Delete("/", controllers.DeactivateCategory(categoryService, logg))
				r.Get("/children", controllers.GetCategoryChildren(categoryService, logg))
				r.Get("/breadcrumb", controllers.GetCategoryBreadcrumb(categoryService, logg))
			})
		})

		r.Route("/products", func(r chi.Router) {
			r.Get("/", controllers.ListProducts(productService, logg))
			r.Get("/featured", controllers.ListFeaturedProducts(productService, logg))
			r.Get("/variations/{id}", controllers.GetProductVariation(productService, logg))
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", controllers.GetProduct(productService, logg))
				r.Delete("/", controllers.DeleteProduct(productService, logg))
				r.Post("/restore", controllers.RestoreProduct(productService, logg))
				r.Get("/variations", controllers.ListProductVariations(productService, logg))
				r.Get("/price", controllers.GetProductPrice(productService, logg))
			})
		})

		r.Route("/orders", func(r chi.Router) {
			r.Get("/", controllers.ListOrders(orderService, logg))
			r.Post("/", controllers.CreateOrder(orderService, logg))
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", controllers.GetOrder(orderService, logg))
				r.Patch("/status", controllers.UpdateOrderStatus(orderService, logg))
				r.Delete("/", controllers.DeleteOrder(orderService, logg))
			})
		})
	})

	return r
}
