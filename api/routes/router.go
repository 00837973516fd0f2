package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/retailcore/pos-register-backend/api/controllers"
	"github.com/retailcore/pos-register-backend/api/middleware"
	cartsvc "github.com/retailcore/pos-register-backend/internal/cart"
	catalogsvc "github.com/retailcore/pos-register-backend/internal/catalog"
	checkoutsvc "github.com/retailcore/pos-register-backend/internal/checkout"
	customersvc "github.com/retailcore/pos-register-backend/internal/customers"
	ledgersvc "github.com/retailcore/pos-register-backend/internal/ledger"
	"github.com/retailcore/pos-register-backend/pkg/kvstore"
	"github.com/retailcore/pos-register-backend/pkg/logger"
)

func NewRouter(
	logg *logger.Logger,
	store kvstore.Store,
	catalogService catalogsvc.Service,
	cartService cartsvc.Service,
	checkoutService checkoutsvc.Service,
	ledgerService ledgersvc.Service,
	customerService customersvc.Service,
) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)

	r.Get("/healthz", controllers.Healthz(store))
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/catalog", func(r chi.Router) {
			r.Get("/", controllers.CatalogList(catalogService, logg))
			r.Put("/", controllers.CatalogUpsert(catalogService, logg))
			r.Get("/code/{code}", controllers.CatalogFetchByCode(catalogService, logg))
			r.Get("/{itemId}", controllers.CatalogFetch(catalogService, logg))
		})

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", controllers.CartFetch(cartService, logg))
			r.Delete("/", controllers.CartClear(cartService, logg))
			r.Post("/items", controllers.CartAddItem(cartService, logg))
			r.Put("/items/{itemId}", controllers.CartSetQuantity(cartService, logg))
			r.Delete("/items/{itemId}", controllers.CartRemoveItem(cartService, logg))
			r.Put("/customer", controllers.CartSelectCustomer(cartService, logg))
		})

		r.Post("/checkout", controllers.CheckoutCommit(checkoutService, logg))

		r.Route("/sales", func(r chi.Router) {
			r.Get("/", controllers.SalesList(ledgerService, logg))
			r.Get("/{transactionId}", controllers.SaleFetch(ledgerService, logg))
			r.Post("/{transactionId}/refund", controllers.SaleRefund(checkoutService, logg))
		})

		r.Route("/customers", func(r chi.Router) {
			r.Get("/", controllers.CustomersList(customerService, logg))
			r.Post("/", controllers.CustomerCreate(customerService, logg))
			r.Get("/{customerId}", controllers.CustomerFetch(customerService, logg))
		})
	})

	return r
}
