package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"vintagecoffee/internal/auth"
	"vintagecoffee/internal/metrics"
	"vintagecoffee/internal/service"
)

type Handler struct {
	router *chi.Mux
	log    *zap.Logger

	authn    *auth.Authenticator
	catalog  *service.CatalogService
	orders   *service.OrderService
	invoices *service.InvoiceService
	payments *service.PaymentService
	reviews  *service.ReviewService
}

func New(
	log *zap.Logger,
	authn *auth.Authenticator,
	catalog *service.CatalogService,
	orders *service.OrderService,
	invoices *service.InvoiceService,
	payments *service.PaymentService,
	reviews *service.ReviewService,
) *Handler {
	router := chi.NewRouter()

	// Middleware
	router.Use(middleware.RequestID)
	router.Use(middleware.Recoverer)
	router.Use(metrics.Middleware)

	h := &Handler{
		router:   router,
		log:      log,
		authn:    authn,
		catalog:  catalog,
		orders:   orders,
		invoices: invoices,
		payments: payments,
		reviews:  reviews,
	}

	router.Use(h.logRequests)
	router.Use(h.withActor)

	h.registerRoutes()
	return h
}

func (h *Handler) registerRoutes() {
	h.router.Get("/health", h.HealthCheck)
	h.router.Method(http.MethodGet, "/metrics", promhttp.Handler())

	h.router.Route("/api", func(r chi.Router) {
		r.Post("/auth/signup", h.Signup)
		r.Post("/auth/login", h.Login)

		r.Get("/menu", h.GetMenu)
		r.Put("/menu/{id}", h.SetAvailability)

		r.Post("/orders", h.CreateOrder)
		r.Get("/orders", h.ListOrders)
		r.Get("/orders/{id}", h.GetOrder)
		r.Put("/orders/{id}", h.SetOrderStatus)

		r.Post("/invoices", h.GenerateInvoice)
		r.Get("/invoices", h.ListInvoices)
		r.Get("/invoices/{id}", h.GetInvoice)

		r.Post("/payments", h.ProcessPayment)

		r.Get("/reviews", h.ListReviews)
		r.Post("/reviews", h.CreateReview)
	})
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.router.ServeHTTP(w, r)
}

func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}
