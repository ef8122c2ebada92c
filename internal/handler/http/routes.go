package http

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)
	router.Use(h.metrics.InstrumentHandler)
	if h.requestTimeout > 0 {
		router.Use(middleware.Timeout(h.requestTimeout))
	}

	router.Route("/api", func(r chi.Router) {
		r.Get("/version", h.getServerVersion)

		r.Group(func(r chi.Router) {
			r.Use(h.withSession)

			// routes without identity
			r.Post("/auth/login", h.login)
			r.Post("/auth/logout", h.logout)
			r.Get("/auth/status", h.authStatus)

			r.Get("/products", h.listProducts)
			r.Get("/products/{productID}", h.getProduct)
			r.Get("/categories", h.listCategories)
			r.Get("/categories/{categoryID}/tree", h.categoryTree)
			r.Get("/cart", h.viewCart)

			// routes with identity
			r.Group(func(r chi.Router) {
				r.Use(h.requireIdentity)

				r.Post("/cart/items", h.addToCart)
				r.Delete("/cart/items/{productID}", h.removeFromCart)
				r.Get("/checkout/addresses", h.mainAddress)
				r.Post("/checkout/addresses", h.confirmAddresses)
				r.Post("/checkout", h.checkout)
			})
		})
	})

	if h.metrics != nil {
		router.Method(http.MethodGet, "/metrics", h.metrics.Handler())
	}
	if h.imagesDir != "" && h.imagesURL != "" {
		prefix := strings.TrimSuffix(h.imagesURL, "/")
		router.Handle(prefix+"/*", http.StripPrefix(prefix, http.FileServer(http.Dir(h.imagesDir))))
	}

	router.NotFound(notFound)
	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
