// Package http is the storefront's presentation surface: chi handlers over
// the cart engine, checkout flow, catalog and identity clients.
package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/haysnairpa/urbanwear/internal/cart"
	"github.com/haysnairpa/urbanwear/internal/identity"
)

// Deps carries everything the router's handlers consume. Explicit injection
// only; no package-level state.
type Deps struct {
	Catalog  CatalogClient
	Cart     *cart.Engine
	Flow     CheckoutFlow
	Session  SessionView
	Identity identity.Client
}

func NewRouter(deps Deps, timeout time.Duration) chi.Router {
	products := NewProductHandler(deps.Catalog, timeout)
	carts := NewCartHandler(deps.Cart, deps.Catalog, timeout)
	checkouts := NewCheckoutHandler(deps.Flow, deps.Session, timeout)
	orders := NewOrdersHandler(deps.Session)
	auth := NewAuthHandler(deps.Identity, timeout)

	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(RequestIDMiddleware)
	r.Use(middleware.Timeout(timeout))
	r.Use(middleware.Compress(5))
	r.Use(func(next http.Handler) http.Handler {
		return otelhttp.NewHandler(next, "storefront")
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/products", func(r chi.Router) {
			r.Get("/", products.List)
			r.Get("/categories", products.Categories)
			r.Get("/{product_id}", products.Get)
		})

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", carts.Get)
			r.Get("/count", carts.Count)
			r.Delete("/", carts.Clear)
			r.Post("/items", carts.AddItem)
			r.Put("/items/{product_id}", carts.UpdateQuantity)
			r.Delete("/items/{product_id}", carts.RemoveItem)
		})

		r.Post("/checkout", checkouts.Submit)
		r.Get("/orders", orders.List)

		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", auth.Register)
			r.Post("/login", auth.Login)
			r.Post("/logout", auth.Logout)
		})
	})

	return r
}
