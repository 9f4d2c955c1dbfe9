package http

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/haysnairpa/urbanwear/internal/domain"
)

// CatalogClient is the slice of the catalog client the handlers need.
type CatalogClient interface {
	Products(ctx context.Context) ([]domain.Product, error)
	Product(ctx context.Context, id int64) (*domain.Product, error)
	ProductsByCategory(ctx context.Context, category string) ([]domain.Product, error)
	Categories(ctx context.Context) ([]string, error)
}

type ProductHandler struct {
	catalog CatalogClient
	timeout time.Duration
}

func NewProductHandler(catalog CatalogClient, timeout time.Duration) *ProductHandler {
	return &ProductHandler{
		catalog: catalog,
		timeout: timeout,
	}
}

type ProductsResponse struct {
	Products []domain.Product `json:"products"`
}

// List serves GET /products, optionally filtered with ?category=.
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var (
		products []domain.Product
		err      error
	)
	category := r.URL.Query().Get("category")
	if category == "" || category == "all" {
		products, err = h.catalog.Products(ctx)
	} else {
		products, err = h.catalog.ProductsByCategory(ctx, category)
	}
	if err != nil {
		respondError(w, http.StatusBadGateway, "catalog_unavailable", "failed to load products")
		return
	}

	if products == nil {
		products = []domain.Product{}
	}
	respondJSON(w, http.StatusOK, &ProductsResponse{Products: products})
}

// Get serves GET /products/{product_id}.
func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	productIDStr := chi.URLParam(r, "product_id")
	productID, err := strconv.ParseInt(productIDStr, 10, 64)
	if err != nil || productID <= 0 {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "product_id must be a positive integer")
		return
	}

	product, err := h.catalog.Product(ctx, productID)
	if err != nil {
		respondError(w, http.StatusBadGateway, "catalog_unavailable", "failed to load product")
		return
	}

	respondJSON(w, http.StatusOK, product)
}

// Categories serves GET /products/categories.
func (h *ProductHandler) Categories(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	categories, err := h.catalog.Categories(ctx)
	if err != nil {
		respondError(w, http.StatusBadGateway, "catalog_unavailable", "failed to load categories")
		return
	}

	if categories == nil {
		categories = []string{}
	}
	respondJSON(w, http.StatusOK, categories)
}
