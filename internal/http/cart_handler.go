package http

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/haysnairpa/urbanwear/internal/cart"
	"github.com/haysnairpa/urbanwear/internal/domain"
	"github.com/haysnairpa/urbanwear/internal/pricing"
)

type CartHandler struct {
	cart    *cart.Engine
	catalog CatalogClient
	timeout time.Duration
}

func NewCartHandler(cartEngine *cart.Engine, catalog CatalogClient, timeout time.Duration) *CartHandler {
	return &CartHandler{
		cart:    cartEngine,
		catalog: catalog,
		timeout: timeout,
	}
}

type AddItemRequestDTO struct {
	ProductID     int64  `json:"product_id"`
	Quantity      int    `json:"quantity"`
	SelectedSize  string `json:"selected_size,omitempty"`
	SelectedColor string `json:"selected_color,omitempty"`
}

type UpdateQuantityRequestDTO struct {
	Quantity int `json:"quantity"`
}

type CartResponseDTO struct {
	Items     []domain.CartLine `json:"items"`
	ItemCount int               `json:"item_count"`
	Quote     pricing.Quote     `json:"quote"`
}

func (h *CartHandler) snapshot() CartResponseDTO {
	lines := h.cart.Lines()
	return CartResponseDTO{
		Items:     lines,
		ItemCount: h.cart.ItemCount(),
		Quote:     pricing.QuoteLines(lines),
	}
}

// Get serves GET /cart: the line sequence plus the derived price quote.
func (h *CartHandler) Get(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.snapshot())
}

// Count serves GET /cart/count, the navbar badge value.
func (h *CartHandler) Count(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]int{"count": h.cart.ItemCount()})
}

// AddItem serves POST /cart/items. The product is fetched from the catalog
// so the cart line snapshots title, price and image at add time.
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var req AddItemRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	if req.ProductID <= 0 {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "product_id must be positive")
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}
	if req.Quantity < 0 || req.Quantity > 99 {
		respondError(w, http.StatusBadRequest, "invalid_quantity", "quantity must be between 1 and 99")
		return
	}

	product, err := h.catalog.Product(ctx, req.ProductID)
	if err != nil {
		respondError(w, http.StatusBadGateway, "catalog_unavailable", "failed to load product")
		return
	}

	var opts []cart.LineOption
	if req.SelectedSize != "" {
		opts = append(opts, cart.WithSize(req.SelectedSize))
	}
	if req.SelectedColor != "" {
		opts = append(opts, cart.WithColor(req.SelectedColor))
	}
	h.cart.Add(*product, req.Quantity, opts...)

	respondJSON(w, http.StatusCreated, h.snapshot())
}

// UpdateQuantity serves PUT /cart/items/{product_id}. A quantity of zero or
// less removes the line.
func (h *CartHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	productIDStr := chi.URLParam(r, "product_id")
	productID, err := strconv.ParseInt(productIDStr, 10, 64)
	if err != nil || productID <= 0 {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "product_id must be a positive integer")
		return
	}

	var req UpdateQuantityRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.Quantity > 99 {
		respondError(w, http.StatusBadRequest, "invalid_quantity", "quantity must be at most 99")
		return
	}

	h.cart.SetQuantity(productID, req.Quantity)
	respondJSON(w, http.StatusOK, h.snapshot())
}

// RemoveItem serves DELETE /cart/items/{product_id}.
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	productIDStr := chi.URLParam(r, "product_id")
	productID, err := strconv.ParseInt(productIDStr, 10, 64)
	if err != nil || productID <= 0 {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "product_id must be a positive integer")
		return
	}

	h.cart.Remove(productID)
	respondJSON(w, http.StatusOK, h.snapshot())
}

// Clear serves DELETE /cart.
func (h *CartHandler) Clear(w http.ResponseWriter, r *http.Request) {
	h.cart.Clear()
	respondJSON(w, http.StatusOK, h.snapshot())
}
