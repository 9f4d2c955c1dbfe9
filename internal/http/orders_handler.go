package http

import (
	"net/http"

	"github.com/haysnairpa/urbanwear/internal/domain"
)

type OrdersHandler struct {
	session SessionView
}

func NewOrdersHandler(sessionView SessionView) *OrdersHandler {
	return &OrdersHandler{session: sessionView}
}

type OrdersResponseDTO struct {
	Orders  []domain.Order `json:"orders"`
	Loading bool           `json:"loading"`
}

// List serves GET /orders: the current user's history, newest first.
func (h *OrdersHandler) List(w http.ResponseWriter, r *http.Request) {
	if h.session.CurrentUser() == nil {
		respondJSON(w, http.StatusUnauthorized, ErrorResponse{
			Error:   "login required to view orders",
			Code:    "login_required",
			Details: "/login?from=/orders",
		})
		return
	}

	orders := h.session.Orders()
	if orders == nil {
		orders = []domain.Order{}
	}
	respondJSON(w, http.StatusOK, OrdersResponseDTO{
		Orders:  orders,
		Loading: h.session.Loading(),
	})
}
