package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/haysnairpa/urbanwear/internal/checkout"
	"github.com/haysnairpa/urbanwear/internal/domain"
	"github.com/haysnairpa/urbanwear/internal/identity"
	"github.com/haysnairpa/urbanwear/internal/session"
)

// CheckoutFlow is the slice of the checkout flow the handler needs.
type CheckoutFlow interface {
	Submit(ctx context.Context, form checkout.Form) (string, error)
	State() checkout.State
}

// SessionView is the read side of the session/order presentation state.
type SessionView interface {
	CurrentUser() *identity.User
	Orders() []domain.Order
	Loading() bool
}

type CheckoutHandler struct {
	flow    CheckoutFlow
	session SessionView
	timeout time.Duration
}

func NewCheckoutHandler(flow CheckoutFlow, sessionView SessionView, timeout time.Duration) *CheckoutHandler {
	return &CheckoutHandler{
		flow:    flow,
		session: sessionView,
		timeout: timeout,
	}
}

type CheckoutResponseDTO struct {
	OrderID string `json:"order_id"`
	Status  string `json:"status"`
}

// Submit serves POST /checkout. Checking out while logged out is not an
// error: the response carries a redirect intent back to checkout after
// login.
func (h *CheckoutHandler) Submit(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	if h.session.CurrentUser() == nil {
		respondJSON(w, http.StatusUnauthorized, ErrorResponse{
			Error:   "login required to place an order",
			Code:    "login_required",
			Details: "/login?from=/checkout",
		})
		return
	}

	var form checkout.Form
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	orderID, err := h.flow.Submit(ctx, form)
	if err != nil {
		h.handleSubmitError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, CheckoutResponseDTO{
		OrderID: orderID,
		Status:  string(checkout.StateCompleted),
	})
}

func (h *CheckoutHandler) handleSubmitError(w http.ResponseWriter, err error) {
	var validationErr *checkout.ValidationError
	switch {
	case errors.As(err, &validationErr):
		respondError(w, http.StatusUnprocessableEntity, "validation_failed", validationErr.Error())
	case errors.Is(err, checkout.ErrSubmitInFlight):
		respondError(w, http.StatusConflict, "submit_in_flight", "an order submission is already in progress")
	case errors.Is(err, checkout.ErrEmptyCart):
		respondError(w, http.StatusBadRequest, "empty_cart", "add some products before checkout")
	case errors.Is(err, session.ErrNotAuthenticated):
		respondJSON(w, http.StatusUnauthorized, ErrorResponse{
			Error:   "login required to place an order",
			Code:    "login_required",
			Details: "/login?from=/checkout",
		})
	default:
		respondError(w, http.StatusBadGateway, "order_submission_failed", "failed to place the order")
	}
}
