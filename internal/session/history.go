// Package session tracks the authenticated user and presents their order
// history, refetched whenever the identity changes.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/haysnairpa/urbanwear/internal/domain"
	"github.com/haysnairpa/urbanwear/internal/identity"
	"github.com/haysnairpa/urbanwear/internal/orders"
)

const fetchTimeout = 10 * time.Second

var ErrNotAuthenticated = errors.New("no authenticated user")

// History is the session/order presentation state. It subscribes to
// identity changes: a new identity triggers an async history fetch, an
// absent identity clears the list immediately so a previous session's
// orders are never visible.
type History struct {
	store orders.Store
	log   *logrus.Logger

	mu      sync.Mutex
	user    *identity.User
	orders  []domain.Order
	loading bool
	// gen guards against a stale fetch finishing after the identity has
	// already changed again.
	gen int

	unsubscribe func()
}

func NewHistory(idc identity.Client, store orders.Store, log *logrus.Logger) *History {
	h := &History{store: store, log: log}
	h.unsubscribe = idc.Subscribe(h.onIdentityChange)
	return h
}

// Close detaches from identity change notifications.
func (h *History) Close() {
	h.unsubscribe()
}

func (h *History) onIdentityChange(u *identity.User) {
	h.mu.Lock()
	h.user = u
	h.gen++
	gen := h.gen
	if u == nil {
		h.orders = nil
		h.loading = false
		h.mu.Unlock()
		return
	}
	h.loading = true
	uid := u.UID
	h.mu.Unlock()

	go h.fetch(gen, uid)
}

func (h *History) fetch(gen int, uid string) {
	ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
	defer cancel()

	list, err := h.store.ListByUser(ctx, uid)

	h.mu.Lock()
	defer h.mu.Unlock()
	if gen != h.gen {
		// identity changed while the fetch was in flight
		return
	}
	h.loading = false
	if err != nil {
		h.log.WithError(err).WithField("user_id", uid).Error("failed to fetch order history")
		return
	}
	h.orders = list
}

// PlaceOrder stamps ownership, persists the order remotely and prepends it
// optimistically with the identifier the store assigned. There is no
// confirming re-fetch, so a store that reshapes the document on write could
// diverge from the in-memory copy until the next identity change.
func (h *History) PlaceOrder(ctx context.Context, order *domain.Order) (string, error) {
	h.mu.Lock()
	user := h.user
	h.mu.Unlock()
	if user == nil {
		return "", ErrNotAuthenticated
	}

	order.UserID = user.UID
	order.CreatedAt = time.Now().UTC()
	order.Status = domain.OrderStatusCompleted

	id, err := h.store.Save(ctx, order)
	if err != nil {
		return "", fmt.Errorf("failed to save order: %w", err)
	}
	order.ID = id

	h.mu.Lock()
	defer h.mu.Unlock()
	h.orders = append([]domain.Order{*order}, h.orders...)
	return id, nil
}

// Orders returns a copy of the visible history, newest first.
func (h *History) Orders() []domain.Order {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]domain.Order, len(h.orders))
	copy(out, h.orders)
	return out
}

// Loading reports whether a history fetch is in flight.
func (h *History) Loading() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.loading
}

// CurrentUser returns the session's user, or nil when logged out.
func (h *History) CurrentUser() *identity.User {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.user
}
