// Package checkout sequences order submission: validate the form, derive
// the price from the current cart, charge the gateway, persist the order
// and clear the cart.
package checkout

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/haysnairpa/urbanwear/internal/cart"
	"github.com/haysnairpa/urbanwear/internal/domain"
	"github.com/haysnairpa/urbanwear/internal/pricing"
)

// State is the checkout flow's current phase. Any failure re-enters
// Editing; there is no partial-failure path.
type State string

const (
	StateEditing    State = "EDITING"
	StateValidating State = "VALIDATING"
	StateSubmitting State = "SUBMITTING"
	StateCompleted  State = "COMPLETED"
)

var (
	ErrEmptyCart      = errors.New("cart is empty, nothing to checkout")
	ErrSubmitInFlight = errors.New("a submission is already in progress")
)

// OrderPlacer persists a completed order on behalf of the current user.
// session.History implements it.
type OrderPlacer interface {
	PlaceOrder(ctx context.Context, order *domain.Order) (string, error)
}

type Flow struct {
	cart    *cart.Engine
	placer  OrderPlacer
	gateway Gateway
	log     *logrus.Logger

	mu       sync.Mutex
	state    State
	inFlight bool
}

func NewFlow(cartEngine *cart.Engine, placer OrderPlacer, gateway Gateway, log *logrus.Logger) *Flow {
	return &Flow{
		cart:    cartEngine,
		placer:  placer,
		gateway: gateway,
		log:     log,
		state:   StateEditing,
	}
}

// State reports the flow's current phase.
func (f *Flow) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// Submit runs one submission attempt. At most one attempt may be in flight:
// a concurrent call returns ErrSubmitInFlight without touching the order
// store. An empty payment method defaults to credit-card, matching the
// form's initial selection.
func (f *Flow) Submit(ctx context.Context, form Form) (string, error) {
	f.mu.Lock()
	if f.inFlight {
		f.mu.Unlock()
		return "", ErrSubmitInFlight
	}
	f.inFlight = true
	f.state = StateValidating
	f.mu.Unlock()

	defer func() {
		f.mu.Lock()
		f.inFlight = false
		f.mu.Unlock()
	}()

	if form.PaymentMethod == "" {
		form.PaymentMethod = PaymentCreditCard
	}
	if err := form.Validate(); err != nil {
		f.setState(StateEditing)
		return "", err
	}

	lines := f.cart.Lines()
	if len(lines) == 0 {
		f.setState(StateEditing)
		return "", ErrEmptyCart
	}

	f.setState(StateSubmitting)

	quote := pricing.QuoteLines(lines)
	if err := f.gateway.Charge(ctx, quote.Total); err != nil {
		f.setState(StateEditing)
		return "", fmt.Errorf("payment failed: %w", err)
	}

	order := &domain.Order{
		Items: lines,
		Shipping: domain.ShippingInfo{
			FullName: form.FullName,
			Email:    form.Email,
			Address:  form.Address,
			City:     form.City,
			ZipCode:  form.ZipCode,
			Country:  form.Country,
		},
		PaymentMethod: form.PaymentMethod,
		Subtotal:      quote.Subtotal,
		ShippingCost:  quote.Shipping,
		Tax:           quote.Tax,
		Total:         quote.Total,
	}

	id, err := f.placer.PlaceOrder(ctx, order)
	if err != nil {
		f.setState(StateEditing)
		return "", err
	}

	f.cart.Clear()
	f.setState(StateCompleted)
	f.log.WithFields(logrus.Fields{
		"order_id": id,
		"total":    quote.Total,
	}).Info("order placed")
	return id, nil
}

// Reset returns a completed flow to Editing for the next purchase.
func (f *Flow) Reset() {
	f.setState(StateEditing)
}

func (f *Flow) setState(s State) {
	f.mu.Lock()
	f.state = s
	f.mu.Unlock()
}
