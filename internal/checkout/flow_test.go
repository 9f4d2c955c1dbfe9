package checkout

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/haysnairpa/urbanwear/internal/cart"
	"github.com/haysnairpa/urbanwear/internal/domain"
)

type nopStorage struct{}

func (nopStorage) Load(context.Context) ([]domain.CartLine, error) { return nil, nil }
func (nopStorage) Save(context.Context, []domain.CartLine) error   { return nil }

type mockPlacer struct {
	m      sync.RWMutex
	id     string
	err    error
	placed []domain.Order
}

func (m *mockPlacer) PlaceOrder(_ context.Context, order *domain.Order) (string, error) {
	m.m.Lock()
	defer m.m.Unlock()
	if m.err != nil {
		return "", m.err
	}
	m.placed = append(m.placed, *order)
	return m.id, nil
}

func (m *mockPlacer) placedCount() int {
	m.m.RLock()
	defer m.m.RUnlock()
	return len(m.placed)
}

func (m *mockPlacer) lastPlaced() domain.Order {
	m.m.RLock()
	defer m.m.RUnlock()
	return m.placed[len(m.placed)-1]
}

type approvingGateway struct{}

func (approvingGateway) Charge(context.Context, float64) error { return nil }

type failingGateway struct{ err error }

func (g failingGateway) Charge(context.Context, float64) error { return g.err }

// blockingGateway holds every charge until release is closed, so tests can
// observe the flow mid-submission.
type blockingGateway struct {
	entered chan struct{}
	release chan struct{}
	once    sync.Once
}

func (g *blockingGateway) Charge(ctx context.Context, _ float64) error {
	g.once.Do(func() { close(g.entered) })
	select {
	case <-g.release:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return log
}

func cartWith(t *testing.T, lines ...domain.CartLine) *cart.Engine {
	t.Helper()
	engine := cart.New(nopStorage{}, testLogger())
	for _, l := range lines {
		engine.Add(l.Product, l.Quantity)
	}
	return engine
}

func TestSubmit_Success(t *testing.T) {
	engine := cartWith(t, domain.CartLine{
		Product:  domain.Product{ID: 1, Title: "Classic Tee", Price: 50},
		Quantity: 2,
	})
	placer := &mockPlacer{id: "order-1"}

	sut := NewFlow(engine, placer, approvingGateway{}, testLogger())

	id, err := sut.Submit(context.Background(), validForm())
	require.NoError(t, err)
	assert.Equal(t, "order-1", id)
	assert.Equal(t, StateCompleted, sut.State())

	require.Equal(t, 1, placer.placedCount())
	order := placer.lastPlaced()
	assert.Equal(t, 100.0, order.Subtotal)
	assert.Equal(t, 10.0, order.ShippingCost)
	assert.InDelta(t, 10.0, order.Tax, 1e-9)
	assert.InDelta(t, 120.0, order.Total, 1e-9)
	assert.Equal(t, PaymentCreditCard, order.PaymentMethod)
	assert.Equal(t, "Ada Lovelace", order.Shipping.FullName)
	require.Len(t, order.Items, 1)
	assert.Equal(t, 2, order.Items[0].Quantity)

	// a successful submission empties the cart
	assert.Empty(t, engine.Lines())
}

func TestSubmit_EmptyPaymentMethodDefaultsToCreditCard(t *testing.T) {
	engine := cartWith(t, domain.CartLine{
		Product:  domain.Product{ID: 1, Price: 10},
		Quantity: 1,
	})
	placer := &mockPlacer{id: "order-2"}
	sut := NewFlow(engine, placer, approvingGateway{}, testLogger())

	form := validForm()
	form.PaymentMethod = ""

	_, err := sut.Submit(context.Background(), form)
	require.NoError(t, err)
	assert.Equal(t, PaymentCreditCard, placer.lastPlaced().PaymentMethod)
}

func TestSubmit_ValidationFailureNeverReachesStore(t *testing.T) {
	engine := cartWith(t, domain.CartLine{
		Product:  domain.Product{ID: 1, Price: 10},
		Quantity: 1,
	})
	placer := &mockPlacer{id: "order-3"}
	sut := NewFlow(engine, placer, approvingGateway{}, testLogger())

	form := validForm()
	form.Email = ""

	_, err := sut.Submit(context.Background(), form)

	var ve *ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, 0, placer.placedCount())
	assert.Equal(t, StateEditing, sut.State())
	assert.Len(t, engine.Lines(), 1)
}

func TestSubmit_EmptyCartRejected(t *testing.T) {
	engine := cartWith(t)
	placer := &mockPlacer{}
	sut := NewFlow(engine, placer, approvingGateway{}, testLogger())

	_, err := sut.Submit(context.Background(), validForm())
	assert.ErrorIs(t, err, ErrEmptyCart)
	assert.Equal(t, 0, placer.placedCount())
	assert.Equal(t, StateEditing, sut.State())
}

func TestSubmit_GatewayFailureReturnsToEditing(t *testing.T) {
	engine := cartWith(t, domain.CartLine{
		Product:  domain.Product{ID: 1, Price: 10},
		Quantity: 1,
	})
	placer := &mockPlacer{}
	gateway := failingGateway{err: errors.New("card declined")}
	sut := NewFlow(engine, placer, gateway, testLogger())

	_, err := sut.Submit(context.Background(), validForm())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "payment failed")
	assert.Equal(t, 0, placer.placedCount())
	assert.Equal(t, StateEditing, sut.State())
	assert.Len(t, engine.Lines(), 1)
}

func TestSubmit_PlacerFailureKeepsCart(t *testing.T) {
	engine := cartWith(t, domain.CartLine{
		Product:  domain.Product{ID: 1, Price: 10},
		Quantity: 1,
	})
	placer := &mockPlacer{err: errors.New("store unavailable")}
	sut := NewFlow(engine, placer, approvingGateway{}, testLogger())

	_, err := sut.Submit(context.Background(), validForm())
	require.Error(t, err)
	assert.Equal(t, StateEditing, sut.State())
	assert.Len(t, engine.Lines(), 1)
}

func TestSubmit_SecondAttemptWhileInFlightRejected(t *testing.T) {
	engine := cartWith(t, domain.CartLine{
		Product:  domain.Product{ID: 1, Price: 10},
		Quantity: 1,
	})
	placer := &mockPlacer{id: "order-4"}
	gateway := &blockingGateway{
		entered: make(chan struct{}),
		release: make(chan struct{}),
	}
	sut := NewFlow(engine, placer, gateway, testLogger())

	done := make(chan error, 1)
	go func() {
		_, err := sut.Submit(context.Background(), validForm())
		done <- err
	}()

	select {
	case <-gateway.entered:
	case <-time.After(2 * time.Second):
		t.Fatal("first submission never reached the gateway")
	}
	assert.Equal(t, StateSubmitting, sut.State())

	_, err := sut.Submit(context.Background(), validForm())
	assert.ErrorIs(t, err, ErrSubmitInFlight)

	close(gateway.release)
	require.NoError(t, <-done)

	assert.Equal(t, 1, placer.placedCount())
	assert.Equal(t, StateCompleted, sut.State())
}

func TestReset_ReturnsToEditing(t *testing.T) {
	engine := cartWith(t, domain.CartLine{
		Product:  domain.Product{ID: 1, Price: 10},
		Quantity: 1,
	})
	sut := NewFlow(engine, &mockPlacer{id: "order-5"}, approvingGateway{}, testLogger())

	_, err := sut.Submit(context.Background(), validForm())
	require.NoError(t, err)
	require.Equal(t, StateCompleted, sut.State())

	sut.Reset()
	assert.Equal(t, StateEditing, sut.State())
}

func TestSimulatedGateway_HonorsContextCancellation(t *testing.T) {
	gateway := &SimulatedGateway{Delay: time.Minute}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := gateway.Charge(ctx, 10)
	assert.ErrorIs(t, err, context.Canceled)
}
