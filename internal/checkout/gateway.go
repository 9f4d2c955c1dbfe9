package checkout

import (
	"context"
	"time"
)

// Gateway charges payment for an order total. The storefront has no real
// settlement backend; SimulatedGateway stands in for it, and tests inject
// failing implementations to exercise the failure path deterministically.
type Gateway interface {
	Charge(ctx context.Context, amount float64) error
}

// SimulatedGateway waits out a fixed delay and approves every charge.
type SimulatedGateway struct {
	Delay time.Duration
}

func (g *SimulatedGateway) Charge(ctx context.Context, amount float64) error {
	select {
	case <-time.After(g.Delay):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
