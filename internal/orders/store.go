// Package orders persists completed orders in the remote document store and
// reads a user's history back newest-first.
package orders

import (
	"context"

	"github.com/haysnairpa/urbanwear/internal/domain"
)

// Store is defined by its consumers (session presentation, checkout flow),
// not by the MongoDB implementation.
type Store interface {
	// Save persists the order and returns the identifier the store assigned.
	Save(ctx context.Context, order *domain.Order) (string, error)
	// ListByUser returns the user's orders sorted by creation time, newest
	// first.
	ListByUser(ctx context.Context, userID string) ([]domain.Order, error)
}
