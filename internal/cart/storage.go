package cart

import (
	"context"

	"github.com/haysnairpa/urbanwear/internal/domain"
)

// Storage persists the full cart line sequence under a single fixed key.
// Consumers define this interface, not the Redis implementation.
type Storage interface {
	Load(ctx context.Context) ([]domain.CartLine, error)
	Save(ctx context.Context, lines []domain.CartLine) error
}
