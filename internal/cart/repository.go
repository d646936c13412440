package cart

import (
	"context"
	"errors"

	"github.com/5anyam/vyadhiharfoods-sub000/internal/domain"
)

// ErrCartNotFound is returned when no cart exists for a session.
var ErrCartNotFound = errors.New("cart not found")

// Repository is the durable per-session cart storage boundary. The stored
// format is an opaque serialized cart; callers read on load and write on
// every mutation.
type Repository interface {
	Get(ctx context.Context, sessionID string) (*domain.Cart, error)
	Save(ctx context.Context, sessionID string, cart *domain.Cart) error
	Delete(ctx context.Context, sessionID string) error
}
