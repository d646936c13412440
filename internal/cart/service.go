// Package cart owns the per-session shopping cart: the single source of
// truth for cart contents across page loads. Mutations go through the pure
// operations on domain.Cart; this service only loads and persists.
package cart

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/5anyam/vyadhiharfoods-sub000/internal/domain"
	"github.com/5anyam/vyadhiharfoods-sub000/internal/pricing"
	apperrors "github.com/5anyam/vyadhiharfoods-sub000/pkg/errors"
)

type Service struct {
	repo   Repository
	logger *zap.Logger
}

// NewService creates a new cart service
func NewService(repo Repository, logger *zap.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// Get returns the session's cart, or a fresh empty cart when none exists yet.
func (s *Service) Get(ctx context.Context, sessionID string) (*domain.Cart, error) {
	cart, err := s.repo.Get(ctx, sessionID)
	if errors.Is(err, ErrCartNotFound) {
		return &domain.Cart{}, nil
	}
	if err != nil {
		return nil, err
	}
	return cart, nil
}

// AddItem merges a line into the cart and persists the result.
func (s *Service) AddItem(ctx context.Context, sessionID string, line domain.CartLine) (*domain.Cart, error) {
	cart, err := s.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	cart.Add(line)
	if err := s.repo.Save(ctx, sessionID, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// Increment raises the matching line's quantity by one.
func (s *Service) Increment(ctx context.Context, sessionID, key string) (*domain.Cart, error) {
	return s.mutate(ctx, sessionID, func(c *domain.Cart) { c.Increment(key) })
}

// Decrement lowers the matching line's quantity by one, floored at 1.
func (s *Service) Decrement(ctx context.Context, sessionID, key string) (*domain.Cart, error) {
	return s.mutate(ctx, sessionID, func(c *domain.Cart) { c.Decrement(key) })
}

// RemoveItem deletes the matching line.
func (s *Service) RemoveItem(ctx context.Context, sessionID, key string) (*domain.Cart, error) {
	return s.mutate(ctx, sessionID, func(c *domain.Cart) { c.Remove(key) })
}

// Clear empties the cart. Called only after an order is finalized.
func (s *Service) Clear(ctx context.Context, sessionID string) error {
	if err := s.repo.Delete(ctx, sessionID); err != nil {
		return err
	}
	return nil
}

// ApplyCoupon validates the code against the current subtotal and stores it
// on the cart when valid. Re-submitting the applied code is a conflict,
// distinct from an invalid code.
func (s *Service) ApplyCoupon(ctx context.Context, sessionID, code string) (pricing.CouponResult, *domain.Cart, error) {
	cart, err := s.Get(ctx, sessionID)
	if err != nil {
		return pricing.CouponResult{}, nil, err
	}

	normalized := strings.ToUpper(strings.TrimSpace(code))
	if cart.CouponCode != "" && cart.CouponCode == normalized {
		return pricing.CouponResult{}, cart, &apperrors.ErrConflict{Message: "Coupon already applied"}
	}

	result := pricing.ValidateCoupon(normalized, cart.Subtotal())
	if !result.Valid {
		return result, cart, nil
	}

	cart.CouponCode = normalized
	if err := s.repo.Save(ctx, sessionID, cart); err != nil {
		return pricing.CouponResult{}, nil, err
	}
	return result, cart, nil
}

// RemoveCoupon clears the applied code. Discount resets to zero; no prior
// error message is resurrected.
func (s *Service) RemoveCoupon(ctx context.Context, sessionID string) (*domain.Cart, error) {
	return s.mutate(ctx, sessionID, func(c *domain.Cart) { c.CouponCode = "" })
}

func (s *Service) mutate(ctx context.Context, sessionID string, fn func(*domain.Cart)) (*domain.Cart, error) {
	cart, err := s.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	fn(cart)
	if err := s.repo.Save(ctx, sessionID, cart); err != nil {
		return nil, err
	}
	return cart, nil
}
