// internal/domain/promotion/repository.go
package promotion

import (
	"context"
	"time"
)

// Credit is an optional point grant applied to a customer in the same
// storage transaction as the redemption itself.
type Credit struct {
	CustomerID int64
	Points     int64
}

type Repository interface {
	Create(ctx context.Context, p *Promotion) error
	FindByID(ctx context.Context, id int64) (*Promotion, error)
	FindByCode(ctx context.Context, code string) (*Promotion, error)
	ListByCustomer(ctx context.Context, customerID int64) ([]Promotion, error)

	// UpdateState transitions an active promotion to the given state.
	// Settled promotions (redeemed, expired, cancelled) are immutable;
	// attempting to move one reports a conflict.
	UpdateState(ctx context.Context, id int64, state State) error

	// Redeem consumes one use as a single atomic unit: the guard
	// (active, within window, use_count < max_uses) and the increment
	// must not be separable. Returns ErrNotRedeemable when the guard
	// fails, which includes losing a race for the last use. A non-nil
	// credit is applied in the same transaction.
	Redeem(ctx context.Context, id int64, now time.Time, credit *Credit) (*Promotion, error)
}
