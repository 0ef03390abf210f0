// internal/domain/customer/repository.go
package customer

import (
	"context"
	"time"
)

// VisitDelta is applied to a customer's counters as a single atomic update.
type VisitDelta struct {
	Visits    int64
	Spend     float64
	Points    int64
	VisitedAt time.Time
}

type Repository interface {
	// Customer CRUD
	Create(ctx context.Context, c *Customer) error
	FindByID(ctx context.Context, id int64) (*Customer, error)
	FindByDocument(ctx context.Context, documentNumber string) (*Customer, error)
	ExistsByDocument(ctx context.Context, documentNumber string) (bool, error)
	List(ctx context.Context, filters *ListFilters) ([]Customer, int64, error)
	Update(ctx context.Context, c *Customer) error
	SetActive(ctx context.Context, id int64, active bool) error

	// Counter mutations. Implementations must apply these as atomic
	// increments, never as read-modify-write of the full row.
	ApplyVisit(ctx context.Context, id int64, delta VisitDelta) error
	AddPoints(ctx context.Context, id int64, points int64) error
	AddBalance(ctx context.Context, id int64, amount float64) error
	// DebitBalance fails without mutation when the balance would go negative.
	DebitBalance(ctx context.Context, id int64, amount float64) error

	// UpdateTier transitions tier from -> to and reports whether the row
	// changed. A stale `from` value means another writer got there first.
	UpdateTier(ctx context.Context, id int64, from, to Tier) (bool, error)

	GetStats(ctx context.Context) (*CustomerStats, error)
}
