// internal/domain/transaction/repository.go
package transaction

import (
	"context"
	"time"
)

type Repository interface {
	// Create appends a ledger entry. There is no update: entries are
	// immutable once written.
	Create(ctx context.Context, t *Transaction) error
	FindByID(ctx context.Context, id int64) (*Transaction, error)
	List(ctx context.Context, filters *ListFilters) ([]Transaction, error)

	// SummarizeByKind aggregates count and amount per kind over [start, end).
	SummarizeByKind(ctx context.Context, start, end time.Time) ([]KindSummary, error)
}
