// internal/repository/memory/transaction_repo.go
package memory

import (
	"context"
	"sync"
	"time"

	"casino-loyalty-service/internal/domain/transaction"
	xerrors "casino-loyalty-service/internal/pkg/errors"
)

type TransactionRepository struct {
	mu      sync.Mutex
	nextID  int64
	entries []transaction.Transaction
}

func NewTransactionRepository() *TransactionRepository {
	return &TransactionRepository{nextID: 1}
}

var _ transaction.Repository = (*TransactionRepository)(nil)

func (r *TransactionRepository) Create(_ context.Context, t *transaction.Transaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	t.ID = r.nextID
	r.nextID++
	t.CreatedAt = time.Now()

	r.entries = append(r.entries, *t)
	return nil
}

func (r *TransactionRepository) FindByID(_ context.Context, id int64) (*transaction.Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.entries {
		if r.entries[i].ID == id {
			copied := r.entries[i]
			return &copied, nil
		}
	}
	return nil, xerrors.ErrNotFound
}

func (r *TransactionRepository) List(_ context.Context, filters *transaction.ListFilters) ([]transaction.Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	limit := filters.Limit
	if limit <= 0 {
		limit = 100
	}

	var matched []transaction.Transaction
	// Newest first, matching the postgres ordering.
	for i := len(r.entries) - 1; i >= 0 && len(matched) < limit; i-- {
		t := r.entries[i]
		if filters.CustomerID != 0 && t.CustomerID != filters.CustomerID {
			continue
		}
		if filters.Kind != "" && t.Kind != filters.Kind {
			continue
		}
		if !filters.From.IsZero() && t.OccurredAt.Before(filters.From) {
			continue
		}
		if !filters.To.IsZero() && !t.OccurredAt.Before(filters.To) {
			continue
		}
		matched = append(matched, t)
	}

	return matched, nil
}

func (r *TransactionRepository) SummarizeByKind(_ context.Context, start, end time.Time) ([]transaction.KindSummary, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	byKind := make(map[transaction.Kind]*transaction.KindSummary)
	for _, t := range r.entries {
		if t.OccurredAt.Before(start) || !t.OccurredAt.Before(end) {
			continue
		}
		s, ok := byKind[t.Kind]
		if !ok {
			s = &transaction.KindSummary{Kind: t.Kind}
			byKind[t.Kind] = s
		}
		s.Count++
		s.Total += t.Amount
	}

	var summaries []transaction.KindSummary
	for _, s := range byKind {
		summaries = append(summaries, *s)
	}
	return summaries, nil
}
