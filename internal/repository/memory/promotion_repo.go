// internal/repository/memory/promotion_repo.go
package memory

import (
	"context"
	"sync"
	"time"

	"casino-loyalty-service/internal/domain/promotion"
	xerrors "casino-loyalty-service/internal/pkg/errors"
)

// PromotionRepository is a mutex-guarded in-memory implementation of
// promotion.Repository. Redeem holds the lock across the guard and the
// increment, matching the conditional-update semantics of the postgres
// backend.
type PromotionRepository struct {
	mu        sync.Mutex
	nextID    int64
	byID      map[int64]*promotion.Promotion
	customers *CustomerRepository // for redemption point credits, may be nil
}

func NewPromotionRepository(customers *CustomerRepository) *PromotionRepository {
	return &PromotionRepository{
		nextID:    1,
		byID:      make(map[int64]*promotion.Promotion),
		customers: customers,
	}
}

var _ promotion.Repository = (*PromotionRepository)(nil)

func (r *PromotionRepository) Create(_ context.Context, p *promotion.Promotion) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.byID {
		if existing.Code == p.Code {
			return xerrors.ErrDuplicateEntry
		}
	}

	now := time.Now()
	p.ID = r.nextID
	r.nextID++
	p.CreatedAt = now
	p.UpdatedAt = now

	stored := *p
	r.byID[p.ID] = &stored
	return nil
}

func (r *PromotionRepository) FindByID(_ context.Context, id int64) (*promotion.Promotion, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.byID[id]
	if !ok {
		return nil, xerrors.ErrNotFound
	}
	copied := *p
	return &copied, nil
}

func (r *PromotionRepository) FindByCode(_ context.Context, code string) (*promotion.Promotion, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, p := range r.byID {
		if p.Code == code {
			copied := *p
			return &copied, nil
		}
	}
	return nil, xerrors.ErrNotFound
}

func (r *PromotionRepository) ListByCustomer(_ context.Context, customerID int64) ([]promotion.Promotion, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var promotions []promotion.Promotion
	for _, p := range r.byID {
		if p.CustomerID.Valid && p.CustomerID.Int64 == customerID {
			promotions = append(promotions, *p)
		}
	}
	return promotions, nil
}

func (r *PromotionRepository) UpdateState(_ context.Context, id int64, state promotion.State) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.byID[id]
	if !ok {
		return xerrors.ErrNotFound
	}
	if p.State != promotion.StateActive {
		return xerrors.ErrConflict
	}
	p.State = state
	p.UpdatedAt = time.Now()
	return nil
}

func (r *PromotionRepository) Redeem(_ context.Context, id int64, now time.Time, credit *promotion.Credit) (*promotion.Promotion, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.byID[id]
	if !ok {
		return nil, promotion.ErrNotRedeemable
	}
	if !p.Redeem(now) {
		return nil, promotion.ErrNotRedeemable
	}
	p.UpdatedAt = time.Now()

	if credit != nil && credit.Points != 0 && r.customers != nil {
		if err := r.customers.AddPoints(context.Background(), credit.CustomerID, credit.Points); err != nil {
			// Roll the use back so a failed credit never burns a use.
			p.UseCount--
			if p.State == promotion.StateRedeemed {
				p.State = promotion.StateActive
			}
			return nil, err
		}
	}

	copied := *p
	return &copied, nil
}
