// internal/repository/memory/customer_repo.go
package memory

import (
	"context"
	"strings"
	"sync"
	"time"

	"casino-loyalty-service/internal/domain/customer"
	xerrors "casino-loyalty-service/internal/pkg/errors"
)

// CustomerRepository is a mutex-guarded in-memory implementation of
// customer.Repository. It mirrors the atomicity guarantees of the
// postgres backend: counter mutations happen under one lock acquisition.
type CustomerRepository struct {
	mu     sync.Mutex
	nextID int64
	byID   map[int64]*customer.Customer
}

func NewCustomerRepository() *CustomerRepository {
	return &CustomerRepository{
		nextID: 1,
		byID:   make(map[int64]*customer.Customer),
	}
}

var _ customer.Repository = (*CustomerRepository)(nil)

func (r *CustomerRepository) Create(_ context.Context, c *customer.Customer) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.byID {
		if existing.DocumentNumber == c.DocumentNumber {
			return customer.ErrDuplicateDocument
		}
	}

	now := time.Now()
	c.ID = r.nextID
	r.nextID++
	c.CreatedAt = now
	c.UpdatedAt = now

	stored := *c
	r.byID[c.ID] = &stored
	return nil
}

func (r *CustomerRepository) FindByID(_ context.Context, id int64) (*customer.Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.byID[id]
	if !ok {
		return nil, xerrors.ErrNotFound
	}
	copied := *c
	return &copied, nil
}

func (r *CustomerRepository) FindByDocument(_ context.Context, documentNumber string) (*customer.Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, c := range r.byID {
		if c.DocumentNumber == documentNumber {
			copied := *c
			return &copied, nil
		}
	}
	return nil, xerrors.ErrNotFound
}

func (r *CustomerRepository) ExistsByDocument(_ context.Context, documentNumber string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, c := range r.byID {
		if c.DocumentNumber == documentNumber {
			return true, nil
		}
	}
	return false, nil
}

func (r *CustomerRepository) List(_ context.Context, filters *customer.ListFilters) ([]customer.Customer, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var matched []customer.Customer
	for _, c := range r.byID {
		if filters.Tier != "" && c.Tier != filters.Tier {
			continue
		}
		if filters.IsActive != nil && c.IsActive != *filters.IsActive {
			continue
		}
		if filters.City != "" && !strings.EqualFold(c.City.String, filters.City) {
			continue
		}
		if filters.Search != "" && !matchesSearch(c, filters.Search) {
			continue
		}
		matched = append(matched, *c)
	}

	total := int64(len(matched))

	offset := filters.Offset
	if offset > len(matched) {
		offset = len(matched)
	}
	matched = matched[offset:]

	limit := filters.Limit
	if limit <= 0 {
		limit = 100
	}
	if limit < len(matched) {
		matched = matched[:limit]
	}

	return matched, total, nil
}

func matchesSearch(c *customer.Customer, search string) bool {
	s := strings.ToLower(search)
	return strings.Contains(strings.ToLower(c.FirstName), s) ||
		strings.Contains(strings.ToLower(c.LastName), s) ||
		strings.Contains(c.DocumentNumber, search) ||
		strings.Contains(strings.ToLower(c.Email.String), s)
}

func (r *CustomerRepository) Update(_ context.Context, c *customer.Customer) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.byID[c.ID]
	if !ok {
		return xerrors.ErrNotFound
	}

	stored.FirstName = c.FirstName
	stored.LastName = c.LastName
	stored.Email = c.Email
	stored.Phone = c.Phone
	stored.BirthDate = c.BirthDate
	stored.Address = c.Address
	stored.City = c.City
	stored.Preferences = c.Preferences
	stored.Tags = c.Tags
	stored.Notes = c.Notes
	stored.UpdatedAt = time.Now()
	return nil
}

func (r *CustomerRepository) SetActive(_ context.Context, id int64, active bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.byID[id]
	if !ok {
		return xerrors.ErrNotFound
	}
	c.IsActive = active
	c.UpdatedAt = time.Now()
	return nil
}

func (r *CustomerRepository) ApplyVisit(_ context.Context, id int64, delta customer.VisitDelta) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.byID[id]
	if !ok {
		return xerrors.ErrNotFound
	}

	c.VisitCount += delta.Visits
	c.LifetimeSpend += delta.Spend
	c.PointsBalance += delta.Points
	c.LastVisitAt.Time = delta.VisitedAt
	c.LastVisitAt.Valid = true
	c.UpdatedAt = time.Now()
	return nil
}

func (r *CustomerRepository) AddPoints(_ context.Context, id int64, points int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.byID[id]
	if !ok {
		return xerrors.ErrNotFound
	}
	c.PointsBalance += points
	c.UpdatedAt = time.Now()
	return nil
}

func (r *CustomerRepository) AddBalance(_ context.Context, id int64, amount float64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.byID[id]
	if !ok {
		return xerrors.ErrNotFound
	}
	c.Balance += amount
	c.UpdatedAt = time.Now()
	return nil
}

func (r *CustomerRepository) DebitBalance(_ context.Context, id int64, amount float64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.byID[id]
	if !ok {
		return xerrors.ErrNotFound
	}
	if c.Balance < amount {
		return customer.ErrInsufficientBalance
	}
	c.Balance -= amount
	c.UpdatedAt = time.Now()
	return nil
}

func (r *CustomerRepository) UpdateTier(_ context.Context, id int64, from, to customer.Tier) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.byID[id]
	if !ok {
		return false, xerrors.ErrNotFound
	}
	if c.Tier != from {
		return false, nil
	}
	c.Tier = to
	c.UpdatedAt = time.Now()
	return true, nil
}

func (r *CustomerRepository) GetStats(_ context.Context) (*customer.CustomerStats, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	monthStart := time.Date(time.Now().Year(), time.Now().Month(), 1, 0, 0, 0, 0, time.Local)

	var stats customer.CustomerStats
	for _, c := range r.byID {
		stats.TotalCustomers++
		if c.IsActive {
			stats.ActiveCustomers++
		}
		if c.Tier == customer.TierVIP {
			stats.VIPCustomers++
		}
		if !c.RegisteredAt.Before(monthStart) {
			stats.NewThisMonth++
		}
	}
	return &stats, nil
}
