// internal/repository/memory/ticket_repo.go
package memory

import (
	"context"
	"sync"
	"time"

	"casino-loyalty-service/internal/domain/ticket"
	xerrors "casino-loyalty-service/internal/pkg/errors"
)

type TicketRepository struct {
	mu     sync.Mutex
	nextID int64
	byID   map[int64]*ticket.Ticket
}

func NewTicketRepository() *TicketRepository {
	return &TicketRepository{
		nextID: 1,
		byID:   make(map[int64]*ticket.Ticket),
	}
}

var _ ticket.Repository = (*TicketRepository)(nil)

func (r *TicketRepository) Create(_ context.Context, t *ticket.Ticket) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	t.ID = r.nextID
	r.nextID++
	t.CreatedAt = now
	t.UpdatedAt = now

	stored := *t
	r.byID[t.ID] = &stored
	return nil
}

func (r *TicketRepository) FindByID(_ context.Context, id int64) (*ticket.Ticket, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.byID[id]
	if !ok {
		return nil, xerrors.ErrNotFound
	}
	copied := *t
	return &copied, nil
}

func (r *TicketRepository) Update(_ context.Context, t *ticket.Ticket) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.byID[t.ID]
	if !ok {
		return xerrors.ErrNotFound
	}

	stored.Status = t.Status
	stored.Priority = t.Priority
	stored.AssignedTo = t.AssignedTo
	stored.Resolution = t.Resolution
	stored.ResolvedAt = t.ResolvedAt
	stored.UpdatedAt = time.Now()
	return nil
}

func (r *TicketRepository) ListOpen(_ context.Context) ([]ticket.Ticket, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var tickets []ticket.Ticket
	for _, t := range r.byID {
		if t.IsOpen() {
			tickets = append(tickets, *t)
		}
	}
	return tickets, nil
}
