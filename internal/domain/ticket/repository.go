// internal/domain/ticket/repository.go
package ticket

import "context"

type Repository interface {
	Create(ctx context.Context, t *Ticket) error
	FindByID(ctx context.Context, id int64) (*Ticket, error)
	Update(ctx context.Context, t *Ticket) error
	ListOpen(ctx context.Context) ([]Ticket, error)
}
