// internal/repository/postgres/ticket_repo.go
package postgres

import (
	"context"
	"errors"
	"fmt"

	"casino-loyalty-service/internal/domain/ticket"
	xerrors "casino-loyalty-service/internal/pkg/errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const ticketColumns = `id, number, customer_id, kind, status, priority, subject,
	       description, category, assigned_to, resolution, resolved_at,
	       created_at, updated_at`

type TicketRepository struct {
	db *pgxpool.Pool
}

func NewTicketRepository(db *pgxpool.Pool) *TicketRepository {
	return &TicketRepository{db: db}
}

var _ ticket.Repository = (*TicketRepository)(nil)

func (r *TicketRepository) Create(ctx context.Context, t *ticket.Ticket) error {
	query := `
		INSERT INTO tickets (
			number, customer_id, kind, status, priority, subject,
			description, category, assigned_to
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRow(
		ctx, query,
		t.Number, t.CustomerID, t.Kind, t.Status, t.Priority, t.Subject,
		t.Description, t.Category, t.AssignedTo,
	).Scan(&t.ID, &t.CreatedAt, &t.UpdatedAt)

	if err != nil {
		return fmt.Errorf("failed to create ticket: %w", err)
	}

	return nil
}

func (r *TicketRepository) FindByID(ctx context.Context, id int64) (*ticket.Ticket, error) {
	query := `SELECT ` + ticketColumns + ` FROM tickets WHERE id = $1`
	return scanTicket(r.db.QueryRow(ctx, query, id))
}

func (r *TicketRepository) Update(ctx context.Context, t *ticket.Ticket) error {
	query := `
		UPDATE tickets
		SET status = $1, priority = $2, assigned_to = $3, resolution = $4,
		    resolved_at = $5, updated_at = NOW()
		WHERE id = $6
	`

	result, err := r.db.Exec(
		ctx, query,
		t.Status, t.Priority, t.AssignedTo, t.Resolution, t.ResolvedAt, t.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update ticket: %w", err)
	}
	if result.RowsAffected() == 0 {
		return xerrors.ErrNotFound
	}

	return nil
}

func (r *TicketRepository) ListOpen(ctx context.Context) ([]ticket.Ticket, error) {
	query := `SELECT ` + ticketColumns + ` FROM tickets
		WHERE status IN ('open', 'in_progress') ORDER BY created_at`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list open tickets: %w", err)
	}
	defer rows.Close()

	var tickets []ticket.Ticket
	for rows.Next() {
		t, err := scanTicket(rows)
		if err != nil {
			return nil, err
		}
		tickets = append(tickets, *t)
	}

	return tickets, nil
}

func scanTicket(row rowScanner) (*ticket.Ticket, error) {
	var t ticket.Ticket

	err := row.Scan(
		&t.ID, &t.Number, &t.CustomerID, &t.Kind, &t.Status, &t.Priority, &t.Subject,
		&t.Description, &t.Category, &t.AssignedTo, &t.Resolution, &t.ResolvedAt,
		&t.CreatedAt, &t.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, xerrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan ticket: %w", err)
	}

	return &t, nil
}
