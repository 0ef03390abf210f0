// internal/repository/postgres/transaction_repo.go
package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"casino-loyalty-service/internal/domain/transaction"
	xerrors "casino-loyalty-service/internal/pkg/errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const transactionColumns = `id, customer_id, kind, amount, description, occurred_at, location,
	       promotion_id, points_awarded, payment_method, reference_number,
	       staff_id, notes, created_at`

type TransactionRepository struct {
	db *pgxpool.Pool
}

func NewTransactionRepository(db *pgxpool.Pool) *TransactionRepository {
	return &TransactionRepository{db: db}
}

var _ transaction.Repository = (*TransactionRepository)(nil)

// Create appends a ledger entry
func (r *TransactionRepository) Create(ctx context.Context, t *transaction.Transaction) error {
	query := `
		INSERT INTO transactions (
			customer_id, kind, amount, description, occurred_at, location,
			promotion_id, points_awarded, payment_method, reference_number, staff_id, notes
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id, created_at
	`

	err := r.db.QueryRow(
		ctx, query,
		t.CustomerID, t.Kind, t.Amount, t.Description, t.OccurredAt, t.Location,
		t.PromotionID, t.PointsAwarded, t.PaymentMethod, t.ReferenceNumber, t.StaffID, t.Notes,
	).Scan(&t.ID, &t.CreatedAt)

	if err != nil {
		return fmt.Errorf("failed to create transaction: %w", err)
	}

	return nil
}

// FindByID retrieves a transaction by ID
func (r *TransactionRepository) FindByID(ctx context.Context, id int64) (*transaction.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE id = $1`

	t, err := scanTransaction(r.db.QueryRow(ctx, query, id))
	if err != nil {
		return nil, err
	}
	return t, nil
}

// List retrieves transactions matching the filters
func (r *TransactionRepository) List(ctx context.Context, filters *transaction.ListFilters) ([]transaction.Transaction, error) {
	where := []string{"1=1"}
	args := []interface{}{}
	argPos := 1

	if filters.CustomerID != 0 {
		where = append(where, fmt.Sprintf("customer_id = $%d", argPos))
		args = append(args, filters.CustomerID)
		argPos++
	}
	if filters.Kind != "" {
		where = append(where, fmt.Sprintf("kind = $%d", argPos))
		args = append(args, filters.Kind)
		argPos++
	}
	if !filters.From.IsZero() {
		where = append(where, fmt.Sprintf("occurred_at >= $%d", argPos))
		args = append(args, filters.From)
		argPos++
	}
	if !filters.To.IsZero() {
		where = append(where, fmt.Sprintf("occurred_at < $%d", argPos))
		args = append(args, filters.To)
		argPos++
	}

	limit := filters.Limit
	if limit <= 0 {
		limit = 100
	}

	query := fmt.Sprintf(
		`SELECT %s FROM transactions WHERE %s ORDER BY occurred_at DESC LIMIT $%d`,
		transactionColumns, strings.Join(where, " AND "), argPos,
	)
	args = append(args, limit)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	defer rows.Close()

	var transactions []transaction.Transaction
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, *t)
	}

	return transactions, nil
}

// SummarizeByKind aggregates count and amount per kind over [start, end)
func (r *TransactionRepository) SummarizeByKind(ctx context.Context, start, end time.Time) ([]transaction.KindSummary, error) {
	query := `
		SELECT kind, COUNT(*), COALESCE(SUM(amount), 0)
		FROM transactions
		WHERE occurred_at >= $1 AND occurred_at < $2
		GROUP BY kind
		ORDER BY kind
	`

	rows, err := r.db.Query(ctx, query, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to summarize transactions: %w", err)
	}
	defer rows.Close()

	var summaries []transaction.KindSummary
	for rows.Next() {
		var s transaction.KindSummary
		if err := rows.Scan(&s.Kind, &s.Count, &s.Total); err != nil {
			return nil, fmt.Errorf("failed to scan summary: %w", err)
		}
		summaries = append(summaries, s)
	}

	return summaries, nil
}

func scanTransaction(row rowScanner) (*transaction.Transaction, error) {
	var t transaction.Transaction

	err := row.Scan(
		&t.ID, &t.CustomerID, &t.Kind, &t.Amount, &t.Description, &t.OccurredAt, &t.Location,
		&t.PromotionID, &t.PointsAwarded, &t.PaymentMethod, &t.ReferenceNumber,
		&t.StaffID, &t.Notes, &t.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, xerrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan transaction: %w", err)
	}

	return &t, nil
}
