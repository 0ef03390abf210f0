// internal/repository/postgres/promotion_repo.go
package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"casino-loyalty-service/internal/domain/promotion"
	xerrors "casino-loyalty-service/internal/pkg/errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const promotionColumns = `id, code, title, description, kind, value, starts_at, ends_at,
	       state, customer_id, max_uses, use_count, conditions, created_by,
	       created_at, updated_at`

type PromotionRepository struct {
	db *pgxpool.Pool
}

func NewPromotionRepository(db *pgxpool.Pool) *PromotionRepository {
	return &PromotionRepository{db: db}
}

var _ promotion.Repository = (*PromotionRepository)(nil)

// Create creates a new promotion
func (r *PromotionRepository) Create(ctx context.Context, p *promotion.Promotion) error {
	query := `
		INSERT INTO promotions (
			code, title, description, kind, value, starts_at, ends_at,
			state, customer_id, max_uses, use_count, conditions, created_by
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRow(
		ctx, query,
		p.Code, p.Title, p.Description, p.Kind, p.Value, p.StartsAt, p.EndsAt,
		p.State, p.CustomerID, p.MaxUses, p.UseCount, p.Conditions, p.CreatedBy,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)

	if err != nil {
		return fmt.Errorf("failed to create promotion: %w", err)
	}

	return nil
}

// FindByID retrieves a promotion by ID
func (r *PromotionRepository) FindByID(ctx context.Context, id int64) (*promotion.Promotion, error) {
	query := `SELECT ` + promotionColumns + ` FROM promotions WHERE id = $1`
	return scanPromotion(r.db.QueryRow(ctx, query, id))
}

// FindByCode retrieves a promotion by its unique code
func (r *PromotionRepository) FindByCode(ctx context.Context, code string) (*promotion.Promotion, error) {
	query := `SELECT ` + promotionColumns + ` FROM promotions WHERE code = $1`
	return scanPromotion(r.db.QueryRow(ctx, query, code))
}

// ListByCustomer retrieves promotions bound to a customer
func (r *PromotionRepository) ListByCustomer(ctx context.Context, customerID int64) ([]promotion.Promotion, error) {
	query := `SELECT ` + promotionColumns + ` FROM promotions WHERE customer_id = $1 ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, query, customerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list promotions: %w", err)
	}
	defer rows.Close()

	var promotions []promotion.Promotion
	for rows.Next() {
		p, err := scanPromotion(rows)
		if err != nil {
			return nil, err
		}
		promotions = append(promotions, *p)
	}

	return promotions, nil
}

// UpdateState transitions an active promotion to the given state. A
// zero row count on an existing promotion means it was already settled.
func (r *PromotionRepository) UpdateState(ctx context.Context, id int64, state promotion.State) error {
	result, err := r.db.Exec(
		ctx,
		`UPDATE promotions SET state = $1, updated_at = NOW() WHERE id = $2 AND state = 'active'`,
		state, id,
	)
	if err != nil {
		return fmt.Errorf("failed to update promotion state: %w", err)
	}
	if result.RowsAffected() == 0 {
		var exists bool
		err := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM promotions WHERE id = $1)`, id).Scan(&exists)
		if err != nil {
			return fmt.Errorf("failed to check promotion existence: %w", err)
		}
		if !exists {
			return xerrors.ErrNotFound
		}
		return xerrors.ErrConflict
	}
	return nil
}

// Redeem consumes one use with a conditional update: the guard and the
// increment are one statement, so a cap-1 promotion can never be
// redeemed twice by concurrent callers. The optional point credit runs
// in the same database transaction.
func (r *PromotionRepository) Redeem(ctx context.Context, id int64, now time.Time, credit *promotion.Credit) (*promotion.Promotion, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		UPDATE promotions
		SET use_count = use_count + 1,
		    state = CASE WHEN use_count + 1 >= max_uses THEN 'redeemed' ELSE state END,
		    updated_at = NOW()
		WHERE id = $1
		  AND state = 'active'
		  AND starts_at <= $2
		  AND ends_at > $2
		  AND use_count < max_uses
		RETURNING ` + promotionColumns

	p, err := scanPromotion(tx.QueryRow(ctx, query, id, now))
	if errors.Is(err, xerrors.ErrNotFound) {
		return nil, promotion.ErrNotRedeemable
	}
	if err != nil {
		return nil, err
	}

	if credit != nil && credit.Points != 0 {
		result, err := tx.Exec(
			ctx,
			`UPDATE customers SET points_balance = points_balance + $1, updated_at = NOW() WHERE id = $2`,
			credit.Points, credit.CustomerID,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to credit redemption points: %w", err)
		}
		if result.RowsAffected() == 0 {
			return nil, xerrors.ErrNotFound
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit redemption: %w", err)
	}

	return p, nil
}

func scanPromotion(row rowScanner) (*promotion.Promotion, error) {
	var p promotion.Promotion

	err := row.Scan(
		&p.ID, &p.Code, &p.Title, &p.Description, &p.Kind, &p.Value, &p.StartsAt, &p.EndsAt,
		&p.State, &p.CustomerID, &p.MaxUses, &p.UseCount, &p.Conditions, &p.CreatedBy,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, xerrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan promotion: %w", err)
	}

	return &p, nil
}
