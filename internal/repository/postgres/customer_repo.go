// internal/repository/postgres/customer_repo.go
package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"casino-loyalty-service/internal/domain/customer"
	xerrors "casino-loyalty-service/internal/pkg/errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const customerColumns = `id, document_number, document_type, first_name, last_name,
	       email, phone, birth_date, address, city, tier, registered_at,
	       last_visit_at, visit_count, lifetime_spend, balance, points_balance,
	       is_active, preferences, tags, notes, created_at, updated_at`

type CustomerRepository struct {
	db *pgxpool.Pool
}

func NewCustomerRepository(db *pgxpool.Pool) *CustomerRepository {
	return &CustomerRepository{db: db}
}

var _ customer.Repository = (*CustomerRepository)(nil)

// Create creates a new customer
func (r *CustomerRepository) Create(ctx context.Context, c *customer.Customer) error {
	query := `
		INSERT INTO customers (
			document_number, document_type, first_name, last_name, email, phone,
			birth_date, address, city, tier, registered_at, visit_count,
			lifetime_spend, balance, points_balance, is_active, preferences, tags, notes
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)
		RETURNING id, created_at, updated_at
	`

	preferencesJSON, err := marshalPreferences(c.Preferences)
	if err != nil {
		return err
	}

	err = r.db.QueryRow(
		ctx, query,
		c.DocumentNumber, c.DocumentType, c.FirstName, c.LastName, c.Email, c.Phone,
		c.BirthDate, c.Address, c.City, c.Tier, c.RegisteredAt, c.VisitCount,
		c.LifetimeSpend, c.Balance, c.PointsBalance, c.IsActive, preferencesJSON, c.Tags, c.Notes,
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)

	if err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			return customer.ErrDuplicateDocument
		}
		return fmt.Errorf("failed to create customer: %w", err)
	}

	return nil
}

// FindByID retrieves a customer by ID
func (r *CustomerRepository) FindByID(ctx context.Context, id int64) (*customer.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE id = $1`
	return r.scanOne(r.db.QueryRow(ctx, query, id))
}

// FindByDocument retrieves a customer by document number
func (r *CustomerRepository) FindByDocument(ctx context.Context, documentNumber string) (*customer.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE document_number = $1`
	return r.scanOne(r.db.QueryRow(ctx, query, documentNumber))
}

// ExistsByDocument checks whether any customer holds the given document number
func (r *CustomerRepository) ExistsByDocument(ctx context.Context, documentNumber string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(
		ctx,
		`SELECT EXISTS(SELECT 1 FROM customers WHERE document_number = $1)`,
		documentNumber,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check document existence: %w", err)
	}
	return exists, nil
}

// List retrieves customers matching the filters, plus the total count
func (r *CustomerRepository) List(ctx context.Context, filters *customer.ListFilters) ([]customer.Customer, int64, error) {
	where := []string{"1=1"}
	args := []interface{}{}
	argPos := 1

	if filters.Tier != "" {
		where = append(where, fmt.Sprintf("tier = $%d", argPos))
		args = append(args, filters.Tier)
		argPos++
	}
	if filters.IsActive != nil {
		where = append(where, fmt.Sprintf("is_active = $%d", argPos))
		args = append(args, *filters.IsActive)
		argPos++
	}
	if filters.City != "" {
		where = append(where, fmt.Sprintf("city ILIKE $%d", argPos))
		args = append(args, filters.City)
		argPos++
	}
	if filters.Search != "" {
		where = append(where, fmt.Sprintf(
			"(first_name ILIKE $%d OR last_name ILIKE $%d OR document_number ILIKE $%d OR email ILIKE $%d)",
			argPos, argPos, argPos, argPos))
		args = append(args, "%"+filters.Search+"%")
		argPos++
	}

	whereClause := strings.Join(where, " AND ")

	var total int64
	countQuery := `SELECT COUNT(*) FROM customers WHERE ` + whereClause
	if err := r.db.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count customers: %w", err)
	}

	limit := filters.Limit
	if limit <= 0 {
		limit = 100
	}

	query := fmt.Sprintf(
		`SELECT %s FROM customers WHERE %s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`,
		customerColumns, whereClause, argPos, argPos+1,
	)
	args = append(args, limit, filters.Offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list customers: %w", err)
	}
	defer rows.Close()

	var customers []customer.Customer
	for rows.Next() {
		c, err := scanCustomerRow(rows)
		if err != nil {
			return nil, 0, err
		}
		customers = append(customers, *c)
	}

	return customers, total, nil
}

// Update replaces the customer's descriptive fields. Counters are not
// touched here; they move only through the atomic increment methods.
func (r *CustomerRepository) Update(ctx context.Context, c *customer.Customer) error {
	query := `
		UPDATE customers
		SET first_name = $1, last_name = $2, email = $3, phone = $4,
		    birth_date = $5, address = $6, city = $7, preferences = $8,
		    tags = $9, notes = $10, updated_at = NOW()
		WHERE id = $11
	`

	preferencesJSON, err := marshalPreferences(c.Preferences)
	if err != nil {
		return err
	}

	result, err := r.db.Exec(
		ctx, query,
		c.FirstName, c.LastName, c.Email, c.Phone,
		c.BirthDate, c.Address, c.City, preferencesJSON,
		c.Tags, c.Notes, c.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update customer: %w", err)
	}
	if result.RowsAffected() == 0 {
		return xerrors.ErrNotFound
	}

	return nil
}

// SetActive toggles the soft-deactivation flag
func (r *CustomerRepository) SetActive(ctx context.Context, id int64, active bool) error {
	result, err := r.db.Exec(
		ctx,
		`UPDATE customers SET is_active = $1, updated_at = NOW() WHERE id = $2`,
		active, id,
	)
	if err != nil {
		return fmt.Errorf("failed to set active flag: %w", err)
	}
	if result.RowsAffected() == 0 {
		return xerrors.ErrNotFound
	}
	return nil
}

// ApplyVisit applies all visit counters in one atomic statement so that
// concurrent visits never lose an increment.
func (r *CustomerRepository) ApplyVisit(ctx context.Context, id int64, delta customer.VisitDelta) error {
	query := `
		UPDATE customers
		SET visit_count = visit_count + $1,
		    lifetime_spend = lifetime_spend + $2,
		    points_balance = points_balance + $3,
		    last_visit_at = $4,
		    updated_at = NOW()
		WHERE id = $5
	`

	result, err := r.db.Exec(ctx, query, delta.Visits, delta.Spend, delta.Points, delta.VisitedAt, id)
	if err != nil {
		return fmt.Errorf("failed to apply visit: %w", err)
	}
	if result.RowsAffected() == 0 {
		return xerrors.ErrNotFound
	}
	return nil
}

// AddPoints atomically credits loyalty points
func (r *CustomerRepository) AddPoints(ctx context.Context, id int64, points int64) error {
	result, err := r.db.Exec(
		ctx,
		`UPDATE customers SET points_balance = points_balance + $1, updated_at = NOW() WHERE id = $2`,
		points, id,
	)
	if err != nil {
		return fmt.Errorf("failed to add points: %w", err)
	}
	if result.RowsAffected() == 0 {
		return xerrors.ErrNotFound
	}
	return nil
}

// AddBalance atomically credits the monetary balance
func (r *CustomerRepository) AddBalance(ctx context.Context, id int64, amount float64) error {
	result, err := r.db.Exec(
		ctx,
		`UPDATE customers SET balance = balance + $1, updated_at = NOW() WHERE id = $2`,
		amount, id,
	)
	if err != nil {
		return fmt.Errorf("failed to add balance: %w", err)
	}
	if result.RowsAffected() == 0 {
		return xerrors.ErrNotFound
	}
	return nil
}

// DebitBalance debits the monetary balance, guarded so it never goes
// negative. A zero row count on an existing customer means the guard
// rejected the debit.
func (r *CustomerRepository) DebitBalance(ctx context.Context, id int64, amount float64) error {
	result, err := r.db.Exec(
		ctx,
		`UPDATE customers SET balance = balance - $1, updated_at = NOW() WHERE id = $2 AND balance >= $1`,
		amount, id,
	)
	if err != nil {
		return fmt.Errorf("failed to debit balance: %w", err)
	}
	if result.RowsAffected() == 0 {
		exists, err := r.existsByID(ctx, id)
		if err != nil {
			return err
		}
		if !exists {
			return xerrors.ErrNotFound
		}
		return customer.ErrInsufficientBalance
	}
	return nil
}

// UpdateTier transitions the tier with a compare-and-swap on the current
// value, so two concurrent recalculations cannot double-apply.
func (r *CustomerRepository) UpdateTier(ctx context.Context, id int64, from, to customer.Tier) (bool, error) {
	result, err := r.db.Exec(
		ctx,
		`UPDATE customers SET tier = $1, updated_at = NOW() WHERE id = $2 AND tier = $3`,
		to, id, from,
	)
	if err != nil {
		return false, fmt.Errorf("failed to update tier: %w", err)
	}
	return result.RowsAffected() > 0, nil
}

// GetStats retrieves customer statistics
func (r *CustomerRepository) GetStats(ctx context.Context) (*customer.CustomerStats, error) {
	query := `
		SELECT
			COUNT(*) AS total,
			COUNT(*) FILTER (WHERE is_active) AS active,
			COUNT(*) FILTER (WHERE tier = 'vip') AS vip,
			COUNT(*) FILTER (WHERE registered_at >= date_trunc('month', NOW())) AS new_this_month
		FROM customers
	`

	var stats customer.CustomerStats
	err := r.db.QueryRow(ctx, query).Scan(
		&stats.TotalCustomers, &stats.ActiveCustomers, &stats.VIPCustomers, &stats.NewThisMonth,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get customer stats: %w", err)
	}

	return &stats, nil
}

func (r *CustomerRepository) existsByID(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM customers WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check customer existence: %w", err)
	}
	return exists, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *CustomerRepository) scanOne(row pgx.Row) (*customer.Customer, error) {
	c, err := scanCustomerRow(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, xerrors.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

// scanCustomerRow maps a row to the entity by the fixed column list
// above; columns are always selected by name, never by table position.
func scanCustomerRow(row rowScanner) (*customer.Customer, error) {
	var c customer.Customer
	var preferencesJSON []byte

	err := row.Scan(
		&c.ID, &c.DocumentNumber, &c.DocumentType, &c.FirstName, &c.LastName,
		&c.Email, &c.Phone, &c.BirthDate, &c.Address, &c.City, &c.Tier, &c.RegisteredAt,
		&c.LastVisitAt, &c.VisitCount, &c.LifetimeSpend, &c.Balance, &c.PointsBalance,
		&c.IsActive, &preferencesJSON, &c.Tags, &c.Notes, &c.CreatedAt, &c.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan customer: %w", err)
	}

	if len(preferencesJSON) > 0 {
		if err := json.Unmarshal(preferencesJSON, &c.Preferences); err != nil {
			return nil, fmt.Errorf("failed to unmarshal preferences: %w", err)
		}
	}

	return &c, nil
}

func marshalPreferences(preferences map[string]interface{}) ([]byte, error) {
	if preferences == nil {
		return nil, nil
	}
	data, err := json.Marshal(preferences)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal preferences: %w", err)
	}
	return data, nil
}
