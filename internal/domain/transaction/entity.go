// internal/domain/transaction/entity.go
package transaction

import (
	"database/sql"
	"math"
	"time"
)

type Kind string

const (
	KindDeposit             Kind = "deposit"
	KindGamble              Kind = "gamble"
	KindConsumption         Kind = "consumption"
	KindPromotionRedemption Kind = "promotion_redemption"
	KindWithdrawal          Kind = "withdrawal"
)

func (k Kind) Valid() bool {
	switch k {
	case KindDeposit, KindGamble, KindConsumption, KindPromotionRedemption, KindWithdrawal:
		return true
	}
	return false
}

// EarnsPoints reports whether the kind accrues loyalty points and counts
// as a visit.
func (k Kind) EarnsPoints() bool {
	return k == KindGamble || k == KindConsumption
}

// Transaction is an immutable ledger entry. Rows are created once and
// never updated.
type Transaction struct {
	ID         int64 `json:"id" db:"id"`
	CustomerID int64 `json:"customer_id" db:"customer_id"`
	Kind       Kind  `json:"kind" db:"kind"`

	Amount      float64   `json:"amount" db:"amount"`
	Description string    `json:"description" db:"description"`
	OccurredAt  time.Time `json:"occurred_at" db:"occurred_at"`
	Location    string    `json:"location" db:"location"` // table, machine, bar

	PromotionID   sql.NullInt64 `json:"promotion_id,omitempty" db:"promotion_id"`
	PointsAwarded int64         `json:"points_awarded" db:"points_awarded"`

	PaymentMethod   string         `json:"payment_method" db:"payment_method"`
	ReferenceNumber sql.NullString `json:"reference_number,omitempty" db:"reference_number"`
	StaffID         sql.NullInt64  `json:"staff_id,omitempty" db:"staff_id"`
	Notes           sql.NullString `json:"notes,omitempty" db:"notes"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// ComputePoints derives the point award from the amount and the
// configured rate. Only gamble and consumption entries earn points.
func (t *Transaction) ComputePoints(rate float64) int64 {
	if !t.Kind.EarnsPoints() {
		return 0
	}
	return int64(math.Floor(t.Amount * rate))
}

// KindSummary aggregates one transaction kind over a period.
type KindSummary struct {
	Kind  Kind    `json:"kind"`
	Count int64   `json:"count"`
	Total float64 `json:"total"`
}

// DailySummary aggregates all transactions of one calendar day.
type DailySummary struct {
	Date              string        `json:"date"`
	TotalTransactions int64         `json:"total_transactions"`
	TotalRevenue      float64       `json:"total_revenue"` // gamble + consumption only
	ByKind            []KindSummary `json:"by_kind"`
}
