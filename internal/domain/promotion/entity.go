// internal/domain/promotion/entity.go
package promotion

import (
	"database/sql"
	"errors"
	"time"
)

type Kind string

const (
	KindDiscount          Kind = "discount"
	KindPointsBonus       Kind = "points_bonus"
	KindFreeDrink         Kind = "free_drink"
	KindFreeEntry         Kind = "free_entry"
	KindCashback          Kind = "cashback"
	KindSpecialTournament Kind = "special_tournament"
)

func (k Kind) Valid() bool {
	switch k {
	case KindDiscount, KindPointsBonus, KindFreeDrink, KindFreeEntry, KindCashback, KindSpecialTournament:
		return true
	}
	return false
}

type State string

const (
	StateActive    State = "active"
	StateRedeemed  State = "redeemed"
	StateExpired   State = "expired"
	StateCancelled State = "cancelled"
)

// Redemption failures reported to callers with the specific reason.
var (
	ErrInvalidCode   = errors.New("promotion code is not valid")
	ErrNotRedeemable = errors.New("promotion cannot be redeemed")
	ErrWrongCustomer = errors.New("promotion is not available for this customer")
)

type Promotion struct {
	ID          int64  `json:"id" db:"id"`
	Code        string `json:"code" db:"code"`
	Title       string `json:"title" db:"title"`
	Description string `json:"description" db:"description"`
	Kind        Kind   `json:"kind" db:"kind"`

	// Value is interpreted per kind: percentage for discounts, point
	// count for bonuses, unit count for free items.
	Value float64 `json:"value" db:"value"`

	// Validity window, half-open: [StartsAt, EndsAt)
	StartsAt time.Time `json:"starts_at" db:"starts_at"`
	EndsAt   time.Time `json:"ends_at" db:"ends_at"`

	State      State         `json:"state" db:"state"`
	CustomerID sql.NullInt64 `json:"customer_id,omitempty" db:"customer_id"` // null = any customer
	MaxUses    int           `json:"max_uses" db:"max_uses"`
	UseCount   int           `json:"use_count" db:"use_count"`

	Conditions sql.NullString `json:"conditions,omitempty" db:"conditions"`
	CreatedBy  sql.NullString `json:"created_by,omitempty" db:"created_by"`
	CreatedAt  time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at" db:"updated_at"`
}

// IsWithinValidityWindow reports whether now falls inside [StartsAt, EndsAt).
func (p *Promotion) IsWithinValidityWindow(now time.Time) bool {
	return !now.Before(p.StartsAt) && now.Before(p.EndsAt)
}

// IsRedeemable reports whether one more use can be consumed at the given time.
func (p *Promotion) IsRedeemable(now time.Time) bool {
	return p.State == StateActive && p.IsWithinValidityWindow(now) && p.UseCount < p.MaxUses
}

// IsBoundToOther reports whether the promotion is restricted to a customer
// other than the given one.
func (p *Promotion) IsBoundToOther(customerID int64) bool {
	return p.CustomerID.Valid && p.CustomerID.Int64 != customerID
}

// Redeem consumes one use. It returns false without mutation when the
// promotion is not redeemable; at the usage cap the state flips to redeemed.
func (p *Promotion) Redeem(now time.Time) bool {
	if !p.IsRedeemable(now) {
		return false
	}
	p.UseCount++
	if p.UseCount >= p.MaxUses {
		p.State = StateRedeemed
	}
	return true
}
