// internal/domain/customer/entity.go
package customer

import (
	"database/sql"
	"strings"
	"time"

	"github.com/lib/pq"
)

type DocumentType string

const (
	DocumentTypeNationalID DocumentType = "CC" // citizen ID card
	DocumentTypeForeignID  DocumentType = "CE" // foreign-resident ID card
	DocumentTypePassport   DocumentType = "PP"
)

type Tier string

const (
	TierNew      Tier = "new"
	TierRegular  Tier = "regular"
	TierFrequent Tier = "frequent"
	TierVIP      Tier = "vip"
	TierInactive Tier = "inactive"
)

type Customer struct {
	ID             int64        `json:"id" db:"id"`
	DocumentNumber string       `json:"document_number" db:"document_number"`
	DocumentType   DocumentType `json:"document_type" db:"document_type"`

	// Personal details
	FirstName string         `json:"first_name" db:"first_name"`
	LastName  string         `json:"last_name" db:"last_name"`
	Email     sql.NullString `json:"email,omitempty" db:"email"`
	Phone     sql.NullString `json:"phone,omitempty" db:"phone"`
	BirthDate sql.NullTime   `json:"birth_date,omitempty" db:"birth_date"`
	Address   sql.NullString `json:"address,omitempty" db:"address"`
	City      sql.NullString `json:"city,omitempty" db:"city"`

	// Loyalty state
	Tier          Tier         `json:"tier" db:"tier"`
	RegisteredAt  time.Time    `json:"registered_at" db:"registered_at"`
	LastVisitAt   sql.NullTime `json:"last_visit_at,omitempty" db:"last_visit_at"`
	VisitCount    int64        `json:"visit_count" db:"visit_count"`
	LifetimeSpend float64      `json:"lifetime_spend" db:"lifetime_spend"`
	Balance       float64      `json:"balance" db:"balance"`
	PointsBalance int64        `json:"points_balance" db:"points_balance"`

	// Status and extras
	IsActive    bool                   `json:"is_active" db:"is_active"`
	Preferences map[string]interface{} `json:"preferences,omitempty" db:"preferences"`
	Tags        pq.StringArray         `json:"tags,omitempty" db:"tags"`
	Notes       sql.NullString         `json:"notes,omitempty" db:"notes"`

	// Timestamps
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// FullName returns first and last name joined, trimmed.
func (c *Customer) FullName() string {
	return strings.TrimSpace(c.FirstName + " " + c.LastName)
}

// Age returns the customer's age at the given time. The second return
// value is false when no birth date is recorded.
func (c *Customer) Age(now time.Time) (int, bool) {
	if !c.BirthDate.Valid {
		return 0, false
	}
	birth := c.BirthDate.Time
	age := now.Year() - birth.Year()
	if now.Month() < birth.Month() || (now.Month() == birth.Month() && now.Day() < birth.Day()) {
		age--
	}
	return age, true
}

// IsEligibleForPromotions reports whether automatic promotions may be
// issued to this customer.
func (c *Customer) IsEligibleForPromotions() bool {
	return c.IsActive && c.Tier != TierInactive
}

type CustomerStats struct {
	TotalCustomers  int64 `json:"total_customers"`
	ActiveCustomers int64 `json:"active_customers"`
	VIPCustomers    int64 `json:"vip_customers"`
	NewThisMonth    int64 `json:"new_this_month"`
}
