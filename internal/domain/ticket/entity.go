// internal/domain/ticket/entity.go
package ticket

import (
	"database/sql"
	"time"
)

type Status string

const (
	StatusOpen       Status = "open"
	StatusInProgress Status = "in_progress"
	StatusResolved   Status = "resolved"
	StatusClosed     Status = "closed"
	StatusEscalated  Status = "escalated"
)

type Kind string

const (
	KindComplaint  Kind = "complaint"
	KindSuggestion Kind = "suggestion"
	KindInquiry    Kind = "inquiry"
	KindClaim      Kind = "claim"
	KindTechnical  Kind = "technical_support"
)

type Priority string

const (
	PriorityLow      Priority = "low"
	PriorityMedium   Priority = "medium"
	PriorityHigh     Priority = "high"
	PriorityCritical Priority = "critical"
)

type Ticket struct {
	ID         int64    `json:"id" db:"id"`
	Number     string   `json:"number" db:"number"`
	CustomerID int64    `json:"customer_id" db:"customer_id"`
	Kind       Kind     `json:"kind" db:"kind"`
	Status     Status   `json:"status" db:"status"`
	Priority   Priority `json:"priority" db:"priority"`

	Subject     string `json:"subject" db:"subject"`
	Description string `json:"description" db:"description"`
	Category    string `json:"category" db:"category"`

	AssignedTo sql.NullString `json:"assigned_to,omitempty" db:"assigned_to"`
	Resolution sql.NullString `json:"resolution,omitempty" db:"resolution"`
	ResolvedAt sql.NullTime   `json:"resolved_at,omitempty" db:"resolved_at"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

func (t *Ticket) IsOpen() bool {
	return t.Status == StatusOpen || t.Status == StatusInProgress
}

// Resolve marks the ticket resolved at the given time.
func (t *Ticket) Resolve(resolution, user string, now time.Time) {
	t.Status = StatusResolved
	t.Resolution = sql.NullString{String: resolution, Valid: resolution != ""}
	t.AssignedTo = sql.NullString{String: user, Valid: user != ""}
	t.ResolvedAt = sql.NullTime{Time: now, Valid: true}
	t.UpdatedAt = now
}

type SupportMetrics struct {
	OpenTickets     int64 `json:"open_tickets"`
	CriticalTickets int64 `json:"critical_tickets"`
}
