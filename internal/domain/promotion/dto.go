// internal/domain/promotion/dto.go
package promotion

import "time"

type CreateRequest struct {
	Code        string    `json:"code" binding:"omitempty,min=4,max=32"`
	Title       string    `json:"title" binding:"required,min=2,max=200"`
	Description string    `json:"description" binding:"max=1000"`
	Kind        Kind      `json:"kind" binding:"required"`
	Value       float64   `json:"value" binding:"omitempty,min=0"`
	StartsAt    time.Time `json:"starts_at" binding:"required"`
	EndsAt      time.Time `json:"ends_at" binding:"required"`
	CustomerID  *int64    `json:"customer_id"`
	MaxUses     int       `json:"max_uses" binding:"omitempty,min=1"`
	Conditions  string    `json:"conditions" binding:"max=1000"`
	CreatedBy   string    `json:"created_by" binding:"max=100"`
}

type RedeemRequest struct {
	Code       string `json:"code" binding:"required"`
	CustomerID int64  `json:"customer_id" binding:"required"`
}

// RedemptionResult describes the benefit granted by a successful
// redemption. Point bonuses are settled by the engine; every other kind
// is settled externally at the point of sale.
type RedemptionResult struct {
	Kind        Kind    `json:"kind"`
	Value       float64 `json:"value"`
	Description string  `json:"description"`
	PointsAdded int64   `json:"points_added,omitempty"`
}
