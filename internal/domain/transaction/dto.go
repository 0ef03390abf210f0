// internal/domain/transaction/dto.go
package transaction

import "time"

type ProcessRequest struct {
	CustomerID  int64   `json:"customer_id" binding:"required"`
	Kind        Kind    `json:"kind" binding:"required"`
	Amount      float64 `json:"amount" binding:"required"`
	Description string  `json:"description" binding:"max=500"`
	Location    string  `json:"location" binding:"max=100"`
	PromotionID *int64  `json:"promotion_id"`

	// PointsAwarded is accepted on the wire for compatibility with older
	// clients but always recomputed server-side; the supplied value is
	// discarded.
	PointsAwarded int64 `json:"points_awarded"`

	PaymentMethod   string `json:"payment_method" binding:"max=50"`
	ReferenceNumber string `json:"reference_number" binding:"max=100"`
	StaffID         *int64 `json:"staff_id"`
	Notes           string `json:"notes" binding:"max=1000"`
}

type ListFilters struct {
	CustomerID int64     `form:"customer_id"`
	Kind       Kind      `form:"kind"`
	From       time.Time `form:"from" time_format:"2006-01-02"`
	To         time.Time `form:"to" time_format:"2006-01-02"`
	Limit      int       `form:"limit" binding:"omitempty,min=1,max=1000"`
}
