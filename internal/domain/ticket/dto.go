// internal/domain/ticket/dto.go
package ticket

type CreateRequest struct {
	CustomerID  int64    `json:"customer_id" binding:"required"`
	Kind        Kind     `json:"kind" binding:"required"`
	Priority    Priority `json:"priority" binding:"omitempty,oneof=low medium high critical"`
	Subject     string   `json:"subject" binding:"required,min=2,max=200"`
	Description string   `json:"description" binding:"required,max=2000"`
	Category    string   `json:"category" binding:"max=100"`
}

type ResolveRequest struct {
	Resolution string `json:"resolution" binding:"required,max=2000"`
	ResolvedBy string `json:"resolved_by" binding:"required,max=100"`
}
