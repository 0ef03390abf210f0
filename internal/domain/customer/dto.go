// internal/domain/customer/dto.go
package customer

import "time"

type RegisterRequest struct {
	DocumentNumber string                 `json:"document_number" binding:"required,min=6,max=12"`
	DocumentType   DocumentType           `json:"document_type" binding:"required,oneof=CC CE PP"`
	FirstName      string                 `json:"first_name" binding:"required,min=2,max=100"`
	LastName       string                 `json:"last_name" binding:"required,min=2,max=100"`
	Email          string                 `json:"email" binding:"omitempty,max=255"`
	Phone          string                 `json:"phone" binding:"omitempty,max=20"`
	BirthDate      *time.Time             `json:"birth_date"`
	Address        string                 `json:"address" binding:"max=255"`
	City           string                 `json:"city" binding:"max=100"`
	Preferences    map[string]interface{} `json:"preferences"`
	Tags           []string               `json:"tags"`
	Notes          string                 `json:"notes"`
}

type UpdateRequest struct {
	FirstName   *string                `json:"first_name" binding:"omitempty,min=2,max=100"`
	LastName    *string                `json:"last_name" binding:"omitempty,min=2,max=100"`
	Email       *string                `json:"email" binding:"omitempty,max=255"`
	Phone       *string                `json:"phone" binding:"omitempty,max=20"`
	Address     *string                `json:"address" binding:"omitempty,max=255"`
	City        *string                `json:"city" binding:"omitempty,max=100"`
	Preferences map[string]interface{} `json:"preferences"`
	Tags        []string               `json:"tags"`
	Notes       *string                `json:"notes"`
}

type ListFilters struct {
	Tier     Tier   `form:"tier" binding:"omitempty,oneof=new regular frequent vip inactive"`
	IsActive *bool  `form:"is_active"`
	City     string `form:"city"`
	Search   string `form:"search"` // matches name, document, email
	Limit    int    `form:"limit" binding:"omitempty,min=1,max=1000"`
	Offset   int    `form:"offset" binding:"omitempty,min=0"`
}

type CheckInRequest struct {
	DocumentNumber string  `json:"document_number" binding:"required,min=6,max=12"`
	AmountSpent    float64 `json:"amount_spent" binding:"omitempty,min=0"`
}
