// internal/domain/customer/validate.go
package customer

import (
	"errors"
	"regexp"
)

// Validation failures surfaced to callers with a specific reason.
var (
	ErrInvalidDocument   = errors.New("invalid document number for document type")
	ErrInvalidEmail      = errors.New("invalid email address")
	ErrInvalidPhone      = errors.New("invalid phone number")
	ErrDuplicateDocument = errors.New("a customer with this document already exists")
)

// ErrInsufficientBalance is returned when a debit would drive the
// monetary balance negative.
var ErrInsufficientBalance = errors.New("insufficient balance")

var (
	emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	// Accepts formats like +57 300 123 4567, 300-123-4567, 3001234567
	phonePattern = regexp.MustCompile(`^[+]?[0-9\s\-()]{7,15}$`)
	digitsOnly   = regexp.MustCompile(`^[0-9]+$`)
)

// ValidDocument reports whether number is well formed for the given
// document type. National and foreign-resident IDs are numeric only;
// passports are free-form but length-bounded.
func ValidDocument(number string, docType DocumentType) bool {
	switch docType {
	case DocumentTypeNationalID:
		return digitsOnly.MatchString(number) && len(number) >= 6 && len(number) <= 10
	case DocumentTypeForeignID:
		return digitsOnly.MatchString(number) && len(number) >= 6 && len(number) <= 12
	case DocumentTypePassport:
		return len(number) >= 6 && len(number) <= 12
	}
	return false
}

func ValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

func ValidPhone(phone string) bool {
	return phonePattern.MatchString(phone)
}
