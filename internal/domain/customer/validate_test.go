// internal/domain/customer/validate_test.go
package customer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidDocument(t *testing.T) {
	tests := []struct {
		name    string
		number  string
		docType DocumentType
		want    bool
	}{
		{"national ID ok", "1234567890", DocumentTypeNationalID, true},
		{"national ID minimum length", "123456", DocumentTypeNationalID, true},
		{"national ID too short", "12345", DocumentTypeNationalID, false},
		{"national ID too long", "12345678901", DocumentTypeNationalID, false},
		{"national ID with letters", "12345A", DocumentTypeNationalID, false},
		{"foreign ID ok", "123456789012", DocumentTypeForeignID, true},
		{"foreign ID too long", "1234567890123", DocumentTypeForeignID, false},
		{"foreign ID with letters", "ABC123", DocumentTypeForeignID, false},
		{"passport alphanumeric ok", "AB123456", DocumentTypePassport, true},
		{"passport too short", "AB123", DocumentTypePassport, false},
		{"passport too long", "AB12345678901", DocumentTypePassport, false},
		{"unknown document type", "1234567890", DocumentType("XX"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidDocument(tt.number, tt.docType))
		})
	}
}

func TestValidEmail(t *testing.T) {
	assert.True(t, ValidEmail("maria.gomez@example.com"))
	assert.True(t, ValidEmail("a+b@sub.domain.co"))
	assert.False(t, ValidEmail("not-an-email"))
	assert.False(t, ValidEmail("missing@tld"))
	assert.False(t, ValidEmail("@example.com"))
}

func TestValidPhone(t *testing.T) {
	assert.True(t, ValidPhone("+57 300 123 4567"))
	assert.True(t, ValidPhone("300-123-4567"))
	assert.True(t, ValidPhone("3001234567"))
	assert.False(t, ValidPhone("12345"))
	assert.False(t, ValidPhone("phone"))
}
