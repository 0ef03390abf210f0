// internal/domain/customer/entity_test.go
package customer

import (
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFullName(t *testing.T) {
	c := &Customer{FirstName: "Maria", LastName: "Gomez"}
	assert.Equal(t, "Maria Gomez", c.FullName())

	c = &Customer{FirstName: "Cher"}
	assert.Equal(t, "Cher", c.FullName())
}

func TestAge(t *testing.T) {
	now := time.Date(2026, time.June, 15, 12, 0, 0, 0, time.UTC)

	c := &Customer{}
	_, ok := c.Age(now)
	assert.False(t, ok, "no birth date recorded")

	tests := []struct {
		name  string
		birth time.Time
		want  int
	}{
		{"birthday already passed", time.Date(1990, time.March, 1, 0, 0, 0, 0, time.UTC), 36},
		{"birthday later this year", time.Date(1990, time.December, 1, 0, 0, 0, 0, time.UTC), 35},
		{"birthday today", time.Date(1990, time.June, 15, 0, 0, 0, 0, time.UTC), 36},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &Customer{BirthDate: sql.NullTime{Time: tt.birth, Valid: true}}
			age, ok := c.Age(now)
			assert.True(t, ok)
			assert.Equal(t, tt.want, age)
		})
	}
}

func TestIsEligibleForPromotions(t *testing.T) {
	assert.True(t, (&Customer{IsActive: true, Tier: TierNew}).IsEligibleForPromotions())
	assert.False(t, (&Customer{IsActive: false, Tier: TierVIP}).IsEligibleForPromotions())
	assert.False(t, (&Customer{IsActive: true, Tier: TierInactive}).IsEligibleForPromotions())
}
