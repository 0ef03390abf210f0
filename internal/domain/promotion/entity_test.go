// internal/domain/promotion/entity_test.go
package promotion

import (
	"database/sql"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func activePromotion(maxUses int) *Promotion {
	now := time.Now()
	return &Promotion{
		Code:     NewCode(),
		Kind:     KindDiscount,
		State:    StateActive,
		StartsAt: now.Add(-time.Hour),
		EndsAt:   now.Add(time.Hour),
		MaxUses:  maxUses,
	}
}

func TestValidityWindowBoundaries(t *testing.T) {
	start := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, time.February, 1, 0, 0, 0, 0, time.UTC)
	p := &Promotion{StartsAt: start, EndsAt: end}

	assert.True(t, p.IsWithinValidityWindow(start), "start instant is inside")
	assert.True(t, p.IsWithinValidityWindow(end.Add(-time.Second)))
	assert.False(t, p.IsWithinValidityWindow(end), "end instant is outside")
	assert.False(t, p.IsWithinValidityWindow(start.Add(-time.Second)))
}

func TestIsRedeemable(t *testing.T) {
	now := time.Now()

	p := activePromotion(1)
	assert.True(t, p.IsRedeemable(now))

	p = activePromotion(1)
	p.State = StateCancelled
	assert.False(t, p.IsRedeemable(now))

	p = activePromotion(1)
	p.UseCount = 1
	assert.False(t, p.IsRedeemable(now), "usage cap reached")

	p = activePromotion(1)
	p.StartsAt = now.Add(time.Hour)
	p.EndsAt = now.Add(2 * time.Hour)
	assert.False(t, p.IsRedeemable(now), "not started yet")
}

func TestRedeemFlipsStateAtCap(t *testing.T) {
	now := time.Now()
	p := activePromotion(2)

	assert.True(t, p.Redeem(now))
	assert.Equal(t, 1, p.UseCount)
	assert.Equal(t, StateActive, p.State, "uses remain")

	assert.True(t, p.Redeem(now))
	assert.Equal(t, 2, p.UseCount)
	assert.Equal(t, StateRedeemed, p.State, "cap reached")

	assert.False(t, p.Redeem(now), "no uses left")
	assert.Equal(t, 2, p.UseCount, "failed redemption must not mutate")
}

func TestIsBoundToOther(t *testing.T) {
	unbound := &Promotion{}
	assert.False(t, unbound.IsBoundToOther(7), "unbound promotions serve any customer")

	bound := &Promotion{CustomerID: sql.NullInt64{Int64: 42, Valid: true}}
	assert.False(t, bound.IsBoundToOther(42))
	assert.True(t, bound.IsBoundToOther(7))
}

func TestNewCode(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		code := NewCode()
		assert.True(t, strings.HasPrefix(code, "PR"))
		assert.Len(t, code, 12)
		assert.False(t, seen[code], "codes must not repeat")
		seen[code] = true
	}
}
