// internal/repository/memory/customer_repo_test.go
package memory

import (
	"context"
	"sync"
	"testing"
	"time"

	"casino-loyalty-service/internal/domain/customer"
	xerrors "casino-loyalty-service/internal/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedRepo(t *testing.T) (*CustomerRepository, *customer.Customer) {
	t.Helper()
	repo := NewCustomerRepository()
	c := &customer.Customer{
		DocumentNumber: "1234567",
		DocumentType:   customer.DocumentTypeNationalID,
		FirstName:      "Maria",
		LastName:       "Gomez",
		Tier:           customer.TierNew,
		RegisteredAt:   time.Now(),
		IsActive:       true,
	}
	require.NoError(t, repo.Create(context.Background(), c))
	return repo, c
}

func TestCreateRejectsDuplicateDocument(t *testing.T) {
	repo, _ := seedRepo(t)

	err := repo.Create(context.Background(), &customer.Customer{
		DocumentNumber: "1234567",
		DocumentType:   customer.DocumentTypeNationalID,
	})
	assert.ErrorIs(t, err, customer.ErrDuplicateDocument)
}

func TestApplyVisitConcurrent(t *testing.T) {
	repo, c := seedRepo(t)
	ctx := context.Background()

	const workers = 50
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = repo.ApplyVisit(ctx, c.ID, customer.VisitDelta{
				Visits:    1,
				Spend:     10,
				Points:    1,
				VisitedAt: time.Now(),
			})
		}()
	}
	wg.Wait()

	got, err := repo.FindByID(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(workers), got.VisitCount)
	assert.Equal(t, float64(workers*10), got.LifetimeSpend)
	assert.Equal(t, int64(workers), got.PointsBalance)
}

func TestDebitBalanceGuard(t *testing.T) {
	repo, c := seedRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.AddBalance(ctx, c.ID, 100))

	assert.ErrorIs(t, repo.DebitBalance(ctx, c.ID, 150), customer.ErrInsufficientBalance)
	require.NoError(t, repo.DebitBalance(ctx, c.ID, 100))

	got, err := repo.FindByID(ctx, c.ID)
	require.NoError(t, err)
	assert.Zero(t, got.Balance)

	assert.ErrorIs(t, repo.DebitBalance(ctx, 9999, 1), xerrors.ErrNotFound)
}

func TestUpdateTierCompareAndSwap(t *testing.T) {
	repo, c := seedRepo(t)
	ctx := context.Background()

	changed, err := repo.UpdateTier(ctx, c.ID, customer.TierNew, customer.TierVIP)
	require.NoError(t, err)
	assert.True(t, changed)

	changed, err = repo.UpdateTier(ctx, c.ID, customer.TierNew, customer.TierRegular)
	require.NoError(t, err)
	assert.False(t, changed, "stale expected tier loses the swap")

	got, err := repo.FindByID(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, customer.TierVIP, got.Tier)
}

func TestListFilters(t *testing.T) {
	repo, _ := seedRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &customer.Customer{
		DocumentNumber: "7654321",
		DocumentType:   customer.DocumentTypeNationalID,
		FirstName:      "Carlos",
		LastName:       "Ruiz",
		Tier:           customer.TierVIP,
		RegisteredAt:   time.Now(),
		IsActive:       true,
	}))

	vips, total, err := repo.List(ctx, &customer.ListFilters{Tier: customer.TierVIP})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, vips, 1)
	assert.Equal(t, "Carlos", vips[0].FirstName)

	found, total, err := repo.List(ctx, &customer.ListFilters{Search: "gomez"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, found, 1)
	assert.Equal(t, "Maria", found[0].FirstName)
}
