// internal/service/transaction/transaction_service_test.go
package transaction

import (
	"context"
	"testing"
	"time"

	"casino-loyalty-service/internal/config"
	"casino-loyalty-service/internal/domain/customer"
	"casino-loyalty-service/internal/domain/transaction"
	xerrors "casino-loyalty-service/internal/pkg/errors"
	"casino-loyalty-service/internal/repository/memory"
	customersvc "casino-loyalty-service/internal/service/customer"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testLoyaltyConfig() config.LoyaltyConfig {
	return config.LoyaltyConfig{
		WelcomePoints:          100,
		PointsPerCurrencyUnit:  0.1,
		VIPSpendThreshold:      50000,
		FrequentVisitThreshold: 20,
		RegularVisitThreshold:  5,
	}
}

func newTestService(t *testing.T, cfg config.LoyaltyConfig) (*TransactionService, *memory.CustomerRepository) {
	t.Helper()
	customers := memory.NewCustomerRepository()
	promotions := memory.NewPromotionRepository(customers)
	custSvc := customersvc.NewCustomerService(customers, promotions, cfg, zap.NewNop())
	transactions := memory.NewTransactionRepository()
	return NewTransactionService(transactions, customers, custSvc, cfg, zap.NewNop()), customers
}

func seedCustomer(t *testing.T, customers *memory.CustomerRepository) *customer.Customer {
	t.Helper()
	c := &customer.Customer{
		DocumentNumber: "1234567",
		DocumentType:   customer.DocumentTypeNationalID,
		FirstName:      "Maria",
		LastName:       "Gomez",
		Tier:           customer.TierNew,
		RegisteredAt:   time.Now(),
		PointsBalance:  100,
		IsActive:       true,
	}
	require.NoError(t, customers.Create(context.Background(), c))
	return c
}

func TestProcessGambleRegistersVisit(t *testing.T) {
	svc, customers := newTestService(t, testLoyaltyConfig())
	ctx := context.Background()

	c := seedCustomer(t, customers)

	result, err := svc.Process(ctx, &transaction.ProcessRequest{
		CustomerID: c.ID,
		Kind:       transaction.KindGamble,
		Amount:     1000,
		Location:   "blackjack-3",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(100), result.PointsAwarded)
	assert.NotEmpty(t, result.ReferenceNumber.String)

	got, err := customers.FindByID(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), got.VisitCount)
	assert.Equal(t, float64(1000), got.LifetimeSpend)
	assert.Equal(t, int64(200), got.PointsBalance, "points credited exactly once")
	assert.Zero(t, got.Balance, "gambling spend never touches the monetary balance")
}

func TestProcessIgnoresClientSuppliedPoints(t *testing.T) {
	svc, customers := newTestService(t, testLoyaltyConfig())
	ctx := context.Background()

	c := seedCustomer(t, customers)

	result, err := svc.Process(ctx, &transaction.ProcessRequest{
		CustomerID:    c.ID,
		Kind:          transaction.KindConsumption,
		Amount:        200,
		PointsAwarded: 99999,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(20), result.PointsAwarded)

	got, err := customers.FindByID(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(120), got.PointsBalance)
}

func TestProcessDepositCreditsBalance(t *testing.T) {
	svc, customers := newTestService(t, testLoyaltyConfig())
	ctx := context.Background()

	c := seedCustomer(t, customers)

	result, err := svc.Process(ctx, &transaction.ProcessRequest{
		CustomerID: c.ID,
		Kind:       transaction.KindDeposit,
		Amount:     500,
	})
	require.NoError(t, err)
	assert.Zero(t, result.PointsAwarded)

	got, err := customers.FindByID(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, float64(500), got.Balance)
	assert.Zero(t, got.VisitCount, "deposits are not visits")
	assert.Equal(t, int64(100), got.PointsBalance, "deposits earn no points")
}

func TestProcessWithdrawalPolicyOff(t *testing.T) {
	svc, customers := newTestService(t, testLoyaltyConfig())
	ctx := context.Background()

	c := seedCustomer(t, customers)
	_, err := svc.Process(ctx, &transaction.ProcessRequest{
		CustomerID: c.ID,
		Kind:       transaction.KindDeposit,
		Amount:     500,
	})
	require.NoError(t, err)

	_, err = svc.Process(ctx, &transaction.ProcessRequest{
		CustomerID: c.ID,
		Kind:       transaction.KindWithdrawal,
		Amount:     200,
	})
	require.NoError(t, err)

	got, err := customers.FindByID(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, float64(500), got.Balance, "withdrawals are recorded but do not debit by default")
}

func TestProcessWithdrawalPolicyOn(t *testing.T) {
	cfg := testLoyaltyConfig()
	cfg.WithdrawalsDebitBalance = true
	svc, customers := newTestService(t, cfg)
	ctx := context.Background()

	c := seedCustomer(t, customers)
	_, err := svc.Process(ctx, &transaction.ProcessRequest{
		CustomerID: c.ID,
		Kind:       transaction.KindDeposit,
		Amount:     500,
	})
	require.NoError(t, err)

	_, err = svc.Process(ctx, &transaction.ProcessRequest{
		CustomerID: c.ID,
		Kind:       transaction.KindWithdrawal,
		Amount:     200,
	})
	require.NoError(t, err)

	got, err := customers.FindByID(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, float64(300), got.Balance)

	_, err = svc.Process(ctx, &transaction.ProcessRequest{
		CustomerID: c.ID,
		Kind:       transaction.KindWithdrawal,
		Amount:     1000,
	})
	assert.ErrorIs(t, err, customer.ErrInsufficientBalance)

	got, err = customers.FindByID(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, float64(300), got.Balance, "a failed debit leaves the balance untouched")
}

func TestProcessValidation(t *testing.T) {
	svc, customers := newTestService(t, testLoyaltyConfig())
	ctx := context.Background()

	c := seedCustomer(t, customers)

	_, err := svc.Process(ctx, &transaction.ProcessRequest{
		CustomerID: c.ID,
		Kind:       transaction.Kind("refund"),
		Amount:     10,
	})
	assert.ErrorIs(t, err, xerrors.ErrInvalidInput)

	_, err = svc.Process(ctx, &transaction.ProcessRequest{
		CustomerID: c.ID,
		Kind:       transaction.KindGamble,
		Amount:     0,
	})
	assert.ErrorIs(t, err, xerrors.ErrInvalidInput)

	_, err = svc.Process(ctx, &transaction.ProcessRequest{
		CustomerID: 9999,
		Kind:       transaction.KindGamble,
		Amount:     10,
	})
	assert.ErrorIs(t, err, xerrors.ErrNotFound)
}

func TestProcessGamblePromotesToVIP(t *testing.T) {
	svc, customers := newTestService(t, testLoyaltyConfig())
	ctx := context.Background()

	c := seedCustomer(t, customers)

	_, err := svc.Process(ctx, &transaction.ProcessRequest{
		CustomerID: c.ID,
		Kind:       transaction.KindGamble,
		Amount:     50000,
	})
	require.NoError(t, err)

	got, err := customers.FindByID(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, customer.TierVIP, got.Tier)
}

func TestDailySummary(t *testing.T) {
	svc, customers := newTestService(t, testLoyaltyConfig())
	ctx := context.Background()

	c := seedCustomer(t, customers)

	for _, req := range []*transaction.ProcessRequest{
		{CustomerID: c.ID, Kind: transaction.KindGamble, Amount: 1000},
		{CustomerID: c.ID, Kind: transaction.KindConsumption, Amount: 200},
		{CustomerID: c.ID, Kind: transaction.KindDeposit, Amount: 500},
	} {
		_, err := svc.Process(ctx, req)
		require.NoError(t, err)
	}

	summary, err := svc.DailySummary(ctx, time.Now())
	require.NoError(t, err)

	assert.Equal(t, time.Now().Format("2006-01-02"), summary.Date)
	assert.Equal(t, int64(3), summary.TotalTransactions)
	assert.Equal(t, float64(1200), summary.TotalRevenue, "revenue counts gambling and consumption only")

	byKind := make(map[transaction.Kind]transaction.KindSummary)
	for _, k := range summary.ByKind {
		byKind[k.Kind] = k
	}
	assert.Equal(t, int64(1), byKind[transaction.KindGamble].Count)
	assert.Equal(t, float64(500), byKind[transaction.KindDeposit].Total)
}

func TestListByCustomerAndKind(t *testing.T) {
	svc, customers := newTestService(t, testLoyaltyConfig())
	ctx := context.Background()

	c := seedCustomer(t, customers)

	for _, req := range []*transaction.ProcessRequest{
		{CustomerID: c.ID, Kind: transaction.KindGamble, Amount: 100},
		{CustomerID: c.ID, Kind: transaction.KindGamble, Amount: 300},
		{CustomerID: c.ID, Kind: transaction.KindDeposit, Amount: 500},
	} {
		_, err := svc.Process(ctx, req)
		require.NoError(t, err)
	}

	all, err := svc.List(ctx, &transaction.ListFilters{CustomerID: c.ID})
	require.NoError(t, err)
	assert.Len(t, all, 3)

	gambles, err := svc.List(ctx, &transaction.ListFilters{CustomerID: c.ID, Kind: transaction.KindGamble})
	require.NoError(t, err)
	assert.Len(t, gambles, 2)
}
