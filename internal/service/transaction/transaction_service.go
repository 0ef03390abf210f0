// internal/service/transaction/transaction_service.go
package transaction

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"casino-loyalty-service/internal/config"
	"casino-loyalty-service/internal/domain/customer"
	"casino-loyalty-service/internal/domain/transaction"
	xerrors "casino-loyalty-service/internal/pkg/errors"
	customersvc "casino-loyalty-service/internal/service/customer"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type TransactionService struct {
	transactions transaction.Repository
	customers    customer.Repository
	customerSvc  *customersvc.CustomerService
	cfg          config.LoyaltyConfig
	logger       *zap.Logger
}

func NewTransactionService(
	transactions transaction.Repository,
	customers customer.Repository,
	customerSvc *customersvc.CustomerService,
	cfg config.LoyaltyConfig,
	logger *zap.Logger,
) *TransactionService {
	return &TransactionService{
		transactions: transactions,
		customers:    customers,
		customerSvc:  customerSvc,
		cfg:          cfg,
		logger:       logger,
	}
}

// Process validates and records a transaction, then applies its side
// effects: gamble and consumption entries register a visit (which
// credits the points exactly once), deposits credit the monetary
// balance, withdrawals debit it only when the configured policy says so.
func (s *TransactionService) Process(ctx context.Context, req *transaction.ProcessRequest) (*transaction.Transaction, error) {
	if !req.Kind.Valid() {
		return nil, xerrors.ErrInvalidInput
	}
	if req.Amount == 0 {
		return nil, fmt.Errorf("%w: amount must be nonzero", xerrors.ErrInvalidInput)
	}

	if _, err := s.customers.FindByID(ctx, req.CustomerID); err != nil {
		return nil, err
	}

	t := &transaction.Transaction{
		CustomerID:    req.CustomerID,
		Kind:          req.Kind,
		Amount:        req.Amount,
		Description:   req.Description,
		OccurredAt:    time.Now(),
		Location:      req.Location,
		PaymentMethod: req.PaymentMethod,
		Notes:         sql.NullString{String: req.Notes, Valid: req.Notes != ""},
	}
	if req.PromotionID != nil {
		t.PromotionID = sql.NullInt64{Int64: *req.PromotionID, Valid: true}
	}
	if req.StaffID != nil {
		t.StaffID = sql.NullInt64{Int64: *req.StaffID, Valid: true}
	}

	referenceNumber := req.ReferenceNumber
	if referenceNumber == "" {
		referenceNumber = uuid.NewString()
	}
	t.ReferenceNumber = sql.NullString{String: referenceNumber, Valid: true}

	// Points are always derived server-side. Whatever the client sent in
	// req.PointsAwarded is discarded.
	t.PointsAwarded = t.ComputePoints(s.cfg.PointsPerCurrencyUnit)

	if err := s.transactions.Create(ctx, t); err != nil {
		s.logger.Error("failed to create transaction", zap.Error(err))
		return nil, err
	}

	switch {
	case t.Kind.EarnsPoints():
		// The visit registration is the single crediting path: it adds
		// the visit, the spend and the points in one atomic update. The
		// ledger entry above records the award but does not credit it
		// again.
		if err := s.customerSvc.RegisterVisit(ctx, t.CustomerID, t.Amount); err != nil {
			return nil, fmt.Errorf("transaction %d recorded but visit registration failed: %w", t.ID, err)
		}

	case t.Kind == transaction.KindDeposit:
		if err := s.customers.AddBalance(ctx, t.CustomerID, t.Amount); err != nil {
			return nil, fmt.Errorf("transaction %d recorded but balance credit failed: %w", t.ID, err)
		}

	case t.Kind == transaction.KindWithdrawal && s.cfg.WithdrawalsDebitBalance:
		if err := s.customers.DebitBalance(ctx, t.CustomerID, t.Amount); err != nil {
			return nil, fmt.Errorf("transaction %d recorded but balance debit failed: %w", t.ID, err)
		}
	}

	s.logger.Info("transaction processed",
		zap.Int64("transaction_id", t.ID),
		zap.Int64("customer_id", t.CustomerID),
		zap.String("kind", string(t.Kind)),
		zap.Float64("amount", t.Amount),
		zap.Int64("points_awarded", t.PointsAwarded),
	)

	return t, nil
}

// Get retrieves a transaction by ID
func (s *TransactionService) Get(ctx context.Context, id int64) (*transaction.Transaction, error) {
	return s.transactions.FindByID(ctx, id)
}

// List retrieves transactions matching the filters
func (s *TransactionService) List(ctx context.Context, filters *transaction.ListFilters) ([]transaction.Transaction, error) {
	return s.transactions.List(ctx, filters)
}

// DailySummary aggregates the given calendar day's transactions by
// kind. Revenue counts gamble and consumption entries only.
func (s *TransactionService) DailySummary(ctx context.Context, date time.Time) (*transaction.DailySummary, error) {
	start := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	end := start.AddDate(0, 0, 1)

	byKind, err := s.transactions.SummarizeByKind(ctx, start, end)
	if err != nil {
		return nil, err
	}

	summary := &transaction.DailySummary{
		Date:   start.Format("2006-01-02"),
		ByKind: byKind,
	}
	for _, k := range byKind {
		summary.TotalTransactions += k.Count
		if k.Kind.EarnsPoints() {
			summary.TotalRevenue += k.Total
		}
	}

	return summary, nil
}
