// internal/service/promotion/promotion_service.go
package promotion

import (
	"context"
	"database/sql"
	"errors"
	"math"
	"time"

	"casino-loyalty-service/internal/domain/customer"
	"casino-loyalty-service/internal/domain/promotion"
	xerrors "casino-loyalty-service/internal/pkg/errors"

	"go.uber.org/zap"
)

type PromotionService struct {
	promotions promotion.Repository
	customers  customer.Repository
	logger     *zap.Logger
}

func NewPromotionService(
	promotions promotion.Repository,
	customers customer.Repository,
	logger *zap.Logger,
) *PromotionService {
	return &PromotionService{
		promotions: promotions,
		customers:  customers,
		logger:     logger,
	}
}

// Create persists a promotion from caller-supplied fields. Window
// ordering and field lengths are the HTTP layer's concern; only type
// well-formedness is enforced here.
func (s *PromotionService) Create(ctx context.Context, req *promotion.CreateRequest) (*promotion.Promotion, error) {
	if !req.Kind.Valid() {
		return nil, xerrors.ErrInvalidInput
	}

	code := req.Code
	if code == "" {
		code = promotion.NewCode()
	}

	maxUses := req.MaxUses
	if maxUses <= 0 {
		maxUses = 1
	}

	createdBy := req.CreatedBy
	if createdBy == "" {
		createdBy = "ADMIN"
	}

	p := &promotion.Promotion{
		Code:        code,
		Title:       req.Title,
		Description: req.Description,
		Kind:        req.Kind,
		Value:       req.Value,
		StartsAt:    req.StartsAt,
		EndsAt:      req.EndsAt,
		State:       promotion.StateActive,
		MaxUses:     maxUses,
		Conditions:  sql.NullString{String: req.Conditions, Valid: req.Conditions != ""},
		CreatedBy:   sql.NullString{String: createdBy, Valid: true},
	}
	if req.CustomerID != nil {
		p.CustomerID = sql.NullInt64{Int64: *req.CustomerID, Valid: true}
	}

	if err := s.promotions.Create(ctx, p); err != nil {
		s.logger.Error("failed to create promotion", zap.Error(err))
		return nil, err
	}

	s.logger.Info("promotion created",
		zap.Int64("promotion_id", p.ID),
		zap.String("code", p.Code),
		zap.String("kind", string(p.Kind)),
	)

	return p, nil
}

// Redeem consumes one use of the promotion identified by code on behalf
// of the given customer, and applies its benefit. Point bonuses are
// credited to the customer inside the same storage transaction as the
// use-count increment; every other kind returns a payload for the
// point of sale to settle.
func (s *PromotionService) Redeem(ctx context.Context, code string, customerID int64) (*promotion.RedemptionResult, error) {
	now := time.Now()

	p, err := s.promotions.FindByCode(ctx, code)
	if errors.Is(err, xerrors.ErrNotFound) {
		return nil, promotion.ErrInvalidCode
	}
	if err != nil {
		return nil, err
	}

	if s.expireIfPastWindow(ctx, p, now) {
		return nil, promotion.ErrNotRedeemable
	}

	if !p.IsRedeemable(now) {
		return nil, promotion.ErrNotRedeemable
	}
	if p.IsBoundToOther(customerID) {
		return nil, promotion.ErrWrongCustomer
	}

	var credit *promotion.Credit
	var pointsAdded int64
	if p.Kind == promotion.KindPointsBonus {
		if _, err := s.customers.FindByID(ctx, customerID); err != nil {
			return nil, err
		}
		pointsAdded = int64(math.Floor(p.Value))
		credit = &promotion.Credit{CustomerID: customerID, Points: pointsAdded}
	}

	redeemed, err := s.promotions.Redeem(ctx, p.ID, now, credit)
	if err != nil {
		return nil, err
	}

	s.logger.Info("promotion redeemed",
		zap.String("code", code),
		zap.Int64("customer_id", customerID),
		zap.Int("use_count", redeemed.UseCount),
		zap.Int("max_uses", redeemed.MaxUses),
	)

	return &promotion.RedemptionResult{
		Kind:        redeemed.Kind,
		Value:       redeemed.Value,
		Description: redeemed.Description,
		PointsAdded: pointsAdded,
	}, nil
}

// GetByCode retrieves a promotion by its unique code. An active
// promotion past its window is reported (and persisted) as expired.
func (s *PromotionService) GetByCode(ctx context.Context, code string) (*promotion.Promotion, error) {
	p, err := s.promotions.FindByCode(ctx, code)
	if errors.Is(err, xerrors.ErrNotFound) {
		return nil, promotion.ErrInvalidCode
	}
	if err != nil {
		return nil, err
	}

	s.expireIfPastWindow(ctx, p, time.Now())
	return p, nil
}

// expireIfPastWindow flips an active promotion past its end to expired.
// Expiry is detected on read; there is no background sweep. Reports
// whether the promotion is expired.
func (s *PromotionService) expireIfPastWindow(ctx context.Context, p *promotion.Promotion, now time.Time) bool {
	if p.State != promotion.StateActive || now.Before(p.EndsAt) {
		return false
	}

	if err := s.promotions.UpdateState(ctx, p.ID, promotion.StateExpired); err != nil {
		s.logger.Warn("failed to mark promotion expired",
			zap.Int64("promotion_id", p.ID), zap.Error(err))
	}
	p.State = promotion.StateExpired
	return true
}

// ListByCustomer retrieves promotions bound to a customer
func (s *PromotionService) ListByCustomer(ctx context.Context, customerID int64) ([]promotion.Promotion, error) {
	return s.promotions.ListByCustomer(ctx, customerID)
}

// Cancel marks a promotion cancelled; cancelled promotions can never be
// redeemed again.
func (s *PromotionService) Cancel(ctx context.Context, id int64) error {
	if err := s.promotions.UpdateState(ctx, id, promotion.StateCancelled); err != nil {
		return err
	}
	s.logger.Info("promotion cancelled", zap.Int64("promotion_id", id))
	return nil
}
