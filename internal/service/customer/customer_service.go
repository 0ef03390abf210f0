// internal/service/customer/customer_service.go
package customer

import (
	"context"
	"database/sql"
	"fmt"
	"math"
	"time"

	"casino-loyalty-service/internal/config"
	"casino-loyalty-service/internal/domain/customer"
	"casino-loyalty-service/internal/domain/promotion"
	xerrors "casino-loyalty-service/internal/pkg/errors"

	"github.com/lib/pq"
	"go.uber.org/zap"
)

const systemUser = "SYSTEM"

type CustomerService struct {
	customers  customer.Repository
	promotions promotion.Repository
	cfg        config.LoyaltyConfig
	logger     *zap.Logger
}

func NewCustomerService(
	customers customer.Repository,
	promotions promotion.Repository,
	cfg config.LoyaltyConfig,
	logger *zap.Logger,
) *CustomerService {
	return &CustomerService{
		customers:  customers,
		promotions: promotions,
		cfg:        cfg,
		logger:     logger,
	}
}

// Register validates and creates a new customer. The customer starts in
// the new tier with the configured welcome point bonus, and receives a
// welcome promotion when that is enabled.
func (s *CustomerService) Register(ctx context.Context, req *customer.RegisterRequest) (*customer.Customer, error) {
	if !customer.ValidDocument(req.DocumentNumber, req.DocumentType) {
		return nil, customer.ErrInvalidDocument
	}
	if req.Email != "" && !customer.ValidEmail(req.Email) {
		return nil, customer.ErrInvalidEmail
	}
	if req.Phone != "" && !customer.ValidPhone(req.Phone) {
		return nil, customer.ErrInvalidPhone
	}

	exists, err := s.customers.ExistsByDocument(ctx, req.DocumentNumber)
	if err != nil {
		return nil, fmt.Errorf("failed to check document: %w", err)
	}
	if exists {
		return nil, customer.ErrDuplicateDocument
	}

	c := &customer.Customer{
		DocumentNumber: req.DocumentNumber,
		DocumentType:   req.DocumentType,
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Email:          sql.NullString{String: req.Email, Valid: req.Email != ""},
		Phone:          sql.NullString{String: req.Phone, Valid: req.Phone != ""},
		Address:        sql.NullString{String: req.Address, Valid: req.Address != ""},
		City:           sql.NullString{String: req.City, Valid: req.City != ""},
		Tier:           customer.TierNew,
		RegisteredAt:   time.Now(),
		PointsBalance:  s.cfg.WelcomePoints,
		IsActive:       true,
		Preferences:    req.Preferences,
		Tags:           pq.StringArray(req.Tags),
		Notes:          sql.NullString{String: req.Notes, Valid: req.Notes != ""},
	}
	if req.BirthDate != nil {
		c.BirthDate = sql.NullTime{Time: *req.BirthDate, Valid: true}
	}

	if err := s.customers.Create(ctx, c); err != nil {
		s.logger.Error("failed to create customer", zap.Error(err))
		return nil, err
	}

	if s.cfg.WelcomePromotionEnabled {
		if err := s.issueWelcomePromotion(ctx, c.ID); err != nil {
			// Registration itself succeeded; the missing welcome promotion
			// is logged for staff follow-up.
			s.logger.Error("failed to issue welcome promotion",
				zap.Int64("customer_id", c.ID), zap.Error(err))
		}
	}

	s.logger.Info("customer registered",
		zap.Int64("customer_id", c.ID),
		zap.String("document_number", c.DocumentNumber),
	)

	return c, nil
}

// RegisterVisit adds one visit with the amount spent, credits points at
// the configured rate, and recalculates the tier.
func (s *CustomerService) RegisterVisit(ctx context.Context, customerID int64, amountSpent float64) error {
	points := int64(math.Floor(amountSpent * s.cfg.PointsPerCurrencyUnit))

	err := s.customers.ApplyVisit(ctx, customerID, customer.VisitDelta{
		Visits:    1,
		Spend:     amountSpent,
		Points:    points,
		VisitedAt: time.Now(),
	})
	if err != nil {
		return err
	}

	s.logger.Info("visit registered",
		zap.Int64("customer_id", customerID),
		zap.Float64("amount_spent", amountSpent),
		zap.Int64("points_earned", points),
	)

	if _, _, err := s.RecalculateTier(ctx, customerID); err != nil {
		return fmt.Errorf("failed to recalculate tier: %w", err)
	}

	return nil
}

// RecalculateTier recomputes the tier from current lifetime spend and
// visit count, and on an upgrade issues the tier's automatic promotions.
// Calling it twice without intervening activity is a no-op the second
// time.
func (s *CustomerService) RecalculateTier(ctx context.Context, customerID int64) (customer.Tier, bool, error) {
	c, err := s.customers.FindByID(ctx, customerID)
	if err != nil {
		return "", false, err
	}

	// Inactive is administrative only, never recomputed away.
	if c.Tier == customer.TierInactive {
		return c.Tier, false, nil
	}

	newTier := s.tierFor(c.LifetimeSpend, c.VisitCount)
	if newTier == c.Tier {
		return c.Tier, false, nil
	}

	changed, err := s.customers.UpdateTier(ctx, customerID, c.Tier, newTier)
	if err != nil {
		return "", false, err
	}
	if !changed {
		// Another writer already moved the tier; it issued the promotions.
		return c.Tier, false, nil
	}

	s.logger.Info("customer tier changed",
		zap.Int64("customer_id", customerID),
		zap.String("from", string(c.Tier)),
		zap.String("to", string(newTier)),
	)

	if err := s.issueTierPromotions(ctx, c, newTier); err != nil {
		s.logger.Error("failed to issue tier promotions",
			zap.Int64("customer_id", customerID), zap.Error(err))
	}

	return newTier, true, nil
}

func (s *CustomerService) tierFor(lifetimeSpend float64, visitCount int64) customer.Tier {
	switch {
	case lifetimeSpend >= s.cfg.VIPSpendThreshold:
		return customer.TierVIP
	case visitCount >= s.cfg.FrequentVisitThreshold:
		return customer.TierFrequent
	case visitCount >= s.cfg.RegularVisitThreshold:
		return customer.TierRegular
	default:
		return customer.TierNew
	}
}

// CheckIn registers a self-service visit looked up by document number.
func (s *CustomerService) CheckIn(ctx context.Context, documentNumber string, amountSpent float64) (*customer.Customer, error) {
	c, err := s.customers.FindByDocument(ctx, documentNumber)
	if err != nil {
		return nil, err
	}

	if err := s.RegisterVisit(ctx, c.ID, amountSpent); err != nil {
		return nil, err
	}

	return s.customers.FindByID(ctx, c.ID)
}

// Get retrieves a customer by ID
func (s *CustomerService) Get(ctx context.Context, id int64) (*customer.Customer, error) {
	return s.customers.FindByID(ctx, id)
}

// GetByDocument retrieves a customer by document number
func (s *CustomerService) GetByDocument(ctx context.Context, documentNumber string) (*customer.Customer, error) {
	return s.customers.FindByDocument(ctx, documentNumber)
}

// List retrieves customers matching the filters
func (s *CustomerService) List(ctx context.Context, filters *customer.ListFilters) ([]customer.Customer, int64, error) {
	return s.customers.List(ctx, filters)
}

// Update applies administrative changes to descriptive fields.
func (s *CustomerService) Update(ctx context.Context, id int64, req *customer.UpdateRequest) (*customer.Customer, error) {
	if req.Email != nil && *req.Email != "" && !customer.ValidEmail(*req.Email) {
		return nil, customer.ErrInvalidEmail
	}
	if req.Phone != nil && *req.Phone != "" && !customer.ValidPhone(*req.Phone) {
		return nil, customer.ErrInvalidPhone
	}

	c, err := s.customers.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.FirstName != nil {
		c.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		c.LastName = *req.LastName
	}
	if req.Email != nil {
		c.Email = sql.NullString{String: *req.Email, Valid: *req.Email != ""}
	}
	if req.Phone != nil {
		c.Phone = sql.NullString{String: *req.Phone, Valid: *req.Phone != ""}
	}
	if req.Address != nil {
		c.Address = sql.NullString{String: *req.Address, Valid: *req.Address != ""}
	}
	if req.City != nil {
		c.City = sql.NullString{String: *req.City, Valid: *req.City != ""}
	}
	if req.Preferences != nil {
		c.Preferences = req.Preferences
	}
	if req.Tags != nil {
		c.Tags = pq.StringArray(req.Tags)
	}
	if req.Notes != nil {
		c.Notes = sql.NullString{String: *req.Notes, Valid: *req.Notes != ""}
	}

	if err := s.customers.Update(ctx, c); err != nil {
		return nil, err
	}

	return c, nil
}

// Deactivate soft-deactivates a customer. Customers are never hard-deleted.
func (s *CustomerService) Deactivate(ctx context.Context, id int64) error {
	if err := s.customers.SetActive(ctx, id, false); err != nil {
		return err
	}
	s.logger.Info("customer deactivated", zap.Int64("customer_id", id))
	return nil
}

// GetStats retrieves aggregate customer statistics
func (s *CustomerService) GetStats(ctx context.Context) (*customer.CustomerStats, error) {
	stats, err := s.customers.GetStats(ctx)
	if err != nil {
		return nil, xerrors.Wrap(err, "failed to get customer stats")
	}
	return stats, nil
}

func (s *CustomerService) issueWelcomePromotion(ctx context.Context, customerID int64) error {
	now := time.Now()
	p := &promotion.Promotion{
		Code:        promotion.NewCode(),
		Title:       "Casino Welcome",
		Description: "Special promotion for new customers",
		Kind:        promotion.KindPointsBonus,
		Value:       float64(s.cfg.WelcomePoints),
		StartsAt:    now,
		EndsAt:      now.AddDate(0, 0, s.cfg.WelcomePromotionDays),
		State:       promotion.StateActive,
		CustomerID:  sql.NullInt64{Int64: customerID, Valid: true},
		MaxUses:     1,
		CreatedBy:   sql.NullString{String: systemUser, Valid: true},
	}
	return s.promotions.Create(ctx, p)
}

func (s *CustomerService) issueTierPromotions(ctx context.Context, c *customer.Customer, tier customer.Tier) error {
	if !c.IsEligibleForPromotions() {
		return nil
	}

	now := time.Now()
	bound := sql.NullInt64{Int64: c.ID, Valid: true}
	createdBy := sql.NullString{String: systemUser, Valid: true}

	var promotions []*promotion.Promotion

	switch tier {
	case customer.TierVIP:
		promotions = append(promotions,
			&promotion.Promotion{
				Code:        promotion.NewCode(),
				Title:       "VIP Discount",
				Description: fmt.Sprintf("%.0f%% discount on consumptions", s.cfg.VIPDiscountPercent),
				Kind:        promotion.KindDiscount,
				Value:       s.cfg.VIPDiscountPercent,
				StartsAt:    now,
				EndsAt:      now.AddDate(0, 0, s.cfg.VIPDiscountDays),
				State:       promotion.StateActive,
				CustomerID:  bound,
				MaxUses:     1,
				CreatedBy:   createdBy,
			},
			&promotion.Promotion{
				Code:        promotion.NewCode(),
				Title:       "VIP Free Drink",
				Description: "Complimentary premium drink",
				Kind:        promotion.KindFreeDrink,
				Value:       1,
				StartsAt:    now,
				EndsAt:      now.AddDate(0, 0, s.cfg.VIPFreeDrinkDays),
				State:       promotion.StateActive,
				CustomerID:  bound,
				MaxUses:     s.cfg.VIPFreeDrinkMaxUses,
				CreatedBy:   createdBy,
			},
		)
	case customer.TierFrequent:
		promotions = append(promotions, &promotion.Promotion{
			Code:        promotion.NewCode(),
			Title:       "Frequent Player Bonus",
			Description: "Extra points for being a frequent customer",
			Kind:        promotion.KindPointsBonus,
			Value:       float64(s.cfg.FrequentBonusPoints),
			StartsAt:    now,
			EndsAt:      now.AddDate(0, 0, s.cfg.FrequentBonusDays),
			State:       promotion.StateActive,
			CustomerID:  bound,
			MaxUses:     1,
			CreatedBy:   createdBy,
		})
	}

	for _, p := range promotions {
		if err := s.promotions.Create(ctx, p); err != nil {
			return err
		}
	}

	return nil
}
