// internal/service/ticket/ticket_service.go
package ticket

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"casino-loyalty-service/internal/domain/customer"
	"casino-loyalty-service/internal/domain/ticket"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type TicketService struct {
	tickets   ticket.Repository
	customers customer.Repository
	logger    *zap.Logger
}

func NewTicketService(tickets ticket.Repository, customers customer.Repository, logger *zap.Logger) *TicketService {
	return &TicketService{
		tickets:   tickets,
		customers: customers,
		logger:    logger,
	}
}

// Create opens a support ticket. Critical tickets go straight to a
// supervisor; everything else to the agent queue.
func (s *TicketService) Create(ctx context.Context, req *ticket.CreateRequest) (*ticket.Ticket, error) {
	if _, err := s.customers.FindByID(ctx, req.CustomerID); err != nil {
		return nil, err
	}

	priority := req.Priority
	if priority == "" {
		priority = ticket.PriorityMedium
	}

	assignee := "agent@casino.local"
	if priority == ticket.PriorityCritical {
		assignee = "supervisor@casino.local"
	}

	t := &ticket.Ticket{
		Number:      newTicketNumber(),
		CustomerID:  req.CustomerID,
		Kind:        req.Kind,
		Status:      ticket.StatusOpen,
		Priority:    priority,
		Subject:     req.Subject,
		Description: req.Description,
		Category:    req.Category,
		AssignedTo:  sql.NullString{String: assignee, Valid: true},
	}

	if err := s.tickets.Create(ctx, t); err != nil {
		s.logger.Error("failed to create ticket", zap.Error(err))
		return nil, err
	}

	s.logger.Info("ticket created",
		zap.Int64("ticket_id", t.ID),
		zap.String("number", t.Number),
		zap.String("priority", string(t.Priority)),
	)

	return t, nil
}

// Resolve marks a ticket resolved
func (s *TicketService) Resolve(ctx context.Context, id int64, req *ticket.ResolveRequest) (*ticket.Ticket, error) {
	t, err := s.tickets.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	t.Resolve(req.Resolution, req.ResolvedBy, time.Now())

	if err := s.tickets.Update(ctx, t); err != nil {
		return nil, err
	}

	s.logger.Info("ticket resolved", zap.Int64("ticket_id", t.ID))
	return t, nil
}

// Get retrieves a ticket by ID
func (s *TicketService) Get(ctx context.Context, id int64) (*ticket.Ticket, error) {
	return s.tickets.FindByID(ctx, id)
}

// ListOpen retrieves open and in-progress tickets
func (s *TicketService) ListOpen(ctx context.Context) ([]ticket.Ticket, error) {
	return s.tickets.ListOpen(ctx)
}

// GetMetrics returns support queue metrics
func (s *TicketService) GetMetrics(ctx context.Context) (*ticket.SupportMetrics, error) {
	open, err := s.tickets.ListOpen(ctx)
	if err != nil {
		return nil, err
	}

	metrics := &ticket.SupportMetrics{OpenTickets: int64(len(open))}
	for _, t := range open {
		if t.Priority == ticket.PriorityCritical {
			metrics.CriticalTickets++
		}
	}
	return metrics, nil
}

func newTicketNumber() string {
	return fmt.Sprintf("TK-%s", uuid.NewString()[:8])
}
