// internal/service/ticket/ticket_service_test.go
package ticket

import (
	"context"
	"testing"
	"time"

	"casino-loyalty-service/internal/domain/customer"
	"casino-loyalty-service/internal/domain/ticket"
	xerrors "casino-loyalty-service/internal/pkg/errors"
	"casino-loyalty-service/internal/repository/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestService(t *testing.T) (*TicketService, *memory.CustomerRepository) {
	t.Helper()
	customers := memory.NewCustomerRepository()
	tickets := memory.NewTicketRepository()
	return NewTicketService(tickets, customers, zap.NewNop()), customers
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
		IsActive:       true,
	}
	require.NoError(t, customers.Create(context.Background(), c))
	return c
}

func TestCreateAssignsByPriority(t *testing.T) {
	svc, customers := newTestService(t)
	ctx := context.Background()

	c := seedCustomer(t, customers)

	normal, err := svc.Create(ctx, &ticket.CreateRequest{
		CustomerID:  c.ID,
		Kind:        ticket.KindComplaint,
		Subject:     "Cold food at the bar",
		Description: "Dinner arrived cold twice in one evening",
	})
	require.NoError(t, err)
	assert.Equal(t, ticket.StatusOpen, normal.Status)
	assert.Equal(t, ticket.PriorityMedium, normal.Priority, "priority defaults to medium")
	assert.Equal(t, "agent@casino.local", normal.AssignedTo.String)
	assert.NotEmpty(t, normal.Number)

	critical, err := svc.Create(ctx, &ticket.CreateRequest{
		CustomerID:  c.ID,
		Kind:        ticket.KindClaim,
		Priority:    ticket.PriorityCritical,
		Subject:     "Disputed jackpot payout",
		Description: "Machine 14 showed a win that was not paid",
	})
	require.NoError(t, err)
	assert.Equal(t, "supervisor@casino.local", critical.AssignedTo.String)
}

func TestCreateUnknownCustomer(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Create(context.Background(), &ticket.CreateRequest{
		CustomerID:  9999,
		Kind:        ticket.KindInquiry,
		Subject:     "Opening hours",
		Description: "What time does the poker room open?",
	})
	assert.ErrorIs(t, err, xerrors.ErrNotFound)
}

func TestResolve(t *testing.T) {
	svc, customers := newTestService(t)
	ctx := context.Background()

	c := seedCustomer(t, customers)
	created, err := svc.Create(ctx, &ticket.CreateRequest{
		CustomerID:  c.ID,
		Kind:        ticket.KindTechnical,
		Subject:     "Loyalty card not scanning",
		Description: "Card rejected at the main entrance reader",
	})
	require.NoError(t, err)

	resolved, err := svc.Resolve(ctx, created.ID, &ticket.ResolveRequest{
		Resolution: "Card reissued at the front desk",
		ResolvedBy: "agent.lopez",
	})
	require.NoError(t, err)
	assert.Equal(t, ticket.StatusResolved, resolved.Status)
	assert.Equal(t, "Card reissued at the front desk", resolved.Resolution.String)
	assert.True(t, resolved.ResolvedAt.Valid)

	open, err := svc.ListOpen(ctx)
	require.NoError(t, err)
	assert.Empty(t, open)
}

func TestGetMetrics(t *testing.T) {
	svc, customers := newTestService(t)
	ctx := context.Background()

	c := seedCustomer(t, customers)
	for _, priority := range []ticket.Priority{ticket.PriorityLow, ticket.PriorityCritical, ticket.PriorityCritical} {
		_, err := svc.Create(ctx, &ticket.CreateRequest{
			CustomerID:  c.ID,
			Kind:        ticket.KindComplaint,
			Priority:    priority,
			Subject:     "Subject",
			Description: "Description",
		})
		require.NoError(t, err)
	}

	metrics, err := svc.GetMetrics(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), metrics.OpenTickets)
	assert.Equal(t, int64(2), metrics.CriticalTickets)
}
