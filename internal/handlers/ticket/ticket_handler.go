// internal/handlers/ticket/ticket_handler.go
package ticket

import (
	"net/http"
	"strconv"

	"casino-loyalty-service/internal/domain/ticket"
	"casino-loyalty-service/internal/pkg/response"
	service "casino-loyalty-service/internal/service/ticket"

	"github.com/gin-gonic/gin"
)

type TicketHandler struct {
	ticketService *service.TicketService
}

func NewTicketHandler(ticketService *service.TicketService) *TicketHandler {
	return &TicketHandler{
		ticketService: ticketService,
	}
}

// CreateTicket opens a support ticket
func (h *TicketHandler) CreateTicket(c *gin.Context) {
	var req ticket.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	result, err := h.ticketService.Create(c.Request.Context(), &req)
	if err != nil {
		response.FromError(c, "failed to create ticket", err)
		return
	}

	response.Success(c, http.StatusCreated, "ticket created", result)
}

// GetTicket retrieves a ticket by ID
func (h *TicketHandler) GetTicket(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid ticket ID", err)
		return
	}

	result, err := h.ticketService.Get(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, "ticket not found", err)
		return
	}

	response.Success(c, http.StatusOK, "ticket retrieved", result)
}

// ResolveTicket marks a ticket as resolved
func (h *TicketHandler) ResolveTicket(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid ticket ID", err)
		return
	}

	var req ticket.ResolveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	result, err := h.ticketService.Resolve(c.Request.Context(), id, &req)
	if err != nil {
		response.FromError(c, "failed to resolve ticket", err)
		return
	}

	response.Success(c, http.StatusOK, "ticket resolved", result)
}

// ListOpenTickets retrieves open and in-progress tickets
func (h *TicketHandler) ListOpenTickets(c *gin.Context) {
	tickets, err := h.ticketService.ListOpen(c.Request.Context())
	if err != nil {
		response.FromError(c, "failed to list tickets", err)
		return
	}

	response.Success(c, http.StatusOK, "tickets retrieved", tickets)
}

// GetMetrics returns support queue metrics
func (h *TicketHandler) GetMetrics(c *gin.Context) {
	metrics, err := h.ticketService.GetMetrics(c.Request.Context())
	if err != nil {
		response.FromError(c, "failed to get metrics", err)
		return
	}

	response.Success(c, http.StatusOK, "metrics retrieved", metrics)
}
