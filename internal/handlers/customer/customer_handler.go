// internal/handlers/customer/customer_handler.go
package customer

import (
	"net/http"
	"strconv"

	"casino-loyalty-service/internal/domain/customer"
	"casino-loyalty-service/internal/pkg/response"
	service "casino-loyalty-service/internal/service/customer"

	"github.com/gin-gonic/gin"
)

type CustomerHandler struct {
	customerService *service.CustomerService
}

func NewCustomerHandler(customerService *service.CustomerService) *CustomerHandler {
	return &CustomerHandler{
		customerService: customerService,
	}
}

// Register registers a new customer
func (h *CustomerHandler) Register(c *gin.Context) {
	var req customer.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	result, err := h.customerService.Register(c.Request.Context(), &req)
	if err != nil {
		response.FromError(c, "failed to register customer", err)
		return
	}

	response.Success(c, http.StatusCreated, "customer registered successfully", result)
}

// GetCustomer retrieves a customer by ID
func (h *CustomerHandler) GetCustomer(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid customer ID", err)
		return
	}

	result, err := h.customerService.Get(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, "customer not found", err)
		return
	}

	response.Success(c, http.StatusOK, "customer retrieved", result)
}

// GetByDocument retrieves a customer by document number
func (h *CustomerHandler) GetByDocument(c *gin.Context) {
	document := c.Param("document")
	if document == "" {
		response.Error(c, http.StatusBadRequest, "document number is required", nil)
		return
	}

	result, err := h.customerService.GetByDocument(c.Request.Context(), document)
	if err != nil {
		response.FromError(c, "customer not found", err)
		return
	}

	response.Success(c, http.StatusOK, "customer retrieved", result)
}

// ListCustomers retrieves customers with optional filters
func (h *CustomerHandler) ListCustomers(c *gin.Context) {
	var filters customer.ListFilters
	if err := c.ShouldBindQuery(&filters); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid filters", err)
		return
	}

	customers, total, err := h.customerService.List(c.Request.Context(), &filters)
	if err != nil {
		response.FromError(c, "failed to list customers", err)
		return
	}

	response.Success(c, http.StatusOK, "customers retrieved", gin.H{
		"customers": customers,
		"total":     total,
		"limit":     filters.Limit,
		"offset":    filters.Offset,
	})
}

// UpdateCustomer updates a customer's profile fields
func (h *CustomerHandler) UpdateCustomer(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid customer ID", err)
		return
	}

	var req customer.UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	result, err := h.customerService.Update(c.Request.Context(), id, &req)
	if err != nil {
		response.FromError(c, "failed to update customer", err)
		return
	}

	response.Success(c, http.StatusOK, "customer updated", result)
}

// DeactivateCustomer deactivates a customer
func (h *CustomerHandler) DeactivateCustomer(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid customer ID", err)
		return
	}

	if err := h.customerService.Deactivate(c.Request.Context(), id); err != nil {
		response.FromError(c, "failed to deactivate customer", err)
		return
	}

	response.Success(c, http.StatusOK, "customer deactivated", nil)
}

// CheckIn records a visit by document number
func (h *CustomerHandler) CheckIn(c *gin.Context) {
	var req customer.CheckInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	result, err := h.customerService.CheckIn(c.Request.Context(), req.DocumentNumber, req.AmountSpent)
	if err != nil {
		response.FromError(c, "check-in failed", err)
		return
	}

	response.Success(c, http.StatusOK, "check-in recorded", result)
}

// RecalculateTier forces a tier recalculation for a customer
func (h *CustomerHandler) RecalculateTier(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid customer ID", err)
		return
	}

	tier, changed, err := h.customerService.RecalculateTier(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, "failed to recalculate tier", err)
		return
	}

	response.Success(c, http.StatusOK, "tier recalculated", gin.H{
		"tier":    tier,
		"changed": changed,
	})
}

// GetStats returns aggregate customer statistics
func (h *CustomerHandler) GetStats(c *gin.Context) {
	stats, err := h.customerService.GetStats(c.Request.Context())
	if err != nil {
		response.FromError(c, "failed to get stats", err)
		return
	}

	response.Success(c, http.StatusOK, "stats retrieved", stats)
}

func parseID(c *gin.Context) (int64, error) {
	return strconv.ParseInt(c.Param("id"), 10, 64)
}
