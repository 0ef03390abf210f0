// internal/handlers/promotion/promotion_handler.go
package promotion

import (
	"net/http"
	"strconv"

	"casino-loyalty-service/internal/domain/promotion"
	"casino-loyalty-service/internal/pkg/response"
	service "casino-loyalty-service/internal/service/promotion"

	"github.com/gin-gonic/gin"
)

type PromotionHandler struct {
	promotionService *service.PromotionService
}

func NewPromotionHandler(promotionService *service.PromotionService) *PromotionHandler {
	return &PromotionHandler{
		promotionService: promotionService,
	}
}

// CreatePromotion creates a new promotion
func (h *PromotionHandler) CreatePromotion(c *gin.Context) {
	var req promotion.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	result, err := h.promotionService.Create(c.Request.Context(), &req)
	if err != nil {
		response.FromError(c, "failed to create promotion", err)
		return
	}

	response.Success(c, http.StatusCreated, "promotion created", result)
}

// GetByCode retrieves a promotion by its code
func (h *PromotionHandler) GetByCode(c *gin.Context) {
	code := c.Param("code")
	if code == "" {
		response.Error(c, http.StatusBadRequest, "promotion code is required", nil)
		return
	}

	result, err := h.promotionService.GetByCode(c.Request.Context(), code)
	if err != nil {
		response.FromError(c, "promotion not found", err)
		return
	}

	response.Success(c, http.StatusOK, "promotion retrieved", result)
}

// Redeem redeems a promotion code for a customer
func (h *PromotionHandler) Redeem(c *gin.Context) {
	var req promotion.RedeemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	result, err := h.promotionService.Redeem(c.Request.Context(), req.Code, req.CustomerID)
	if err != nil {
		response.FromError(c, "redemption failed", err)
		return
	}

	response.Success(c, http.StatusOK, "promotion redeemed", result)
}

// ListByCustomer retrieves a customer's promotions
func (h *PromotionHandler) ListByCustomer(c *gin.Context) {
	customerID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid customer ID", err)
		return
	}

	promotions, err := h.promotionService.ListByCustomer(c.Request.Context(), customerID)
	if err != nil {
		response.FromError(c, "failed to list promotions", err)
		return
	}

	response.Success(c, http.StatusOK, "promotions retrieved", promotions)
}

// CancelPromotion cancels a promotion
func (h *PromotionHandler) CancelPromotion(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid promotion ID", err)
		return
	}

	if err := h.promotionService.Cancel(c.Request.Context(), id); err != nil {
		response.FromError(c, "failed to cancel promotion", err)
		return
	}

	response.Success(c, http.StatusOK, "promotion cancelled", nil)
}
