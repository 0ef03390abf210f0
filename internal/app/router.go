// internal/app/router.go
package app

import (
	"time"

	customerHandler "casino-loyalty-service/internal/handlers/customer"
	promotionHandler "casino-loyalty-service/internal/handlers/promotion"
	ticketHandler "casino-loyalty-service/internal/handlers/ticket"
	transactionHandler "casino-loyalty-service/internal/handlers/transaction"
	"casino-loyalty-service/internal/middleware"
	"casino-loyalty-service/internal/pkg/ratelimit"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handlers struct {
	CustomerHandler    *customerHandler.CustomerHandler
	PromotionHandler   *promotionHandler.PromotionHandler
	TransactionHandler *transactionHandler.TransactionHandler
	TicketHandler      *ticketHandler.TicketHandler
	Limiter            *ratelimit.Limiter
}

func SetupRouter(r *gin.Engine, logger *zap.Logger, h *Handlers) {
	api := r.Group("/api/v1")

	// ==================== Health Check ====================
	api.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok", "version": "1.0.0"})
	})

	// ==================== Customers ====================
	customers := api.Group("/customers")
	{
		customers.POST("", h.CustomerHandler.Register)
		customers.GET("", h.CustomerHandler.ListCustomers)
		customers.GET("/stats", h.CustomerHandler.GetStats)
		customers.GET("/:id", h.CustomerHandler.GetCustomer)
		customers.GET("/document/:document", h.CustomerHandler.GetByDocument)
		customers.PUT("/:id", h.CustomerHandler.UpdateCustomer)
		customers.DELETE("/:id", h.CustomerHandler.DeactivateCustomer)
		customers.POST("/:id/recalculate-tier", h.CustomerHandler.RecalculateTier)
		customers.GET("/:id/promotions", h.PromotionHandler.ListByCustomer)
	}

	// ==================== Check-in (kiosk-facing) ====================
	checkin := api.Group("/check-in")
	checkin.Use(middleware.RateLimitMiddleware(h.Limiter, logger, "checkin", 30, time.Minute))
	{
		checkin.POST("", h.CustomerHandler.CheckIn)
	}

	// ==================== Promotions ====================
	promotions := api.Group("/promotions")
	{
		promotions.POST("", h.PromotionHandler.CreatePromotion)
		promotions.GET("/code/:code", h.PromotionHandler.GetByCode)
		promotions.DELETE("/:id", h.PromotionHandler.CancelPromotion)
	}

	// Redemptions get a tighter limit than the rest of the API
	redeem := api.Group("/promotions/redeem")
	redeem.Use(middleware.RateLimitMiddleware(h.Limiter, logger, "redeem", 10, time.Minute))
	{
		redeem.POST("", h.PromotionHandler.Redeem)
	}

	// ==================== Transactions ====================
	transactions := api.Group("/transactions")
	{
		transactions.POST("", h.TransactionHandler.ProcessTransaction)
		transactions.GET("", h.TransactionHandler.ListTransactions)
		transactions.GET("/summary/daily", h.TransactionHandler.GetDailySummary)
		transactions.GET("/:id", h.TransactionHandler.GetTransaction)
	}

	// ==================== Support Tickets ====================
	tickets := api.Group("/tickets")
	{
		tickets.POST("", h.TicketHandler.CreateTicket)
		tickets.GET("/open", h.TicketHandler.ListOpenTickets)
		tickets.GET("/metrics", h.TicketHandler.GetMetrics)
		tickets.GET("/:id", h.TicketHandler.GetTicket)
		tickets.PUT("/:id/resolve", h.TicketHandler.ResolveTicket)
	}
}
