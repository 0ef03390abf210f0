// internal/handlers/transaction/transaction_handler.go
package transaction

import (
	"net/http"
	"strconv"
	"time"

	"casino-loyalty-service/internal/domain/transaction"
	"casino-loyalty-service/internal/pkg/response"
	service "casino-loyalty-service/internal/service/transaction"

	"github.com/gin-gonic/gin"
)

type TransactionHandler struct {
	transactionService *service.TransactionService
}

func NewTransactionHandler(transactionService *service.TransactionService) *TransactionHandler {
	return &TransactionHandler{
		transactionService: transactionService,
	}
}

// ProcessTransaction records a transaction and applies its side effects
func (h *TransactionHandler) ProcessTransaction(c *gin.Context) {
	var req transaction.ProcessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	result, err := h.transactionService.Process(c.Request.Context(), &req)
	if err != nil {
		response.FromError(c, "failed to process transaction", err)
		return
	}

	response.Success(c, http.StatusCreated, "transaction processed", result)
}

// GetTransaction retrieves a transaction by ID
func (h *TransactionHandler) GetTransaction(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid transaction ID", err)
		return
	}

	result, err := h.transactionService.Get(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, "transaction not found", err)
		return
	}

	response.Success(c, http.StatusOK, "transaction retrieved", result)
}

// ListTransactions retrieves transactions with optional filters
func (h *TransactionHandler) ListTransactions(c *gin.Context) {
	var filters transaction.ListFilters
	if err := c.ShouldBindQuery(&filters); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid filters", err)
		return
	}

	transactions, err := h.transactionService.List(c.Request.Context(), &filters)
	if err != nil {
		response.FromError(c, "failed to list transactions", err)
		return
	}

	response.Success(c, http.StatusOK, "transactions retrieved", transactions)
}

// GetDailySummary returns aggregates for a single day, defaulting to today
func (h *TransactionHandler) GetDailySummary(c *gin.Context) {
	date := time.Now()
	if raw := c.Query("date"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			response.Error(c, http.StatusBadRequest, "invalid date, expected YYYY-MM-DD", err)
			return
		}
		date = parsed
	}

	summary, err := h.transactionService.DailySummary(c.Request.Context(), date)
	if err != nil {
		response.FromError(c, "failed to build summary", err)
		return
	}

	response.Success(c, http.StatusOK, "summary retrieved", summary)
}
