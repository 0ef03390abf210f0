// internal/handlers/customer/customer_handler_test.go
package customer

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"casino-loyalty-service/internal/config"
	"casino-loyalty-service/internal/repository/memory"
	service "casino-loyalty-service/internal/service/customer"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error,omitempty"`
}

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	customers := memory.NewCustomerRepository()
	promotions := memory.NewPromotionRepository(customers)
	cfg := config.LoyaltyConfig{
		WelcomePoints:           100,
		WelcomePromotionEnabled: true,
		WelcomePromotionDays:    30,
		PointsPerCurrencyUnit:   0.1,
		VIPSpendThreshold:       50000,
		FrequentVisitThreshold:  20,
		RegularVisitThreshold:   5,
	}
	h := NewCustomerHandler(service.NewCustomerService(customers, promotions, cfg, zap.NewNop()))

	r := gin.New()
	r.POST("/customers", h.Register)
	r.GET("/customers/:id", h.GetCustomer)
	r.POST("/check-in", h.CheckIn)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body interface{}) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return w, env
}

func registerBody() gin.H {
	return gin.H{
		"document_number": "1234567",
		"document_type":   "CC",
		"first_name":      "Maria",
		"last_name":       "Gomez",
	}
}

func TestRegisterEndpoint(t *testing.T) {
	r := newTestRouter(t)

	w, env := doJSON(t, r, http.MethodPost, "/customers", registerBody())
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.True(t, env.Success)

	var created struct {
		ID            int64  `json:"id"`
		Tier          string `json:"tier"`
		PointsBalance int64  `json:"points_balance"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &created))
	assert.Equal(t, "new", created.Tier)
	assert.Equal(t, int64(100), created.PointsBalance)
}

func TestRegisterEndpointDuplicate(t *testing.T) {
	r := newTestRouter(t)

	w, _ := doJSON(t, r, http.MethodPost, "/customers", registerBody())
	require.Equal(t, http.StatusCreated, w.Code)

	w, env := doJSON(t, r, http.MethodPost, "/customers", registerBody())
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.False(t, env.Success)
}

func TestRegisterEndpointRejectsBadPayload(t *testing.T) {
	r := newTestRouter(t)

	w, env := doJSON(t, r, http.MethodPost, "/customers", gin.H{
		"document_number": "1234567",
		"document_type":   "XX",
		"first_name":      "Maria",
		"last_name":       "Gomez",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.False(t, env.Success)
}

func TestCheckInEndpoint(t *testing.T) {
	r := newTestRouter(t)

	w, _ := doJSON(t, r, http.MethodPost, "/customers", registerBody())
	require.Equal(t, http.StatusCreated, w.Code)

	w, env := doJSON(t, r, http.MethodPost, "/check-in", gin.H{
		"document_number": "1234567",
		"amount_spent":    150,
	})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, env.Success)

	var checked struct {
		VisitCount    int64 `json:"visit_count"`
		PointsBalance int64 `json:"points_balance"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &checked))
	assert.Equal(t, int64(1), checked.VisitCount)
	assert.Equal(t, int64(115), checked.PointsBalance)

	w, env = doJSON(t, r, http.MethodPost, "/check-in", gin.H{
		"document_number": "9999999",
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.False(t, env.Success)
}

func TestGetCustomerEndpointNotFound(t *testing.T) {
	r := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/customers/42", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
