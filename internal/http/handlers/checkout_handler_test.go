package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vitorsdevstuff/file-energy/internal/domain"
	"github.com/vitorsdevstuff/file-energy/internal/middleware"
)

// stubCheckoutService фиксирует интент и возвращает заданный результат
type stubCheckoutService struct {
	gotUserID string
	gotIntent domain.CheckoutIntent
	url       string
	err       error
}

func (s *stubCheckoutService) Checkout(ctx context.Context, userID string, intent domain.CheckoutIntent) (string, error) {
	s.gotUserID = userID
	s.gotIntent = intent
	if s.err != nil {
		return "", s.err
	}
	return s.url, nil
}

func newCheckoutRouter(service *stubCheckoutService, userID string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	handler := NewCheckoutHandler(service, testLogger())

	router := gin.New()
	router.POST("/api/checkout", func(c *gin.Context) {
		if userID != "" {
			c.Set(string(middleware.ContextUserIDKey), userID)
		}
		handler.CreateCheckout(c)
	})
	return router
}

func postCheckout(router *gin.Engine, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/checkout", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	return w
}

func TestCreateCheckoutSuccess(t *testing.T) {
	service := &stubCheckoutService{url: "https://pay.example.com/s/xyz"}
	router := newCheckoutRouter(service, "user-1")

	body := `{"type":"standard","currency":"USD","planId":"2","price":"8.70"}`
	w := postCheckout(router, body)

	require.Equal(t, http.StatusOK, w.Code)

	var response CreateCheckoutResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.True(t, response.Success)
	assert.Equal(t, "https://pay.example.com/s/xyz", response.URL)

	assert.Equal(t, "user-1", service.gotUserID)
	assert.Equal(t, domain.CheckoutTypeStandard, service.gotIntent.Type)
	assert.Equal(t, "USD", service.gotIntent.Currency)
	assert.Equal(t, "2", service.gotIntent.PlanID)
	assert.InDelta(t, 8.70, service.gotIntent.ClientPrice, 0.001)
}

func TestCreateCheckoutParsesStringNumericFields(t *testing.T) {
	service := &stubCheckoutService{url: "https://pay.example.com/s/xyz"}
	router := newCheckoutRouter(service, "user-1")

	body := `{"type":"custom","currency":"EUR","pdfs":"12","questions":"200","size":"9.5","api":true,"price":"55.20"}`
	w := postCheckout(router, body)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 12, service.gotIntent.PDFs)
	assert.Equal(t, 200, service.gotIntent.Questions)
	assert.InDelta(t, 9.5, service.gotIntent.Size, 0.001)
	assert.True(t, service.gotIntent.APIAccess)
}

func TestCreateCheckoutTeamFields(t *testing.T) {
	service := &stubCheckoutService{url: "https://pay.example.com/s/xyz"}
	router := newCheckoutRouter(service, "user-1")

	body := `{"type":"team","currency":"EUR","plan":"Advanced","users":"4","documents":"120"}`
	w := postCheckout(router, body)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Advanced", service.gotIntent.Plan)
	assert.Equal(t, 4, service.gotIntent.Users)
	assert.Equal(t, 120, service.gotIntent.Documents)
}

func TestCreateCheckoutInvalidNumericField(t *testing.T) {
	service := &stubCheckoutService{}
	router := newCheckoutRouter(service, "user-1")

	w := postCheckout(router, `{"type":"custom","currency":"EUR","pdfs":"ten"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, service.gotUserID)
}

func TestCreateCheckoutUnknownType(t *testing.T) {
	service := &stubCheckoutService{}
	router := newCheckoutRouter(service, "user-1")

	w := postCheckout(router, `{"type":"enterprise","currency":"EUR"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateCheckoutNoUserInContext(t *testing.T) {
	service := &stubCheckoutService{}
	router := newCheckoutRouter(service, "")

	w := postCheckout(router, `{"type":"standard","currency":"EUR","planId":"2"}`)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCreateCheckoutValidationErrorPassthrough(t *testing.T) {
	service := &stubCheckoutService{err: domain.NewValidationError("Unsupported currency. Supported: EUR, USD")}
	router := newCheckoutRouter(service, "user-1")

	w := postCheckout(router, `{"type":"standard","currency":"RUB","planId":"2"}`)

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Unsupported currency")
}

func TestCreateCheckoutNotFound(t *testing.T) {
	service := &stubCheckoutService{err: domain.NewNotFoundError("user", "user-1")}
	router := newCheckoutRouter(service, "user-1")

	w := postCheckout(router, `{"type":"standard","currency":"EUR","planId":"2"}`)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreateCheckoutGatewayError(t *testing.T) {
	service := &stubCheckoutService{err: domain.NewGatewayError("Invalid currency for merchant", 422, nil)}
	router := newCheckoutRouter(service, "user-1")

	w := postCheckout(router, `{"type":"standard","currency":"EUR","planId":"2"}`)

	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"Invalid currency for merchant"}`, w.Body.String())
}

func TestCreateCheckoutInternalErrorFallback(t *testing.T) {
	service := &stubCheckoutService{err: domain.ErrInternal}
	router := newCheckoutRouter(service, "user-1")

	w := postCheckout(router, `{"type":"standard","currency":"EUR","planId":"2"}`)

	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"Failed to create checkout session"}`, w.Body.String())
}
