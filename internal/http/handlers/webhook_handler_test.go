package handlers

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vitorsdevstuff/file-energy/internal/domain"
	"github.com/vitorsdevstuff/file-energy/pkg/logger"
)

func testLogger() *logger.Logger {
	log := logger.New(logger.ERROR)
	log.SetOutput(io.Discard)
	return log
}

// stubWebhookService фиксирует вызовы и возвращает заданные ошибки
type stubWebhookService struct {
	notifyReferenceID string
	notifyStatus      string
	notifyErr         error

	confirmSubscriptionID string
	confirmErr            error
}

func (s *stubWebhookService) ProcessNotification(ctx context.Context, referenceID, status, transactionID string) error {
	s.notifyReferenceID = referenceID
	s.notifyStatus = status
	return s.notifyErr
}

func (s *stubWebhookService) ConfirmReturn(ctx context.Context, subscriptionID string) error {
	s.confirmSubscriptionID = subscriptionID
	return s.confirmErr
}

func newWebhookRouter(service *stubWebhookService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	handler := NewWebhookHandler(service, "https://app.example.com", testLogger())

	router := gin.New()
	router.POST("/api/webhooks/payment", handler.HandlePaymentWebhook)
	router.GET("/api/webhooks/payment", handler.HandlePaymentReturn)
	return router
}

func TestHandlePaymentWebhookAcksNotification(t *testing.T) {
	service := &stubWebhookService{}
	router := newWebhookRouter(service)

	body := `{"referenceId":"order-123","status":"APPROVED","transactionId":"tx-1"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/webhooks/payment", strings.NewReader(body))
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"received":true}`, w.Body.String())
	assert.Equal(t, "order-123", service.notifyReferenceID)
	assert.Equal(t, "APPROVED", service.notifyStatus)
}

func TestHandlePaymentWebhookMissingReferenceID(t *testing.T) {
	service := &stubWebhookService{}
	router := newWebhookRouter(service)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/webhooks/payment", strings.NewReader(`{"status":"APPROVED"}`))
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"Missing reference ID"}`, w.Body.String())
	assert.Empty(t, service.notifyReferenceID)
}

func TestHandlePaymentWebhookAcksDespiteProcessingError(t *testing.T) {
	// Ошибка обработки не отдается шлюзу: ретраи не помогут
	service := &stubWebhookService{notifyErr: domain.NewNotFoundError("subscription", "123")}
	router := newWebhookRouter(service)

	body := `{"referenceId":"order-123","status":"APPROVED"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/webhooks/payment", strings.NewReader(body))
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"received":true}`, w.Body.String())
}

func TestHandlePaymentWebhookMalformedBody(t *testing.T) {
	service := &stubWebhookService{}
	router := newWebhookRouter(service)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/webhooks/payment", strings.NewReader(`not-json`))
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandlePaymentReturnSuccess(t *testing.T) {
	service := &stubWebhookService{}
	router := newWebhookRouter(service)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/webhooks/payment?subscriptionId=abc-123&isFile=true&currency=USD", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "https://app.example.com/account/settings/subscription?success=true", w.Header().Get("Location"))
	assert.Equal(t, "abc-123", service.confirmSubscriptionID)
}

func TestHandlePaymentReturnMissingSubscriptionID(t *testing.T) {
	service := &stubWebhookService{}
	router := newWebhookRouter(service)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/webhooks/payment", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "https://app.example.com/account/settings/subscription?error=missing_subscription", w.Header().Get("Location"))
	assert.Empty(t, service.confirmSubscriptionID)
}

func TestHandlePaymentReturnPaymentFailed(t *testing.T) {
	service := &stubWebhookService{confirmErr: domain.ErrPaymentNotConfirmed}
	router := newWebhookRouter(service)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/webhooks/payment?subscriptionId=abc-123", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "https://app.example.com/account/settings/subscription?error=payment_failed", w.Header().Get("Location"))
}
