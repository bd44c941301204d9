package g2pay

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

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

func newTestClient(serverURL string) *Client {
	return NewClient(Config{
		CheckoutURL: serverURL,
		MerchantKey: "merchant-1",
		Password:    "pw123",
		BearerToken: "token-abc",
	}, testLogger())
}

func TestCreateCheckoutSessionSuccess(t *testing.T) {
	var gotRequest CheckoutRequest
	var gotAuth, gotSignature, gotContentType string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/v1/payments", r.URL.Path)

		gotAuth = r.Header.Get("Authorization")
		gotSignature = r.Header.Get("X-Signature")
		gotContentType = r.Header.Get("Content-Type")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotRequest))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"result":{"redirectUrl":"https://pay.example.com/s/xyz","transactionId":"tx-42"}}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	request := BuildCheckoutRequest(CreatePaymentParams{
		OrderID:        "order-123",
		Amount:         8.7,
		Currency:       "USD",
		Description:    "Basic Subscription Plan",
		SubscriptionID: "123",
		IsFile:         true,
	}, "https://app.example.com")

	response, err := client.CreateCheckoutSession(context.Background(), request)
	require.NoError(t, err)

	assert.Equal(t, "https://pay.example.com/s/xyz", response.Result.RedirectURL)
	assert.Equal(t, "tx-42", response.Result.TransactionID)

	assert.Equal(t, "Bearer token-abc", gotAuth)
	assert.Equal(t, "application/json", gotContentType)
	assert.Equal(t,
		GeneratePaymentHash("order-123", "8.70", "USD", "Basic Subscription Plan", "pw123"),
		gotSignature,
	)

	// Description участвует только в подписи и не уходит в JSON
	assert.Equal(t, "", gotRequest.Description)
	assert.Equal(t, "order-123", gotRequest.ReferenceID)
	assert.Equal(t, "8.70", gotRequest.Amount)
}

func TestCreateCheckoutSessionGatewayErrorMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"error_message":"Invalid currency for merchant"}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	_, err := client.CreateCheckoutSession(context.Background(), CheckoutRequest{ReferenceID: "order-1"})
	require.Error(t, err)

	var gatewayErr *domain.GatewayError
	require.True(t, errors.As(err, &gatewayErr))
	assert.Equal(t, "Invalid currency for merchant", gatewayErr.Message)
	assert.Equal(t, http.StatusUnprocessableEntity, gatewayErr.StatusCode)
}

func TestCreateCheckoutSessionGenericErrorFallback(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	_, err := client.CreateCheckoutSession(context.Background(), CheckoutRequest{ReferenceID: "order-1"})
	require.Error(t, err)

	var gatewayErr *domain.GatewayError
	require.True(t, errors.As(err, &gatewayErr))
	assert.Equal(t, "Failed to create checkout session", gatewayErr.Message)
}

func TestCreateCheckoutSessionTransportErrorPassthrough(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // соединение будет отклонено

	client := newTestClient(server.URL)
	_, err := client.CreateCheckoutSession(context.Background(), CheckoutRequest{ReferenceID: "order-1"})
	require.Error(t, err)

	// Транспортная ошибка (не таймаут) не оборачивается в GatewayError
	var gatewayErr *domain.GatewayError
	assert.False(t, errors.As(err, &gatewayErr))
}

func TestVerifyPayment(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		require.Equal(t, "/api/v1/payments/order-123", r.URL.Path)
		require.Equal(t, "Bearer token-abc", r.Header.Get("Authorization"))

		_, _ = w.Write([]byte(`{"result":{"status":"APPROVED","transactionId":"tx-42"}}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	status, err := client.VerifyPayment(context.Background(), "order-123")
	require.NoError(t, err)

	assert.Equal(t, "APPROVED", status.Result.Status)
	assert.Equal(t, "tx-42", status.Result.TransactionID)
}

func TestVerifyPaymentGatewayError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error_message":"payment not found"}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	_, err := client.VerifyPayment(context.Background(), "order-missing")
	require.Error(t, err)

	var gatewayErr *domain.GatewayError
	require.True(t, errors.As(err, &gatewayErr))
	assert.Equal(t, "payment not found", gatewayErr.Message)
	assert.Equal(t, http.StatusNotFound, gatewayErr.StatusCode)
}

func TestNewClientDefaultBaseURL(t *testing.T) {
	client := NewClient(Config{}, testLogger())
	assert.Equal(t, "https://engine.g2pay.io", client.baseURL)
}
