package g2pay

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildCheckoutRequest(t *testing.T) {
	request := BuildCheckoutRequest(CreatePaymentParams{
		OrderID:        "order-7c9e6679-7425-40de-944b-e07fc1f90ae7",
		Amount:         8.7,
		Currency:       "USD",
		Description:    "Basic Subscription Plan",
		SubscriptionID: "7c9e6679-7425-40de-944b-e07fc1f90ae7",
		IsFile:         true,
	}, "https://app.example.com")

	assert.Equal(t, "order-7c9e6679-7425-40de-944b-e07fc1f90ae7", request.ReferenceID)
	assert.Equal(t, PaymentTypeDeposit, request.PaymentType)
	assert.Equal(t, "USD", request.Currency)
	assert.Equal(t, "8.70", request.Amount)
	assert.Equal(t, "https://app.example.com/account/settings/subscription", request.ReturnURL)
	assert.Equal(t, "https://app.example.com/account/settings/subscription", request.DeclineReturnURL)
	assert.Equal(t, "https://app.example.com/api/webhooks/payment", request.WebhookURL)
	assert.Equal(t,
		"https://app.example.com/api/webhooks/payment?subscriptionId=7c9e6679-7425-40de-944b-e07fc1f90ae7&isFile=true&currency=USD",
		request.SuccessReturnURL,
	)
	assert.Equal(t, "Basic Subscription Plan", request.Description)
}

func TestBuildCheckoutRequestAmountFormatting(t *testing.T) {
	tests := []struct {
		amount   float64
		expected string
	}{
		{10, "10.00"},
		{8.7, "8.70"},
		{104.97, "104.97"},
		{2.999, "3.00"},
		{1349, "1349.00"},
	}

	for _, tt := range tests {
		request := BuildCheckoutRequest(CreatePaymentParams{Amount: tt.amount}, "")
		assert.Equal(t, tt.expected, request.Amount)
	}
}

func TestBuildCheckoutRequestIsFileFlag(t *testing.T) {
	request := BuildCheckoutRequest(CreatePaymentParams{
		SubscriptionID: "abc",
		Currency:       "EUR",
		IsFile:         false,
	}, "https://app.example.com")

	assert.Contains(t, request.SuccessReturnURL, "isFile=false")
}

func TestBuildCheckoutRequestDeterministic(t *testing.T) {
	params := CreatePaymentParams{
		OrderID:        "order-1",
		Amount:         19.99,
		Currency:       "EUR",
		Description:    "Intermediate Subscription Plan",
		SubscriptionID: "1",
		IsFile:         true,
	}

	assert.Equal(t,
		BuildCheckoutRequest(params, "https://app.example.com"),
		BuildCheckoutRequest(params, "https://app.example.com"),
	)
}
