package g2pay

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGeneratePaymentHashKnownVectors(t *testing.T) {
	tests := []struct {
		name        string
		orderNumber string
		amount      string
		currency    string
		description string
		password    string
		expected    string
	}{
		{
			name:        "basic plan usd",
			orderNumber: "order-123",
			amount:      "8.70",
			currency:    "USD",
			description: "Basic Subscription Plan",
			password:    "secret",
			expected:    "29ae80a24577312c3eeeadd8e8643d5dc7bc2f1e",
		},
		{
			name:        "team plan eur",
			orderNumber: "order-9f2c",
			amount:      "104.97",
			currency:    "EUR",
			description: "Advanced Team Plan Subscription Plan",
			password:    "pw123",
			expected:    "e37b82d87e92b57d35b37bf9de4097902fe2f3f0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := GeneratePaymentHash(tt.orderNumber, tt.amount, tt.currency, tt.description, tt.password)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestGeneratePaymentHashPasswordChangesSignature(t *testing.T) {
	a := GeneratePaymentHash("order-123", "8.70", "USD", "Basic Subscription Plan", "secret")
	b := GeneratePaymentHash("order-123", "8.70", "USD", "Basic Subscription Plan", "other")

	assert.NotEqual(t, a, b)
	assert.Equal(t, "3d568b95cd09a3ae0dc7b1abc773fcf8e03bc07d", b)
}

func TestGeneratePaymentHashCaseInsensitiveInput(t *testing.T) {
	// Вход нормализуется в верхний регистр, поэтому регистр входных
	// полей на подпись не влияет
	a := GeneratePaymentHash("order-123", "8.70", "usd", "basic subscription plan", "SECRET")
	b := GeneratePaymentHash("ORDER-123", "8.70", "USD", "BASIC SUBSCRIPTION PLAN", "secret")

	assert.Equal(t, a, b)
}
