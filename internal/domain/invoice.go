package domain

import (
	"github.com/google/uuid"
	"time"
)

// InvoiceStatusPaid единственный статус, с которым этот сервис создает инвойсы
const InvoiceStatusPaid = "PAID"

// Invoice представляет собой оплаченный инвойс.
// Создается исключительно реконсилятором вебхуков при подтверждении
// платежа, не более одного раза на подтверждение; далее неизменяем.
type Invoice struct {
	ID                   uuid.UUID `json:"id"`
	UserID               string    `json:"user_id"`
	PlanID               string    `json:"plan_id"`
	Status               string    `json:"status"`
	Amount               float64   `json:"amount"`
	Currency             string    `json:"currency"`
	PaidAt               time.Time `json:"paid_at"`
	PaymentGateway       string    `json:"payment_gateway"`
	GatewayTransactionID string    `json:"gateway_transaction_id,omitempty"`
	CreatedAt            time.Time `json:"created_at"`
}
