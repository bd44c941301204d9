package domain

import (
	"github.com/google/uuid"
	"time"
)

// SubscriptionStatus статус подписки
type SubscriptionStatus string

const (
	SubscriptionStatusPending   SubscriptionStatus = "PENDING"
	SubscriptionStatusActive    SubscriptionStatus = "ACTIVE"
	SubscriptionStatusCancelled SubscriptionStatus = "CANCELLED"
)

// PaymentGatewayG2Pay имя платежного шлюза, через который проходят все платежи
const PaymentGatewayG2Pay = "g2pay"

// Subscription представляет собой модель подписки.
// Создается оркестратором в статусе PENDING; переводится в ACTIVE или
// CANCELLED только реконсилятором вебхуков. Квоты списываются вне этого
// сервиса. Записи никогда не удаляются физически.
type Subscription struct {
	ID                   uuid.UUID          `json:"id"`
	UserID               string             `json:"user_id"`
	PlanID               string             `json:"plan_id"`
	Status               SubscriptionStatus `json:"status"`
	PDFs                 int                `json:"pdfs"`
	Questions            int                `json:"questions"`
	PDFSize              int                `json:"pdf_size"`
	PDFPages             int                `json:"pdf_pages"`
	Currency             string             `json:"currency"`
	PaymentGateway       string             `json:"payment_gateway"`
	GatewayTransactionID string             `json:"gateway_transaction_id,omitempty"`
	APIAccess            bool               `json:"api_access"`
	Seats                int                `json:"seats,omitempty"`
	ExpiringAt           time.Time          `json:"expiring_at"`
	CreatedAt            time.Time          `json:"created_at"`
	UpdatedAt            time.Time          `json:"updated_at"`
}
