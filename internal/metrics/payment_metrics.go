package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/vitorsdevstuff/file-energy/pkg/logger"
)

// PaymentMetrics интерфейс для метрик платежей
type PaymentMetrics interface {
	IncCheckoutCreated(currency string)
	IncWebhookEvent(status string)
	IncSubscriptionActivated(currency string)
	IncSubscriptionCancelled(currency string)
	ObserveInvoiceAmount(amount float64, currency string)
}

type paymentMetrics struct {
	log                *logger.Logger
	checkoutsCreated   *prometheus.CounterVec
	webhookEvents      *prometheus.CounterVec
	subscriptionStatus *prometheus.CounterVec
	invoiceAmount      *prometheus.HistogramVec
}

// NewPaymentMetrics создает новые метрики платежей
func NewPaymentMetrics(registry *prometheus.Registry, log *logger.Logger) PaymentMetrics {
	checkoutsCreated := promauto.With(registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "checkouts_created_total",
			Help: "The total number of created checkout sessions",
		},
		[]string{"currency"},
	)

	webhookEvents := promauto.With(registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "webhook_events_total",
			Help: "The total number of received webhook notifications by status",
		},
		[]string{"status"},
	)

	subscriptionStatus := promauto.With(registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "subscriptions_status_total",
			Help: "The total number of subscription transitions by status",
		},
		[]string{"status", "currency"},
	)

	invoiceAmount := promauto.With(registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "invoice_amount",
			Help:    "Paid invoice amounts distribution",
			Buckets: prometheus.ExponentialBuckets(10, 10, 5), // 10, 100, 1000, 10000, 100000
		},
		[]string{"currency"},
	)

	return &paymentMetrics{
		log:                log,
		checkoutsCreated:   checkoutsCreated,
		webhookEvents:      webhookEvents,
		subscriptionStatus: subscriptionStatus,
		invoiceAmount:      invoiceAmount,
	}
}

// IncCheckoutCreated увеличивает счетчик созданных чекаутов
func (m *paymentMetrics) IncCheckoutCreated(currency string) {
	m.checkoutsCreated.WithLabelValues(currency).Inc()
}

// IncWebhookEvent увеличивает счетчик полученных вебхуков
func (m *paymentMetrics) IncWebhookEvent(status string) {
	m.webhookEvents.WithLabelValues(status).Inc()
}

// IncSubscriptionActivated увеличивает счетчик активированных подписок
func (m *paymentMetrics) IncSubscriptionActivated(currency string) {
	m.subscriptionStatus.WithLabelValues("active", currency).Inc()
}

// IncSubscriptionCancelled увеличивает счетчик отмененных подписок
func (m *paymentMetrics) IncSubscriptionCancelled(currency string) {
	m.subscriptionStatus.WithLabelValues("cancelled", currency).Inc()
}

// ObserveInvoiceAmount записывает сумму оплаченного инвойса
func (m *paymentMetrics) ObserveInvoiceAmount(amount float64, currency string) {
	m.invoiceAmount.WithLabelValues(currency).Observe(amount)
}

// NoOpMetrics заглушка метрик (используется тестами)
type NoOpMetrics struct{}

func (NoOpMetrics) IncCheckoutCreated(string)            {}
func (NoOpMetrics) IncWebhookEvent(string)               {}
func (NoOpMetrics) IncSubscriptionActivated(string)      {}
func (NoOpMetrics) IncSubscriptionCancelled(string)      {}
func (NoOpMetrics) ObserveInvoiceAmount(float64, string) {}
