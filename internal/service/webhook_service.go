package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/vitorsdevstuff/file-energy/internal/domain"
	"github.com/vitorsdevstuff/file-energy/internal/kafka"
	"github.com/vitorsdevstuff/file-energy/internal/metrics"
	"github.com/vitorsdevstuff/file-energy/internal/repository"
	"github.com/vitorsdevstuff/file-energy/pkg/logger"
)

// Статусы платежа, присылаемые шлюзом. APPROVED и SUCCESS означают оплату,
// DECLINED и FAILED — отказ; остальные статусы игнорируются.
const (
	paymentStatusApproved = "APPROVED"
	paymentStatusSuccess  = "SUCCESS"
	paymentStatusDeclined = "DECLINED"
	paymentStatusFailed   = "FAILED"
)

// orderPrefix префикс, с которым referenceId уходит в шлюз при чекауте
const orderPrefix = "order-"

// WebhookService интерфейс сервиса сверки платежных уведомлений
type WebhookService interface {
	// ProcessNotification обрабатывает асинхронное уведомление шлюза.
	// Ошибки обработки возвращаются вызывающему, но сам вебхук при этом
	// все равно подтверждается — шлюз не должен бесконечно ретраить
	// уведомление, которое мы не можем применить.
	ProcessNotification(ctx context.Context, referenceID, status, transactionID string) error

	// ConfirmReturn обрабатывает синхронный возврат браузера со страницы
	// оплаты. Редирект сам по себе оплату не доказывает: статус платежа
	// перепроверяется запросом к шлюзу, и только подтвержденный платеж
	// активирует подписку.
	ConfirmReturn(ctx context.Context, subscriptionID string) error
}

type webhookService struct {
	subs     repository.SubscriptionRepository
	plans    repository.PlanRepository
	invoices repository.InvoiceRepository
	gateway  PaymentGateway
	producer kafka.Producer
	metrics  metrics.PaymentMetrics
	log      *logger.Logger
}

// NewWebhookService создает новый сервис сверки платежных уведомлений
func NewWebhookService(
	subs repository.SubscriptionRepository,
	plans repository.PlanRepository,
	invoices repository.InvoiceRepository,
	gateway PaymentGateway,
	producer kafka.Producer,
	m metrics.PaymentMetrics,
	log *logger.Logger,
) WebhookService {
	return &webhookService{
		subs:     subs,
		plans:    plans,
		invoices: invoices,
		gateway:  gateway,
		producer: producer,
		metrics:  m,
		log:      log,
	}
}

// ProcessNotification обрабатывает асинхронное уведомление шлюза
func (s *webhookService) ProcessNotification(ctx context.Context, referenceID, status, transactionID string) error {
	s.metrics.IncWebhookEvent(strings.ToUpper(status))

	id, err := parseSubscriptionID(referenceID)
	if err != nil {
		// Чужой или поврежденный referenceId: фиксируем и подтверждаем,
		// ретраи шлюза тут не помогут
		s.log.Warnw("Webhook with unparseable reference ID", "referenceID", referenceID, "error", err)
		return nil
	}

	switch strings.ToUpper(status) {
	case paymentStatusApproved, paymentStatusSuccess:
		return s.activate(ctx, id, transactionID)
	case paymentStatusDeclined, paymentStatusFailed:
		return s.cancel(ctx, id, transactionID)
	default:
		s.log.Infow("Ignoring webhook with unhandled payment status", "referenceID", referenceID, "status", status)
		return nil
	}
}

// ConfirmReturn обрабатывает синхронный возврат браузера со страницы оплаты
func (s *webhookService) ConfirmReturn(ctx context.Context, subscriptionID string) error {
	id, err := uuid.Parse(subscriptionID)
	if err != nil {
		return domain.NewValidationError("invalid subscription ID: %s", subscriptionID)
	}

	paymentStatus, err := s.gateway.VerifyPayment(ctx, orderPrefix+id.String())
	if err != nil {
		s.log.Errorw("Failed to verify payment with gateway", "error", err, "subscriptionID", id)
		return err
	}

	switch strings.ToUpper(paymentStatus.Result.Status) {
	case paymentStatusApproved, paymentStatusSuccess:
		return s.activate(ctx, id, paymentStatus.Result.TransactionID)
	default:
		s.log.Warnw("Gateway did not confirm payment on return",
			"subscriptionID", id, "status", paymentStatus.Result.Status)
		return domain.ErrPaymentNotConfirmed
	}
}

// activate переводит подписку PENDING -> ACTIVE и создает оплаченный инвойс.
// Условный переход в репозитории гарантирует, что при повторных доставках
// одного вебхука инвойс будет создан ровно один раз.
func (s *webhookService) activate(ctx context.Context, id uuid.UUID, transactionID string) error {
	subscription, transitioned, err := s.subs.TransitionStatus(
		ctx, id, domain.SubscriptionStatusPending, domain.SubscriptionStatusActive, transactionID,
	)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.log.Warnw("Webhook for unknown subscription", "subscriptionID", id)
			return domain.NewNotFoundError("subscription", id.String())
		}
		return fmt.Errorf("failed to activate subscription: %w", err)
	}

	if !transitioned {
		// Статус уже не PENDING: повторная доставка или поздний вебхук
		// по завершенной подписке. Терминальные статусы неизменяемы.
		s.log.Infow("Skipping activation, subscription already settled",
			"subscriptionID", id, "status", subscription.Status)
		return nil
	}

	plan, err := s.plans.GetByID(ctx, subscription.PlanID)
	if err != nil {
		return fmt.Errorf("failed to load plan for invoice: %w", err)
	}

	_, err = s.invoices.Create(ctx, domain.Invoice{
		UserID:               subscription.UserID,
		PlanID:               subscription.PlanID,
		Status:               domain.InvoiceStatusPaid,
		Amount:               plan.Price,
		Currency:             subscription.Currency,
		PaidAt:               time.Now(),
		PaymentGateway:       subscription.PaymentGateway,
		GatewayTransactionID: transactionID,
	})
	if err != nil {
		return fmt.Errorf("failed to create invoice: %w", err)
	}

	s.metrics.IncSubscriptionActivated(subscription.Currency)
	s.metrics.ObserveInvoiceAmount(plan.Price, subscription.Currency)
	s.log.Infow("Subscription activated",
		"subscriptionID", id, "userID", subscription.UserID, "transactionID", transactionID)

	if err := s.producer.PublishSubscriptionEvent(ctx, kafka.TopicSubscriptionActivated, subscription); err != nil {
		// Событие вторично по отношению к состоянию в БД
		s.log.Warnw("Failed to publish subscription activated event", "error", err, "subscriptionID", id)
	}

	return nil
}

// cancel переводит подписку PENDING -> CANCELLED
func (s *webhookService) cancel(ctx context.Context, id uuid.UUID, transactionID string) error {
	subscription, transitioned, err := s.subs.TransitionStatus(
		ctx, id, domain.SubscriptionStatusPending, domain.SubscriptionStatusCancelled, transactionID,
	)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.log.Warnw("Webhook for unknown subscription", "subscriptionID", id)
			return domain.NewNotFoundError("subscription", id.String())
		}
		return fmt.Errorf("failed to cancel subscription: %w", err)
	}

	if !transitioned {
		s.log.Infow("Skipping cancellation, subscription already settled",
			"subscriptionID", id, "status", subscription.Status)
		return nil
	}

	s.metrics.IncSubscriptionCancelled(subscription.Currency)
	s.log.Infow("Subscription cancelled by gateway",
		"subscriptionID", id, "userID", subscription.UserID)

	if err := s.producer.PublishSubscriptionEvent(ctx, kafka.TopicSubscriptionCancelled, subscription); err != nil {
		s.log.Warnw("Failed to publish subscription cancelled event", "error", err, "subscriptionID", id)
	}

	return nil
}

// parseSubscriptionID извлекает UUID подписки из referenceId шлюза
func parseSubscriptionID(referenceID string) (uuid.UUID, error) {
	return uuid.Parse(strings.TrimPrefix(referenceID, orderPrefix))
}
