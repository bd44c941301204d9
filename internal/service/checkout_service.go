package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/vitorsdevstuff/file-energy/internal/domain"
	"github.com/vitorsdevstuff/file-energy/internal/gateway/g2pay"
	"github.com/vitorsdevstuff/file-energy/internal/metrics"
	"github.com/vitorsdevstuff/file-energy/internal/pricing"
	"github.com/vitorsdevstuff/file-energy/internal/repository"
	"github.com/vitorsdevstuff/file-energy/pkg/logger"
)

// PaymentGateway интерфейс платежного шлюза, используемый сервисами.
// Реализуется клиентом G2Pay; в тестах подменяется заглушкой.
type PaymentGateway interface {
	CreateCheckoutSession(ctx context.Context, data g2pay.CheckoutRequest) (*g2pay.CheckoutResponse, error)
	VerifyPayment(ctx context.Context, referenceID string) (*g2pay.PaymentStatus, error)
}

// CheckoutService интерфейс сервиса оформления подписки
type CheckoutService interface {
	// Checkout оформляет подписку: пересчитывает цену на сервере, создает
	// PENDING-подписку и платежную сессию в шлюзе. Возвращает URL редиректа
	// на платежную страницу.
	Checkout(ctx context.Context, userID string, intent domain.CheckoutIntent) (string, error)
}

type checkoutService struct {
	baseURL  string
	users    repository.UserRepository
	plans    repository.PlanRepository
	subs     repository.SubscriptionRepository
	resolver *pricing.Resolver
	gateway  PaymentGateway
	metrics  metrics.PaymentMetrics
	log      *logger.Logger
}

// NewCheckoutService создает новый сервис оформления подписки
func NewCheckoutService(
	baseURL string,
	users repository.UserRepository,
	plans repository.PlanRepository,
	subs repository.SubscriptionRepository,
	resolver *pricing.Resolver,
	gateway PaymentGateway,
	m metrics.PaymentMetrics,
	log *logger.Logger,
) CheckoutService {
	return &checkoutService{
		baseURL:  baseURL,
		users:    users,
		plans:    plans,
		subs:     subs,
		resolver: resolver,
		gateway:  gateway,
		metrics:  m,
		log:      log,
	}
}

// Checkout оформляет подписку и возвращает URL платежной страницы
func (s *checkoutService) Checkout(ctx context.Context, userID string, intent domain.CheckoutIntent) (string, error) {
	if !g2pay.IsSupportedCurrency(intent.Currency) {
		return "", domain.NewValidationError(
			"Unsupported currency. Supported: %s", strings.Join(g2pay.SupportedCurrencies, ", "),
		)
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", domain.NewNotFoundError("user", userID)
		}
		return "", fmt.Errorf("failed to load user: %w", err)
	}

	// Цена всегда пересчитывается на сервере по опубликованным таблицам;
	// клиентская цена участвует только в сверке внутри резолвера
	resolved, err := s.resolver.Resolve(intent)
	if err != nil {
		return "", err
	}

	plan, err := s.plans.FindOrCreate(ctx, domain.Plan{
		Name:      resolved.Name,
		Price:     resolved.Price,
		Currency:  resolved.Currency,
		PDFs:      resolved.PDFs,
		Questions: resolved.Questions,
		PDFSize:   resolved.PDFSize,
		PDFPages:  resolved.PDFPages,
		Status:    true,
	})
	if err != nil {
		return "", fmt.Errorf("failed to resolve plan record: %w", err)
	}

	now := time.Now()
	subscription, err := s.subs.Create(ctx, domain.Subscription{
		UserID:         user.ID,
		PlanID:         plan.ID,
		Status:         domain.SubscriptionStatusPending,
		PDFs:           resolved.PDFs,
		Questions:      resolved.Questions,
		PDFSize:        resolved.PDFSize,
		PDFPages:       resolved.PDFPages,
		Currency:       resolved.Currency,
		PaymentGateway: domain.PaymentGatewayG2Pay,
		APIAccess:      resolved.APIAccess,
		Seats:          resolved.Seats,
		// Год минус день: подписка, купленная 15 марта, живет до 14 марта
		ExpiringAt: now.AddDate(1, 0, -1),
	})
	if err != nil {
		return "", fmt.Errorf("failed to create subscription: %w", err)
	}

	request := g2pay.BuildCheckoutRequest(g2pay.CreatePaymentParams{
		OrderID:        "order-" + subscription.ID.String(),
		Amount:         resolved.Price,
		Currency:       resolved.Currency,
		Description:    resolved.Name + " Subscription Plan",
		SubscriptionID: subscription.ID.String(),
		IsFile:         true,
	}, s.baseURL)

	response, err := s.gateway.CreateCheckoutSession(ctx, request)
	if err != nil {
		// Подписка остается PENDING: активации без оплаты не будет,
		// а повторный чекаут создаст новую запись
		s.log.Errorw("Failed to create checkout session",
			"error", err, "subscriptionID", subscription.ID, "userID", user.ID)
		return "", err
	}

	s.metrics.IncCheckoutCreated(resolved.Currency)
	s.log.Infow("Checkout session created",
		"subscriptionID", subscription.ID,
		"userID", user.ID,
		"plan", resolved.Name,
		"amount", resolved.Price,
		"currency", resolved.Currency)

	return response.Result.RedirectURL, nil
}
