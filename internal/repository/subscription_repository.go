package repository

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vitorsdevstuff/file-energy/internal/domain"
	"github.com/vitorsdevstuff/file-energy/pkg/logger"
	"github.com/google/uuid"
)

// SubscriptionRepository интерфейс репозитория подписок
type SubscriptionRepository interface {
	// Create создает новую подписку
	Create(ctx context.Context, subscription domain.Subscription) (domain.Subscription, error)

	// GetByID возвращает подписку по ID
	GetByID(ctx context.Context, id uuid.UUID) (domain.Subscription, error)

	// GetByUserID возвращает подписки пользователя
	GetByUserID(ctx context.Context, userID string) ([]domain.Subscription, error)

	// TransitionStatus атомарно переводит подписку из статуса from в to.
	// Возвращает актуальную подписку и признак того, что переход произошел
	// именно в этом вызове. Условное обновление (а не read-then-write)
	// закрывает гонку между конкурентными обработчиками вебхуков:
	// ровно один из них получает transitioned=true.
	TransitionStatus(ctx context.Context, id uuid.UUID, from, to domain.SubscriptionStatus, transactionID string) (domain.Subscription, bool, error)
}

// InMemorySubscriptionRepository реализация репозитория подписок в памяти
type InMemorySubscriptionRepository struct {
	subscriptions map[uuid.UUID]domain.Subscription
	mutex         sync.RWMutex
	log           *logger.Logger
}

// NewInMemorySubscriptionRepository создает новый репозиторий подписок в памяти
func NewInMemorySubscriptionRepository(log *logger.Logger) *InMemorySubscriptionRepository {
	return &InMemorySubscriptionRepository{
		subscriptions: make(map[uuid.UUID]domain.Subscription),
		log:           log,
	}
}

// Create создает новую подписку
func (r *InMemorySubscriptionRepository) Create(ctx context.Context, subscription domain.Subscription) (domain.Subscription, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if subscription.ID == uuid.Nil {
		subscription.ID = uuid.New()
	}
	subscription.CreatedAt = time.Now()
	subscription.UpdatedAt = time.Now()

	r.subscriptions[subscription.ID] = subscription

	return subscription, nil
}

// GetByID возвращает подписку по ID
func (r *InMemorySubscriptionRepository) GetByID(ctx context.Context, id uuid.UUID) (domain.Subscription, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	subscription, exists := r.subscriptions[id]
	if !exists {
		return domain.Subscription{}, ErrNotFound
	}

	return subscription, nil
}

// GetByUserID возвращает подписки пользователя
func (r *InMemorySubscriptionRepository) GetByUserID(ctx context.Context, userID string) ([]domain.Subscription, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	var subscriptions []domain.Subscription
	for _, subscription := range r.subscriptions {
		if subscription.UserID == userID {
			subscriptions = append(subscriptions, subscription)
		}
	}

	return subscriptions, nil
}

// TransitionStatus атомарно переводит подписку из статуса from в to
func (r *InMemorySubscriptionRepository) TransitionStatus(ctx context.Context, id uuid.UUID, from, to domain.SubscriptionStatus, transactionID string) (domain.Subscription, bool, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	subscription, exists := r.subscriptions[id]
	if !exists {
		return domain.Subscription{}, false, ErrNotFound
	}

	if subscription.Status != from {
		// Статус уже не from — переход не выполняем, возвращаем как есть
		return subscription, false, nil
	}

	subscription.Status = to
	if transactionID != "" {
		subscription.GatewayTransactionID = transactionID
	}
	subscription.UpdatedAt = time.Now()
	r.subscriptions[id] = subscription

	return subscription, true, nil
}

// PostgresSubscriptionRepository реализация репозитория подписок через PostgreSQL
type PostgresSubscriptionRepository struct {
	db  *pgxpool.Pool
	log *logger.Logger
}

// NewPostgresSubscriptionRepository создает новый репозиторий подписок через PostgreSQL
func NewPostgresSubscriptionRepository(db *pgxpool.Pool, log *logger.Logger) *PostgresSubscriptionRepository {
	return &PostgresSubscriptionRepository{
		db:  db,
		log: log,
	}
}

const subscriptionColumns = `
	id, user_id, plan_id, status, pdfs, questions, pdf_size, pdf_pages,
	currency, payment_gateway, gateway_transaction_id, api_access, seats,
	expiring_at, created_at, updated_at
`

// Create создает новую подписку в базе данных
func (r *PostgresSubscriptionRepository) Create(ctx context.Context, subscription domain.Subscription) (domain.Subscription, error) {
	if subscription.ID == uuid.Nil {
		subscription.ID = uuid.New()
	}
	subscription.CreatedAt = time.Now()
	subscription.UpdatedAt = subscription.CreatedAt

	query := `
		INSERT INTO subscriptions (` + subscriptionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
	`

	_, err := r.db.Exec(ctx, query,
		subscription.ID,
		subscription.UserID,
		subscription.PlanID,
		subscription.Status,
		subscription.PDFs,
		subscription.Questions,
		subscription.PDFSize,
		subscription.PDFPages,
		subscription.Currency,
		subscription.PaymentGateway,
		nullableString(subscription.GatewayTransactionID),
		subscription.APIAccess,
		subscription.Seats,
		subscription.ExpiringAt,
		subscription.CreatedAt,
		subscription.UpdatedAt,
	)
	if err != nil {
		return domain.Subscription{}, fmt.Errorf("failed to insert subscription: %w", err)
	}

	return subscription, nil
}

// GetByID возвращает подписку по ID из базы данных
func (r *PostgresSubscriptionRepository) GetByID(ctx context.Context, id uuid.UUID) (domain.Subscription, error) {
	query := `SELECT ` + subscriptionColumns + ` FROM subscriptions WHERE id = $1`

	subscription, err := scanSubscription(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Subscription{}, ErrNotFound
		}
		return domain.Subscription{}, fmt.Errorf("failed to query subscription: %w", err)
	}

	return subscription, nil
}

// GetByUserID возвращает подписки пользователя из базы данных
func (r *PostgresSubscriptionRepository) GetByUserID(ctx context.Context, userID string) ([]domain.Subscription, error) {
	query := `SELECT ` + subscriptionColumns + ` FROM subscriptions WHERE user_id = $1 ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query subscriptions: %w", err)
	}
	defer rows.Close()

	var subscriptions []domain.Subscription
	for rows.Next() {
		subscription, err := scanSubscription(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan subscription: %w", err)
		}
		subscriptions = append(subscriptions, subscription)
	}

	return subscriptions, rows.Err()
}

// TransitionStatus атомарно переводит подписку из статуса from в to.
// Условие status = from в WHERE гарантирует ровно один успешный переход
// при конкурентных доставках одного и того же вебхука.
func (r *PostgresSubscriptionRepository) TransitionStatus(ctx context.Context, id uuid.UUID, from, to domain.SubscriptionStatus, transactionID string) (domain.Subscription, bool, error) {
	query := `
		UPDATE subscriptions
		SET status = $3,
		    gateway_transaction_id = COALESCE(NULLIF($4, ''), gateway_transaction_id),
		    updated_at = NOW()
		WHERE id = $1 AND status = $2
		RETURNING ` + subscriptionColumns

	subscription, err := scanSubscription(r.db.QueryRow(ctx, query, id, from, to, transactionID))
	if err == nil {
		return subscription, true, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return domain.Subscription{}, false, fmt.Errorf("failed to transition subscription: %w", err)
	}

	// Переход не случился: либо подписки нет, либо статус уже не from
	subscription, getErr := r.GetByID(ctx, id)
	if getErr != nil {
		return domain.Subscription{}, false, getErr
	}

	return subscription, false, nil
}

// rowScanner общий интерфейс pgx.Row и pgx.Rows
type rowScanner interface {
	Scan(dest ...any) error
}

func scanSubscription(row rowScanner) (domain.Subscription, error) {
	var subscription domain.Subscription
	var transactionID *string

	err := row.Scan(
		&subscription.ID,
		&subscription.UserID,
		&subscription.PlanID,
		&subscription.Status,
		&subscription.PDFs,
		&subscription.Questions,
		&subscription.PDFSize,
		&subscription.PDFPages,
		&subscription.Currency,
		&subscription.PaymentGateway,
		&transactionID,
		&subscription.APIAccess,
		&subscription.Seats,
		&subscription.ExpiringAt,
		&subscription.CreatedAt,
		&subscription.UpdatedAt,
	)
	if err != nil {
		return domain.Subscription{}, err
	}

	if transactionID != nil {
		subscription.GatewayTransactionID = *transactionID
	}

	return subscription, nil
}

func nullableString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
