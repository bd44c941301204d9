package repository

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vitorsdevstuff/file-energy/internal/domain"
	"github.com/vitorsdevstuff/file-energy/pkg/logger"
	"github.com/google/uuid"
)

// InvoiceRepository интерфейс репозитория инвойсов
type InvoiceRepository interface {
	// Create создает новый инвойс
	Create(ctx context.Context, invoice domain.Invoice) (domain.Invoice, error)

	// GetByUserID возвращает инвойсы пользователя
	GetByUserID(ctx context.Context, userID string) ([]domain.Invoice, error)
}

// InMemoryInvoiceRepository реализация репозитория инвойсов в памяти
type InMemoryInvoiceRepository struct {
	invoices []domain.Invoice
	mutex    sync.RWMutex
	log      *logger.Logger
}

// NewInMemoryInvoiceRepository создает новый репозиторий инвойсов в памяти
func NewInMemoryInvoiceRepository(log *logger.Logger) *InMemoryInvoiceRepository {
	return &InMemoryInvoiceRepository{log: log}
}

// Create создает новый инвойс
func (r *InMemoryInvoiceRepository) Create(ctx context.Context, invoice domain.Invoice) (domain.Invoice, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if invoice.ID == uuid.Nil {
		invoice.ID = uuid.New()
	}
	invoice.CreatedAt = time.Now()

	r.invoices = append(r.invoices, invoice)

	return invoice, nil
}

// GetByUserID возвращает инвойсы пользователя
func (r *InMemoryInvoiceRepository) GetByUserID(ctx context.Context, userID string) ([]domain.Invoice, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	var invoices []domain.Invoice
	for _, invoice := range r.invoices {
		if invoice.UserID == userID {
			invoices = append(invoices, invoice)
		}
	}

	return invoices, nil
}

// PostgresInvoiceRepository реализация репозитория инвойсов через PostgreSQL
type PostgresInvoiceRepository struct {
	db  *pgxpool.Pool
	log *logger.Logger
}

// NewPostgresInvoiceRepository создает новый репозиторий инвойсов через PostgreSQL
func NewPostgresInvoiceRepository(db *pgxpool.Pool, log *logger.Logger) *PostgresInvoiceRepository {
	return &PostgresInvoiceRepository{
		db:  db,
		log: log,
	}
}

const invoiceColumns = `
	id, user_id, plan_id, status, amount, currency, paid_at,
	payment_gateway, gateway_transaction_id, created_at
`

// Create создает новый инвойс в базе данных
func (r *PostgresInvoiceRepository) Create(ctx context.Context, invoice domain.Invoice) (domain.Invoice, error) {
	if invoice.ID == uuid.Nil {
		invoice.ID = uuid.New()
	}
	invoice.CreatedAt = time.Now()

	query := `
		INSERT INTO invoices (` + invoiceColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := r.db.Exec(ctx, query,
		invoice.ID,
		invoice.UserID,
		invoice.PlanID,
		invoice.Status,
		invoice.Amount,
		invoice.Currency,
		invoice.PaidAt,
		invoice.PaymentGateway,
		nullableString(invoice.GatewayTransactionID),
		invoice.CreatedAt,
	)
	if err != nil {
		return domain.Invoice{}, fmt.Errorf("failed to insert invoice: %w", err)
	}

	return invoice, nil
}

// GetByUserID возвращает инвойсы пользователя из базы данных
func (r *PostgresInvoiceRepository) GetByUserID(ctx context.Context, userID string) ([]domain.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE user_id = $1 ORDER BY paid_at DESC`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query invoices: %w", err)
	}
	defer rows.Close()

	var invoices []domain.Invoice
	for rows.Next() {
		var invoice domain.Invoice
		var transactionID *string

		err := rows.Scan(
			&invoice.ID,
			&invoice.UserID,
			&invoice.PlanID,
			&invoice.Status,
			&invoice.Amount,
			&invoice.Currency,
			&invoice.PaidAt,
			&invoice.PaymentGateway,
			&transactionID,
			&invoice.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan invoice: %w", err)
		}

		if transactionID != nil {
			invoice.GatewayTransactionID = *transactionID
		}

		invoices = append(invoices, invoice)
	}

	return invoices, rows.Err()
}
