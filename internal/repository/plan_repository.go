package repository

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vitorsdevstuff/file-energy/internal/domain"
	"github.com/vitorsdevstuff/file-energy/pkg/logger"
	"github.com/google/uuid"
)

// PlanRepository интерфейс репозитория каталога тарифных планов
type PlanRepository interface {
	// GetByID возвращает план по ID
	GetByID(ctx context.Context, id string) (domain.Plan, error)

	// FindOrCreate возвращает существующий план с тем же (name, price)
	// или создает новый. Дедупликация ad-hoc планов: повторные одинаковые
	// покупки переиспользуют одну строку каталога.
	FindOrCreate(ctx context.Context, plan domain.Plan) (domain.Plan, error)
}

// planKey ключ дедупликации каталога
type planKey struct {
	name  string
	price float64
}

// InMemoryPlanRepository реализация репозитория планов в памяти
type InMemoryPlanRepository struct {
	plans  map[string]domain.Plan
	byKey  map[planKey]string
	mutex  sync.RWMutex
	log    *logger.Logger
}

// NewInMemoryPlanRepository создает новый репозиторий планов в памяти
func NewInMemoryPlanRepository(log *logger.Logger) *InMemoryPlanRepository {
	return &InMemoryPlanRepository{
		plans: make(map[string]domain.Plan),
		byKey: make(map[planKey]string),
		log:   log,
	}
}

// Seed наполняет каталог заранее известными планами (используется тестами
// и локальным окружением)
func (r *InMemoryPlanRepository) Seed(plans ...domain.Plan) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	for _, plan := range plans {
		r.plans[plan.ID] = plan
		r.byKey[planKey{plan.Name, plan.Price}] = plan.ID
	}
}

// GetByID возвращает план по ID
func (r *InMemoryPlanRepository) GetByID(ctx context.Context, id string) (domain.Plan, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	plan, exists := r.plans[id]
	if !exists {
		return domain.Plan{}, ErrNotFound
	}

	return plan, nil
}

// FindOrCreate возвращает существующий план по (name, price) или создает новый
func (r *InMemoryPlanRepository) FindOrCreate(ctx context.Context, plan domain.Plan) (domain.Plan, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	key := planKey{plan.Name, plan.Price}
	if id, exists := r.byKey[key]; exists {
		return r.plans[id], nil
	}

	if plan.ID == "" {
		plan.ID = uuid.NewString()
	}
	plan.CreatedAt = time.Now()
	plan.UpdatedAt = plan.CreatedAt

	r.plans[plan.ID] = plan
	r.byKey[key] = plan.ID

	return plan, nil
}

// PostgresPlanRepository реализация репозитория планов через PostgreSQL
type PostgresPlanRepository struct {
	db  *pgxpool.Pool
	log *logger.Logger
}

// NewPostgresPlanRepository создает новый репозиторий планов через PostgreSQL
func NewPostgresPlanRepository(db *pgxpool.Pool, log *logger.Logger) *PostgresPlanRepository {
	return &PostgresPlanRepository{
		db:  db,
		log: log,
	}
}

const planColumns = `
	id, name, price, currency, pdfs, questions, pdf_size, pdf_pages,
	status, created_at, updated_at
`

// GetByID возвращает план по ID из базы данных
func (r *PostgresPlanRepository) GetByID(ctx context.Context, id string) (domain.Plan, error) {
	query := `SELECT ` + planColumns + ` FROM plans WHERE id = $1`

	plan, err := scanPlan(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Plan{}, ErrNotFound
		}
		return domain.Plan{}, fmt.Errorf("failed to query plan: %w", err)
	}

	return plan, nil
}

// FindOrCreate возвращает существующий план по (name, price) или создает
// новый. При гонке вставки уникальный индекс (name, price) дает 23505,
// после чего запись перечитывается.
func (r *PostgresPlanRepository) FindOrCreate(ctx context.Context, plan domain.Plan) (domain.Plan, error) {
	existing, err := r.findByNamePrice(ctx, plan.Name, plan.Price)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return domain.Plan{}, err
	}

	if plan.ID == "" {
		plan.ID = uuid.NewString()
	}
	plan.CreatedAt = time.Now()
	plan.UpdatedAt = plan.CreatedAt

	query := `
		INSERT INTO plans (` + planColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err = r.db.Exec(ctx, query,
		plan.ID,
		plan.Name,
		plan.Price,
		plan.Currency,
		plan.PDFs,
		plan.Questions,
		plan.PDFSize,
		plan.PDFPages,
		plan.Status,
		plan.CreatedAt,
		plan.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			r.log.Debugw("Concurrent plan insert, re-reading", "name", plan.Name, "price", plan.Price)
			return r.findByNamePrice(ctx, plan.Name, plan.Price)
		}
		return domain.Plan{}, fmt.Errorf("failed to insert plan: %w", err)
	}

	return plan, nil
}

func (r *PostgresPlanRepository) findByNamePrice(ctx context.Context, name string, price float64) (domain.Plan, error) {
	query := `SELECT ` + planColumns + ` FROM plans WHERE name = $1 AND price = $2 LIMIT 1`

	plan, err := scanPlan(r.db.QueryRow(ctx, query, name, price))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Plan{}, ErrNotFound
		}
		return domain.Plan{}, fmt.Errorf("failed to query plan: %w", err)
	}

	return plan, nil
}

func scanPlan(row rowScanner) (domain.Plan, error) {
	var plan domain.Plan

	err := row.Scan(
		&plan.ID,
		&plan.Name,
		&plan.Price,
		&plan.Currency,
		&plan.PDFs,
		&plan.Questions,
		&plan.PDFSize,
		&plan.PDFPages,
		&plan.Status,
		&plan.CreatedAt,
		&plan.UpdatedAt,
	)
	if err != nil {
		return domain.Plan{}, err
	}

	return plan, nil
}
