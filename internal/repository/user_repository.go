package repository

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vitorsdevstuff/file-energy/internal/domain"
	"github.com/vitorsdevstuff/file-energy/pkg/logger"
)

// UserRepository интерфейс репозитория пользователей. Пользователи
// создаются identity-провайдером, этот сервис их только читает.
type UserRepository interface {
	// GetByID возвращает пользователя по ID
	GetByID(ctx context.Context, id string) (domain.User, error)
}

// InMemoryUserRepository реализация репозитория пользователей в памяти
type InMemoryUserRepository struct {
	users map[string]domain.User
	mutex sync.RWMutex
	log   *logger.Logger
}

// NewInMemoryUserRepository создает новый репозиторий пользователей в памяти
func NewInMemoryUserRepository(log *logger.Logger) *InMemoryUserRepository {
	return &InMemoryUserRepository{
		users: make(map[string]domain.User),
		log:   log,
	}
}

// Seed наполняет репозиторий пользователями (используется тестами)
func (r *InMemoryUserRepository) Seed(users ...domain.User) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	for _, user := range users {
		r.users[user.ID] = user
	}
}

// GetByID возвращает пользователя по ID
func (r *InMemoryUserRepository) GetByID(ctx context.Context, id string) (domain.User, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	user, exists := r.users[id]
	if !exists {
		return domain.User{}, ErrNotFound
	}

	return user, nil
}

// PostgresUserRepository реализация репозитория пользователей через PostgreSQL
type PostgresUserRepository struct {
	db  *pgxpool.Pool
	log *logger.Logger
}

// NewPostgresUserRepository создает новый репозиторий пользователей через PostgreSQL
func NewPostgresUserRepository(db *pgxpool.Pool, log *logger.Logger) *PostgresUserRepository {
	return &PostgresUserRepository{
		db:  db,
		log: log,
	}
}

// GetByID возвращает пользователя по ID из базы данных
func (r *PostgresUserRepository) GetByID(ctx context.Context, id string) (domain.User, error) {
	query := `SELECT id, email, name, created_at FROM users WHERE id = $1`

	var user domain.User
	var name *string

	err := r.db.QueryRow(ctx, query, id).Scan(&user.ID, &user.Email, &name, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.User{}, ErrNotFound
		}
		return domain.User{}, fmt.Errorf("failed to query user: %w", err)
	}

	if name != nil {
		user.Name = *name
	}

	return user, nil
}
