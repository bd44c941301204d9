package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/vitorsdevstuff/file-energy/internal/domain"
	"github.com/vitorsdevstuff/file-energy/pkg/logger"
)

const (
	// Префиксы ключей для различных типов данных
	planKeyPrefix    = "plan:"
	planKeyKeyPrefix = "plan_key:"

	// TTL для кэша
	defaultCacheTTL = 15 * time.Minute
)

// RedisCacheRepository реализует кеширование для репозиториев с использованием Redis
type RedisCacheRepository struct {
	client *redis.Client
	log    *logger.Logger
}

// NewRedisCacheRepository создает новый экземпляр Redis репозитория
func NewRedisCacheRepository(redisAddr, redisPassword string, redisDB int, log *logger.Logger) (*RedisCacheRepository, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     redisAddr,
		Password: redisPassword,
		DB:       redisDB,
	})

	// Проверяем соединение с Redis
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		log.Errorw("Failed to connect to Redis", "error", err)
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	log.Infow("Connected to Redis successfully", "addr", redisAddr)
	return &RedisCacheRepository{
		client: client,
		log:    log,
	}, nil
}

// Close закрывает соединение с Redis
func (r *RedisCacheRepository) Close() error {
	return r.client.Close()
}

// CachePlan кеширует план в Redis по ID и по ключу (name, price)
func (r *RedisCacheRepository) CachePlan(ctx context.Context, plan domain.Plan) error {
	data, err := json.Marshal(plan)
	if err != nil {
		r.log.Errorw("Failed to marshal plan for caching", "error", err, "planID", plan.ID)
		return fmt.Errorf("failed to marshal plan: %w", err)
	}

	idKey := fmt.Sprintf("%s%s", planKeyPrefix, plan.ID)
	if err := r.client.Set(ctx, idKey, data, defaultCacheTTL).Err(); err != nil {
		r.log.Errorw("Failed to cache plan in Redis", "error", err, "planID", plan.ID)
		return fmt.Errorf("failed to cache plan: %w", err)
	}

	lookupKey := planLookupKey(plan.Name, plan.Price)
	if err := r.client.Set(ctx, lookupKey, data, defaultCacheTTL).Err(); err != nil {
		r.log.Errorw("Failed to cache plan lookup key in Redis", "error", err, "planID", plan.ID)
		return fmt.Errorf("failed to cache plan lookup key: %w", err)
	}

	r.log.Debugw("Plan cached successfully", "planID", plan.ID)
	return nil
}

// GetCachedPlan получает план из кеша по ID
func (r *RedisCacheRepository) GetCachedPlan(ctx context.Context, planID string) (*domain.Plan, error) {
	key := fmt.Sprintf("%s%s", planKeyPrefix, planID)
	return r.getPlan(ctx, key)
}

// GetCachedPlanByKey получает план из кеша по ключу (name, price)
func (r *RedisCacheRepository) GetCachedPlanByKey(ctx context.Context, name string, price float64) (*domain.Plan, error) {
	return r.getPlan(ctx, planLookupKey(name, price))
}

func (r *RedisCacheRepository) getPlan(ctx context.Context, key string) (*domain.Plan, error) {
	data, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			// Ключ не найден в кеше
			r.log.Debugw("Plan not found in cache", "key", key)
			return nil, nil // Возвращаем nil вместо ошибки
		}
		r.log.Errorw("Error getting plan from Redis", "error", err, "key", key)
		return nil, fmt.Errorf("failed to get plan from cache: %w", err)
	}

	var plan domain.Plan
	if err := json.Unmarshal(data, &plan); err != nil {
		r.log.Errorw("Failed to unmarshal cached plan", "error", err, "key", key)
		return nil, fmt.Errorf("failed to unmarshal cached plan: %w", err)
	}

	r.log.Debugw("Plan retrieved from cache", "planID", plan.ID)
	return &plan, nil
}

// DeleteCachedPlan удаляет план из кеша
func (r *RedisCacheRepository) DeleteCachedPlan(ctx context.Context, plan domain.Plan) error {
	idKey := fmt.Sprintf("%s%s", planKeyPrefix, plan.ID)
	lookupKey := planLookupKey(plan.Name, plan.Price)

	if err := r.client.Del(ctx, idKey, lookupKey).Err(); err != nil {
		r.log.Errorw("Failed to delete plan from cache", "error", err, "planID", plan.ID)
		return fmt.Errorf("failed to delete plan from cache: %w", err)
	}

	r.log.Debugw("Plan deleted from cache", "planID", plan.ID)
	return nil
}

func planLookupKey(name string, price float64) string {
	return fmt.Sprintf("%s%s:%.2f", planKeyKeyPrefix, name, price)
}
