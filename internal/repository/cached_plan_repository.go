package repository

import (
	"context"

	"github.com/vitorsdevstuff/file-energy/internal/domain"
	"github.com/vitorsdevstuff/file-energy/pkg/logger"
)

// CachedPlanRepository реализует PlanRepository с кешированием.
// Каталог планов читается на каждом чекауте, а меняется редко.
type CachedPlanRepository struct {
	repo  PlanRepository
	cache *RedisCacheRepository
	log   *logger.Logger
}

// NewCachedPlanRepository создает новый репозиторий планов с кешированием
func NewCachedPlanRepository(
	repo PlanRepository,
	cache *RedisCacheRepository,
	log *logger.Logger,
) PlanRepository {
	return &CachedPlanRepository{
		repo:  repo,
		cache: cache,
		log:   log,
	}
}

// GetByID получает план по ID (сначала из кеша, потом из БД)
func (r *CachedPlanRepository) GetByID(ctx context.Context, id string) (domain.Plan, error) {
	// Пытаемся получить из кеша
	cachedPlan, err := r.cache.GetCachedPlan(ctx, id)
	if err != nil {
		r.log.Warnw("Error getting plan from cache", "error", err, "planID", id)
		// Продолжаем выполнение при ошибке кеша
	}

	// Если нашли в кеше, возвращаем
	if cachedPlan != nil {
		r.log.Debugw("Plan found in cache", "planID", id)
		return *cachedPlan, nil
	}

	// Если не нашли в кеше, ищем в БД
	plan, err := r.repo.GetByID(ctx, id)
	if err != nil {
		return domain.Plan{}, err
	}

	// Кешируем найденный план
	if err := r.cache.CachePlan(ctx, plan); err != nil {
		r.log.Warnw("Failed to cache plan after fetching", "error", err, "planID", id)
	}

	return plan, nil
}

// FindOrCreate возвращает план по (name, price) из кеша или основного хранилища
func (r *CachedPlanRepository) FindOrCreate(ctx context.Context, plan domain.Plan) (domain.Plan, error) {
	// Пытаемся получить из кеша по ключу (name, price)
	cachedPlan, err := r.cache.GetCachedPlanByKey(ctx, plan.Name, plan.Price)
	if err != nil {
		r.log.Warnw("Error getting plan from cache", "error", err, "name", plan.Name)
		// Продолжаем выполнение при ошибке кеша
	}

	if cachedPlan != nil {
		r.log.Debugw("Plan found in cache", "planID", cachedPlan.ID)
		return *cachedPlan, nil
	}

	// Если не нашли в кеше, идем в основное хранилище
	resolved, err := r.repo.FindOrCreate(ctx, plan)
	if err != nil {
		return domain.Plan{}, err
	}

	if err := r.cache.CachePlan(ctx, resolved); err != nil {
		r.log.Warnw("Failed to cache plan after FindOrCreate", "error", err, "planID", resolved.ID)
	}

	return resolved, nil
}
