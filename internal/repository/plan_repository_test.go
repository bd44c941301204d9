package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vitorsdevstuff/file-energy/internal/domain"
)

func TestFindOrCreateDeduplicatesByNameAndPrice(t *testing.T) {
	repo := NewInMemoryPlanRepository(testLogger())

	first, err := repo.FindOrCreate(context.Background(), domain.Plan{
		Name: "Basic", Price: 8.70, Currency: "USD", Status: true,
	})
	require.NoError(t, err)
	require.NotEmpty(t, first.ID)

	second, err := repo.FindOrCreate(context.Background(), domain.Plan{
		Name: "Basic", Price: 8.70, Currency: "USD", Status: true,
	})
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
}

func TestFindOrCreateDifferentPriceCreatesNewPlan(t *testing.T) {
	repo := NewInMemoryPlanRepository(testLogger())

	usd, err := repo.FindOrCreate(context.Background(), domain.Plan{Name: "Basic", Price: 8.70, Currency: "USD"})
	require.NoError(t, err)

	eur, err := repo.FindOrCreate(context.Background(), domain.Plan{Name: "Basic", Price: 7.99, Currency: "EUR"})
	require.NoError(t, err)

	assert.NotEqual(t, usd.ID, eur.ID)
}

func TestPlanSeedAndGetByID(t *testing.T) {
	repo := NewInMemoryPlanRepository(testLogger())
	repo.Seed(domain.Plan{ID: "2", Name: "Basic", Price: 7.99, Currency: "EUR"})

	plan, err := repo.GetByID(context.Background(), "2")
	require.NoError(t, err)
	assert.Equal(t, "Basic", plan.Name)

	// Seed регистрирует и ключ дедупликации
	same, err := repo.FindOrCreate(context.Background(), domain.Plan{Name: "Basic", Price: 7.99})
	require.NoError(t, err)
	assert.Equal(t, "2", same.ID)
}
