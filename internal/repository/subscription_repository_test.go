package repository

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vitorsdevstuff/file-energy/internal/domain"
	"github.com/vitorsdevstuff/file-energy/pkg/logger"
)

func testLogger() *logger.Logger {
	log := logger.New(logger.ERROR)
	log.SetOutput(io.Discard)
	return log
}

func TestInMemorySubscriptionCreateAssignsID(t *testing.T) {
	repo := NewInMemorySubscriptionRepository(testLogger())

	sub, err := repo.Create(context.Background(), domain.Subscription{
		UserID: "user-1",
		Status: domain.SubscriptionStatusPending,
	})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, sub.ID)
	assert.False(t, sub.CreatedAt.IsZero())

	got, err := repo.GetByID(context.Background(), sub.ID)
	require.NoError(t, err)
	assert.Equal(t, sub.ID, got.ID)
}

func TestInMemorySubscriptionGetByIDNotFound(t *testing.T) {
	repo := NewInMemorySubscriptionRepository(testLogger())

	_, err := repo.GetByID(context.Background(), uuid.New())
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestTransitionStatusHappyPath(t *testing.T) {
	repo := NewInMemorySubscriptionRepository(testLogger())
	sub, err := repo.Create(context.Background(), domain.Subscription{
		UserID: "user-1",
		Status: domain.SubscriptionStatusPending,
	})
	require.NoError(t, err)

	got, transitioned, err := repo.TransitionStatus(
		context.Background(), sub.ID,
		domain.SubscriptionStatusPending, domain.SubscriptionStatusActive, "tx-1",
	)
	require.NoError(t, err)
	assert.True(t, transitioned)
	assert.Equal(t, domain.SubscriptionStatusActive, got.Status)
	assert.Equal(t, "tx-1", got.GatewayTransactionID)
}

func TestTransitionStatusOnlyOnce(t *testing.T) {
	repo := NewInMemorySubscriptionRepository(testLogger())
	sub, err := repo.Create(context.Background(), domain.Subscription{
		UserID: "user-1",
		Status: domain.SubscriptionStatusPending,
	})
	require.NoError(t, err)

	_, first, err := repo.TransitionStatus(
		context.Background(), sub.ID,
		domain.SubscriptionStatusPending, domain.SubscriptionStatusActive, "tx-1",
	)
	require.NoError(t, err)
	require.True(t, first)

	// Повторный переход из PENDING невозможен: статус уже ACTIVE
	got, second, err := repo.TransitionStatus(
		context.Background(), sub.ID,
		domain.SubscriptionStatusPending, domain.SubscriptionStatusActive, "tx-2",
	)
	require.NoError(t, err)
	assert.False(t, second)
	assert.Equal(t, domain.SubscriptionStatusActive, got.Status)
	assert.Equal(t, "tx-1", got.GatewayTransactionID)
}

func TestTransitionStatusEmptyTransactionIDKeepsExisting(t *testing.T) {
	repo := NewInMemorySubscriptionRepository(testLogger())
	sub, err := repo.Create(context.Background(), domain.Subscription{
		UserID:               "user-1",
		Status:               domain.SubscriptionStatusPending,
		GatewayTransactionID: "tx-original",
	})
	require.NoError(t, err)

	got, transitioned, err := repo.TransitionStatus(
		context.Background(), sub.ID,
		domain.SubscriptionStatusPending, domain.SubscriptionStatusCancelled, "",
	)
	require.NoError(t, err)
	assert.True(t, transitioned)
	assert.Equal(t, "tx-original", got.GatewayTransactionID)
}

func TestTransitionStatusNotFound(t *testing.T) {
	repo := NewInMemorySubscriptionRepository(testLogger())

	_, _, err := repo.TransitionStatus(
		context.Background(), uuid.New(),
		domain.SubscriptionStatusPending, domain.SubscriptionStatusActive, "tx-1",
	)
	assert.True(t, errors.Is(err, ErrNotFound))
}
