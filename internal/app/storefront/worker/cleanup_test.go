package worker

import (
	"context"
	"errors"
	"testing"
	"time"

	"ecomers/internal/app/storefront/repository/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestBasketCleaner_StartRunsInitialCleanup(t *testing.T) {
	basketRepo := new(mocks.MockBasketRepository)
	basketRepo.On("DeleteStale", mock.Anything, mock.AnythingOfType("time.Time")).Return(int64(3), nil)

	cleaner := NewBasketCleaner(basketRepo, 30*24*time.Hour)

	// Расписание далеко в будущем: сработать должен только начальный проход
	err := cleaner.Start(context.Background(), "0 3 * * *")
	require.NoError(t, err)
	defer cleaner.Stop()

	basketRepo.AssertCalled(t, "DeleteStale", mock.Anything, mock.AnythingOfType("time.Time"))
}

func TestBasketCleaner_CutoffRespectsTTL(t *testing.T) {
	basketRepo := new(mocks.MockBasketRepository)

	var gotCutoff time.Time
	basketRepo.On("DeleteStale", mock.Anything, mock.AnythingOfType("time.Time")).
		Run(func(args mock.Arguments) {
			gotCutoff = args.Get(1).(time.Time)
		}).
		Return(int64(0), nil)

	ttl := 30 * 24 * time.Hour
	cleaner := NewBasketCleaner(basketRepo, ttl)

	err := cleaner.Start(context.Background(), "0 3 * * *")
	require.NoError(t, err)
	defer cleaner.Stop()

	expected := time.Now().Add(-ttl)
	assert.WithinDuration(t, expected, gotCutoff, 5*time.Second)
}

func TestBasketCleaner_RepoErrorDoesNotPanic(t *testing.T) {
	basketRepo := new(mocks.MockBasketRepository)
	basketRepo.On("DeleteStale", mock.Anything, mock.AnythingOfType("time.Time")).
		Return(int64(0), errors.New("db error"))

	cleaner := NewBasketCleaner(basketRepo, 24*time.Hour)

	err := cleaner.Start(context.Background(), "0 3 * * *")
	require.NoError(t, err)
	cleaner.Stop()
}

func TestBasketCleaner_InvalidSchedule(t *testing.T) {
	basketRepo := new(mocks.MockBasketRepository)

	cleaner := NewBasketCleaner(basketRepo, 24*time.Hour)

	err := cleaner.Start(context.Background(), "not-a-schedule")
	assert.Error(t, err)
}
