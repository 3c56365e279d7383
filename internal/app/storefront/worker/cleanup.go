package worker

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"

	"ecomers/internal/app/storefront/repository"
	"ecomers/pkg/logger"
	"ecomers/pkg/metrics"
)

// BasketCleaner периодически удаляет устаревшие позиции корзин
// Позиция считается устаревшей, если не обновлялась дольше ttl
type BasketCleaner struct {
	cron       *cron.Cron
	basketRepo repository.BasketRepository
	ttl        time.Duration
}

func NewBasketCleaner(basketRepo repository.BasketRepository, ttl time.Duration) *BasketCleaner {
	return &BasketCleaner{
		cron:       cron.New(),
		basketRepo: basketRepo,
		ttl:        ttl,
	}
}

// Start регистрирует задачу по расписанию и сразу выполняет первый проход
func (w *BasketCleaner) Start(ctx context.Context, schedule string) error {
	logger.Info().Str("schedule", schedule).Dur("ttl", w.ttl).Msg("Starting basket cleanup scheduler")

	_, err := w.cron.AddFunc(schedule, func() {
		w.runCleanup(ctx)
	})
	if err != nil {
		return err
	}

	w.cron.Start()

	w.runCleanup(ctx)

	return nil
}

// Stop останавливает планировщик и дожидается завершения текущей задачи
func (w *BasketCleaner) Stop() {
	logger.Info().Msg("Stopping basket cleanup scheduler")
	ctx := w.cron.Stop()
	<-ctx.Done()
	logger.Info().Msg("Basket cleanup scheduler stopped")
}

func (w *BasketCleaner) runCleanup(ctx context.Context) {
	olderThan := time.Now().Add(-w.ttl)

	purged, err := w.basketRepo.DeleteStale(ctx, olderThan)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to purge stale basket items")
		return
	}

	if purged > 0 {
		metrics.BasketItemsPurged.Add(float64(purged))
	}

	logger.Info().Int64("purged", purged).Msg("Basket cleanup completed")
}
