package util

import (
	"context"
	"time"

	"ecomers/internal/app/storefront/entity"
)

// CatalogCache интерфейс кеша справочников каталога
// Используется для dependency injection и упрощения тестирования
type CatalogCache interface {
	SetCategories(ctx context.Context, categories []entity.Category, ttl time.Duration) error
	GetCategories(ctx context.Context) ([]entity.Category, error)
	DeleteCategories(ctx context.Context) error
	SetBrands(ctx context.Context, brands []entity.Brand, ttl time.Duration) error
	GetBrands(ctx context.Context) ([]entity.Brand, error)
	DeleteBrands(ctx context.Context) error
	Close() error
}

// MessagePublisher интерфейс для отправки сообщений в очередь (Kafka)
// Используется для dependency injection и упрощения тестирования
type MessagePublisher interface {
	PublishMessage(ctx context.Context, key string, value []byte) error
	Close() error
}
