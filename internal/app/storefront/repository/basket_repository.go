package repository

import (
	"context"
	"errors"
	"time"

	"ecomers/internal/app/storefront/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type basketRepository struct {
	db *gorm.DB
}

// NewBasketRepository создает новый репозиторий корзины
func NewBasketRepository(db *gorm.DB) BasketRepository {
	return &basketRepository{db: db}
}

// AddOrIncrement атомарно добавляет товар в корзину
// Конфликт по уникальному индексу (user_id, goods_id) превращается
// в инкремент количества, поэтому гонка "find or create" невозможна
func (r *basketRepository) AddOrIncrement(ctx context.Context, userID uuid.UUID, goodsID uint) error {
	item := entity.BasketItem{
		UserID:   userID,
		GoodsID:  goodsID,
		Quantity: 1,
	}

	result := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "goods_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"quantity":   gorm.Expr("basket_items.quantity + 1"),
			"updated_at": time.Now(),
		}),
	}).Create(&item)

	return result.Error
}

// GetByID получает позицию корзины по ID
func (r *basketRepository) GetByID(ctx context.Context, id uint) (*entity.BasketItem, error) {
	var item entity.BasketItem
	result := r.db.WithContext(ctx).First(&item, "id = ?", id)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrBasketItemNotFound
		}
		return nil, result.Error
	}

	return &item, nil
}

// ListByUser получает все позиции корзины пользователя вместе с товарами
func (r *basketRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]entity.BasketItem, error) {
	var items []entity.BasketItem
	result := r.db.WithContext(ctx).
		Preload("Goods").
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&items)

	if result.Error != nil {
		return nil, result.Error
	}

	return items, nil
}

// UpdateQuantity устанавливает количество позиции
// Нулевое и отрицательное количество не сохраняется никогда:
// такие позиции удаляются на уровне сервиса
func (r *basketRepository) UpdateQuantity(ctx context.Context, id uint, quantity int) error {
	result := r.db.WithContext(ctx).Model(&entity.BasketItem{}).
		Where("id = ?", id).
		Update("quantity", quantity)

	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ErrBasketItemNotFound
	}

	return nil
}

// Delete удаляет позицию корзины
func (r *basketRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&entity.BasketItem{}, "id = ?", id)

	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ErrBasketItemNotFound
	}

	return nil
}

// DeleteStale удаляет позиции, которые не менялись с указанного момента
// Используется фоновой очисткой брошенных корзин
func (r *basketRepository) DeleteStale(ctx context.Context, olderThan time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("updated_at < ?", olderThan).
		Delete(&entity.BasketItem{})

	if result.Error != nil {
		return 0, result.Error
	}

	return result.RowsAffected, nil
}
