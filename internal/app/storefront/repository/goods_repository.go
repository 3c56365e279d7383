package repository

import (
	"context"
	"errors"

	"ecomers/internal/app/storefront/entity"

	"gorm.io/gorm"
)

type goodsRepository struct {
	db *gorm.DB
}

// NewGoodsRepository создает новый репозиторий товаров
func NewGoodsRepository(db *gorm.DB) GoodsRepository {
	return &goodsRepository{db: db}
}

// Create создает новый товар
func (r *goodsRepository) Create(ctx context.Context, goods *entity.Goods) error {
	result := r.db.WithContext(ctx).Create(goods)
	return result.Error
}

// GetByID получает товар по ID
func (r *goodsRepository) GetByID(ctx context.Context, id uint) (*entity.Goods, error) {
	var goods entity.Goods
	result := r.db.WithContext(ctx).First(&goods, "id = ?", id)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrGoodsNotFound
		}
		return nil, result.Error
	}

	return &goods, nil
}

// GetWithRelations получает товар вместе с категорией и брендом
func (r *goodsRepository) GetWithRelations(ctx context.Context, id uint) (*entity.Goods, error) {
	var goods entity.Goods
	result := r.db.WithContext(ctx).
		Preload("Category").
		Preload("Brand").
		First(&goods, "id = ?", id)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrGoodsNotFound
		}
		return nil, result.Error
	}

	return &goods, nil
}

// List получает страницу товаров по фильтру вместе с общим количеством совпадений
// Фильтры объединяются по AND, сортировка всегда по имени по возрастанию
func (r *goodsRepository) List(ctx context.Context, filter GoodsFilter) ([]entity.Goods, int64, error) {
	var total int64
	if err := r.applyFilter(ctx, filter).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var goods []entity.Goods
	result := r.applyFilter(ctx, filter).
		Preload("Category").
		Preload("Brand").
		Order("name ASC").
		Limit(filter.Limit).
		Offset(filter.Offset).
		Find(&goods)

	if result.Error != nil {
		return nil, 0, result.Error
	}

	return goods, total, nil
}

// applyFilter строит базовый запрос с условиями фильтра
func (r *goodsRepository) applyFilter(ctx context.Context, filter GoodsFilter) *gorm.DB {
	query := r.db.WithContext(ctx).Model(&entity.Goods{})

	if filter.CategoryID != nil {
		query = query.Where("category_id = ?", *filter.CategoryID)
	}
	if filter.BrandID != nil {
		query = query.Where("brand_id = ?", *filter.BrandID)
	}
	if filter.Query != "" {
		query = query.Where("name ILIKE ?", "%"+filter.Query+"%")
	}

	return query
}

// Update обновляет товар
func (r *goodsRepository) Update(ctx context.Context, goods *entity.Goods) error {
	result := r.db.WithContext(ctx).Model(goods).
		Where("id = ?", goods.ID).
		Updates(map[string]interface{}{
			"name":        goods.Name,
			"description": goods.Description,
			"price":       goods.Price,
			"image_url":   goods.ImageURL,
			"category_id": goods.CategoryID,
			"brand_id":    goods.BrandID,
		})

	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ErrGoodsNotFound
	}

	return nil
}

// Delete удаляет товар
func (r *goodsRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&entity.Goods{}, "id = ?", id)

	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ErrGoodsNotFound
	}

	return nil
}
