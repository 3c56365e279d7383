package repository

import (
	"context"
	"errors"

	"ecomers/internal/app/storefront/entity"

	"gorm.io/gorm"
)

type brandRepository struct {
	db *gorm.DB
}

// NewBrandRepository создает новый репозиторий брендов
func NewBrandRepository(db *gorm.DB) BrandRepository {
	return &brandRepository{db: db}
}

// Create создает новый бренд
func (r *brandRepository) Create(ctx context.Context, brand *entity.Brand) error {
	result := r.db.WithContext(ctx).Create(brand)
	return result.Error
}

// GetByID получает бренд по ID
func (r *brandRepository) GetByID(ctx context.Context, id uint) (*entity.Brand, error) {
	var brand entity.Brand
	result := r.db.WithContext(ctx).First(&brand, "id = ?", id)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrBrandNotFound
		}
		return nil, result.Error
	}

	return &brand, nil
}

// GetAll получает все бренды, отсортированные по имени
func (r *brandRepository) GetAll(ctx context.Context) ([]entity.Brand, error) {
	var brands []entity.Brand
	result := r.db.WithContext(ctx).Order("name ASC").Find(&brands)

	if result.Error != nil {
		return nil, result.Error
	}

	return brands, nil
}

// Update обновляет бренд
func (r *brandRepository) Update(ctx context.Context, brand *entity.Brand) error {
	result := r.db.WithContext(ctx).Model(brand).
		Where("id = ?", brand.ID).
		Update("name", brand.Name)

	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ErrBrandNotFound
	}

	return nil
}

// Delete удаляет бренд
func (r *brandRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&entity.Brand{}, "id = ?", id)

	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ErrBrandNotFound
	}

	return nil
}
