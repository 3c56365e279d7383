package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"ecomers/internal/app/storefront/entity"
	"ecomers/internal/app/storefront/repository"
	"ecomers/internal/app/storefront/util"
	"ecomers/pkg/logger"
)

// GoodsPageSize фиксированный размер страницы каталога
const GoodsPageSize = 10

// referenceCacheTTL время жизни кеша категорий и брендов
const referenceCacheTTL = time.Hour

// GoodsQuery задает параметры выборки каталога
// nil-фильтры опущены, Page нумеруется с единицы
type GoodsQuery struct {
	CategoryID *uint
	BrandID    *uint
	Query      string
	Page       int
}

// CatalogService обрабатывает бизнес-логику каталога товаров
// Координирует работу репозиториев, Redis кеша и Kafka producer
type CatalogService struct {
	categoryRepo  repository.CategoryRepository
	brandRepo     repository.BrandRepository
	goodsRepo     repository.GoodsRepository
	cache         util.CatalogCache
	kafkaProducer util.MessagePublisher
}

// NewCatalogService создает новый сервис каталога с внедрением зависимостей
func NewCatalogService(
	categoryRepo repository.CategoryRepository,
	brandRepo repository.BrandRepository,
	goodsRepo repository.GoodsRepository,
	cache util.CatalogCache,
	kafkaProducer util.MessagePublisher,
) *CatalogService {
	return &CatalogService{
		categoryRepo:  categoryRepo,
		brandRepo:     brandRepo,
		goodsRepo:     goodsRepo,
		cache:         cache,
		kafkaProducer: kafkaProducer,
	}
}

// === GOODS ===

// ListGoods возвращает страницу товаров по фильтрам
// Фильтры объединяются по AND, сортировка по имени, размер страницы фиксирован
func (s *CatalogService) ListGoods(ctx context.Context, query GoodsQuery) ([]entity.Goods, int64, error) {
	page := query.Page
	if page < 1 {
		page = 1
	}

	filter := repository.GoodsFilter{
		CategoryID: query.CategoryID,
		BrandID:    query.BrandID,
		Query:      query.Query,
		Limit:      GoodsPageSize,
		Offset:     (page - 1) * GoodsPageSize,
	}

	goods, total, err := s.goodsRepo.List(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list goods: %w", err)
	}

	return goods, total, nil
}

// GetGoods получает товар по ID вместе с категорией и брендом
func (s *CatalogService) GetGoods(ctx context.Context, id uint) (*entity.Goods, error) {
	goods, err := s.goodsRepo.GetWithRelations(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrGoodsNotFound) {
			return nil, ErrGoodsNotFound
		}
		return nil, fmt.Errorf("failed to get goods: %w", err)
	}

	return goods, nil
}

// CreateGoods создает новый товар
// Проверяет существование категории и бренда перед созданием
func (s *CatalogService) CreateGoods(ctx context.Context, req *entity.CreateGoodsRequest) (*entity.Goods, error) {
	if _, err := s.categoryRepo.GetByID(ctx, req.CategoryID); err != nil {
		if errors.Is(err, repository.ErrCategoryNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("failed to verify category: %w", err)
	}

	if _, err := s.brandRepo.GetByID(ctx, req.BrandID); err != nil {
		if errors.Is(err, repository.ErrBrandNotFound) {
			return nil, ErrBrandNotFound
		}
		return nil, fmt.Errorf("failed to verify brand: %w", err)
	}

	currency := req.Currency
	if currency == "" {
		currency = "USD"
	}

	goods := &entity.Goods{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Currency:    currency,
		ImageURL:    req.ImageURL,
		CategoryID:  req.CategoryID,
		BrandID:     req.BrandID,
		CreatedAt:   time.Now(),
	}

	if err := s.goodsRepo.Create(ctx, goods); err != nil {
		return nil, fmt.Errorf("failed to create goods: %w", err)
	}

	return goods, nil
}

// UpdateGoods обновляет товар и отправляет событие GOODS_UPDATED при изменении цены
// Событие отправляется только при смене цены
func (s *CatalogService) UpdateGoods(ctx context.Context, id uint, req *entity.UpdateGoodsRequest) (*entity.Goods, error) {
	goods, err := s.goodsRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrGoodsNotFound) {
			return nil, ErrGoodsNotFound
		}
		return nil, fmt.Errorf("failed to get goods: %w", err)
	}

	oldPrice := goods.Price

	// Частичное обновление: применяем только переданные поля
	if req.Name != "" {
		goods.Name = req.Name
	}
	if req.Description != "" {
		goods.Description = req.Description
	}
	if req.Price > 0 {
		goods.Price = req.Price
	}
	if req.ImageURL != "" {
		goods.ImageURL = req.ImageURL
	}
	if req.CategoryID != 0 {
		if _, err := s.categoryRepo.GetByID(ctx, req.CategoryID); err != nil {
			if errors.Is(err, repository.ErrCategoryNotFound) {
				return nil, ErrCategoryNotFound
			}
			return nil, fmt.Errorf("failed to verify category: %w", err)
		}
		goods.CategoryID = req.CategoryID
	}
	if req.BrandID != 0 {
		if _, err := s.brandRepo.GetByID(ctx, req.BrandID); err != nil {
			if errors.Is(err, repository.ErrBrandNotFound) {
				return nil, ErrBrandNotFound
			}
			return nil, fmt.Errorf("failed to verify brand: %w", err)
		}
		goods.BrandID = req.BrandID
	}

	if err := s.goodsRepo.Update(ctx, goods); err != nil {
		return nil, fmt.Errorf("failed to update goods: %w", err)
	}

	if goods.Price != oldPrice {
		event := entity.GoodsEvent{
			EventType: "GOODS_UPDATED",
			GoodsID:   goods.ID,
			Name:      goods.Name,
			Price:     goods.Price,
			Currency:  goods.Currency,
			Timestamp: time.Now(),
		}
		if err := s.publishGoodsEvent(ctx, event); err != nil {
			// Товар уже обновлен, проблемы с Kafka не критичны
			logger.Warn().Err(err).Uint("goods_id", goods.ID).Msg("Failed to publish goods updated event")
		}
	}

	return goods, nil
}

// DeleteGoods удаляет товар
func (s *CatalogService) DeleteGoods(ctx context.Context, id uint) error {
	if err := s.goodsRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrGoodsNotFound) {
			return ErrGoodsNotFound
		}
		return fmt.Errorf("failed to delete goods: %w", err)
	}

	return nil
}

// === CATEGORIES ===

// GetAllCategories получает все категории с кешированием в Redis
// Сначала проверяет кеш, если нет - загружает из БД и кеширует
func (s *CatalogService) GetAllCategories(ctx context.Context) ([]entity.Category, error) {
	categories, err := s.cache.GetCategories(ctx)
	if err == nil && len(categories) > 0 {
		return categories, nil
	}

	categories, err = s.categoryRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get categories: %w", err)
	}

	if err := s.cache.SetCategories(ctx, categories, referenceCacheTTL); err != nil {
		// Данные получены из БД, проблемы с кешем не критичны
		logger.Warn().Err(err).Msg("Failed to cache categories")
	}

	return categories, nil
}

// CreateCategory создает новую категорию и инвалидирует кеш
func (s *CatalogService) CreateCategory(ctx context.Context, req *entity.CreateCategoryRequest) (*entity.Category, error) {
	category := &entity.Category{
		Name:      req.Name,
		CreatedAt: time.Now(),
	}

	if err := s.categoryRepo.Create(ctx, category); err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}

	s.invalidateCategories(ctx)

	return category, nil
}

// UpdateCategory обновляет категорию и инвалидирует кеш
func (s *CatalogService) UpdateCategory(ctx context.Context, id uint, req *entity.UpdateCategoryRequest) (*entity.Category, error) {
	category, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrCategoryNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("failed to get category: %w", err)
	}

	category.Name = req.Name

	if err := s.categoryRepo.Update(ctx, category); err != nil {
		return nil, fmt.Errorf("failed to update category: %w", err)
	}

	s.invalidateCategories(ctx)

	return category, nil
}

// DeleteCategory удаляет категорию и инвалидирует кеш
func (s *CatalogService) DeleteCategory(ctx context.Context, id uint) error {
	if err := s.categoryRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrCategoryNotFound) {
			return ErrCategoryNotFound
		}
		return fmt.Errorf("failed to delete category: %w", err)
	}

	s.invalidateCategories(ctx)

	return nil
}

// === BRANDS ===

// GetAllBrands получает все бренды с кешированием в Redis
func (s *CatalogService) GetAllBrands(ctx context.Context) ([]entity.Brand, error) {
	brands, err := s.cache.GetBrands(ctx)
	if err == nil && len(brands) > 0 {
		return brands, nil
	}

	brands, err = s.brandRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get brands: %w", err)
	}

	if err := s.cache.SetBrands(ctx, brands, referenceCacheTTL); err != nil {
		logger.Warn().Err(err).Msg("Failed to cache brands")
	}

	return brands, nil
}

// CreateBrand создает новый бренд и инвалидирует кеш
func (s *CatalogService) CreateBrand(ctx context.Context, req *entity.CreateBrandRequest) (*entity.Brand, error) {
	brand := &entity.Brand{
		Name:      req.Name,
		CreatedAt: time.Now(),
	}

	if err := s.brandRepo.Create(ctx, brand); err != nil {
		return nil, fmt.Errorf("failed to create brand: %w", err)
	}

	s.invalidateBrands(ctx)

	return brand, nil
}

// UpdateBrand обновляет бренд и инвалидирует кеш
func (s *CatalogService) UpdateBrand(ctx context.Context, id uint, req *entity.UpdateBrandRequest) (*entity.Brand, error) {
	brand, err := s.brandRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrBrandNotFound) {
			return nil, ErrBrandNotFound
		}
		return nil, fmt.Errorf("failed to get brand: %w", err)
	}

	brand.Name = req.Name

	if err := s.brandRepo.Update(ctx, brand); err != nil {
		return nil, fmt.Errorf("failed to update brand: %w", err)
	}

	s.invalidateBrands(ctx)

	return brand, nil
}

// DeleteBrand удаляет бренд и инвалидирует кеш
func (s *CatalogService) DeleteBrand(ctx context.Context, id uint) error {
	if err := s.brandRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrBrandNotFound) {
			return ErrBrandNotFound
		}
		return fmt.Errorf("failed to delete brand: %w", err)
	}

	s.invalidateBrands(ctx)

	return nil
}

// invalidateCategories сбрасывает кеш категорий после мутации
func (s *CatalogService) invalidateCategories(ctx context.Context) {
	if err := s.cache.DeleteCategories(ctx); err != nil {
		logger.Warn().Err(err).Msg("Failed to invalidate categories cache")
	}
}

// invalidateBrands сбрасывает кеш брендов после мутации
func (s *CatalogService) invalidateBrands(ctx context.Context) {
	if err := s.cache.DeleteBrands(ctx); err != nil {
		logger.Warn().Err(err).Msg("Failed to invalidate brands cache")
	}
}

// publishGoodsEvent отправляет событие о товаре в Kafka
// Key - это GoodsID для правильного партиционирования
func (s *CatalogService) publishGoodsEvent(ctx context.Context, event entity.GoodsEvent) error {
	eventData, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal goods event: %w", err)
	}

	key := fmt.Sprintf("%d", event.GoodsID)
	if err := s.kafkaProducer.PublishMessage(ctx, key, eventData); err != nil {
		return fmt.Errorf("failed to publish to kafka: %w", err)
	}

	return nil
}
