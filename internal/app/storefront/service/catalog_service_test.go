package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"ecomers/internal/app/storefront/entity"
	"ecomers/internal/app/storefront/repository"
	"ecomers/internal/app/storefront/repository/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// Хелперы для создания тестовых данных

func newTestCategory() *entity.Category {
	return &entity.Category{
		ID:        1,
		Name:      "Electronics",
		CreatedAt: time.Now(),
	}
}

func newTestBrand() *entity.Brand {
	return &entity.Brand{
		ID:        1,
		Name:      "Acme",
		CreatedAt: time.Now(),
	}
}

func newTestGoods() *entity.Goods {
	return &entity.Goods{
		ID:          1,
		Name:        "Laptop",
		Description: "High-performance laptop for developers",
		Price:       1299.99,
		Currency:    "USD",
		CategoryID:  1,
		BrandID:     1,
		CreatedAt:   time.Now(),
	}
}

func newCatalogMocks() (*mocks.MockCategoryRepository, *mocks.MockBrandRepository, *mocks.MockGoodsRepository, *mocks.MockCatalogCache, *mocks.MockMessagePublisher) {
	return new(mocks.MockCategoryRepository),
		new(mocks.MockBrandRepository),
		new(mocks.MockGoodsRepository),
		new(mocks.MockCatalogCache),
		new(mocks.MockMessagePublisher)
}

// ==================== ListGoods Tests ====================

func TestCatalogService_ListGoods_FirstPageDefaults(t *testing.T) {
	ctx := context.Background()
	categoryRepo, brandRepo, goodsRepo, cache, producer := newCatalogMocks()

	goods := []entity.Goods{*newTestGoods()}
	goodsRepo.On("List", ctx, repository.GoodsFilter{
		Limit:  GoodsPageSize,
		Offset: 0,
	}).Return(goods, int64(1), nil)

	service := NewCatalogService(categoryRepo, brandRepo, goodsRepo, cache, producer)

	result, total, err := service.ListGoods(ctx, GoodsQuery{Page: 0})

	require.NoError(t, err)
	assert.Len(t, result, 1)
	assert.Equal(t, int64(1), total)

	goodsRepo.AssertExpectations(t)
}

func TestCatalogService_ListGoods_PageOffset(t *testing.T) {
	ctx := context.Background()
	categoryRepo, brandRepo, goodsRepo, cache, producer := newCatalogMocks()

	categoryID := uint(3)
	goodsRepo.On("List", ctx, repository.GoodsFilter{
		CategoryID: &categoryID,
		Query:      "lap",
		Limit:      GoodsPageSize,
		Offset:     2 * GoodsPageSize,
	}).Return([]entity.Goods{}, int64(42), nil)

	service := NewCatalogService(categoryRepo, brandRepo, goodsRepo, cache, producer)

	result, total, err := service.ListGoods(ctx, GoodsQuery{
		CategoryID: &categoryID,
		Query:      "lap",
		Page:       3,
	})

	require.NoError(t, err)
	assert.Empty(t, result)
	assert.Equal(t, int64(42), total)

	goodsRepo.AssertExpectations(t)
}

func TestCatalogService_ListGoods_RepoError(t *testing.T) {
	ctx := context.Background()
	categoryRepo, brandRepo, goodsRepo, cache, producer := newCatalogMocks()

	goodsRepo.On("List", ctx, mock.AnythingOfType("repository.GoodsFilter")).
		Return(nil, int64(0), errors.New("db error"))

	service := NewCatalogService(categoryRepo, brandRepo, goodsRepo, cache, producer)

	result, total, err := service.ListGoods(ctx, GoodsQuery{Page: 1})

	assert.Error(t, err)
	assert.Nil(t, result)
	assert.Zero(t, total)
	assert.Contains(t, err.Error(), "failed to list goods")
}

// ==================== Goods CRUD Tests ====================

func TestCatalogService_CreateGoods_Success(t *testing.T) {
	ctx := context.Background()
	categoryRepo, brandRepo, goodsRepo, cache, producer := newCatalogMocks()

	categoryRepo.On("GetByID", ctx, uint(1)).Return(newTestCategory(), nil)
	brandRepo.On("GetByID", ctx, uint(1)).Return(newTestBrand(), nil)
	goodsRepo.On("Create", ctx, mock.AnythingOfType("*entity.Goods")).Return(nil)

	service := NewCatalogService(categoryRepo, brandRepo, goodsRepo, cache, producer)

	req := &entity.CreateGoodsRequest{
		Name:       "Laptop",
		Price:      1299.99,
		CategoryID: 1,
		BrandID:    1,
	}

	goods, err := service.CreateGoods(ctx, req)

	require.NoError(t, err)
	assert.Equal(t, "Laptop", goods.Name)
	assert.Equal(t, "USD", goods.Currency)

	goodsRepo.AssertExpectations(t)
}

func TestCatalogService_CreateGoods_CategoryNotFound(t *testing.T) {
	ctx := context.Background()
	categoryRepo, brandRepo, goodsRepo, cache, producer := newCatalogMocks()

	categoryRepo.On("GetByID", ctx, uint(99)).Return(nil, repository.ErrCategoryNotFound)

	service := NewCatalogService(categoryRepo, brandRepo, goodsRepo, cache, producer)

	req := &entity.CreateGoodsRequest{
		Name:       "Laptop",
		Price:      1299.99,
		CategoryID: 99,
		BrandID:    1,
	}

	goods, err := service.CreateGoods(ctx, req)

	assert.Nil(t, goods)
	assert.ErrorIs(t, err, ErrCategoryNotFound)
	goodsRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCatalogService_UpdateGoods_PriceChangePublishesEvent(t *testing.T) {
	ctx := context.Background()
	categoryRepo, brandRepo, goodsRepo, cache, producer := newCatalogMocks()

	goodsRepo.On("GetByID", ctx, uint(1)).Return(newTestGoods(), nil)
	goodsRepo.On("Update", ctx, mock.AnythingOfType("*entity.Goods")).Return(nil)
	producer.On("PublishMessage", ctx, "1", mock.Anything).Return(nil)

	service := NewCatalogService(categoryRepo, brandRepo, goodsRepo, cache, producer)

	goods, err := service.UpdateGoods(ctx, 1, &entity.UpdateGoodsRequest{Price: 999.99})

	require.NoError(t, err)
	assert.Equal(t, 999.99, goods.Price)

	producer.AssertExpectations(t)
}

func TestCatalogService_UpdateGoods_SamePriceNoEvent(t *testing.T) {
	ctx := context.Background()
	categoryRepo, brandRepo, goodsRepo, cache, producer := newCatalogMocks()

	goodsRepo.On("GetByID", ctx, uint(1)).Return(newTestGoods(), nil)
	goodsRepo.On("Update", ctx, mock.AnythingOfType("*entity.Goods")).Return(nil)

	service := NewCatalogService(categoryRepo, brandRepo, goodsRepo, cache, producer)

	_, err := service.UpdateGoods(ctx, 1, &entity.UpdateGoodsRequest{Name: "Laptop Pro"})

	require.NoError(t, err)
	producer.AssertNotCalled(t, "PublishMessage", mock.Anything, mock.Anything, mock.Anything)
}

func TestCatalogService_UpdateGoods_KafkaErrorIgnored(t *testing.T) {
	ctx := context.Background()
	categoryRepo, brandRepo, goodsRepo, cache, producer := newCatalogMocks()

	goodsRepo.On("GetByID", ctx, uint(1)).Return(newTestGoods(), nil)
	goodsRepo.On("Update", ctx, mock.AnythingOfType("*entity.Goods")).Return(nil)
	producer.On("PublishMessage", ctx, "1", mock.Anything).Return(errors.New("kafka down"))

	service := NewCatalogService(categoryRepo, brandRepo, goodsRepo, cache, producer)

	goods, err := service.UpdateGoods(ctx, 1, &entity.UpdateGoodsRequest{Price: 999.99})

	// Ошибка Kafka не должна ломать обновление
	require.NoError(t, err)
	assert.NotNil(t, goods)
}

func TestCatalogService_DeleteGoods_NotFound(t *testing.T) {
	ctx := context.Background()
	categoryRepo, brandRepo, goodsRepo, cache, producer := newCatalogMocks()

	goodsRepo.On("Delete", ctx, uint(99)).Return(repository.ErrGoodsNotFound)

	service := NewCatalogService(categoryRepo, brandRepo, goodsRepo, cache, producer)

	err := service.DeleteGoods(ctx, 99)

	assert.ErrorIs(t, err, ErrGoodsNotFound)
}

// ==================== Category Tests ====================

func TestCatalogService_GetAllCategories_CacheHit(t *testing.T) {
	ctx := context.Background()
	categoryRepo, brandRepo, goodsRepo, cache, producer := newCatalogMocks()

	cached := []entity.Category{*newTestCategory()}
	cache.On("GetCategories", ctx).Return(cached, nil)

	service := NewCatalogService(categoryRepo, brandRepo, goodsRepo, cache, producer)

	categories, err := service.GetAllCategories(ctx)

	require.NoError(t, err)
	assert.Equal(t, cached, categories)
	categoryRepo.AssertNotCalled(t, "GetAll", mock.Anything)
}

func TestCatalogService_GetAllCategories_CacheMiss(t *testing.T) {
	ctx := context.Background()
	categoryRepo, brandRepo, goodsRepo, cache, producer := newCatalogMocks()

	fromDB := []entity.Category{*newTestCategory()}
	cache.On("GetCategories", ctx).Return([]entity.Category{}, nil)
	categoryRepo.On("GetAll", ctx).Return(fromDB, nil)
	cache.On("SetCategories", ctx, fromDB, referenceCacheTTL).Return(nil)

	service := NewCatalogService(categoryRepo, brandRepo, goodsRepo, cache, producer)

	categories, err := service.GetAllCategories(ctx)

	require.NoError(t, err)
	assert.Equal(t, fromDB, categories)

	cache.AssertExpectations(t)
	categoryRepo.AssertExpectations(t)
}

func TestCatalogService_CreateCategory_InvalidatesCache(t *testing.T) {
	ctx := context.Background()
	categoryRepo, brandRepo, goodsRepo, cache, producer := newCatalogMocks()

	categoryRepo.On("Create", ctx, mock.AnythingOfType("*entity.Category")).Return(nil)
	cache.On("DeleteCategories", ctx).Return(nil)

	service := NewCatalogService(categoryRepo, brandRepo, goodsRepo, cache, producer)

	category, err := service.CreateCategory(ctx, &entity.CreateCategoryRequest{Name: "Books"})

	require.NoError(t, err)
	assert.Equal(t, "Books", category.Name)

	cache.AssertExpectations(t)
}

func TestCatalogService_UpdateCategory_NotFound(t *testing.T) {
	ctx := context.Background()
	categoryRepo, brandRepo, goodsRepo, cache, producer := newCatalogMocks()

	categoryRepo.On("GetByID", ctx, uint(99)).Return(nil, repository.ErrCategoryNotFound)

	service := NewCatalogService(categoryRepo, brandRepo, goodsRepo, cache, producer)

	category, err := service.UpdateCategory(ctx, 99, &entity.UpdateCategoryRequest{Name: "Books"})

	assert.Nil(t, category)
	assert.ErrorIs(t, err, ErrCategoryNotFound)
}

// ==================== Brand Tests ====================

func TestCatalogService_GetAllBrands_CacheMiss(t *testing.T) {
	ctx := context.Background()
	categoryRepo, brandRepo, goodsRepo, cache, producer := newCatalogMocks()

	fromDB := []entity.Brand{*newTestBrand()}
	cache.On("GetBrands", ctx).Return([]entity.Brand{}, nil)
	brandRepo.On("GetAll", ctx).Return(fromDB, nil)
	cache.On("SetBrands", ctx, fromDB, referenceCacheTTL).Return(nil)

	service := NewCatalogService(categoryRepo, brandRepo, goodsRepo, cache, producer)

	brands, err := service.GetAllBrands(ctx)

	require.NoError(t, err)
	assert.Equal(t, fromDB, brands)
}

func TestCatalogService_DeleteBrand_InvalidatesCache(t *testing.T) {
	ctx := context.Background()
	categoryRepo, brandRepo, goodsRepo, cache, producer := newCatalogMocks()

	brandRepo.On("Delete", ctx, uint(1)).Return(nil)
	cache.On("DeleteBrands", ctx).Return(nil)

	service := NewCatalogService(categoryRepo, brandRepo, goodsRepo, cache, producer)

	err := service.DeleteBrand(ctx, 1)

	require.NoError(t, err)
	cache.AssertExpectations(t)
}
