package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"ecomers/internal/app/storefront/entity"
	"ecomers/internal/app/storefront/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type mockCatalogService struct {
	mock.Mock
}

func (m *mockCatalogService) ListGoods(ctx context.Context, query service.GoodsQuery) ([]entity.Goods, int64, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]entity.Goods), args.Get(1).(int64), args.Error(2)
}

func (m *mockCatalogService) GetGoods(ctx context.Context, id uint) (*entity.Goods, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Goods), args.Error(1)
}

func (m *mockCatalogService) CreateGoods(ctx context.Context, req *entity.CreateGoodsRequest) (*entity.Goods, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Goods), args.Error(1)
}

func (m *mockCatalogService) UpdateGoods(ctx context.Context, id uint, req *entity.UpdateGoodsRequest) (*entity.Goods, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Goods), args.Error(1)
}

func (m *mockCatalogService) DeleteGoods(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockCatalogService) GetAllCategories(ctx context.Context) ([]entity.Category, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Category), args.Error(1)
}

func (m *mockCatalogService) CreateCategory(ctx context.Context, req *entity.CreateCategoryRequest) (*entity.Category, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Category), args.Error(1)
}

func (m *mockCatalogService) UpdateCategory(ctx context.Context, id uint, req *entity.UpdateCategoryRequest) (*entity.Category, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Category), args.Error(1)
}

func (m *mockCatalogService) DeleteCategory(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockCatalogService) GetAllBrands(ctx context.Context) ([]entity.Brand, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Brand), args.Error(1)
}

func (m *mockCatalogService) CreateBrand(ctx context.Context, req *entity.CreateBrandRequest) (*entity.Brand, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Brand), args.Error(1)
}

func (m *mockCatalogService) UpdateBrand(ctx context.Context, id uint, req *entity.UpdateBrandRequest) (*entity.Brand, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Brand), args.Error(1)
}

func (m *mockCatalogService) DeleteBrand(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func setupTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

func TestListGoodsHandler_DefaultPage(t *testing.T) {
	router := setupTestRouter()
	mockService := new(mockCatalogService)

	mockService.On("ListGoods", mock.Anything, service.GoodsQuery{Page: 1}).
		Return([]entity.Goods{}, int64(0), nil)

	h := NewCatalogHandler(mockService)
	router.GET("/catalog/goods", h.ListGoods)

	req, _ := http.NewRequest(http.MethodGet, "/catalog/goods", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	mockService.AssertExpectations(t)
}

func TestListGoodsHandler_MalformedFiltersDroppedSilently(t *testing.T) {
	router := setupTestRouter()
	mockService := new(mockCatalogService)

	// Некорректные category/brand/page не попадают в запрос и не дают ошибку
	mockService.On("ListGoods", mock.Anything, service.GoodsQuery{Query: "laptop", Page: 1}).
		Return([]entity.Goods{}, int64(0), nil)

	h := NewCatalogHandler(mockService)
	router.GET("/catalog/goods", h.ListGoods)

	req, _ := http.NewRequest(http.MethodGet, "/catalog/goods?category=abc&brand=-5&page=xyz&q=laptop", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	mockService.AssertExpectations(t)
}

func TestListGoodsHandler_ValidFilters(t *testing.T) {
	router := setupTestRouter()
	mockService := new(mockCatalogService)

	categoryID := uint(2)
	brandID := uint(7)
	mockService.On("ListGoods", mock.Anything, service.GoodsQuery{
		CategoryID: &categoryID,
		BrandID:    &brandID,
		Page:       3,
	}).Return([]entity.Goods{}, int64(25), nil)

	h := NewCatalogHandler(mockService)
	router.GET("/catalog/goods", h.ListGoods)

	req, _ := http.NewRequest(http.MethodGet, "/catalog/goods?category=2&brand=7&page=3", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"total":25`)
	mockService.AssertExpectations(t)
}

func TestGetGoodsHandler_NotFound(t *testing.T) {
	router := setupTestRouter()
	mockService := new(mockCatalogService)

	mockService.On("GetGoods", mock.Anything, uint(99)).Return(nil, service.ErrGoodsNotFound)

	h := NewCatalogHandler(mockService)
	router.GET("/catalog/goods/:goods_id", h.GetGoods)

	req, _ := http.NewRequest(http.MethodGet, "/catalog/goods/99", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetGoodsHandler_BadID(t *testing.T) {
	router := setupTestRouter()
	mockService := new(mockCatalogService)

	h := NewCatalogHandler(mockService)
	router.GET("/catalog/goods/:goods_id", h.GetGoods)

	req, _ := http.NewRequest(http.MethodGet, "/catalog/goods/abc", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockService.AssertNotCalled(t, "GetGoods", mock.Anything, mock.Anything)
}

func TestGetAllCategoriesHandler_Success(t *testing.T) {
	router := setupTestRouter()
	mockService := new(mockCatalogService)

	mockService.On("GetAllCategories", mock.Anything).Return([]entity.Category{
		{ID: 1, Name: "Electronics"},
	}, nil)

	h := NewCatalogHandler(mockService)
	router.GET("/catalog/categories", h.GetAllCategories)

	req, _ := http.NewRequest(http.MethodGet, "/catalog/categories", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Electronics")
}
