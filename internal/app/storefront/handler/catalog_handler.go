package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"ecomers/internal/app/storefront/entity"
	"ecomers/internal/app/storefront/service"
)

type CatalogServiceInterface interface {
	ListGoods(ctx context.Context, query service.GoodsQuery) ([]entity.Goods, int64, error)
	GetGoods(ctx context.Context, id uint) (*entity.Goods, error)
	CreateGoods(ctx context.Context, req *entity.CreateGoodsRequest) (*entity.Goods, error)
	UpdateGoods(ctx context.Context, id uint, req *entity.UpdateGoodsRequest) (*entity.Goods, error)
	DeleteGoods(ctx context.Context, id uint) error
	GetAllCategories(ctx context.Context) ([]entity.Category, error)
	CreateCategory(ctx context.Context, req *entity.CreateCategoryRequest) (*entity.Category, error)
	UpdateCategory(ctx context.Context, id uint, req *entity.UpdateCategoryRequest) (*entity.Category, error)
	DeleteCategory(ctx context.Context, id uint) error
	GetAllBrands(ctx context.Context) ([]entity.Brand, error)
	CreateBrand(ctx context.Context, req *entity.CreateBrandRequest) (*entity.Brand, error)
	UpdateBrand(ctx context.Context, id uint, req *entity.UpdateBrandRequest) (*entity.Brand, error)
	DeleteBrand(ctx context.Context, id uint) error
}

type CatalogHandler struct {
	catalogService CatalogServiceInterface
	validator      *validator.Validate
}

func NewCatalogHandler(catalogService CatalogServiceInterface) *CatalogHandler {
	return &CatalogHandler{
		catalogService: catalogService,
		validator:      validator.New(),
	}
}

// ListGoods возвращает страницу каталога
// Некорректные значения category/brand молча игнорируются, как и page < 1
func (h *CatalogHandler) ListGoods(c *gin.Context) {
	query := service.GoodsQuery{
		Query: c.Query("q"),
		Page:  1,
	}

	var selectedCategory, selectedBrand string

	if raw := c.Query("category"); raw != "" {
		if id, err := strconv.ParseUint(raw, 10, 32); err == nil {
			categoryID := uint(id)
			query.CategoryID = &categoryID
			selectedCategory = raw
		}
	}

	if raw := c.Query("brand"); raw != "" {
		if id, err := strconv.ParseUint(raw, 10, 32); err == nil {
			brandID := uint(id)
			query.BrandID = &brandID
			selectedBrand = raw
		}
	}

	if raw := c.Query("page"); raw != "" {
		if page, err := strconv.Atoi(raw); err == nil && page > 0 {
			query.Page = page
		}
	}

	goods, total, err := h.catalogService.ListGoods(c.Request.Context(), query)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Internal Server Error",
			"message": "Failed to list goods",
		})
		return
	}

	if goods == nil {
		goods = []entity.Goods{}
	}

	c.JSON(http.StatusOK, entity.GoodsListResponse{
		Goods:            goods,
		Total:            total,
		Page:             query.Page,
		PageSize:         service.GoodsPageSize,
		SelectedCategory: selectedCategory,
		SelectedBrand:    selectedBrand,
		SearchQuery:      query.Query,
	})
}

func (h *CatalogHandler) GetGoods(c *gin.Context) {
	id, ok := parseUintParam(c, "goods_id")
	if !ok {
		return
	}

	goods, err := h.catalogService.GetGoods(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrGoodsNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error":   "Not Found",
				"message": "Goods not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Internal Server Error",
			"message": "Failed to get goods",
		})
		return
	}

	c.JSON(http.StatusOK, goods)
}

func (h *CatalogHandler) GetAllCategories(c *gin.Context) {
	categories, err := h.catalogService.GetAllCategories(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Internal Server Error",
			"message": "Failed to get categories",
		})
		return
	}

	c.JSON(http.StatusOK, entity.CategoryListResponse{
		Categories: categories,
		Total:      len(categories),
	})
}

func (h *CatalogHandler) GetAllBrands(c *gin.Context) {
	brands, err := h.catalogService.GetAllBrands(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Internal Server Error",
			"message": "Failed to get brands",
		})
		return
	}

	c.JSON(http.StatusOK, entity.BrandListResponse{
		Brands: brands,
		Total:  len(brands),
	})
}

// === Админские операции ===

func (h *CatalogHandler) CreateGoods(c *gin.Context) {
	var req entity.CreateGoodsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Bad Request",
			"message": "Invalid request body",
		})
		return
	}

	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Bad Request",
			"message": formatValidationError(err),
		})
		return
	}

	goods, err := h.catalogService.CreateGoods(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCategoryNotFound):
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   "Bad Request",
				"message": "Category not found",
			})
		case errors.Is(err, service.ErrBrandNotFound):
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   "Bad Request",
				"message": "Brand not found",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error":   "Internal Server Error",
				"message": "Failed to create goods",
			})
		}
		return
	}

	c.JSON(http.StatusCreated, goods)
}

func (h *CatalogHandler) UpdateGoods(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	var req entity.UpdateGoodsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Bad Request",
			"message": "Invalid request body",
		})
		return
	}

	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Bad Request",
			"message": formatValidationError(err),
		})
		return
	}

	goods, err := h.catalogService.UpdateGoods(c.Request.Context(), id, &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrGoodsNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error":   "Not Found",
				"message": "Goods not found",
			})
		case errors.Is(err, service.ErrCategoryNotFound):
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   "Bad Request",
				"message": "Category not found",
			})
		case errors.Is(err, service.ErrBrandNotFound):
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   "Bad Request",
				"message": "Brand not found",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error":   "Internal Server Error",
				"message": "Failed to update goods",
			})
		}
		return
	}

	c.JSON(http.StatusOK, goods)
}

func (h *CatalogHandler) DeleteGoods(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	if err := h.catalogService.DeleteGoods(c.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrGoodsNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error":   "Not Found",
				"message": "Goods not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Internal Server Error",
			"message": "Failed to delete goods",
		})
		return
	}

	c.JSON(http.StatusOK, entity.SuccessResponse{
		Message: "Goods deleted successfully",
	})
}

func (h *CatalogHandler) CreateCategory(c *gin.Context) {
	var req entity.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Bad Request",
			"message": "Invalid request body",
		})
		return
	}

	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Bad Request",
			"message": formatValidationError(err),
		})
		return
	}

	category, err := h.catalogService.CreateCategory(c.Request.Context(), &req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Internal Server Error",
			"message": "Failed to create category",
		})
		return
	}

	c.JSON(http.StatusCreated, category)
}

func (h *CatalogHandler) UpdateCategory(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	var req entity.UpdateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Bad Request",
			"message": "Invalid request body",
		})
		return
	}

	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Bad Request",
			"message": formatValidationError(err),
		})
		return
	}

	category, err := h.catalogService.UpdateCategory(c.Request.Context(), id, &req)
	if err != nil {
		if errors.Is(err, service.ErrCategoryNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error":   "Not Found",
				"message": "Category not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Internal Server Error",
			"message": "Failed to update category",
		})
		return
	}

	c.JSON(http.StatusOK, category)
}

func (h *CatalogHandler) DeleteCategory(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	if err := h.catalogService.DeleteCategory(c.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrCategoryNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error":   "Not Found",
				"message": "Category not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Internal Server Error",
			"message": "Failed to delete category",
		})
		return
	}

	c.JSON(http.StatusOK, entity.SuccessResponse{
		Message: "Category deleted successfully",
	})
}

func (h *CatalogHandler) CreateBrand(c *gin.Context) {
	var req entity.CreateBrandRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Bad Request",
			"message": "Invalid request body",
		})
		return
	}

	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Bad Request",
			"message": formatValidationError(err),
		})
		return
	}

	brand, err := h.catalogService.CreateBrand(c.Request.Context(), &req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Internal Server Error",
			"message": "Failed to create brand",
		})
		return
	}

	c.JSON(http.StatusCreated, brand)
}

func (h *CatalogHandler) UpdateBrand(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	var req entity.UpdateBrandRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Bad Request",
			"message": "Invalid request body",
		})
		return
	}

	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Bad Request",
			"message": formatValidationError(err),
		})
		return
	}

	brand, err := h.catalogService.UpdateBrand(c.Request.Context(), id, &req)
	if err != nil {
		if errors.Is(err, service.ErrBrandNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error":   "Not Found",
				"message": "Brand not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Internal Server Error",
			"message": "Failed to update brand",
		})
		return
	}

	c.JSON(http.StatusOK, brand)
}

func (h *CatalogHandler) DeleteBrand(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	if err := h.catalogService.DeleteBrand(c.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrBrandNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error":   "Not Found",
				"message": "Brand not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Internal Server Error",
			"message": "Failed to delete brand",
		})
		return
	}

	c.JSON(http.StatusOK, entity.SuccessResponse{
		Message: "Brand deleted successfully",
	})
}

// parseUintParam извлекает числовой параметр пути, отвечая 400 при ошибке
func parseUintParam(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Bad Request",
			"message": "Invalid " + name,
		})
		return 0, false
	}
	return uint(id), true
}

func formatValidationError(err error) string {
	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		for _, fieldError := range validationErrors {
			return fieldError.Field() + " is " + fieldError.Tag()
		}
	}
	return "Validation failed"
}
