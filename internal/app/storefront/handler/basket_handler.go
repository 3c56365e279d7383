package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"ecomers/internal/app/storefront/entity"
	"ecomers/internal/app/storefront/service"
)

type BasketServiceInterface interface {
	Add(ctx context.Context, userID uuid.UUID, goodsID uint) error
	Increase(ctx context.Context, userID uuid.UUID, itemID uint) error
	Decrease(ctx context.Context, userID uuid.UUID, itemID uint) error
	Remove(ctx context.Context, userID uuid.UUID, itemID uint) error
	List(ctx context.Context, userID uuid.UUID) ([]entity.BasketItem, float64, error)
}

type BasketHandler struct {
	basketService BasketServiceInterface
}

func NewBasketHandler(basketService BasketServiceInterface) *BasketHandler {
	return &BasketHandler{
		basketService: basketService,
	}
}

// GetBasket возвращает содержимое корзины и сумму
// Анонимный пользователь получает пустую корзину с нулевой суммой
func (h *BasketHandler) GetBasket(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		c.JSON(http.StatusOK, entity.BasketResponse{
			Items: []entity.BasketItem{},
			Total: 0,
		})
		return
	}

	items, total, err := h.basketService.List(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Internal Server Error",
			"message": "Failed to get basket",
		})
		return
	}

	if items == nil {
		items = []entity.BasketItem{}
	}

	c.JSON(http.StatusOK, entity.BasketResponse{
		Items: items,
		Total: total,
	})
}

func (h *BasketHandler) AddItem(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	goodsID, ok := parseUintParam(c, "goods_id")
	if !ok {
		return
	}

	if err := h.basketService.Add(c.Request.Context(), userID, goodsID); err != nil {
		if errors.Is(err, service.ErrGoodsNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error":   "Not Found",
				"message": "Goods not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Internal Server Error",
			"message": "Failed to add item to basket",
		})
		return
	}

	c.JSON(http.StatusOK, entity.SuccessResponse{
		Message: "Item added to basket",
	})
}

func (h *BasketHandler) IncreaseItem(c *gin.Context) {
	h.mutateItem(c, h.basketService.Increase, "Failed to increase item quantity")
}

func (h *BasketHandler) DecreaseItem(c *gin.Context) {
	h.mutateItem(c, h.basketService.Decrease, "Failed to decrease item quantity")
}

func (h *BasketHandler) RemoveItem(c *gin.Context) {
	h.mutateItem(c, h.basketService.Remove, "Failed to remove item from basket")
}

// mutateItem выполняет операцию над позицией корзины текущего пользователя
// Чужая или несуществующая позиция дает одинаковый ответ 404
func (h *BasketHandler) mutateItem(c *gin.Context, op func(context.Context, uuid.UUID, uint) error, failMessage string) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	itemID, ok := parseUintParam(c, "item_id")
	if !ok {
		return
	}

	if err := op(c.Request.Context(), userID, itemID); err != nil {
		if errors.Is(err, service.ErrBasketItemNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error":   "Not Found",
				"message": "Basket item not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Internal Server Error",
			"message": failMessage,
		})
		return
	}

	c.JSON(http.StatusOK, entity.SuccessResponse{
		Message: "Basket updated",
	})
}

func userIDFromContext(c *gin.Context) (uuid.UUID, bool) {
	userIDValue, exists := c.Get("user_id")
	if !exists {
		return uuid.Nil, false
	}

	userID, ok := userIDValue.(uuid.UUID)
	if !ok {
		return uuid.Nil, false
	}

	return userID, true
}

func requireUserID(c *gin.Context) (uuid.UUID, bool) {
	userID, ok := userIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error":   "Unauthorized",
			"message": "Unauthorized",
		})
		return uuid.Nil, false
	}

	return userID, true
}
