package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"ecomers/internal/app/storefront/entity"
	"ecomers/internal/app/storefront/service"
)

type CheckoutServiceInterface interface {
	Checkout(ctx context.Context, userID uuid.UUID, req *entity.CheckoutRequest) (*entity.Order, string, error)
	GetOrder(ctx context.Context, orderID uuid.UUID, userID uuid.UUID) (*entity.Order, error)
	GetUserOrders(ctx context.Context, userID uuid.UUID) ([]entity.Order, error)
}

type OrderHandler struct {
	checkoutService CheckoutServiceInterface
	validator       *validator.Validate
}

func NewOrderHandler(checkoutService CheckoutServiceInterface) *OrderHandler {
	return &OrderHandler{
		checkoutService: checkoutService,
		validator:       validator.New(),
	}
}

// Checkout оформляет заказ из корзины текущего пользователя
// Номер карты проверяется, маскируется и никогда не сохраняется
func (h *OrderHandler) Checkout(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req entity.CheckoutRequest
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

	order, maskedCard, err := h.checkoutService.Checkout(c.Request.Context(), userID, &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmptyBasket):
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   "Bad Request",
				"message": "Basket is empty",
			})
		case errors.Is(err, service.ErrGoodsNotFound):
			c.JSON(http.StatusConflict, gin.H{
				"error":   "Conflict",
				"message": "Basket contains unavailable goods",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error":   "Internal Server Error",
				"message": "Failed to create order",
			})
		}
		return
	}

	c.JSON(http.StatusCreated, entity.CheckoutResponse{
		Order:      toOrderResponse(order),
		MaskedCard: maskedCard,
	})
}

func (h *OrderHandler) ListOrders(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	orders, err := h.checkoutService.GetUserOrders(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Internal Server Error",
			"message": "Failed to get orders",
		})
		return
	}

	if orders == nil {
		orders = []entity.Order{}
	}

	c.JSON(http.StatusOK, entity.OrderListResponse{
		Orders: orders,
		Total:  len(orders),
	})
}

func (h *OrderHandler) GetOrder(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	orderID, err := uuid.Parse(c.Param("order_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Bad Request",
			"message": "Invalid order ID",
		})
		return
	}

	order, err := h.checkoutService.GetOrder(c.Request.Context(), orderID, userID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrOrderNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error":   "Not Found",
				"message": "Order not found",
			})
		case errors.Is(err, service.ErrOrderAccessDenied):
			c.JSON(http.StatusForbidden, gin.H{
				"error":   "Forbidden",
				"message": "Access denied",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error":   "Internal Server Error",
				"message": "Failed to get order",
			})
		}
		return
	}

	c.JSON(http.StatusOK, toOrderResponse(order))
}

func toOrderResponse(order *entity.Order) entity.OrderResponse {
	items := make([]entity.ItemResponse, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, entity.ItemResponse{
			ID:         item.ID.String(),
			GoodsID:    item.GoodsID,
			Quantity:   item.Quantity,
			Price:      item.Price,
			TotalPrice: item.Price * float64(item.Quantity),
		})
	}

	return entity.OrderResponse{
		ID:            order.ID.String(),
		UserID:        order.UserID.String(),
		RecipientName: order.RecipientName,
		Address:       order.Address,
		TotalPrice:    order.TotalPrice,
		Currency:      order.Currency,
		CreatedAt:     order.CreatedAt.Format(time.RFC3339),
		Items:         items,
	}
}
