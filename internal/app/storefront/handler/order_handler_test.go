package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"ecomers/internal/app/storefront/entity"
	"ecomers/internal/app/storefront/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockCheckoutService struct {
	mock.Mock
}

func (m *mockCheckoutService) Checkout(ctx context.Context, userID uuid.UUID, req *entity.CheckoutRequest) (*entity.Order, string, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.String(1), args.Error(2)
	}
	return args.Get(0).(*entity.Order), args.String(1), args.Error(2)
}

func (m *mockCheckoutService) GetOrder(ctx context.Context, orderID uuid.UUID, userID uuid.UUID) (*entity.Order, error) {
	args := m.Called(ctx, orderID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Order), args.Error(1)
}

func (m *mockCheckoutService) GetUserOrders(ctx context.Context, userID uuid.UUID) ([]entity.Order, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Order), args.Error(1)
}

func newCheckoutBody(t *testing.T) *bytes.Buffer {
	t.Helper()

	body, err := json.Marshal(entity.CheckoutRequest{
		RecipientName: "John Doe",
		Address:       "1 Main Street, Springfield",
		CardNumber:    "4111111111111111",
	})
	require.NoError(t, err)

	return bytes.NewBuffer(body)
}

func TestCheckoutHandler_Success(t *testing.T) {
	router := setupTestRouter()
	mockService := new(mockCheckoutService)
	userID := uuid.New()

	order := &entity.Order{
		ID:            uuid.New(),
		UserID:        userID,
		RecipientName: "John Doe",
		Address:       "1 Main Street, Springfield",
		TotalPrice:    25.00,
		Currency:      "USD",
		CreatedAt:     time.Now(),
		Items: []entity.OrderItem{
			{ID: uuid.New(), GoodsID: 1, Quantity: 2, Price: 10.00},
			{ID: uuid.New(), GoodsID: 2, Quantity: 1, Price: 5.00},
		},
	}
	mockService.On("Checkout", mock.Anything, userID, mock.AnythingOfType("*entity.CheckoutRequest")).
		Return(order, "**** **** **** 1111", nil)

	h := NewOrderHandler(mockService)
	router.POST("/orders/checkout", withUser(userID), h.Checkout)

	req, _ := http.NewRequest(http.MethodPost, "/orders/checkout", newCheckoutBody(t))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)

	var resp entity.CheckoutResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "**** **** **** 1111", resp.MaskedCard)
	assert.InDelta(t, 25.00, resp.Order.TotalPrice, 0.001)
	assert.Len(t, resp.Order.Items, 2)

	// Полный номер карты в ответе не появляется
	assert.NotContains(t, w.Body.String(), "4111111111111111")
}

func TestCheckoutHandler_EmptyBasket(t *testing.T) {
	router := setupTestRouter()
	mockService := new(mockCheckoutService)
	userID := uuid.New()

	mockService.On("Checkout", mock.Anything, userID, mock.AnythingOfType("*entity.CheckoutRequest")).
		Return(nil, "", service.ErrEmptyBasket)

	h := NewOrderHandler(mockService)
	router.POST("/orders/checkout", withUser(userID), h.Checkout)

	req, _ := http.NewRequest(http.MethodPost, "/orders/checkout", newCheckoutBody(t))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Basket is empty")
}

func TestCheckoutHandler_InvalidCardNumber(t *testing.T) {
	router := setupTestRouter()
	mockService := new(mockCheckoutService)
	userID := uuid.New()

	h := NewOrderHandler(mockService)
	router.POST("/orders/checkout", withUser(userID), h.Checkout)

	body, _ := json.Marshal(entity.CheckoutRequest{
		RecipientName: "John Doe",
		Address:       "1 Main Street, Springfield",
		CardNumber:    "not-a-card",
	})

	req, _ := http.NewRequest(http.MethodPost, "/orders/checkout", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockService.AssertNotCalled(t, "Checkout", mock.Anything, mock.Anything, mock.Anything)
}

func TestCheckoutHandler_Unauthorized(t *testing.T) {
	router := setupTestRouter()
	mockService := new(mockCheckoutService)

	h := NewOrderHandler(mockService)
	router.POST("/orders/checkout", h.Checkout)

	req, _ := http.NewRequest(http.MethodPost, "/orders/checkout", newCheckoutBody(t))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestGetOrderHandler_AccessDenied(t *testing.T) {
	router := setupTestRouter()
	mockService := new(mockCheckoutService)
	userID := uuid.New()
	orderID := uuid.New()

	mockService.On("GetOrder", mock.Anything, orderID, userID).Return(nil, service.ErrOrderAccessDenied)

	h := NewOrderHandler(mockService)
	router.GET("/orders/:order_id", withUser(userID), h.GetOrder)

	req, _ := http.NewRequest(http.MethodGet, "/orders/"+orderID.String(), nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestListOrdersHandler_Success(t *testing.T) {
	router := setupTestRouter()
	mockService := new(mockCheckoutService)
	userID := uuid.New()

	orders := []entity.Order{
		{ID: uuid.New(), UserID: userID, TotalPrice: 100},
	}
	mockService.On("GetUserOrders", mock.Anything, userID).Return(orders, nil)

	h := NewOrderHandler(mockService)
	router.GET("/orders", withUser(userID), h.ListOrders)

	req, _ := http.NewRequest(http.MethodGet, "/orders", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"total":1`)
}
