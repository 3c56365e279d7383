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
	"ecomers/pkg/metrics"

	"github.com/google/uuid"
)

// CheckoutService превращает корзину пользователя в заказ
// Цены позиций фиксируются на момент оформления: последующие изменения
// цен каталога на созданный заказ не влияют
type CheckoutService struct {
	basketRepo    repository.BasketRepository
	orderRepo     repository.OrderRepository
	kafkaProducer util.MessagePublisher
}

// NewCheckoutService создает новый сервис оформления заказов
func NewCheckoutService(
	basketRepo repository.BasketRepository,
	orderRepo repository.OrderRepository,
	kafkaProducer util.MessagePublisher,
) *CheckoutService {
	return &CheckoutService{
		basketRepo:    basketRepo,
		orderRepo:     orderRepo,
		kafkaProducer: kafkaProducer,
	}
}

// Checkout оформляет заказ из корзины пользователя
// 1. Проверяет что корзина не пуста (пустая корзина - ни одной записи в БД)
// 2. Снимает снапшот текущих цен в позиции заказа
// 3. Сохраняет заказ и очищает корзину в одной транзакции
// 4. Отправляет событие ORDER_CREATED в Kafka
// Номер карты не сохраняется, наружу уходит только маскированная форма
func (s *CheckoutService) Checkout(ctx context.Context, userID uuid.UUID, req *entity.CheckoutRequest) (*entity.Order, string, error) {
	items, err := s.basketRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, "", fmt.Errorf("failed to list basket: %w", err)
	}

	if len(items) == 0 {
		return nil, "", ErrEmptyBasket
	}

	order := &entity.Order{
		ID:            uuid.New(),
		UserID:        userID,
		RecipientName: req.RecipientName,
		Address:       req.Address,
		Currency:      "USD",
		CreatedAt:     time.Now(),
	}

	var totalPrice float64
	orderItems := make([]entity.OrderItem, 0, len(items))

	for _, item := range items {
		if item.Goods == nil {
			// Товар удален из каталога между добавлением в корзину и оформлением
			return nil, "", ErrGoodsNotFound
		}

		orderItems = append(orderItems, entity.OrderItem{
			ID:       uuid.New(),
			OrderID:  order.ID,
			GoodsID:  item.GoodsID,
			Quantity: item.Quantity,
			Price:    item.Goods.Price,
		})
		totalPrice += item.Goods.Price * float64(item.Quantity)

		if item.Goods.Currency != "" {
			order.Currency = item.Goods.Currency
		}
	}

	order.TotalPrice = totalPrice
	order.Items = orderItems

	// Создание заказа и очистка корзины - одна транзакция:
	// частичное оформление в базе оказаться не может
	if err := s.orderRepo.CreateAndClearBasket(ctx, order); err != nil {
		return nil, "", fmt.Errorf("failed to create order: %w", err)
	}

	metrics.OrdersCreated.Inc()
	metrics.OrdersAmount.Add(totalPrice)

	event := entity.OrderEvent{
		EventType:  "ORDER_CREATED",
		OrderID:    order.ID,
		UserID:     order.UserID,
		TotalPrice: order.TotalPrice,
		Currency:   order.Currency,
		ItemsCount: len(orderItems),
		Timestamp:  time.Now(),
	}

	if err := s.publishOrderEvent(ctx, event); err != nil {
		// Заказ уже создан, проблемы с Kafka не критичны
		logger.Warn().Err(err).Str("order_id", order.ID.String()).Msg("Failed to publish order created event")
	}

	return order, util.MaskCardNumber(req.CardNumber), nil
}

// GetOrder получает заказ по ID с проверкой доступа
func (s *CheckoutService) GetOrder(ctx context.Context, orderID uuid.UUID, userID uuid.UUID) (*entity.Order, error) {
	order, err := s.orderRepo.GetWithItems(ctx, orderID)
	if err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to get order: %w", err)
	}

	if order.UserID != userID {
		return nil, ErrOrderAccessDenied
	}

	return order, nil
}

// GetUserOrders получает все заказы пользователя
func (s *CheckoutService) GetUserOrders(ctx context.Context, userID uuid.UUID) ([]entity.Order, error) {
	orders, err := s.orderRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user orders: %w", err)
	}

	return orders, nil
}

// publishOrderEvent отправляет событие о заказе в Kafka
// Key - это OrderID для правильного партиционирования
func (s *CheckoutService) publishOrderEvent(ctx context.Context, event entity.OrderEvent) error {
	eventData, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal order event: %w", err)
	}

	if err := s.kafkaProducer.PublishMessage(ctx, event.OrderID.String(), eventData); err != nil {
		return fmt.Errorf("failed to publish to kafka: %w", err)
	}

	return nil
}
