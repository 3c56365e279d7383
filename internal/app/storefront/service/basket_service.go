package service

import (
	"context"
	"errors"
	"fmt"

	"ecomers/internal/app/storefront/entity"
	"ecomers/internal/app/storefront/repository"
	"ecomers/pkg/metrics"

	"github.com/google/uuid"
)

// BasketService обрабатывает бизнес-логику корзины
// Все операции выполняются от имени конкретного пользователя:
// чужие позиции корзины неотличимы от несуществующих
type BasketService struct {
	basketRepo repository.BasketRepository
	goodsRepo  repository.GoodsRepository
}

// NewBasketService создает новый сервис корзины
func NewBasketService(
	basketRepo repository.BasketRepository,
	goodsRepo repository.GoodsRepository,
) *BasketService {
	return &BasketService{
		basketRepo: basketRepo,
		goodsRepo:  goodsRepo,
	}
}

// Add добавляет одну единицу товара в корзину пользователя
// Повторный вызов увеличивает количество существующей позиции,
// вторая строка для той же пары (user, goods) не создается
func (s *BasketService) Add(ctx context.Context, userID uuid.UUID, goodsID uint) error {
	if _, err := s.goodsRepo.GetByID(ctx, goodsID); err != nil {
		if errors.Is(err, repository.ErrGoodsNotFound) {
			return ErrGoodsNotFound
		}
		return fmt.Errorf("failed to verify goods: %w", err)
	}

	if err := s.basketRepo.AddOrIncrement(ctx, userID, goodsID); err != nil {
		return fmt.Errorf("failed to add goods to basket: %w", err)
	}

	metrics.BasketOperations.WithLabelValues("add").Inc()
	return nil
}

// Increase увеличивает количество позиции на единицу
func (s *BasketService) Increase(ctx context.Context, userID uuid.UUID, itemID uint) error {
	item, err := s.getOwnedItem(ctx, userID, itemID)
	if err != nil {
		return err
	}

	if err := s.basketRepo.UpdateQuantity(ctx, item.ID, item.Quantity+1); err != nil {
		return fmt.Errorf("failed to increase quantity: %w", err)
	}

	metrics.BasketOperations.WithLabelValues("increase").Inc()
	return nil
}

// Decrease уменьшает количество позиции на единицу
// Позиция с количеством 1 удаляется целиком: строка с нулевым
// количеством в корзине не сохраняется никогда
func (s *BasketService) Decrease(ctx context.Context, userID uuid.UUID, itemID uint) error {
	item, err := s.getOwnedItem(ctx, userID, itemID)
	if err != nil {
		return err
	}

	if item.Quantity > 1 {
		if err := s.basketRepo.UpdateQuantity(ctx, item.ID, item.Quantity-1); err != nil {
			return fmt.Errorf("failed to decrease quantity: %w", err)
		}
	} else {
		if err := s.basketRepo.Delete(ctx, item.ID); err != nil {
			return fmt.Errorf("failed to delete basket item: %w", err)
		}
	}

	metrics.BasketOperations.WithLabelValues("decrease").Inc()
	return nil
}

// Remove удаляет позицию из корзины
func (s *BasketService) Remove(ctx context.Context, userID uuid.UUID, itemID uint) error {
	item, err := s.getOwnedItem(ctx, userID, itemID)
	if err != nil {
		return err
	}

	if err := s.basketRepo.Delete(ctx, item.ID); err != nil {
		return fmt.Errorf("failed to delete basket item: %w", err)
	}

	metrics.BasketOperations.WithLabelValues("remove").Inc()
	return nil
}

// List возвращает позиции корзины пользователя и текущую сумму
// Сумма считается по актуальным ценам каталога
func (s *BasketService) List(ctx context.Context, userID uuid.UUID) ([]entity.BasketItem, float64, error) {
	items, err := s.basketRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list basket: %w", err)
	}

	var total float64
	for _, item := range items {
		if item.Goods != nil {
			total += item.Goods.Price * float64(item.Quantity)
		}
	}

	return items, total, nil
}

// getOwnedItem получает позицию корзины с проверкой владельца
// Чужая позиция возвращается как ErrBasketItemNotFound,
// чтобы не раскрывать существование чужих корзин
func (s *BasketService) getOwnedItem(ctx context.Context, userID uuid.UUID, itemID uint) (*entity.BasketItem, error) {
	item, err := s.basketRepo.GetByID(ctx, itemID)
	if err != nil {
		if errors.Is(err, repository.ErrBasketItemNotFound) {
			return nil, ErrBasketItemNotFound
		}
		return nil, fmt.Errorf("failed to get basket item: %w", err)
	}

	if item.UserID != userID {
		return nil, ErrBasketItemNotFound
	}

	return item, nil
}
