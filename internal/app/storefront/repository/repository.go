package repository

import (
	"context"
	"errors"
	"time"

	"ecomers/internal/app/storefront/entity"

	"github.com/google/uuid"
)

var (
	ErrCategoryNotFound   = errors.New("category not found")
	ErrBrandNotFound      = errors.New("brand not found")
	ErrGoodsNotFound      = errors.New("goods not found")
	ErrBasketItemNotFound = errors.New("basket item not found")
	ErrOrderNotFound      = errors.New("order not found")
	ErrTokenNotFound      = errors.New("refresh token not found")
)

// GoodsFilter задает фильтры списка товаров
// nil-поля означают отсутствие фильтра по соответствующему полю
type GoodsFilter struct {
	CategoryID *uint
	BrandID    *uint
	Query      string // подстрока имени без учета регистра
	Limit      int
	Offset     int
}

type CategoryRepository interface {
	Create(ctx context.Context, category *entity.Category) error
	GetByID(ctx context.Context, id uint) (*entity.Category, error)
	GetAll(ctx context.Context) ([]entity.Category, error)
	Update(ctx context.Context, category *entity.Category) error
	Delete(ctx context.Context, id uint) error
}

type BrandRepository interface {
	Create(ctx context.Context, brand *entity.Brand) error
	GetByID(ctx context.Context, id uint) (*entity.Brand, error)
	GetAll(ctx context.Context) ([]entity.Brand, error)
	Update(ctx context.Context, brand *entity.Brand) error
	Delete(ctx context.Context, id uint) error
}

type GoodsRepository interface {
	Create(ctx context.Context, goods *entity.Goods) error
	GetByID(ctx context.Context, id uint) (*entity.Goods, error)
	GetWithRelations(ctx context.Context, id uint) (*entity.Goods, error)
	List(ctx context.Context, filter GoodsFilter) ([]entity.Goods, int64, error)
	Update(ctx context.Context, goods *entity.Goods) error
	Delete(ctx context.Context, id uint) error
}

type BasketRepository interface {
	// AddOrIncrement атомарно создает позицию с quantity=1
	// или увеличивает quantity существующей позиции (user_id, goods_id) на 1
	AddOrIncrement(ctx context.Context, userID uuid.UUID, goodsID uint) error
	GetByID(ctx context.Context, id uint) (*entity.BasketItem, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]entity.BasketItem, error)
	UpdateQuantity(ctx context.Context, id uint, quantity int) error
	Delete(ctx context.Context, id uint) error
	DeleteStale(ctx context.Context, olderThan time.Time) (int64, error)
}

type OrderRepository interface {
	// CreateAndClearBasket сохраняет заказ с позициями и очищает корзину
	// пользователя в одной транзакции
	CreateAndClearBasket(ctx context.Context, order *entity.Order) error
	GetWithItems(ctx context.Context, id uuid.UUID) (*entity.Order, error)
	GetByUserID(ctx context.Context, userID uuid.UUID) ([]entity.Order, error)
}

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
}

type TokenRepository interface {
	SaveRefreshToken(ctx context.Context, userID uuid.UUID, token string, expiresAt time.Time) error
	GetRefreshToken(ctx context.Context, token string) (uuid.UUID, error)
	DeleteRefreshToken(ctx context.Context, token string) error
}

type ReviewRepository interface {
	Create(ctx context.Context, review *entity.Review) error
	GetByGoodsID(ctx context.Context, goodsID uint) ([]entity.Review, error)
}
