package entity

import (
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Category представляет категорию товаров
type Category struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"type:varchar(50);not null"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
}

// TableName указывает имя таблицы для GORM
func (Category) TableName() string {
	return "categories"
}

// Brand представляет бренд товаров
type Brand struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"type:varchar(50);not null"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
}

// TableName указывает имя таблицы для GORM
func (Brand) TableName() string {
	return "brands"
}

// Goods представляет товар в каталоге
type Goods struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"type:varchar(50);not null"`
	Description string    `json:"description" gorm:"type:varchar(500)"`
	Price       float64   `json:"price" gorm:"type:decimal(14,2);not null"`
	Currency    string    `json:"currency" gorm:"type:varchar(10);not null;default:'USD'"`
	ImageURL    string    `json:"image_url,omitempty" gorm:"type:varchar(500)"`
	CategoryID  uint      `json:"category_id" gorm:"not null"`
	Category    *Category `json:"category,omitempty" gorm:"foreignKey:CategoryID"`
	BrandID     uint      `json:"brand_id" gorm:"not null"`
	Brand       *Brand    `json:"brand,omitempty" gorm:"foreignKey:BrandID"`
	CreatedAt   time.Time `json:"created_at" gorm:"autoCreateTime"`
}

// TableName указывает имя таблицы для GORM
func (Goods) TableName() string {
	return "goods"
}

// BasketItem представляет позицию корзины пользователя
// Уникальность пары (user_id, goods_id) обеспечивается индексом:
// повторное добавление товара увеличивает quantity, а не создает вторую строку
type BasketItem struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uuid.UUID `json:"user_id" gorm:"type:uuid;not null;uniqueIndex:idx_basket_user_goods"`
	GoodsID   uint      `json:"goods_id" gorm:"not null;uniqueIndex:idx_basket_user_goods"`
	Goods     *Goods    `json:"goods,omitempty" gorm:"foreignKey:GoodsID"`
	Quantity  int       `json:"quantity" gorm:"not null;check:quantity > 0"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName указывает имя таблицы для GORM
func (BasketItem) TableName() string {
	return "basket_items"
}

// Order представляет оформленный заказ
// После создания заказ не изменяется
type Order struct {
	ID            uuid.UUID   `json:"id" gorm:"type:uuid;primaryKey"`
	UserID        uuid.UUID   `json:"user_id" gorm:"type:uuid;not null"`
	RecipientName string      `json:"recipient_name" gorm:"type:varchar(100);not null"`
	Address       string      `json:"address" gorm:"type:varchar(500);not null"`
	TotalPrice    float64     `json:"total_price" gorm:"type:decimal(14,2);not null"`
	Currency      string      `json:"currency" gorm:"type:varchar(10);not null;default:'USD'"`
	CreatedAt     time.Time   `json:"created_at" gorm:"autoCreateTime"`
	Items         []OrderItem `json:"items,omitempty" gorm:"foreignKey:OrderID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// TableName указывает имя таблицы для GORM
func (Order) TableName() string {
	return "orders"
}

// OrderItem представляет позицию заказа
// Price фиксируется на момент оформления и не зависит от будущих цен товара
type OrderItem struct {
	ID       uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	OrderID  uuid.UUID `json:"order_id" gorm:"type:uuid;not null"`
	GoodsID  uint      `json:"goods_id" gorm:"not null"`
	Quantity int       `json:"quantity" gorm:"not null;check:quantity > 0"`
	Price    float64   `json:"price" gorm:"type:decimal(14,2);not null"`
}

// TableName указывает имя таблицы для GORM
func (OrderItem) TableName() string {
	return "order_items"
}

// User представляет пользователя магазина
type User struct {
	ID           uuid.UUID `json:"id" db:"id"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"` // не возвращаем в JSON
	Name         string    `json:"name" db:"name"`
	Role         string    `json:"role" db:"role"` // user или admin
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

// TokenPair содержит access и refresh токены
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"` // время жизни access token в секундах
}

// Review представляет отзыв о товаре, хранится в MongoDB
type Review struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	GoodsID   uint               `json:"goods_id" bson:"goods_id"`
	UserID    uuid.UUID          `json:"user_id" bson:"user_id"`
	Rating    int                `json:"rating" bson:"rating"` // 1..5
	Comment   string             `json:"comment" bson:"comment"`
	CreatedAt time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time          `json:"updated_at" bson:"updated_at"`
}

// GoodsEvent представляет событие изменения товара для Kafka
// Отправляется при смене цены, чтобы другие потребители могли среагировать
type GoodsEvent struct {
	EventType string    `json:"event_type"` // GOODS_UPDATED
	GoodsID   uint      `json:"goods_id"`
	Name      string    `json:"name"`
	Price     float64   `json:"price"`
	Currency  string    `json:"currency"`
	Timestamp time.Time `json:"timestamp"`
}

// OrderEvent представляет событие оформления заказа для Kafka
type OrderEvent struct {
	EventType  string    `json:"event_type"` // ORDER_CREATED
	OrderID    uuid.UUID `json:"order_id"`
	UserID     uuid.UUID `json:"user_id"`
	TotalPrice float64   `json:"total_price"`
	Currency   string    `json:"currency"`
	ItemsCount int       `json:"items_count"`
	Timestamp  time.Time `json:"timestamp"`
}
