package entity

// === Каталог ===

type CreateCategoryRequest struct {
	Name string `json:"name" validate:"required,min=2,max=50"`
}

type UpdateCategoryRequest struct {
	Name string `json:"name" validate:"required,min=2,max=50"`
}

type CreateBrandRequest struct {
	Name string `json:"name" validate:"required,min=2,max=50"`
}

type UpdateBrandRequest struct {
	Name string `json:"name" validate:"required,min=2,max=50"`
}

type CreateGoodsRequest struct {
	Name        string  `json:"name" validate:"required,min=2,max=50"`
	Description string  `json:"description" validate:"max=500"`
	Price       float64 `json:"price" validate:"required,gt=0"`
	Currency    string  `json:"currency" validate:"omitempty,oneof=USD EUR RUB"`
	ImageURL    string  `json:"image_url" validate:"omitempty,url"`
	CategoryID  uint    `json:"category_id" validate:"required"`
	BrandID     uint    `json:"brand_id" validate:"required"`
}

type UpdateGoodsRequest struct {
	Name        string  `json:"name" validate:"omitempty,min=2,max=50"`
	Description string  `json:"description" validate:"omitempty,max=500"`
	Price       float64 `json:"price" validate:"omitempty,gt=0"`
	ImageURL    string  `json:"image_url" validate:"omitempty,url"`
	CategoryID  uint    `json:"category_id" validate:"omitempty"`
	BrandID     uint    `json:"brand_id" validate:"omitempty"`
}

// GoodsListResponse содержит страницу каталога с выбранными фильтрами
type GoodsListResponse struct {
	Goods            []Goods `json:"goods"`
	Total            int64   `json:"total"`
	Page             int     `json:"page"`
	PageSize         int     `json:"page_size"`
	SelectedCategory string  `json:"selected_category,omitempty"`
	SelectedBrand    string  `json:"selected_brand,omitempty"`
	SearchQuery      string  `json:"search_query,omitempty"`
}

type CategoryListResponse struct {
	Categories []Category `json:"categories"`
	Total      int        `json:"total"`
}

type BrandListResponse struct {
	Brands []Brand `json:"brands"`
	Total  int     `json:"total"`
}

// === Корзина ===

// BasketResponse содержит позиции корзины и текущую сумму
type BasketResponse struct {
	Items []BasketItem `json:"items"`
	Total float64      `json:"total"`
}

// === Оформление заказа ===

type CheckoutRequest struct {
	RecipientName string `json:"recipient_name" validate:"required,min=2,max=100"`
	Address       string `json:"address" validate:"required,min=5,max=500"`
	CardNumber    string `json:"card_number" validate:"required,numeric,min=13,max=19"`
}

// CheckoutResponse возвращается после успешного оформления
// Номер карты нигде не сохраняется и возвращается только в замаскированном виде
type CheckoutResponse struct {
	Order      OrderResponse `json:"order"`
	MaskedCard string        `json:"masked_card"`
}

type OrderResponse struct {
	ID            string         `json:"id"`
	UserID        string         `json:"user_id"`
	RecipientName string         `json:"recipient_name"`
	Address       string         `json:"address"`
	TotalPrice    float64        `json:"total_price"`
	Currency      string         `json:"currency"`
	CreatedAt     string         `json:"created_at"`
	Items         []ItemResponse `json:"items"`
}

type ItemResponse struct {
	ID         string  `json:"id"`
	GoodsID    uint    `json:"goods_id"`
	Quantity   int     `json:"quantity"`
	Price      float64 `json:"price"`
	TotalPrice float64 `json:"total_price"`
}

type OrderListResponse struct {
	Orders []Order `json:"orders"`
	Total  int     `json:"total"`
}

// === Аутентификация ===

type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
	Name     string `json:"name" validate:"required,min=2,max=100"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type LogoutRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// AuthResponse возвращается при регистрации и входе
type AuthResponse struct {
	User   User      `json:"user"`
	Tokens TokenPair `json:"tokens"`
}

// === Отзывы ===

type CreateReviewRequest struct {
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
	Comment string `json:"comment" validate:"max=1000"`
}

type ReviewListResponse struct {
	Reviews []Review `json:"reviews"`
	Total   int      `json:"total"`
}

// === Общие ===

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

type SuccessResponse struct {
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}
