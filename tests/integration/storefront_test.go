//go:build integration

package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"ecomers/internal/app/storefront/entity"
	"ecomers/internal/app/storefront/handler"
	"ecomers/internal/app/storefront/repository"
	"ecomers/internal/app/storefront/service"
	"ecomers/internal/app/storefront/util"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// mockKafkaProducer не отправляет реальные сообщения
type mockKafkaProducer struct{}

func (m *mockKafkaProducer) PublishMessage(ctx context.Context, key string, value []byte) error {
	return nil
}

func (m *mockKafkaProducer) Close() error {
	return nil
}

// StorefrontIntegrationTestSuite содержит интеграционные тесты витрины
// Требует запущенные PostgreSQL и Redis
type StorefrontIntegrationTestSuite struct {
	suite.Suite
	db          *gorm.DB
	redisClient *util.RedisClient
	jwtManager  *util.JWTManager
	router      *gin.Engine
	userID      uuid.UUID
	token       string
}

func TestStorefrontIntegrationSuite(t *testing.T) {
	suite.Run(t, new(StorefrontIntegrationTestSuite))
}

// SetupSuite выполняется один раз перед всеми тестами
func (s *StorefrontIntegrationTestSuite) SetupSuite() {
	gin.SetMode(gin.TestMode)

	dsn := "host=localhost port=5433 user=postgres password=postgres dbname=storefront_test sslmode=disable"
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	require.NoError(s.T(), err, "Failed to connect to PostgreSQL")
	s.db = db

	err = s.db.AutoMigrate(
		&entity.Category{},
		&entity.Brand{},
		&entity.Goods{},
		&entity.BasketItem{},
		&entity.Order{},
		&entity.OrderItem{},
	)
	require.NoError(s.T(), err)

	s.redisClient = util.NewRedisClientFromExisting(redis.NewClient(&redis.Options{
		Addr: "localhost:6380",
		DB:   15,
	}))

	s.jwtManager = util.NewJWTManager("integration-test-secret", 15*time.Minute, time.Hour)
	s.userID = uuid.New()
	s.token, err = s.jwtManager.GenerateAccessToken(s.userID, "it@example.com", "user")
	require.NoError(s.T(), err)

	categoryRepo := repository.NewCategoryRepository(s.db)
	brandRepo := repository.NewBrandRepository(s.db)
	goodsRepo := repository.NewGoodsRepository(s.db)
	basketRepo := repository.NewBasketRepository(s.db)
	orderRepo := repository.NewOrderRepository(s.db)

	kafkaProducer := &mockKafkaProducer{}

	catalogService := service.NewCatalogService(categoryRepo, brandRepo, goodsRepo, s.redisClient, kafkaProducer)
	basketService := service.NewBasketService(basketRepo, goodsRepo)
	checkoutService := service.NewCheckoutService(basketRepo, orderRepo, kafkaProducer)

	authMiddleware := handler.NewAuthMiddleware(s.jwtManager)

	s.router = gin.New()
	catalogHandler := handler.NewCatalogHandler(catalogService)
	basketHandler := handler.NewBasketHandler(basketService)
	orderHandler := handler.NewOrderHandler(checkoutService)

	s.router.GET("/catalog/goods", catalogHandler.ListGoods)
	s.router.GET("/basket", authMiddleware.OptionalAuthenticate(), basketHandler.GetBasket)
	s.router.POST("/basket/goods/:goods_id", authMiddleware.Authenticate(), basketHandler.AddItem)
	s.router.POST("/orders/checkout", authMiddleware.Authenticate(), orderHandler.Checkout)
}

// SetupTest очищает данные перед каждым тестом
func (s *StorefrontIntegrationTestSuite) SetupTest() {
	s.db.Exec("TRUNCATE order_items, orders, basket_items, goods, brands, categories RESTART IDENTITY CASCADE")
}

func (s *StorefrontIntegrationTestSuite) seedGoods(name string, price float64) entity.Goods {
	category := entity.Category{Name: "Electronics", CreatedAt: time.Now()}
	require.NoError(s.T(), s.db.Create(&category).Error)

	brand := entity.Brand{Name: "Acme", CreatedAt: time.Now()}
	require.NoError(s.T(), s.db.Create(&brand).Error)

	goods := entity.Goods{
		Name:       name,
		Price:      price,
		Currency:   "USD",
		CategoryID: category.ID,
		BrandID:    brand.ID,
		CreatedAt:  time.Now(),
	}
	require.NoError(s.T(), s.db.Create(&goods).Error)

	return goods
}

func (s *StorefrontIntegrationTestSuite) authorizedRequest(method, url string, body []byte) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(method, url, bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.token)

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *StorefrontIntegrationTestSuite) TestListGoods_FiltersAndPagination() {
	s.seedGoods("Laptop", 1000)
	s.seedGoods("Phone", 500)

	req, _ := http.NewRequest(http.MethodGet, "/catalog/goods?q=lap", nil)
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	s.Equal(http.StatusOK, w.Code)

	var resp entity.GoodsListResponse
	require.NoError(s.T(), json.Unmarshal(w.Body.Bytes(), &resp))
	s.Equal(int64(1), resp.Total)
	s.Equal("Laptop", resp.Goods[0].Name)
}

func (s *StorefrontIntegrationTestSuite) TestAddToBasket_RepeatIncrements() {
	goods := s.seedGoods("Laptop", 1000)
	url := "/basket/goods/" + uintToString(goods.ID)

	w := s.authorizedRequest(http.MethodPost, url, nil)
	s.Equal(http.StatusOK, w.Code)

	w = s.authorizedRequest(http.MethodPost, url, nil)
	s.Equal(http.StatusOK, w.Code)

	// Повторное добавление увеличило количество, а не создало вторую строку
	var items []entity.BasketItem
	require.NoError(s.T(), s.db.Where("user_id = ?", s.userID).Find(&items).Error)
	s.Len(items, 1)
	s.Equal(2, items[0].Quantity)
}

func (s *StorefrontIntegrationTestSuite) TestCheckout_CreatesOrderAndClearsBasket() {
	goods := s.seedGoods("Laptop", 10.00)

	w := s.authorizedRequest(http.MethodPost, "/basket/goods/"+uintToString(goods.ID), nil)
	s.Equal(http.StatusOK, w.Code)
	w = s.authorizedRequest(http.MethodPost, "/basket/goods/"+uintToString(goods.ID), nil)
	s.Equal(http.StatusOK, w.Code)

	body, _ := json.Marshal(entity.CheckoutRequest{
		RecipientName: "John Doe",
		Address:       "1 Main Street, Springfield",
		CardNumber:    "4111111111111111",
	})
	w = s.authorizedRequest(http.MethodPost, "/orders/checkout", body)
	s.Equal(http.StatusCreated, w.Code)

	var resp entity.CheckoutResponse
	require.NoError(s.T(), json.Unmarshal(w.Body.Bytes(), &resp))
	s.InDelta(20.00, resp.Order.TotalPrice, 0.001)
	s.Equal("**** **** **** 1111", resp.MaskedCard)

	// Корзина очищена той же транзакцией
	var count int64
	require.NoError(s.T(), s.db.Model(&entity.BasketItem{}).Where("user_id = ?", s.userID).Count(&count).Error)
	s.Zero(count)
}

func (s *StorefrontIntegrationTestSuite) TestCheckout_EmptyBasket() {
	body, _ := json.Marshal(entity.CheckoutRequest{
		RecipientName: "John Doe",
		Address:       "1 Main Street, Springfield",
		CardNumber:    "4111111111111111",
	})
	w := s.authorizedRequest(http.MethodPost, "/orders/checkout", body)
	s.Equal(http.StatusBadRequest, w.Code)
}

func uintToString(v uint) string {
	return strconv.FormatUint(uint64(v), 10)
}
