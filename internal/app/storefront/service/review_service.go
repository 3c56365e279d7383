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

// ReviewService обрабатывает бизнес-логику отзывов о товарах
type ReviewService struct {
	reviewRepo repository.ReviewRepository
	goodsRepo  repository.GoodsRepository
}

// NewReviewService создает новый сервис отзывов
func NewReviewService(reviewRepo repository.ReviewRepository, goodsRepo repository.GoodsRepository) *ReviewService {
	return &ReviewService{
		reviewRepo: reviewRepo,
		goodsRepo:  goodsRepo,
	}
}

// CreateReview создает отзыв о товаре
func (s *ReviewService) CreateReview(ctx context.Context, userID uuid.UUID, goodsID uint, req *entity.CreateReviewRequest) (*entity.Review, error) {
	if _, err := s.goodsRepo.GetByID(ctx, goodsID); err != nil {
		if errors.Is(err, repository.ErrGoodsNotFound) {
			return nil, ErrGoodsNotFound
		}
		return nil, fmt.Errorf("failed to get goods: %w", err)
	}

	review := &entity.Review{
		GoodsID: goodsID,
		UserID:  userID,
		Rating:  req.Rating,
		Comment: req.Comment,
	}

	if err := s.reviewRepo.Create(ctx, review); err != nil {
		return nil, fmt.Errorf("failed to create review: %w", err)
	}

	metrics.ReviewsCreated.Inc()

	return review, nil
}

// GetReviewsByGoods возвращает отзывы о товаре
func (s *ReviewService) GetReviewsByGoods(ctx context.Context, goodsID uint) ([]entity.Review, error) {
	if _, err := s.goodsRepo.GetByID(ctx, goodsID); err != nil {
		if errors.Is(err, repository.ErrGoodsNotFound) {
			return nil, ErrGoodsNotFound
		}
		return nil, fmt.Errorf("failed to get goods: %w", err)
	}

	reviews, err := s.reviewRepo.GetByGoodsID(ctx, goodsID)
	if err != nil {
		return nil, fmt.Errorf("failed to get reviews: %w", err)
	}

	return reviews, nil
}
