package service

import (
	"context"
	"errors"

	"boskoback/internal/dto"
	"boskoback/internal/model"
	"boskoback/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ReviewService handles product reviews: one per product per user.
type ReviewService interface {
	ListForProduct(ctx context.Context, productID uuid.UUID) (*dto.ProductReviewsResponse, error)
	Create(ctx context.Context, productID, userID uuid.UUID, userName string, req dto.CreateReviewRequest) (*dto.ReviewResponse, error)
	Delete(ctx context.Context, id, requesterID uuid.UUID, role string) error
}

type reviewService struct {
	reviews  repository.ReviewRepository
	products repository.ProductRepository
}

func NewReviewService(reviews repository.ReviewRepository, products repository.ProductRepository) ReviewService {
	return &reviewService{reviews: reviews, products: products}
}

func mapReview(rv *model.Review) dto.ReviewResponse {
	resp := dto.ReviewResponse{
		ID:        rv.ID.String(),
		ProductID: rv.ProductID.String(),
		UserID:    rv.UserID.String(),
		Rating:    rv.Rating,
		Comment:   rv.Comment,
		CreatedAt: rv.CreatedAt.Format(timeFormat),
	}
	if rv.User != nil {
		resp.UserName = rv.User.Name
	}
	return resp
}

func (s *reviewService) ListForProduct(ctx context.Context, productID uuid.UUID) (*dto.ProductReviewsResponse, error) {
	if _, err := s.products.FindByID(ctx, productID); err != nil {
		return nil, errors.New("product not found")
	}
	avg, count, err := s.reviews.AverageRating(ctx, productID)
	if err != nil {
		return nil, err
	}
	list, err := s.reviews.ListByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	reviews := make([]dto.ReviewResponse, 0, len(list))
	for i := range list {
		reviews = append(reviews, mapReview(&list[i]))
	}
	return &dto.ProductReviewsResponse{Average: avg, Count: count, Reviews: reviews}, nil
}

func (s *reviewService) Create(ctx context.Context, productID, userID uuid.UUID, userName string, req dto.CreateReviewRequest) (*dto.ReviewResponse, error) {
	p, err := s.products.FindByID(ctx, productID)
	if err != nil || !p.Active {
		return nil, errors.New("product not found")
	}
	existing, err := s.reviews.FindByProductAndUser(ctx, productID, userID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if err == nil && existing != nil {
		return nil, errors.New("you have already reviewed this product")
	}

	rv := &model.Review{
		ProductID: productID,
		UserID:    userID,
		Rating:    req.Rating,
		Comment:   req.Comment,
	}
	if err := s.reviews.Create(ctx, rv); err != nil {
		return nil, err
	}
	resp := mapReview(rv)
	resp.UserName = userName
	return &resp, nil
}

// Delete removes a review. Only the author or an admin may delete.
func (s *reviewService) Delete(ctx context.Context, id, requesterID uuid.UUID, role string) error {
	rv, err := s.reviews.FindByID(ctx, id)
	if err != nil {
		return errors.New("review not found")
	}
	if rv.UserID != requesterID && role != model.RoleAdmin {
		return errors.New("review not found")
	}
	return s.reviews.Delete(ctx, id)
}
