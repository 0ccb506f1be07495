package service

import (
	"context"
	"errors"

	"boskoback/internal/dto"
	"boskoback/internal/model"
	"boskoback/internal/repository"

	"github.com/google/uuid"
)

// WishlistService tracks products a user saved for later. Adds are idempotent.
type WishlistService interface {
	List(ctx context.Context, userID uuid.UUID) ([]dto.WishlistItemResponse, error)
	Add(ctx context.Context, userID, productID uuid.UUID) error
	Remove(ctx context.Context, userID, productID uuid.UUID) error
}

type wishlistService struct {
	repo     repository.WishlistRepository
	products repository.ProductRepository
}

func NewWishlistService(repo repository.WishlistRepository, products repository.ProductRepository) WishlistService {
	return &wishlistService{repo: repo, products: products}
}

func (s *wishlistService) List(ctx context.Context, userID uuid.UUID) ([]dto.WishlistItemResponse, error) {
	items, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.WishlistItemResponse, 0, len(items))
	for i := range items {
		item := &items[i]
		if item.Product == nil {
			continue
		}
		resp = append(resp, dto.WishlistItemResponse{
			ProductID: item.ProductID.String(),
			Product:   mapProduct(item.Product),
			AddedAt:   item.CreatedAt.Format(timeFormat),
		})
	}
	return resp, nil
}

func (s *wishlistService) Add(ctx context.Context, userID, productID uuid.UUID) error {
	p, err := s.products.FindByID(ctx, productID)
	if err != nil || !p.Active {
		return errors.New("product not found")
	}
	return s.repo.Add(ctx, &model.WishlistItem{UserID: userID, ProductID: productID})
}

func (s *wishlistService) Remove(ctx context.Context, userID, productID uuid.UUID) error {
	return s.repo.Remove(ctx, userID, productID)
}
