package repository

import (
	"context"

	"boskoback/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type WishlistRepository interface {
	// Add is idempotent: inserting an existing pair is a no-op.
	Add(ctx context.Context, item *model.WishlistItem) error
	Remove(ctx context.Context, userID, productID uuid.UUID) error
	ListByUser(ctx context.Context, userID uuid.UUID) ([]model.WishlistItem, error)
}

type wishlistRepo struct{ db *gorm.DB }

func NewWishlistRepository(db *gorm.DB) WishlistRepository { return &wishlistRepo{db: db} }

func (r *wishlistRepo) Add(ctx context.Context, item *model.WishlistItem) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(item).Error
}

func (r *wishlistRepo) Remove(ctx context.Context, userID, productID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Delete(&model.WishlistItem{}).Error
}

func (r *wishlistRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.WishlistItem, error) {
	var items []model.WishlistItem
	err := r.db.WithContext(ctx).
		Preload("Product").Preload("Product.Category").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&items).Error
	return items, err
}
