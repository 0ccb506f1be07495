package model

import (
	"time"

	"github.com/google/uuid"
)

// Review is a customer rating for a product. One review per user per product.
type Review struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ProductID uuid.UUID `gorm:"type:uuid;not null;index:idx_review_product_user,unique"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index:idx_review_product_user,unique"`
	Rating    int       `gorm:"not null"` // 1..5
	Comment   string
	CreatedAt time.Time
	UpdatedAt time.Time

	User *User `gorm:"foreignKey:UserID"`
}

// WishlistItem links a user to a saved product. Duplicate adds are no-ops.
type WishlistItem struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index:idx_wishlist_user_product,unique"`
	ProductID uuid.UUID `gorm:"type:uuid;not null;index:idx_wishlist_user_product,unique"`
	CreatedAt time.Time

	Product *Product `gorm:"foreignKey:ProductID"`
}

func (WishlistItem) TableName() string { return "wishlist_items" }
