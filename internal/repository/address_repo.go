package repository

import (
	"context"

	"boskoback/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AddressRepository interface {
	Create(ctx context.Context, a *model.Address) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Address, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Address, error)
	Update(ctx context.Context, a *model.Address) error
	Delete(ctx context.Context, id uuid.UUID) error
	// SetDefault marks the address default and clears the flag on the user's
	// other addresses in one transaction.
	SetDefault(ctx context.Context, userID, id uuid.UUID) error
	ClearDefaults(tx *gorm.DB, userID uuid.UUID) error
	DB() *gorm.DB
}

type addressRepo struct{ db *gorm.DB }

func NewAddressRepository(db *gorm.DB) AddressRepository { return &addressRepo{db: db} }

func (r *addressRepo) Create(ctx context.Context, a *model.Address) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *addressRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Address, error) {
	var a model.Address
	err := r.db.WithContext(ctx).First(&a, id).Error
	return &a, err
}

func (r *addressRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Address, error) {
	var addrs []model.Address
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("is_default DESC, created_at ASC").
		Find(&addrs).Error
	return addrs, err
}

func (r *addressRepo) Update(ctx context.Context, a *model.Address) error {
	return r.db.WithContext(ctx).Save(a).Error
}

func (r *addressRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Address{}, id).Error
}

func (r *addressRepo) SetDefault(ctx context.Context, userID, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := r.ClearDefaults(tx, userID); err != nil {
			return err
		}
		return tx.Model(&model.Address{}).
			Where("id = ? AND user_id = ?", id, userID).
			Update("is_default", true).Error
	})
}

func (r *addressRepo) ClearDefaults(tx *gorm.DB, userID uuid.UUID) error {
	return tx.Model(&model.Address{}).
		Where("user_id = ? AND is_default = true", userID).
		Update("is_default", false).Error
}

func (r *addressRepo) DB() *gorm.DB { return r.db }
