package repository

import (
	"context"

	"boskoback/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PasswordResetRepository interface {
	Create(ctx context.Context, t *model.PasswordResetToken) error
	FindByUserAndToken(ctx context.Context, userID uuid.UUID, token string) (*model.PasswordResetToken, error)
	MarkUsed(ctx context.Context, id uuid.UUID) error
}

type passwordResetRepo struct{ db *gorm.DB }

func NewPasswordResetRepository(db *gorm.DB) PasswordResetRepository {
	return &passwordResetRepo{db: db}
}

func (r *passwordResetRepo) Create(ctx context.Context, t *model.PasswordResetToken) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *passwordResetRepo) FindByUserAndToken(ctx context.Context, userID uuid.UUID, token string) (*model.PasswordResetToken, error) {
	var t model.PasswordResetToken
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND token = ?", userID, token).
		First(&t).Error
	return &t, err
}

func (r *passwordResetRepo) MarkUsed(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.PasswordResetToken{}).
		Where("id = ?", id).Update("used", true).Error
}
