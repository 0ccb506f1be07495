package repository

import (
	"context"

	"boskoback/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ActivityRepository persists the append-only side-effect records. Callers
// treat writes as best-effort: errors are logged, never propagated.
type ActivityRepository interface {
	CreateLog(ctx context.Context, l *model.ActivityLog) error
	ListLogs(ctx context.Context, limit int) ([]model.ActivityLog, error)
	CreateNotification(ctx context.Context, n *model.Notification) error
	ListNotifications(ctx context.Context, userID uuid.UUID) ([]model.Notification, error)
	MarkRead(ctx context.Context, userID, id uuid.UUID) error
}

type activityRepo struct{ db *gorm.DB }

func NewActivityRepository(db *gorm.DB) ActivityRepository { return &activityRepo{db: db} }

func (r *activityRepo) CreateLog(ctx context.Context, l *model.ActivityLog) error {
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *activityRepo) ListLogs(ctx context.Context, limit int) ([]model.ActivityLog, error) {
	if limit < 1 || limit > 200 {
		limit = 50
	}
	var logs []model.ActivityLog
	err := r.db.WithContext(ctx).Order("created_at DESC").Limit(limit).Find(&logs).Error
	return logs, err
}

func (r *activityRepo) CreateNotification(ctx context.Context, n *model.Notification) error {
	return r.db.WithContext(ctx).Create(n).Error
}

func (r *activityRepo) ListNotifications(ctx context.Context, userID uuid.UUID) ([]model.Notification, error) {
	var ns []model.Notification
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").Limit(100).
		Find(&ns).Error
	return ns, err
}

func (r *activityRepo) MarkRead(ctx context.Context, userID, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Notification{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("read", true).Error
}
