package repository

import (
	"context"
	"time"

	"boskoback/internal/dto"
	"boskoback/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type OrderRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*model.Order, error)
	List(ctx context.Context, filter dto.OrderFilter) ([]model.Order, int64, error)

	// Used inside transactions — callers must pass the tx instance.
	CreateTx(tx *gorm.DB, o *model.Order) error
	UpdateTx(tx *gorm.DB, o *model.Order) error
	AppendHistoryTx(tx *gorm.DB, h *model.OrderStatusHistory) error
	UpdateAddressTx(tx *gorm.DB, a *model.OrderAddress) error

	// Aggregations for the admin dashboard.
	Count(ctx context.Context) (int64, error)
	CountSince(ctx context.Context, since time.Time) (int64, error)
	CountByStatus(ctx context.Context, status string) (int64, error)
	RevenueTotal(ctx context.Context) (decimal.Decimal, error)
	RevenueSince(ctx context.Context, since time.Time) (decimal.Decimal, error)
	MonthlyBuckets(ctx context.Context, since time.Time) ([]dto.MonthBucket, error)
	StatsByUser(ctx context.Context, userID uuid.UUID) (int64, decimal.Decimal, error)

	// DB exposes the underlying *gorm.DB so services can open transactions.
	DB() *gorm.DB
}

type orderRepo struct{ db *gorm.DB }

func NewOrderRepository(db *gorm.DB) OrderRepository { return &orderRepo{db: db} }

func (r *orderRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Order, error) {
	var o model.Order
	err := r.db.WithContext(ctx).
		Preload("Items").
		Preload("ShippingAddress").
		Preload("StatusHistory", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		First(&o, id).Error
	return &o, err
}

func (r *orderRepo) List(ctx context.Context, filter dto.OrderFilter) ([]model.Order, int64, error) {
	var orders []model.Order
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Order{})

	if filter.UserID != "" {
		q = q.Where("user_id = ?", filter.UserID)
	}
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.From != "" {
		q = q.Where("created_at >= ?", filter.From)
	}
	if filter.To != "" {
		q = q.Where("created_at < ?", filter.To)
	}
	if filter.Search != "" {
		q = q.Where("customer_name ILIKE ? OR customer_email ILIKE ?",
			"%"+filter.Search+"%", "%"+filter.Search+"%")
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err := q.Preload("Items").Preload("ShippingAddress").
		Order("created_at DESC").Limit(filter.Limit).Offset(offset).Find(&orders).Error
	return orders, total, err
}

func (r *orderRepo) CreateTx(tx *gorm.DB, o *model.Order) error {
	return tx.Create(o).Error
}

func (r *orderRepo) UpdateTx(tx *gorm.DB, o *model.Order) error {
	return tx.Save(o).Error
}

func (r *orderRepo) AppendHistoryTx(tx *gorm.DB, h *model.OrderStatusHistory) error {
	return tx.Create(h).Error
}

func (r *orderRepo) UpdateAddressTx(tx *gorm.DB, a *model.OrderAddress) error {
	return tx.Save(a).Error
}

func (r *orderRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Order{}).Count(&n).Error
	return n, err
}

func (r *orderRepo) CountSince(ctx context.Context, since time.Time) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Order{}).Where("created_at >= ?", since).Count(&n).Error
	return n, err
}

func (r *orderRepo) CountByStatus(ctx context.Context, status string) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Order{}).Where("status = ?", status).Count(&n).Error
	return n, err
}

// RevenueTotal sums totals across non-cancelled orders.
func (r *orderRepo) RevenueTotal(ctx context.Context) (decimal.Decimal, error) {
	var sum decimal.NullDecimal
	err := r.db.WithContext(ctx).Model(&model.Order{}).
		Where("status <> ?", model.OrderCancelled).
		Select("COALESCE(SUM(total), 0)").Scan(&sum).Error
	if err != nil || !sum.Valid {
		return decimal.Zero, err
	}
	return sum.Decimal, nil
}

func (r *orderRepo) RevenueSince(ctx context.Context, since time.Time) (decimal.Decimal, error) {
	var sum decimal.NullDecimal
	err := r.db.WithContext(ctx).Model(&model.Order{}).
		Where("status <> ? AND created_at >= ?", model.OrderCancelled, since).
		Select("COALESCE(SUM(total), 0)").Scan(&sum).Error
	if err != nil || !sum.Valid {
		return decimal.Zero, err
	}
	return sum.Decimal, nil
}

// MonthlyBuckets groups non-cancelled orders by month for the dashboard chart.
func (r *orderRepo) MonthlyBuckets(ctx context.Context, since time.Time) ([]dto.MonthBucket, error) {
	var rows []struct {
		Month   string
		Orders  int64
		Revenue decimal.Decimal
	}
	err := r.db.WithContext(ctx).Model(&model.Order{}).
		Select("TO_CHAR(created_at, 'YYYY-MM') AS month, COUNT(*) AS orders, COALESCE(SUM(total), 0) AS revenue").
		Where("status <> ? AND created_at >= ?", model.OrderCancelled, since).
		Group("month").Order("month ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	buckets := make([]dto.MonthBucket, 0, len(rows))
	for _, row := range rows {
		buckets = append(buckets, dto.MonthBucket{Month: row.Month, Orders: row.Orders, Revenue: row.Revenue})
	}
	return buckets, nil
}

// StatsByUser returns order count and total spend (cancelled excluded) for the
// profile view.
func (r *orderRepo) StatsByUser(ctx context.Context, userID uuid.UUID) (int64, decimal.Decimal, error) {
	var n int64
	q := r.db.WithContext(ctx).Model(&model.Order{}).
		Where("user_id = ? AND status <> ?", userID, model.OrderCancelled)
	if err := q.Count(&n).Error; err != nil {
		return 0, decimal.Zero, err
	}
	var sum decimal.NullDecimal
	if err := q.Select("COALESCE(SUM(total), 0)").Scan(&sum).Error; err != nil {
		return 0, decimal.Zero, err
	}
	if !sum.Valid {
		return n, decimal.Zero, nil
	}
	return n, sum.Decimal, nil
}

func (r *orderRepo) DB() *gorm.DB { return r.db }
