package service

import (
	"context"
	"time"

	"boskoback/internal/dto"
	"boskoback/internal/model"
	"boskoback/internal/repository"

	"github.com/shopspring/decimal"
)

const lowStockThreshold = 5

// ReportService aggregates the admin dashboard numbers.
type ReportService interface {
	Dashboard(ctx context.Context) (*dto.DashboardStatsResponse, error)
	OrdersChart(ctx context.Context) (*dto.OrdersChartResponse, error)
}

type reportService struct {
	orders   repository.OrderRepository
	users    repository.UserRepository
	products repository.ProductRepository
}

func NewReportService(
	orders repository.OrderRepository,
	users repository.UserRepository,
	products repository.ProductRepository,
) ReportService {
	return &reportService{orders: orders, users: users, products: products}
}

var hundred = decimal.NewFromInt(100)

// stat computes the metric with its trend: last-30-days share of the all-time
// value as a percentage, 0 when there is no history yet.
func stat(recent, total decimal.Decimal) dto.StatValue {
	trend := decimal.Zero
	if total.IsPositive() {
		trend = recent.Div(total).Mul(hundred).Round(2)
	}
	return dto.StatValue{Value: total, Trend: trend}
}

func countStat(recent, total int64) dto.StatValue {
	return stat(decimal.NewFromInt(recent), decimal.NewFromInt(total))
}

func (s *reportService) Dashboard(ctx context.Context) (*dto.DashboardStatsResponse, error) {
	since := time.Now().AddDate(0, 0, -30)

	orderTotal, err := s.orders.Count(ctx)
	if err != nil {
		return nil, err
	}
	orderRecent, err := s.orders.CountSince(ctx, since)
	if err != nil {
		return nil, err
	}
	revenueTotal, err := s.orders.RevenueTotal(ctx)
	if err != nil {
		return nil, err
	}
	revenueRecent, err := s.orders.RevenueSince(ctx, since)
	if err != nil {
		return nil, err
	}
	userTotal, err := s.users.Count(ctx)
	if err != nil {
		return nil, err
	}
	userRecent, err := s.users.CountSince(ctx, since)
	if err != nil {
		return nil, err
	}
	productTotal, err := s.products.Count(ctx)
	if err != nil {
		return nil, err
	}
	productRecent, err := s.products.CountSince(ctx, since)
	if err != nil {
		return nil, err
	}
	pending, err := s.orders.CountByStatus(ctx, model.OrderPending)
	if err != nil {
		return nil, err
	}
	lowStock, err := s.products.CountLowStock(ctx, lowStockThreshold)
	if err != nil {
		return nil, err
	}

	return &dto.DashboardStatsResponse{
		Orders:        countStat(orderRecent, orderTotal),
		Revenue:       stat(revenueRecent, revenueTotal),
		Users:         countStat(userRecent, userTotal),
		Products:      countStat(productRecent, productTotal),
		PendingOrders: pending,
		LowStock:      lowStock,
	}, nil
}

func (s *reportService) OrdersChart(ctx context.Context) (*dto.OrdersChartResponse, error) {
	since := time.Now().AddDate(0, -12, 0)
	buckets, err := s.orders.MonthlyBuckets(ctx, since)
	if err != nil {
		return nil, err
	}
	return &dto.OrdersChartResponse{Months: buckets}, nil
}
