package dto

import "github.com/shopspring/decimal"

// StatValue is a dashboard metric with its crude trend percentage:
// value over the last 30 days ÷ all-time value × 100.
type StatValue struct {
	Value decimal.Decimal `json:"value"`
	Trend decimal.Decimal `json:"trend"`
}

type DashboardStatsResponse struct {
	Orders        StatValue `json:"orders"`
	Revenue       StatValue `json:"revenue"`
	Users         StatValue `json:"users"`
	Products      StatValue `json:"products"`
	PendingOrders int64     `json:"pending_orders"`
	LowStock      int64     `json:"low_stock"`
}

// MonthBucket is one bar of the monthly orders chart.
type MonthBucket struct {
	Month   string          `json:"month"` // YYYY-MM
	Orders  int64           `json:"orders"`
	Revenue decimal.Decimal `json:"revenue"`
}

type OrdersChartResponse struct {
	Months []MonthBucket `json:"months"`
}

type ActivityLogResponse struct {
	ID        string  `json:"id"`
	UserID    *string `json:"user_id"`
	Action    string  `json:"action"`
	Detail    string  `json:"detail"`
	CreatedAt string  `json:"created_at"`
}
