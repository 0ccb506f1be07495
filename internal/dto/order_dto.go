package dto

import "github.com/shopspring/decimal"

// ─── Requests ────────────────────────────────────────────────────────────────

type OrderItemRequest struct {
	ProductID string `json:"product_id" validate:"required,uuid"`
	Quantity  int    `json:"quantity"   validate:"required,min=1"`
}

type AddressRequest struct {
	Recipient  string `json:"recipient"   validate:"required"`
	Phone      string `json:"phone"`
	Street     string `json:"street"      validate:"required"`
	City       string `json:"city"        validate:"required"`
	State      string `json:"state"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"     validate:"required"`
}

type CreateOrderRequest struct {
	Items           []OrderItemRequest `json:"items"            validate:"required,min=1,dive"`
	ShippingAddress AddressRequest     `json:"shipping_address" validate:"required"`
	PaymentMethod   string             `json:"payment_method"   validate:"required,oneof=card transfer cash_on_delivery"`
	Notes           *string            `json:"notes"`
}

// EditOrderRequest updates address/notes while an order is still pending.
type EditOrderRequest struct {
	ShippingAddress *AddressRequest `json:"shipping_address"`
	Notes           *string         `json:"notes"`
}

type UpdateOrderStatusRequest struct {
	Status         string  `json:"status" validate:"required,oneof=processing shipped delivered cancelled"`
	Note           string  `json:"note"`
	TrackingNumber *string `json:"tracking_number"`
}

type CancelOrderRequest struct {
	Reason string `json:"reason"`
}

// ─── Filter ──────────────────────────────────────────────────────────────────

type OrderFilter struct {
	Status string `form:"status"`
	From   string `form:"from"` // YYYY-MM-DD
	To     string `form:"to"`
	Search string `form:"search"` // matches customer name/email
	UserID string `form:"-"`      // set by handlers for customer-scoped listing
	Page   int    `form:"page,default=1"   validate:"min=1"`
	Limit  int    `form:"limit,default=20" validate:"min=1,max=100"`
}

// ─── Responses ───────────────────────────────────────────────────────────────

type OrderItemResponse struct {
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	ImageURL    *string         `json:"image_url"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int             `json:"quantity"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

type AddressResponse struct {
	Recipient  string `json:"recipient"`
	Phone      string `json:"phone"`
	Street     string `json:"street"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
}

type StatusHistoryResponse struct {
	Status    string `json:"status"`
	Note      string `json:"note"`
	CreatedAt string `json:"created_at"`
}

type OrderResponse struct {
	ID              string                  `json:"id"`
	Number          int                     `json:"number"`
	CustomerName    string                  `json:"customer_name"`
	CustomerEmail   string                  `json:"customer_email"`
	Items           []OrderItemResponse     `json:"items"`
	Subtotal        decimal.Decimal         `json:"subtotal"`
	Tax             decimal.Decimal         `json:"tax"`
	Shipping        decimal.Decimal         `json:"shipping"`
	Total           decimal.Decimal         `json:"total"`
	Status          string                  `json:"status"`
	PaymentMethod   string                  `json:"payment_method"`
	TrackingNumber  *string                 `json:"tracking_number"`
	Notes           *string                 `json:"notes"`
	ShippingAddress *AddressResponse        `json:"shipping_address"`
	StatusHistory   []StatusHistoryResponse `json:"status_history"`
	CreatedAt       string                  `json:"created_at"`
}

type OrderListResponse struct {
	Data  []OrderResponse `json:"data"`
	Total int64           `json:"total"`
	Page  int             `json:"page"`
	Limit int             `json:"limit"`
}
