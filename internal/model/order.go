package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Order status values. Lifecycle:
// pending → processing → shipped → delivered (terminal)
// pending/processing/shipped → cancelled (terminal)
const (
	OrderPending    = "pending"
	OrderProcessing = "processing"
	OrderShipped    = "shipped"
	OrderDelivered  = "delivered"
	OrderCancelled  = "cancelled"
)

// Order holds a placed order with a denormalized customer snapshot and
// computed totals. Items, the shipping address, and the status history are
// owned rows created in the same transaction as the order.
type Order struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Number int       `gorm:"uniqueIndex;autoIncrement"`
	UserID uuid.UUID `gorm:"type:uuid;not null;index"`
	// Customer snapshot at order time
	CustomerName  string `gorm:"not null"`
	CustomerEmail string `gorm:"not null"`

	Subtotal decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Tax      decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Shipping decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Total    decimal.Decimal `gorm:"type:decimal(10,2);not null"`

	Status         string `gorm:"type:varchar(20);not null;default:'pending';index"`
	PaymentMethod  string `gorm:"not null"`
	TrackingNumber *string
	Notes          *string
	CreatedAt      time.Time
	UpdatedAt      time.Time

	User            *User                `gorm:"foreignKey:UserID"`
	Items           []OrderItem          `gorm:"foreignKey:OrderID"`
	ShippingAddress *OrderAddress        `gorm:"foreignKey:OrderID"`
	StatusHistory   []OrderStatusHistory `gorm:"foreignKey:OrderID"`
}

// OrderItem snapshots the product at order time. Subtotal = Price × Quantity,
// captured at creation and never recomputed from the live product.
type OrderItem struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OrderID     uuid.UUID `gorm:"type:uuid;not null;index"`
	ProductID   uuid.UUID `gorm:"type:uuid;not null"`
	ProductName string    `gorm:"not null"`
	ImageURL    *string
	Price       decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Quantity    int             `gorm:"not null"`
	Subtotal    decimal.Decimal `gorm:"type:decimal(10,2);not null"`
}

// OrderAddress is the shipping address snapshot attached to an order.
type OrderAddress struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OrderID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	Recipient  string    `gorm:"not null"`
	Phone      string
	Street     string `gorm:"not null"`
	City       string `gorm:"not null"`
	State      string
	PostalCode string
	Country    string `gorm:"not null"`
}

// OrderStatusHistory is an append-only log of status changes per order.
// Rows are never mutated or deleted.
type OrderStatusHistory struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OrderID   uuid.UUID `gorm:"type:uuid;not null;index"`
	Status    string    `gorm:"type:varchar(20);not null"`
	Note      string
	CreatedAt time.Time
}

func (OrderStatusHistory) TableName() string { return "order_status_history" }
