package service

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"boskoback/internal/config"
	"boskoback/internal/dto"
	"boskoback/internal/infra"
	"boskoback/internal/model"
	"boskoback/internal/repository"
	"boskoback/internal/worker"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrOrderNotFound = errors.New("order not found")

	taxRate         = decimal.NewFromFloat(0.10)
	shippingFlat    = decimal.NewFromFloat(5.00)
	freeShippingMin = decimal.NewFromInt(100)
)

// Allowed status transitions. Delivered and cancelled are terminal.
var orderTransitions = map[string][]string{
	model.OrderPending:    {model.OrderProcessing, model.OrderCancelled},
	model.OrderProcessing: {model.OrderShipped, model.OrderCancelled},
	model.OrderShipped:    {model.OrderDelivered, model.OrderCancelled},
}

func transitionAllowed(from, to string) bool {
	for _, s := range orderTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

type OrderService interface {
	Create(ctx context.Context, userID uuid.UUID, req dto.CreateOrderRequest) (*dto.OrderResponse, error)
	Get(ctx context.Context, id, requesterID uuid.UUID, role string) (*dto.OrderResponse, error)
	List(ctx context.Context, filter dto.OrderFilter) (*dto.OrderListResponse, error)
	Edit(ctx context.Context, id, requesterID uuid.UUID, req dto.EditOrderRequest) (*dto.OrderResponse, error)
	Cancel(ctx context.Context, id, requesterID uuid.UUID, req dto.CancelOrderRequest) (*dto.OrderResponse, error)
	AdminCancel(ctx context.Context, id uuid.UUID, req dto.CancelOrderRequest) (*dto.OrderResponse, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, req dto.UpdateOrderStatusRequest) (*dto.OrderResponse, error)
	InvoicePath(ctx context.Context, id uuid.UUID) (string, error)
}

type orderService struct {
	orders     repository.OrderRepository
	products   repository.ProductRepository
	users      repository.UserRepository
	activity   ActivityRecorder
	dispatcher EmailEnqueuer
	cfg        *config.Config
}

func NewOrderService(
	orders repository.OrderRepository,
	products repository.ProductRepository,
	users repository.UserRepository,
	activity ActivityRecorder,
	dispatcher EmailEnqueuer,
	cfg *config.Config,
) OrderService {
	return &orderService{
		orders:     orders,
		products:   products,
		users:      users,
		activity:   activity,
		dispatcher: dispatcher,
		cfg:        cfg,
	}
}

// runTx wraps fn in a database transaction. With a nil DB (unit tests on
// in-memory repos) fn runs directly.
func (s *orderService) runTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	db := s.orders.DB()
	if db == nil {
		return fn(nil)
	}
	return db.WithContext(ctx).Transaction(fn)
}

// Create places an order: stock checks, snapshot rows, and totals all happen
// inside one transaction, so a failed item leaves no partial order behind.
func (s *orderService) Create(ctx context.Context, userID uuid.UUID, req dto.CreateOrderRequest) (*dto.OrderResponse, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, errors.New("account not found")
	}

	order := &model.Order{
		UserID:        userID,
		CustomerName:  user.Name,
		CustomerEmail: user.Email,
		Status:        model.OrderPending,
		PaymentMethod: req.PaymentMethod,
		Notes:         req.Notes,
	}

	err = s.runTx(ctx, func(tx *gorm.DB) error {
		subtotal := decimal.Zero
		items := make([]model.OrderItem, 0, len(req.Items))
		for _, line := range req.Items {
			productID, err := uuid.Parse(line.ProductID)
			if err != nil {
				return fmt.Errorf("invalid product id %q", line.ProductID)
			}
			p, err := s.products.FindByIDTx(tx, productID)
			if err != nil || !p.Active {
				return fmt.Errorf("product %s not available", line.ProductID)
			}
			if p.Stock < line.Quantity {
				return fmt.Errorf("insufficient stock for %s", p.Name)
			}
			if err := s.products.AdjustStockTx(tx, productID, -line.Quantity); err != nil {
				return err
			}
			lineTotal := p.Price.Mul(decimal.NewFromInt(int64(line.Quantity)))
			items = append(items, model.OrderItem{
				ProductID:   p.ID,
				ProductName: p.Name,
				ImageURL:    p.ImageURL,
				Price:       p.Price,
				Quantity:    line.Quantity,
				Subtotal:    lineTotal,
			})
			subtotal = subtotal.Add(lineTotal)
		}

		order.Items = items
		order.Subtotal = subtotal
		order.Tax = subtotal.Mul(taxRate).Round(2)
		if subtotal.GreaterThanOrEqual(freeShippingMin) {
			order.Shipping = decimal.Zero
		} else {
			order.Shipping = shippingFlat
		}
		order.Total = order.Subtotal.Add(order.Tax).Add(order.Shipping)
		order.ShippingAddress = &model.OrderAddress{
			Recipient:  req.ShippingAddress.Recipient,
			Phone:      req.ShippingAddress.Phone,
			Street:     req.ShippingAddress.Street,
			City:       req.ShippingAddress.City,
			State:      req.ShippingAddress.State,
			PostalCode: req.ShippingAddress.PostalCode,
			Country:    req.ShippingAddress.Country,
		}

		if err := s.orders.CreateTx(tx, order); err != nil {
			return err
		}
		return s.orders.AppendHistoryTx(tx, &model.OrderStatusHistory{
			OrderID: order.ID,
			Status:  model.OrderPending,
			Note:    "order placed",
		})
	})
	if err != nil {
		return nil, err
	}

	s.activity.Record(ctx, &userID, "order.created", fmt.Sprintf("order #%d, total %s", order.Number, order.Total.StringFixed(2)))
	s.activity.Notify(ctx, userID, "Order placed",
		fmt.Sprintf("Your order #%d has been received.", order.Number))
	if user.OrderEmails {
		s.sendConfirmation(ctx, user, order)
	}

	return s.load(ctx, order.ID)
}

// sendConfirmation generates the invoice and enqueues the confirmation email.
// Best-effort: the order already committed.
func (s *orderService) sendConfirmation(ctx context.Context, user *model.User, order *model.Order) {
	pdfPath, err := infra.GenerateInvoicePDF(order, s.cfg.InvoiceDir)
	if err != nil {
		log.Warn().Err(err).Int("order", order.Number).Msg("invoice generation failed")
		pdfPath = ""
	}
	payload := worker.EmailJobPayload{
		ToEmail: user.Email,
		Subject: fmt.Sprintf("Order confirmation #%d", order.Number),
		Body: fmt.Sprintf(
			"Hi %s,\n\nThanks for your order #%d. Total: %s.\n\nWe will let you know when it ships.",
			user.Name, order.Number, order.Total.StringFixed(2)),
		PDFPath: pdfPath,
	}
	if err := s.dispatcher.EnqueueEmail(ctx, payload); err != nil {
		log.Warn().Err(err).Int("order", order.Number).Msg("confirmation email enqueue failed")
	}
}

func (s *orderService) load(ctx context.Context, id uuid.UUID) (*dto.OrderResponse, error) {
	order, err := s.orders.FindByID(ctx, id)
	if err != nil {
		return nil, ErrOrderNotFound
	}
	resp := mapOrder(order)
	return &resp, nil
}

// Get returns an order. Customers only see their own orders; a foreign order
// answers not-found rather than forbidden.
func (s *orderService) Get(ctx context.Context, id, requesterID uuid.UUID, role string) (*dto.OrderResponse, error) {
	order, err := s.orders.FindByID(ctx, id)
	if err != nil {
		return nil, ErrOrderNotFound
	}
	if role == model.RoleCustomer && order.UserID != requesterID {
		return nil, ErrOrderNotFound
	}
	resp := mapOrder(order)
	return &resp, nil
}

func (s *orderService) List(ctx context.Context, filter dto.OrderFilter) (*dto.OrderListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 20
	}
	orders, total, err := s.orders.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	data := make([]dto.OrderResponse, 0, len(orders))
	for i := range orders {
		data = append(data, mapOrder(&orders[i]))
	}
	return &dto.OrderListResponse{Data: data, Total: total, Page: filter.Page, Limit: filter.Limit}, nil
}

// Edit lets the owner fix the shipping address or notes while the order is
// still pending.
func (s *orderService) Edit(ctx context.Context, id, requesterID uuid.UUID, req dto.EditOrderRequest) (*dto.OrderResponse, error) {
	order, err := s.orders.FindByID(ctx, id)
	if err != nil || order.UserID != requesterID {
		return nil, ErrOrderNotFound
	}
	if order.Status != model.OrderPending {
		return nil, errors.New("only pending orders can be edited")
	}

	err = s.runTx(ctx, func(tx *gorm.DB) error {
		if req.ShippingAddress != nil && order.ShippingAddress != nil {
			a := order.ShippingAddress
			a.Recipient = req.ShippingAddress.Recipient
			a.Phone = req.ShippingAddress.Phone
			a.Street = req.ShippingAddress.Street
			a.City = req.ShippingAddress.City
			a.State = req.ShippingAddress.State
			a.PostalCode = req.ShippingAddress.PostalCode
			a.Country = req.ShippingAddress.Country
			if err := s.orders.UpdateAddressTx(tx, a); err != nil {
				return err
			}
		}
		if req.Notes != nil {
			order.Notes = req.Notes
			return s.orders.UpdateTx(tx, order)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.load(ctx, id)
}

// Cancel is the customer-side cancellation. Reserved stock goes back on the
// shelf in the same transaction.
func (s *orderService) Cancel(ctx context.Context, id, requesterID uuid.UUID, req dto.CancelOrderRequest) (*dto.OrderResponse, error) {
	order, err := s.orders.FindByID(ctx, id)
	if err != nil || order.UserID != requesterID {
		return nil, ErrOrderNotFound
	}
	if order.Status == model.OrderDelivered || order.Status == model.OrderCancelled {
		return nil, errors.New("order can no longer be cancelled")
	}

	note := "cancelled by customer"
	if req.Reason != "" {
		note = "cancelled by customer: " + req.Reason
	}
	if err := s.cancelTx(ctx, order, note); err != nil {
		return nil, err
	}
	s.activity.Record(ctx, &requesterID, "order.cancelled", fmt.Sprintf("order #%d", order.Number))
	return s.load(ctx, id)
}

func (s *orderService) cancelTx(ctx context.Context, order *model.Order, note string) error {
	return s.runTx(ctx, func(tx *gorm.DB) error {
		for _, item := range order.Items {
			if err := s.products.AdjustStockTx(tx, item.ProductID, item.Quantity); err != nil {
				return err
			}
		}
		order.Status = model.OrderCancelled
		if err := s.orders.UpdateTx(tx, order); err != nil {
			return err
		}
		return s.orders.AppendHistoryTx(tx, &model.OrderStatusHistory{
			OrderID: order.ID,
			Status:  model.OrderCancelled,
			Note:    note,
		})
	})
}

// AdminCancel is the staff-side cancellation with the same stock restore.
func (s *orderService) AdminCancel(ctx context.Context, id uuid.UUID, req dto.CancelOrderRequest) (*dto.OrderResponse, error) {
	order, err := s.orders.FindByID(ctx, id)
	if err != nil {
		return nil, ErrOrderNotFound
	}
	if order.Status == model.OrderDelivered || order.Status == model.OrderCancelled {
		return nil, errors.New("order can no longer be cancelled")
	}
	note := "cancelled by store"
	if req.Reason != "" {
		note = "cancelled by store: " + req.Reason
	}
	if err := s.cancelTx(ctx, order, note); err != nil {
		return nil, err
	}
	s.activity.Notify(ctx, order.UserID, "Order cancelled",
		fmt.Sprintf("Your order #%d was cancelled.", order.Number))
	return s.load(ctx, id)
}

// UpdateStatus is the admin-side transition. Cancelling restores stock the
// same way a customer cancellation does.
func (s *orderService) UpdateStatus(ctx context.Context, id uuid.UUID, req dto.UpdateOrderStatusRequest) (*dto.OrderResponse, error) {
	order, err := s.orders.FindByID(ctx, id)
	if err != nil {
		return nil, ErrOrderNotFound
	}
	if !transitionAllowed(order.Status, req.Status) {
		return nil, fmt.Errorf("cannot move order from %s to %s", order.Status, req.Status)
	}

	if req.Status == model.OrderCancelled {
		note := req.Note
		if note == "" {
			note = "cancelled by store"
		}
		if err := s.cancelTx(ctx, order, note); err != nil {
			return nil, err
		}
	} else {
		err = s.runTx(ctx, func(tx *gorm.DB) error {
			order.Status = req.Status
			if req.TrackingNumber != nil {
				order.TrackingNumber = req.TrackingNumber
			}
			if err := s.orders.UpdateTx(tx, order); err != nil {
				return err
			}
			return s.orders.AppendHistoryTx(tx, &model.OrderStatusHistory{
				OrderID: order.ID,
				Status:  req.Status,
				Note:    req.Note,
			})
		})
		if err != nil {
			return nil, err
		}
	}

	s.activity.Notify(ctx, order.UserID, "Order update",
		fmt.Sprintf("Your order #%d is now %s.", order.Number, req.Status))
	return s.load(ctx, id)
}

// InvoicePath returns the invoice file for an order, generating it on demand
// if the confirmation-time copy is missing.
func (s *orderService) InvoicePath(ctx context.Context, id uuid.UUID) (string, error) {
	order, err := s.orders.FindByID(ctx, id)
	if err != nil {
		return "", ErrOrderNotFound
	}
	path := filepath.Join(s.cfg.InvoiceDir, fmt.Sprintf("invoice_%d.pdf", order.Number))
	if _, err := os.Stat(path); err == nil {
		return path, nil
	}
	return infra.GenerateInvoicePDF(order, s.cfg.InvoiceDir)
}
