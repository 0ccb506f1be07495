package service

import (
	"boskoback/internal/dto"
	"boskoback/internal/model"
)

const timeFormat = "2006-01-02T15:04:05Z"

func mapUser(u *model.User) dto.UserResponse {
	return dto.UserResponse{
		ID:        u.ID.String(),
		Name:      u.Name,
		Email:     u.Email,
		Phone:     u.Phone,
		Role:      u.Role,
		Provider:  u.Provider,
		AvatarURL: u.AvatarURL,
		Active:    u.Active,
		CreatedAt: u.CreatedAt.Format(timeFormat),
	}
}

func mapProduct(p *model.Product) dto.ProductResponse {
	resp := dto.ProductResponse{
		ID:          p.ID.String(),
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Stock:       p.Stock,
		ImageURL:    p.ImageURL,
		CreatedAt:   p.CreatedAt.Format(timeFormat),
	}
	if p.CategoryID != nil {
		id := p.CategoryID.String()
		resp.CategoryID = &id
	}
	if p.Category != nil {
		name := p.Category.Name
		resp.CategoryName = &name
	}
	return resp
}

func mapOrder(o *model.Order) dto.OrderResponse {
	items := make([]dto.OrderItemResponse, 0, len(o.Items))
	for _, item := range o.Items {
		items = append(items, dto.OrderItemResponse{
			ProductID:   item.ProductID.String(),
			ProductName: item.ProductName,
			ImageURL:    item.ImageURL,
			Price:       item.Price,
			Quantity:    item.Quantity,
			Subtotal:    item.Subtotal,
		})
	}
	history := make([]dto.StatusHistoryResponse, 0, len(o.StatusHistory))
	for _, h := range o.StatusHistory {
		history = append(history, dto.StatusHistoryResponse{
			Status:    h.Status,
			Note:      h.Note,
			CreatedAt: h.CreatedAt.Format(timeFormat),
		})
	}
	resp := dto.OrderResponse{
		ID:             o.ID.String(),
		Number:         o.Number,
		CustomerName:   o.CustomerName,
		CustomerEmail:  o.CustomerEmail,
		Items:          items,
		Subtotal:       o.Subtotal,
		Tax:            o.Tax,
		Shipping:       o.Shipping,
		Total:          o.Total,
		Status:         o.Status,
		PaymentMethod:  o.PaymentMethod,
		TrackingNumber: o.TrackingNumber,
		Notes:          o.Notes,
		StatusHistory:  history,
		CreatedAt:      o.CreatedAt.Format(timeFormat),
	}
	if a := o.ShippingAddress; a != nil {
		resp.ShippingAddress = &dto.AddressResponse{
			Recipient:  a.Recipient,
			Phone:      a.Phone,
			Street:     a.Street,
			City:       a.City,
			State:      a.State,
			PostalCode: a.PostalCode,
			Country:    a.Country,
		}
	}
	return resp
}

func mapSavedAddress(a *model.Address) dto.SavedAddressResponse {
	return dto.SavedAddressResponse{
		ID:         a.ID.String(),
		Label:      a.Label,
		Recipient:  a.Recipient,
		Phone:      a.Phone,
		Street:     a.Street,
		City:       a.City,
		State:      a.State,
		PostalCode: a.PostalCode,
		Country:    a.Country,
		IsDefault:  a.IsDefault,
	}
}
