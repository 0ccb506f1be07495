package service

import (
	"context"
	"errors"

	"boskoback/internal/dto"
	"boskoback/internal/model"
	"boskoback/internal/repository"

	"github.com/google/uuid"
)

var ErrAddressNotFound = errors.New("address not found")

// AddressService manages a user's saved shipping addresses. At most one
// address per user carries the default flag.
type AddressService interface {
	List(ctx context.Context, userID uuid.UUID) ([]dto.SavedAddressResponse, error)
	Create(ctx context.Context, userID uuid.UUID, req dto.CreateAddressRequest) (*dto.SavedAddressResponse, error)
	Update(ctx context.Context, userID, id uuid.UUID, req dto.UpdateAddressRequest) (*dto.SavedAddressResponse, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
	SetDefault(ctx context.Context, userID, id uuid.UUID) error
}

type addressService struct {
	repo repository.AddressRepository
}

func NewAddressService(repo repository.AddressRepository) AddressService {
	return &addressService{repo: repo}
}

// owned loads an address and verifies it belongs to the user. Foreign
// addresses answer not-found.
func (s *addressService) owned(ctx context.Context, userID, id uuid.UUID) (*model.Address, error) {
	a, err := s.repo.FindByID(ctx, id)
	if err != nil || a.UserID != userID {
		return nil, ErrAddressNotFound
	}
	return a, nil
}

func (s *addressService) List(ctx context.Context, userID uuid.UUID) ([]dto.SavedAddressResponse, error) {
	addrs, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.SavedAddressResponse, 0, len(addrs))
	for i := range addrs {
		resp = append(resp, mapSavedAddress(&addrs[i]))
	}
	return resp, nil
}

func (s *addressService) Create(ctx context.Context, userID uuid.UUID, req dto.CreateAddressRequest) (*dto.SavedAddressResponse, error) {
	existing, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	a := &model.Address{
		UserID:     userID,
		Label:      req.Label,
		Recipient:  req.Recipient,
		Phone:      req.Phone,
		Street:     req.Street,
		City:       req.City,
		State:      req.State,
		PostalCode: req.PostalCode,
		Country:    req.Country,
	}
	// The first address is always the default.
	if len(existing) == 0 {
		a.IsDefault = true
	}
	if err := s.repo.Create(ctx, a); err != nil {
		return nil, err
	}
	if req.IsDefault && !a.IsDefault {
		if err := s.repo.SetDefault(ctx, userID, a.ID); err != nil {
			return nil, err
		}
		a.IsDefault = true
	}
	resp := mapSavedAddress(a)
	return &resp, nil
}

func (s *addressService) Update(ctx context.Context, userID, id uuid.UUID, req dto.UpdateAddressRequest) (*dto.SavedAddressResponse, error) {
	a, err := s.owned(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if req.Label != nil {
		a.Label = *req.Label
	}
	if req.Recipient != nil {
		a.Recipient = *req.Recipient
	}
	if req.Phone != nil {
		a.Phone = *req.Phone
	}
	if req.Street != nil {
		a.Street = *req.Street
	}
	if req.City != nil {
		a.City = *req.City
	}
	if req.State != nil {
		a.State = *req.State
	}
	if req.PostalCode != nil {
		a.PostalCode = *req.PostalCode
	}
	if req.Country != nil {
		a.Country = *req.Country
	}
	if err := s.repo.Update(ctx, a); err != nil {
		return nil, err
	}
	resp := mapSavedAddress(a)
	return &resp, nil
}

func (s *addressService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	if _, err := s.owned(ctx, userID, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func (s *addressService) SetDefault(ctx context.Context, userID, id uuid.UUID) error {
	if _, err := s.owned(ctx, userID, id); err != nil {
		return err
	}
	return s.repo.SetDefault(ctx, userID, id)
}
