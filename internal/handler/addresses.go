package handler

import (
	"errors"
	"net/http"

	"boskoback/internal/apierror"
	"boskoback/internal/dto"
	"boskoback/internal/service"

	"github.com/gin-gonic/gin"
)

type AddressesHandler struct{ svc service.AddressService }

func NewAddressesHandler(svc service.AddressService) *AddressesHandler {
	return &AddressesHandler{svc: svc}
}

// List godoc
// @Summary      List saved shipping addresses
// @Tags         account
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array} dto.SavedAddressResponse
// @Router       /api/addresses [get]
func (h *AddressesHandler) List(c *gin.Context) {
	resp, err := h.svc.List(c.Request.Context(), currentUserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("could not list addresses"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Create godoc
// @Summary      Save a shipping address
// @Description  The first saved address becomes the default.
// @Tags         account
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.CreateAddressRequest true "Address"
// @Success      201 {object} dto.SavedAddressResponse
// @Failure      400 {object} apierror.APIError
// @Router       /api/addresses [post]
func (h *AddressesHandler) Create(c *gin.Context) {
	var req dto.CreateAddressRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Create(c.Request.Context(), currentUserID(c), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Update godoc
// @Summary      Update a saved address
// @Tags         account
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path string                   true "Address UUID"
// @Param        body body dto.UpdateAddressRequest true "Changes"
// @Success      200  {object} dto.SavedAddressResponse
// @Failure      404  {object} apierror.APIError
// @Router       /api/addresses/{id} [put]
func (h *AddressesHandler) Update(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateAddressRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Update(c.Request.Context(), currentUserID(c), id, req)
	if err != nil {
		if errors.Is(err, service.ErrAddressNotFound) {
			c.JSON(http.StatusNotFound, apierror.New(err.Error()))
			return
		}
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Delete godoc
// @Summary      Delete a saved address
// @Tags         account
// @Security     BearerAuth
// @Param        id path string true "Address UUID"
// @Success      204
// @Failure      404 {object} apierror.APIError
// @Router       /api/addresses/{id} [delete]
func (h *AddressesHandler) Delete(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), currentUserID(c), id); err != nil {
		if errors.Is(err, service.ErrAddressNotFound) {
			c.JSON(http.StatusNotFound, apierror.New(err.Error()))
			return
		}
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.Status(http.StatusNoContent)
}

// SetDefault godoc
// @Summary      Mark an address as the default
// @Description  Clears the flag on every other saved address.
// @Tags         account
// @Security     BearerAuth
// @Param        id path string true "Address UUID"
// @Success      204
// @Failure      404 {object} apierror.APIError
// @Router       /api/addresses/{id}/default [put]
func (h *AddressesHandler) SetDefault(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	if err := h.svc.SetDefault(c.Request.Context(), currentUserID(c), id); err != nil {
		if errors.Is(err, service.ErrAddressNotFound) {
			c.JSON(http.StatusNotFound, apierror.New(err.Error()))
			return
		}
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.Status(http.StatusNoContent)
}
