package handler

import (
	"errors"
	"net/http"

	"boskoback/internal/apierror"
	"boskoback/internal/dto"
	"boskoback/internal/middleware"
	"boskoback/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type OrdersHandler struct{ svc service.OrderService }

func NewOrdersHandler(svc service.OrderService) *OrdersHandler { return &OrdersHandler{svc: svc} }

// Create godoc
// @Summary      Place an order
// @Description  Validates stock, snapshots products and address, computes
// @Description  totals, and decrements stock in one transaction.
// @Tags         orders
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.CreateOrderRequest true "Order lines and shipping address"
// @Success      201  {object} dto.OrderResponse
// @Failure      400  {object} apierror.APIError
// @Router       /api/orders [post]
func (h *OrdersHandler) Create(c *gin.Context) {
	var req dto.CreateOrderRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	userID, _ := uuid.Parse(claims.UserID)

	resp, err := h.svc.Create(c.Request.Context(), userID, req)
	middleware.CountOrderOperation("create", err == nil)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// List godoc
// @Summary      List own orders
// @Tags         orders
// @Produce      json
// @Security     BearerAuth
// @Param        status query string false "Filter by status"
// @Param        page   query int    false "Page (default 1)"
// @Param        limit  query int    false "Page size (default 20)"
// @Success      200 {object} dto.OrderListResponse
// @Router       /api/orders [get]
func (h *OrdersHandler) List(c *gin.Context) {
	var filter dto.OrderFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	// Customers only see their own orders on this route.
	filter.UserID = middleware.GetClaims(c).UserID

	resp, err := h.svc.List(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("could not list orders"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// AdminList godoc
// @Summary      List all orders (staff)
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        status query string false "Filter by status"
// @Param        from   query string false "Created at or after (YYYY-MM-DD)"
// @Param        to     query string false "Created before (YYYY-MM-DD)"
// @Param        search query string false "Customer name/email substring"
// @Param        page   query int    false "Page (default 1)"
// @Param        limit  query int    false "Page size (default 20)"
// @Success      200 {object} dto.OrderListResponse
// @Router       /api/admin/orders [get]
func (h *OrdersHandler) AdminList(c *gin.Context) {
	var filter dto.OrderFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	resp, err := h.svc.List(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("could not list orders"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Get godoc
// @Summary      Get one order
// @Description  Customers can only read their own orders.
// @Tags         orders
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Order UUID"
// @Success      200 {object} dto.OrderResponse
// @Failure      404 {object} apierror.APIError
// @Router       /api/orders/{id} [get]
func (h *OrdersHandler) Get(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	claims := middleware.GetClaims(c)
	userID, _ := uuid.Parse(claims.UserID)

	resp, err := h.svc.Get(c.Request.Context(), id, userID, claims.Role)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Edit godoc
// @Summary      Edit a pending order
// @Description  Only the shipping address and notes, only while pending.
// @Tags         orders
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path string               true "Order UUID"
// @Param        body body dto.EditOrderRequest true "Changes"
// @Success      200  {object} dto.OrderResponse
// @Failure      400  {object} apierror.APIError
// @Router       /api/orders/{id} [put]
func (h *OrdersHandler) Edit(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	var req dto.EditOrderRequest
	if !bindAndValidate(c, &req) {
		return
	}
	userID, _ := uuid.Parse(middleware.GetClaims(c).UserID)

	resp, err := h.svc.Edit(c.Request.Context(), id, userID, req)
	if err != nil {
		if errors.Is(err, service.ErrOrderNotFound) {
			c.JSON(http.StatusNotFound, apierror.New(err.Error()))
			return
		}
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Cancel godoc
// @Summary      Cancel own order
// @Description  Restores reserved stock. Delivered or already cancelled
// @Description  orders cannot be cancelled.
// @Tags         orders
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path string                 true "Order UUID"
// @Param        body body dto.CancelOrderRequest false "Reason"
// @Success      200  {object} dto.OrderResponse
// @Failure      400  {object} apierror.APIError
// @Router       /api/orders/{id}/cancel [post]
func (h *OrdersHandler) Cancel(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	var req dto.CancelOrderRequest
	if !bindAndValidate(c, &req) {
		return
	}
	userID, _ := uuid.Parse(middleware.GetClaims(c).UserID)

	resp, err := h.svc.Cancel(c.Request.Context(), id, userID, req)
	middleware.CountOrderOperation("cancel", err == nil)
	if err != nil {
		if errors.Is(err, service.ErrOrderNotFound) {
			c.JSON(http.StatusNotFound, apierror.New(err.Error()))
			return
		}
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// AdminCancel godoc
// @Summary      Cancel an order (staff)
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path string                 true "Order UUID"
// @Param        body body dto.CancelOrderRequest false "Reason"
// @Success      200  {object} dto.OrderResponse
// @Failure      400  {object} apierror.APIError
// @Router       /api/admin/orders/{id}/cancel [post]
func (h *OrdersHandler) AdminCancel(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	var req dto.CancelOrderRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.AdminCancel(c.Request.Context(), id, req)
	middleware.CountOrderOperation("cancel", err == nil)
	if err != nil {
		if errors.Is(err, service.ErrOrderNotFound) {
			c.JSON(http.StatusNotFound, apierror.New(err.Error()))
			return
		}
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// UpdateStatus godoc
// @Summary      Move an order through its lifecycle (staff)
// @Description  pending → processing → shipped → delivered; cancellation
// @Description  restores stock.
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path string                       true "Order UUID"
// @Param        body body dto.UpdateOrderStatusRequest true "Target status"
// @Success      200  {object} dto.OrderResponse
// @Failure      400  {object} apierror.APIError
// @Router       /api/admin/orders/{id}/status [put]
func (h *OrdersHandler) UpdateStatus(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateOrderStatusRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.UpdateStatus(c.Request.Context(), id, req)
	middleware.CountOrderOperation("status_"+req.Status, err == nil)
	if err != nil {
		if errors.Is(err, service.ErrOrderNotFound) {
			c.JSON(http.StatusNotFound, apierror.New(err.Error()))
			return
		}
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Invoice godoc
// @Summary      Download the order invoice PDF (staff)
// @Tags         admin
// @Produce      application/pdf
// @Security     BearerAuth
// @Param        id path string true "Order UUID"
// @Success      200 {file} file
// @Failure      404 {object} apierror.APIError
// @Router       /api/admin/orders/{id}/invoice [get]
func (h *OrdersHandler) Invoice(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	path, err := h.svc.InvoicePath(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New(service.ErrOrderNotFound.Error()))
		return
	}
	c.FileAttachment(path, "invoice.pdf")
}
