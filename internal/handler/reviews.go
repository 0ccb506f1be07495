package handler

import (
	"net/http"

	"boskoback/internal/apierror"
	"boskoback/internal/dto"
	"boskoback/internal/middleware"
	"boskoback/internal/service"

	"github.com/gin-gonic/gin"
)

type ReviewsHandler struct{ svc service.ReviewService }

func NewReviewsHandler(svc service.ReviewService) *ReviewsHandler {
	return &ReviewsHandler{svc: svc}
}

// ListForProduct godoc
// @Summary      List reviews for a product with the average rating
// @Tags         catalog
// @Produce      json
// @Param        id path string true "Product UUID"
// @Success      200 {object} dto.ProductReviewsResponse
// @Failure      404 {object} apierror.APIError
// @Router       /api/products/{id}/reviews [get]
func (h *ReviewsHandler) ListForProduct(c *gin.Context) {
	productID, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	resp, err := h.svc.ListForProduct(c.Request.Context(), productID)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Create godoc
// @Summary      Review a product
// @Description  One review per product per user.
// @Tags         catalog
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path string                  true "Product UUID"
// @Param        body body dto.CreateReviewRequest true "Rating and comment"
// @Success      201  {object} dto.ReviewResponse
// @Failure      400  {object} apierror.APIError
// @Router       /api/products/{id}/reviews [post]
func (h *ReviewsHandler) Create(c *gin.Context) {
	productID, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	var req dto.CreateReviewRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	resp, err := h.svc.Create(c.Request.Context(), productID, currentUserID(c), claims.Name, req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Delete godoc
// @Summary      Delete a review
// @Description  Only the author or an admin.
// @Tags         catalog
// @Security     BearerAuth
// @Param        id path string true "Review UUID"
// @Success      204
// @Failure      404 {object} apierror.APIError
// @Router       /api/reviews/{id} [delete]
func (h *ReviewsHandler) Delete(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	claims := middleware.GetClaims(c)
	if err := h.svc.Delete(c.Request.Context(), id, currentUserID(c), claims.Role); err != nil {
		c.JSON(http.StatusNotFound, apierror.New(err.Error()))
		return
	}
	c.Status(http.StatusNoContent)
}
