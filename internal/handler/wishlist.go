package handler

import (
	"net/http"

	"boskoback/internal/apierror"
	"boskoback/internal/service"

	"github.com/gin-gonic/gin"
)

type WishlistHandler struct{ svc service.WishlistService }

func NewWishlistHandler(svc service.WishlistService) *WishlistHandler {
	return &WishlistHandler{svc: svc}
}

// List godoc
// @Summary      List wishlist items with product snapshots
// @Tags         account
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array} dto.WishlistItemResponse
// @Router       /api/wishlist [get]
func (h *WishlistHandler) List(c *gin.Context) {
	resp, err := h.svc.List(c.Request.Context(), currentUserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("could not list wishlist"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Add godoc
// @Summary      Add a product to the wishlist
// @Description  Adding an already saved product is a no-op.
// @Tags         account
// @Security     BearerAuth
// @Param        productId path string true "Product UUID"
// @Success      204
// @Failure      400 {object} apierror.APIError
// @Router       /api/wishlist/{productId} [post]
func (h *WishlistHandler) Add(c *gin.Context) {
	productID, ok := pathUUID(c, "productId")
	if !ok {
		return
	}
	if err := h.svc.Add(c.Request.Context(), currentUserID(c), productID); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.Status(http.StatusNoContent)
}

// Remove godoc
// @Summary      Remove a product from the wishlist
// @Tags         account
// @Security     BearerAuth
// @Param        productId path string true "Product UUID"
// @Success      204
// @Router       /api/wishlist/{productId} [delete]
func (h *WishlistHandler) Remove(c *gin.Context) {
	productID, ok := pathUUID(c, "productId")
	if !ok {
		return
	}
	if err := h.svc.Remove(c.Request.Context(), currentUserID(c), productID); err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("could not update wishlist"))
		return
	}
	c.Status(http.StatusNoContent)
}
