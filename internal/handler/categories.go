package handler

import (
	"net/http"

	"boskoback/internal/apierror"
	"boskoback/internal/dto"
	"boskoback/internal/service"

	"github.com/gin-gonic/gin"
)

type CategoriesHandler struct{ svc service.CategoryService }

func NewCategoriesHandler(svc service.CategoryService) *CategoriesHandler {
	return &CategoriesHandler{svc: svc}
}

// List godoc
// @Summary      List categories with product counts
// @Tags         catalog
// @Produce      json
// @Success      200 {array} dto.CategoryResponse
// @Router       /api/categories [get]
func (h *CategoriesHandler) List(c *gin.Context) {
	resp, err := h.svc.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("could not list categories"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Get godoc
// @Summary      Get one category
// @Tags         catalog
// @Produce      json
// @Param        id path string true "Category UUID"
// @Success      200 {object} dto.CategoryResponse
// @Failure      404 {object} apierror.APIError
// @Router       /api/categories/{id} [get]
func (h *CategoriesHandler) Get(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	resp, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Create godoc
// @Summary      Create a category
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.CreateCategoryRequest true "Category"
// @Success      201 {object} dto.CategoryResponse
// @Failure      400 {object} apierror.APIError
// @Router       /api/admin/categories [post]
func (h *CategoriesHandler) Create(c *gin.Context) {
	var req dto.CreateCategoryRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Update godoc
// @Summary      Update a category
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path string                    true "Category UUID"
// @Param        body body dto.UpdateCategoryRequest true "Changes"
// @Success      200  {object} dto.CategoryResponse
// @Failure      400  {object} apierror.APIError
// @Router       /api/admin/categories/{id} [put]
func (h *CategoriesHandler) Update(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateCategoryRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Update(c.Request.Context(), id, req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Delete godoc
// @Summary      Delete a category
// @Description  Member products survive with a null category reference.
// @Tags         admin
// @Security     BearerAuth
// @Param        id path string true "Category UUID"
// @Success      204
// @Failure      400 {object} apierror.APIError
// @Router       /api/admin/categories/{id} [delete]
func (h *CategoriesHandler) Delete(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.Status(http.StatusNoContent)
}
