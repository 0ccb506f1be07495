package handler

import (
	"net/http"

	"boskoback/internal/apierror"
	"boskoback/internal/dto"
	"boskoback/internal/middleware"
	"boskoback/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AccountHandler struct{ svc service.AccountService }

func NewAccountHandler(svc service.AccountService) *AccountHandler {
	return &AccountHandler{svc: svc}
}

func currentUserID(c *gin.Context) uuid.UUID {
	id, _ := uuid.Parse(middleware.GetClaims(c).UserID)
	return id
}

// Profile godoc
// @Summary      Get own profile with order stats
// @Tags         account
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} dto.ProfileResponse
// @Router       /api/account/profile [get]
func (h *AccountHandler) Profile(c *gin.Context) {
	resp, err := h.svc.Profile(c.Request.Context(), currentUserID(c))
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// UpdateProfile godoc
// @Summary      Update name/phone
// @Tags         account
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.UpdateProfileRequest true "Changes"
// @Success      200 {object} dto.ProfileResponse
// @Failure      400 {object} apierror.APIError
// @Router       /api/account/profile [put]
func (h *AccountHandler) UpdateProfile(c *gin.Context) {
	var req dto.UpdateProfileRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.UpdateProfile(c.Request.Context(), currentUserID(c), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ChangePassword godoc
// @Summary      Change the account password
// @Description  Requires the current password; the new one must differ.
// @Tags         account
// @Accept       json
// @Security     BearerAuth
// @Param        body body dto.ChangePasswordRequest true "Current and new password"
// @Success      204
// @Failure      400 {object} apierror.APIError
// @Router       /api/account/password [put]
func (h *AccountHandler) ChangePassword(c *gin.Context) {
	var req dto.ChangePasswordRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if err := h.svc.ChangePassword(c.Request.Context(), currentUserID(c), req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.Status(http.StatusNoContent)
}

// Preferences godoc
// @Summary      Get notification preferences
// @Tags         account
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} dto.PreferencesResponse
// @Router       /api/account/preferences [get]
func (h *AccountHandler) Preferences(c *gin.Context) {
	resp, err := h.svc.Preferences(c.Request.Context(), currentUserID(c))
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// UpdatePreferences godoc
// @Summary      Update notification preferences
// @Tags         account
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.PreferencesRequest true "Flags"
// @Success      200 {object} dto.PreferencesResponse
// @Failure      400 {object} apierror.APIError
// @Router       /api/account/preferences [put]
func (h *AccountHandler) UpdatePreferences(c *gin.Context) {
	var req dto.PreferencesRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.UpdatePreferences(c.Request.Context(), currentUserID(c), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// UploadAvatar godoc
// @Summary      Upload a profile picture
// @Description  Multipart field "avatar": jpeg/png/webp up to 5 MB.
// @Tags         account
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        avatar formData file true "Image file"
// @Success      200 {object} dto.AvatarResponse
// @Failure      400 {object} apierror.APIError
// @Router       /api/account/avatar [post]
func (h *AccountHandler) UploadAvatar(c *gin.Context) {
	fh, err := c.FormFile("avatar")
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("multipart field 'avatar' is required"))
		return
	}
	resp, err := h.svc.UploadAvatar(c.Request.Context(), currentUserID(c), fh)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Deactivate godoc
// @Summary      Deactivate own account
// @Description  Soft delete: the account is flagged inactive and can no
// @Description  longer sign in.
// @Tags         account
// @Security     BearerAuth
// @Success      204
// @Failure      400 {object} apierror.APIError
// @Router       /api/account [delete]
func (h *AccountHandler) Deactivate(c *gin.Context) {
	if err := h.svc.Deactivate(c.Request.Context(), currentUserID(c)); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.Status(http.StatusNoContent)
}
