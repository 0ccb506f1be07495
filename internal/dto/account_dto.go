package dto

import "github.com/shopspring/decimal"

type ProfileResponse struct {
	User       UserResponse    `json:"user"`
	OrderCount int64           `json:"order_count"`
	TotalSpend decimal.Decimal `json:"total_spend"`
}

type UpdateProfileRequest struct {
	Name  *string `json:"name" validate:"omitempty,min=2,max=120"`
	Phone *string `json:"phone"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password"     validate:"required,min=8,max=72"`
}

type PreferencesRequest struct {
	Newsletter  *bool `json:"newsletter"`
	OrderEmails *bool `json:"order_emails"`
}

type PreferencesResponse struct {
	Newsletter  bool `json:"newsletter"`
	OrderEmails bool `json:"order_emails"`
}

type AvatarResponse struct {
	AvatarURL string `json:"avatar_url"`
}
