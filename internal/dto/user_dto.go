package dto

type UserResponse struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Email     string  `json:"email"`
	Phone     *string `json:"phone"`
	Role      string  `json:"role"`
	Provider  string  `json:"provider"`
	AvatarURL *string `json:"avatar_url"`
	Active    bool    `json:"active"`
	CreatedAt string  `json:"created_at"`
}

// ─── Admin user management ───────────────────────────────────────────────────

type CreateUserRequest struct {
	Name     string  `json:"name"     validate:"required,min=2,max=120"`
	Email    string  `json:"email"    validate:"required,email"`
	Password string  `json:"password" validate:"required,min=8,max=72"`
	Phone    *string `json:"phone"`
	Role     string  `json:"role"     validate:"required,oneof=admin employee customer"`
}

type UpdateUserRequest struct {
	Name   *string `json:"name"   validate:"omitempty,min=2,max=120"`
	Phone  *string `json:"phone"`
	Role   *string `json:"role"   validate:"omitempty,oneof=admin employee customer"`
	Active *bool   `json:"active"`
}

type UserFilter struct {
	Role   string `form:"role"`
	Active string `form:"active"` // "true" | "false" | "all" (default all)
	Search string `form:"search"`
	Page   int    `form:"page,default=1"   validate:"min=1"`
	Limit  int    `form:"limit,default=20" validate:"min=1,max=100"`
}

type UserListResponse struct {
	Data  []UserResponse `json:"data"`
	Total int64          `json:"total"`
	Page  int            `json:"page"`
	Limit int            `json:"limit"`
}
