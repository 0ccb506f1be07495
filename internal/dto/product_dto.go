package dto

import "github.com/shopspring/decimal"

// ─── Requests ────────────────────────────────────────────────────────────────

type CreateProductRequest struct {
	Name        string          `json:"name"        validate:"required,min=2,max=160"`
	Description *string         `json:"description"`
	Price       decimal.Decimal `json:"price"       validate:"required,gt=0"`
	Stock       int             `json:"stock"       validate:"min=0"`
	ImageURL    *string         `json:"image_url"   validate:"omitempty,url"`
	CategoryID  *string         `json:"category_id" validate:"omitempty,uuid"`
}

type UpdateProductRequest struct {
	Name        *string          `json:"name"        validate:"omitempty,min=2,max=160"`
	Description *string          `json:"description"`
	Price       *decimal.Decimal `json:"price"       validate:"omitempty,gt=0"`
	Stock       *int             `json:"stock"       validate:"omitempty,min=0"`
	ImageURL    *string          `json:"image_url"   validate:"omitempty,url"`
	CategoryID  *string          `json:"category_id" validate:"omitempty,uuid"`
}

// ─── Filter / Pagination ─────────────────────────────────────────────────────

type ProductFilter struct {
	CategoryID string `form:"category_id"`
	Search     string `form:"search"`
	Page       int    `form:"page,default=1"   validate:"min=1"`
	Limit      int    `form:"limit,default=20" validate:"min=1,max=100"`
}

// ─── Responses ───────────────────────────────────────────────────────────────

type ProductResponse struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Description  *string         `json:"description"`
	Price        decimal.Decimal `json:"price"`
	Stock        int             `json:"stock"`
	ImageURL     *string         `json:"image_url"`
	CategoryID   *string         `json:"category_id"`
	CategoryName *string         `json:"category_name"`
	CreatedAt    string          `json:"created_at"`
}

type ProductListResponse struct {
	Data  []ProductResponse `json:"data"`
	Total int64             `json:"total"`
	Page  int               `json:"page"`
	Limit int               `json:"limit"`
}
