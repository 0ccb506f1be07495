package dto

type CreateReviewRequest struct {
	Rating  int    `json:"rating"  validate:"required,min=1,max=5"`
	Comment string `json:"comment" validate:"max=2000"`
}

type ReviewResponse struct {
	ID        string `json:"id"`
	ProductID string `json:"product_id"`
	UserID    string `json:"user_id"`
	UserName  string `json:"user_name"`
	Rating    int    `json:"rating"`
	Comment   string `json:"comment"`
	CreatedAt string `json:"created_at"`
}

type ProductReviewsResponse struct {
	Average float64          `json:"average"`
	Count   int64            `json:"count"`
	Reviews []ReviewResponse `json:"reviews"`
}

type WishlistItemResponse struct {
	ProductID string          `json:"product_id"`
	Product   ProductResponse `json:"product"`
	AddedAt   string          `json:"added_at"`
}

type NotificationResponse struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Body      string `json:"body"`
	Read      bool   `json:"read"`
	CreatedAt string `json:"created_at"`
}
