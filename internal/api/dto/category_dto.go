package dto

import "time"

// CreateCategoryRequest payload.
type CreateCategoryRequest struct {
	Name   string  `json:"name"`
	NameAr *string `json:"name_ar,omitempty"`
}

// UpdateCategoryRequest payload.
type UpdateCategoryRequest struct {
	Name   string  `json:"name"`
	NameAr *string `json:"name_ar,omitempty"`
}

// CategoryResponse one category row.
type CategoryResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	NameAr    *string   `json:"name_ar,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// AssignUserRequest registers a member in the category queue.
type AssignUserRequest struct {
	UserID string `json:"user_id"`
}

// AssignmentResponse one queue row, in stored order.
type AssignmentResponse struct {
	UserID     string    `json:"user_id"`
	CategoryID string    `json:"category_id"`
	CreatedAt  time.Time `json:"created_at"`
}
