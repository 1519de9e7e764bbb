package dto

import "time"

// CreateStatusRequest payload.
type CreateStatusRequest struct {
	Name      string `json:"name"`
	SortOrder int    `json:"sort_order"`
	IsDefault bool   `json:"is_default"`
	IsClosing bool   `json:"is_closing"`
}

// UpdateStatusRequest payload; absent fields stay unchanged.
type UpdateStatusRequest struct {
	Name      *string `json:"name,omitempty"`
	SortOrder *int    `json:"sort_order,omitempty"`
	IsDefault *bool   `json:"is_default,omitempty"`
	IsClosing *bool   `json:"is_closing,omitempty"`
}

// StatusResponse one status row.
type StatusResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	SortOrder int       `json:"sort_order"`
	IsDefault bool      `json:"is_default"`
	IsClosing bool      `json:"is_closing"`
	CreatedAt time.Time `json:"created_at"`
}
