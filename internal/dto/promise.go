package dto

import (
	"time"

	"github.com/wathiqah/wathiqah-backend/internal/core/domain"
)

// CreatePromiseRequest defines the structure for creating a new promise.
type CreatePromiseRequest struct {
	Description string    `json:"description" binding:"required,min=1,max=2000"`
	PromiseTo   string    `json:"promiseTo" binding:"required,min=1,max=200"`
	DueDate     time.Time `json:"dueDate" binding:"required"`
	Priority    string    `json:"priority" binding:"required,oneof=LOW MEDIUM HIGH"`
	Category    string    `json:"category" binding:"omitempty,max=100"`
	Notes       string    `json:"notes" binding:"omitempty,max=2000"`
}

// UpdatePromiseRequest defines the structure for partially updating a promise.
// Nil fields are left unchanged.
type UpdatePromiseRequest struct {
	Description *string    `json:"description" binding:"omitempty,min=1,max=2000"`
	PromiseTo   *string    `json:"promiseTo" binding:"omitempty,min=1,max=200"`
	DueDate     *time.Time `json:"dueDate" binding:"omitempty"`
	Priority    *string    `json:"priority" binding:"omitempty,oneof=LOW MEDIUM HIGH"`
	Status      *string    `json:"status" binding:"omitempty,oneof=PENDING FULFILLED BROKEN"`
	Category    *string    `json:"category" binding:"omitempty,max=100"`
	Notes       *string    `json:"notes" binding:"omitempty,max=2000"`
}

// PromiseResponse defines the structure for API responses containing promise details.
type PromiseResponse struct {
	PromiseID   string    `json:"promiseID"`
	Description string    `json:"description"`
	PromiseTo   string    `json:"promiseTo"`
	DueDate     time.Time `json:"dueDate"`
	Priority    string    `json:"priority"`
	Status      string    `json:"status"`
	Category    string    `json:"category,omitempty"`
	Notes       string    `json:"notes,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// ToPromiseResponse converts a domain.Promise to PromiseResponse DTO
func ToPromiseResponse(p *domain.Promise) PromiseResponse {
	return PromiseResponse{
		PromiseID:   p.PromiseID,
		Description: p.Description,
		PromiseTo:   p.PromiseTo,
		DueDate:     p.DueDate,
		Priority:    string(p.Priority),
		Status:      string(p.Status),
		Category:    p.Category,
		Notes:       p.Notes,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.LastUpdatedAt,
	}
}

// ToListPromiseResponse converts a slice of domain.Promise to response DTOs.
func ToListPromiseResponse(promises []domain.Promise) []PromiseResponse {
	responses := make([]PromiseResponse, len(promises))
	for i := range promises {
		responses[i] = ToPromiseResponse(&promises[i])
	}
	return responses
}
