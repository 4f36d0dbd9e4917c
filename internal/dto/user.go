package dto

import (
	"time"

	"github.com/wathiqah/wathiqah-backend/internal/core/domain"
)

// CreateUserRequest defines the structure for creating a new user.
type CreateUserRequest struct {
	Email       string `json:"email" binding:"required,email"`
	Name        string `json:"name" binding:"required,min=1,max=200"`
	PhoneNumber string `json:"phoneNumber" binding:"omitempty,max=32"`
}

// UpdateUserRequest defines the structure for partially updating a user.
// Nil fields are left unchanged.
type UpdateUserRequest struct {
	Name        *string `json:"name" binding:"omitempty,min=1,max=200"`
	PhoneNumber *string `json:"phoneNumber" binding:"omitempty,max=32"`
}

// UserResponse defines the structure for API responses containing user details.
type UserResponse struct {
	UserID      string    `json:"userID"`
	Email       string    `json:"email"`
	FirstName   string    `json:"firstName"`
	LastName    string    `json:"lastName"`
	PhoneNumber string    `json:"phoneNumber,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// ToUserResponse converts a domain.User to UserResponse DTO
func ToUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		UserID:      user.UserID,
		Email:       user.Email,
		FirstName:   user.FirstName,
		LastName:    user.LastName,
		PhoneNumber: user.PhoneNumber,
		CreatedAt:   user.CreatedAt,
	}
}

// ToListUserResponse converts a slice of domain.User to response DTOs.
func ToListUserResponse(users []domain.User) []UserResponse {
	responses := make([]UserResponse, len(users))
	for i := range users {
		responses[i] = ToUserResponse(&users[i])
	}
	return responses
}
