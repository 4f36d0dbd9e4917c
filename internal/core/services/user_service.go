package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/wathiqah/wathiqah-backend/internal/apperrors"
	"github.com/wathiqah/wathiqah-backend/internal/core/domain"
	portsrepo "github.com/wathiqah/wathiqah-backend/internal/core/ports/repositories"
	"github.com/wathiqah/wathiqah-backend/internal/dto"
	"github.com/wathiqah/wathiqah-backend/internal/utils"
)

// UserService provides business logic for user profiles. Credentials and
// sessions are handled outside this service.
type UserService struct {
	userRepo portsrepo.UserRepositoryFacade
}

// NewUserService creates a new UserService.
func NewUserService(userRepo portsrepo.UserRepositoryFacade) *UserService {
	return &UserService{userRepo: userRepo}
}

// CreateUser persists a new user. Email addresses are unique.
func (s *UserService) CreateUser(ctx context.Context, req dto.CreateUserRequest) (*domain.User, error) {
	existing, err := s.userRepo.FindUserByEmail(ctx, req.Email)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to check for existing user: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: user with email '%s' already exists", apperrors.ErrDuplicate, req.Email)
	}

	firstName, lastName := utils.SplitName(req.Name)
	if firstName == "" {
		return nil, fmt.Errorf("%w: user name cannot be blank", apperrors.ErrValidation)
	}

	now := time.Now()
	userID := uuid.NewString()
	user := domain.User{
		UserID:      userID,
		Email:       req.Email,
		FirstName:   firstName,
		LastName:    lastName,
		PhoneNumber: req.PhoneNumber,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.userRepo.SaveUser(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user in service: %w", err)
	}
	return &user, nil
}

// GetUser retrieves a single user.
func (s *UserService) GetUser(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user in service: %w", err)
	}
	return user, nil
}

// ListUsers retrieves all users.
func (s *UserService) ListUsers(ctx context.Context) ([]domain.User, error) {
	users, err := s.userRepo.ListUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users in service: %w", err)
	}
	if users == nil {
		return []domain.User{}, nil
	}
	return users, nil
}

// UpdateUser applies a partial update to a user's profile.
func (s *UserService) UpdateUser(ctx context.Context, userID string, req dto.UpdateUserRequest) (*domain.User, error) {
	user, err := s.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		firstName, lastName := utils.SplitName(*req.Name)
		if firstName == "" {
			return nil, fmt.Errorf("%w: user name cannot be blank", apperrors.ErrValidation)
		}
		user.FirstName = firstName
		user.LastName = lastName
	}
	if req.PhoneNumber != nil {
		user.PhoneNumber = *req.PhoneNumber
	}
	user.LastUpdatedAt = time.Now()
	user.LastUpdatedBy = userID

	if err := s.userRepo.UpdateUser(ctx, *user); err != nil {
		return nil, fmt.Errorf("failed to update user in service: %w", err)
	}
	return user, nil
}
