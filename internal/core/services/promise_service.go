package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/wathiqah/wathiqah-backend/internal/apperrors"
	"github.com/wathiqah/wathiqah-backend/internal/core/domain"
	portsrepo "github.com/wathiqah/wathiqah-backend/internal/core/ports/repositories"
	"github.com/wathiqah/wathiqah-backend/internal/dto"
)

// PromiseService provides business logic for personal promises.
type PromiseService struct {
	promiseRepo portsrepo.PromiseRepositoryFacade
}

// NewPromiseService creates a new PromiseService.
func NewPromiseService(promiseRepo portsrepo.PromiseRepositoryFacade) *PromiseService {
	return &PromiseService{promiseRepo: promiseRepo}
}

// CreatePromise persists a new promise owned by userID. New promises always
// start out PENDING.
func (s *PromiseService) CreatePromise(ctx context.Context, req dto.CreatePromiseRequest, userID string) (*domain.Promise, error) {
	now := time.Now()
	promise := domain.Promise{
		PromiseID:   uuid.NewString(),
		UserID:      userID,
		Description: req.Description,
		PromiseTo:   req.PromiseTo,
		DueDate:     req.DueDate,
		Priority:    domain.PromisePriority(req.Priority),
		Status:      domain.PromisePending,
		Category:    req.Category,
		Notes:       req.Notes,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.promiseRepo.SavePromise(ctx, promise); err != nil {
		return nil, fmt.Errorf("failed to create promise in service: %w", err)
	}
	return &promise, nil
}

// GetPromise retrieves a promise, enforcing ownership.
func (s *PromiseService) GetPromise(ctx context.Context, promiseID, requestingUserID string) (*domain.Promise, error) {
	promise, err := s.promiseRepo.FindPromiseByID(ctx, promiseID)
	if err != nil {
		return nil, fmt.Errorf("failed to get promise in service: %w", err)
	}
	if promise.UserID != requestingUserID {
		return nil, fmt.Errorf("%w: promise belongs to another user", apperrors.ErrForbidden)
	}
	return promise, nil
}

// ListPromises retrieves a user's promises ordered by due date.
func (s *PromiseService) ListPromises(ctx context.Context, userID string) ([]domain.Promise, error) {
	promises, err := s.promiseRepo.ListPromisesByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list promises in service: %w", err)
	}
	if promises == nil {
		return []domain.Promise{}, nil
	}
	return promises, nil
}

// UpdatePromise applies a partial update, enforcing ownership.
func (s *PromiseService) UpdatePromise(ctx context.Context, promiseID string, req dto.UpdatePromiseRequest, requestingUserID string) (*domain.Promise, error) {
	promise, err := s.GetPromise(ctx, promiseID, requestingUserID)
	if err != nil {
		return nil, err
	}

	if req.Description != nil {
		promise.Description = *req.Description
	}
	if req.PromiseTo != nil {
		promise.PromiseTo = *req.PromiseTo
	}
	if req.DueDate != nil {
		promise.DueDate = *req.DueDate
	}
	if req.Priority != nil {
		promise.Priority = domain.PromisePriority(*req.Priority)
	}
	if req.Status != nil {
		promise.Status = domain.PromiseStatus(*req.Status)
	}
	if req.Category != nil {
		promise.Category = *req.Category
	}
	if req.Notes != nil {
		promise.Notes = *req.Notes
	}
	promise.LastUpdatedAt = time.Now()
	promise.LastUpdatedBy = requestingUserID

	if err := s.promiseRepo.UpdatePromise(ctx, *promise); err != nil {
		return nil, fmt.Errorf("failed to update promise in service: %w", err)
	}
	return promise, nil
}

// DeletePromise removes a promise, enforcing ownership.
func (s *PromiseService) DeletePromise(ctx context.Context, promiseID, requestingUserID string) error {
	if _, err := s.GetPromise(ctx, promiseID, requestingUserID); err != nil {
		return err
	}
	if err := s.promiseRepo.DeletePromise(ctx, promiseID); err != nil {
		return fmt.Errorf("failed to delete promise in service: %w", err)
	}
	return nil
}
