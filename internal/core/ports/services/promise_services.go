package services

import (
	"context"

	"github.com/wathiqah/wathiqah-backend/internal/core/domain"
	"github.com/wathiqah/wathiqah-backend/internal/dto"
)

// PromiseReaderSvc defines read operations for promise data
type PromiseReaderSvc interface {
	// GetPromise retrieves a promise, enforcing ownership.
	GetPromise(ctx context.Context, promiseID, requestingUserID string) (*domain.Promise, error)

	// ListPromises retrieves a user's promises ordered by due date.
	ListPromises(ctx context.Context, userID string) ([]domain.Promise, error)
}

// PromiseWriterSvc defines write operations for promise data
type PromiseWriterSvc interface {
	// CreatePromise persists a new promise owned by userID.
	CreatePromise(ctx context.Context, req dto.CreatePromiseRequest, userID string) (*domain.Promise, error)

	// UpdatePromise applies a partial update, enforcing ownership.
	UpdatePromise(ctx context.Context, promiseID string, req dto.UpdatePromiseRequest, requestingUserID string) (*domain.Promise, error)

	// DeletePromise removes a promise, enforcing ownership.
	DeletePromise(ctx context.Context, promiseID, requestingUserID string) error
}

// PromiseSvcFacade combines all promise-related service interfaces
type PromiseSvcFacade interface {
	PromiseReaderSvc
	PromiseWriterSvc
}
