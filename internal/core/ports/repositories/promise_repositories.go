package repositories

import (
	"context"

	"github.com/wathiqah/wathiqah-backend/internal/core/domain"
)

// PromiseReader defines read operations for promise data
type PromiseReader interface {
	// FindPromiseByID retrieves a single promise.
	FindPromiseByID(ctx context.Context, promiseID string) (*domain.Promise, error)

	// ListPromisesByUser retrieves a user's promises ordered by due date.
	ListPromisesByUser(ctx context.Context, userID string) ([]domain.Promise, error)
}

// PromiseWriter defines write operations for promise data
type PromiseWriter interface {
	// SavePromise persists a new promise.
	SavePromise(ctx context.Context, promise domain.Promise) error

	// UpdatePromise persists changes to an existing promise.
	UpdatePromise(ctx context.Context, promise domain.Promise) error

	// DeletePromise removes a promise.
	DeletePromise(ctx context.Context, promiseID string) error
}

// PromiseRepositoryFacade combines all promise-related repository interfaces
type PromiseRepositoryFacade interface {
	PromiseReader
	PromiseWriter
}
