package repositories

import (
	"context"

	"github.com/wathiqah/wathiqah-backend/internal/core/domain"
)

// AccessGrantReader defines read operations for shared-access grants
type AccessGrantReader interface {
	// FindGrantByID retrieves a single grant.
	FindGrantByID(ctx context.Context, grantID string) (*domain.AccessGrant, error)

	// FindGrantByToken retrieves a grant by its invitation token.
	FindGrantByToken(ctx context.Context, token string) (*domain.AccessGrant, error)

	// ListGrantsByOwner retrieves the grants a user has issued, newest first.
	ListGrantsByOwner(ctx context.Context, ownerID string) ([]domain.AccessGrant, error)

	// ListGrantsByGrantee retrieves the accepted grants shared with a user.
	ListGrantsByGrantee(ctx context.Context, granteeID string) ([]domain.AccessGrant, error)
}

// AccessGrantWriter defines write operations for shared-access grants
type AccessGrantWriter interface {
	// SaveGrant persists a new grant.
	SaveGrant(ctx context.Context, grant domain.AccessGrant) error

	// UpdateGrant persists changes to an existing grant.
	UpdateGrant(ctx context.Context, grant domain.AccessGrant) error
}

// AccessGrantRepositoryFacade combines all shared-access repository interfaces
type AccessGrantRepositoryFacade interface {
	AccessGrantReader
	AccessGrantWriter
}
