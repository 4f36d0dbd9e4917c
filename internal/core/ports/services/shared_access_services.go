package services

import (
	"context"

	"github.com/wathiqah/wathiqah-backend/internal/core/domain"
	"github.com/wathiqah/wathiqah-backend/internal/dto"
)

// SharedAccessReaderSvc defines read operations for shared-access grants
type SharedAccessReaderSvc interface {
	// ListGrants retrieves the grants the caller has issued.
	ListGrants(ctx context.Context, ownerID string) ([]domain.AccessGrant, error)

	// ListReceivedGrants retrieves the accepted grants shared with the caller.
	ListReceivedGrants(ctx context.Context, granteeID string) ([]domain.AccessGrant, error)

	// GetSharedData returns the owner's read-only ledger view for an active
	// grant the caller has accepted.
	GetSharedData(ctx context.Context, grantID, requestingUserID string) (*domain.SharedData, error)
}

// SharedAccessWriterSvc defines write operations for shared-access grants
type SharedAccessWriterSvc interface {
	// GrantAccess issues a new pending grant to the given email.
	GrantAccess(ctx context.Context, req dto.GrantAccessRequest, ownerID string) (*domain.AccessGrant, error)

	// AcceptAccess binds a pending grant to the accepting user via its token.
	AcceptAccess(ctx context.Context, token, requestingUserID string) (*domain.AccessGrant, error)

	// RevokeAccess revokes a grant the caller owns.
	RevokeAccess(ctx context.Context, grantID, requestingUserID string) error
}

// SharedAccessSvcFacade combines all shared-access service interfaces
type SharedAccessSvcFacade interface {
	SharedAccessReaderSvc
	SharedAccessWriterSvc
}
