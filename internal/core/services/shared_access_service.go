package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/wathiqah/wathiqah-backend/internal/apperrors"
	"github.com/wathiqah/wathiqah-backend/internal/core/domain"
	portsrepo "github.com/wathiqah/wathiqah-backend/internal/core/ports/repositories"
	"github.com/wathiqah/wathiqah-backend/internal/dto"
)

// SharedAccessService lets users share read-only views of their ledger.
// Grants are issued to an email address, accepted with a one-time invitation
// token, and revocable by the owner at any time.
type SharedAccessService struct {
	grantRepo     portsrepo.AccessGrantRepositoryFacade
	userRepo      portsrepo.UserReader
	txnReader     portsrepo.TransactionReader
	promiseReader portsrepo.PromiseReader
}

// NewSharedAccessService creates a new SharedAccessService.
func NewSharedAccessService(
	grantRepo portsrepo.AccessGrantRepositoryFacade,
	userRepo portsrepo.UserReader,
	txnReader portsrepo.TransactionReader,
	promiseReader portsrepo.PromiseReader,
) *SharedAccessService {
	return &SharedAccessService{
		grantRepo:     grantRepo,
		userRepo:      userRepo,
		txnReader:     txnReader,
		promiseReader: promiseReader,
	}
}

// GrantAccess issues a new pending grant to the given email. The invitation
// token is returned once here and never listed again.
func (s *SharedAccessService) GrantAccess(ctx context.Context, req dto.GrantAccessRequest, ownerID string) (*domain.AccessGrant, error) {
	owner, err := s.userRepo.FindUserByID(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to load grant owner in service: %w", err)
	}

	granteeEmail := strings.ToLower(strings.TrimSpace(req.GranteeEmail))
	if strings.EqualFold(owner.Email, granteeEmail) {
		return nil, fmt.Errorf("%w: cannot share a ledger with its owner", apperrors.ErrValidation)
	}

	now := time.Now()
	grant := domain.AccessGrant{
		GrantID:      uuid.NewString(),
		OwnerID:      ownerID,
		GranteeEmail: granteeEmail,
		Token:        uuid.NewString(),
		Status:       domain.GrantPending,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     ownerID,
			LastUpdatedAt: now,
			LastUpdatedBy: ownerID,
		},
	}

	if err := s.grantRepo.SaveGrant(ctx, grant); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, fmt.Errorf("%w: ledger is already shared with %s", apperrors.ErrDuplicate, granteeEmail)
		}
		return nil, fmt.Errorf("failed to create access grant in service: %w", err)
	}
	return &grant, nil
}

// AcceptAccess binds a pending grant to the accepting user. The accepting
// user's email must match the address the grant was issued to.
func (s *SharedAccessService) AcceptAccess(ctx context.Context, token, requestingUserID string) (*domain.AccessGrant, error) {
	grant, err := s.grantRepo.FindGrantByToken(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("failed to find access grant by token in service: %w", err)
	}
	if grant.Status != domain.GrantPending {
		return nil, fmt.Errorf("%w: grant is %s and can no longer be accepted", apperrors.ErrValidation, grant.Status)
	}
	if grant.OwnerID == requestingUserID {
		return nil, fmt.Errorf("%w: owners cannot accept their own grant", apperrors.ErrValidation)
	}

	grantee, err := s.userRepo.FindUserByID(ctx, requestingUserID)
	if err != nil {
		return nil, fmt.Errorf("failed to load accepting user in service: %w", err)
	}
	if !strings.EqualFold(grantee.Email, grant.GranteeEmail) {
		return nil, fmt.Errorf("%w: grant was issued to a different email address", apperrors.ErrForbidden)
	}

	grant.GranteeID = requestingUserID
	grant.Status = domain.GrantActive
	grant.LastUpdatedAt = time.Now()
	grant.LastUpdatedBy = requestingUserID

	if err := s.grantRepo.UpdateGrant(ctx, *grant); err != nil {
		return nil, fmt.Errorf("failed to accept access grant in service: %w", err)
	}
	return grant, nil
}

// RevokeAccess revokes a grant the caller owns. Revocation is terminal; the
// grantee loses the view immediately.
func (s *SharedAccessService) RevokeAccess(ctx context.Context, grantID, requestingUserID string) error {
	grant, err := s.grantRepo.FindGrantByID(ctx, grantID)
	if err != nil {
		return fmt.Errorf("failed to find access grant in service: %w", err)
	}
	if grant.OwnerID != requestingUserID {
		return fmt.Errorf("%w: grant belongs to another user", apperrors.ErrForbidden)
	}
	if grant.Status == domain.GrantRevoked {
		return nil
	}

	grant.Status = domain.GrantRevoked
	grant.LastUpdatedAt = time.Now()
	grant.LastUpdatedBy = requestingUserID

	if err := s.grantRepo.UpdateGrant(ctx, *grant); err != nil {
		return fmt.Errorf("failed to revoke access grant in service: %w", err)
	}
	return nil
}

// ListGrants retrieves the grants the caller has issued.
func (s *SharedAccessService) ListGrants(ctx context.Context, ownerID string) ([]domain.AccessGrant, error) {
	grants, err := s.grantRepo.ListGrantsByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list access grants in service: %w", err)
	}
	if grants == nil {
		return []domain.AccessGrant{}, nil
	}
	return grants, nil
}

// ListReceivedGrants retrieves the accepted grants shared with the caller.
func (s *SharedAccessService) ListReceivedGrants(ctx context.Context, granteeID string) ([]domain.AccessGrant, error) {
	grants, err := s.grantRepo.ListGrantsByGrantee(ctx, granteeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list received access grants in service: %w", err)
	}
	if grants == nil {
		return []domain.AccessGrant{}, nil
	}
	return grants, nil
}

// GetSharedData returns the owner's read-only ledger view for an active grant
// the caller has accepted.
func (s *SharedAccessService) GetSharedData(ctx context.Context, grantID, requestingUserID string) (*domain.SharedData, error) {
	grant, err := s.grantRepo.FindGrantByID(ctx, grantID)
	if err != nil {
		return nil, fmt.Errorf("failed to find access grant in service: %w", err)
	}
	if grant.Status != domain.GrantActive || grant.GranteeID != requestingUserID {
		return nil, fmt.Errorf("%w: no active grant for this user", apperrors.ErrForbidden)
	}

	owner, err := s.userRepo.FindUserByID(ctx, grant.OwnerID)
	if err != nil {
		return nil, fmt.Errorf("failed to load shared ledger owner in service: %w", err)
	}
	transactions, err := s.txnReader.ListTransactionsByCreator(ctx, grant.OwnerID)
	if err != nil {
		return nil, fmt.Errorf("failed to load shared transactions in service: %w", err)
	}
	promises, err := s.promiseReader.ListPromisesByUser(ctx, grant.OwnerID)
	if err != nil {
		return nil, fmt.Errorf("failed to load shared promises in service: %w", err)
	}

	if transactions == nil {
		transactions = []domain.Transaction{}
	}
	if promises == nil {
		promises = []domain.Promise{}
	}
	return &domain.SharedData{
		Owner:        *owner,
		Transactions: transactions,
		Promises:     promises,
	}, nil
}
