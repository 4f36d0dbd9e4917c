package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/wathiqah/wathiqah-backend/internal/apperrors"
	"github.com/wathiqah/wathiqah-backend/internal/core/domain"
)

// PgxAccessGrantRepository implements the shared-access repository ports using pgxpool.
type PgxAccessGrantRepository struct {
	db *pgxpool.Pool
}

// NewAccessGrantRepository creates a new PgxAccessGrantRepository.
func NewAccessGrantRepository(db *pgxpool.Pool) *PgxAccessGrantRepository {
	return &PgxAccessGrantRepository{db: db}
}

// SaveGrant inserts a new grant. A live grant already covering the same
// owner/email pair surfaces as ErrDuplicate.
func (r *PgxAccessGrantRepository) SaveGrant(ctx context.Context, grant domain.AccessGrant) error {
	query := `
		INSERT INTO access_grants (
			grant_id, owner_id, grantee_email, grantee_id, token, status,
			created_at, created_by, last_updated_at, last_updated_by
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	_, err := r.db.Exec(ctx, query,
		grant.GrantID, grant.OwnerID, grant.GranteeEmail, nullIfEmpty(grant.GranteeID),
		grant.Token, grant.Status,
		grant.CreatedAt, grant.CreatedBy, grant.LastUpdatedAt, grant.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return apperrors.ErrDuplicate
		}
		return fmt.Errorf("error inserting access grant: %w", err)
	}
	return nil
}

// UpdateGrant persists status and grantee changes to an existing grant.
func (r *PgxAccessGrantRepository) UpdateGrant(ctx context.Context, grant domain.AccessGrant) error {
	query := `
		UPDATE access_grants SET
			grantee_id = $2, status = $3, last_updated_at = $4, last_updated_by = $5
		WHERE grant_id = $1
	`
	tag, err := r.db.Exec(ctx, query,
		grant.GrantID, nullIfEmpty(grant.GranteeID), grant.Status,
		grant.LastUpdatedAt, grant.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("error updating access grant: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// FindGrantByID retrieves a single grant.
func (r *PgxAccessGrantRepository) FindGrantByID(ctx context.Context, grantID string) (*domain.AccessGrant, error) {
	return r.findGrant(ctx, `WHERE grant_id = $1`, grantID)
}

// FindGrantByToken retrieves a grant by its invitation token.
func (r *PgxAccessGrantRepository) FindGrantByToken(ctx context.Context, token string) (*domain.AccessGrant, error) {
	return r.findGrant(ctx, `WHERE token = $1`, token)
}

func (r *PgxAccessGrantRepository) findGrant(ctx context.Context, where string, arg any) (*domain.AccessGrant, error) {
	query := `
		SELECT grant_id, owner_id, grantee_email, COALESCE(grantee_id::text, ''), token, status,
			created_at, created_by, last_updated_at, last_updated_by
		FROM access_grants
	` + where
	grant := &domain.AccessGrant{}
	err := r.db.QueryRow(ctx, query, arg).Scan(
		&grant.GrantID, &grant.OwnerID, &grant.GranteeEmail, &grant.GranteeID,
		&grant.Token, &grant.Status,
		&grant.CreatedAt, &grant.CreatedBy, &grant.LastUpdatedAt, &grant.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("error finding access grant: %w", err)
	}
	return grant, nil
}

// ListGrantsByOwner retrieves the grants a user has issued, newest first.
func (r *PgxAccessGrantRepository) ListGrantsByOwner(ctx context.Context, ownerID string) ([]domain.AccessGrant, error) {
	return r.listGrants(ctx, `WHERE owner_id = $1`, ownerID)
}

// ListGrantsByGrantee retrieves the accepted grants shared with a user.
func (r *PgxAccessGrantRepository) ListGrantsByGrantee(ctx context.Context, granteeID string) ([]domain.AccessGrant, error) {
	return r.listGrants(ctx, `WHERE grantee_id = $1 AND status = 'ACTIVE'`, granteeID)
}

func (r *PgxAccessGrantRepository) listGrants(ctx context.Context, where string, arg any) ([]domain.AccessGrant, error) {
	query := `
		SELECT grant_id, owner_id, grantee_email, COALESCE(grantee_id::text, ''), token, status,
			created_at, created_by, last_updated_at, last_updated_by
		FROM access_grants
	` + where + `
		ORDER BY created_at DESC
	`
	rows, err := r.db.Query(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("error listing access grants: %w", err)
	}
	defer rows.Close()

	var grants []domain.AccessGrant
	for rows.Next() {
		var grant domain.AccessGrant
		err := rows.Scan(
			&grant.GrantID, &grant.OwnerID, &grant.GranteeEmail, &grant.GranteeID,
			&grant.Token, &grant.Status,
			&grant.CreatedAt, &grant.CreatedBy, &grant.LastUpdatedAt, &grant.LastUpdatedBy,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning access grant: %w", err)
		}
		grants = append(grants, grant)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating access grants: %w", err)
	}
	return grants, nil
}
