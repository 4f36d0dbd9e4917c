package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/wathiqah/wathiqah-backend/internal/apperrors"
	"github.com/wathiqah/wathiqah-backend/internal/core/domain"
)

// PgxContactRepository implements the contact repository ports using pgxpool.
type PgxContactRepository struct {
	db *pgxpool.Pool
}

// NewContactRepository creates a new PgxContactRepository.
func NewContactRepository(db *pgxpool.Pool) *PgxContactRepository {
	return &PgxContactRepository{db: db}
}

// SaveContact inserts a new contact.
func (r *PgxContactRepository) SaveContact(ctx context.Context, contact domain.Contact) error {
	query := `
		INSERT INTO contacts (
			contact_id, user_id, first_name, last_name, email, phone_number,
			created_at, created_by, last_updated_at, last_updated_by
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	_, err := r.db.Exec(ctx, query,
		contact.ContactID, contact.UserID, contact.FirstName, contact.LastName,
		nullIfEmpty(contact.Email), nullIfEmpty(contact.PhoneNumber),
		contact.CreatedAt, contact.CreatedBy, contact.LastUpdatedAt, contact.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("error inserting contact: %w", err)
	}
	return nil
}

// UpdateContact persists changes to an existing contact.
func (r *PgxContactRepository) UpdateContact(ctx context.Context, contact domain.Contact) error {
	query := `
		UPDATE contacts SET
			first_name = $2, last_name = $3, email = $4, phone_number = $5,
			last_updated_at = $6, last_updated_by = $7
		WHERE contact_id = $1
	`
	tag, err := r.db.Exec(ctx, query,
		contact.ContactID, contact.FirstName, contact.LastName,
		nullIfEmpty(contact.Email), nullIfEmpty(contact.PhoneNumber),
		contact.LastUpdatedAt, contact.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("error updating contact: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteContact removes a contact.
func (r *PgxContactRepository) DeleteContact(ctx context.Context, contactID string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM contacts WHERE contact_id = $1`, contactID)
	if err != nil {
		return fmt.Errorf("error deleting contact: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// FindContactByID retrieves a single contact.
func (r *PgxContactRepository) FindContactByID(ctx context.Context, contactID string) (*domain.Contact, error) {
	query := `
		SELECT contact_id, user_id, first_name, last_name,
			COALESCE(email, ''), COALESCE(phone_number, ''),
			created_at, created_by, last_updated_at, last_updated_by
		FROM contacts
		WHERE contact_id = $1
	`
	contact := &domain.Contact{}
	err := r.db.QueryRow(ctx, query, contactID).Scan(
		&contact.ContactID, &contact.UserID, &contact.FirstName, &contact.LastName,
		&contact.Email, &contact.PhoneNumber,
		&contact.CreatedAt, &contact.CreatedBy, &contact.LastUpdatedAt, &contact.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("error finding contact: %w", err)
	}
	return contact, nil
}

// ListContactsByUser retrieves all of a user's contacts, newest first.
func (r *PgxContactRepository) ListContactsByUser(ctx context.Context, userID string) ([]domain.Contact, error) {
	query := `
		SELECT contact_id, user_id, first_name, last_name,
			COALESCE(email, ''), COALESCE(phone_number, ''),
			created_at, created_by, last_updated_at, last_updated_by
		FROM contacts
		WHERE user_id = $1
		ORDER BY created_at DESC
	`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("error listing contacts: %w", err)
	}
	defer rows.Close()

	var contacts []domain.Contact
	for rows.Next() {
		var contact domain.Contact
		err := rows.Scan(
			&contact.ContactID, &contact.UserID, &contact.FirstName, &contact.LastName,
			&contact.Email, &contact.PhoneNumber,
			&contact.CreatedAt, &contact.CreatedBy, &contact.LastUpdatedAt, &contact.LastUpdatedBy,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning contact: %w", err)
		}
		contacts = append(contacts, contact)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating contacts: %w", err)
	}
	return contacts, nil
}
