package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ncsdigital/contact-details-service/internal/domain"
	"github.com/ncsdigital/contact-details-service/internal/repository"
	"github.com/ncsdigital/contact-details-service/pkg/logger"
)

const contactColumns = `contact_id, customer_id, preferred_contact_method,
		mobile_number, home_number, alternative_number, email_address,
		last_modified_date, last_modified_touchpoint_id`

// ContactRepository is the PostgreSQL implementation of
// repository.ContactRepository.
type ContactRepository struct {
	db  *pgxpool.Pool
	log *logger.Logger
}

// NewContactRepository creates a PostgreSQL-backed contact repository.
func NewContactRepository(db *pgxpool.Pool, log *logger.Logger) *ContactRepository {
	return &ContactRepository{
		db:  db,
		log: log,
	}
}

// GetByCustomer returns the contact details owned by a customer.
func (r *ContactRepository) GetByCustomer(ctx context.Context, customerID uuid.UUID) (*domain.ContactDetails, error) {
	query := `
		SELECT ` + contactColumns + `
		FROM contact_details
		WHERE customer_id = $1
	`

	row := r.db.QueryRow(ctx, query, customerID)
	return scanContact(row)
}

// Get returns the contact details matching both identifiers.
func (r *ContactRepository) Get(ctx context.Context, customerID, contactID uuid.UUID) (*domain.ContactDetails, error) {
	query := `
		SELECT ` + contactColumns + `
		FROM contact_details
		WHERE customer_id = $1 AND contact_id = $2
	`

	row := r.db.QueryRow(ctx, query, customerID, contactID)
	return scanContact(row)
}

// GetByEmail returns every contact details record holding an email address.
func (r *ContactRepository) GetByEmail(ctx context.Context, email string) ([]domain.ContactDetails, error) {
	query := `
		SELECT ` + contactColumns + `
		FROM contact_details
		WHERE lower(email_address) = lower($1)
	`

	rows, err := r.db.Query(ctx, query, email)
	if err != nil {
		return nil, fmt.Errorf("failed to query contact details by email: %w", err)
	}
	defer rows.Close()

	var contacts []domain.ContactDetails
	for rows.Next() {
		contact, err := scanContact(rows)
		if err != nil {
			return nil, err
		}
		contacts = append(contacts, *contact)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating contact details: %w", err)
	}

	return contacts, nil
}

// Create inserts a new contact details record.
func (r *ContactRepository) Create(ctx context.Context, details *domain.ContactDetails) error {
	query := `
		INSERT INTO contact_details (` + contactColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.db.Exec(
		ctx,
		query,
		details.ContactID,
		details.CustomerID,
		details.PreferredContactMethod,
		details.MobileNumber,
		details.HomeNumber,
		details.AlternativeNumber,
		details.EmailAddress,
		details.LastModifiedDate,
		details.LastModifiedTouchpointID,
	)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return repository.ErrDuplicate
		}
		return fmt.Errorf("failed to create contact details: %w", err)
	}

	r.log.Debugw("Contact details created", "contactID", details.ContactID, "customerID", details.CustomerID)
	return nil
}

// Replace overwrites an existing contact details record in full.
func (r *ContactRepository) Replace(ctx context.Context, details *domain.ContactDetails) error {
	query := `
		UPDATE contact_details
		SET preferred_contact_method = $1,
			mobile_number = $2,
			home_number = $3,
			alternative_number = $4,
			email_address = $5,
			last_modified_date = $6,
			last_modified_touchpoint_id = $7
		WHERE customer_id = $8 AND contact_id = $9
	`

	result, err := r.db.Exec(
		ctx,
		query,
		details.PreferredContactMethod,
		details.MobileNumber,
		details.HomeNumber,
		details.AlternativeNumber,
		details.EmailAddress,
		details.LastModifiedDate,
		details.LastModifiedTouchpointID,
		details.CustomerID,
		details.ContactID,
	)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return repository.ErrDuplicate
		}
		return fmt.Errorf("failed to replace contact details: %w", err)
	}

	if result.RowsAffected() == 0 {
		return repository.ErrNotFound
	}

	r.log.Debugw("Contact details replaced", "contactID", details.ContactID, "customerID", details.CustomerID)
	return nil
}

// scanContact reads one contact details row, mapping no-rows to ErrNotFound.
func scanContact(row pgx.Row) (*domain.ContactDetails, error) {
	var contact domain.ContactDetails

	err := row.Scan(
		&contact.ContactID,
		&contact.CustomerID,
		&contact.PreferredContactMethod,
		&contact.MobileNumber,
		&contact.HomeNumber,
		&contact.AlternativeNumber,
		&contact.EmailAddress,
		&contact.LastModifiedDate,
		&contact.LastModifiedTouchpointID,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan contact details: %w", err)
	}

	return &contact, nil
}
