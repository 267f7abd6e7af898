package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ncsdigital/contact-details-service/internal/domain"
	"github.com/ncsdigital/contact-details-service/internal/repository"
	"github.com/ncsdigital/contact-details-service/pkg/logger"
)

// CustomerReader reads customers and digital identities from tables owned by
// the customer and identity services.
type CustomerReader struct {
	db  *pgxpool.Pool
	log *logger.Logger
}

// NewCustomerReader creates a PostgreSQL-backed customer reader.
func NewCustomerReader(db *pgxpool.Pool, log *logger.Logger) *CustomerReader {
	return &CustomerReader{
		db:  db,
		log: log,
	}
}

// GetCustomer returns the customer or repository.ErrNotFound.
func (r *CustomerReader) GetCustomer(ctx context.Context, customerID uuid.UUID) (*domain.Customer, error) {
	query := `
		SELECT id, given_name, family_name, date_of_termination
		FROM customers
		WHERE id = $1
	`

	var customer domain.Customer
	err := r.db.QueryRow(ctx, query, customerID).Scan(
		&customer.ID,
		&customer.GivenName,
		&customer.FamilyName,
		&customer.DateOfTermination,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get customer: %w", err)
	}

	return &customer, nil
}

// HasDigitalIdentity reports whether the customer has a linked login record.
func (r *CustomerReader) HasDigitalIdentity(ctx context.Context, customerID uuid.UUID) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM digital_identities WHERE customer_id = $1
		)
	`

	var exists bool
	if err := r.db.QueryRow(ctx, query, customerID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check digital identity: %w", err)
	}

	return exists, nil
}
