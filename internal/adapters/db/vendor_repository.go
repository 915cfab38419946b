package db

import (
	"context"
	"database/sql"
	"fmt"

	"ewaste-lifecycle-service/internal/domain/directory"
	"ewaste-lifecycle-service/internal/domain/shared"

	"github.com/google/uuid"
)

// VendorRepository implements the vendor repository interface
type VendorRepository struct {
	conn *Connection
}

// NewVendorRepository creates a new vendor repository
func NewVendorRepository(conn *Connection) *VendorRepository {
	return &VendorRepository{conn: conn}
}

// Create creates a new vendor entry
func (r *VendorRepository) Create(ctx context.Context, v *directory.Vendor) error {
	query := `
		INSERT INTO vendors (id, name, contact, certified, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.conn.GetDB().ExecContext(ctx, query,
		v.ID,
		v.Name,
		v.Contact,
		v.Certified,
		v.CreatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to create vendor: %w", err)
	}

	return nil
}

// GetByID retrieves a vendor by ID
func (r *VendorRepository) GetByID(ctx context.Context, id uuid.UUID) (*directory.Vendor, error) {
	query := `
		SELECT id, name, contact, certified, created_at
		FROM vendors
		WHERE id = $1
	`

	var v directory.Vendor
	err := r.conn.GetDB().QueryRowContext(ctx, query, id).Scan(
		&v.ID,
		&v.Name,
		&v.Contact,
		&v.Certified,
		&v.CreatedAt,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, shared.ErrVendorNotFound
		}
		return nil, fmt.Errorf("failed to get vendor: %w", err)
	}

	return &v, nil
}

// List retrieves all vendors sorted by name
func (r *VendorRepository) List(ctx context.Context) ([]*directory.Vendor, error) {
	query := `
		SELECT id, name, contact, certified, created_at
		FROM vendors
		ORDER BY name ASC
	`

	rows, err := r.conn.GetDB().QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list vendors: %w", err)
	}
	defer rows.Close()

	var vendors []*directory.Vendor
	for rows.Next() {
		var v directory.Vendor
		err := rows.Scan(
			&v.ID,
			&v.Name,
			&v.Contact,
			&v.Certified,
			&v.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan vendor: %w", err)
		}
		vendors = append(vendors, &v)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating vendors: %w", err)
	}

	return vendors, nil
}
