package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"ewaste-lifecycle-service/internal/domain/pickup"
	"ewaste-lifecycle-service/internal/domain/shared"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// PickupRepository implements the pickup repository interface
type PickupRepository struct {
	conn *Connection
}

// NewPickupRepository creates a new pickup repository
func NewPickupRepository(conn *Connection) *PickupRepository {
	return &PickupRepository{conn: conn}
}

const pickupColumns = `
	id, date, vendor_id, item_ids, canonical_item_id, notes,
	address, landmark, latitude, longitude, created_by, created_at, updated_at
`

// CreateUnique inserts a pickup guarded by the unique index on the
// canonical item-group key. A conflicting insert is not an error: the
// existing row is fetched and returned, so concurrent duplicate submissions
// converge on one pickup.
func (r *PickupRepository) CreateUnique(ctx context.Context, p *pickup.Pickup) (bool, *pickup.Pickup, error) {
	query := `
		INSERT INTO pickups (` + pickupColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		ON CONFLICT (canonical_item_id) DO NOTHING
	`

	canonical := pickup.CanonicalItemID(p.ItemIDs)

	result, err := r.conn.GetDB().ExecContext(ctx, query,
		p.ID,
		p.Date,
		p.VendorID,
		pq.Array(uuidStrings(p.ItemIDs)),
		canonical,
		p.Notes,
		p.Address,
		p.Landmark,
		p.Latitude,
		p.Longitude,
		p.CreatedBy,
		p.CreatedAt,
		p.UpdatedAt,
	)
	if err != nil {
		return false, nil, fmt.Errorf("failed to create pickup: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, nil, fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected > 0 {
		return true, nil, nil
	}

	existing, err := r.getByCanonicalItemID(ctx, canonical)
	if err != nil {
		return false, nil, err
	}
	return false, existing, nil
}

// GetByID retrieves a pickup by ID
func (r *PickupRepository) GetByID(ctx context.Context, id uuid.UUID) (*pickup.Pickup, error) {
	query := `SELECT ` + pickupColumns + ` FROM pickups WHERE id = $1`
	return r.queryOne(ctx, query, id)
}

// GetByItemID retrieves the pickup whose item group contains the given item
func (r *PickupRepository) GetByItemID(ctx context.Context, itemID uuid.UUID) (*pickup.Pickup, error) {
	query := `SELECT ` + pickupColumns + ` FROM pickups WHERE $1 = ANY(item_ids) LIMIT 1`
	return r.queryOne(ctx, query, itemID.String())
}

// FindAnyByItemIDs retrieves the oldest pickup referencing any of the given
// items
func (r *PickupRepository) FindAnyByItemIDs(ctx context.Context, itemIDs []uuid.UUID) (*pickup.Pickup, error) {
	query := `
		SELECT ` + pickupColumns + `
		FROM pickups
		WHERE item_ids && $1
		ORDER BY created_at ASC
		LIMIT 1
	`
	return r.queryOne(ctx, query, pq.Array(uuidStrings(itemIDs)))
}

// UpdateAddress backfills the copied address fields on a pickup
func (r *PickupRepository) UpdateAddress(ctx context.Context, id uuid.UUID, address, landmark string, lat, lng float64) error {
	query := `
		UPDATE pickups
		SET address = $2, landmark = $3, latitude = $4, longitude = $5, updated_at = $6
		WHERE id = $1
	`

	result, err := r.conn.GetDB().ExecContext(ctx, query, id, address, landmark, lat, lng, time.Now())
	if err != nil {
		return fmt.Errorf("failed to update pickup address: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return shared.ErrPickupNotFound
	}

	return nil
}

// ListByCreator retrieves a creator's pickups, most recent date first
func (r *PickupRepository) ListByCreator(ctx context.Context, createdBy string) ([]*pickup.Pickup, error) {
	query := `SELECT ` + pickupColumns + ` FROM pickups WHERE created_by = $1 ORDER BY date DESC`

	rows, err := r.conn.GetDB().QueryContext(ctx, query, createdBy)
	if err != nil {
		return nil, fmt.Errorf("failed to list pickups: %w", err)
	}
	defer rows.Close()

	var pickups []*pickup.Pickup
	for rows.Next() {
		p, err := scanPickup(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan pickup: %w", err)
		}
		pickups = append(pickups, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating pickups: %w", err)
	}

	return pickups, nil
}

func (r *PickupRepository) getByCanonicalItemID(ctx context.Context, canonical uuid.UUID) (*pickup.Pickup, error) {
	query := `SELECT ` + pickupColumns + ` FROM pickups WHERE canonical_item_id = $1`
	return r.queryOne(ctx, query, canonical)
}

func (r *PickupRepository) queryOne(ctx context.Context, query string, args ...any) (*pickup.Pickup, error) {
	p, err := scanPickup(r.conn.GetDB().QueryRowContext(ctx, query, args...))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, shared.ErrPickupNotFound
		}
		return nil, fmt.Errorf("failed to get pickup: %w", err)
	}
	return p, nil
}

func scanPickup(row rowScanner) (*pickup.Pickup, error) {
	var p pickup.Pickup
	var itemIDs pq.StringArray
	var canonical uuid.UUID

	err := row.Scan(
		&p.ID,
		&p.Date,
		&p.VendorID,
		&itemIDs,
		&canonical,
		&p.Notes,
		&p.Address,
		&p.Landmark,
		&p.Latitude,
		&p.Longitude,
		&p.CreatedBy,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	p.ItemIDs = make([]uuid.UUID, 0, len(itemIDs))
	for _, raw := range itemIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid item id %q in pickup %s: %w", raw, p.ID, err)
		}
		p.ItemIDs = append(p.ItemIDs, id)
	}

	return &p, nil
}

func uuidStrings(ids []uuid.UUID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.String()
	}
	return out
}
