package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"ewaste-lifecycle-service/internal/domain/item"
	"ewaste-lifecycle-service/internal/domain/shared"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// ItemRepository implements the item repository interface
type ItemRepository struct {
	conn *Connection
}

// NewItemRepository creates a new item repository
func NewItemRepository(conn *Connection) *ItemRepository {
	return &ItemRepository{conn: conn}
}

const itemColumns = `
	id, name, department, category, age, condition, classification,
	status, bidding_status, current_highest_bid, winning_bidder_id,
	bidding_end_date, pickup_address, pickup_landmark, pickup_latitude,
	pickup_longitude, pickup_id, created_by, created_at, updated_at
`

// Create creates a new item
func (r *ItemRepository) Create(ctx context.Context, it *item.Item) error {
	query := `
		INSERT INTO items (` + itemColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)
	`

	_, err := r.conn.GetDB().ExecContext(ctx, query, itemValues(it)...)
	if err != nil {
		return fmt.Errorf("failed to create item: %w", err)
	}

	return nil
}

// GetByID retrieves an item by ID
func (r *ItemRepository) GetByID(ctx context.Context, id uuid.UUID) (*item.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE id = $1`

	it, err := scanItem(r.conn.GetDB().QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, shared.ErrItemNotFound
		}
		return nil, fmt.Errorf("failed to get item: %w", err)
	}

	return it, nil
}

// ListByCreator retrieves a creator's items, newest first, optionally
// restricted to a set of statuses
func (r *ItemRepository) ListByCreator(ctx context.Context, createdBy string, statuses []item.Status) ([]*item.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE created_by = $1`
	args := []any{createdBy}

	if len(statuses) > 0 {
		values := make([]string, len(statuses))
		for i, s := range statuses {
			values[i] = string(s)
		}
		query += ` AND status = ANY($2)`
		args = append(args, pq.Array(values))
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.conn.GetDB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list items: %w", err)
	}
	defer rows.Close()

	return collectItems(rows)
}

// ListExpiredOpenAuctions retrieves items whose auction is open but whose
// bidding end date has passed
func (r *ItemRepository) ListExpiredOpenAuctions(ctx context.Context, limit int) ([]*item.Item, error) {
	query := `
		SELECT ` + itemColumns + `
		FROM items
		WHERE bidding_status = 'open' AND bidding_end_date IS NOT NULL AND bidding_end_date < $1
		ORDER BY bidding_end_date ASC
		LIMIT $2
	`

	rows, err := r.conn.GetDB().QueryContext(ctx, query, time.Now(), limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list expired auctions: %w", err)
	}
	defer rows.Close()

	return collectItems(rows)
}

// Update updates an item
func (r *ItemRepository) Update(ctx context.Context, it *item.Item) error {
	query := `
		UPDATE items
		SET name = $2, department = $3, category = $4, age = $5, condition = $6,
			classification = $7, status = $8, bidding_status = $9,
			current_highest_bid = $10, winning_bidder_id = $11, bidding_end_date = $12,
			pickup_address = $13, pickup_landmark = $14, pickup_latitude = $15,
			pickup_longitude = $16, pickup_id = $17, created_by = $18,
			created_at = $19, updated_at = $20
		WHERE id = $1
	`

	result, err := r.conn.GetDB().ExecContext(ctx, query, itemValues(it)...)
	if err != nil {
		return fmt.Errorf("failed to update item: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return shared.ErrItemNotFound
	}

	return nil
}

// MarkScheduled flips a group of items to Scheduled and back-links them to
// the given pickup
func (r *ItemRepository) MarkScheduled(ctx context.Context, itemIDs []uuid.UUID, pickupID uuid.UUID) error {
	query := `
		UPDATE items
		SET status = $2, pickup_id = $3, updated_at = $4
		WHERE id = ANY($1)
	`

	ids := make([]string, len(itemIDs))
	for i, id := range itemIDs {
		ids[i] = id.String()
	}

	_, err := r.conn.GetDB().ExecContext(ctx, query, pq.Array(ids), string(item.StatusScheduled), pickupID, time.Now())
	if err != nil {
		return fmt.Errorf("failed to mark items scheduled: %w", err)
	}

	return nil
}

// Delete deletes an item
func (r *ItemRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM items WHERE id = $1`

	result, err := r.conn.GetDB().ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete item: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return shared.ErrItemNotFound
	}

	return nil
}

// itemValues lays out an item's fields in column order for insert/update
func itemValues(it *item.Item) []any {
	var classification *string
	if it.Classification != nil {
		c := string(*it.Classification)
		classification = &c
	}

	var address, landmark *string
	var lat, lng *float64
	if it.PickupAddress != nil {
		address = &it.PickupAddress.Address
		landmark = &it.PickupAddress.Landmark
		lat = &it.PickupAddress.Latitude
		lng = &it.PickupAddress.Longitude
	}

	return []any{
		it.ID,
		it.Name,
		it.Department,
		it.Category,
		it.Age,
		it.Condition,
		classification,
		string(it.Status),
		string(it.BiddingStatus),
		it.CurrentHighestBid,
		it.WinningBidderID,
		it.BiddingEndDate,
		address,
		landmark,
		lat,
		lng,
		it.PickupID,
		it.CreatedBy,
		it.CreatedAt,
		it.UpdatedAt,
	}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanItem(row rowScanner) (*item.Item, error) {
	var it item.Item
	var classification sql.NullString
	var winningBidderID, pickupID uuid.NullUUID
	var biddingEndDate sql.NullTime
	var address, landmark sql.NullString
	var lat, lng sql.NullFloat64

	err := row.Scan(
		&it.ID,
		&it.Name,
		&it.Department,
		&it.Category,
		&it.Age,
		&it.Condition,
		&classification,
		&it.Status,
		&it.BiddingStatus,
		&it.CurrentHighestBid,
		&winningBidderID,
		&biddingEndDate,
		&address,
		&landmark,
		&lat,
		&lng,
		&pickupID,
		&it.CreatedBy,
		&it.CreatedAt,
		&it.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if classification.Valid {
		c := item.Classification(classification.String)
		it.Classification = &c
	}
	if winningBidderID.Valid {
		id := winningBidderID.UUID
		it.WinningBidderID = &id
	}
	if biddingEndDate.Valid {
		t := biddingEndDate.Time
		it.BiddingEndDate = &t
	}
	if pickupID.Valid {
		id := pickupID.UUID
		it.PickupID = &id
	}
	if address.Valid {
		it.PickupAddress = &item.PickupAddress{
			Address:   address.String,
			Landmark:  landmark.String,
			Latitude:  lat.Float64,
			Longitude: lng.Float64,
		}
	}

	return &it, nil
}

func collectItems(rows *sql.Rows) ([]*item.Item, error) {
	var items []*item.Item
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan item: %w", err)
		}
		items = append(items, it)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating items: %w", err)
	}

	return items, nil
}
