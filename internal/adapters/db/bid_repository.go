package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"ewaste-lifecycle-service/internal/domain/bid"
	"ewaste-lifecycle-service/internal/domain/shared"

	"github.com/google/uuid"
)

// BidRepository implements the bid repository interface
type BidRepository struct {
	conn *Connection
}

// NewBidRepository creates a new bid repository
func NewBidRepository(conn *Connection) *BidRepository {
	return &BidRepository{conn: conn}
}

func (r *BidRepository) Create(ctx context.Context, b *bid.Bid) error {
	query := `
		INSERT INTO bids (id, item_id, bidder_id, amount, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.conn.GetDB().ExecContext(ctx, query,
		b.ID,
		b.ItemID,
		b.BidderID,
		b.Amount,
		string(b.Status),
		b.CreatedAt,
		b.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to create bid: %w", err)
	}

	return nil
}

// GetByItemID retrieves all bids for an item, highest first
func (r *BidRepository) GetByItemID(ctx context.Context, itemID uuid.UUID) ([]*bid.Bid, error) {
	query := `
		SELECT id, item_id, bidder_id, amount, status, created_at, updated_at
		FROM bids
		WHERE item_id = $1
		ORDER BY amount DESC, created_at ASC
	`

	rows, err := r.conn.GetDB().QueryContext(ctx, query, itemID)
	if err != nil {
		return nil, fmt.Errorf("failed to get bids: %w", err)
	}
	defer rows.Close()

	var bids []*bid.Bid
	for rows.Next() {
		var b bid.Bid
		err := rows.Scan(
			&b.ID,
			&b.ItemID,
			&b.BidderID,
			&b.Amount,
			&b.Status,
			&b.CreatedAt,
			&b.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan bid: %w", err)
		}
		bids = append(bids, &b)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating bids: %w", err)
	}

	return bids, nil
}

// GetHighestBid retrieves the highest accepted bid for an item
func (r *BidRepository) GetHighestBid(ctx context.Context, itemID uuid.UUID) (*bid.Bid, error) {
	query := `
		SELECT id, item_id, bidder_id, amount, status, created_at, updated_at
		FROM bids
		WHERE item_id = $1 AND status = 'accepted'
		ORDER BY amount DESC, created_at ASC
		LIMIT 1
	`

	var b bid.Bid
	err := r.conn.GetDB().QueryRowContext(ctx, query, itemID).Scan(
		&b.ID,
		&b.ItemID,
		&b.BidderID,
		&b.Amount,
		&b.Status,
		&b.CreatedAt,
		&b.UpdatedAt,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, shared.ErrNoBidsFound
		}
		return nil, fmt.Errorf("failed to get highest bid: %w", err)
	}

	return &b, nil
}

/*
PlaceBidWithOCC inserts a bid and advances the item's accumulated auction
state using optimistic concurrency control:
 1. Reading the item's current bidding state
 2. Validating the expected highest bid matches the stored one
 3. Advancing the item only if no other transaction moved it first
 4. Failing as a too-low bid when a concurrent bid won the race
*/
func (r *BidRepository) PlaceBidWithOCC(ctx context.Context, newBid *bid.Bid, expectedHighestBid float64) error {
	return r.conn.ExecuteTransaction(func(tx *sql.Tx) error {
		itemQuery := `
			SELECT current_highest_bid, bidding_status, updated_at
			FROM items
			WHERE id = $1
		`

		var dbHighestBid float64
		var biddingStatus string
		var updatedAt time.Time
		err := tx.QueryRowContext(ctx, itemQuery, newBid.ItemID).Scan(&dbHighestBid, &biddingStatus, &updatedAt)
		if err != nil {
			if err == sql.ErrNoRows {
				return shared.ErrItemNotFound
			}
			return fmt.Errorf("failed to get item for OCC: %w", err)
		}

		if biddingStatus != "open" {
			return shared.ErrAuctionNotOpen
		}

		if dbHighestBid != expectedHighestBid {
			return shared.ErrBidAmountTooLow
		}

		if newBid.Amount <= dbHighestBid {
			return shared.ErrBidAmountTooLow
		}

		bidQuery := `
			INSERT INTO bids (id, item_id, bidder_id, amount, status, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
		`

		_, err = tx.ExecContext(ctx, bidQuery,
			newBid.ID,
			newBid.ItemID,
			newBid.BidderID,
			newBid.Amount,
			string(newBid.Status),
			newBid.CreatedAt,
			newBid.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to insert bid: %w", err)
		}

		// The expected highest bid in the WHERE clause ensures no other
		// transaction advanced the item in the meantime
		updateQuery := `
			UPDATE items
			SET current_highest_bid = $2, winning_bidder_id = $3, updated_at = $4
			WHERE id = $1 AND current_highest_bid = $5
		`

		result, err := tx.ExecContext(ctx, updateQuery,
			newBid.ItemID,
			newBid.Amount,
			newBid.BidderID,
			newBid.CreatedAt,
			expectedHighestBid,
		)
		if err != nil {
			return fmt.Errorf("failed to update item bidding state: %w", err)
		}

		rowsAffected, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to get rows affected: %w", err)
		}

		if rowsAffected == 0 {
			return shared.ErrBidAmountTooLow
		}

		return nil
	})
}
