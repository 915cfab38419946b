package outbound

import (
	"context"

	"ewaste-lifecycle-service/internal/domain/bid"
	"ewaste-lifecycle-service/internal/domain/directory"
	"ewaste-lifecycle-service/internal/domain/item"
	"ewaste-lifecycle-service/internal/domain/pickup"

	"github.com/google/uuid"
)

// ItemRepository defines the interface for item data operations
type ItemRepository interface {
	// Create creates a new item
	Create(ctx context.Context, it *item.Item) error

	// GetByID retrieves an item by ID
	GetByID(ctx context.Context, id uuid.UUID) (*item.Item, error)

	// ListByCreator retrieves a creator's items, newest first, optionally
	// restricted to a set of statuses
	ListByCreator(ctx context.Context, createdBy string, statuses []item.Status) ([]*item.Item, error)

	// ListExpiredOpenAuctions retrieves items whose auction is open but whose
	// bidding end date has passed
	ListExpiredOpenAuctions(ctx context.Context, limit int) ([]*item.Item, error)

	// Update updates an item
	Update(ctx context.Context, it *item.Item) error

	// MarkScheduled flips a group of items to Scheduled and back-links them
	// to the given pickup
	MarkScheduled(ctx context.Context, itemIDs []uuid.UUID, pickupID uuid.UUID) error

	// Delete deletes an item
	Delete(ctx context.Context, id uuid.UUID) error
}

// PickupRepository defines the interface for pickup data operations
type PickupRepository interface {
	// CreateUnique inserts a pickup guarded by the canonical item-group key.
	// When a concurrent or earlier insert already claimed the key, created is
	// false and the existing pickup is returned instead.
	CreateUnique(ctx context.Context, p *pickup.Pickup) (created bool, existing *pickup.Pickup, err error)

	// GetByID retrieves a pickup by ID
	GetByID(ctx context.Context, id uuid.UUID) (*pickup.Pickup, error)

	// GetByItemID retrieves the pickup whose item group contains the given
	// item, or shared.ErrPickupNotFound
	GetByItemID(ctx context.Context, itemID uuid.UUID) (*pickup.Pickup, error)

	// FindAnyByItemIDs retrieves the oldest pickup referencing any of the
	// given items, or shared.ErrPickupNotFound
	FindAnyByItemIDs(ctx context.Context, itemIDs []uuid.UUID) (*pickup.Pickup, error)

	// UpdateAddress backfills the copied address fields on a pickup
	UpdateAddress(ctx context.Context, id uuid.UUID, address, landmark string, lat, lng float64) error

	// ListByCreator retrieves a creator's pickups, most recent date first
	ListByCreator(ctx context.Context, createdBy string) ([]*pickup.Pickup, error)
}

// VendorRepository defines the interface for standalone vendor directory
// entries
type VendorRepository interface {
	// Create creates a new vendor entry
	Create(ctx context.Context, v *directory.Vendor) error

	// GetByID retrieves a vendor by ID, or shared.ErrVendorNotFound
	GetByID(ctx context.Context, id uuid.UUID) (*directory.Vendor, error)

	// List retrieves all vendors sorted by name
	List(ctx context.Context) ([]*directory.Vendor, error)
}

// UserRepository defines the interface for user account records
type UserRepository interface {
	// Create creates a new user
	Create(ctx context.Context, u *directory.User) error

	// GetByID retrieves a user by ID, or shared.ErrUserNotFound
	GetByID(ctx context.Context, id uuid.UUID) (*directory.User, error)

	// GetByEmail retrieves a user by email, or shared.ErrUserNotFound
	GetByEmail(ctx context.Context, email string) (*directory.User, error)

	// ListByRole retrieves all users with the given role, sorted by name
	ListByRole(ctx context.Context, role directory.Role) ([]*directory.User, error)
}

// BidRepository defines the interface for bid data operations
type BidRepository interface {
	// Create creates a new bid
	Create(ctx context.Context, b *bid.Bid) error

	// GetByItemID retrieves all bids for an item, highest first
	GetByItemID(ctx context.Context, itemID uuid.UUID) ([]*bid.Bid, error)

	// GetHighestBid retrieves the highest accepted bid for an item, or
	// shared.ErrNoBidsFound
	GetHighestBid(ctx context.Context, itemID uuid.UUID) (*bid.Bid, error)

	// PlaceBidWithOCC inserts a bid and advances the item's accumulated
	// highest bid in one transaction, guarded by the expected previous
	// highest bid (optimistic concurrency control)
	PlaceBidWithOCC(ctx context.Context, b *bid.Bid, expectedHighestBid float64) error
}
