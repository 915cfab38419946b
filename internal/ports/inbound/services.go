package inbound

import (
	"context"
	"time"

	"ewaste-lifecycle-service/internal/domain/bid"
	"ewaste-lifecycle-service/internal/domain/directory"
	"ewaste-lifecycle-service/internal/domain/item"
	"ewaste-lifecycle-service/internal/domain/pickup"

	"github.com/google/uuid"
)

// ItemService defines the interface for item registry operations
type ItemService interface {
	// ReportItem creates a new item owned by the reporter
	ReportItem(ctx context.Context, req ReportItemRequest) (*item.Item, error)

	// GetItem retrieves an item by ID
	GetItem(ctx context.Context, itemID uuid.UUID) (*item.Item, error)

	// ListItems retrieves a creator's items, optionally filtered by status
	ListItems(ctx context.Context, createdBy string, statuses []item.Status) ([]*item.Item, error)

	// OpenAuction transitions an item's bidding phase from draft to open
	OpenAuction(ctx context.Context, itemID uuid.UUID, endDate time.Time, requesterEmail string) (*item.Item, error)

	// DeleteItem removes an item (owner only)
	DeleteItem(ctx context.Context, itemID uuid.UUID, requesterEmail string) error
}

// AuctionService defines the interface for auction finalization
type AuctionService interface {
	// CloseAuction finalizes an open auction for an item. The requester must
	// be the item owner or an admin-role user.
	CloseAuction(ctx context.Context, itemID uuid.UUID, requesterEmail string) (*item.Item, error)
}

// BidService defines the interface for bid operations
type BidService interface {
	// PlaceBid places a new bid on an item's open auction
	PlaceBid(ctx context.Context, req PlaceBidRequest) (*bid.Bid, error)

	// GetBids retrieves bids for an item, highest first
	GetBids(ctx context.Context, itemID uuid.UUID) ([]*bid.Bid, error)
}

// PickupService defines the interface for the pickup lifecycle coordinator
type PickupService interface {
	// SubmitPickupAddress writes the pickup address onto an item, flips it to
	// Scheduled, and (when a vendor is named) finds or creates the pickup
	// aggregate covering that item
	SubmitPickupAddress(ctx context.Context, req SubmitPickupAddressRequest) (*SubmitPickupAddressResult, error)

	// SchedulePickup creates a pickup for a group of items, returning the
	// existing pickup instead when any of the items is already covered
	SchedulePickup(ctx context.Context, req SchedulePickupRequest) (*SchedulePickupResult, error)

	// SchedulingOverview assembles the scheduling dashboard data for a user
	SchedulingOverview(ctx context.Context, userEmail string) (*SchedulingOverview, error)
}

// DirectoryService defines the interface for counterparty and account lookups
type DirectoryService interface {
	// ResolveCounterparty resolves a vendor id across the Vendor collection
	// and the vendor/admin-role slice of the User collection
	ResolveCounterparty(ctx context.Context, vendorID uuid.UUID) (directory.Counterparty, error)

	// ResolveVendorName returns the display name for a vendor id, falling
	// back to directory.UnknownVendorName
	ResolveVendorName(ctx context.Context, vendorID uuid.UUID) (string, error)

	// GetUser retrieves a user by ID
	GetUser(ctx context.Context, userID uuid.UUID) (*directory.User, error)

	// ListUsersByRole retrieves users with the given role
	ListUsersByRole(ctx context.Context, role string) ([]*directory.User, error)

	// ListVendors retrieves all standalone vendor entries sorted by name
	ListVendors(ctx context.Context) ([]*directory.Vendor, error)
}

// request to report an item
type ReportItemRequest struct {
	Name           string     `json:"name"`
	Department     string     `json:"department"`
	Category       string     `json:"category"`
	Age            int        `json:"age"`
	Condition      string     `json:"condition"`
	Classification string     `json:"classification,omitempty"`
	BiddingStatus  string     `json:"biddingStatus,omitempty"`
	BiddingEndDate *time.Time `json:"biddingEndDate,omitempty"`
	CreatedBy      string     `json:"createdBy"`
}

// request to place a bid
type PlaceBidRequest struct {
	ItemID   uuid.UUID `json:"itemId"`
	BidderID uuid.UUID `json:"bidderId"`
	Amount   float64   `json:"amount"`
}

// request to submit a pickup address for an item
type SubmitPickupAddressRequest struct {
	ItemID    uuid.UUID
	Address   string
	Landmark  string
	Latitude  float64
	Longitude float64
	VendorID  *uuid.UUID
}

// SubmitPickupAddressResult carries the updated item and, when a new pickup
// was created, its id
type SubmitPickupAddressResult struct {
	Item     *item.Item
	PickupID *uuid.UUID
}

// request to schedule a pickup for a group of items
type SchedulePickupRequest struct {
	ItemIDs   []uuid.UUID
	VendorID  uuid.UUID
	Notes     string
	CreatedBy string
}

// SchedulePickupResult carries the pickup and whether it was newly created
// (false on the dedup path)
type SchedulePickupResult struct {
	Pickup  *pickup.Pickup
	Created bool
}

// ItemRef is a populated item reference inside a pickup view
type ItemRef struct {
	ID            uuid.UUID           `json:"id"`
	Name          string              `json:"name"`
	PickupAddress *item.PickupAddress `json:"pickupAddress,omitempty"`
}

// PopulatedPickup is a pickup enriched with its resolved vendor name and
// item references for display
type PopulatedPickup struct {
	pickup.Pickup
	VendorName string    `json:"vendorName"`
	Items      []ItemRef `json:"items"`
}

// SchedulingOverview is the scheduling dashboard payload for one user
type SchedulingOverview struct {
	Vendors          []*directory.Vendor `json:"vendors"`
	SchedulableItems []*item.Item        `json:"schedulableItems"`
	Pickups          []*pickup.Pickup    `json:"pickups"`
	PopulatedPickups []PopulatedPickup   `json:"populatedPickups"`
}
