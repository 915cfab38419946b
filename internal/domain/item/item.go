package item

import (
	"time"

	"github.com/google/uuid"
)

// Status represents the fulfillment status of an item
type Status string

const (
	StatusDraft     Status = "Draft"
	StatusReported  Status = "Reported"
	StatusScheduled Status = "Scheduled"
)

// BiddingStatus represents the auction phase of an item, independent of
// its fulfillment status
type BiddingStatus string

const (
	BiddingDraft  BiddingStatus = "draft"
	BiddingOpen   BiddingStatus = "open"
	BiddingClosed BiddingStatus = "closed"
)

// Classification represents the disposal classification of an item
type Classification string

const (
	ClassificationHazardous  Classification = "Hazardous"
	ClassificationReusable   Classification = "Reusable"
	ClassificationRecyclable Classification = "Recyclable"
)

// PickupAddress is the location an item is collected from
type PickupAddress struct {
	Address   string  `json:"address"`
	Landmark  string  `json:"landmark"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Item represents a reported unit of e-waste tracked through
// classification, auction, and pickup
type Item struct {
	ID                uuid.UUID       `json:"id"`
	Name              string          `json:"name"`
	Department        string          `json:"department"`
	Category          string          `json:"category"`
	Age               int             `json:"age"`
	Condition         string          `json:"condition"`
	Classification    *Classification `json:"classification,omitempty"`
	Status            Status          `json:"status"`
	BiddingStatus     BiddingStatus   `json:"biddingStatus"`
	CurrentHighestBid float64         `json:"currentHighestBid"`
	WinningBidderID   *uuid.UUID      `json:"winningBidderId,omitempty"`
	BiddingEndDate    *time.Time      `json:"biddingEndDate,omitempty"`
	PickupAddress     *PickupAddress  `json:"pickupAddress,omitempty"`
	PickupID          *uuid.UUID      `json:"pickupId,omitempty"`
	CreatedBy         string          `json:"createdBy"`
	CreatedAt         time.Time       `json:"createdAt"`
	UpdatedAt         time.Time       `json:"updatedAt"`
}

// AuctionOpen returns true if bids can still be placed on this item
func (i *Item) AuctionOpen() bool {
	return i.BiddingStatus == BiddingOpen
}

// AuctionExpired returns true if the item has a bidding end date in the past
func (i *Item) AuctionExpired(now time.Time) bool {
	return i.BiddingEndDate != nil && i.BiddingEndDate.Before(now)
}

// OwnedBy returns true if the item was reported by the given identity
func (i *Item) OwnedBy(email string) bool {
	return i.CreatedBy == email
}

// OpenAuction transitions the item's bidding phase from draft to open
func (i *Item) OpenAuction(endDate time.Time) {
	i.BiddingStatus = BiddingOpen
	i.BiddingEndDate = &endDate
	i.UpdatedAt = time.Now()
}

// CloseAuction finalizes the item's auction. Winner and highest bid were
// already accumulated by bid placement. An item still parked in Draft from
// intake becomes Reported, so the scheduling flow can pick it up.
func (i *Item) CloseAuction() {
	i.BiddingStatus = BiddingClosed
	if i.Status == StatusDraft {
		i.Status = StatusReported
	}
	i.UpdatedAt = time.Now()
}

// RecordBid updates the accumulated auction state after a bid is accepted
func (i *Item) RecordBid(bidderID uuid.UUID, amount float64) {
	i.CurrentHighestBid = amount
	i.WinningBidderID = &bidderID
	i.UpdatedAt = time.Now()
}

// Schedule writes the pickup address and flips the item to Scheduled
func (i *Item) Schedule(addr PickupAddress) {
	i.PickupAddress = &addr
	i.Status = StatusScheduled
	i.UpdatedAt = time.Now()
}

// LinkPickup back-links the item to its pickup aggregate
func (i *Item) LinkPickup(pickupID uuid.UUID) {
	i.PickupID = &pickupID
	i.UpdatedAt = time.Now()
}

// ValidClassification returns true for a recognized classification value
func ValidClassification(c string) bool {
	switch Classification(c) {
	case ClassificationHazardous, ClassificationReusable, ClassificationRecyclable:
		return true
	}
	return false
}
