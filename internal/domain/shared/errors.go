package shared

import "errors"

// Domain-specific errors
var (
	// Item errors
	ErrItemNotFound = errors.New("item not found")

	// Auction errors
	ErrAuctionNotOpen  = errors.New("auction is not open")
	ErrAuctionNotDraft = errors.New("auction can only be opened from draft")
	ErrAuctionEnded    = errors.New("auction bidding period has ended")
	ErrUnauthorized    = errors.New("requester is not authorized for this item")

	// Bid errors
	ErrBidAmountInvalid = errors.New("bid amount must be greater than 0")
	ErrBidAmountTooLow  = errors.New("bid amount must be higher than current highest bid")
	ErrNoBidsFound      = errors.New("no bids found")

	// Pickup errors
	ErrPickupNotFound = errors.New("pickup not found")
	ErrEmptyItemGroup = errors.New("itemIds must not be empty")

	// Directory errors
	ErrUserNotFound   = errors.New("user not found")
	ErrVendorNotFound = errors.New("vendor not found")
	ErrInvalidRole    = errors.New("invalid role")
	ErrUnknownBidder  = errors.New("bidder not found in vendor or user directory")

	// Validation errors
	ErrMissingFields = errors.New("missing or invalid fields")
)
