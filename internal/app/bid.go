package app

import (
	"context"
	"time"

	"ewaste-lifecycle-service/internal/domain/bid"
	"ewaste-lifecycle-service/internal/domain/directory"
	"ewaste-lifecycle-service/internal/domain/shared"
	"ewaste-lifecycle-service/internal/ports/inbound"
	"ewaste-lifecycle-service/internal/ports/outbound"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// BidService implements the bid use cases
type BidService struct {
	bidRepo   outbound.BidRepository
	itemRepo  outbound.ItemRepository
	directory inbound.DirectoryService
	logger    zerolog.Logger
}

type BidServiceParams struct {
	BidRepo   outbound.BidRepository
	ItemRepo  outbound.ItemRepository
	Directory inbound.DirectoryService
	Logger    zerolog.Logger
}

// NewBidService creates a new bid service
func NewBidService(params BidServiceParams) *BidService {
	return &BidService{
		bidRepo:   params.BidRepo,
		itemRepo:  params.ItemRepo,
		directory: params.Directory,
		logger:    params.Logger.With().Str("component", "bid_service").Logger(),
	}
}

// PlaceBid places a new bid on an item's open auction
func (service *BidService) PlaceBid(ctx context.Context, req inbound.PlaceBidRequest) (*bid.Bid, error) {
	service.logger.Info().
		Str("item_id", req.ItemID.String()).
		Str("bidder_id", req.BidderID.String()).
		Float64("amount", req.Amount).
		Msg("Attempting to place bid")

	it, err := service.itemRepo.GetByID(ctx, req.ItemID)
	if err != nil {
		service.logger.Error().Err(err).Str("item_id", req.ItemID.String()).Msg("Item not found")
		return nil, err
	}

	if !it.AuctionOpen() {
		service.logger.Warn().Str("item_id", req.ItemID.String()).Msg("Auction not accepting bids")
		return nil, shared.ErrAuctionNotOpen
	}

	if it.AuctionExpired(time.Now()) {
		service.logger.Warn().
			Str("item_id", req.ItemID.String()).
			Time("bidding_end_date", *it.BiddingEndDate).
			Msg("Bidding period has ended")
		return nil, shared.ErrAuctionEnded
	}

	// Bidders may live in either directory collection
	counterparty, err := service.directory.ResolveCounterparty(ctx, req.BidderID)
	if err != nil {
		service.logger.Error().Err(err).Str("bidder_id", req.BidderID.String()).Msg("Failed to resolve bidder")
		return nil, err
	}
	if counterparty.Kind == directory.KindUnknown {
		service.logger.Warn().Str("bidder_id", req.BidderID.String()).Msg("Bidder unknown in both collections")
		return nil, shared.ErrUnknownBidder
	}

	if req.Amount <= 0 {
		service.logger.Warn().Float64("amount", req.Amount).Msg("Invalid bid amount (must be > 0)")
		return nil, shared.ErrBidAmountInvalid
	}

	if req.Amount <= it.CurrentHighestBid {
		service.logger.Warn().
			Str("item_id", req.ItemID.String()).
			Float64("current_highest_bid", it.CurrentHighestBid).
			Float64("new_bid_amount", req.Amount).
			Msg("Bid amount too low (must be higher than current highest bid)")
		return nil, shared.ErrBidAmountTooLow
	}

	now := time.Now()
	newBid := &bid.Bid{
		ID:        uuid.New(),
		ItemID:    req.ItemID,
		BidderID:  req.BidderID,
		Amount:    req.Amount,
		Status:    bid.StatusAccepted,
		CreatedAt: now,
		UpdatedAt: now,
	}

	// The conditional update on the item's highest bid rejects the insert if
	// another bid landed between our read and this write
	if err := service.bidRepo.PlaceBidWithOCC(ctx, newBid, it.CurrentHighestBid); err != nil {
		service.logger.Error().Err(err).Str("bid_id", newBid.ID.String()).Msg("Failed to place bid")
		return nil, err
	}

	service.logger.Info().
		Str("bid_id", newBid.ID.String()).
		Str("item_id", newBid.ItemID.String()).
		Str("bidder_id", newBid.BidderID.String()).
		Float64("amount", newBid.Amount).
		Msg("Bid placed successfully")

	return newBid, nil
}

// GetBids retrieves bids for an item, highest first
func (service *BidService) GetBids(ctx context.Context, itemID uuid.UUID) ([]*bid.Bid, error) {
	return service.bidRepo.GetByItemID(ctx, itemID)
}
