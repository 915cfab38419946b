package app

import (
	"context"
	"errors"
	"time"

	"ewaste-lifecycle-service/internal/adapters/scheduler"
	"ewaste-lifecycle-service/internal/domain/item"
	"ewaste-lifecycle-service/internal/domain/shared"
	"ewaste-lifecycle-service/internal/ports/outbound"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// AuctionService implements the auction finalization use cases and
// scheduler.AuctionCloseService
type AuctionService struct {
	itemRepo  outbound.ItemRepository
	userRepo  outbound.UserRepository
	scheduler *scheduler.AuctionScheduler
	logger    zerolog.Logger
}

type AuctionServiceParams struct {
	ItemRepo  outbound.ItemRepository
	UserRepo  outbound.UserRepository
	Scheduler *scheduler.AuctionScheduler
	Logger    zerolog.Logger
}

// NewAuctionService creates a new auction service
func NewAuctionService(params AuctionServiceParams) *AuctionService {
	return &AuctionService{
		itemRepo:  params.ItemRepo,
		userRepo:  params.UserRepo,
		scheduler: params.Scheduler,
		logger:    params.Logger.With().Str("component", "auction_service").Logger(),
	}
}

// CloseAuction finalizes an open auction for an item. The requester must be
// the item owner or an admin-role user. Winner and final bid were already
// accumulated by bid placement; closing only flips the bidding phase.
//
// The client is expected to follow up with an independent pickup-address
// submission; there is no server-side atomicity between the two requests.
func (service *AuctionService) CloseAuction(ctx context.Context, itemID uuid.UUID, requesterEmail string) (*item.Item, error) {
	service.logger.Info().
		Str("item_id", itemID.String()).
		Str("requester", requesterEmail).
		Msg("Attempting to close auction")

	it, err := service.itemRepo.GetByID(ctx, itemID)
	if err != nil {
		service.logger.Error().Err(err).Str("item_id", itemID.String()).Msg("Item not found")
		return nil, err
	}

	if !it.AuctionOpen() {
		service.logger.Warn().
			Str("item_id", itemID.String()).
			Str("bidding_status", string(it.BiddingStatus)).
			Msg("Auction is not open")
		return nil, shared.ErrAuctionNotOpen
	}

	if err := service.authorizeRequester(ctx, it, requesterEmail); err != nil {
		return nil, err
	}

	return service.close(ctx, it)
}

// CloseExpiredAuction implements scheduler.AuctionCloseService. System
// initiated closes skip the requester check.
func (service *AuctionService) CloseExpiredAuction(ctx context.Context, itemID uuid.UUID) (*item.Item, error) {
	it, err := service.itemRepo.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}

	if !it.AuctionOpen() {
		// Already closed by the owner between scheduling and expiry
		service.logger.Debug().
			Str("item_id", itemID.String()).
			Str("bidding_status", string(it.BiddingStatus)).
			Msg("Expired auction already finalized")
		return nil, shared.ErrAuctionNotOpen
	}

	return service.close(ctx, it)
}

// ScheduleExpiry registers an item for automatic auction closing at its
// bidding end date
func (service *AuctionService) ScheduleExpiry(itemID uuid.UUID, endDate time.Time) {
	if service.scheduler == nil {
		return
	}

	if err := service.scheduler.ScheduleItem(itemID, endDate); err != nil {
		// Auction creation should not fail because scheduling did; the item
		// can still be closed manually
		service.logger.Error().Err(err).Str("item_id", itemID.String()).Msg("Failed to schedule auction expiry")
		return
	}

	service.logger.Info().
		Str("item_id", itemID.String()).
		Time("end_date", endDate).
		Msg("Auction scheduled for expiry")
}

// SetScheduler sets the auction scheduler
func (service *AuctionService) SetScheduler(s *scheduler.AuctionScheduler) {
	service.scheduler = s
}

func (service *AuctionService) close(ctx context.Context, it *item.Item) (*item.Item, error) {
	it.CloseAuction()

	if err := service.itemRepo.Update(ctx, it); err != nil {
		service.logger.Error().Err(err).Str("item_id", it.ID.String()).Msg("Failed to update item after closing auction")
		return nil, err
	}

	evt := service.logger.Info().Str("item_id", it.ID.String())
	if it.WinningBidderID != nil {
		evt = evt.
			Str("winning_bidder_id", it.WinningBidderID.String()).
			Float64("final_bid", it.CurrentHighestBid)
	}
	evt.Msg("Auction closed")

	return it, nil
}

func (service *AuctionService) authorizeRequester(ctx context.Context, it *item.Item, requesterEmail string) error {
	if requesterEmail == "" {
		return shared.ErrUnauthorized
	}

	if it.OwnedBy(requesterEmail) {
		return nil
	}

	user, err := service.userRepo.GetByEmail(ctx, requesterEmail)
	if err != nil {
		if errors.Is(err, shared.ErrUserNotFound) {
			service.logger.Warn().
				Str("item_id", it.ID.String()).
				Str("requester", requesterEmail).
				Msg("Requester is neither owner nor a known user")
			return shared.ErrUnauthorized
		}
		return err
	}

	if !user.IsAdmin() {
		service.logger.Warn().
			Str("item_id", it.ID.String()).
			Str("requester", requesterEmail).
			Str("role", string(user.Role)).
			Msg("Requester lacks rights to close auction")
		return shared.ErrUnauthorized
	}

	return nil
}
