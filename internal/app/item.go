package app

import (
	"context"
	"time"

	"ewaste-lifecycle-service/internal/domain/item"
	"ewaste-lifecycle-service/internal/domain/shared"
	"ewaste-lifecycle-service/internal/ports/inbound"
	"ewaste-lifecycle-service/internal/ports/outbound"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// ItemService implements the item registry use cases
type ItemService struct {
	itemRepo outbound.ItemRepository
	auctions *AuctionService
	logger   zerolog.Logger
}

type ItemServiceParams struct {
	ItemRepo outbound.ItemRepository
	Auctions *AuctionService
	Logger   zerolog.Logger
}

// NewItemService creates a new item service
func NewItemService(params ItemServiceParams) *ItemService {
	return &ItemService{
		itemRepo: params.ItemRepo,
		auctions: params.Auctions,
		logger:   params.Logger.With().Str("component", "item_service").Logger(),
	}
}

// ReportItem creates a new item owned by the reporter. Items created with an
// open auction and an end date are registered for automatic closing.
func (service *ItemService) ReportItem(ctx context.Context, req inbound.ReportItemRequest) (*item.Item, error) {
	if req.Name == "" || req.CreatedBy == "" {
		return nil, shared.ErrMissingFields
	}
	if req.Classification != "" && !item.ValidClassification(req.Classification) {
		return nil, shared.ErrMissingFields
	}

	now := time.Now()
	it := &item.Item{
		ID:            uuid.New(),
		Name:          req.Name,
		Department:    req.Department,
		Category:      req.Category,
		Age:           req.Age,
		Condition:     req.Condition,
		Status:        item.StatusReported,
		BiddingStatus: item.BiddingDraft,
		CreatedBy:     req.CreatedBy,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if req.Classification != "" {
		c := item.Classification(req.Classification)
		it.Classification = &c
	}

	if req.BiddingStatus == string(item.BiddingOpen) {
		it.BiddingStatus = item.BiddingOpen
		it.BiddingEndDate = req.BiddingEndDate
		if it.BiddingEndDate == nil {
			return nil, shared.ErrMissingFields
		}
		// An item still configuring its auction stays in Draft
		it.Status = item.StatusDraft
	}

	if err := service.itemRepo.Create(ctx, it); err != nil {
		service.logger.Error().Err(err).Str("item_id", it.ID.String()).Msg("Failed to create item")
		return nil, err
	}

	service.logger.Info().
		Str("item_id", it.ID.String()).
		Str("name", it.Name).
		Str("created_by", it.CreatedBy).
		Str("bidding_status", string(it.BiddingStatus)).
		Msg("Item reported")

	if it.BiddingStatus == item.BiddingOpen && it.BiddingEndDate != nil && service.auctions != nil {
		service.auctions.ScheduleExpiry(it.ID, *it.BiddingEndDate)
	}

	return it, nil
}

// GetItem retrieves an item by ID
func (service *ItemService) GetItem(ctx context.Context, itemID uuid.UUID) (*item.Item, error) {
	return service.itemRepo.GetByID(ctx, itemID)
}

// ListItems retrieves a creator's items, optionally filtered by status
func (service *ItemService) ListItems(ctx context.Context, createdBy string, statuses []item.Status) ([]*item.Item, error) {
	return service.itemRepo.ListByCreator(ctx, createdBy, statuses)
}

// OpenAuction transitions an item's bidding phase from draft to open and
// registers it for automatic closing at the end date
func (service *ItemService) OpenAuction(ctx context.Context, itemID uuid.UUID, endDate time.Time, requesterEmail string) (*item.Item, error) {
	it, err := service.itemRepo.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}

	if !it.OwnedBy(requesterEmail) {
		return nil, shared.ErrUnauthorized
	}

	if it.BiddingStatus != item.BiddingDraft {
		return nil, shared.ErrAuctionNotDraft
	}

	it.OpenAuction(endDate)
	it.Status = item.StatusReported

	if err := service.itemRepo.Update(ctx, it); err != nil {
		service.logger.Error().Err(err).Str("item_id", it.ID.String()).Msg("Failed to open auction")
		return nil, err
	}

	service.logger.Info().
		Str("item_id", it.ID.String()).
		Time("bidding_end_date", endDate).
		Msg("Auction opened")

	if service.auctions != nil {
		service.auctions.ScheduleExpiry(it.ID, endDate)
	}

	return it, nil
}

// DeleteItem removes an item. Only the owner may delete; this is the one
// hard delete in the item lifecycle.
func (service *ItemService) DeleteItem(ctx context.Context, itemID uuid.UUID, requesterEmail string) error {
	it, err := service.itemRepo.GetByID(ctx, itemID)
	if err != nil {
		return err
	}

	if !it.OwnedBy(requesterEmail) {
		return shared.ErrUnauthorized
	}

	if err := service.itemRepo.Delete(ctx, itemID); err != nil {
		service.logger.Error().Err(err).Str("item_id", itemID.String()).Msg("Failed to delete item")
		return err
	}

	service.logger.Info().Str("item_id", itemID.String()).Msg("Item deleted")
	return nil
}
