package app

import (
	"context"
	"errors"
	"time"

	"ewaste-lifecycle-service/internal/domain/item"
	"ewaste-lifecycle-service/internal/domain/pickup"
	"ewaste-lifecycle-service/internal/domain/shared"
	"ewaste-lifecycle-service/internal/ports/inbound"
	"ewaste-lifecycle-service/internal/ports/outbound"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// PickupService implements the pickup lifecycle coordinator
type PickupService struct {
	itemRepo   outbound.ItemRepository
	pickupRepo outbound.PickupRepository
	directory  inbound.DirectoryService
	offsetDays int
	logger     zerolog.Logger
}

type PickupServiceParams struct {
	ItemRepo   outbound.ItemRepository
	PickupRepo outbound.PickupRepository
	Directory  inbound.DirectoryService
	OffsetDays int
	Logger     zerolog.Logger
}

// NewPickupService creates a new pickup service
func NewPickupService(params PickupServiceParams) *PickupService {
	return &PickupService{
		itemRepo:   params.ItemRepo,
		pickupRepo: params.PickupRepo,
		directory:  params.Directory,
		offsetDays: params.OffsetDays,
		logger:     params.Logger.With().Str("component", "pickup_service").Logger(),
	}
}

// SubmitPickupAddress writes the submitted address onto the item and flips it
// to Scheduled. When a vendor is named it then finds or creates the pickup
// aggregate covering the item.
//
// The item update and the pickup write are two sequential persists without a
// wrapping transaction. A crash in between leaves the item Scheduled without
// a linked pickup; re-submitting reconciles, because the find step will then
// create the missing pickup.
func (service *PickupService) SubmitPickupAddress(ctx context.Context, req inbound.SubmitPickupAddressRequest) (*inbound.SubmitPickupAddressResult, error) {
	service.logger.Info().
		Str("item_id", req.ItemID.String()).
		Str("address", req.Address).
		Msg("Submitting pickup address")

	it, err := service.itemRepo.GetByID(ctx, req.ItemID)
	if err != nil {
		service.logger.Error().Err(err).Str("item_id", req.ItemID.String()).Msg("Item not found")
		return nil, err
	}

	it.Schedule(item.PickupAddress{
		Address:   req.Address,
		Landmark:  pickup.NormalizeLandmark(req.Landmark),
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
	})

	if err := service.itemRepo.Update(ctx, it); err != nil {
		service.logger.Error().Err(err).Str("item_id", it.ID.String()).Msg("Failed to persist pickup address")
		return nil, err
	}

	result := &inbound.SubmitPickupAddressResult{Item: it}

	if req.VendorID == nil {
		return result, nil
	}

	existing, err := service.pickupRepo.GetByItemID(ctx, it.ID)
	switch {
	case err == nil:
		// The aggregate already exists; backfill its address only if it was
		// created without one. A pickup that already has an address is left
		// untouched.
		if !existing.HasAddress() {
			addr := it.PickupAddress
			if err := service.pickupRepo.UpdateAddress(ctx, existing.ID, addr.Address, addr.Landmark, addr.Latitude, addr.Longitude); err != nil {
				service.logger.Error().Err(err).Str("pickup_id", existing.ID.String()).Msg("Failed to backfill pickup address")
				return nil, err
			}
			service.logger.Info().
				Str("pickup_id", existing.ID.String()).
				Str("item_id", it.ID.String()).
				Msg("Backfilled address on existing pickup")
		}
		return result, nil

	case errors.Is(err, shared.ErrPickupNotFound):
		created, err := service.createWinnerPickup(ctx, it, *req.VendorID)
		if err != nil {
			return nil, err
		}
		if created != nil {
			result.PickupID = &created.ID
		}
		return result, nil

	default:
		service.logger.Error().Err(err).Str("item_id", it.ID.String()).Msg("Failed to look up pickup for item")
		return nil, err
	}
}

// createWinnerPickup creates the pickup aggregate for a single item after
// its auction winner submitted an address. Returns nil when a concurrent
// submission won the insert race.
func (service *PickupService) createWinnerPickup(ctx context.Context, it *item.Item, vendorID uuid.UUID) (*pickup.Pickup, error) {
	now := time.Now()
	p := &pickup.Pickup{
		ID:        uuid.New(),
		Date:      pickup.ScheduledDate(now, service.offsetDays),
		VendorID:  vendorID,
		ItemIDs:   []uuid.UUID{it.ID},
		Notes:     pickup.WinnerNotes(it.CurrentHighestBid),
		Address:   it.PickupAddress.Address,
		Landmark:  it.PickupAddress.Landmark,
		Latitude:  it.PickupAddress.Latitude,
		Longitude: it.PickupAddress.Longitude,
		CreatedBy: it.CreatedBy,
		CreatedAt: now,
		UpdatedAt: now,
	}

	created, existing, err := service.pickupRepo.CreateUnique(ctx, p)
	if err != nil {
		service.logger.Error().Err(err).Str("item_id", it.ID.String()).Msg("Failed to create pickup")
		return nil, err
	}

	if !created {
		// Lost the insert race; the concurrent submission's pickup stands
		service.logger.Warn().
			Str("item_id", it.ID.String()).
			Str("existing_pickup_id", existing.ID.String()).
			Msg("Pickup already created for item group")
		return nil, nil
	}

	it.LinkPickup(p.ID)
	if err := service.itemRepo.Update(ctx, it); err != nil {
		service.logger.Error().Err(err).
			Str("item_id", it.ID.String()).
			Str("pickup_id", p.ID.String()).
			Msg("Failed to back-link item to pickup")
		return nil, err
	}

	service.logger.Info().
		Str("pickup_id", p.ID.String()).
		Str("item_id", it.ID.String()).
		Str("vendor_id", vendorID.String()).
		Str("date", p.Date).
		Msg("Pickup created for auction winner")

	return p, nil
}

// SchedulePickup creates a pickup for a group of items. When any of the
// items is already covered by a pickup, that pickup is returned unchanged
// instead of creating a duplicate history entry.
func (service *PickupService) SchedulePickup(ctx context.Context, req inbound.SchedulePickupRequest) (*inbound.SchedulePickupResult, error) {
	if len(req.ItemIDs) == 0 {
		return nil, shared.ErrEmptyItemGroup
	}

	service.logger.Info().
		Int("item_count", len(req.ItemIDs)).
		Str("vendor_id", req.VendorID.String()).
		Str("created_by", req.CreatedBy).
		Msg("Scheduling pickup")

	existing, err := service.pickupRepo.FindAnyByItemIDs(ctx, req.ItemIDs)
	if err == nil {
		service.logger.Info().
			Str("pickup_id", existing.ID.String()).
			Msg("Pickup already exists for one of the items")
		return &inbound.SchedulePickupResult{Pickup: existing, Created: false}, nil
	}
	if !errors.Is(err, shared.ErrPickupNotFound) {
		service.logger.Error().Err(err).Msg("Failed to check for existing pickups")
		return nil, err
	}

	now := time.Now()
	p := &pickup.Pickup{
		ID:        uuid.New(),
		Date:      pickup.ScheduledDate(now, service.offsetDays),
		VendorID:  req.VendorID,
		ItemIDs:   req.ItemIDs,
		Notes:     req.Notes,
		CreatedBy: req.CreatedBy,
		CreatedAt: now,
		UpdatedAt: now,
	}

	// Derive address fields from the first item in the group that has one
	for _, itemID := range req.ItemIDs {
		it, err := service.itemRepo.GetByID(ctx, itemID)
		if err != nil {
			if errors.Is(err, shared.ErrItemNotFound) {
				continue
			}
			return nil, err
		}
		if it.PickupAddress != nil && it.PickupAddress.Address != "" {
			p.SetAddress(it.PickupAddress.Address, it.PickupAddress.Landmark, it.PickupAddress.Latitude, it.PickupAddress.Longitude)
			break
		}
	}

	created, racedExisting, err := service.pickupRepo.CreateUnique(ctx, p)
	if err != nil {
		service.logger.Error().Err(err).Msg("Failed to create pickup")
		return nil, err
	}
	if !created {
		return &inbound.SchedulePickupResult{Pickup: racedExisting, Created: false}, nil
	}

	if err := service.itemRepo.MarkScheduled(ctx, req.ItemIDs, p.ID); err != nil {
		service.logger.Error().Err(err).Str("pickup_id", p.ID.String()).Msg("Failed to mark items scheduled")
		return nil, err
	}

	service.logger.Info().
		Str("pickup_id", p.ID.String()).
		Int("item_count", len(req.ItemIDs)).
		Str("date", p.Date).
		Msg("Pickup scheduled")

	return &inbound.SchedulePickupResult{Pickup: p, Created: true}, nil
}

// SchedulingOverview assembles the scheduling dashboard data for one user:
// every vendor, the user's reported and scheduled items, the user's pickups,
// and the pickups populated for display.
func (service *PickupService) SchedulingOverview(ctx context.Context, userEmail string) (*inbound.SchedulingOverview, error) {
	vendors, err := service.directory.ListVendors(ctx)
	if err != nil {
		service.logger.Error().Err(err).Msg("Failed to list vendors")
		return nil, err
	}

	items, err := service.itemRepo.ListByCreator(ctx, userEmail, []item.Status{item.StatusReported, item.StatusScheduled})
	if err != nil {
		service.logger.Error().Err(err).Str("user_email", userEmail).Msg("Failed to list schedulable items")
		return nil, err
	}

	pickups, err := service.pickupRepo.ListByCreator(ctx, userEmail)
	if err != nil {
		service.logger.Error().Err(err).Str("user_email", userEmail).Msg("Failed to list pickups")
		return nil, err
	}

	itemsByID := make(map[uuid.UUID]*item.Item, len(items))
	for _, it := range items {
		itemsByID[it.ID] = it
	}

	populated := make([]inbound.PopulatedPickup, 0, len(pickups))
	for _, p := range pickups {
		vendorName, err := service.directory.ResolveVendorName(ctx, p.VendorID)
		if err != nil {
			return nil, err
		}

		refs := make([]inbound.ItemRef, 0, len(p.ItemIDs))
		for _, itemID := range p.ItemIDs {
			refs = append(refs, service.resolveItemRef(ctx, itemsByID, itemID))
		}

		populated = append(populated, inbound.PopulatedPickup{
			Pickup:     *p,
			VendorName: vendorName,
			Items:      refs,
		})
	}

	return &inbound.SchedulingOverview{
		Vendors:          vendors,
		SchedulableItems: items,
		Pickups:          pickups,
		PopulatedPickups: populated,
	}, nil
}

func (service *PickupService) resolveItemRef(ctx context.Context, itemsByID map[uuid.UUID]*item.Item, itemID uuid.UUID) inbound.ItemRef {
	if it, ok := itemsByID[itemID]; ok {
		return inbound.ItemRef{ID: it.ID, Name: it.Name, PickupAddress: it.PickupAddress}
	}

	// Items outside the user's schedulable window (deleted, or re-owned)
	// still need a name for old pickups
	it, err := service.itemRepo.GetByID(ctx, itemID)
	if err != nil {
		return inbound.ItemRef{ID: itemID, Name: "Unknown Item"}
	}
	return inbound.ItemRef{ID: it.ID, Name: it.Name, PickupAddress: it.PickupAddress}
}
