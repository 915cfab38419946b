package app

import (
	"context"
	"errors"

	"ewaste-lifecycle-service/internal/domain/directory"
	"ewaste-lifecycle-service/internal/domain/shared"
	"ewaste-lifecycle-service/internal/ports/outbound"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// DirectoryService implements counterparty resolution and account lookups
// across the Vendor and User collections
type DirectoryService struct {
	vendorRepo outbound.VendorRepository
	userRepo   outbound.UserRepository
	logger     zerolog.Logger
}

type DirectoryServiceParams struct {
	VendorRepo outbound.VendorRepository
	UserRepo   outbound.UserRepository
	Logger     zerolog.Logger
}

// NewDirectoryService creates a new directory service
func NewDirectoryService(params DirectoryServiceParams) *DirectoryService {
	return &DirectoryService{
		vendorRepo: params.VendorRepo,
		userRepo:   params.UserRepo,
		logger:     params.Logger.With().Str("component", "directory_service").Logger(),
	}
}

// ResolveCounterparty resolves a vendor id through the lookup chain:
// standalone Vendor record first, then a vendor/admin-role User account,
// then unknown. Vendors may exist as either, so neither collection is the
// single source of truth.
func (service *DirectoryService) ResolveCounterparty(ctx context.Context, vendorID uuid.UUID) (directory.Counterparty, error) {
	v, err := service.vendorRepo.GetByID(ctx, vendorID)
	if err == nil {
		return directory.Counterparty{Kind: directory.KindVendor, Vendor: v}, nil
	}
	if !errors.Is(err, shared.ErrVendorNotFound) {
		service.logger.Error().Err(err).Str("vendor_id", vendorID.String()).Msg("Vendor lookup failed")
		return directory.Counterparty{Kind: directory.KindUnknown}, err
	}

	u, err := service.userRepo.GetByID(ctx, vendorID)
	if err == nil {
		if u.CanActAsVendor() {
			return directory.Counterparty{Kind: directory.KindVendorUser, User: u}, nil
		}
		service.logger.Debug().
			Str("vendor_id", vendorID.String()).
			Str("role", string(u.Role)).
			Msg("User exists but cannot act as vendor")
		return directory.Counterparty{Kind: directory.KindUnknown}, nil
	}
	if !errors.Is(err, shared.ErrUserNotFound) {
		service.logger.Error().Err(err).Str("vendor_id", vendorID.String()).Msg("User lookup failed")
		return directory.Counterparty{Kind: directory.KindUnknown}, err
	}

	return directory.Counterparty{Kind: directory.KindUnknown}, nil
}

// ResolveVendorName returns the display name for a vendor id, falling back
// to directory.UnknownVendorName when the id matches neither collection
func (service *DirectoryService) ResolveVendorName(ctx context.Context, vendorID uuid.UUID) (string, error) {
	counterparty, err := service.ResolveCounterparty(ctx, vendorID)
	if err != nil {
		return "", err
	}
	return counterparty.DisplayName(), nil
}

// GetUser retrieves a user by ID
func (service *DirectoryService) GetUser(ctx context.Context, userID uuid.UUID) (*directory.User, error) {
	return service.userRepo.GetByID(ctx, userID)
}

// ListUsersByRole retrieves users with the given role after validating it
func (service *DirectoryService) ListUsersByRole(ctx context.Context, role string) ([]*directory.User, error) {
	if !directory.ValidRole(role) {
		return nil, shared.ErrInvalidRole
	}
	return service.userRepo.ListByRole(ctx, directory.Role(role))
}

// ListVendors retrieves all standalone vendor entries sorted by name
func (service *DirectoryService) ListVendors(ctx context.Context) ([]*directory.Vendor, error) {
	return service.vendorRepo.List(ctx)
}
