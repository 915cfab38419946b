package db

import (
	"ewaste-lifecycle-service/internal/ports/outbound"
)

// RepositoryFactory creates and manages all database repositories
type RepositoryFactory struct {
	conn *Connection
}

// NewRepositoryFactory creates a new repository factory
func NewRepositoryFactory(conn *Connection) *RepositoryFactory {
	return &RepositoryFactory{conn: conn}
}

// GetItemRepository returns the item repository
func (f *RepositoryFactory) GetItemRepository() outbound.ItemRepository {
	return NewItemRepository(f.conn)
}

// GetPickupRepository returns the pickup repository
func (f *RepositoryFactory) GetPickupRepository() outbound.PickupRepository {
	return NewPickupRepository(f.conn)
}

// GetVendorRepository returns the vendor repository
func (f *RepositoryFactory) GetVendorRepository() outbound.VendorRepository {
	return NewVendorRepository(f.conn)
}

// GetUserRepository returns the user repository
func (f *RepositoryFactory) GetUserRepository() outbound.UserRepository {
	return NewUserRepository(f.conn)
}

// GetBidRepository returns the bid repository
func (f *RepositoryFactory) GetBidRepository() outbound.BidRepository {
	return NewBidRepository(f.conn)
}
