package app

import (
	"context"
	"sync"

	"ewaste-lifecycle-service/internal/domain/bid"
	"ewaste-lifecycle-service/internal/domain/directory"
	"ewaste-lifecycle-service/internal/domain/item"
	"ewaste-lifecycle-service/internal/domain/pickup"
	"ewaste-lifecycle-service/internal/domain/shared"

	"github.com/google/uuid"
)

// In-memory repository fakes shared by the service tests in this package.

type fakeItemRepo struct {
	mu        sync.Mutex
	items     map[uuid.UUID]*item.Item
	updateErr error
}

func newFakeItemRepo() *fakeItemRepo {
	return &fakeItemRepo{items: make(map[uuid.UUID]*item.Item)}
}

func (r *fakeItemRepo) Create(ctx context.Context, it *item.Item) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[it.ID] = it
	return nil
}

func (r *fakeItemRepo) GetByID(ctx context.Context, id uuid.UUID) (*item.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	it, ok := r.items[id]
	if !ok {
		return nil, shared.ErrItemNotFound
	}
	return it, nil
}

func (r *fakeItemRepo) ListByCreator(ctx context.Context, createdBy string, statuses []item.Status) ([]*item.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*item.Item
	for _, it := range r.items {
		if it.CreatedBy != createdBy {
			continue
		}
		if len(statuses) > 0 {
			match := false
			for _, s := range statuses {
				if it.Status == s {
					match = true
					break
				}
			}
			if !match {
				continue
			}
		}
		out = append(out, it)
	}
	return out, nil
}

func (r *fakeItemRepo) ListExpiredOpenAuctions(ctx context.Context, limit int) ([]*item.Item, error) {
	return nil, nil
}

func (r *fakeItemRepo) Update(ctx context.Context, it *item.Item) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.updateErr != nil {
		err := r.updateErr
		r.updateErr = nil
		return err
	}
	if _, ok := r.items[it.ID]; !ok {
		return shared.ErrItemNotFound
	}
	r.items[it.ID] = it
	return nil
}

func (r *fakeItemRepo) MarkScheduled(ctx context.Context, itemIDs []uuid.UUID, pickupID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, id := range itemIDs {
		if it, ok := r.items[id]; ok {
			it.Status = item.StatusScheduled
			pid := pickupID
			it.PickupID = &pid
		}
	}
	return nil
}

func (r *fakeItemRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return shared.ErrItemNotFound
	}
	delete(r.items, id)
	return nil
}

type fakePickupRepo struct {
	mu        sync.Mutex
	pickups   []*pickup.Pickup
	createErr error
}

func newFakePickupRepo() *fakePickupRepo {
	return &fakePickupRepo{}
}

func (r *fakePickupRepo) CreateUnique(ctx context.Context, p *pickup.Pickup) (bool, *pickup.Pickup, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		err := r.createErr
		r.createErr = nil
		return false, nil, err
	}
	canonical := pickup.CanonicalItemID(p.ItemIDs)
	for _, existing := range r.pickups {
		if pickup.CanonicalItemID(existing.ItemIDs) == canonical {
			return false, existing, nil
		}
	}
	r.pickups = append(r.pickups, p)
	return true, nil, nil
}

func (r *fakePickupRepo) GetByID(ctx context.Context, id uuid.UUID) (*pickup.Pickup, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.pickups {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, shared.ErrPickupNotFound
}

func (r *fakePickupRepo) GetByItemID(ctx context.Context, itemID uuid.UUID) (*pickup.Pickup, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.pickups {
		if p.Contains(itemID) {
			return p, nil
		}
	}
	return nil, shared.ErrPickupNotFound
}

func (r *fakePickupRepo) FindAnyByItemIDs(ctx context.Context, itemIDs []uuid.UUID) (*pickup.Pickup, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.pickups {
		for _, id := range itemIDs {
			if p.Contains(id) {
				return p, nil
			}
		}
	}
	return nil, shared.ErrPickupNotFound
}

func (r *fakePickupRepo) UpdateAddress(ctx context.Context, id uuid.UUID, address, landmark string, lat, lng float64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.pickups {
		if p.ID == id {
			p.SetAddress(address, landmark, lat, lng)
			return nil
		}
	}
	return shared.ErrPickupNotFound
}

func (r *fakePickupRepo) ListByCreator(ctx context.Context, createdBy string) ([]*pickup.Pickup, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*pickup.Pickup
	for _, p := range r.pickups {
		if p.CreatedBy == createdBy {
			out = append(out, p)
		}
	}
	return out, nil
}

type fakeVendorRepo struct {
	vendors map[uuid.UUID]*directory.Vendor
}

func newFakeVendorRepo() *fakeVendorRepo {
	return &fakeVendorRepo{vendors: make(map[uuid.UUID]*directory.Vendor)}
}

func (r *fakeVendorRepo) Create(ctx context.Context, v *directory.Vendor) error {
	r.vendors[v.ID] = v
	return nil
}

func (r *fakeVendorRepo) GetByID(ctx context.Context, id uuid.UUID) (*directory.Vendor, error) {
	v, ok := r.vendors[id]
	if !ok {
		return nil, shared.ErrVendorNotFound
	}
	return v, nil
}

func (r *fakeVendorRepo) List(ctx context.Context) ([]*directory.Vendor, error) {
	out := make([]*directory.Vendor, 0, len(r.vendors))
	for _, v := range r.vendors {
		out = append(out, v)
	}
	return out, nil
}

type fakeUserRepo struct {
	users map[uuid.UUID]*directory.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]*directory.User)}
}

func (r *fakeUserRepo) Create(ctx context.Context, u *directory.User) error {
	r.users[u.ID] = u
	return nil
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*directory.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, shared.ErrUserNotFound
	}
	return u, nil
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*directory.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, shared.ErrUserNotFound
}

func (r *fakeUserRepo) ListByRole(ctx context.Context, role directory.Role) ([]*directory.User, error) {
	var out []*directory.User
	for _, u := range r.users {
		if u.Role == role {
			out = append(out, u)
		}
	}
	return out, nil
}

type fakeBidRepo struct {
	mu       sync.Mutex
	bids     []*bid.Bid
	placeErr error
}

func newFakeBidRepo() *fakeBidRepo {
	return &fakeBidRepo{}
}

func (r *fakeBidRepo) Create(ctx context.Context, b *bid.Bid) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.bids = append(r.bids, b)
	return nil
}

func (r *fakeBidRepo) GetByItemID(ctx context.Context, itemID uuid.UUID) ([]*bid.Bid, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*bid.Bid
	for _, b := range r.bids {
		if b.ItemID == itemID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (r *fakeBidRepo) GetHighestBid(ctx context.Context, itemID uuid.UUID) (*bid.Bid, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var highest *bid.Bid
	for _, b := range r.bids {
		if b.ItemID == itemID && (highest == nil || b.Amount > highest.Amount) {
			highest = b
		}
	}
	if highest == nil {
		return nil, shared.ErrNoBidsFound
	}
	return highest, nil
}

func (r *fakeBidRepo) PlaceBidWithOCC(ctx context.Context, b *bid.Bid, expectedHighestBid float64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.placeErr != nil {
		err := r.placeErr
		r.placeErr = nil
		return err
	}
	r.bids = append(r.bids, b)
	return nil
}
