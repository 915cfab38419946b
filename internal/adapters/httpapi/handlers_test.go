package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"ewaste-lifecycle-service/internal/domain/bid"
	"ewaste-lifecycle-service/internal/domain/directory"
	"ewaste-lifecycle-service/internal/domain/item"
	"ewaste-lifecycle-service/internal/domain/pickup"
	"ewaste-lifecycle-service/internal/domain/shared"
	"ewaste-lifecycle-service/internal/ports/inbound"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Stub services with overridable behavior per test.

type stubItemService struct {
	reportFn func(ctx context.Context, req inbound.ReportItemRequest) (*item.Item, error)
	getFn    func(ctx context.Context, itemID uuid.UUID) (*item.Item, error)
	listFn   func(ctx context.Context, createdBy string, statuses []item.Status) ([]*item.Item, error)
	deleteFn func(ctx context.Context, itemID uuid.UUID, requesterEmail string) error
}

func (s *stubItemService) ReportItem(ctx context.Context, req inbound.ReportItemRequest) (*item.Item, error) {
	return s.reportFn(ctx, req)
}

func (s *stubItemService) GetItem(ctx context.Context, itemID uuid.UUID) (*item.Item, error) {
	return s.getFn(ctx, itemID)
}

func (s *stubItemService) ListItems(ctx context.Context, createdBy string, statuses []item.Status) ([]*item.Item, error) {
	return s.listFn(ctx, createdBy, statuses)
}

func (s *stubItemService) OpenAuction(ctx context.Context, itemID uuid.UUID, endDate time.Time, requesterEmail string) (*item.Item, error) {
	return nil, nil
}

func (s *stubItemService) DeleteItem(ctx context.Context, itemID uuid.UUID, requesterEmail string) error {
	return s.deleteFn(ctx, itemID, requesterEmail)
}

type stubAuctionService struct {
	closeFn func(ctx context.Context, itemID uuid.UUID, requesterEmail string) (*item.Item, error)
}

func (s *stubAuctionService) CloseAuction(ctx context.Context, itemID uuid.UUID, requesterEmail string) (*item.Item, error) {
	return s.closeFn(ctx, itemID, requesterEmail)
}

type stubBidService struct {
	placeFn func(ctx context.Context, req inbound.PlaceBidRequest) (*bid.Bid, error)
	getFn   func(ctx context.Context, itemID uuid.UUID) ([]*bid.Bid, error)
}

func (s *stubBidService) PlaceBid(ctx context.Context, req inbound.PlaceBidRequest) (*bid.Bid, error) {
	return s.placeFn(ctx, req)
}

func (s *stubBidService) GetBids(ctx context.Context, itemID uuid.UUID) ([]*bid.Bid, error) {
	return s.getFn(ctx, itemID)
}

type stubPickupService struct {
	submitFn   func(ctx context.Context, req inbound.SubmitPickupAddressRequest) (*inbound.SubmitPickupAddressResult, error)
	scheduleFn func(ctx context.Context, req inbound.SchedulePickupRequest) (*inbound.SchedulePickupResult, error)
	overviewFn func(ctx context.Context, userEmail string) (*inbound.SchedulingOverview, error)
}

func (s *stubPickupService) SubmitPickupAddress(ctx context.Context, req inbound.SubmitPickupAddressRequest) (*inbound.SubmitPickupAddressResult, error) {
	return s.submitFn(ctx, req)
}

func (s *stubPickupService) SchedulePickup(ctx context.Context, req inbound.SchedulePickupRequest) (*inbound.SchedulePickupResult, error) {
	return s.scheduleFn(ctx, req)
}

func (s *stubPickupService) SchedulingOverview(ctx context.Context, userEmail string) (*inbound.SchedulingOverview, error) {
	return s.overviewFn(ctx, userEmail)
}

type stubDirectoryService struct {
	getUserFn func(ctx context.Context, userID uuid.UUID) (*directory.User, error)
	listFn    func(ctx context.Context, role string) ([]*directory.User, error)
}

func (s *stubDirectoryService) ResolveCounterparty(ctx context.Context, vendorID uuid.UUID) (directory.Counterparty, error) {
	return directory.Counterparty{Kind: directory.KindUnknown}, nil
}

func (s *stubDirectoryService) ResolveVendorName(ctx context.Context, vendorID uuid.UUID) (string, error) {
	return directory.UnknownVendorName, nil
}

func (s *stubDirectoryService) GetUser(ctx context.Context, userID uuid.UUID) (*directory.User, error) {
	return s.getUserFn(ctx, userID)
}

func (s *stubDirectoryService) ListUsersByRole(ctx context.Context, role string) ([]*directory.User, error) {
	return s.listFn(ctx, role)
}

func (s *stubDirectoryService) ListVendors(ctx context.Context) ([]*directory.Vendor, error) {
	return nil, nil
}

type testServerOptions struct {
	items     *stubItemService
	auctions  *stubAuctionService
	bids      *stubBidService
	pickups   *stubPickupService
	directory *stubDirectoryService
	ping      func(ctx context.Context) error
}

func newTestHandler(opts testServerOptions) http.Handler {
	if opts.ping == nil {
		opts.ping = func(ctx context.Context) error { return nil }
	}
	h := NewHandlers(HandlersParams{
		Items:     opts.items,
		Auctions:  opts.auctions,
		Bids:      opts.bids,
		Pickups:   opts.pickups,
		Directory: opts.directory,
		Ping:      opts.ping,
		Logger:    zerolog.Nop(),
	})
	return InitRoutes(h)
}

func doRequest(t *testing.T, handler http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	handler := newTestHandler(testServerOptions{})

	rec := doRequest(t, handler, http.MethodGet, "/api/health", "")
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
}

func TestHealthDatabaseDown(t *testing.T) {
	handler := newTestHandler(testServerOptions{
		ping: func(ctx context.Context) error { return context.DeadlineExceeded },
	})

	rec := doRequest(t, handler, http.MethodGet, "/api/health", "")
	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", rec.Code)
	}

	var resp errorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if resp.Message != internalErrorMessage {
		t.Errorf("message = %q, want generic internal error", resp.Message)
	}
}

func TestCreateItem(t *testing.T) {
	handler := newTestHandler(testServerOptions{
		items: &stubItemService{
			reportFn: func(ctx context.Context, req inbound.ReportItemRequest) (*item.Item, error) {
				return &item.Item{ID: uuid.New(), Name: req.Name, Status: item.StatusReported}, nil
			},
		},
	})

	rec := doRequest(t, handler, http.MethodPost, "/api/items",
		`{"name":"Dell Latitude","createdBy":"alice@example.com"}`)
	if rec.Code != http.StatusCreated {
		t.Errorf("status = %d, want 201", rec.Code)
	}
}

func TestCreateItemMissingFields(t *testing.T) {
	handler := newTestHandler(testServerOptions{
		items: &stubItemService{
			reportFn: func(ctx context.Context, req inbound.ReportItemRequest) (*item.Item, error) {
				return nil, shared.ErrMissingFields
			},
		},
	})

	rec := doRequest(t, handler, http.MethodPost, "/api/items", `{}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestGetItemNotFound(t *testing.T) {
	handler := newTestHandler(testServerOptions{
		items: &stubItemService{
			getFn: func(ctx context.Context, itemID uuid.UUID) (*item.Item, error) {
				return nil, shared.ErrItemNotFound
			},
		},
	})

	rec := doRequest(t, handler, http.MethodGet, "/api/items?id="+uuid.NewString(), "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}

	var resp errorResponse
	json.Unmarshal(rec.Body.Bytes(), &resp)
	if resp.Message != "Item not found." {
		t.Errorf("message = %q", resp.Message)
	}
}

func TestGetItemsRequiresFilter(t *testing.T) {
	handler := newTestHandler(testServerOptions{items: &stubItemService{}})

	rec := doRequest(t, handler, http.MethodGet, "/api/items", "")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestDeleteItem(t *testing.T) {
	itemID := uuid.New()
	handler := newTestHandler(testServerOptions{
		items: &stubItemService{
			deleteFn: func(ctx context.Context, id uuid.UUID, requesterEmail string) error {
				if id != itemID || requesterEmail != "alice@example.com" {
					t.Errorf("DeleteItem(%v, %q)", id, requesterEmail)
				}
				return nil
			},
		},
	})

	rec := doRequest(t, handler, http.MethodDelete, "/api/items/"+itemID.String()+"?userEmail=alice@example.com", "")
	if rec.Code != http.StatusNoContent {
		t.Errorf("status = %d, want 204", rec.Code)
	}
}

func TestEndAuction(t *testing.T) {
	itemID := uuid.New()
	handler := newTestHandler(testServerOptions{
		auctions: &stubAuctionService{
			closeFn: func(ctx context.Context, id uuid.UUID, requesterEmail string) (*item.Item, error) {
				return &item.Item{ID: id, BiddingStatus: item.BiddingClosed}, nil
			},
		},
	})

	rec := doRequest(t, handler, http.MethodPost, "/api/auctions/end",
		`{"itemId":"`+itemID.String()+`","userEmail":"alice@example.com"}`)
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
}

func TestEndAuctionValidation(t *testing.T) {
	handler := newTestHandler(testServerOptions{auctions: &stubAuctionService{}})

	tests := []struct {
		name string
		body string
	}{
		{"empty body", `{}`},
		{"missing email", `{"itemId":"` + uuid.NewString() + `"}`},
		{"bad item id", `{"itemId":"not-a-uuid","userEmail":"alice@example.com"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(t, handler, http.MethodPost, "/api/auctions/end", tt.body)
			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", rec.Code)
			}
		})
	}
}

func TestEndAuctionUnauthorized(t *testing.T) {
	handler := newTestHandler(testServerOptions{
		auctions: &stubAuctionService{
			closeFn: func(ctx context.Context, id uuid.UUID, requesterEmail string) (*item.Item, error) {
				return nil, shared.ErrUnauthorized
			},
		},
	})

	rec := doRequest(t, handler, http.MethodPost, "/api/auctions/end",
		`{"itemId":"`+uuid.NewString()+`","userEmail":"stranger@example.com"}`)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}

func TestPlaceBid(t *testing.T) {
	handler := newTestHandler(testServerOptions{
		bids: &stubBidService{
			placeFn: func(ctx context.Context, req inbound.PlaceBidRequest) (*bid.Bid, error) {
				return &bid.Bid{ID: uuid.New(), ItemID: req.ItemID, Amount: req.Amount}, nil
			},
		},
	})

	rec := doRequest(t, handler, http.MethodPost, "/api/bids",
		`{"itemId":"`+uuid.NewString()+`","bidderId":"`+uuid.NewString()+`","amount":250}`)
	if rec.Code != http.StatusCreated {
		t.Errorf("status = %d, want 201", rec.Code)
	}
}

func TestPlaceBidTooLow(t *testing.T) {
	handler := newTestHandler(testServerOptions{
		bids: &stubBidService{
			placeFn: func(ctx context.Context, req inbound.PlaceBidRequest) (*bid.Bid, error) {
				return nil, shared.ErrBidAmountTooLow
			},
		},
	})

	rec := doRequest(t, handler, http.MethodPost, "/api/bids",
		`{"itemId":"`+uuid.NewString()+`","bidderId":"`+uuid.NewString()+`","amount":1}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestUpdatePickupAddress(t *testing.T) {
	pickupID := uuid.New()
	handler := newTestHandler(testServerOptions{
		pickups: &stubPickupService{
			submitFn: func(ctx context.Context, req inbound.SubmitPickupAddressRequest) (*inbound.SubmitPickupAddressResult, error) {
				return &inbound.SubmitPickupAddressResult{
					Item:     &item.Item{ID: req.ItemID},
					PickupID: &pickupID,
				}, nil
			},
		},
	})

	rec := doRequest(t, handler, http.MethodPost, "/api/pickups/update-address",
		`{"itemId":"`+uuid.NewString()+`","address":"12 Industrial Estate","landmark":"","lat":12.97,"lng":77.59,"vendorId":"`+uuid.NewString()+`"}`)
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}

	var resp updateAddressResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if !resp.Success {
		t.Error("expected success response")
	}
	if resp.PickupID == nil || *resp.PickupID != pickupID {
		t.Errorf("pickupId = %v, want %v", resp.PickupID, pickupID)
	}
}

func TestUpdatePickupAddressNullPickupID(t *testing.T) {
	handler := newTestHandler(testServerOptions{
		pickups: &stubPickupService{
			submitFn: func(ctx context.Context, req inbound.SubmitPickupAddressRequest) (*inbound.SubmitPickupAddressResult, error) {
				return &inbound.SubmitPickupAddressResult{Item: &item.Item{ID: req.ItemID}}, nil
			},
		},
	})

	rec := doRequest(t, handler, http.MethodPost, "/api/pickups/update-address",
		`{"itemId":"`+uuid.NewString()+`","address":"12 Industrial Estate","landmark":"N/A","lat":0,"lng":0}`)
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}

	var resp map[string]json.RawMessage
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if string(resp["pickupId"]) != "null" {
		t.Errorf("pickupId = %s, want null", resp["pickupId"])
	}
}

func TestUpdatePickupAddressValidation(t *testing.T) {
	handler := newTestHandler(testServerOptions{pickups: &stubPickupService{}})

	tests := []struct {
		name string
		body string
	}{
		{"missing address", `{"itemId":"` + uuid.NewString() + `","landmark":"x","lat":1,"lng":1}`},
		{"missing landmark", `{"itemId":"` + uuid.NewString() + `","address":"a","lat":1,"lng":1}`},
		{"missing coordinates", `{"itemId":"` + uuid.NewString() + `","address":"a","landmark":"x"}`},
		{"bad vendor id", `{"itemId":"` + uuid.NewString() + `","address":"a","landmark":"x","lat":1,"lng":1,"vendorId":"nope"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(t, handler, http.MethodPost, "/api/pickups/update-address", tt.body)
			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", rec.Code)
			}
		})
	}
}

func TestCreateScheduleNewPickup(t *testing.T) {
	handler := newTestHandler(testServerOptions{
		pickups: &stubPickupService{
			scheduleFn: func(ctx context.Context, req inbound.SchedulePickupRequest) (*inbound.SchedulePickupResult, error) {
				return &inbound.SchedulePickupResult{
					Pickup:  &pickup.Pickup{ID: uuid.New(), ItemIDs: req.ItemIDs},
					Created: true,
				}, nil
			},
		},
	})

	rec := doRequest(t, handler, http.MethodPost, "/api/scheduling",
		`{"itemIds":["`+uuid.NewString()+`"],"vendorId":"`+uuid.NewString()+`","createdBy":"alice@example.com"}`)
	if rec.Code != http.StatusCreated {
		t.Errorf("status = %d, want 201", rec.Code)
	}
}

func TestCreateScheduleExistingPickup(t *testing.T) {
	handler := newTestHandler(testServerOptions{
		pickups: &stubPickupService{
			scheduleFn: func(ctx context.Context, req inbound.SchedulePickupRequest) (*inbound.SchedulePickupResult, error) {
				return &inbound.SchedulePickupResult{
					Pickup:  &pickup.Pickup{ID: uuid.New(), ItemIDs: req.ItemIDs},
					Created: false,
				}, nil
			},
		},
	})

	rec := doRequest(t, handler, http.MethodPost, "/api/scheduling",
		`{"itemIds":["`+uuid.NewString()+`"],"vendorId":"`+uuid.NewString()+`","createdBy":"alice@example.com"}`)
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
}

func TestCreateScheduleEmptyItems(t *testing.T) {
	handler := newTestHandler(testServerOptions{pickups: &stubPickupService{}})

	rec := doRequest(t, handler, http.MethodPost, "/api/scheduling",
		`{"itemIds":[],"vendorId":"`+uuid.NewString()+`","createdBy":"alice@example.com"}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}

	var resp errorResponse
	json.Unmarshal(rec.Body.Bytes(), &resp)
	if resp.Message != "Missing required fields: itemIds." {
		t.Errorf("message = %q", resp.Message)
	}
}

func TestGetSchedulingRequiresUserEmail(t *testing.T) {
	handler := newTestHandler(testServerOptions{pickups: &stubPickupService{}})

	rec := doRequest(t, handler, http.MethodGet, "/api/scheduling", "")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestGetUserByID(t *testing.T) {
	userID := uuid.New()
	handler := newTestHandler(testServerOptions{
		directory: &stubDirectoryService{
			getUserFn: func(ctx context.Context, id uuid.UUID) (*directory.User, error) {
				return &directory.User{
					ID:           id,
					Name:         "Ravi",
					Email:        "ravi@example.com",
					PasswordHash: "s3cret-hash",
					Role:         directory.RoleVendor,
				}, nil
			},
		},
	})

	rec := doRequest(t, handler, http.MethodGet, "/api/users?id="+userID.String(), "")
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}

	// The password hash must never appear in a response body
	if strings.Contains(rec.Body.String(), "s3cret-hash") {
		t.Error("response body leaks the password hash")
	}
}

func TestGetUserBadID(t *testing.T) {
	handler := newTestHandler(testServerOptions{directory: &stubDirectoryService{}})

	rec := doRequest(t, handler, http.MethodGet, "/api/users?id=not-a-uuid", "")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestGetUsersRequiresFilter(t *testing.T) {
	handler := newTestHandler(testServerOptions{directory: &stubDirectoryService{}})

	rec := doRequest(t, handler, http.MethodGet, "/api/users", "")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestGetUsersInvalidRole(t *testing.T) {
	handler := newTestHandler(testServerOptions{
		directory: &stubDirectoryService{
			listFn: func(ctx context.Context, role string) ([]*directory.User, error) {
				return nil, shared.ErrInvalidRole
			},
		},
	})

	rec := doRequest(t, handler, http.MethodGet, "/api/users?role=superuser", "")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}

	var resp errorResponse
	json.Unmarshal(rec.Body.Bytes(), &resp)
	if resp.Message != "Invalid role specified: superuser. Valid roles are user, vendor, admin." {
		t.Errorf("message = %q", resp.Message)
	}
}

func TestGetUsersByRole(t *testing.T) {
	handler := newTestHandler(testServerOptions{
		directory: &stubDirectoryService{
			listFn: func(ctx context.Context, role string) ([]*directory.User, error) {
				return []*directory.User{{ID: uuid.New(), Name: "Ravi", Role: directory.RoleVendor}}, nil
			},
		},
	})

	rec := doRequest(t, handler, http.MethodGet, "/api/users?role=vendor", "")
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}

	var users []*directory.User
	if err := json.Unmarshal(rec.Body.Bytes(), &users); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if len(users) != 1 || users[0].Name != "Ravi" {
		t.Errorf("users = %+v", users)
	}
}

func TestInternalErrorsAreGeneric(t *testing.T) {
	handler := newTestHandler(testServerOptions{
		items: &stubItemService{
			getFn: func(ctx context.Context, itemID uuid.UUID) (*item.Item, error) {
				return nil, context.DeadlineExceeded
			},
		},
	})

	rec := doRequest(t, handler, http.MethodGet, "/api/items?id="+uuid.NewString(), "")
	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", rec.Code)
	}

	var resp errorResponse
	json.Unmarshal(rec.Body.Bytes(), &resp)
	if resp.Message != internalErrorMessage {
		t.Errorf("message = %q, want generic internal error", resp.Message)
	}
	if strings.Contains(rec.Body.String(), "deadline") {
		t.Error("response body leaks internal error details")
	}
}
