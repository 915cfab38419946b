package app

import (
	"context"
	"errors"
	"testing"

	"ewaste-lifecycle-service/internal/domain/directory"
	"ewaste-lifecycle-service/internal/domain/shared"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

func newDirectoryFixture() (*fakeVendorRepo, *fakeUserRepo, *DirectoryService) {
	vendors := newFakeVendorRepo()
	users := newFakeUserRepo()
	service := NewDirectoryService(DirectoryServiceParams{
		VendorRepo: vendors,
		UserRepo:   users,
		Logger:     zerolog.Nop(),
	})
	return vendors, users, service
}

func TestResolveCounterpartyVendor(t *testing.T) {
	vendors, _, service := newDirectoryFixture()
	v := &directory.Vendor{ID: uuid.New(), Name: "GreenCycle"}
	vendors.Create(context.Background(), v)

	counterparty, err := service.ResolveCounterparty(context.Background(), v.ID)
	if err != nil {
		t.Fatalf("ResolveCounterparty: %v", err)
	}
	if counterparty.Kind != directory.KindVendor {
		t.Errorf("Kind = %q, want %q", counterparty.Kind, directory.KindVendor)
	}
	if counterparty.DisplayName() != "GreenCycle" {
		t.Errorf("DisplayName() = %q", counterparty.DisplayName())
	}
}

func TestResolveCounterpartyFallsBackToUserCollection(t *testing.T) {
	_, users, service := newDirectoryFixture()
	u := &directory.User{ID: uuid.New(), Name: "Ravi", Role: directory.RoleVendor}
	users.Create(context.Background(), u)

	counterparty, err := service.ResolveCounterparty(context.Background(), u.ID)
	if err != nil {
		t.Fatalf("ResolveCounterparty: %v", err)
	}
	if counterparty.Kind != directory.KindVendorUser {
		t.Errorf("Kind = %q, want %q", counterparty.Kind, directory.KindVendorUser)
	}
	if counterparty.DisplayName() != "Ravi" {
		t.Errorf("DisplayName() = %q, want %q", counterparty.DisplayName(), "Ravi")
	}
}

func TestResolveCounterpartyPlainUserIsUnknown(t *testing.T) {
	_, users, service := newDirectoryFixture()
	u := &directory.User{ID: uuid.New(), Name: "Bob", Role: directory.RoleUser}
	users.Create(context.Background(), u)

	counterparty, err := service.ResolveCounterparty(context.Background(), u.ID)
	if err != nil {
		t.Fatalf("ResolveCounterparty: %v", err)
	}
	if counterparty.Kind != directory.KindUnknown {
		t.Errorf("Kind = %q, want %q", counterparty.Kind, directory.KindUnknown)
	}
}

func TestResolveVendorNameUnknown(t *testing.T) {
	_, _, service := newDirectoryFixture()

	name, err := service.ResolveVendorName(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("ResolveVendorName: %v", err)
	}
	if name != directory.UnknownVendorName {
		t.Errorf("name = %q, want %q", name, directory.UnknownVendorName)
	}
}

func TestListUsersByRole(t *testing.T) {
	_, users, service := newDirectoryFixture()
	users.Create(context.Background(), &directory.User{ID: uuid.New(), Name: "Ravi", Role: directory.RoleVendor})
	users.Create(context.Background(), &directory.User{ID: uuid.New(), Name: "Bob", Role: directory.RoleUser})

	got, err := service.ListUsersByRole(context.Background(), "vendor")
	if err != nil {
		t.Fatalf("ListUsersByRole: %v", err)
	}
	if len(got) != 1 || got[0].Name != "Ravi" {
		t.Errorf("got = %+v", got)
	}
}

func TestListUsersByRoleInvalidRole(t *testing.T) {
	_, _, service := newDirectoryFixture()

	_, err := service.ListUsersByRole(context.Background(), "superuser")
	if !errors.Is(err, shared.ErrInvalidRole) {
		t.Errorf("err = %v, want ErrInvalidRole", err)
	}
}
