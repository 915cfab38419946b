package directory

import (
	"time"

	"github.com/google/uuid"
)

// Role represents a platform account role
type Role string

const (
	RoleUser   Role = "user"
	RoleVendor Role = "vendor"
	RoleAdmin  Role = "admin"
)

// ValidRole returns true for a recognized role value
func ValidRole(r string) bool {
	switch Role(r) {
	case RoleUser, RoleVendor, RoleAdmin:
		return true
	}
	return false
}

// Vendor is a standalone directory entry for a pickup counterparty
type Vendor struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Contact   string    `json:"contact"`
	Certified bool      `json:"certified"`
	CreatedAt time.Time `json:"createdAt"`
}

// User is the authoritative account record. Vendor-role users double as
// pickup counterparties alongside standalone Vendor entries.
type User struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	Contact      string    `json:"contact,omitempty"`
	Certified    bool      `json:"certified"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// CanActAsVendor returns true if the account may appear as a pickup
// counterparty
func (u *User) CanActAsVendor() bool {
	return u.Role == RoleVendor || u.Role == RoleAdmin
}

// IsAdmin returns true for admin accounts
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// UnknownVendorName is the display name when a counterparty id resolves in
// neither collection
const UnknownVendorName = "Unknown Vendor"

// CounterpartyKind identifies which collection a counterparty id resolved in
type CounterpartyKind string

const (
	KindVendor     CounterpartyKind = "vendor"
	KindVendorUser CounterpartyKind = "vendor_user"
	KindUnknown    CounterpartyKind = "unknown"
)

// Counterparty is the result of resolving a pickup's vendorId across the
// Vendor collection and the vendor/admin-role slice of the User collection.
// Callers must not assume a single source of truth for counterparty ids.
type Counterparty struct {
	Kind   CounterpartyKind
	Vendor *Vendor
	User   *User
}

// DisplayName returns the resolved name, or UnknownVendorName when the id
// matched neither collection
func (c Counterparty) DisplayName() string {
	switch c.Kind {
	case KindVendor:
		return c.Vendor.Name
	case KindVendorUser:
		return c.User.Name
	default:
		return UnknownVendorName
	}
}
