package pickup

import (
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// DefaultLandmark is the placeholder stored when a landmark is blank.
// The original intake form requires the field, so blank input is persisted
// as this literal rather than as an empty string.
const DefaultLandmark = "N/A"

// Pickup represents one scheduled collection event for one or more items
type Pickup struct {
	ID       uuid.UUID   `json:"id"`
	Date     string      `json:"date"`
	VendorID uuid.UUID   `json:"vendorId"`
	ItemIDs  []uuid.UUID `json:"itemIds"`
	Notes    string      `json:"notes"`

	// Address fields copied from the item at the time the address is
	// provided, so pickup cards can render a location without an item lookup
	Address   string  `json:"address,omitempty"`
	Landmark  string  `json:"landmark,omitempty"`
	Latitude  float64 `json:"latitude,omitempty"`
	Longitude float64 `json:"longitude,omitempty"`

	CreatedBy string    `json:"createdBy"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// HasAddress returns true once address fields have been filled in
func (p *Pickup) HasAddress() bool {
	return p.Address != ""
}

// Contains returns true if the pickup covers the given item
func (p *Pickup) Contains(itemID uuid.UUID) bool {
	for _, id := range p.ItemIDs {
		if id == itemID {
			return true
		}
	}
	return false
}

// SetAddress backfills the copied address fields
func (p *Pickup) SetAddress(address, landmark string, lat, lng float64) {
	p.Address = address
	p.Landmark = landmark
	p.Latitude = lat
	p.Longitude = lng
	p.UpdatedAt = time.Now()
}

// CanonicalItemID returns the stable key for an item group: the lowest item
// id in string order. A unique index on this key makes pickup creation for
// the same group converge on a single row under concurrent submissions.
func CanonicalItemID(itemIDs []uuid.UUID) uuid.UUID {
	ids := make([]string, len(itemIDs))
	for i, id := range itemIDs {
		ids[i] = id.String()
	}
	sort.Strings(ids)
	return uuid.MustParse(ids[0])
}

// NormalizeLandmark trims the landmark and substitutes the placeholder for
// blank input
func NormalizeLandmark(s string) string {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return DefaultLandmark
	}
	return trimmed
}

// ScheduledDate computes the pickup date as a calendar date string,
// offsetDays from now. Local calendar fields are used deliberately:
// slicing a UTC timestamp can land on the wrong day for non-UTC users.
func ScheduledDate(now time.Time, offsetDays int) string {
	return now.AddDate(0, 0, offsetDays).Format("2006-01-02")
}

// WinnerNotes composes the note string for a pickup created on behalf of an
// auction winner. The amount is printed as a plain decimal; %v would switch
// large float64 values to scientific notation.
func WinnerNotes(highestBid float64) string {
	if highestBid > 0 {
		return "Pickup for auction winner. Final bid: ₹" + strconv.FormatFloat(highestBid, 'f', -1, 64)
	}
	return "Pickup for auction winner."
}
