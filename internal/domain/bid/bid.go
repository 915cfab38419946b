package bid

import (
	"time"

	"github.com/google/uuid"
)

// Status represents the status of a bid
type Status string

const (
	StatusAccepted Status = "accepted"
	StatusRejected Status = "rejected"
)

// Bid represents a bid placed on an item's auction. The bidder may be a
// standalone vendor record or a vendor-role user account.
type Bid struct {
	ID        uuid.UUID `json:"id"`
	ItemID    uuid.UUID `json:"itemId"`
	BidderID  uuid.UUID `json:"bidderId"`
	Amount    float64   `json:"amount"`
	Status    Status    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Accept marks the bid as accepted
func (b *Bid) Accept() {
	b.Status = StatusAccepted
	b.UpdatedAt = time.Now()
}
