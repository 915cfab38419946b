package httpapi

import (
	"context"
	"time"

	"ewaste-lifecycle-service/internal/ports/inbound"

	"github.com/rs/zerolog"
)

// requestTimeout bounds each request's database work
const requestTimeout = 5 * time.Second

// Handlers holds the HTTP handlers for the REST API
type Handlers struct {
	items     inbound.ItemService
	auctions  inbound.AuctionService
	bids      inbound.BidService
	pickups   inbound.PickupService
	directory inbound.DirectoryService
	ping      func(ctx context.Context) error
	logger    zerolog.Logger
}

type HandlersParams struct {
	Items     inbound.ItemService
	Auctions  inbound.AuctionService
	Bids      inbound.BidService
	Pickups   inbound.PickupService
	Directory inbound.DirectoryService
	Ping      func(ctx context.Context) error
	Logger    zerolog.Logger
}

// NewHandlers creates the REST API handlers
func NewHandlers(params HandlersParams) *Handlers {
	return &Handlers{
		items:     params.Items,
		auctions:  params.Auctions,
		bids:      params.Bids,
		pickups:   params.Pickups,
		directory: params.Directory,
		ping:      params.Ping,
		logger:    params.Logger.With().Str("component", "http_api").Logger(),
	}
}

// requestContext derives the bounded context every handler works under
func requestContext(parent context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(parent, requestTimeout)
}
