package scheduler

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"ewaste-lifecycle-service/internal/config"
	"ewaste-lifecycle-service/internal/domain/item"
	"ewaste-lifecycle-service/internal/domain/shared"
	"ewaste-lifecycle-service/internal/ports/outbound"

	"github.com/alitto/pond"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// expirationsKey is the Redis sorted set holding item ids scored by auction
// end time
const expirationsKey = "auction:expirations"

// AuctionCloseService finalizes an item's auction when its bidding end date
// passes
type AuctionCloseService interface {
	CloseExpiredAuction(ctx context.Context, itemID uuid.UUID) (*item.Item, error)
}

// AuctionScheduler auto-closes item auctions at their bidding end date. End
// times live in a Redis sorted set so scheduled closes survive restarts, and
// expired entries are drained on a fixed tick.
type AuctionScheduler struct {
	redis    *redis.Client
	auctions AuctionCloseService
	itemRepo outbound.ItemRepository
	pool     *pond.WorkerPool
	logger   zerolog.Logger
	ctx      context.Context
	cancel   context.CancelFunc
	wg       sync.WaitGroup
}

type AuctionSchedulerParams struct {
	RedisClient *redis.Client
	Auctions    AuctionCloseService
	ItemRepo    outbound.ItemRepository
	Logger      zerolog.Logger
}

// NewAuctionScheduler creates a new auction scheduler
func NewAuctionScheduler(params AuctionSchedulerParams) *AuctionScheduler {
	ctx, cancel := context.WithCancel(context.Background())

	return &AuctionScheduler{
		redis:    params.RedisClient,
		auctions: params.Auctions,
		itemRepo: params.ItemRepo,
		pool:     pond.New(config.SchedulerMaxWorkers, config.SchedulerMaxCapacity),
		logger:   params.Logger.With().Str("component", "auction_scheduler").Logger(),
		ctx:      ctx,
		cancel:   cancel,
	}
}

// ScheduleItem adds an item to the expiration schedule
func (s *AuctionScheduler) ScheduleItem(itemID uuid.UUID, endDate time.Time) error {
	score := float64(endDate.Unix())

	err := s.redis.ZAdd(s.ctx, expirationsKey, redis.Z{
		Score:  score,
		Member: itemID.String(),
	}).Err()

	if err != nil {
		s.logger.Error().Err(err).Str("item_id", itemID.String()).Msg("Failed to schedule item")
		return fmt.Errorf("failed to schedule item: %w", err)
	}

	s.logger.Info().
		Str("item_id", itemID.String()).
		Time("end_date", endDate).
		Msg("Item scheduled for auction expiry")

	return nil
}

// Start begins the scheduler loop
func (s *AuctionScheduler) Start() {
	s.logger.Info().Msg("Starting auction scheduler")

	s.wg.Add(1)
	go s.schedulerLoop()
}

// Stop gracefully stops the scheduler, draining in-flight closes
func (s *AuctionScheduler) Stop() {
	s.logger.Info().Msg("Stopping auction scheduler")
	s.cancel()
	s.wg.Wait()
	s.pool.StopAndWait()
}

// schedulerLoop runs the main scheduling loop
func (s *AuctionScheduler) schedulerLoop() {
	defer s.wg.Done()

	ticker := time.NewTicker(1 * time.Second)
	defer ticker.Stop()

	// Slow sweep picks up auctions the sorted set lost (flushed Redis,
	// entries added before a crash)
	reconcile := time.NewTicker(1 * time.Minute)
	defer reconcile.Stop()

	for {
		select {
		case <-ticker.C:
			s.checkExpiredAuctions()
		case <-reconcile.C:
			s.reconcileFromStore()
		case <-s.ctx.Done():
			s.logger.Info().Msg("Scheduler loop stopped")
			return
		}
	}
}

// reconcileFromStore closes expired open auctions the Redis schedule does
// not know about
func (s *AuctionScheduler) reconcileFromStore() {
	items, err := s.itemRepo.ListExpiredOpenAuctions(s.ctx, 10)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to sweep expired auctions from store")
		return
	}

	for _, it := range items {
		itemID := it.ID
		s.pool.Submit(func() {
			s.closeAuction(itemID)
		})
	}
}

// checkExpiredAuctions finds and processes expired auctions
func (s *AuctionScheduler) checkExpiredAuctions() {
	now := time.Now().Unix()

	expiredItems, err := s.redis.ZRangeByScore(s.ctx, expirationsKey, &redis.ZRangeBy{
		Min:   "0",
		Max:   strconv.FormatInt(now, 10),
		Count: 10, // Process max 10 at a time
	}).Result()

	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to get expired auctions")
		return
	}

	if len(expiredItems) > 0 {
		s.logger.Debug().Int("count", len(expiredItems)).Msg("Found expired auctions")
	}

	for _, itemIDStr := range expiredItems {
		itemID, err := uuid.Parse(itemIDStr)
		if err != nil {
			s.logger.Error().Err(err).Str("item_id", itemIDStr).Msg("Invalid item ID in schedule")
			s.redis.ZRem(s.ctx, expirationsKey, itemIDStr)
			continue
		}

		s.pool.Submit(func() {
			s.closeAuction(itemID)
		})
	}
}

// closeAuction finalizes one expired auction and drops it from the schedule
func (s *AuctionScheduler) closeAuction(itemID uuid.UUID) {
	s.logger.Info().Str("item_id", itemID.String()).Msg("Processing auction expiry")

	it, err := s.auctions.CloseExpiredAuction(s.ctx, itemID)
	defer s.redis.ZRem(s.ctx, expirationsKey, itemID.String())

	if err != nil {
		// Owner-initiated closes and deletes race the schedule; both are
		// terminal for the entry, not errors worth alerting on
		if errors.Is(err, shared.ErrAuctionNotOpen) || errors.Is(err, shared.ErrItemNotFound) {
			s.logger.Debug().Err(err).Str("item_id", itemID.String()).Msg("Scheduled auction no longer open")
			return
		}
		s.logger.Error().Err(err).Str("item_id", itemID.String()).Msg("Failed to close expired auction")
		return
	}

	evt := s.logger.Info().Str("item_id", itemID.String())
	if it.WinningBidderID != nil {
		evt = evt.
			Str("winning_bidder_id", it.WinningBidderID.String()).
			Float64("final_bid", it.CurrentHighestBid)
	}
	evt.Msg("Expired auction closed")
}
