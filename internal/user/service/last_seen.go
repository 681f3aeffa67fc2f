package service

import (
	"context"
	"sync"
	"time"

	"github.com/trandrew/microblog/internal/common/clock"
	"github.com/trandrew/microblog/internal/common/constants"
	"github.com/trandrew/microblog/internal/common/logger"
	"github.com/trandrew/microblog/internal/common/resilience"
	"github.com/trandrew/microblog/internal/observability/metrics"
	"github.com/trandrew/microblog/internal/user/domain"
	userrepo "github.com/trandrew/microblog/internal/user/repository"
)

// LastSeenUpdater is a write-behind buffer for last_seen: callers enqueue,
// a single goroutine batches the rows into one UPDATE. Updates are
// best-effort and never block the request path; the GREATEST clause in the
// store keeps out-of-order flushes monotonic.
type LastSeenUpdater struct {
	ctx            context.Context
	cancel         context.CancelFunc
	repo           userrepo.Repository
	log            *logger.Logger
	circuitBreaker *resilience.CircuitBreaker
	clock          clock.Clock
	updateInterval time.Duration
	queue          chan domain.ID
	lastSeenCache  map[domain.ID]time.Time
	mu             sync.Mutex
	wg             sync.WaitGroup
}

func NewLastSeenUpdater(ctx context.Context, repo userrepo.Repository, log *logger.Logger, updateInterval time.Duration, circuitBreaker *resilience.CircuitBreaker, clock clock.Clock) *LastSeenUpdater {
	updateCtx, cancel := context.WithCancel(ctx)
	updater := &LastSeenUpdater{
		ctx:            updateCtx,
		cancel:         cancel,
		repo:           repo,
		log:            log,
		circuitBreaker: circuitBreaker,
		clock:          clock,
		updateInterval: updateInterval,
		queue:          make(chan domain.ID, constants.LastSeenQueueSize),
		lastSeenCache:  make(map[domain.ID]time.Time),
	}

	updater.wg.Add(1)
	go updater.run()

	return updater
}

func (u *LastSeenUpdater) Enqueue(userID domain.ID) {
	now := u.clock.Now()

	u.mu.Lock()
	if last, ok := u.lastSeenCache[userID]; ok && now.Sub(last) < u.updateInterval {
		u.mu.Unlock()
		return
	}
	u.lastSeenCache[userID] = now
	u.mu.Unlock()

	select {
	case u.queue <- userID:
	default:
		metrics.LastSeenDroppedTotal.Inc()
		u.log.WithFields(context.Background(), logger.Fields{
			"user_id": int64(userID),
			"action":  "last_seen_enqueue_dropped",
		}).Warn("last seen queue is full, dropping update")
	}
}

// Stop drains the queue and flushes whatever is pending.
func (u *LastSeenUpdater) Stop() {
	u.cancel()
	u.wg.Wait()
}

func (u *LastSeenUpdater) run() {
	defer u.wg.Done()

	ticker := time.NewTicker(constants.LastSeenFlushEvery)
	defer ticker.Stop()

	pending := make(map[domain.ID]struct{})

	for {
		select {
		case <-u.ctx.Done():
			for {
				select {
				case userID := <-u.queue:
					pending[userID] = struct{}{}
				default:
					u.flush(pending)
					return
				}
			}
		case userID := <-u.queue:
			pending[userID] = struct{}{}
			if len(pending) >= constants.LastSeenBatchSize {
				u.flush(pending)
			}
		case <-ticker.C:
			u.flush(pending)
		}
	}
}

func (u *LastSeenUpdater) flush(pending map[domain.ID]struct{}) {
	if len(pending) == 0 {
		return
	}

	ids := make([]domain.ID, 0, len(pending))
	for id := range pending {
		ids = append(ids, id)
	}

	ctx, cancel := context.WithTimeout(context.Background(), constants.LastSeenUpdateTimeout)
	defer cancel()

	seenAt := u.clock.Now()

	var err error
	if u.circuitBreaker != nil {
		err = u.circuitBreaker.CallWithFallback(ctx, func(callCtx context.Context) error {
			return u.repo.UpdateLastSeenBatch(callCtx, ids, seenAt)
		}, func() error {
			u.log.WithFields(ctx, logger.Fields{
				"count":  len(ids),
				"action": "last_seen_batch_skipped",
			}).Debug("last_seen update skipped: circuit breaker is open")
			return nil
		})
	} else {
		err = u.repo.UpdateLastSeenBatch(ctx, ids, seenAt)
	}

	if err != nil {
		u.log.WithFields(ctx, logger.Fields{
			"count":  len(ids),
			"action": "last_seen_batch_failed",
		}).Warnf("failed to batch update last_seen: %v", err)
	} else {
		metrics.LastSeenUpdatesTotal.Add(float64(len(ids)))
	}

	for id := range pending {
		delete(pending, id)
	}
}
