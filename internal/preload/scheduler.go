package preload

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"prewarm/internal/clock"
	"prewarm/internal/logging"
)

// SettleFunc receives exactly one terminal outcome per asset.
type SettleFunc func(url string, outcome Outcome)

// Scheduler drives a bounded pool of workers over an ordered asset list.
// It is safe to invoke Preload more than once: the settled set is shared
// across invocations, so assets settled by an earlier call are skipped.
type Scheduler struct {
	loader          Loader
	clk             clock.Clock
	concurrency     int
	perAssetTimeout time.Duration
	logger          *slog.Logger

	mu      sync.Mutex
	settled map[string]Outcome
	claimed map[string]struct{}
}

// NewScheduler constructs a scheduler. concurrency must be positive;
// logger may be nil.
func NewScheduler(loader Loader, clk clock.Clock, concurrency int, perAssetTimeout time.Duration, logger *slog.Logger) *Scheduler {
	if clk == nil {
		clk = clock.Real()
	}
	if concurrency < 1 {
		concurrency = 1
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Scheduler{
		loader:          loader,
		clk:             clk,
		concurrency:     concurrency,
		perAssetTimeout: perAssetTimeout,
		logger:          logging.NewComponentLogger(logger, "preload"),
		settled:         make(map[string]Outcome),
		claimed:         make(map[string]struct{}),
	}
}

// Preload loads every URL in order and returns a channel that closes once
// all of them have settled. URLs already settled or still in flight from a
// previous invocation are excluded up front, so overlapping calls never
// load the same asset twice. An empty remainder resolves immediately with
// zero workers spawned.
func (s *Scheduler) Preload(ctx context.Context, urls []string, onSettled SettleFunc) <-chan struct{} {
	done := make(chan struct{})

	pending := s.pendingOf(urls)
	if len(pending) == 0 {
		close(done)
		return done
	}

	workers := s.concurrency
	if workers > len(pending) {
		workers = len(pending)
	}

	// Workers claim ascending indices from a shared cursor. Settlement
	// order follows network/timer completion, not submission order.
	var cursor atomic.Int64
	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			for {
				idx := cursor.Add(1) - 1
				if idx >= int64(len(pending)) {
					return
				}
				s.loadOne(ctx, pending[idx], onSettled)
			}
		}()
	}

	go func() {
		wg.Wait()
		close(done)
	}()
	return done
}

// SettledSet returns a copy of the URLs that have settled so far.
func (s *Scheduler) SettledSet() map[string]Outcome {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := make(map[string]Outcome, len(s.settled))
	for url, outcome := range s.settled {
		copied[url] = outcome
	}
	return copied
}

// pendingOf filters the request down to URLs this invocation owns and
// marks them claimed in the same critical section, so a concurrent call
// cannot pick them up again while they are in flight.
func (s *Scheduler) pendingOf(urls []string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	pending := make([]string, 0, len(urls))
	for _, url := range urls {
		if _, ok := s.settled[url]; ok {
			continue
		}
		if _, ok := s.claimed[url]; ok {
			continue
		}
		s.claimed[url] = struct{}{}
		pending = append(pending, url)
	}
	return pending
}

// loadOne blocks until the asset reaches a terminal signal: native
// completion, the per-asset timer, or context cancellation. The timer does
// not cancel the underlying load; a late native result is simply ignored.
func (s *Scheduler) loadOne(ctx context.Context, url string, onSettled SettleFunc) {
	result := make(chan error, 1)
	go func() {
		result <- s.loader.Load(ctx, url)
	}()

	var outcome Outcome
	select {
	case err := <-result:
		if err != nil {
			outcome = OutcomeErrored
			s.logger.Debug("asset load failed",
				logging.String(logging.FieldAsset, url),
				logging.Error(err),
			)
		} else {
			outcome = OutcomeLoaded
		}
	case <-s.clk.After(s.perAssetTimeout):
		outcome = OutcomeTimedOut
		s.logger.Debug("asset load timed out",
			logging.String(logging.FieldAsset, url),
			logging.Duration("budget", s.perAssetTimeout),
		)
	case <-ctx.Done():
		outcome = OutcomeErrored
	}

	s.settle(url, outcome, onSettled)
}

// settle records the outcome and fires the callback at most once per URL,
// even if multiple terminal signals arrive concurrently.
func (s *Scheduler) settle(url string, outcome Outcome, onSettled SettleFunc) {
	s.mu.Lock()
	if _, ok := s.settled[url]; ok {
		s.mu.Unlock()
		return
	}
	s.settled[url] = outcome
	s.mu.Unlock()

	if onSettled != nil {
		onSettled(url, outcome)
	}
}
