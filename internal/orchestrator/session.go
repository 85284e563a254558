package orchestrator

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"prewarm/internal/assets"
	"prewarm/internal/clock"
	"prewarm/internal/config"
	"prewarm/internal/content"
	"prewarm/internal/journal"
	"prewarm/internal/logging"
	"prewarm/internal/preload"
	"prewarm/internal/profile"
)

// Options carries the session dependencies. Config is required; every
// other field has a working default.
type Options struct {
	Config  *config.Config
	Loader  preload.Loader
	Clock   clock.Clock
	Journal *journal.Store
	Logger  *slog.Logger
}

// Session runs one preload orchestration from discovery to readiness. A
// session is single-use: Run may be called more than once but only the
// first call does work.
type Session struct {
	id       string
	cfg      *config.Config
	prof     profile.Profile
	clk      clock.Clock
	loader   preload.Loader
	journal  *journal.Store
	logger   *slog.Logger
	reporter *Reporter
	sched    *preload.Scheduler

	mu        sync.Mutex
	started   bool
	startedAt time.Time
	done      chan struct{}
}

// NewSession builds a session for one classified client.
func NewSession(prof profile.Profile, opts Options) (*Session, error) {
	if opts.Config == nil {
		return nil, Wrap(ErrConfiguration, "orchestrator", "new_session", "config is required", nil)
	}
	clk := opts.Clock
	if clk == nil {
		clk = clock.Real()
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.NewNop()
	}
	loader := opts.Loader
	if loader == nil {
		loader = preload.NewHTTPLoader(opts.Config.Content.SiteOrigin, opts.Config.PerAssetTimeout())
	}

	sess := &Session{
		id:       uuid.NewString(),
		cfg:      opts.Config,
		prof:     prof,
		clk:      clk,
		loader:   loader,
		journal:  opts.Journal,
		logger:   logging.NewComponentLogger(logger, "orchestrator"),
		reporter: NewReporter(),
		done:     make(chan struct{}),
	}
	sess.sched = preload.NewScheduler(
		loader,
		clk,
		opts.Config.Preload.MaxParallelWorkers,
		opts.Config.PerAssetTimeout(),
		logger,
	)
	return sess, nil
}

// ID returns the session identifier used in logs and the journal.
func (s *Session) ID() string { return s.id }

// Reporter exposes the observable session state.
func (s *Session) Reporter() *Reporter { return s.reporter }

// Done closes once the session has reached its terminal phase. The
// watchdog may declare readiness earlier; Done tracks actual settlement.
func (s *Session) Done() <-chan struct{} { return s.done }

// Close tears the session down from the consumer side. In-flight loads
// keep settling internally but no longer mutate observable state.
func (s *Session) Close() {
	s.reporter.Close()
}

// Run drives the session to completion: discovery, the blocking race
// against the foreground deadline, then background fill. It blocks until
// every discovered asset has settled or ctx is cancelled. Repeat calls
// return immediately.
func (s *Session) Run(ctx context.Context, manifest *content.Manifest) error {
	s.mu.Lock()
	if s.started {
		s.mu.Unlock()
		return nil
	}
	s.started = true
	s.startedAt = s.clk.Now()
	s.mu.Unlock()

	ctx = logging.WithSessionID(ctx, s.id)
	logger := logging.WithContext(ctx, s.logger)

	// The watchdog is armed before any other work so a stall anywhere in
	// the pipeline still produces a ready page.
	go s.watchdog(logger)

	s.journalStart()

	s.reporter.advancePhase(PhaseDiscovering)
	sets := assets.Discover(manifest, s.prof, s.cfg)
	s.reporter.fixTotal(len(sets.Extended))
	s.journalProgress(PhaseDiscovering, len(sets.Extended))
	logger.Info("asset discovery complete",
		logging.String(logging.FieldProfile, s.prof.String()),
		logging.Int("critical", len(sets.Critical)),
		logging.Int("total", len(sets.Extended)),
	)

	s.reporter.advancePhase(PhaseBlockingPreload)
	criticalDone := s.sched.Preload(ctx, sets.Critical, s.onSettled)

	deadline := s.cfg.BlockingDeadline(s.prof.Lite())
	select {
	case <-criticalDone:
		logger.Info("critical assets settled within budget",
			logging.Duration("budget", deadline),
		)
	case <-s.clk.After(deadline):
		logger.Info("blocking deadline elapsed, releasing foreground",
			logging.Duration("budget", deadline),
		)
	case <-ctx.Done():
	}

	s.reporter.advancePhase(PhaseForegroundReady)
	go func() {
		<-s.clk.After(s.cfg.GraceDelay())
		s.reporter.finishLoading()
	}()

	if s.prof.Lite() {
		// Lite sessions have no background remainder; wait out any
		// stragglers from the blocking phase and finish.
		<-criticalDone
		s.finish(logger)
		return ctx.Err()
	}

	s.reporter.advancePhase(PhaseBackgroundFill)
	backgroundDone := s.sched.Preload(ctx, sets.Extended, s.onSettled)
	<-backgroundDone
	<-criticalDone

	s.finish(logger)
	return ctx.Err()
}

func (s *Session) finish(logger *slog.Logger) {
	s.reporter.advancePhase(PhaseDone)
	snap := s.reporter.Snapshot()
	s.journalFinish(snap)
	logger.Info("session complete",
		logging.Int("loaded", snap.Loaded),
		logging.Int("total", snap.Total),
		logging.Bool("forced", snap.Forced),
		logging.Duration("elapsed", s.clk.Now().Sub(s.startedAt)),
	)
	close(s.done)
}

// watchdog declares readiness unconditionally once the total budget is
// spent, regardless of which phase the session is stuck in.
func (s *Session) watchdog(logger *slog.Logger) {
	select {
	case <-s.clk.After(s.cfg.TotalDeadline()):
		if s.reporter.forceDone() {
			logger.Warn("watchdog forced readiness",
				logging.String(logging.FieldEventType, "watchdog_forced"),
				logging.Duration("budget", s.cfg.TotalDeadline()),
				logging.String(logging.FieldErrorHint, "raise total_deadline_ms or investigate slow asset hosts"),
			)
			s.journalProgressSnapshot()
		}
	case <-s.done:
	}
}

func (s *Session) onSettled(url string, outcome preload.Outcome) {
	s.reporter.recordSettlement()
	if s.journal == nil {
		return
	}
	elapsed := s.clk.Now().Sub(s.startedAt)
	if err := s.journal.RecordSettlement(context.Background(), s.id, url, string(outcome), elapsed, time.Now()); err != nil {
		s.logger.Warn("journal settlement write failed",
			logging.String(logging.FieldAsset, url),
			logging.Error(err),
		)
	}
}

// Journal writes are best-effort: a failed write degrades reporting, not
// the preload itself.

func (s *Session) journalStart() {
	if s.journal == nil {
		return
	}
	rec := journal.SessionRecord{
		ID:        s.id,
		StartedAt: time.Now(),
		PerfMode:  string(s.prof.PerfMode),
		Bot:       s.prof.IsBot,
		Phase:     PhaseInit.String(),
	}
	if err := s.journal.CreateSession(context.Background(), rec); err != nil {
		s.logger.Warn("journal session create failed", logging.Error(err))
	}
}

func (s *Session) journalProgress(phase Phase, total int) {
	if s.journal == nil {
		return
	}
	snap := s.reporter.Snapshot()
	if err := s.journal.UpdateSession(context.Background(), s.id, phase.String(), total, snap.Loaded, snap.Forced); err != nil {
		s.logger.Warn("journal session update failed", logging.Error(err))
	}
}

func (s *Session) journalProgressSnapshot() {
	if s.journal == nil {
		return
	}
	snap := s.reporter.Snapshot()
	if err := s.journal.UpdateSession(context.Background(), s.id, snap.Phase.String(), snap.Total, snap.Loaded, snap.Forced); err != nil {
		s.logger.Warn("journal session update failed", logging.Error(err))
	}
}

func (s *Session) journalFinish(snap Snapshot) {
	if s.journal == nil {
		return
	}
	if err := s.journal.FinishSession(context.Background(), s.id, snap.Phase.String(), snap.Loaded, snap.Forced, time.Now()); err != nil {
		s.logger.Warn("journal session finish failed", logging.Error(err))
	}
}
