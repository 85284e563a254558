package orchestrator

import "sync"

// Snapshot is the externally observable session state, published to the
// rendering layer on every settlement and phase transition.
type Snapshot struct {
	Phase     Phase
	Label     string
	Loaded    int
	Total     int
	IsLoading bool
	Forced    bool
}

// Reporter holds the observable state and fans snapshots out to
// subscribers. All mutation goes through its methods; after Close every
// mutation is a no-op, so torn-down sessions cannot publish.
type Reporter struct {
	mu          sync.Mutex
	active      bool
	totalFixed  bool
	snapshot    Snapshot
	subscribers []chan Snapshot
}

// NewReporter returns a reporter in the initial loading state.
func NewReporter() *Reporter {
	return &Reporter{
		active: true,
		snapshot: Snapshot{
			Phase:     PhaseInit,
			Label:     phaseLabel(PhaseInit),
			IsLoading: true,
		},
	}
}

// Snapshot returns the current state.
func (r *Reporter) Snapshot() Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.snapshot
}

// Subscribe registers a snapshot channel. Delivery is non-blocking and
// latest-wins: a slow consumer sees the freshest state, not every
// intermediate one.
func (r *Reporter) Subscribe() <-chan Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	ch := make(chan Snapshot, 1)
	r.subscribers = append(r.subscribers, ch)
	ch <- r.snapshot
	return ch
}

// Close suppresses all future mutations and publications. In-flight loads
// may still settle internally; their effects are discarded here.
func (r *Reporter) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.active = false
}

// advancePhase moves the phase forward. Backward transitions are ignored,
// which also makes re-entrant starts harmless.
func (r *Reporter) advancePhase(phase Phase) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.active || phase <= r.snapshot.Phase {
		return false
	}
	r.snapshot.Phase = phase
	if !r.snapshot.Forced {
		r.snapshot.Label = phaseLabel(phase)
	}
	if phase == PhaseDone {
		r.snapshot.IsLoading = false
	}
	r.publishLocked()
	return true
}

// fixTotal sets the total exactly once, at the end of discovery.
func (r *Reporter) fixTotal(total int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.active || r.totalFixed {
		return
	}
	r.totalFixed = true
	r.snapshot.Total = total
	r.publishLocked()
}

// recordSettlement advances the loaded counter. The counter is monotonic
// and never exceeds the fixed total.
func (r *Reporter) recordSettlement() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.active {
		return
	}
	if r.snapshot.Loaded < r.snapshot.Total {
		r.snapshot.Loaded++
		r.publishLocked()
	}
}

// finishLoading flips the external loading flag after the grace delay.
func (r *Reporter) finishLoading() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.active || !r.snapshot.IsLoading {
		return
	}
	r.snapshot.IsLoading = false
	r.publishLocked()
}

// forceDone is the watchdog transition: terminal, from any phase short of
// natural completion, never reversed. Counters keep advancing afterward
// but no longer gate readiness.
func (r *Reporter) forceDone() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.active || r.snapshot.Phase == PhaseDone {
		return false
	}
	r.snapshot.IsLoading = false
	r.snapshot.Forced = true
	r.snapshot.Label = forcedLabel
	r.publishLocked()
	return true
}

func (r *Reporter) publishLocked() {
	for _, ch := range r.subscribers {
		select {
		case ch <- r.snapshot:
		default:
			// Replace the stale pending snapshot.
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- r.snapshot:
			default:
			}
		}
	}
}
