package orchestrator

// Phase is the session lifecycle position. Phases only advance; the
// watchdog's forced-ready flag is orthogonal and may overlay any phase.
type Phase int

const (
	PhaseInit Phase = iota
	PhaseDiscovering
	PhaseBlockingPreload
	PhaseForegroundReady
	PhaseBackgroundFill
	PhaseDone
)

func (p Phase) String() string {
	switch p {
	case PhaseInit:
		return "init"
	case PhaseDiscovering:
		return "discovering"
	case PhaseBlockingPreload:
		return "blocking_preload"
	case PhaseForegroundReady:
		return "foreground_ready"
	case PhaseBackgroundFill:
		return "background_fill"
	case PhaseDone:
		return "done"
	default:
		return "unknown"
	}
}

func phaseLabel(p Phase) string {
	switch p {
	case PhaseDiscovering:
		return "Scanning for imagery"
	case PhaseBlockingPreload:
		return "Warming critical assets"
	case PhaseForegroundReady:
		return "Finishing touches"
	case PhaseBackgroundFill:
		return "Filling in the background"
	case PhaseDone:
		return "Ready"
	default:
		return "Starting"
	}
}

// forcedLabel is shown when the watchdog forces readiness.
const forcedLabel = "Ready (gave up waiting on slow assets)"
