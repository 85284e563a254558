package journal

import "time"

// SessionRecord is one orchestration run as persisted.
type SessionRecord struct {
	ID           string
	StartedAt    time.Time
	FinishedAt   *time.Time
	PerfMode     string
	Bot          bool
	TotalAssets  int
	LoadedAssets int
	Phase        string
	Forced       bool
}

// SettlementRecord is the terminal outcome of one asset in one session.
type SettlementRecord struct {
	SessionID string
	URL       string
	Outcome   string
	ElapsedMs int64
	CreatedAt time.Time
}
