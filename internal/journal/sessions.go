package journal

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
)

const timeLayout = time.RFC3339Nano

// CreateSession inserts a new session row.
func (s *Store) CreateSession(ctx context.Context, rec SessionRecord) error {
	if strings.TrimSpace(rec.ID) == "" {
		return errors.New("session id is required")
	}
	return s.execWithRetry(ctx,
		`INSERT INTO sessions (id, started_at, perf_mode, bot, total_assets, loaded_assets, phase, forced)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID,
		rec.StartedAt.UTC().Format(timeLayout),
		rec.PerfMode,
		boolToInt(rec.Bot),
		rec.TotalAssets,
		rec.LoadedAssets,
		rec.Phase,
		boolToInt(rec.Forced),
	)
}

// UpdateSession refreshes the mutable fields of a session row.
func (s *Store) UpdateSession(ctx context.Context, id, phase string, totalAssets, loadedAssets int, forced bool) error {
	return s.execWithRetry(ctx,
		`UPDATE sessions SET phase = ?, total_assets = ?, loaded_assets = ?, forced = ? WHERE id = ?`,
		phase, totalAssets, loadedAssets, boolToInt(forced), id,
	)
}

// FinishSession stamps the session terminal state.
func (s *Store) FinishSession(ctx context.Context, id, phase string, loadedAssets int, forced bool, finishedAt time.Time) error {
	return s.execWithRetry(ctx,
		`UPDATE sessions SET phase = ?, loaded_assets = ?, forced = ?, finished_at = ? WHERE id = ?`,
		phase, loadedAssets, boolToInt(forced), finishedAt.UTC().Format(timeLayout), id,
	)
}

// RecordSettlement persists one asset outcome. The unique constraint makes
// a repeat insert for the same session/url pair a no-op, matching the
// scheduler's settle-once guarantee.
func (s *Store) RecordSettlement(ctx context.Context, sessionID, url, outcome string, elapsed time.Duration, at time.Time) error {
	return s.execWithRetry(ctx,
		`INSERT OR IGNORE INTO settlements (session_id, url, outcome, elapsed_ms, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		sessionID, url, outcome, elapsed.Milliseconds(), at.UTC().Format(timeLayout),
	)
}

// ErrSessionNotFound indicates no session row exists for the requested id.
var ErrSessionNotFound = errors.New("session not found")

// GetSession fetches a single session row.
func (s *Store) GetSession(ctx context.Context, id string) (*SessionRecord, error) {
	ctx = ensureContext(ctx)
	row := s.db.QueryRowContext(ctx,
		`SELECT id, started_at, finished_at, perf_mode, bot, total_assets, loaded_assets, phase, forced
		 FROM sessions WHERE id = ?`, id)
	rec, err := scanSession(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
		}
		return nil, err
	}
	return rec, nil
}

// RecentSessions returns up to limit sessions, newest first.
func (s *Store) RecentSessions(ctx context.Context, limit int) ([]SessionRecord, error) {
	ctx = ensureContext(ctx)
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, started_at, finished_at, perf_mode, bot, total_assets, loaded_assets, phase, forced
		 FROM sessions ORDER BY started_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query sessions: %w", err)
	}
	defer rows.Close()

	var sessions []SessionRecord
	for rows.Next() {
		rec, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, *rec)
	}
	return sessions, rows.Err()
}

// Settlements returns every settlement for a session in insertion order.
func (s *Store) Settlements(ctx context.Context, sessionID string) ([]SettlementRecord, error) {
	ctx = ensureContext(ctx)
	rows, err := s.db.QueryContext(ctx,
		`SELECT session_id, url, outcome, elapsed_ms, created_at
		 FROM settlements WHERE session_id = ? ORDER BY rowid`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("query settlements: %w", err)
	}
	defer rows.Close()

	var settlements []SettlementRecord
	for rows.Next() {
		var rec SettlementRecord
		var createdAt string
		if err := rows.Scan(&rec.SessionID, &rec.URL, &rec.Outcome, &rec.ElapsedMs, &createdAt); err != nil {
			return nil, fmt.Errorf("scan settlement: %w", err)
		}
		rec.CreatedAt, _ = time.Parse(timeLayout, createdAt)
		settlements = append(settlements, rec)
	}
	return settlements, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSession(row rowScanner) (*SessionRecord, error) {
	var rec SessionRecord
	var startedAt string
	var finishedAt sql.NullString
	var bot, forced int
	if err := row.Scan(&rec.ID, &startedAt, &finishedAt, &rec.PerfMode, &bot,
		&rec.TotalAssets, &rec.LoadedAssets, &rec.Phase, &forced); err != nil {
		return nil, err
	}
	rec.StartedAt, _ = time.Parse(timeLayout, startedAt)
	if finishedAt.Valid {
		parsed, err := time.Parse(timeLayout, finishedAt.String)
		if err == nil {
			rec.FinishedAt = &parsed
		}
	}
	rec.Bot = bot != 0
	rec.Forced = forced != 0
	return &rec, nil
}

func boolToInt(value bool) int {
	if value {
		return 1
	}
	return 0
}
