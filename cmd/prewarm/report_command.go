package main

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"prewarm/internal/journal"
)

func newReportCommand(ctx *commandContext) *cobra.Command {
	var sessionID string
	var limit int

	cmd := &cobra.Command{
		Use:   "report [session-id]",
		Short: "Show journaled preload sessions",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			store, err := journal.Open(cfg)
			if err != nil {
				return fmt.Errorf("open journal: %w", err)
			}
			defer store.Close()

			id := strings.TrimSpace(sessionID)
			if len(args) == 1 {
				id = strings.TrimSpace(args[0])
			}
			if id != "" {
				return renderSessionDetail(cmd, store, id)
			}
			return renderRecentSessions(cmd, store, limit)
		},
	}

	cmd.Flags().StringVar(&sessionID, "session", "", "Show per-asset settlements for one session")
	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum number of sessions to list")
	return cmd
}

func renderRecentSessions(cmd *cobra.Command, store *journal.Store, limit int) error {
	sessions, err := store.RecentSessions(cmd.Context(), limit)
	if err != nil {
		return fmt.Errorf("list sessions: %w", err)
	}

	out := cmd.OutOrStdout()
	if len(sessions) == 0 {
		fmt.Fprintln(out, "No sessions journaled yet")
		return nil
	}

	rows := make([][]string, 0, len(sessions))
	for _, sess := range sessions {
		profileText := sess.PerfMode
		if sess.Bot {
			profileText += "/bot"
		}
		rows = append(rows, []string{
			shortID(sess.ID),
			sess.StartedAt.Local().Format("2006-01-02 15:04:05"),
			profileText,
			sess.Phase,
			fmt.Sprintf("%d/%d", sess.LoadedAssets, sess.TotalAssets),
			yesNo(sess.Forced),
			sessionDuration(sess),
		})
	}
	fmt.Fprintln(out, renderTable(
		[]string{"Session", "Started", "Profile", "Phase", "Assets", "Forced", "Duration"},
		rows, 5, 7,
	))
	return nil
}

func renderSessionDetail(cmd *cobra.Command, store *journal.Store, id string) error {
	sess, err := store.GetSession(cmd.Context(), id)
	if errors.Is(err, journal.ErrSessionNotFound) {
		return fmt.Errorf("no journaled session with id %q; run `prewarm report` to list recent sessions", id)
	}
	if err != nil {
		return fmt.Errorf("load session: %w", err)
	}
	settlements, err := store.Settlements(cmd.Context(), id)
	if err != nil {
		return fmt.Errorf("load settlements: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Session %s started %s\n", sess.ID, sess.StartedAt.Local().Format(time.RFC1123))
	fmt.Fprintf(out, "Phase %s, %d/%d assets, forced: %s\n\n",
		sess.Phase, sess.LoadedAssets, sess.TotalAssets, yesNo(sess.Forced))

	caser := cases.Title(language.English)
	rows := make([][]string, 0, len(settlements))
	for _, item := range settlements {
		rows = append(rows, []string{
			item.URL,
			caser.String(strings.ReplaceAll(item.Outcome, "_", " ")),
			fmt.Sprintf("%d ms", item.ElapsedMs),
		})
	}
	fmt.Fprintln(out, renderTable([]string{"Asset", "Outcome", "Settled After"}, rows, 3))
	return nil
}

func shortID(id string) string {
	if len(id) <= 8 {
		return id
	}
	return id[:8]
}

func sessionDuration(sess journal.SessionRecord) string {
	if sess.FinishedAt == nil {
		return "-"
	}
	return sess.FinishedAt.Sub(sess.StartedAt).Round(time.Millisecond).String()
}
