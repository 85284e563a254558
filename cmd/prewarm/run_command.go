package main

import (
	"errors"
	"fmt"
	"io"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"prewarm/internal/content"
	"prewarm/internal/journal"
	"prewarm/internal/orchestrator"
	"prewarm/internal/preflight"
	"prewarm/internal/profile"
)

func newRunCommand(ctx *commandContext) *cobra.Command {
	var userAgent string
	var perfMode string

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run one preload session against the configured content manifest",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			logger, logPath, err := ctx.newSessionLogger(cfg)
			if err != nil {
				return err
			}

			// Warn-only: a degraded environment should not stop the
			// session, only explain slow or missing persistence later.
			for _, result := range []preflight.Result{
				preflight.CheckDirectoryAccess("journal directory", cfg.Paths.JournalDir),
				preflight.CheckDirectoryAccess("log directory", cfg.Paths.LogDir),
			} {
				if !result.Passed {
					fmt.Fprintf(cmd.ErrOrStderr(), "warn: %s: %s\n", result.Name, result.Detail)
				}
			}

			manifest, err := content.Load(cfg.Content.ManifestPath)
			if err != nil {
				return fmt.Errorf("load manifest: %w", err)
			}

			force := strings.TrimSpace(perfMode)
			if force == "" {
				force = cfg.Profile.ForcePerfMode
			}
			prof := profile.Classify(userAgent, cfg.Profile.CrawlerPatterns, force)

			store, err := journal.Open(cfg)
			switch {
			case errors.Is(err, journal.ErrLocked):
				fmt.Fprintln(cmd.ErrOrStderr(), "warn: journal locked by another process; running without persistence")
				store = nil
			case err != nil:
				return fmt.Errorf("open journal: %w", err)
			default:
				defer store.Close()
			}

			sess, err := orchestrator.NewSession(prof, orchestrator.Options{
				Config:  cfg,
				Journal: store,
				Logger:  logger,
			})
			if err != nil {
				return err
			}
			defer sess.Close()

			signalCtx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()

			updates := sess.Reporter().Subscribe()
			runErr := make(chan error, 1)
			go func() {
				runErr <- sess.Run(signalCtx, manifest)
			}()

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Session %s (%s profile)\n", sess.ID(), prof)
			streamProgress(out, updates, sess.Done())

			if err := <-runErr; err != nil {
				return err
			}

			snap := sess.Reporter().Snapshot()
			fmt.Fprintf(out, "\n%s: %d/%d assets settled", snap.Label, snap.Loaded, snap.Total)
			if snap.Forced {
				fmt.Fprint(out, " (readiness forced by watchdog)")
			}
			fmt.Fprintf(out, "\nLog: %s\n", logPath)
			return nil
		},
	}

	cmd.Flags().StringVar(&userAgent, "user-agent", "", "Client user agent to classify")
	cmd.Flags().StringVar(&perfMode, "perf-mode", "", "Force perf mode (full or lite)")
	return cmd
}

// streamProgress prints one line per distinct snapshot until the session
// reaches its terminal phase.
func streamProgress(out io.Writer, updates <-chan orchestrator.Snapshot, done <-chan struct{}) {
	var last orchestrator.Snapshot
	printed := false
	for {
		select {
		case snap := <-updates:
			if printed && snap == last {
				continue
			}
			renderProgressLine(out, snap)
			last = snap
			printed = true
		case <-done:
			// Drain any snapshot published right before completion.
			select {
			case snap := <-updates:
				if !printed || snap != last {
					renderProgressLine(out, snap)
				}
			default:
			}
			return
		}
	}
}

func renderProgressLine(out io.Writer, snap orchestrator.Snapshot) {
	marker := "..."
	if !snap.IsLoading {
		marker = "ok"
	}
	fmt.Fprintf(out, "  %-40s %3d/%-3d [%s]\n", snap.Label, snap.Loaded, snap.Total, marker)
}
