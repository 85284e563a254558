package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"prewarm/internal/assets"
	"prewarm/internal/content"
	"prewarm/internal/profile"
)

func newDiscoverCommand(ctx *commandContext) *cobra.Command {
	var userAgent string
	var perfMode string

	cmd := &cobra.Command{
		Use:   "discover",
		Short: "Show the asset sets a session would preload",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
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
			sets := assets.Discover(manifest, prof, cfg)

			critical := make(map[string]bool, len(sets.Critical))
			for _, url := range sets.Critical {
				critical[url] = true
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Profile: %s\n", prof)

			if shouldColorize(out) {
				rows := make([][]string, 0, len(sets.Extended))
				for i, url := range sets.Extended {
					rows = append(rows, []string{
						fmt.Sprintf("%d", i+1),
						url,
						yesNo(critical[url]),
					})
				}
				fmt.Fprintln(out, renderTable([]string{"#", "Asset", "Critical"}, rows, 1))
			} else {
				// Plain rows keep piped output grep-friendly.
				for _, url := range sets.Extended {
					marker := "extended"
					if critical[url] {
						marker = "critical"
					}
					fmt.Fprintf(out, "%s\t%s\n", marker, url)
				}
			}

			fmt.Fprintf(out, "%d critical, %d total\n", len(sets.Critical), len(sets.Extended))
			return nil
		},
	}

	cmd.Flags().StringVar(&userAgent, "user-agent", "", "Client user agent to classify")
	cmd.Flags().StringVar(&perfMode, "perf-mode", "", "Force perf mode (full or lite)")
	return cmd
}
