package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestConfigInitAndValidate(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"config", "validate"}, env.configPath)
	if err != nil {
		t.Fatalf("config validate: %v", err)
	}
	requireContains(t, out, "Configuration valid")

	tmp := t.TempDir()
	target := filepath.Join(tmp, "config.toml")
	out, _, err = runCLI(t, []string{"config", "init", "--path", target}, env.configPath)
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	requireContains(t, out, "Wrote sample configuration")

	if _, err := os.Stat(target); err != nil {
		t.Fatalf("expected config file at %s: %v", target, err)
	}
}

func TestConfigInitRefusesOverwrite(t *testing.T) {
	env := setupCLITestEnv(t)

	_, _, err := runCLI(t, []string{"config", "init", "--path", env.configPath}, "")
	if err == nil {
		t.Fatal("expected overwrite refusal")
	}

	if _, _, err := runCLI(t, []string{"config", "init", "--path", env.configPath, "--overwrite"}, ""); err != nil {
		t.Fatalf("config init --overwrite: %v", err)
	}
}

func TestConfigShowRendersTOML(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"config", "show"}, env.configPath)
	if err != nil {
		t.Fatalf("config show: %v", err)
	}
	requireContains(t, out, "[preload]")
	requireContains(t, out, "blocking_deadline_ms")
}

func TestDiscoverListsAssets(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"discover"}, env.configPath)
	if err != nil {
		t.Fatalf("discover: %v", err)
	}
	requireContains(t, out, "/assets/portrait.avif")
	requireContains(t, out, "/assets/projects/one.webp")
	requireContains(t, out, "Profile: full")
}

func TestDiscoverLiteProfileCollapsesToSeeds(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"discover", "--user-agent", "Googlebot/2.1"}, env.configPath)
	if err != nil {
		t.Fatalf("discover: %v", err)
	}
	requireContains(t, out, "Profile: lite/bot")
	requireContains(t, out, "2 critical, 2 total")
}

func TestRunCompletesAndJournalsSession(t *testing.T) {
	env := setupCLITestEnv(t)

	// No site origin is configured, so relative assets resolve without
	// fetching and the session settles immediately.
	out, _, err := runCLI(t, []string{"run"}, env.configPath)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	requireContains(t, out, "assets settled")

	out, _, err = runCLI(t, []string{"report"}, env.configPath)
	if err != nil {
		t.Fatalf("report: %v", err)
	}
	// 4 static seeds, portrait, icon, and two project images.
	requireContains(t, out, "done")
	requireContains(t, out, "8/8")
}

func TestReportEmptyJournal(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"report"}, env.configPath)
	if err != nil {
		t.Fatalf("report: %v", err)
	}
	requireContains(t, out, "No sessions journaled yet")
}

func TestReportUnknownSessionID(t *testing.T) {
	env := setupCLITestEnv(t)

	_, _, err := runCLI(t, []string{"report", "no-such-session"}, env.configPath)
	if err == nil {
		t.Fatal("expected an error for an unknown session id")
	}
	requireContains(t, err.Error(), "no journaled session")
}
