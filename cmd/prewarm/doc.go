// Package main hosts the prewarm CLI entrypoint and command graph.
//
// The Cobra-based command tree drives preload sessions against a content
// manifest, inspects asset discovery output, runs environment preflight
// checks, reports on journaled sessions, and scaffolds configuration. It
// centralizes configuration resolution and logger setup so subcommands can
// focus on user experience instead of wiring.
//
// Keep this package lean: add new functionality by extending the internal
// packages first, then surface it through dedicated commands or flags here.
package main
