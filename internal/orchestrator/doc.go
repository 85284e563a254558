// Package orchestrator coordinates a preload session end to end: asset
// discovery, the blocking deadline race over the critical set, background
// fill of the extended remainder, and the watchdog that forces readiness
// no matter what the network does.
//
// A Session is single-use. Progress is observable through its Reporter,
// which publishes a snapshot on every settlement and phase transition.
// The session never surfaces asset failures to its caller; every failure
// path settles and advances the counters instead.
package orchestrator
