// Package preload runs the bounded worker pool that settles asset loads.
//
// A Scheduler owns a shared settled-set spanning invocations: the blocking
// phase preloads the critical set, and the background phase later preloads
// the extended remainder through the same Scheduler without re-settling
// anything. Each asset settles exactly once, on whichever terminal signal
// arrives first (native success, native failure, or the per-asset timer);
// late signals are no-ops.
package preload
