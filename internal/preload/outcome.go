package preload

// Outcome is the terminal result of a single asset load attempt.
type Outcome string

const (
	OutcomeLoaded   Outcome = "loaded"
	OutcomeErrored  Outcome = "errored"
	OutcomeTimedOut Outcome = "timed_out"
)

// Loaded reports whether the outcome carried content. Errored and
// timed-out are indistinguishable to downstream state; both mean
// "settled without content".
func (o Outcome) Loaded() bool {
	return o == OutcomeLoaded
}
