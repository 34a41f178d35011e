package challenge

import "github.com/google/uuid"

// WinFunc is invoked exactly once when a run first crosses the threshold.
type WinFunc func(challengeID string)

// Run tracks one attempt at a challenge. It is owned by the active challenge
// view: the view pushes state changes via Observe and drives scoring via
// Sample on a fixed tick. A Run carries no timers of its own, so discarding
// it (together with the view's tick) is complete teardown.
type Run struct {
	ID   string
	Spec Spec

	latest   Observation
	observed bool
	distance float64
	won      bool
	banner   bool
	onWin    WinFunc
}

// NewRun starts a fresh attempt at the given challenge.
func NewRun(spec Spec, onWin WinFunc) *Run {
	return &Run{
		ID:       uuid.NewString(),
		Spec:     spec,
		distance: UnknownDistance,
		onWin:    onWin,
	}
}

// Observe records the most recent interactive state. It does not score;
// scoring happens on the next Sample so that evaluation cost is independent
// of input event rate.
func (r *Run) Observe(obs Observation) {
	r.latest = obs
	r.observed = true
}

// SampleResult is the outcome of one scoring pass.
type SampleResult struct {
	Distance float64
	// JustWon is true only on the sample that first crossed the threshold.
	JustWon bool
}

// Sample scores the latest observation. The win callback fires on the first
// threshold crossing only; re-crossing after a win never re-fires.
func (r *Run) Sample() SampleResult {
	if !r.observed {
		return SampleResult{Distance: r.distance}
	}

	r.distance = Score(r.latest, r.Spec)
	res := SampleResult{Distance: r.distance}

	if !r.won && r.distance <= Threshold(r.Spec) {
		r.won = true
		r.banner = true
		res.JustWon = true
		if r.onWin != nil {
			r.onWin(r.Spec.ID)
		}
	}
	return res
}

// Distance returns the most recently sampled distance.
func (r *Run) Distance() float64 { return r.distance }

// Won reports whether this run has crossed the threshold.
func (r *Run) Won() bool { return r.won }

// ShowBanner reports whether the success affordance should be visible.
func (r *Run) ShowBanner() bool { return r.banner }

// DismissBanner hides the success affordance. The won state is unaffected.
func (r *Run) DismissBanner() { r.banner = false }
