// Package lesson drives step-by-step navigation within one module session.
// A Session is in-memory only: it emits completion and quiz events through
// callbacks, and the progress store owns everything durable.
package lesson

import (
	"github.com/google/uuid"

	"github.com/abhisek/mlplay/internal/content"
)

// LoadingStepID is the sentinel step exposed while content is still
// loading, so navigation flags stay well-defined instead of undefined.
const LoadingStepID = "__loading__"

var loadingStep = content.Step{
	ID:    LoadingStepID,
	Title: "Loading…",
	Kind:  content.StepConcept,
}

// Callbacks are the events a session emits. All are optional.
type Callbacks struct {
	// StepCompleted fires the first time a step is completed this session.
	StepCompleted func(moduleID, stepID string)

	// QuizAnswered fires on every submission with the chosen option index.
	// Correctness is derived from content by the caller, never stored here.
	QuizAnswered func(moduleID, stepID string, index int)

	// StepChanged fires when navigation lands on a step.
	StepChanged func(moduleID, stepID string)
}

// Session is the per-module navigation state machine. It is rebuilt fresh
// each time a module is opened and seeded from persisted progress via the
// Merge methods; discarding it is complete teardown.
type Session struct {
	ID       string
	ModuleID string

	steps     []content.Step
	index     int
	loading   bool
	completed map[string]bool
	answers   map[string]int
	cb        Callbacks
}

// NewSession creates a session in the loading state. Call SetSteps once
// content resolves.
func NewSession(moduleID string, cb Callbacks) *Session {
	return &Session{
		ID:        uuid.NewString(),
		ModuleID:  moduleID,
		loading:   true,
		completed: make(map[string]bool),
		answers:   make(map[string]int),
		cb:        cb,
	}
}

// SetSteps installs the module's step sequence. startAt positions the
// session on a step ID (the learner's last accessed step); unknown or empty
// IDs start at the beginning. An empty sequence keeps the loading sentinel.
func (s *Session) SetSteps(steps []content.Step, startAt string) {
	if len(steps) == 0 {
		return
	}
	s.steps = steps
	s.loading = false
	s.index = 0
	for i, step := range steps {
		if step.ID == startAt {
			s.index = i
			break
		}
	}
	s.notifyStepChanged()
}

// Loading reports whether the session still shows the sentinel step.
func (s *Session) Loading() bool { return s.loading }

// Len returns the number of steps (1 while loading, for the sentinel).
func (s *Session) Len() int {
	if s.loading {
		return 1
	}
	return len(s.steps)
}

// Index returns the current step index.
func (s *Session) Index() int {
	if s.loading {
		return 0
	}
	return s.index
}

// Current returns the active step (the sentinel while loading).
func (s *Session) Current() content.Step {
	if s.loading {
		return loadingStep
	}
	return s.steps[s.index]
}

// IsFirstStep reports whether the session is at the start of the sequence.
func (s *Session) IsFirstStep() bool { return s.Index() == 0 }

// IsLastStep reports whether the session is at the end of the sequence.
func (s *Session) IsLastStep() bool { return s.Index() == s.Len()-1 }

// CanGoNext reports whether GoNext would move. Always false while loading.
func (s *Session) CanGoNext() bool { return !s.loading && !s.IsLastStep() }

// CanGoBack reports whether GoBack would move. Always false while loading.
func (s *Session) CanGoBack() bool { return !s.loading && !s.IsFirstStep() }

// GoNext advances one step, clamped at the last step.
func (s *Session) GoNext() {
	if !s.CanGoNext() {
		return
	}
	s.index++
	s.notifyStepChanged()
}

// GoBack retreats one step, clamped at the first step.
func (s *Session) GoBack() {
	if !s.CanGoBack() {
		return
	}
	s.index--
	s.notifyStepChanged()
}

// GoToStep jumps to index i. Out-of-range requests are silently ignored.
func (s *Session) GoToStep(i int) {
	if s.loading || i < 0 || i >= len(s.steps) || i == s.index {
		return
	}
	s.index = i
	s.notifyStepChanged()
}

// CompleteCurrentStep marks the active step completed. Idempotent: the
// completion event fires only on the first call for a step.
func (s *Session) CompleteCurrentStep() {
	if s.loading {
		return
	}
	id := s.steps[s.index].ID
	if s.completed[id] {
		return
	}
	s.completed[id] = true
	if s.cb.StepCompleted != nil {
		s.cb.StepCompleted(s.ModuleID, id)
	}
}

// SubmitQuizAnswer records the chosen option for the current quiz step and
// emits the quiz event. Non-quiz steps ignore the submission.
func (s *Session) SubmitQuizAnswer(index int) {
	if s.loading {
		return
	}
	step := s.steps[s.index]
	if step.Quiz == nil || index < 0 || index >= len(step.Quiz.Options) {
		return
	}
	s.answers[step.ID] = index
	if s.cb.QuizAnswered != nil {
		s.cb.QuizAnswered(s.ModuleID, step.ID, index)
	}
}

// MergeCompleted unions previously-persisted completions into the live
// set. Monotonic: progress made in this session is never discarded, so an
// async load can never clobber a synchronous user action.
func (s *Session) MergeCompleted(stepIDs map[string]bool) {
	for id, done := range stepIDs {
		if done {
			s.completed[id] = true
		}
	}
}

// MergeQuizAnswers unions persisted answers without overwriting answers
// already given this session.
func (s *Session) MergeQuizAnswers(answers map[string]int) {
	for id, idx := range answers {
		if _, exists := s.answers[id]; !exists {
			s.answers[id] = idx
		}
	}
}

// IsCompleted reports whether a step is completed in this session's view.
func (s *Session) IsCompleted(stepID string) bool { return s.completed[stepID] }

// AnswerFor returns the recorded quiz answer for a step.
func (s *Session) AnswerFor(stepID string) (int, bool) {
	idx, ok := s.answers[stepID]
	return idx, ok
}

// CompletedCount returns how many steps of the sequence are completed.
func (s *Session) CompletedCount() int {
	n := 0
	for _, step := range s.steps {
		if s.completed[step.ID] {
			n++
		}
	}
	return n
}

// Progress returns the completed fraction of the step sequence.
func (s *Session) Progress() float64 {
	if s.loading || len(s.steps) == 0 {
		return 0
	}
	return float64(s.CompletedCount()) / float64(len(s.steps))
}

func (s *Session) notifyStepChanged() {
	if s.cb.StepChanged != nil {
		s.cb.StepChanged(s.ModuleID, s.steps[s.index].ID)
	}
}
