package lesson

import (
	"context"
	"fmt"
	"sort"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/mlplay/internal/content"
	"github.com/abhisek/mlplay/internal/lesson"
	"github.com/abhisek/mlplay/internal/progress"
	"github.com/abhisek/mlplay/internal/router"
	"github.com/abhisek/mlplay/internal/screen"
	chalscreen "github.com/abhisek/mlplay/internal/screens/challenge"
	"github.com/abhisek/mlplay/internal/ui/components"
	"github.com/abhisek/mlplay/internal/ui/layout"
)

// LessonScreen walks the learner through one module's steps.
type LessonScreen struct {
	store    *progress.Store
	registry *content.Registry
	moduleID string

	session *lesson.Session
	content *content.ModuleContent

	mc     components.MultiChoice
	pg     playgroundState
	errMsg string
}

// playgroundState holds the editable control values for a playground step.
// Values are scratch state for exploration and reset on navigation.
type playgroundState struct {
	names   []string
	values  map[string]float64
	cursor  int
	input   components.TextInput
	editing bool
}

var _ screen.Screen = (*LessonScreen)(nil)
var _ screen.KeyHintProvider = (*LessonScreen)(nil)
var _ screen.Refresher = (*LessonScreen)(nil)
var _ screen.EscInterceptor = (*LessonScreen)(nil)

// New creates a lesson screen for the given module. Content resolves
// asynchronously; until then the session exposes its loading sentinel.
func New(store *progress.Store, registry *content.Registry, moduleID string) *LessonScreen {
	s := &LessonScreen{
		store:    store,
		registry: registry,
		moduleID: moduleID,
	}

	ctx := context.Background()
	s.session = lesson.NewSession(moduleID, lesson.Callbacks{
		StepCompleted: func(moduleID, stepID string) {
			store.CompleteStep(ctx, moduleID, stepID)
		},
		QuizAnswered: func(moduleID, stepID string, index int) {
			store.RecordQuizAnswer(ctx, moduleID, stepID, index)
		},
		StepChanged: func(moduleID, stepID string) {
			store.SetLastAccessedStep(ctx, moduleID, stepID)
			s.onStepChanged(stepID)
		},
	})

	return s
}

func (s *LessonScreen) Init() tea.Cmd {
	return s.loadContent()
}

// Refresh re-merges persisted progress after a challenge screen pops back,
// so a challenge win shows up as a completed step.
func (s *LessonScreen) Refresh() tea.Cmd {
	s.mergeFromStore()
	s.syncStepUI()
	return nil
}

func (s *LessonScreen) Title() string {
	if s.content != nil {
		return s.content.Title
	}
	return "Lesson"
}

func (s *LessonScreen) KeyHints() []layout.KeyHint {
	if s.session.Loading() {
		return []layout.KeyHint{{Key: "Esc", Description: "Back"}}
	}

	hints := []layout.KeyHint{}
	if s.session.CanGoBack() {
		hints = append(hints, layout.KeyHint{Key: "←", Description: "Previous"})
	}
	if s.session.CanGoNext() {
		hints = append(hints, layout.KeyHint{Key: "→", Description: "Next"})
	}

	switch s.session.Current().Kind {
	case content.StepQuiz:
		if !s.mc.Submitted {
			hints = append(hints,
				layout.KeyHint{Key: "↑↓", Description: "Choose"},
				layout.KeyHint{Key: "Enter", Description: "Submit"})
		} else if !s.mc.IsCorrect() {
			hints = append(hints, layout.KeyHint{Key: "R", Description: "Retake"})
		}
	case content.StepChallenge:
		hints = append(hints, layout.KeyHint{Key: "Enter", Description: "Start challenge"})
	case content.StepPlayground:
		if s.pg.editing {
			hints = append(hints, layout.KeyHint{Key: "Enter", Description: "Apply"})
		} else if len(s.pg.names) > 0 {
			hints = append(hints,
				layout.KeyHint{Key: "↑↓", Description: "Control"},
				layout.KeyHint{Key: "Enter", Description: "Edit"},
				layout.KeyHint{Key: "D", Description: "Done"})
		} else {
			hints = append(hints, layout.KeyHint{Key: "Enter", Description: "Done, continue"})
		}
	default:
		hints = append(hints, layout.KeyHint{Key: "Enter", Description: "Done, continue"})
	}

	hints = append(hints, layout.KeyHint{Key: "Esc", Description: "Back"})
	return hints
}

// loadContent resolves the module bundle asynchronously.
func (s *LessonScreen) loadContent() tea.Cmd {
	registry := s.registry
	moduleID := s.moduleID
	return func() tea.Msg {
		mc, ok := registry.Resolve(moduleID)
		if !ok {
			return contentLoadedMsg{Err: fmt.Errorf("module %q has no loadable content", moduleID)}
		}
		return contentLoadedMsg{Content: mc}
	}
}

func (s *LessonScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case contentLoadedMsg:
		return s.handleLoaded(msg)
	case tea.KeyMsg:
		return s.handleKey(msg)
	}
	return s, nil
}

func (s *LessonScreen) handleLoaded(msg contentLoadedMsg) (screen.Screen, tea.Cmd) {
	if msg.Err != nil {
		s.errMsg = msg.Err.Error()
		return s, nil
	}

	s.content = msg.Content

	startAt := ""
	if mp := s.store.ModuleProgressFor(s.moduleID); mp != nil {
		startAt = mp.LastAccessedStep
	}
	s.session.SetSteps(msg.Content.Steps, startAt)
	s.mergeFromStore()
	s.syncStepUI()
	return s, nil
}

// mergeFromStore folds persisted completions and answers into the session.
// The merge is monotonic, so in-session progress is never lost.
func (s *LessonScreen) mergeFromStore() {
	mp := s.store.ModuleProgressFor(s.moduleID)
	if mp == nil {
		return
	}
	s.session.MergeCompleted(mp.StepsCompleted)
	s.session.MergeQuizAnswers(mp.QuizAnswers)
}

func (s *LessonScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	// Error state, any key goes back.
	if s.errMsg != "" {
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	}

	if s.session.Loading() {
		return s, nil
	}

	// An open control editor captures everything, including nav keys.
	if s.pg.editing {
		return s.handlePlaygroundKey(msg)
	}

	switch key {
	case "left", "h":
		s.session.GoBack()
		s.syncStepUI()
		return s, nil
	case "right", "l":
		s.session.GoNext()
		s.syncStepUI()
		return s, nil
	}

	step := s.session.Current()
	switch step.Kind {
	case content.StepQuiz:
		return s.handleQuizKey(msg)
	case content.StepChallenge:
		if key == "enter" {
			return s, s.startChallenge(step)
		}
	case content.StepPlayground:
		return s.handlePlaygroundKey(msg)
	default: // concept
		if key == "enter" {
			s.session.CompleteCurrentStep()
			s.advance()
			return s, nil
		}
	}
	return s, nil
}

func (s *LessonScreen) handleQuizKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	if s.mc.Submitted {
		switch msg.String() {
		case "enter":
			s.advance()
		case "r":
			// A wrong answer can always be retaken; the store overwrites
			// the recorded index on resubmission.
			if !s.mc.IsCorrect() {
				s.resetQuiz()
			}
		}
		return s, nil
	}

	wasSubmitted := s.mc.Submitted
	s.mc, _ = s.mc.Update(msg)
	if !wasSubmitted && s.mc.Submitted {
		s.session.SubmitQuizAnswer(s.mc.ChosenIndex)
		if s.mc.IsCorrect() {
			s.session.CompleteCurrentStep()
		}
	}
	return s, nil
}

// InterceptEsc closes an open control editor without applying the edit,
// so esc does not silently discard it by popping the whole screen.
func (s *LessonScreen) InterceptEsc() bool {
	if s.pg.editing {
		s.pg.editing = false
		return true
	}
	return false
}

// handlePlaygroundKey drives the control editor. Enter on a control opens
// a numeric input, enter again applies it, and "d" finishes the step.
func (s *LessonScreen) handlePlaygroundKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	if s.pg.editing {
		if key == "enter" {
			val, err := s.pg.input.NumericValue()
			if err != nil {
				s.pg.input.Submit(false)
				return s, nil
			}
			s.pg.values[s.pg.names[s.pg.cursor]] = val
			s.pg.editing = false
			return s, nil
		}
		var cmd tea.Cmd
		s.pg.input, cmd = s.pg.input.Update(msg)
		return s, cmd
	}

	switch key {
	case "up", "k":
		if s.pg.cursor > 0 {
			s.pg.cursor--
		}
	case "down", "j":
		if s.pg.cursor < len(s.pg.names)-1 {
			s.pg.cursor++
		}
	case "enter":
		if len(s.pg.names) == 0 {
			s.session.CompleteCurrentStep()
			s.advance()
			return s, nil
		}
		name := s.pg.names[s.pg.cursor]
		s.pg.input = components.NewTextInput(fmt.Sprintf("%.2f", s.pg.values[name]), true, 10)
		s.pg.editing = true
		return s, s.pg.input.Init()
	case "d":
		s.session.CompleteCurrentStep()
		s.advance()
	}
	return s, nil
}

// syncPlayground resets the control editor from the authored defaults.
func (s *LessonScreen) syncPlayground() {
	s.pg = playgroundState{values: make(map[string]float64)}
	if s.content == nil || s.content.Playground == nil {
		return
	}
	for name, val := range s.content.Playground.Controls {
		s.pg.names = append(s.pg.names, name)
		s.pg.values[name] = val
	}
	sort.Strings(s.pg.names)
}

// startChallenge opens the challenge referenced by the current step. The
// win callback completes the challenge in the store; the session picks the
// resulting step completion up on Refresh when the screen pops back.
func (s *LessonScreen) startChallenge(step content.Step) tea.Cmd {
	if s.content == nil || step.ChallengeID == "" {
		return nil
	}
	spec, ok := s.content.Challenge(step.ChallengeID)
	if !ok {
		s.errMsg = fmt.Sprintf("challenge %q not found in module", step.ChallengeID)
		return nil
	}

	store := s.store
	moduleID := s.moduleID
	cs := chalscreen.New(spec, func(challengeID string) {
		store.CompleteChallenge(context.Background(), moduleID, challengeID)
	})
	return func() tea.Msg {
		return router.PushScreenMsg{Screen: cs}
	}
}

// advance moves forward when possible; on the last step there is nowhere
// to go and the learner backs out with esc.
func (s *LessonScreen) advance() {
	if s.session.CanGoNext() {
		s.session.GoNext()
		s.syncStepUI()
	}
}

// onStepChanged reacts to navigation landing on a step. Playground steps
// count as visited the moment they are shown.
func (s *LessonScreen) onStepChanged(stepID string) {
	if s.content == nil {
		return
	}
	if step, ok := s.content.Step(stepID); ok && step.Kind == content.StepPlayground {
		s.store.VisitPlayground(context.Background(), s.moduleID)
	}
}

// syncStepUI rebuilds per-step widgets after navigation.
func (s *LessonScreen) syncStepUI() {
	step := s.session.Current()
	if step.Kind == content.StepPlayground {
		s.syncPlayground()
	}
	if step.Kind == content.StepQuiz && step.Quiz != nil {
		s.mc = components.NewMultiChoice(step.Quiz.Question, step.Quiz.Options, step.Quiz.CorrectIndex)
		// Replay a previously recorded answer so the quiz shows its result.
		// Only a correct answer is replayed as submitted; a wrong one would
		// otherwise latch the quiz and leave the step uncompletable.
		if idx, ok := s.session.AnswerFor(step.ID); ok {
			if idx == step.Quiz.CorrectIndex {
				s.mc.Submitted = true
				s.mc.ChosenIndex = idx
			} else if idx >= 0 && idx < len(step.Quiz.Options) {
				s.mc.Selected = idx
			}
		}
	}
}

// resetQuiz rebuilds the quiz widget for another attempt, keeping the
// wrong choice preselected.
func (s *LessonScreen) resetQuiz() {
	step := s.session.Current()
	if step.Kind != content.StepQuiz || step.Quiz == nil {
		return
	}
	chosen := s.mc.ChosenIndex
	s.mc = components.NewMultiChoice(step.Quiz.Question, step.Quiz.Options, step.Quiz.CorrectIndex)
	if chosen >= 0 && chosen < len(step.Quiz.Options) {
		s.mc.Selected = chosen
	}
}
