package lesson

import (
	"context"
	"testing"

	tea "charm.land/bubbletea/v2"
	"go.uber.org/zap"

	"github.com/abhisek/mlplay/internal/content"
	"github.com/abhisek/mlplay/internal/progress"
	"github.com/abhisek/mlplay/internal/router"
)

// memStorage is an in-memory progress.Storage for tests.
type memStorage struct{ doc []byte }

func (m *memStorage) Load(context.Context) ([]byte, error) { return m.doc, nil }
func (m *memStorage) Save(_ context.Context, doc []byte) error {
	m.doc = append([]byte(nil), doc...)
	return nil
}
func (m *memStorage) Backup(context.Context, []byte, string) error { return nil }

// newTestLesson builds a lesson screen for the vectors module and runs its
// load command synchronously.
func newTestLesson(t *testing.T) (*LessonScreen, *progress.Store) {
	t.Helper()
	reg := content.New()
	store := progress.NewStore(&memStorage{}, reg, zap.NewNop())
	store.Load(context.Background())

	s := New(store, reg, "vectors")
	cmd := s.Init()
	if cmd == nil {
		t.Fatal("Init should return a load command")
	}
	s.Update(cmd())
	return s, store
}

func press(s *LessonScreen, code rune) tea.Cmd {
	_, cmd := s.Update(tea.KeyPressMsg{Code: code})
	return cmd
}

func TestLoadStartsAtFirstStep(t *testing.T) {
	s, _ := newTestLesson(t)

	if s.session.Loading() {
		t.Fatal("session should not be loading after content arrives")
	}
	if got := s.session.Current().ID; got != "v-intro" {
		t.Errorf("expected first step v-intro, got %q", got)
	}
	if s.Title() != "Vectors" {
		t.Errorf("expected module title, got %q", s.Title())
	}
}

func TestLoadUnknownModuleShowsError(t *testing.T) {
	reg := content.New()
	store := progress.NewStore(&memStorage{}, reg, zap.NewNop())
	store.Load(context.Background())

	s := New(store, reg, "no-such-module")
	s.Update(s.Init()())
	if s.errMsg == "" {
		t.Fatal("expected an error message for an unknown module")
	}

	// Any key backs out of the error state.
	cmd := press(s, 'x')
	if cmd == nil {
		t.Fatal("expected a pop command")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Fatalf("expected PopScreenMsg, got %T", cmd())
	}
}

func TestEnterCompletesConceptAndAdvances(t *testing.T) {
	s, store := newTestLesson(t)

	press(s, tea.KeyEnter)
	if !s.session.IsCompleted("v-intro") {
		t.Error("enter should complete the concept step")
	}
	if got := s.session.Current().ID; got != "v-addition" {
		t.Errorf("expected advance to v-addition, got %q", got)
	}

	mp := store.ModuleProgressFor("vectors")
	if mp == nil || !mp.StepsCompleted["v-intro"] {
		t.Error("completion should be persisted through the store")
	}
}

func TestNavigationKeysClamp(t *testing.T) {
	s, _ := newTestLesson(t)

	press(s, 'h')
	if got := s.session.Current().ID; got != "v-intro" {
		t.Errorf("back on the first step should clamp, got %q", got)
	}

	press(s, 'l')
	if got := s.session.Current().ID; got != "v-addition" {
		t.Errorf("expected v-addition after right, got %q", got)
	}
}

func TestQuizSubmitRecordsAnswer(t *testing.T) {
	s, store := newTestLesson(t)

	// Three concept steps precede the quiz.
	press(s, tea.KeyEnter)
	press(s, tea.KeyEnter)
	press(s, tea.KeyEnter)
	if got := s.session.Current().ID; got != "v-quiz-1" {
		t.Fatalf("expected v-quiz-1, got %q", got)
	}

	// Choose option 1 (the correct one) and submit.
	press(s, 'j')
	press(s, tea.KeyEnter)

	if !s.mc.Submitted || !s.mc.IsCorrect() {
		t.Fatal("expected a submitted correct answer")
	}
	if !s.session.IsCompleted("v-quiz-1") {
		t.Error("a correct answer should complete the quiz step")
	}
	mp := store.ModuleProgressFor("vectors")
	if mp.QuizAnswers["v-quiz-1"] != 1 {
		t.Errorf("expected stored answer index 1, got %d", mp.QuizAnswers["v-quiz-1"])
	}

	// Enter after submission advances to the challenge step.
	press(s, tea.KeyEnter)
	if got := s.session.Current().ID; got != "v-challenge" {
		t.Errorf("expected v-challenge after quiz, got %q", got)
	}
}

func TestQuizWrongAnswerCanBeRetaken(t *testing.T) {
	s, store := newTestLesson(t)

	press(s, tea.KeyEnter)
	press(s, tea.KeyEnter)
	press(s, tea.KeyEnter)
	if got := s.session.Current().ID; got != "v-quiz-1" {
		t.Fatalf("expected v-quiz-1, got %q", got)
	}

	// Submit the default selection, option 0, which is wrong.
	press(s, tea.KeyEnter)
	if !s.mc.Submitted || s.mc.IsCorrect() {
		t.Fatal("expected a submitted wrong answer")
	}
	if s.session.IsCompleted("v-quiz-1") {
		t.Fatal("a wrong answer must not complete the step")
	}

	// Retake, choose the correct option, and submit again.
	press(s, 'r')
	if s.mc.Submitted {
		t.Fatal("r should reset the quiz for another attempt")
	}
	press(s, 'j')
	press(s, tea.KeyEnter)
	if !s.mc.IsCorrect() {
		t.Fatal("expected the retaken answer to be correct")
	}
	if !s.session.IsCompleted("v-quiz-1") {
		t.Error("a correct retake should complete the step")
	}
	if got := store.ModuleProgressFor("vectors").QuizAnswers["v-quiz-1"]; got != 1 {
		t.Errorf("retake should overwrite the stored answer, got %d", got)
	}
}

func TestQuizRetakeIgnoredWhenCorrect(t *testing.T) {
	s, _ := newTestLesson(t)

	press(s, tea.KeyEnter)
	press(s, tea.KeyEnter)
	press(s, tea.KeyEnter)
	press(s, 'j')
	press(s, tea.KeyEnter)
	if !s.mc.IsCorrect() {
		t.Fatal("expected a correct answer")
	}

	press(s, 'r')
	if !s.mc.Submitted {
		t.Error("r must not reopen a correctly answered quiz")
	}
}

func TestQuizWrongAnswerNotLatchedOnRevisit(t *testing.T) {
	s, _ := newTestLesson(t)

	press(s, tea.KeyEnter)
	press(s, tea.KeyEnter)
	press(s, tea.KeyEnter)
	press(s, tea.KeyEnter) // wrong answer, option 0

	// Leaving and returning must offer a fresh attempt, with the wrong
	// choice preselected for context.
	press(s, 'h')
	press(s, 'l')
	if s.mc.Submitted {
		t.Fatal("a wrong answer must not be replayed as submitted")
	}
	if s.mc.Selected != 0 {
		t.Errorf("expected prior wrong choice preselected, got %d", s.mc.Selected)
	}

	press(s, 'j')
	press(s, tea.KeyEnter)
	if !s.session.IsCompleted("v-quiz-1") {
		t.Error("the revisited quiz should be answerable to completion")
	}
}

func TestQuizWrongAnswerRecoverableAcrossRestart(t *testing.T) {
	reg := content.New()
	mem := &memStorage{}
	store := progress.NewStore(mem, reg, zap.NewNop())
	store.Load(context.Background())
	store.RecordQuizAnswer(context.Background(), "vectors", "v-quiz-1", 0)

	// A fresh screen over the persisted wrong answer must not latch.
	s := New(store, reg, "vectors")
	s.Update(s.Init()())
	for s.session.Current().ID != "v-quiz-1" {
		press(s, 'l')
	}
	if s.mc.Submitted {
		t.Fatal("persisted wrong answer must not be replayed as submitted")
	}

	press(s, 'j')
	press(s, tea.KeyEnter)
	if !s.session.IsCompleted("v-quiz-1") {
		t.Error("the quiz should complete after a correct answer post-restart")
	}
}

func TestQuizAnswerReplayedOnRevisit(t *testing.T) {
	s, _ := newTestLesson(t)

	press(s, tea.KeyEnter)
	press(s, tea.KeyEnter)
	press(s, tea.KeyEnter)
	press(s, 'j')
	press(s, tea.KeyEnter)

	// Leave and come back; the recorded answer should still show.
	press(s, 'h')
	press(s, 'l')
	if !s.mc.Submitted || s.mc.ChosenIndex != 1 {
		t.Errorf("expected replayed answer 1, got submitted=%v index=%d",
			s.mc.Submitted, s.mc.ChosenIndex)
	}
}

func TestChallengeStepPushesChallengeScreen(t *testing.T) {
	s, _ := newTestLesson(t)

	for s.session.Current().ID != "v-challenge" {
		press(s, 'l')
	}
	cmd := press(s, tea.KeyEnter)
	if cmd == nil {
		t.Fatal("enter on a challenge step should push the challenge screen")
	}
	if _, ok := cmd().(router.PushScreenMsg); !ok {
		t.Fatalf("expected PushScreenMsg, got %T", cmd())
	}
}

func TestRefreshPicksUpChallengeWin(t *testing.T) {
	s, store := newTestLesson(t)

	store.CompleteChallenge(context.Background(), "vectors", "vec-reach-target")
	if s.session.IsCompleted("v-challenge") {
		t.Fatal("session should not see the win before Refresh")
	}

	s.Refresh()
	if !s.session.IsCompleted("v-challenge") {
		t.Error("Refresh should merge the persisted challenge win")
	}
}

func TestPlaygroundEditorCapturesKeys(t *testing.T) {
	s, _ := newTestLesson(t)

	for s.session.Current().ID != "v-playground" {
		press(s, 'l')
	}
	if len(s.pg.names) != 4 {
		t.Fatalf("expected 4 playground controls, got %d", len(s.pg.names))
	}

	press(s, tea.KeyEnter)
	if !s.pg.editing {
		t.Fatal("enter should open the control editor")
	}

	// Nav keys must not leave the step while the editor is open.
	press(s, 'h')
	if got := s.session.Current().ID; got != "v-playground" {
		t.Errorf("editor should capture nav keys, moved to %q", got)
	}
}

func TestEscClosesControlEditor(t *testing.T) {
	s, _ := newTestLesson(t)

	for s.session.Current().ID != "v-playground" {
		press(s, 'l')
	}
	press(s, tea.KeyEnter)
	if !s.pg.editing {
		t.Fatal("enter should open the control editor")
	}
	before := s.pg.values[s.pg.names[s.pg.cursor]]

	if !s.InterceptEsc() {
		t.Fatal("esc should be consumed while the editor is open")
	}
	if s.pg.editing {
		t.Error("esc should close the editor")
	}
	if got := s.pg.values[s.pg.names[s.pg.cursor]]; got != before {
		t.Errorf("a cancelled edit must not change the value: %v -> %v", before, got)
	}

	// With no editor open, esc falls through to the screen pop.
	if s.InterceptEsc() {
		t.Error("esc should not be consumed without an open editor")
	}
}

func TestPlaygroundDoneCompletesStep(t *testing.T) {
	s, _ := newTestLesson(t)

	for s.session.Current().ID != "v-playground" {
		press(s, 'l')
	}
	press(s, 'd')
	if !s.session.IsCompleted("v-playground") {
		t.Error("d should complete the playground step")
	}
}
