package challenge

import (
	"sort"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/mlplay/internal/challenge"
	"github.com/abhisek/mlplay/internal/screen"
	"github.com/abhisek/mlplay/internal/ui/layout"
)

// nudge is how far one arrow keypress moves the active vector.
const nudge = 0.5

// scalarStep is the increment for +/- on scalar controls.
const scalarStep = 0.1

// ChallengeScreen hosts one interactive challenge attempt. The screen owns
// the Run: it pushes every manipulation via Observe and drives scoring with
// a fixed-cadence tick. Leaving the screen discards the run entirely.
type ChallengeScreen struct {
	run  *challenge.Run
	spec challenge.Spec

	positions map[string]challenge.Vec2
	params    map[string]float64
	order     []string // stable vector ordering for tab cycling
	active    int
}

var _ screen.Screen = (*ChallengeScreen)(nil)
var _ screen.KeyHintProvider = (*ChallengeScreen)(nil)

// New creates a challenge screen. onWin is forwarded to the run and fires
// exactly once, on the first threshold crossing.
func New(spec challenge.Spec, onWin challenge.WinFunc) *ChallengeScreen {
	s := &ChallengeScreen{
		run:       challenge.NewRun(spec, onWin),
		spec:      spec,
		positions: make(map[string]challenge.Vec2),
		params:    make(map[string]float64),
	}
	s.seedControls()
	return s
}

// seedControls sets up the manipulable state each challenge kind needs.
func (s *ChallengeScreen) seedControls() {
	switch s.spec.Kind {
	case challenge.KindVectorTarget:
		s.positions["a"] = challenge.Vec2{X: 1, Y: 0}
		s.positions["b"] = challenge.Vec2{X: 0, Y: 1}
	case challenge.KindOrthogonal:
		s.positions["u"] = challenge.Vec2{X: 2, Y: 1}
		s.positions["v"] = challenge.Vec2{X: 1, Y: 2}
	case challenge.KindMagnitude:
		s.positions["v"] = challenge.Vec2{X: 2, Y: 2}
	case challenge.KindProjection:
		s.positions["a"] = challenge.Vec2{X: 2, Y: 2}
		s.positions["b"] = challenge.Vec2{X: 1, Y: 0}
	case challenge.KindScalarMatch:
		s.params["value"] = 0
	}

	for name := range s.positions {
		s.order = append(s.order, name)
	}
	sort.Strings(s.order)

	// Authored params provide starting values for any scalar controls.
	for name, val := range s.spec.Params {
		if _, manipulable := s.params[name]; manipulable {
			s.params[name] = val
		}
	}

	s.observe()
}

func (s *ChallengeScreen) Init() tea.Cmd {
	return sampleTick()
}

func (s *ChallengeScreen) Title() string {
	return s.spec.Title
}

func (s *ChallengeScreen) KeyHints() []layout.KeyHint {
	if s.run.ShowBanner() {
		return []layout.KeyHint{
			{Key: "Enter", Description: "Keep exploring"},
			{Key: "Esc", Description: "Back to lesson"},
		}
	}

	var hints []layout.KeyHint
	if len(s.order) > 0 {
		hints = append(hints, layout.KeyHint{Key: "←↑↓→", Description: "Move vector"})
		if len(s.order) > 1 {
			hints = append(hints, layout.KeyHint{Key: "Tab", Description: "Switch vector"})
		}
	}
	if len(s.params) > 0 {
		hints = append(hints, layout.KeyHint{Key: "+/-", Description: "Adjust value"})
	}
	hints = append(hints, layout.KeyHint{Key: "Esc", Description: "Back"})
	return hints
}

func (s *ChallengeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case sampleTickMsg:
		s.run.Sample()
		return s, sampleTick()

	case tea.KeyMsg:
		return s.handleKey(msg)
	}
	return s, nil
}

func (s *ChallengeScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	// Success banner is dismissible; the won state stays.
	if s.run.ShowBanner() && key == "enter" {
		s.run.DismissBanner()
		return s, nil
	}

	switch key {
	case "tab":
		if len(s.order) > 1 {
			s.active = (s.active + 1) % len(s.order)
		}
		return s, nil
	case "up":
		s.moveActive(0, nudge)
	case "down":
		s.moveActive(0, -nudge)
	case "left":
		s.moveActive(-nudge, 0)
	case "right":
		s.moveActive(nudge, 0)
	case "+", "=":
		s.adjustScalar(scalarStep)
	case "-", "_":
		s.adjustScalar(-scalarStep)
	}
	return s, nil
}

// moveActive nudges the active vector and records the new observation.
// Scoring happens on the next tick, not here.
func (s *ChallengeScreen) moveActive(dx, dy float64) {
	if len(s.order) == 0 {
		return
	}
	name := s.order[s.active]
	p := s.positions[name]
	s.positions[name] = challenge.Vec2{X: p.X + dx, Y: p.Y + dy}
	s.observe()
}

func (s *ChallengeScreen) adjustScalar(delta float64) {
	if len(s.params) == 0 {
		return
	}
	for name := range s.params {
		s.params[name] += delta
	}
	s.observe()
}

// observe pushes the full manipulable state to the run.
func (s *ChallengeScreen) observe() {
	positions := make(map[string]challenge.Vec2, len(s.positions))
	for k, v := range s.positions {
		positions[k] = v
	}
	params := make(map[string]float64, len(s.params))
	for k, v := range s.params {
		params[k] = v
	}
	s.run.Observe(challenge.Observation{Positions: positions, Params: params})
}

// sampleTickMsg drives run scoring at the fixed sample cadence.
type sampleTickMsg time.Time

func sampleTick() tea.Cmd {
	return tea.Tick(challenge.SampleInterval, func(t time.Time) tea.Msg {
		return sampleTickMsg(t)
	})
}
