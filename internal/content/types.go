package content

import "github.com/abhisek/mlplay/internal/challenge"

// StepKind distinguishes how a step is presented and completed.
type StepKind string

const (
	StepConcept    StepKind = "concept"    // guided explanation page
	StepQuiz       StepKind = "quiz"       // multiple-choice check
	StepChallenge  StepKind = "challenge"  // interactive goal-seeking task
	StepPlayground StepKind = "playground" // free exploration
)

// Quiz is a single multiple-choice question attached to a quiz step.
// Only the chosen index is ever persisted; correctness stays derivable
// from content even if the question is later edited.
type Quiz struct {
	Question     string   `json:"question"`
	Options      []string `json:"options"`
	CorrectIndex int      `json:"correctIndex"`
}

// Step is one page of guided content within a module.
type Step struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Body        string   `json:"body"`
	Kind        StepKind `json:"kind"`
	Required    bool     `json:"required"`
	Quiz        *Quiz    `json:"quiz,omitempty"`
	ChallengeID string   `json:"challengeId,omitempty"`
}

// PlaygroundConfig seeds the free-exploration view of a module.
type PlaygroundConfig struct {
	Controls map[string]float64 `json:"controls"`
}

// ModuleContent is one resolved lesson bundle.
type ModuleContent struct {
	ID          string            `json:"id"`
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Steps       []Step            `json:"steps"`
	Challenges  []challenge.Spec  `json:"challenges,omitempty"`
	Playground  *PlaygroundConfig `json:"playground,omitempty"`
}

// RequiredStepIDs returns the IDs of all steps that gate module completion.
func (m *ModuleContent) RequiredStepIDs() []string {
	var ids []string
	for _, s := range m.Steps {
		if s.Required {
			ids = append(ids, s.ID)
		}
	}
	return ids
}

// Challenge looks up a challenge spec by ID within this module.
func (m *ModuleContent) Challenge(id string) (challenge.Spec, bool) {
	for _, c := range m.Challenges {
		if c.ID == id {
			return c, true
		}
	}
	return challenge.Spec{}, false
}

// Step looks up a step by ID within this module.
func (m *ModuleContent) Step(id string) (Step, bool) {
	for _, s := range m.Steps {
		if s.ID == id {
			return s, true
		}
	}
	return Step{}, false
}

// ModuleMetadata is the static listing entry for a module, available without
// loading its content bundle.
type ModuleMetadata struct {
	ID               string
	Title            string
	TierID           string
	ClusterID        string
	Prerequisites    []string
	Difficulty       string
	EstimatedMinutes int
}
