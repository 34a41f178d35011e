package progress

import "time"

// CurrentVersion is the schema version written by this build. Load migrates
// older documents forward; newer documents are backed up and replaced.
const CurrentVersion = 2

// DateLayout is the calendar-date format used for streaks and activity.
const DateLayout = "2006-01-02"

// ActivityType classifies one learner action in the append-only log.
type ActivityType string

const (
	ActivityStep      ActivityType = "step"
	ActivityChallenge ActivityType = "challenge"
	ActivityQuiz      ActivityType = "quiz"
	ActivitySession   ActivityType = "session"
)

// ActivityEntry is a timestamped record of one learner action.
type ActivityEntry struct {
	Type        ActivityType `json:"type"`
	Date        string       `json:"date"` // calendar date, DateLayout
	Timestamp   time.Time    `json:"timestamp"`
	ModuleID    string       `json:"moduleId"`
	StepID      string       `json:"stepId,omitempty"`
	ChallengeID string       `json:"challengeId,omitempty"`
}

// Streak tracks consecutive calendar days with recorded activity.
type Streak struct {
	Current        int    `json:"current"`
	Longest        int    `json:"longest"`
	LastActiveDate string `json:"lastActiveDate,omitempty"`
}

// ModuleStatus is the lifecycle of a module. Transitions only move forward.
type ModuleStatus string

const (
	StatusLocked     ModuleStatus = "locked"
	StatusAvailable  ModuleStatus = "available"
	StatusInProgress ModuleStatus = "in-progress"
	StatusCompleted  ModuleStatus = "completed"
)

// rank orders statuses so that recomputation can never regress one.
func (s ModuleStatus) rank() int {
	switch s {
	case StatusAvailable:
		return 1
	case StatusInProgress:
		return 2
	case StatusCompleted:
		return 3
	default:
		return 0
	}
}

// advanceTo moves to the given status only if it is a forward transition.
func (s ModuleStatus) advanceTo(next ModuleStatus) ModuleStatus {
	if next.rank() > s.rank() {
		return next
	}
	return s
}

// ModuleProgress is the persisted per-module record.
type ModuleProgress struct {
	Status              ModuleStatus    `json:"status"`
	StepsCompleted      map[string]bool `json:"stepsCompleted"`
	QuizAnswers         map[string]int  `json:"quizAnswers"`
	ChallengesCompleted map[string]bool `json:"challengesCompleted"`
	PlaygroundVisited   bool            `json:"playgroundVisited"`
	LastAccessedStep    string          `json:"lastAccessedStep,omitempty"`
	CompletedAt         *time.Time      `json:"completedAt,omitempty"`
}

func newModuleProgress(status ModuleStatus) *ModuleProgress {
	return &ModuleProgress{
		Status:              status,
		StepsCompleted:      make(map[string]bool),
		QuizAnswers:         make(map[string]int),
		ChallengesCompleted: make(map[string]bool),
	}
}

// TierProgress groups module records under one curriculum tier.
type TierProgress struct {
	Unlocked bool                       `json:"unlocked"`
	Modules  map[string]*ModuleProgress `json:"modules"`
}

// Settings are learner preferences carried inside the progress document.
type Settings struct {
	Theme            string `json:"theme"`
	GoDeeper         string `json:"goDeeper"`
	AnimationSpeed   string `json:"animationSpeed"`
	SidebarCollapsed bool   `json:"sidebarCollapsed"`
}

// DefaultSettings returns the settings of a fresh document.
func DefaultSettings() Settings {
	return Settings{
		Theme:          "dark",
		GoDeeper:       "collapsed",
		AnimationSpeed: "normal",
	}
}

// State is the single persisted aggregate for one learner. It is owned
// exclusively by the Store; every mutation goes through a Store operation.
type State struct {
	Version     int                      `json:"version"`
	LastUpdated time.Time                `json:"lastUpdated"`
	Streak      Streak                   `json:"streak"`
	Tiers       map[string]*TierProgress `json:"tiers"`
	Badges      map[string]bool          `json:"badges"`
	ActivityLog []ActivityEntry          `json:"activityLog"`
	Settings    Settings                 `json:"settings"`
}

// NewState returns a fresh default document at the current schema version.
func NewState() *State {
	return &State{
		Version:  CurrentVersion,
		Tiers:    make(map[string]*TierProgress),
		Badges:   make(map[string]bool),
		Settings: DefaultSettings(),
	}
}

// Module returns the progress record for a module, or nil if none exists.
func (st *State) Module(tierID, moduleID string) *ModuleProgress {
	tp := st.Tiers[tierID]
	if tp == nil {
		return nil
	}
	return tp.Modules[moduleID]
}
