package progress

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"github.com/abhisek/mlplay/internal/content"
)

// UnlockThreshold is the completion fraction of a tier's modules that
// unlocks the next tier.
const UnlockThreshold = 0.7

// Badge IDs awarded by the store.
const (
	BadgeFirstModule    = "first-module"
	BadgeFirstChallenge = "first-challenge"
	BadgeStreakWeek     = "streak-7"

	// BadgeTierPrefix prefixes one badge per fully completed tier.
	BadgeTierPrefix = "tier-"
)

// Storage persists the progress document under a fixed key. Load returns
// (nil, nil) when no document exists yet.
type Storage interface {
	Load(ctx context.Context) ([]byte, error)
	Save(ctx context.Context, doc []byte) error
	Backup(ctx context.Context, doc []byte, reason string) error
}

// ContentSource is the registry surface the store needs for completion and
// unlock checks.
type ContentSource interface {
	Resolve(id string) (*content.ModuleContent, bool)
	Metadata(id string) (content.ModuleMetadata, bool)
	TierIDs() []string
	PrecedingTier(tierID string) string
	ModulesInTier(tierID string) []content.ModuleMetadata
}

// Store is the single source of truth for durable learner state. All reads
// and every mutation go through it; mutating operations end in a save so
// durable storage is never left stale.
type Store struct {
	storage Storage
	reg     ContentSource
	log     *zap.Logger

	// Clock supplies "now" for timestamps and streak dates. Tests override it.
	Clock func() time.Time

	state *State
}

// NewStore creates a store. Call Load before any other operation.
func NewStore(storage Storage, reg ContentSource, log *zap.Logger) *Store {
	if log == nil {
		log = zap.NewNop()
	}
	return &Store{
		storage: storage,
		reg:     reg,
		log:     log,
		Clock:   time.Now,
		state:   NewState(),
	}
}

// Load reads the persisted document, migrating old versions forward. Any
// failure degrades to a fresh default state with a logged warning; Load
// never returns an error to the caller.
func (s *Store) Load(ctx context.Context) *State {
	doc, err := s.storage.Load(ctx)
	if err != nil {
		s.log.Warn("progress load failed, starting fresh", zap.Error(err))
		s.state = NewState()
		return s.state
	}
	if doc == nil {
		s.state = NewState()
		return s.state
	}

	st, err := decodeAndMigrate(doc)
	if err != nil {
		s.log.Warn("progress document unusable, backing up and starting fresh", zap.Error(err))
		if backupErr := s.storage.Backup(ctx, doc, err.Error()); backupErr != nil {
			s.log.Warn("progress backup failed", zap.Error(backupErr))
		}
		s.state = NewState()
		return s.state
	}

	s.state = st
	return s.state
}

// State returns the current aggregate. Callers must treat it as read-only;
// every mutation goes through a Store operation.
func (s *Store) State() *State {
	return s.state
}

// RecordActivity appends to the activity log and recomputes the streak.
func (s *Store) RecordActivity(ctx context.Context, entry ActivityEntry) {
	s.appendActivity(entry)
	s.persist(ctx)
}

// CompleteStep marks a step completed, logs a step activity, and promotes
// the module status. Completing an already-completed step is a no-op.
func (s *Store) CompleteStep(ctx context.Context, moduleID, stepID string) {
	mp, mc, ok := s.moduleRecord(moduleID)
	if !ok {
		return
	}
	if _, known := mc.Step(stepID); !known {
		return
	}
	if mp.StepsCompleted[stepID] {
		return
	}

	mp.StepsCompleted[stepID] = true
	mp.Status = mp.Status.advanceTo(StatusInProgress)

	now := s.Clock()
	s.appendActivity(ActivityEntry{
		Type:      ActivityStep,
		Date:      now.Format(DateLayout),
		Timestamp: now,
		ModuleID:  moduleID,
		StepID:    stepID,
	})

	s.recomputeCompletion(mp, mc)
	s.reevaluateUnlocks()
	s.persist(ctx)
}

// RecordQuizAnswer stores the selected option index for a quiz step and
// logs a quiz activity. A resubmission overwrites the prior index.
func (s *Store) RecordQuizAnswer(ctx context.Context, moduleID, stepID string, index int) {
	mp, mc, ok := s.moduleRecord(moduleID)
	if !ok {
		return
	}
	if _, known := mc.Step(stepID); !known {
		return
	}

	mp.QuizAnswers[stepID] = index
	mp.Status = mp.Status.advanceTo(StatusInProgress)

	now := s.Clock()
	s.appendActivity(ActivityEntry{
		Type:      ActivityQuiz,
		Date:      now.Format(DateLayout),
		Timestamp: now,
		ModuleID:  moduleID,
		StepID:    stepID,
	})
	s.persist(ctx)
}

// CompleteChallenge marks a challenge won and logs a challenge activity.
// Re-completing is a no-op for the set; a repeat log entry is suppressed
// within the same calendar day.
func (s *Store) CompleteChallenge(ctx context.Context, moduleID, challengeID string) {
	mp, mc, ok := s.moduleRecord(moduleID)
	if !ok {
		return
	}
	if _, known := mc.Challenge(challengeID); !known {
		return
	}

	now := s.Clock()
	today := now.Format(DateLayout)

	already := mp.ChallengesCompleted[challengeID]
	if already && s.hasChallengeEntry(challengeID, today) {
		return
	}

	if !already {
		mp.ChallengesCompleted[challengeID] = true
		mp.Status = mp.Status.advanceTo(StatusInProgress)
		if !s.state.Badges[BadgeFirstChallenge] {
			s.state.Badges[BadgeFirstChallenge] = true
		}
		// A challenge win also completes the step that hosts it.
		for _, step := range mc.Steps {
			if step.ChallengeID == challengeID {
				mp.StepsCompleted[step.ID] = true
			}
		}
	}

	s.appendActivity(ActivityEntry{
		Type:        ActivityChallenge,
		Date:        today,
		Timestamp:   now,
		ModuleID:    moduleID,
		ChallengeID: challengeID,
	})

	s.recomputeCompletion(mp, mc)
	s.reevaluateUnlocks()
	s.persist(ctx)
}

// VisitPlayground records that the learner opened the module playground.
func (s *Store) VisitPlayground(ctx context.Context, moduleID string) {
	mp, _, ok := s.moduleRecord(moduleID)
	if !ok {
		return
	}
	if mp.PlaygroundVisited {
		return
	}
	mp.PlaygroundVisited = true
	mp.Status = mp.Status.advanceTo(StatusInProgress)
	s.persist(ctx)
}

// SetLastAccessedStep remembers where the learner left off in a module.
func (s *Store) SetLastAccessedStep(ctx context.Context, moduleID, stepID string) {
	mp, _, ok := s.moduleRecord(moduleID)
	if !ok {
		return
	}
	if mp.LastAccessedStep == stepID {
		return
	}
	mp.LastAccessedStep = stepID
	s.persist(ctx)
}

// UpdateSettings replaces learner preferences.
func (s *Store) UpdateSettings(ctx context.Context, settings Settings) {
	s.state.Settings = settings
	s.persist(ctx)
}

// UnlockTier marks a tier unlocked and promotes its locked modules to
// available. Normally driven by reevaluateUnlocks after completions.
func (s *Store) UnlockTier(ctx context.Context, tierID string) {
	if s.unlockTier(tierID) {
		s.persist(ctx)
	}
}

// Reset replaces the aggregate wholesale with a fresh default document.
// The old document is kept under a backup entry first.
func (s *Store) Reset(ctx context.Context) {
	if doc, err := json.Marshal(s.state); err == nil {
		if err := s.storage.Backup(ctx, doc, "reset"); err != nil {
			s.log.Warn("backup before reset failed", zap.Error(err))
		}
	}
	s.state = NewState()
	s.persist(ctx)
}

// Save serializes and persists the current state.
func (s *Store) Save(ctx context.Context) {
	s.persist(ctx)
}

// TierUnlocked reports whether a tier is open to the learner. The first
// tier of the curriculum is always open.
func (s *Store) TierUnlocked(tierID string) bool {
	if s.reg.PrecedingTier(tierID) == "" {
		return true
	}
	tp := s.state.Tiers[tierID]
	return tp != nil && tp.Unlocked
}

// CompletionFraction returns the fraction of a tier's modules completed.
func (s *Store) CompletionFraction(tierID string) float64 {
	mods := s.reg.ModulesInTier(tierID)
	if len(mods) == 0 {
		return 0
	}
	done := 0
	for _, m := range mods {
		mp := s.state.Module(tierID, m.ID)
		if mp != nil && mp.Status == StatusCompleted {
			done++
		}
	}
	return float64(done) / float64(len(mods))
}

// ModuleStatusFor returns the effective status of a module, answering
// locked/available for modules the learner has never touched.
func (s *Store) ModuleStatusFor(moduleID string) ModuleStatus {
	meta, ok := s.reg.Metadata(moduleID)
	if !ok {
		return StatusLocked
	}
	if mp := s.state.Module(meta.TierID, moduleID); mp != nil {
		return mp.Status
	}
	if s.TierUnlocked(meta.TierID) {
		return StatusAvailable
	}
	return StatusLocked
}

// ModuleProgressFor returns the record for a module, creating nothing.
// Returns nil when the learner has not touched the module.
func (s *Store) ModuleProgressFor(moduleID string) *ModuleProgress {
	meta, ok := s.reg.Metadata(moduleID)
	if !ok {
		return nil
	}
	return s.state.Module(meta.TierID, moduleID)
}

// DayCount is one day of the trailing activity window.
type DayCount struct {
	Date  string
	Count int
}

// ActivityCounts returns per-day activity counts for the trailing window of
// the given length, oldest day first. Days without activity count zero.
func (s *Store) ActivityCounts(days int) []DayCount {
	if days <= 0 {
		return nil
	}

	byDate := make(map[string]int)
	for _, e := range s.state.ActivityLog {
		byDate[e.Date]++
	}

	now := s.Clock()
	out := make([]DayCount, 0, days)
	for i := days - 1; i >= 0; i-- {
		d := now.AddDate(0, 0, -i).Format(DateLayout)
		out = append(out, DayCount{Date: d, Count: byDate[d]})
	}
	return out
}

// moduleRecord resolves content and returns (creating if needed) the
// module's progress record. Unknown module IDs report false.
func (s *Store) moduleRecord(moduleID string) (*ModuleProgress, *content.ModuleContent, bool) {
	meta, ok := s.reg.Metadata(moduleID)
	if !ok {
		return nil, nil, false
	}
	mc, ok := s.reg.Resolve(moduleID)
	if !ok {
		return nil, nil, false
	}

	tp := s.state.Tiers[meta.TierID]
	if tp == nil {
		tp = &TierProgress{
			Unlocked: s.reg.PrecedingTier(meta.TierID) == "",
			Modules:  make(map[string]*ModuleProgress),
		}
		s.state.Tiers[meta.TierID] = tp
	}

	mp := tp.Modules[moduleID]
	if mp == nil {
		status := StatusLocked
		if s.TierUnlocked(meta.TierID) {
			status = StatusAvailable
		}
		mp = newModuleProgress(status)
		tp.Modules[moduleID] = mp
	}
	return mp, mc, true
}

// appendActivity logs one entry and advances the streak. Appends stay in
// call order; there is one store and one event loop.
func (s *Store) appendActivity(entry ActivityEntry) {
	if entry.Date == "" {
		entry.Date = entry.Timestamp.Format(DateLayout)
	}
	s.state.ActivityLog = append(s.state.ActivityLog, entry)
	s.state.Streak.Advance(entry.Date)

	if s.state.Streak.Current >= 7 {
		s.state.Badges[BadgeStreakWeek] = true
	}
}

// hasChallengeEntry reports whether a challenge entry was already logged
// for the given calendar day.
func (s *Store) hasChallengeEntry(challengeID, date string) bool {
	for i := len(s.state.ActivityLog) - 1; i >= 0; i-- {
		e := s.state.ActivityLog[i]
		if e.Type == ActivityChallenge && e.ChallengeID == challengeID && e.Date == date {
			return true
		}
		if e.Date < date {
			break // log is append-ordered by time
		}
	}
	return false
}

// recomputeCompletion promotes a module to completed once every required
// step is done and every challenge gating a required step is won.
func (s *Store) recomputeCompletion(mp *ModuleProgress, mc *content.ModuleContent) {
	for _, step := range mc.Steps {
		if !step.Required {
			continue
		}
		if !mp.StepsCompleted[step.ID] {
			return
		}
		if step.ChallengeID != "" && !mp.ChallengesCompleted[step.ChallengeID] {
			return
		}
	}

	if mp.Status != StatusCompleted {
		mp.Status = StatusCompleted
		now := s.Clock()
		mp.CompletedAt = &now
		s.state.Badges[BadgeFirstModule] = true
	}
}

// reevaluateUnlocks re-derives tier unlocks and tier badges from
// completion fractions. Called after every completion, not on a timer.
func (s *Store) reevaluateUnlocks() {
	tiers := s.reg.TierIDs()
	for i, tierID := range tiers {
		if s.CompletionFraction(tierID) >= 1 {
			s.state.Badges[BadgeTierPrefix+tierID] = true
		}
		if i == 0 || s.TierUnlocked(tierID) {
			continue
		}
		if s.CompletionFraction(tiers[i-1]) >= UnlockThreshold {
			s.unlockTier(tierID)
		}
	}
}

// unlockTier flips a tier open and promotes its locked modules. Reports
// whether anything changed.
func (s *Store) unlockTier(tierID string) bool {
	tp := s.state.Tiers[tierID]
	if tp == nil {
		tp = &TierProgress{Modules: make(map[string]*ModuleProgress)}
		s.state.Tiers[tierID] = tp
	}
	if tp.Unlocked {
		return false
	}
	tp.Unlocked = true
	for _, mp := range tp.Modules {
		mp.Status = mp.Status.advanceTo(StatusAvailable)
	}
	return true
}

// persist writes the document. Storage failures are logged, never raised:
// the worst case is stale durable state, not a broken session.
func (s *Store) persist(ctx context.Context) {
	s.state.LastUpdated = s.Clock()
	doc, err := json.Marshal(s.state)
	if err != nil {
		s.log.Warn("progress marshal failed", zap.Error(err))
		return
	}
	if err := s.storage.Save(ctx, doc); err != nil {
		s.log.Warn("progress save failed", zap.Error(err))
	}
}
