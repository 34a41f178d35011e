package progress

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrVersionAhead marks a document written by a newer build.
var ErrVersionAhead = errors.New("progress document version is newer than this build")

// migrations upgrade a raw document map one version step at a time.
// migrations[n] converts version n to n+1.
var migrations = map[int]func(doc map[string]any){
	1: migrateV1toV2,
}

// decodeAndMigrate parses a stored document, applying in-order migrations
// for older schema versions. Errors mean the document is unusable and the
// caller should back it up and fall back to defaults.
func decodeAndMigrate(raw []byte) (*State, error) {
	var doc map[string]any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("parse progress document: %w", err)
	}

	version, ok := doc["version"].(float64)
	if !ok || version < 1 {
		return nil, fmt.Errorf("missing or invalid version field")
	}
	if int(version) > CurrentVersion {
		return nil, fmt.Errorf("%w: %d > %d", ErrVersionAhead, int(version), CurrentVersion)
	}

	for v := int(version); v < CurrentVersion; v++ {
		step, ok := migrations[v]
		if !ok {
			return nil, fmt.Errorf("no migration path from version %d", v)
		}
		step(doc)
		doc["version"] = float64(v + 1)
	}

	normalized, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("re-encode migrated document: %w", err)
	}

	var st State
	if err := json.Unmarshal(normalized, &st); err != nil {
		return nil, fmt.Errorf("decode progress state: %w", err)
	}
	ensureContainers(&st)
	return &st, nil
}

// migrateV1toV2: version 1 predates badges and settings, and logged
// activity under the "activity" key.
func migrateV1toV2(doc map[string]any) {
	if log, ok := doc["activity"]; ok {
		doc["activityLog"] = log
		delete(doc, "activity")
	}
	if _, ok := doc["badges"]; !ok {
		doc["badges"] = map[string]any{}
	}
	if _, ok := doc["settings"]; !ok {
		s := DefaultSettings()
		doc["settings"] = map[string]any{
			"theme":            s.Theme,
			"goDeeper":         s.GoDeeper,
			"animationSpeed":   s.AnimationSpeed,
			"sidebarCollapsed": s.SidebarCollapsed,
		}
	}
}

// ensureContainers replaces nil maps so operations never nil-check them.
func ensureContainers(st *State) {
	if st.Tiers == nil {
		st.Tiers = make(map[string]*TierProgress)
	}
	if st.Badges == nil {
		st.Badges = make(map[string]bool)
	}
	for _, tp := range st.Tiers {
		if tp.Modules == nil {
			tp.Modules = make(map[string]*ModuleProgress)
		}
		for _, mp := range tp.Modules {
			if mp.StepsCompleted == nil {
				mp.StepsCompleted = make(map[string]bool)
			}
			if mp.QuizAnswers == nil {
				mp.QuizAnswers = make(map[string]int)
			}
			if mp.ChallengesCompleted == nil {
				mp.ChallengesCompleted = make(map[string]bool)
			}
		}
	}
}
