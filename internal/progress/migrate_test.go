package progress

import (
	"errors"
	"testing"
)

func TestMigrateV1Document(t *testing.T) {
	raw := []byte(`{
		"version": 1,
		"streak": {"current": 2, "longest": 4, "lastActiveDate": "2024-01-05"},
		"tiers": {
			"foundations": {
				"unlocked": true,
				"modules": {
					"vectors": {
						"status": "in-progress",
						"stepsCompleted": {"v-intro": true},
						"quizAnswers": {"v-quiz-1": 1}
					}
				}
			}
		},
		"activity": [
			{"type": "step", "date": "2024-01-05", "timestamp": "2024-01-05T10:00:00Z", "moduleId": "vectors", "stepId": "v-intro"}
		]
	}`)

	st, err := decodeAndMigrate(raw)
	if err != nil {
		t.Fatalf("decodeAndMigrate: %v", err)
	}

	if st.Version != CurrentVersion {
		t.Errorf("Version = %d, want %d", st.Version, CurrentVersion)
	}
	if len(st.ActivityLog) != 1 {
		t.Fatalf("activity log entries = %d, want 1 (renamed from activity)", len(st.ActivityLog))
	}
	if st.ActivityLog[0].StepID != "v-intro" {
		t.Errorf("entry stepId = %q, want v-intro", st.ActivityLog[0].StepID)
	}
	if st.Badges == nil {
		t.Error("badges container missing after migration")
	}
	if st.Settings != DefaultSettings() {
		t.Errorf("settings = %+v, want defaults", st.Settings)
	}

	// Carried-over progress survives intact.
	mp := st.Module("foundations", "vectors")
	if mp == nil {
		t.Fatal("vectors module lost in migration")
	}
	if !mp.StepsCompleted["v-intro"] {
		t.Error("stepsCompleted lost in migration")
	}
	if mp.QuizAnswers["v-quiz-1"] != 1 {
		t.Error("quizAnswers lost in migration")
	}
	if mp.ChallengesCompleted == nil {
		t.Error("challengesCompleted container not initialized")
	}
}

func TestMigrateCurrentVersionPassthrough(t *testing.T) {
	raw := []byte(`{"version": 2, "streak": {"current": 1, "longest": 1, "lastActiveDate": "2024-01-01"}}`)

	st, err := decodeAndMigrate(raw)
	if err != nil {
		t.Fatalf("decodeAndMigrate: %v", err)
	}
	if st.Streak.Current != 1 {
		t.Errorf("Current = %d, want 1", st.Streak.Current)
	}
}

func TestMigrateRejectsNewerVersion(t *testing.T) {
	raw := []byte(`{"version": 99}`)

	_, err := decodeAndMigrate(raw)
	if !errors.Is(err, ErrVersionAhead) {
		t.Errorf("err = %v, want ErrVersionAhead", err)
	}
}

func TestMigrateRejectsMissingVersion(t *testing.T) {
	for _, raw := range []string{`{}`, `{"version": 0}`, `{"version": "two"}`} {
		if _, err := decodeAndMigrate([]byte(raw)); err == nil {
			t.Errorf("decodeAndMigrate(%s) should fail", raw)
		}
	}
}
