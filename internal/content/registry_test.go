package content

import (
	"errors"
	"testing"
)

func TestResolveSeededModules(t *testing.T) {
	r := New()

	for _, id := range []string{"vectors", "dot-products", "matrices", "gradient-descent", "linear-regression"} {
		mc, ok := r.Resolve(id)
		if !ok {
			t.Fatalf("Resolve(%q) not found", id)
		}
		if mc.ID != id {
			t.Errorf("bundle ID = %q, want %q", mc.ID, id)
		}
		if len(mc.Steps) == 0 {
			t.Errorf("module %q has no steps", id)
		}
		if len(mc.RequiredStepIDs()) == 0 {
			t.Errorf("module %q has no required steps", id)
		}
	}
}

func TestResolveUnknownModule(t *testing.T) {
	r := New()
	if _, ok := r.Resolve("quantum-annealing"); ok {
		t.Error("Resolve of unknown module should report not found")
	}
}

func TestResolveCachesBundle(t *testing.T) {
	calls := 0
	loaders := map[string]Loader{
		"m1": func() ([]byte, error) {
			calls++
			return []byte(`{"id":"m1","title":"M1","steps":[{"id":"s1","title":"S1","kind":"concept","required":true}]}`), nil
		},
	}
	meta := []ModuleMetadata{{ID: "m1", TierID: "t0"}}
	r := NewWithModules(meta, loaders)

	if calls != 0 {
		t.Fatalf("loader ran eagerly: calls = %d", calls)
	}
	r.Resolve("m1")
	r.Resolve("m1")
	if calls != 1 {
		t.Errorf("loader calls = %d, want 1 (lazy + cached)", calls)
	}
}

func TestResolveInvalidBundleIsAbsent(t *testing.T) {
	loaders := map[string]Loader{
		"bad-json":   func() ([]byte, error) { return []byte(`{not json`), nil },
		"bad-shape":  func() ([]byte, error) { return []byte(`{"id":"bad-shape","title":"X","steps":[]}`), nil },
		"load-error": func() ([]byte, error) { return nil, errors.New("disk gone") },
	}
	meta := []ModuleMetadata{
		{ID: "bad-json", TierID: "t0"},
		{ID: "bad-shape", TierID: "t0"},
		{ID: "load-error", TierID: "t0"},
	}
	r := NewWithModules(meta, loaders)

	for id := range loaders {
		if _, ok := r.Resolve(id); ok {
			t.Errorf("Resolve(%q) should treat broken bundle as absent", id)
		}
	}
}

func TestQuizOptionCountBounds(t *testing.T) {
	// The quiz widget renders at most four labeled options, so validation
	// must reject bundles that author more.
	quizBundle := func(options string) Loader {
		return func() ([]byte, error) {
			return []byte(`{"id":"q","title":"Q","steps":[
				{"id":"s1","title":"S1","kind":"quiz","required":true,
				 "quiz":{"question":"?","options":` + options + `,"correctIndex":1}}]}`), nil
		}
	}

	cases := []struct {
		name    string
		options string
		wantOK  bool
	}{
		{"two options", `["a","b"]`, true},
		{"four options", `["a","b","c","d"]`, true},
		{"five options", `["a","b","c","d","e"]`, false},
		{"one option", `["a"]`, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := NewWithModules(
				[]ModuleMetadata{{ID: "q", TierID: "t0"}},
				map[string]Loader{"q": quizBundle(tc.options)},
			)
			if _, ok := r.Resolve("q"); ok != tc.wantOK {
				t.Errorf("Resolve with options %s: ok = %v, want %v", tc.options, ok, tc.wantOK)
			}
		})
	}
}

func TestListMetadataPrerequisiteOrder(t *testing.T) {
	r := New()
	list := r.ListMetadata()

	pos := make(map[string]int, len(list))
	for i, m := range list {
		pos[m.ID] = i
	}

	for _, m := range list {
		for _, pre := range m.Prerequisites {
			if pos[pre] > pos[m.ID] {
				t.Errorf("prerequisite %q listed after dependent %q", pre, m.ID)
			}
		}
	}
}

func TestTierOrdering(t *testing.T) {
	r := New()

	tiers := r.TierIDs()
	if len(tiers) != 2 || tiers[0] != "foundations" || tiers[1] != "core-ml" {
		t.Fatalf("TierIDs() = %v, want [foundations core-ml]", tiers)
	}

	if got := r.PrecedingTier("core-ml"); got != "foundations" {
		t.Errorf("PrecedingTier(core-ml) = %q, want foundations", got)
	}
	if got := r.PrecedingTier("foundations"); got != "" {
		t.Errorf("PrecedingTier(foundations) = %q, want empty", got)
	}

	mods := r.ModulesInTier("foundations")
	if len(mods) != 3 {
		t.Errorf("foundations modules = %d, want 3", len(mods))
	}
}

func TestSeedChallengesResolve(t *testing.T) {
	r := New()

	mc, ok := r.Resolve("vectors")
	if !ok {
		t.Fatal("vectors module missing")
	}

	spec, ok := mc.Challenge("vec-reach-target")
	if !ok {
		t.Fatal("vec-reach-target challenge missing")
	}
	if spec.Target.X != 3 || spec.Target.Y != 4 {
		t.Errorf("target = (%v,%v), want (3,4)", spec.Target.X, spec.Target.Y)
	}
	if _, ok := mc.Challenge("nope"); ok {
		t.Error("unknown challenge should report not found")
	}
}
