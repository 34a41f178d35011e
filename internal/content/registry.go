package content

import (
	"encoding/json"
	"sort"
)

// Loader produces the raw JSON bundle for one module. Loaders run lazily on
// first Resolve, so the registry never depends on a bundle's internal shape
// until a caller actually asks for it.
type Loader func() ([]byte, error)

// Registry resolves module identifiers to lesson content and exposes static
// metadata for listing and unlock logic. It is a pure lookup; all learner
// state lives elsewhere.
type Registry struct {
	meta    []ModuleMetadata
	loaders map[string]Loader
	cache   map[string]*ModuleContent
	tiers   []string
}

// New returns a registry seeded with the built-in curriculum.
func New() *Registry {
	return NewWithModules(seedMetadata(), seedLoaders())
}

// NewWithModules builds a registry from explicit metadata and loaders.
// Tier order follows first appearance in meta.
func NewWithModules(meta []ModuleMetadata, loaders map[string]Loader) *Registry {
	var tiers []string
	seen := make(map[string]bool)
	for _, m := range meta {
		if !seen[m.TierID] {
			seen[m.TierID] = true
			tiers = append(tiers, m.TierID)
		}
	}
	return &Registry{
		meta:    sortPedagogically(meta),
		loaders: loaders,
		cache:   make(map[string]*ModuleContent),
		tiers:   tiers,
	}
}

// Resolve returns the content bundle for a module ID. The second return is
// false for unknown IDs and for bundles that fail schema validation; callers
// treat both as "not found", never as a crash.
func (r *Registry) Resolve(id string) (*ModuleContent, bool) {
	if mc, ok := r.cache[id]; ok {
		return mc, true
	}

	load, ok := r.loaders[id]
	if !ok {
		return nil, false
	}

	raw, err := load()
	if err != nil {
		return nil, false
	}
	if err := validateBundle(raw); err != nil {
		return nil, false
	}

	var mc ModuleContent
	if err := json.Unmarshal(raw, &mc); err != nil {
		return nil, false
	}

	r.cache[id] = &mc
	return &mc, true
}

// Metadata returns the listing entry for one module.
func (r *Registry) Metadata(id string) (ModuleMetadata, bool) {
	for _, m := range r.meta {
		if m.ID == id {
			return m, true
		}
	}
	return ModuleMetadata{}, false
}

// ListMetadata returns all modules in pedagogical order: prerequisites
// always precede their dependents.
func (r *Registry) ListMetadata() []ModuleMetadata {
	out := make([]ModuleMetadata, len(r.meta))
	copy(out, r.meta)
	return out
}

// TierIDs returns tier identifiers in curriculum order.
func (r *Registry) TierIDs() []string {
	out := make([]string, len(r.tiers))
	copy(out, r.tiers)
	return out
}

// ModulesInTier returns the modules of one tier, in pedagogical order.
func (r *Registry) ModulesInTier(tierID string) []ModuleMetadata {
	var out []ModuleMetadata
	for _, m := range r.meta {
		if m.TierID == tierID {
			out = append(out, m)
		}
	}
	return out
}

// PrecedingTier returns the tier before tierID in curriculum order, or ""
// for the first tier.
func (r *Registry) PrecedingTier(tierID string) string {
	for i, t := range r.tiers {
		if t == tierID && i > 0 {
			return r.tiers[i-1]
		}
	}
	return ""
}

// sortPedagogically orders modules so prerequisites precede dependents
// (Kahn's algorithm), breaking ties by authored position for stability.
func sortPedagogically(meta []ModuleMetadata) []ModuleMetadata {
	byID := make(map[string]ModuleMetadata, len(meta))
	authored := make(map[string]int, len(meta))
	inDegree := make(map[string]int, len(meta))
	dependents := make(map[string][]string)

	for i, m := range meta {
		byID[m.ID] = m
		authored[m.ID] = i
		inDegree[m.ID] = 0
	}
	for _, m := range meta {
		for _, pre := range m.Prerequisites {
			if _, known := byID[pre]; !known {
				continue // dangling prerequisite, ignore for ordering
			}
			inDegree[m.ID]++
			dependents[pre] = append(dependents[pre], m.ID)
		}
	}

	var queue []string
	for id, deg := range inDegree {
		if deg == 0 {
			queue = append(queue, id)
		}
	}
	sort.Slice(queue, func(i, j int) bool { return authored[queue[i]] < authored[queue[j]] })

	var order []ModuleMetadata
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		order = append(order, byID[id])

		deps := append([]string(nil), dependents[id]...)
		sort.Slice(deps, func(i, j int) bool { return authored[deps[i]] < authored[deps[j]] })
		for _, dep := range deps {
			inDegree[dep]--
			if inDegree[dep] == 0 {
				queue = append(queue, dep)
			}
		}
		sort.Slice(queue, func(i, j int) bool { return authored[queue[i]] < authored[queue[j]] })
	}

	// A cycle would leave modules unplaced; append them in authored order
	// rather than dropping content.
	if len(order) < len(meta) {
		placed := make(map[string]bool, len(order))
		for _, m := range order {
			placed[m.ID] = true
		}
		for _, m := range meta {
			if !placed[m.ID] {
				order = append(order, m)
			}
		}
	}

	return order
}
