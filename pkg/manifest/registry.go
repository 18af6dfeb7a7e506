package manifest

import (
	"sort"

	"github.com/arthur-debert/lovely/pkg/logging"
	"github.com/arthur-debert/lovely/pkg/patch"
)

// Entry is a rule together with the manifest that declared it.
type Entry struct {
	Rule     patch.Rule
	Manifest *Manifest
}

// Describe identifies the rule and where it came from.
func (e Entry) Describe() string {
	return e.Manifest.ID() + ": " + e.Rule.Describe()
}

// Registry is the global, ordered view of every manifest. Manifests are
// sorted by priority, lowest first, then by discovery order; rules keep
// their file order within a manifest. A Registry is never modified after
// NewRegistry returns and is safe for concurrent use.
type Registry struct {
	manifests []*Manifest
	patches   map[string][]Entry
	before    map[string][]Entry
	eager     []Entry
	modules   []Entry
}

// NewRegistry orders manifests and indexes their rules by target.
func NewRegistry(manifests []*Manifest) *Registry {
	logger := logging.GetLogger("manifest.registry")

	sorted := make([]*Manifest, len(manifests))
	copy(sorted, manifests)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Priority != sorted[j].Priority {
			return sorted[i].Priority < sorted[j].Priority
		}
		return sorted[i].Index < sorted[j].Index
	})

	r := &Registry{
		manifests: sorted,
		patches:   make(map[string][]Entry),
		before:    make(map[string][]Entry),
	}

	moduleOwners := make(map[string]*Manifest)
	for _, m := range sorted {
		for _, rule := range m.Rules {
			entry := Entry{Rule: rule, Manifest: m}

			mod, ok := rule.(*patch.ModuleRule)
			if !ok {
				for _, target := range rule.Targets() {
					r.patches[target] = append(r.patches[target], entry)
				}
				continue
			}

			if owner, dup := moduleOwners[mod.Name]; dup {
				logger.Warn().
					Str("module", mod.Name).
					Str("kept", owner.ID()).
					Str("ignored", m.ID()).
					Msg("Duplicate module name, keeping the first registration")
				continue
			}
			moduleOwners[mod.Name] = m
			r.modules = append(r.modules, entry)
			if mod.Before == "" {
				r.eager = append(r.eager, entry)
			} else {
				r.before[mod.Before] = append(r.before[mod.Before], entry)
			}
		}
	}

	logger.Debug().
		Int("manifests", len(sorted)).
		Int("targets", len(r.patches)).
		Int("modules", len(r.modules)).
		Msg("Registry built")
	return r
}

// Manifests returns every manifest in registry order.
func (r *Registry) Manifests() []*Manifest {
	return r.manifests
}

// Patches returns the pattern, regex and copy rules targeting target, in
// application order.
func (r *Registry) Patches(target string) []Entry {
	return r.patches[target]
}

// ModulesBefore returns the module rules that must be registered before
// target loads.
func (r *Registry) ModulesBefore(target string) []Entry {
	return r.before[target]
}

// EagerModules returns the module rules with no before constraint. They are
// registered at the start of a host session.
func (r *Registry) EagerModules() []Entry {
	return r.eager
}

// Modules returns every module rule in registry order.
func (r *Registry) Modules() []Entry {
	return r.modules
}

// Targets lists every target some rule patches, sorted.
func (r *Registry) Targets() []string {
	seen := make(map[string]struct{}, len(r.patches)+len(r.before))
	for t := range r.patches {
		seen[t] = struct{}{}
	}
	for t := range r.before {
		seen[t] = struct{}{}
	}
	out := make([]string, 0, len(seen))
	for t := range seen {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

// Touches reports whether any rule involves target.
func (r *Registry) Touches(target string) bool {
	return len(r.patches[target]) > 0 || len(r.before[target]) > 0
}
