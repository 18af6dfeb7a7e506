package lovely

// Inventory summarises what the runtime loaded, for listing tools.
type Inventory struct {
	ModDir  string          `yaml:"mod_dir"`
	Vanilla bool            `yaml:"vanilla"`
	Mods    []ModSummary    `yaml:"mods"`
	Targets []TargetSummary `yaml:"targets"`
}

// ModSummary describes one discovered mod.
type ModSummary struct {
	Name      string            `yaml:"name"`
	Path      string            `yaml:"path"`
	Archive   bool              `yaml:"archive,omitempty"`
	Rejected  bool              `yaml:"rejected,omitempty"`
	Manifests []ManifestSummary `yaml:"manifests,omitempty"`
}

// ManifestSummary describes one loaded manifest file.
type ManifestSummary struct {
	File     string   `yaml:"file"`
	Version  string   `yaml:"version,omitempty"`
	Priority int      `yaml:"priority"`
	Rules    int      `yaml:"rules"`
	Warnings []string `yaml:"warnings,omitempty"`
}

// TargetSummary lists the rules that apply to one target, in order.
type TargetSummary struct {
	Name  string   `yaml:"name"`
	Rules []string `yaml:"rules"`
}

// Inventory reports the mods, manifests and targets of the runtime. A mod
// with manifest files but no loaded manifest was rejected at load.
func (r *Runtime) Inventory() Inventory {
	reg := r.engine.Registry()
	inv := Inventory{ModDir: r.cfg.ModDir, Vanilla: r.cfg.Vanilla}

	byMod := make(map[string][]ManifestSummary)
	for _, m := range reg.Manifests() {
		byMod[m.Mod] = append(byMod[m.Mod], ManifestSummary{
			File:     m.File,
			Version:  m.Version,
			Priority: m.Priority,
			Rules:    len(m.Rules),
			Warnings: m.Warnings,
		})
	}

	for _, mod := range r.mods {
		loaded := byMod[mod.Name]
		inv.Mods = append(inv.Mods, ModSummary{
			Name:      mod.Name,
			Path:      mod.Path,
			Archive:   mod.Archive,
			Rejected:  len(loaded) == 0 && len(mod.Manifests) > 0,
			Manifests: loaded,
		})
	}

	for _, target := range reg.Targets() {
		ts := TargetSummary{Name: target}
		for _, entry := range reg.ModulesBefore(target) {
			ts.Rules = append(ts.Rules, entry.Describe())
		}
		for _, entry := range reg.Patches(target) {
			ts.Rules = append(ts.Rules, entry.Describe())
		}
		inv.Targets = append(inv.Targets, ts)
	}
	return inv
}
