package patch

import "fmt"

// ModuleRule makes a mod file require-able under Name. The engine registers
// it with the host before Before is loaded, or at the start of a host
// session when Before is empty.
type ModuleRule struct {
	Source string
	Before string
	Name   string
	// LoadNow evaluates the module immediately before Before loads and
	// preloads its result rather than its loader.
	LoadNow bool
}

// ChunkName is the name the module source is compiled and patched under.
func (r *ModuleRule) ChunkName() string {
	return fmt.Sprintf("=[lovely %s %q]", r.Name, r.Source)
}
