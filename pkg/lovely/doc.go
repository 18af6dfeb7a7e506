// Package lovely is the process-wide injector runtime.
//
// A host integration calls Initialize once, from however many places it
// likes: only the first call discovers mods and builds the engine. Each host
// scripting state then gets a Loader whose LoadBuffer is a drop-in
// replacement for the host's own "load buffer" primitive.
package lovely
