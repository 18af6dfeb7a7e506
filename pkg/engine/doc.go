// Package engine applies the registry's rules to buffers the host is about
// to compile.
//
// An Engine is shared by the whole process. It owns the fingerprint cache,
// so a (name, content) pair is only ever patched once and repeated loads
// return identical bytes. A Session binds the Engine to one host runtime and
// tracks which modules that runtime has already been given.
package engine
