// Package registry provides a generic, thread-safe store of named items.
//
// Names are write-once: the first registration of a name wins and later
// registrations are handed the existing item. The patch engine relies on
// this for its applied-buffer record, where racing duplicate computations
// must converge on one value.
package registry
