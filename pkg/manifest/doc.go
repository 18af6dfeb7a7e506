// Package manifest turns a mod's TOML patch files into typed rules and
// orders every mod's rules into one Registry.
//
// A manifest file looks like:
//
//	[manifest]
//	version = "1.0.0"
//	priority = 0
//
//	[vars]
//	speed = "2"
//
//	[[patches]]
//	[patches.pattern]
//	target = "game.lua"
//	pattern = "self.SPEEDFACTOR = 1"
//	position = "after"
//	payload = "self.SPEEDFACTOR = {{lovely:speed}}"
//
// Each [[patches]] entry holds exactly one of pattern, regex, copy or
// module. Unknown keys are reported as warnings. A file that fails to parse
// rejects its whole mod; a single rule whose variables do not resolve, or
// whose regex does not compile, is dropped on its own.
package manifest
