// Package patch defines the rule kinds a manifest can declare and how each
// one rewrites a source buffer.
//
// Rule is a closed set: PatternRule, RegexRule, CopyRule and ModuleRule are
// the only implementations, and callers dispatch on them with a type switch.
// Pattern, Regex and Copy rules are pure functions of the buffer (Copy also
// reads its source files); Module rules have no buffer effect and are carried
// out by the engine against the host.
package patch
