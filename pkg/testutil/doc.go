// Package testutil provides fixtures for testing lovely components.
//
// Key components:
//   - ModTree: a mod directory on an in-memory afero filesystem
//   - BuildZip: zip archives for zip mod tests
//   - CaptureLogs: the global zerolog logger redirected into a buffer
//
// All fixtures are inline and isolated per test; nothing touches the real
// filesystem.
package testutil
