// Package config resolves the runtime configuration.
//
// Sources are layered, later ones winning: the embedded defaults, an
// optional TOML file, LOVELY_* environment variables and finally explicit
// overrides such as CLI flags or arguments passed to the host process.
package config
