// Package mods finds the installed mods under a mod directory.
//
// A mod is either a directory or a .zip archive directly under the mod
// directory. Discovery handles:
//
//   - ordering (directories first, then archives, each by lower-cased name)
//   - .lovelyignore files and the lovely/blacklist.txt skip list
//   - locating manifest files (lovely.toml, then lovely/**/*.toml)
//   - reading mod files for copy and module rules, from disk or archive
//
// Parsing manifests is left to the manifest package.
package mods
