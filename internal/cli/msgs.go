package cli

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort    = "Runtime code injector for Lua games"
	MsgVersionShort = "Print version information"
	MsgRunShort     = "Run a game with mods applied"
	MsgPatchShort   = "Patch one file and print the result"
	MsgListShort    = "List installed mods and the targets they patch"

	// Flag descriptions
	MsgFlagVerbose   = "Increase verbosity (-v DEBUG, -vv TRACE)"
	MsgFlagModDir    = "Mod directory (default <config dir>/<game>/Mods)"
	MsgFlagDumpAll   = "Dump every loaded buffer, not only patched ones"
	MsgFlagVanilla   = "Load no mods"
	MsgFlagIntegrity = "Prefix patched buffers with their checksum"
	MsgFlagEntry     = "Entry file, relative to the game directory"
	MsgFlagName      = "Target name the file is loaded under"
	MsgFlagOut       = "Write the patched file here instead of stdout"
	MsgFlagReport    = "Print which rules fired to stderr"
	MsgFlagOutput    = "Output format: text or yaml"

	// Error messages
	MsgErrRuntime      = "failed to initialize lovely: %w"
	MsgErrRun          = "game failed: %w"
	MsgErrReadFile     = "failed to read %s: %w"
	MsgErrWriteFile    = "failed to write %s: %w"
	MsgErrOutputFormat = "unknown output format %q"
)

// Long messages from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/run-long.txt
	msgRunLongRaw string
	MsgRunLong    = strings.TrimSpace(msgRunLongRaw)

	//go:embed msgs/patch-long.txt
	msgPatchLongRaw string
	MsgPatchLong    = strings.TrimSpace(msgPatchLongRaw)

	//go:embed msgs/list-example.txt
	msgListExampleRaw string
	MsgListExample    = strings.TrimRight(msgListExampleRaw, "\n")
)
