package version

// Build information set by ldflags
var (
	Version = "dev"     // Set by goreleaser: -X github.com/arthur-debert/lovely/internal/version.Version={{.Version}}
	Commit  = "unknown" // Set by goreleaser: -X github.com/arthur-debert/lovely/internal/version.Commit={{.Commit}}
	Date    = "unknown" // Set by goreleaser: -X github.com/arthur-debert/lovely/internal/version.Date={{.Date}}
)

// Repo is where the injector's source and releases live.
const Repo = "https://github.com/arthur-debert/lovely"

// String renders the build information on one line.
func String() string {
	return Version + " (" + Commit + ", " + Date + ")"
}
