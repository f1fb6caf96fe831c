package version

// Build information set by ldflags
var (
	Version = "dev"     // Set by goreleaser: -X github.com/arthur-debert/mcsi/internal/version.Version={{.Version}}
	Commit  = "unknown" // Set by goreleaser: -X github.com/arthur-debert/mcsi/internal/version.Commit={{.Commit}}
	Date    = "unknown" // Set by goreleaser: -X github.com/arthur-debert/mcsi/internal/version.Date={{.Date}}
)

// UserAgent is the User-Agent sent to catalog hosts and download mirrors.
func UserAgent() string {
	return "mcsi/" + Version
}
