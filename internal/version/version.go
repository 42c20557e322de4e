// Package version holds build information stamped in by the release
// build through -ldflags.
package version

var (
	Version = "dev"     // -X github.com/arthur-debert/fuxi/internal/version.Version={{.Version}}
	Commit  = "unknown" // -X github.com/arthur-debert/fuxi/internal/version.Commit={{.Commit}}
	Date    = "unknown" // -X github.com/arthur-debert/fuxi/internal/version.Date={{.Date}}
)
