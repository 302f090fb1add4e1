// Package buildinfo exposes the identifiers stamped at build time with
// -ldflags "-X wristos/internal/buildinfo.Version=... -X ...Commit=...".
package buildinfo

var (
	Version = "dev"
	Commit  = ""
)

// Short is the compact identifier shown on the about screen and in the
// simulator window title.
func Short() string {
	if Version != "" && Version != "dev" {
		return Version
	}
	if len(Commit) >= 8 {
		return Commit[:8]
	}
	if Commit != "" {
		return Commit
	}
	return "dev"
}
