// Package build carries version metadata stamped in by the release build.
package build

import "fmt"

// Set with -ldflags "-X github.com/shaharia-lab/bankalerts/internal/build.Version=...".
var (
	Version   = "dev"
	CommitSHA = "unknown"
	BuildDate = "unknown"
)

// Info is the build metadata reported by the CLI and the HTTP API.
type Info struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	BuildDate string `json:"build_date"`
}

// Current returns the metadata of the running binary.
func Current() Info {
	return Info{Version: Version, Commit: CommitSHA, BuildDate: BuildDate}
}

// String formats the metadata as "<version> (commit <sha>, built <date>)".
func (i Info) String() string {
	return fmt.Sprintf("%s (commit %s, built %s)", i.Version, i.Commit, i.BuildDate)
}
