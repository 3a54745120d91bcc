// Package version holds build metadata injected at link time.
package version

import "runtime"

// Populated via -ldflags at release build time.
var (
	// GitRelease is the release tag, or "dev" for local builds.
	GitRelease = "dev"
	// GitCommit is the short commit hash.
	GitCommit = "unknown"
	// GitCommitDate is the commit timestamp.
	GitCommitDate = "unknown"
)

// GoInfo describes the Go toolchain and platform used for the build.
var GoInfo = runtime.Version() + " " + runtime.GOOS + "/" + runtime.GOARCH
