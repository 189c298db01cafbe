// Package version reports the build version of uplink.
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"time"
)

// Set at build time via ldflags:
//
//	go build -ldflags="-X github.com/muurk/uplink/internal/version.Version=v0.3.0 \
//	                   -X github.com/muurk/uplink/internal/version.Commit=abc123"
//
// When unset they are derived from VCS build info, then fall back to "dev".
var (
	Version = ""
	Commit  = ""
)

func init() {
	if Version == "" || Commit == "" {
		if info, ok := debug.ReadBuildInfo(); ok {
			v, c := fromBuildInfo(info)
			if Version == "" {
				Version = v
			}
			if Commit == "" {
				Commit = c
			}
		}
	}

	if Version == "" {
		Version = fmt.Sprintf("dev-%s", time.Now().Format("20060102-150405"))
	}
	if Commit == "" {
		Commit = "unknown"
	}
}

// fromBuildInfo derives a dev version from the VCS commit time and a short
// commit hash, marked -dirty for modified trees. Either may be empty.
func fromBuildInfo(info *debug.BuildInfo) (version, commit string) {
	settings := make(map[string]string, len(info.Settings))
	for _, s := range info.Settings {
		settings[s.Key] = s.Value
	}

	if rev := settings["vcs.revision"]; rev != "" {
		if len(rev) > 7 {
			rev = rev[:7]
		}
		commit = rev
		if settings["vcs.modified"] == "true" {
			commit += "-dirty"
		}
	}

	if t, err := time.Parse(time.RFC3339, settings["vcs.time"]); err == nil {
		version = "dev-" + t.Format("20060102")
	}
	return version, commit
}

// Full returns the version string including commit
func Full() string {
	return fmt.Sprintf("%s (commit: %s)", Version, Commit)
}

// Platform returns the Go toolchain and target, e.g. "go1.24.0 linux/amd64".
func Platform() string {
	return fmt.Sprintf("%s %s/%s", runtime.Version(), runtime.GOOS, runtime.GOARCH)
}
