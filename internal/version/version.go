// Package version reports the build version of tmcatcher.
package version

import (
	"fmt"
	"runtime/debug"
	"time"
)

// Set at build time:
//
//	go build -ldflags="-X github.com/muurk/tmcatcher/internal/version.Version=v1.2.3 \
//	                   -X github.com/muurk/tmcatcher/internal/version.Commit=abc123"
//
// Values left empty are filled from the VCS stamp of the build, then from a
// dev fallback.
var (
	Version = ""
	Commit  = ""
)

func init() {
	info, _ := debug.ReadBuildInfo()
	Version, Commit = resolve(Version, Commit, info, time.Now())
}

// resolve fills empty version and commit values from build info.
func resolve(version, commit string, info *debug.BuildInfo, now time.Time) (string, string) {
	vcs := map[string]string{}
	if info != nil {
		for _, s := range info.Settings {
			vcs[s.Key] = s.Value
		}
	}

	if commit == "" {
		if rev := vcs["vcs.revision"]; rev != "" {
			commit = rev[:min(len(rev), 7)]
			if vcs["vcs.modified"] == "true" {
				commit += "-dirty"
			}
		} else {
			commit = "unknown"
		}
	}

	if version == "" {
		if info != nil && info.Main.Version != "" && info.Main.Version != "(devel)" {
			version = info.Main.Version
		} else if t, err := time.Parse(time.RFC3339, vcs["vcs.time"]); err == nil {
			version = "dev-" + t.Format("20060102")
		} else {
			version = "dev-" + now.Format("20060102-150405")
		}
	}
	return version, commit
}

// Full returns the version with its commit
func Full() string {
	return fmt.Sprintf("%s (commit: %s)", Version, Commit)
}

// UserAgent is sent with every backend request
func UserAgent() string {
	return fmt.Sprintf("tmcatcher/%s (%s)", Version, Commit)
}
