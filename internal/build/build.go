// Package build contains build specific information.
package build

import (
	"runtime/debug"
	"strconv"
)

// version is injected at build time via -ldflags.
var version = "devel"

var gitRevision string

func init() {
	var (
		revision string
		dirty    bool
	)

	info, _ := debug.ReadBuildInfo()
	for _, i := range info.Settings {
		switch {
		case i.Key == "vcs.revision":
			revision = i.Value
		case i.Key == "vcs.modified":
			dirty, _ = strconv.ParseBool(i.Value)
		}
	}

	gitRevision = revision
	if dirty {
		gitRevision += "-dirty"
	}
}

// GetGitRevision retrieves the revision of the current build. If the build contains uncommitted
// changes the revision will be suffixed with "-dirty".
func GetGitRevision() string {
	return gitRevision
}

// GetVersion retrieves the semantic version of the current build. It is also used as the
// generator version stamped into wheel metadata.
func GetVersion() string {
	return version
}
