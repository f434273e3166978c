/*
Package dist builds wheel and sdist distributions for compiled extension modules.
*/
package dist

import (
	"fmt"
	"runtime"
)

// DefaultPythonTag is the python implementation tag stamped into wheel filenames when the
// caller doesn't specify one.
const DefaultPythonTag = "cp312"

// Tag is a wheel compatibility tag triple.
type Tag struct {
	Python   string
	ABI      string
	Platform string
}

// NewTag creates a Tag for the host platform. An empty pythonTag falls back to
// DefaultPythonTag; the ABI tag matches the python tag.
func NewTag(pythonTag string) Tag {
	if pythonTag == "" {
		pythonTag = DefaultPythonTag
	}

	return Tag{
		Python:   pythonTag,
		ABI:      pythonTag,
		Platform: platformTag(),
	}
}

// String renders the tag triple as it appears in wheel filenames and WHEEL metadata.
func (t Tag) String() string {
	return fmt.Sprintf("%s-%s-%s", t.Python, t.ABI, t.Platform)
}

// platformTag derives the wheel platform tag from the host OS and architecture. Since the
// compiled artifact is produced on this machine, host and target are the same.
func platformTag() string {
	switch runtime.GOOS {
	case "linux":
		return "linux_" + linuxArch()
	case "windows":
		if runtime.GOARCH == "amd64" {
			return "win_amd64"
		}
		return "win32"
	case "darwin":
		arch := runtime.GOARCH
		if arch == "amd64" {
			arch = "x86_64"
		}
		return "macosx_10_9_" + arch
	default:
		return "any"
	}
}

func linuxArch() string {
	switch runtime.GOARCH {
	case "amd64":
		return "x86_64"
	case "arm64":
		return "aarch64"
	case "386":
		return "i686"
	default:
		return runtime.GOARCH
	}
}
