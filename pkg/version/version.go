// Package version reports build information for nepo.
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

var (
	Version   string // Set via ldflags.
	BuildDate string // Set via ldflags.

	GoVersion = runtime.Version()
	GoOS      = runtime.GOOS
	GoArch    = runtime.GOARCH

	moduleVersion, Revision = readBuildInfo()
)

// GetVersion returns the ldflags version, then the module version recorded
// by go install, then the VCS revision.
func GetVersion() string {
	switch {
	case Version != "":
		return Version
	case moduleVersion != "":
		return moduleVersion
	}

	return Revision
}

// String describes the build on one line.
func String() string {
	s := fmt.Sprintf("nepo %s (revision %s, %s %s/%s)", GetVersion(), Revision, GoVersion, GoOS, GoArch)
	if BuildDate != "" {
		s += " built " + BuildDate
	}

	return s
}

func readBuildInfo() (string, string) {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return "", "unknown"
	}

	return mainVersion(info), revision(info.Settings)
}

func mainVersion(info *debug.BuildInfo) string {
	if info.Main.Version == "" || info.Main.Version == "(devel)" {
		return ""
	}

	return info.Main.Version
}

func revision(settings []debug.BuildSetting) string {
	rev := "unknown"
	modified := false

	for _, s := range settings {
		switch s.Key {
		case "vcs.revision":
			rev = s.Value
			if len(rev) > 7 {
				rev = rev[:7]
			}

		case "vcs.modified":
			modified = s.Value == "true"
		}
	}

	if modified {
		return rev + "-dirty"
	}

	return rev
}
