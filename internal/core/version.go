package core

import (
	"fmt"
	"runtime/debug"
	"strings"
)

// Version is resolved at startup: the module version for tagged
// releases, VCS revision for local builds, "devel" when neither is
// available.
var Version = "devel"

func init() {
	if info, ok := debug.ReadBuildInfo(); ok {
		Version = versionFromBuildInfo(info)
	}
}

func versionFromBuildInfo(info *debug.BuildInfo) string {
	// Tagged releases carry a real module version. Pseudo-versions are
	// local builds in disguise; VCS info says more about those.
	if v := info.Main.Version; v != "" && v != "(devel)" && !isPseudoVersion(v) {
		return v
	}

	var revision string
	var dirty bool
	for _, s := range info.Settings {
		switch s.Key {
		case "vcs.revision":
			revision = s.Value
		case "vcs.modified":
			dirty = s.Value == "true"
		}
	}
	if revision == "" {
		return "devel"
	}

	if len(revision) > 7 {
		revision = revision[:7]
	}
	if dirty {
		return fmt.Sprintf("devel-%s-dirty", revision)
	}
	return fmt.Sprintf("devel-%s", revision)
}

// FormatVersion formats the version string for display: tagged
// releases lose the "v" prefix, devel versions pass through as-is.
func FormatVersion(v string) string {
	return strings.TrimPrefix(v, "v")
}

// isPseudoVersion reports whether v looks like a Go module
// pseudo-version, which ends in a 12 character hex commit hash.
func isPseudoVersion(v string) bool {
	if i := strings.Index(v, "+"); i >= 0 {
		v = v[:i]
	}
	i := strings.LastIndex(v, "-")
	if i < 0 {
		return false
	}
	hash := v[i+1:]
	if len(hash) != 12 {
		return false
	}
	for _, c := range hash {
		if !((c >= '0' && c <= '9') || (c >= 'a' && c <= 'f')) {
			return false
		}
	}
	return true
}
