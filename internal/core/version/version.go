// Package version provides information about the build version of the service.
package version

import "runtime/debug"

// BuildInfo holds version information about the service build.
type BuildInfo struct {
	Service   string `json:"service"`
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	Date      string `json:"date"`
	GoVersion string `json:"go_version,omitempty"`
}

// Info returns the build information. version, commit and date are set at
// build time:
//
//	-ldflags "-X 'pbl/internal/core/version.version=v0.3.0' -X 'pbl/internal/core/version.commit=abcd'"
func Info() BuildInfo {
	bi := BuildInfo{
		Service: Service,
		Version: version,
		Commit:  commit,
		Date:    date,
	}
	if info, ok := debug.ReadBuildInfo(); ok {
		bi.GoVersion = info.GoVersion
	}
	return bi
}

// Service is the name reported by the API and the voice bridge welcome frame
const Service = "pbl-api"

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)
