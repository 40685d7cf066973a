// Package version provides information about the build version of the service.
package version

// BuildInfo holds version information about the service build.
type BuildInfo struct {
	Service string `json:"service"`
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Date    string `json:"date"`
}

// Info returns the build information for service. The version, commit and date
// variables are set at build time using -ldflags.
func Info(service string) BuildInfo {
	// -ldflags "-X 'tsdash/internal/core/version.version=v0.1.0'
	// -X 'tsdash/internal/core/version.commit=abcd' -X 'tsdash/internal/core/version.date=2026-10-19'"
	return BuildInfo{
		Service: service,
		Version: version,
		Commit:  commit,
		Date:    date,
	}
}

// Version is the bare version string
func Version() string { return version }

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)
