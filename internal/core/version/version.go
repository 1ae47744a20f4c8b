// Package version reports build metadata stamped in at link time
//
//	go build -ldflags "-X feedbackd/internal/core/version.version=v0.1.0 -X feedbackd/internal/core/version.commit=abcd"
//
// Commit and Date fall back to the vcs stamps the go tool records when ldflags left them unset
package version

import "runtime/debug"

// ServiceName is the public name of the API binary
const ServiceName = "feedbackd-api"

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// BuildInfo is the /meta/version payload
type BuildInfo struct {
	Service string `json:"service"`
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Date    string `json:"date"`
	Go      string `json:"go,omitempty"`
}

// Info returns the build information for the running binary
func Info() BuildInfo {
	bi, _ := debug.ReadBuildInfo()
	return describe(bi)
}

func describe(bi *debug.BuildInfo) BuildInfo {
	out := BuildInfo{Service: ServiceName, Version: version, Commit: commit, Date: date}
	if bi == nil {
		return out
	}
	out.Go = bi.GoVersion
	for _, s := range bi.Settings {
		switch {
		case s.Key == "vcs.revision" && out.Commit == "none":
			out.Commit = s.Value
		case s.Key == "vcs.time" && out.Date == "unknown":
			out.Date = s.Value
		}
	}
	return out
}
