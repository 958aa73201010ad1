package models

import "fmt"

// AppBuildInfo is the linker-injected identity of the running binary. It is
// printed by the CLI and sent to the server as the User-Agent of every
// request.
type AppBuildInfo struct {
	Version string
	Date    string
	Commit  string
}

// NewAppBuildInfo fills empty values with "N/A".
func NewAppBuildInfo(version, date, commit string) AppBuildInfo {
	return AppBuildInfo{
		Version: orNA(version),
		Date:    orNA(date),
		Commit:  orNA(commit),
	}
}

// UserAgent returns the product token sent in the User-Agent header.
func (a AppBuildInfo) UserAgent() string {
	return "odksync/" + a.Version
}

func (a AppBuildInfo) String() string {
	return fmt.Sprintf("Build version: %s\nBuild date: %s\nBuild commit: %s", a.Version, a.Date, a.Commit)
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
