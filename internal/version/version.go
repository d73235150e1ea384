// Package version holds build-time identity for the phpray CLI. These
// variables are overridden via -ldflags at release build time; the zero
// values here are what a `go build` straight from source reports.
package version

var (
	// Version is the semantic version of the CLI.
	Version = "0.1.0-dev"

	// GitCommit is an optional git commit hash.
	GitCommit = ""

	// GitMessage is an optional one-line summary of the commit built from.
	GitMessage = ""

	// BuildDate is an optional build date in ISO-8601.
	BuildDate = ""
)

// VersionString renders the version, followed by the commit hash in
// parentheses when one is set; cobra's --version flag and the version
// command print it after the program name.
func VersionString() string {
	v := Version
	if v == "" {
		v = "dev"
	}
	if GitCommit != "" {
		return v + " (" + GitCommit + ")"
	}
	return v
}
