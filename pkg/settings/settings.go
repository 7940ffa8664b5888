// Package settings provides build metadata, per-run options, and context
// helpers shared by the grdfind commands.
package settings

// CliBinaryName is the canonical binary name for this tool.
const CliBinaryName = "grdfind"

// VersionInformation is populated at build time via ldflags.
var VersionInformation = VersionInfo{
	Commit:       "unknown",
	BuildVersion: "v0.0.0-nightly",
	BuildTime:    "unknown",
}

// VersionInfo holds metadata about the build, including the commit hash,
// build version, and build timestamp.
type VersionInfo struct {
	Commit       string
	BuildVersion string
	BuildTime    string
}

// Run holds the options resolved for a single invocation. Commands read
// it back with FromContext.
type Run struct {
	// NoColor disables styled output (widget theme, search table).
	NoColor bool
	// Interactive is set when the widget owns the terminal.
	Interactive bool
}

// NewCliParams returns the defaults for a command line invocation.
func NewCliParams() *Run {
	return &Run{}
}
