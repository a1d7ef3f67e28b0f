// Package constant defines immutable application-level identifiers.
package constant

const (
	// App is the canonical application identifier used for filesystem paths, env prefixes and CLI branding.
	App = "reel"

	// Version is the current application semantic version string.
	Version = "0.1.0"
)

// Build metadata, injected with -ldflags "-X".
var (
	BuiltAt  = "unknown"
	BuiltBy  = "unknown"
	Revision = "unknown"
)
