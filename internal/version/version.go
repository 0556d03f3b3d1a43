// Package version exposes the application version reported by the system
// endpoints. The value is overridable at build time via -ldflags.
package version

// Version is the application version string.
var Version = "1.0.0"
