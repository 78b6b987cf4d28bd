// Package meddb holds build-time metadata for the meddb tool.
package meddb

var (
	// Version is set by build flags.
	Version = "v0.1.0"

	// Build is a timestamp set by build flags.
	Build = "n/a"
)
