// Package cmd holds build-time version information shared by the CLI.
package cmd

// These are set at build time via ldflags.
var (
	Version = "0.1.0"
	Commit  = "none"
	Date    = "unknown"
)
