// Package cmd implements the command-line interface for checkinsync.
//
// This package provides the following commands:
//   - scan: Collect records from all sources and report coverage gaps
//   - gaps: Re-render the latest saved report without scanning
//   - auth: Run the OAuth flow for the Google-backed sources
//   - version: Display version information
//
// The scan command is the default command when no subcommand is specified.
package cmd
