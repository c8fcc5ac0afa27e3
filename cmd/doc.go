// Package cmd implements the command-line interface for oneonone.
//
// This package provides the following commands:
//   - create: Create a 1-on-1 document and share it with a collaborator
//   - setup: Explain how to obtain Google API credentials
//   - version: Display version information
//
// Running oneonone without a subcommand prints the help text.
package cmd
