// Package model defines the domain types and value objects for the
// cmpenv CLI.
//
// This package contains pure data structures with no external dependencies:
// exit codes (ExitCode), a custom error type (CLIError) that carries exit
// codes for proper OS process exit handling, and the check result types
// used by the doctor command.
package model
