// Package cli — fetch.go implements the "cmpenv fetch" command.
//
// fetch runs the project's data fetch script (fetch.py by default) with
// the virtual environment's interpreter. Unlike the install commands,
// the script's exit status is propagated verbatim: if fetch.py exits 3,
// cmpenv fetch exits 3. Anything after "--" on the command line is passed
// through to the script untouched.
package cli

import (
	"github.com/spf13/cobra"
)

// NewFetchCommand creates the "fetch" cobra command.
// It is called from NewRootCommand to register as a subcommand.
func NewFetchCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "fetch [-- script args...]",
		Short: "Run the CMP data fetch script in the virtual environment",
		Long: `Run the project's data fetch script with the virtual environment's
Python interpreter. The script's stdout and stderr stream through, and
its exit status is propagated exactly.

The virtual environment must already exist (see "cmpenv init").

Examples:
  cmpenv fetch
  cmpenv --verbose fetch`,

		// ArbitraryArgs: anything after "--" belongs to the script.
		Args: cobra.ArbitraryArgs,

		RunE: func(cmd *cobra.Command, args []string) error {
			return runDelegatedScript(cmd.Context(), scriptFetch, args)
		},
	}
}

// NewTunnelCommand creates the "tunnel" cobra command. It lives here with
// fetch because the two commands share runDelegatedScript wholesale —
// they differ only in which script the project configuration names.
func NewTunnelCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "tunnel [-- script args...]",
		Short: "Run the ngrok tunnel script in the virtual environment",
		Long: `Run the project's tunnel script with the virtual environment's Python
interpreter, exposing the local Bloomberg endpoint (port 8194) through
ngrok. The script runs until interrupted; its exit status is propagated
exactly.

The virtual environment must already exist (see "cmpenv init"), and the
script expects its ngrok authtoken in config.json — "cmpenv doctor"
reports whether that file is ready.

Examples:
  cmpenv tunnel
  cmpenv --verbose tunnel`,

		Args: cobra.ArbitraryArgs,

		RunE: func(cmd *cobra.Command, args []string) error {
			return runDelegatedScript(cmd.Context(), scriptTunnel, args)
		},
	}
}
