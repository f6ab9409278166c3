// Package pip builds and executes the pip invocations behind the setup
// and install-blpapi commands.
//
// The argument builders are pure functions so the exact pip command lines
// can be unit-tested; the Installer pairs them with a runner to actually
// execute the venv's own pip. Both install operations report failure with
// the fixed exit code 1, regardless of what pip itself exited with — the
// install commands do not propagate delegated exit codes the way the
// run commands do.
package pip
