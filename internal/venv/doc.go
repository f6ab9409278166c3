// Package venv models the Python virtual environment that all cmpenv
// commands depend on.
//
// A virtual environment is just a directory layout: an activation script,
// an interpreter, and a pip executable, placed under bin/ on POSIX systems
// and Scripts\ on Windows. The package exposes that layout (Env), the
// precondition probe the commands gate on (Env.Exists), and creation via
// the base interpreter's own venv module (Env.Create).
//
// Creation shells out to `python -m venv` rather than reimplementing the
// layout in Go, for the same reason the environment is probed through its
// activation marker: the venv module owns the layout and this tool only
// delegates to it.
package venv
