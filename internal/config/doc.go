// Package config loads the two operator-edited files cmpenv reads.
//
// The project file (cmpenv.yaml) is optional and overrides the built-in
// defaults: which base interpreter to use, where the venv and requirements
// manifest live, which scripts the run commands delegate to, and how the
// blpapi package is installed. Missing file means pure defaults; the four
// workflows all work out of the box in a conventionally laid out project.
//
// The tunnel file (config.json) holds the ngrok authtoken consumed by
// tunnel.py. Operators annotate it by hand, so it is parsed tolerantly as
// JSONC (comments and trailing commas allowed). The package can also write
// the placeholder example file that the init command seeds.
package config
