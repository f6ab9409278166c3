package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/cmp-tools/cmpenv/internal/model"
	"github.com/cmp-tools/cmpenv/internal/pip"
)

// FileName is the optional project configuration file, looked up in the
// project root.
const FileName = "cmpenv.yaml"

// Project holds the project-level settings. Zero values are filled in
// with defaults by Load, so downstream code never checks for empty fields.
type Project struct {
	// Python is the base interpreter used to create the venv.
	// Resolved via PATH; defaults to python3 (python on Windows).
	Python string `yaml:"python"`

	// Venv is the virtual environment directory, relative to the
	// project root. Default: "venv".
	Venv string `yaml:"venv"`

	// Requirements is the requirements manifest path, relative to the
	// project root. Default: "requirements.txt".
	Requirements string `yaml:"requirements"`

	// Blpapi configures the vendor package install.
	Blpapi Blpapi `yaml:"blpapi"`

	// Scripts names the delegated scripts the run commands invoke.
	Scripts Scripts `yaml:"scripts"`
}

// Blpapi configures the install-blpapi command.
type Blpapi struct {
	// Package is the pip requirement to install. Default: "blpapi".
	// A pinned version like "blpapi==3.24.11" is also valid here.
	Package string `yaml:"package"`

	// IndexURL is the package index pip installs from.
	// Default: Bloomberg's private index.
	IndexURL string `yaml:"indexURL"`
}

// Scripts names the external scripts wrapped by the run commands,
// relative to the project root.
type Scripts struct {
	// Fetch is the data fetch script. Default: "fetch.py".
	Fetch string `yaml:"fetch"`

	// Tunnel is the ngrok tunnel script. Default: "tunnel.py".
	Tunnel string `yaml:"tunnel"`
}

// Defaults returns the configuration used when no cmpenv.yaml exists:
// the conventional layout of the CMP tooling project.
func Defaults() Project {
	return Project{
		Python:       "",
		Venv:         "venv",
		Requirements: "requirements.txt",
		Blpapi: Blpapi{
			Package:  pip.DefaultPackage,
			IndexURL: pip.DefaultIndexURL,
		},
		Scripts: Scripts{
			Fetch:  "fetch.py",
			Tunnel: "tunnel.py",
		},
	}
}

// Load reads cmpenv.yaml from the project root if present, applies
// defaults for any omitted fields, and returns the effective settings.
// A missing file is not an error; a malformed one is, since silently
// falling back to defaults would mask an operator mistake.
func Load(dir string) (*Project, error) {
	proj := Defaults()

	path := filepath.Join(dir, FileName)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &proj, nil
		}
		return nil, model.WrapCLIError(model.ExitGeneralError,
			fmt.Sprintf("failed to read %s", FileName), err)
	}

	if err := yaml.Unmarshal(data, &proj); err != nil {
		return nil, model.WrapCLIError(model.ExitGeneralError,
			fmt.Sprintf("failed to parse %s", FileName), err)
	}
	proj.applyDefaults()

	return &proj, nil
}

// applyDefaults refills any field the YAML file explicitly set to empty.
// Unmarshal only overwrites keys that appear in the file, so this covers
// the "key present with empty value" case.
func (p *Project) applyDefaults() {
	d := Defaults()
	if p.Venv == "" {
		p.Venv = d.Venv
	}
	if p.Requirements == "" {
		p.Requirements = d.Requirements
	}
	if p.Blpapi.Package == "" {
		p.Blpapi.Package = d.Blpapi.Package
	}
	if p.Blpapi.IndexURL == "" {
		p.Blpapi.IndexURL = d.Blpapi.IndexURL
	}
	if p.Scripts.Fetch == "" {
		p.Scripts.Fetch = d.Scripts.Fetch
	}
	if p.Scripts.Tunnel == "" {
		p.Scripts.Tunnel = d.Scripts.Tunnel
	}
}

// VenvRoot returns the absolute venv directory for the given project root.
func (p *Project) VenvRoot(dir string) string {
	return filepath.Join(dir, p.Venv)
}

// RequirementsPath returns the absolute requirements manifest path.
func (p *Project) RequirementsPath(dir string) string {
	return filepath.Join(dir, p.Requirements)
}

// FetchScript returns the absolute path of the fetch script.
func (p *Project) FetchScript(dir string) string {
	return filepath.Join(dir, p.Scripts.Fetch)
}

// TunnelScript returns the absolute path of the tunnel script.
func (p *Project) TunnelScript(dir string) string {
	return filepath.Join(dir, p.Scripts.Tunnel)
}
