package pip

import (
	"context"
	"fmt"

	"github.com/cmp-tools/cmpenv/internal/model"
	"github.com/cmp-tools/cmpenv/internal/runner"
)

const (
	// DefaultPackage is the Bloomberg Python API package.
	DefaultPackage = "blpapi"

	// DefaultIndexURL is Bloomberg's private package index. The blpapi
	// package is not published on PyPI, so installs must point pip at
	// this index explicitly.
	DefaultIndexURL = "https://blpapi.bloomberg.com/repository/releases/python/simple/"
)

// RequirementsArgs returns the pip arguments for installing from a
// requirements manifest: install -r <manifest>.
func RequirementsArgs(manifest string) []string {
	return []string{"install", "-r", manifest}
}

// PackageArgs returns the pip arguments for installing a named package
// from a specific index: install --index-url <url> <pkg>.
//
// Empty values fall back to the Bloomberg defaults, so callers only pass
// overrides through from flags or project configuration.
func PackageArgs(pkg, indexURL string) []string {
	if pkg == "" {
		pkg = DefaultPackage
	}
	if indexURL == "" {
		indexURL = DefaultIndexURL
	}
	return []string{"install", "--index-url", indexURL, pkg}
}

// Installer executes pip inside a virtual environment via a Runner.
type Installer struct {
	runner *runner.Runner
}

// NewInstaller creates an Installer that runs the environment's own pip.
func NewInstaller(r *runner.Runner) *Installer {
	return &Installer{runner: r}
}

// InstallRequirements installs the dependencies listed in the manifest
// file. pip's output streams through to the operator; on failure the
// error carries the fixed ExitGeneralError code.
func (i *Installer) InstallRequirements(ctx context.Context, manifest string) error {
	err := i.runner.Run(ctx, i.runner.Env.Pip(), RequirementsArgs(manifest)...)
	if err != nil {
		return model.WrapCLIError(model.ExitGeneralError,
			fmt.Sprintf("pip install -r %s failed", manifest), err)
	}
	return nil
}

// InstallPackage installs a single named package from the given index.
// Empty pkg/indexURL fall back to the blpapi defaults (see PackageArgs).
func (i *Installer) InstallPackage(ctx context.Context, pkg, indexURL string) error {
	if pkg == "" {
		pkg = DefaultPackage
	}
	err := i.runner.Run(ctx, i.runner.Env.Pip(), PackageArgs(pkg, indexURL)...)
	if err != nil {
		return model.WrapCLIError(model.ExitGeneralError,
			fmt.Sprintf("pip install %s failed", pkg), err)
	}
	return nil
}
