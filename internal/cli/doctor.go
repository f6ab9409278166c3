// Package cli — doctor.go implements the "cmpenv doctor" command.
//
// doctor probes everything the four workflows depend on — base
// interpreter, virtual environment, requirements manifest, the two
// delegated scripts, the tunnel credentials file, and whether blpapi is
// importable — and reports the findings instead of failing fast.
//
// Status mapping:
//   - fail: blocks a core workflow (no interpreter, no venv, missing
//     manifest or script, unparseable config.json). doctor exits 1.
//   - warn: needs attention but nothing is broken yet (config.json absent
//     or still holding the placeholder token, blpapi not yet installed).
//     doctor exits 0.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/cmp-tools/cmpenv/internal/config"
	"github.com/cmp-tools/cmpenv/internal/model"
	"github.com/cmp-tools/cmpenv/internal/runner"
	"github.com/cmp-tools/cmpenv/internal/venv"
)

// NewDoctorCommand creates the "doctor" cobra command.
// It is called from NewRootCommand to register as a subcommand.
func NewDoctorCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check the project's environment and report what is missing",
		Long: `Run read-only checks over everything the cmpenv workflows depend on and
report the findings. Failures (exit 1) block a core workflow; warnings
(exit 0) only need attention before their specific workflow is used.

Examples:
  cmpenv doctor
  cmpenv doctor --json`,

		Args: cobra.NoArgs,

		RunE: func(cmd *cobra.Command, args []string) error {
			return runDoctor(cmd.Context())
		},
	}
}

// importProber checks whether blpapi is importable inside the given
// environment, returning the interpreter's output on failure. Abstracted
// so tests can stub the one probe that spawns a child process.
type importProber func(ctx context.Context, env *venv.Env) (string, error)

// blpapiImportProbe is the real prober: `python -c "import blpapi"` with
// the venv's interpreter, output captured quietly.
func blpapiImportProbe(ctx context.Context, env *venv.Env) (string, error) {
	r := runner.New(env, filepath.Dir(env.Root))
	return r.Output(ctx, env.Python(), "-c", "import blpapi")
}

// runDoctor is the main logic function for the doctor command.
func runDoctor(ctx context.Context) error {
	dir, proj, err := loadProject()
	if err != nil {
		return err
	}

	results := doctorChecks(ctx, dir, proj, blpapiImportProbe)
	printDoctorResult(results)

	if model.AnyFailed(results) {
		return model.NewCLIError(model.ExitGeneralError, "environment checks failed")
	}
	return nil
}

// doctorChecks runs all probes and collects their results. Nothing here
// mutates the project; the only child process is the blpapi import probe,
// and only when the environment is complete enough to run it.
func doctorChecks(ctx context.Context, dir string, proj *config.Project, probe importProber) []model.CheckResult {
	var results []model.CheckResult

	// Base interpreter, needed by init (and by venv upgrades).
	if interpreter, err := venv.ResolveInterpreter(proj.Python); err == nil {
		results = append(results, model.CheckResult{
			Name: "python", Status: model.CheckPass, Detail: interpreter,
		})
	} else {
		results = append(results, model.CheckResult{
			Name: "python", Status: model.CheckFail, Detail: err.Error(),
		})
	}

	// Virtual environment: the gate for every delegated command.
	env := venv.New(proj.VenvRoot(dir))
	switch {
	case !env.Exists():
		results = append(results, model.CheckResult{
			Name: "venv", Status: model.CheckFail,
			Detail: fmt.Sprintf("not found at %s; run \"cmpenv init\"", env.Root),
		})
	case !env.IsComplete():
		results = append(results, model.CheckResult{
			Name: "venv", Status: model.CheckFail,
			Detail: fmt.Sprintf("incomplete at %s (interpreter or pip missing); delete it and run \"cmpenv init\"", env.Root),
		})
	default:
		results = append(results, model.CheckResult{
			Name: "venv", Status: model.CheckPass, Detail: env.Root,
		})
	}

	// Files the delegated commands operate on.
	results = append(results, fileCheck("requirements", proj.RequirementsPath(dir)))
	results = append(results, fileCheck("fetch-script", proj.FetchScript(dir)))
	results = append(results, fileCheck("tunnel-script", proj.TunnelScript(dir)))

	// Tunnel credentials. Absence and the placeholder token are warnings:
	// only the tunnel workflow needs them, and init seeds the file.
	results = append(results, tunnelConfigCheck(dir))

	// blpapi import, only when the venv can actually run the probe.
	if env.IsComplete() && probe != nil {
		if output, err := probe(ctx, env); err == nil {
			results = append(results, model.CheckResult{
				Name: "blpapi", Status: model.CheckPass, Detail: "importable",
			})
		} else {
			detail := "not importable; run \"cmpenv install-blpapi\""
			if output != "" {
				detail = fmt.Sprintf("%s (%s)", detail, output)
			}
			results = append(results, model.CheckResult{
				Name: "blpapi", Status: model.CheckWarn, Detail: detail,
			})
		}
	}

	return results
}

// fileCheck probes a required file and maps absence to a failure, since
// each of these files blocks one of the core workflows.
func fileCheck(name, path string) model.CheckResult {
	if err := requireFile(path, name); err != nil {
		return model.CheckResult{
			Name: name, Status: model.CheckFail,
			Detail: fmt.Sprintf("not found at %s", path),
		}
	}
	return model.CheckResult{Name: name, Status: model.CheckPass, Detail: path}
}

// tunnelConfigCheck probes config.json: absent or placeholder token are
// warnings, an unparseable file is a failure (the tunnel script would
// choke on it too).
func tunnelConfigCheck(dir string) model.CheckResult {
	path := config.TunnelPath(dir)

	cfg, err := config.LoadTunnel(path)
	if err != nil {
		if requireFile(path, "tunnel config") != nil {
			return model.CheckResult{
				Name: "tunnel-config", Status: model.CheckWarn,
				Detail: fmt.Sprintf("not found at %s; \"cmpenv init\" seeds an example", path),
			}
		}
		return model.CheckResult{
			Name: "tunnel-config", Status: model.CheckFail, Detail: err.Error(),
		}
	}

	if verr := cfg.Validate(); verr != nil {
		return model.CheckResult{
			Name: "tunnel-config", Status: model.CheckWarn, Detail: verr.Error(),
		}
	}
	return model.CheckResult{Name: "tunnel-config", Status: model.CheckPass, Detail: path}
}

// printDoctorResult outputs the check results in text or JSON format,
// depending on the global --json flag.
func printDoctorResult(results []model.CheckResult) {
	if IsJSONOutput() {
		printDoctorResultJSON(results)
		return
	}
	for _, r := range results {
		fmt.Println(r.String())
	}
}

// printDoctorResultJSON outputs the check results as structured JSON.
// The top-level key is "checks" containing an array of check objects.
func printDoctorResultJSON(results []model.CheckResult) {
	type resultJSON struct {
		Checks []model.CheckResult `json:"checks"`
		Failed bool                `json:"failed"`
	}

	result := resultJSON{
		// Use an empty slice instead of nil to ensure JSON output shows []
		// instead of null when no checks ran.
		Checks: make([]model.CheckResult, 0, len(results)),
		Failed: model.AnyFailed(results),
	}
	result.Checks = append(result.Checks, results...)

	// MarshalIndent produces human-readable JSON with 2-space indentation.
	data, _ := json.MarshalIndent(result, "", "  ")
	fmt.Println(string(data))
}
