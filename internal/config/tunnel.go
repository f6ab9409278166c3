// tunnel.go handles config.json, the ngrok credentials file consumed by
// the tunnel script.
//
// The file is owned by tunnel.py — this tool never needs the token itself.
// It still understands the format for two reasons: the init command seeds
// a placeholder example (the same one tunnel.py would create on first
// run), and the doctor command reports whether the tunnel workflow is
// actually ready instead of letting the operator find out mid-run.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tidwall/jsonc"

	"github.com/cmp-tools/cmpenv/internal/model"
)

// TunnelFileName is the credentials file read by the tunnel script,
// looked up in the project root.
const TunnelFileName = "config.json"

// PlaceholderToken is the value seeded into the example file. A token
// equal to this placeholder means the operator has not configured ngrok yet.
const PlaceholderToken = "YOUR_NGROK_AUTH_TOKEN_HERE"

// ngrokDashboardURL is where operators obtain their authtoken; included
// in validation errors as the remedy.
const ngrokDashboardURL = "https://dashboard.ngrok.com/get-started/your-authtoken"

// Tunnel holds the parsed contents of config.json.
type Tunnel struct {
	// NgrokAuthtoken authenticates the tunnel script with ngrok.
	NgrokAuthtoken string `json:"ngrok_authtoken"`
}

// TunnelPath returns the absolute config.json path for a project root.
func TunnelPath(dir string) string {
	return filepath.Join(dir, TunnelFileName)
}

// LoadTunnel reads and parses config.json. The file is operator-edited,
// so comments and trailing commas are tolerated (JSONC) even though the
// seeded example is plain JSON.
func LoadTunnel(path string) (*Tunnel, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, model.WrapCLIError(model.ExitGeneralError,
			fmt.Sprintf("failed to read %s", filepath.Base(path)), err)
	}

	var cfg Tunnel
	if err := json.Unmarshal(jsonc.ToJSON(data), &cfg); err != nil {
		return nil, model.WrapCLIError(model.ExitGeneralError,
			fmt.Sprintf("failed to parse %s", filepath.Base(path)), err)
	}

	return &cfg, nil
}

// Validate reports whether the tunnel credentials are usable: the token
// must be present and must not be the seeded placeholder. The error text
// carries the remedy, since this is surfaced directly to the operator.
func (c *Tunnel) Validate() error {
	if c.NgrokAuthtoken == "" || c.NgrokAuthtoken == PlaceholderToken {
		return fmt.Errorf("ngrok_authtoken is not set; get a token from %s", ngrokDashboardURL)
	}
	return nil
}

// WriteTunnelExample writes the placeholder config.json that the operator
// fills in, refusing to overwrite an existing file — it may already hold
// a real token.
func WriteTunnelExample(path string) error {
	if _, err := os.Stat(path); err == nil {
		return model.NewCLIError(model.ExitGeneralError,
			fmt.Sprintf("%s already exists", filepath.Base(path)))
	}

	example := Tunnel{NgrokAuthtoken: PlaceholderToken}
	data, err := json.MarshalIndent(example, "", "  ")
	if err != nil {
		return model.WrapCLIError(model.ExitGeneralError, "failed to encode example tunnel config", err)
	}
	data = append(data, '\n')

	// 0600: the file will hold a credential once the operator edits it.
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return model.WrapCLIError(model.ExitGeneralError,
			fmt.Sprintf("failed to write %s", filepath.Base(path)), err)
	}
	return nil
}
