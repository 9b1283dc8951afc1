// Package config handles configuration for the TodoVault CLI, including
// defaults, JSON overlay, and command-line flags.
package config

// Backend selects where the client keeps accounts and todos.
const (
	BackendLocal  = "local"
	BackendRemote = "remote"
)

// Config holds runtime settings for the TodoVault CLI.
//
// Fields:
//   - Backend: "local" (embedded sqlite) or "remote" (HTTP API).
//   - DatabasePath: sqlite file path; ":memory:" keeps nothing on disk.
//   - ServerEndpointAddr: base URL of the backend API, remote mode only.
//   - AdminEnabled: exposes the maintenance commands in the REPL.
type Config struct {
	Backend            string
	DatabasePath       string
	ServerEndpointAddr string
	AdminEnabled       bool
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.Backend = BackendLocal
	c.DatabasePath = "todovault.db"
	c.ServerEndpointAddr = "http://127.0.0.1:8080"
	c.AdminEnabled = false
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
