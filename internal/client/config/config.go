package config

import "time"

// Config holds runtime settings for the GrowFlow terminal client.
//
// Fields:
//   - ServerEndpointAddr: base URL of the REST API, including the /api prefix.
//   - LocalDBPath: sqlite file keeping the session between runs.
//   - Timeout: per-request HTTP timeout.
//   - SnapshotDir: where downloaded garden snapshots are saved.
type Config struct {
	ServerEndpointAddr string
	LocalDBPath        string
	Timeout            time.Duration
	SnapshotDir        string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerEndpointAddr = "http://127.0.0.1:5000/api"
	c.LocalDBPath = "growflow_client.db"
	c.Timeout = 10 * time.Second
	c.SnapshotDir = "snapshots"
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
