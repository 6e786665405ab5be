package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/growflow/internal/flagx"
	"github.com/dmitrijs2005/growflow/internal/timex"
)

// JsonConfig is the on-disk shape of the client config file.
type JsonConfig struct {
	ServerEndpointAddr string         `json:"server_endpoint_addr"`
	LocalDBPath        string         `json:"local_db_path"`
	Timeout            timex.Duration `json:"timeout"`
	SnapshotDir        string         `json:"snapshot_dir"`
}

// parseJson overlays cfg with the file named by -c / -config. Fields absent
// from the file keep their values. Read or unmarshal errors panic.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.ConfigFileFlag(os.Args[1:])
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.ServerEndpointAddr != "" {
		cfg.ServerEndpointAddr = jc.ServerEndpointAddr
	}
	if jc.LocalDBPath != "" {
		cfg.LocalDBPath = jc.LocalDBPath
	}
	if jc.SnapshotDir != "" {
		cfg.SnapshotDir = jc.SnapshotDir
	}
	if jc.Timeout.Duration != 0 {
		cfg.Timeout = jc.Timeout.Duration
	}
}
