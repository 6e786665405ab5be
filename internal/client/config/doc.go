// Package config loads runtime configuration for the GrowFlow terminal client.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string   base URL of the REST API
//	-f string   path of the local sqlite session file
//	-t int      request timeout (seconds)
//	-d string   directory for downloaded snapshots
//
// # JSON schema
//
// Timeouts use timex.Duration, so values can be strings like "10s" or
// integer nanoseconds:
//
//	{
//	  "server_endpoint_addr": "http://127.0.0.1:5000/api",
//	  "local_db_path": "growflow_client.db",
//	  "timeout": "10s",
//	  "snapshot_dir": "snapshots"
//	}
package config
