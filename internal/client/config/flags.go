package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/growflow/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   base URL of the REST API
//	-f string   local sqlite session file
//	-t int      request timeout in seconds
//	-d string   directory for downloaded snapshots
//
// os.Args is filtered with flagx.FilterArgs first so -c does not break parsing.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-f", "-t", "-d"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.ServerEndpointAddr, "a", cfg.ServerEndpointAddr, "base URL of the REST API")
	fs.StringVar(&cfg.LocalDBPath, "f", cfg.LocalDBPath, "local session database file")
	fs.StringVar(&cfg.SnapshotDir, "d", cfg.SnapshotDir, "directory for downloaded snapshots")
	timeout := fs.Int("t", int(cfg.Timeout.Seconds()), "request timeout (in seconds)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	fs.Visit(func(f *flag.Flag) {
		if f.Name == "t" {
			cfg.Timeout = time.Duration(*timeout) * time.Second
		}
	})
}
