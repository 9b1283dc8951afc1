package config

import (
	"flag"
	"os"

	"github.com/todovault/todovault/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   base URL of the backend API (remote mode)
//	-b string   backend: "local" or "remote"
//	-f string   sqlite database file path
//	-x          enable maintenance commands
//
// Note: The function filters os.Args to only include the flags it knows about,
// using flagx.FilterArgs, to avoid interference with other components.
func parseFlags(cfg *Config) {
	// Filter args to include only those handled here.
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-b", "-f", "-x"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.ServerEndpointAddr, "a", cfg.ServerEndpointAddr, "base URL of the backend API")
	fs.StringVar(&cfg.Backend, "b", cfg.Backend, "backend: local or remote")
	fs.StringVar(&cfg.DatabasePath, "f", cfg.DatabasePath, "sqlite database file path")
	fs.BoolVar(&cfg.AdminEnabled, "x", cfg.AdminEnabled, "enable maintenance commands")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
