package config

import (
	"flag"
	"os"

	"github.com/dmitrijs2005/ideaflow/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-d string   path to the local database file
//	-e string   assist service endpoint
//	-l string   listen address of the web front-end
//
// The function filters os.Args to only the flags it knows about, using
// flagx.FilterArgs, to avoid interference with other components.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-d", "-e", "-l"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.DatabasePath, "d", cfg.DatabasePath, "path to the local database file")
	fs.StringVar(&cfg.AssistEndpoint, "e", cfg.AssistEndpoint, "assist service endpoint")
	fs.StringVar(&cfg.ListenAddr, "l", cfg.ListenAddr, "web listen address")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
