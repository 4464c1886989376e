package config

import (
	"flag"
	"os"

	"studypilot/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   base URL of the backend server (default from Config)
//	-d string   path to the local state database
//	-n int      history view entry limit
//
// The function filters os.Args to only the flags it knows about, using
// flagx.FilterArgs, to avoid interference with other components.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-d", "-n"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.ServerBaseURL, "a", cfg.ServerBaseURL, "base URL of the backend server")
	fs.StringVar(&cfg.DatabasePath, "d", cfg.DatabasePath, "path to the local state database")
	historyLimit := fs.Int("n", cfg.HistoryLimit, "history view entry limit")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	if *historyLimit > 0 {
		cfg.HistoryLimit = *historyLimit
	}
}
