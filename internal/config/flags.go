package config

import (
	"flag"
	"os"

	"github.com/lexazver/teamboard/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags:
//
//	-v string   path to the durable vault database
//	-s string   path to the session database
//	-l string   log level
//
// Arguments are filtered through flagx.FilterArgs so only these flags are
// parsed here.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-v", "-s", "-l"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)
	fs.StringVar(&cfg.VaultPath, "v", cfg.VaultPath, "path to the vault database")
	fs.StringVar(&cfg.SessionPath, "s", cfg.SessionPath, "path to the session database")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level (debug, info, warn, error)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
