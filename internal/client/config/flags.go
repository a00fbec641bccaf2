package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/gostconsole/internal/flagx"
)

// parseFlags populates Config fields from command-line flags.
//
// Only the flags listed here are looked at (see flagx.FilterArgs), so -c
// and anything meant for other components pass through untouched.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-t", "-d", "-l", "-m"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.APIBaseURL, "a", cfg.APIBaseURL, "panel API base URL")
	timeout := fs.Int("t", int(cfg.Timeout.Seconds()), "request timeout (in seconds)")
	fs.StringVar(&cfg.StorePath, "d", cfg.StorePath, "path of the local store")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")
	fs.StringVar(&cfg.MetricsAddr, "m", cfg.MetricsAddr, "metrics listen address")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.Timeout = time.Duration(*timeout) * time.Second
}
