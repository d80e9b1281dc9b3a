package config

import (
	"flag"
	"io"
	"time"

	"github.com/dmitrijs2005/moviedeck/internal/flagx"
)

var cliFlags = []string{"-a", "-i", "-t", "-d", "-log-format", "-log-level"}

// parseFlags overlays command-line flags onto config. Interval flags are
// whole seconds and only apply when given explicitly.
func parseFlags(config *Config, args []string) error {
	args = flagx.FilterArgs(args, cliFlags)

	fs := flag.NewFlagSet("cli", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&config.ServerEndpointAddr, "a", config.ServerEndpointAddr, "address and port of the server")
	checkInterval := fs.Int("i", int(config.OnlineCheckInterval.Seconds()), "online status check interval (in seconds)")
	timeout := fs.Int("t", int(config.RequestTimeout.Seconds()), "request timeout (in seconds)")
	fs.StringVar(&config.DataDir, "d", config.DataDir, "local data directory")
	fs.StringVar(&config.LogFormat, "log-format", config.LogFormat, "log backend: slog or zap")
	fs.StringVar(&config.LogLevel, "log-level", config.LogLevel, "log level")

	if err := fs.Parse(args); err != nil {
		return err
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "i":
			config.OnlineCheckInterval = time.Duration(*checkInterval) * time.Second
		case "t":
			config.RequestTimeout = time.Duration(*timeout) * time.Second
		}
	})
	return nil
}
