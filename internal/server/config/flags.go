package config

import (
	"flag"
	"io"
	"time"

	"github.com/dmitrijs2005/moviedeck/internal/flagx"
)

var serverFlags = []string{
	"-a", "-m", "-d", "-s", "-f", "-t", "-r", "-u", "-p", "-b", "-g", "-e", "-w", "-j",
	"-log-format", "-log-level",
}

// parseFlags overlays command-line flags onto config.
//
// Supported flags (short forms):
//
//	-a string   gRPC bind address (e.g., ":50051")
//	-m string   admin HTTP bind address (e.g., ":8081")
//	-d string   PostgreSQL DSN, or memory:// for in-memory storage
//	-s string   access token HMAC secret
//	-f string   federation HMAC secret
//	-t int      access token validity, minutes
//	-r int      refresh token validity, minutes
//	-u, -p      S3 user and password
//	-b, -g, -e  S3 bucket, region and endpoint
//	-w string   public base URL for posters
//	-j string   janitor cron schedule
//	-log-format slog | zap
//	-log-level  debug | info | warn | error
func parseFlags(config *Config, args []string) error {
	args = flagx.FilterArgs(args, serverFlags)

	fs := flag.NewFlagSet("server", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&config.EndpointAddrGRPC, "a", config.EndpointAddrGRPC, "address and port to run server")
	fs.StringVar(&config.AdminAddr, "m", config.AdminAddr, "address and port of the admin endpoint")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")
	fs.StringVar(&config.FederationSecret, "f", config.FederationSecret, "federation secret")

	accessTokenValidityDuration := fs.Int("t", int(config.AccessTokenValidityDuration.Minutes()), "access token validity (in minutes)")
	refreshTokenValidityDuration := fs.Int("r", int(config.RefreshTokenValidityDuration.Minutes()), "refresh token validity (in minutes)")

	fs.StringVar(&config.S3RootUser, "u", config.S3RootUser, "S3 root user")
	fs.StringVar(&config.S3RootPassword, "p", config.S3RootPassword, "S3 root password")
	fs.StringVar(&config.S3Bucket, "b", config.S3Bucket, "S3 bucket")
	fs.StringVar(&config.S3Region, "g", config.S3Region, "S3 region")
	fs.StringVar(&config.S3BaseEndpoint, "e", config.S3BaseEndpoint, "S3 base endpoint")
	fs.StringVar(&config.S3PublicBaseURL, "w", config.S3PublicBaseURL, "public base URL of the poster bucket")
	fs.StringVar(&config.JanitorSchedule, "j", config.JanitorSchedule, "token janitor schedule")
	fs.StringVar(&config.LogFormat, "log-format", config.LogFormat, "log backend: slog or zap")
	fs.StringVar(&config.LogLevel, "log-level", config.LogLevel, "log level")

	if err := fs.Parse(args); err != nil {
		return err
	}

	// minute-granular flags only override when given explicitly
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "t":
			config.AccessTokenValidityDuration = time.Duration(*accessTokenValidityDuration) * time.Minute
		case "r":
			config.RefreshTokenValidityDuration = time.Duration(*refreshTokenValidityDuration) * time.Minute
		}
	})
	return nil
}
