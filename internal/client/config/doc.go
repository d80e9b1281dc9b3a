// Package config loads runtime configuration for the MovieDeck CLI.
//
// Sources, later ones winning:
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. A .env file in the working directory, then the process environment
//     (MOVIEDECK_SERVER_ADDR, MOVIEDECK_DATA_DIR, ...).
//  3. An optional JSON or YAML file selected with -c or -config.
//  4. Command-line flags.
//
// Supported flags
//
//	-a string   address:port of the backend gRPC endpoint
//	-i int      online status check interval (seconds)
//	-t int      per-request timeout (seconds)
//	-d string   directory holding the local preferences database
//	-log-format slog | zap
//	-log-level  debug | info | warn | error
//
// File layout (durations accept "3s" style strings or integer nanoseconds):
//
//	server_endpoint_addr: 127.0.0.1:50051
//	online_check_interval: 3s
//	request_timeout: 10s
//	data_dir: ~/.moviedeck
package config
