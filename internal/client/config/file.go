package config

import (
	"time"

	"github.com/dmitrijs2005/moviedeck/internal/configx"
	"github.com/dmitrijs2005/moviedeck/internal/timex"
)

// FileConfig is the on-disk shape of the CLI configuration.
type FileConfig struct {
	ServerEndpointAddr  string         `json:"server_endpoint_addr" yaml:"server_endpoint_addr"`
	OnlineCheckInterval timex.Duration `json:"online_check_interval" yaml:"online_check_interval"`
	RequestTimeout      timex.Duration `json:"request_timeout" yaml:"request_timeout"`
	DataDir             string         `json:"data_dir" yaml:"data_dir"`
	LogFormat           string         `json:"log_format" yaml:"log_format"`
	LogLevel            string         `json:"log_level" yaml:"log_level"`
}

func loadFile(cfg *Config, path string) error {
	fc := &FileConfig{}
	if err := configx.LoadFile(path, fc); err != nil {
		return err
	}
	fc.apply(cfg)
	return nil
}

func (fc *FileConfig) apply(cfg *Config) {
	str := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	dur := func(dst *time.Duration, v timex.Duration) {
		if v.Duration != 0 {
			*dst = v.Duration
		}
	}

	str(&cfg.ServerEndpointAddr, fc.ServerEndpointAddr)
	dur(&cfg.OnlineCheckInterval, fc.OnlineCheckInterval)
	dur(&cfg.RequestTimeout, fc.RequestTimeout)
	str(&cfg.DataDir, fc.DataDir)
	str(&cfg.LogFormat, fc.LogFormat)
	str(&cfg.LogLevel, fc.LogLevel)
}
