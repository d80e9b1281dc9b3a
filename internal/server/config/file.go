package config

import (
	"time"

	"github.com/dmitrijs2005/moviedeck/internal/configx"
	"github.com/dmitrijs2005/moviedeck/internal/timex"
)

// FileConfig is the on-disk shape of the configuration. Durations accept
// either "90s" style strings or integer nanoseconds. Zero values leave the
// corresponding setting untouched.
type FileConfig struct {
	EndpointAddrGRPC             string         `json:"endpoint_addr_grpc" yaml:"endpoint_addr_grpc"`
	AdminAddr                    string         `json:"admin_addr" yaml:"admin_addr"`
	DatabaseDSN                  string         `json:"database_dsn" yaml:"database_dsn"`
	SecretKey                    string         `json:"secret_key" yaml:"secret_key"`
	FederationSecret             string         `json:"federation_secret" yaml:"federation_secret"`
	AccessTokenValidityDuration  timex.Duration `json:"access_token_validity_duration" yaml:"access_token_validity_duration"`
	RefreshTokenValidityDuration timex.Duration `json:"refresh_token_validity_duration" yaml:"refresh_token_validity_duration"`
	ResetTokenValidityDuration   timex.Duration `json:"reset_token_validity_duration" yaml:"reset_token_validity_duration"`
	S3RootUser                   string         `json:"s3_root_user" yaml:"s3_root_user"`
	S3RootPassword               string         `json:"s3_root_password" yaml:"s3_root_password"`
	S3Bucket                     string         `json:"s3_bucket" yaml:"s3_bucket"`
	S3Region                     string         `json:"s3_region" yaml:"s3_region"`
	S3BaseEndpoint               string         `json:"s3_base_endpoint" yaml:"s3_base_endpoint"`
	S3PublicBaseURL              string         `json:"s3_public_base_url" yaml:"s3_public_base_url"`
	AuthRateLimit                float64        `json:"auth_rate_limit" yaml:"auth_rate_limit"`
	AuthRateBurst                int            `json:"auth_rate_burst" yaml:"auth_rate_burst"`
	JanitorSchedule              string         `json:"janitor_schedule" yaml:"janitor_schedule"`
	LogFormat                    string         `json:"log_format" yaml:"log_format"`
	LogLevel                     string         `json:"log_level" yaml:"log_level"`
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

	str(&cfg.EndpointAddrGRPC, fc.EndpointAddrGRPC)
	str(&cfg.AdminAddr, fc.AdminAddr)
	str(&cfg.DatabaseDSN, fc.DatabaseDSN)
	str(&cfg.SecretKey, fc.SecretKey)
	str(&cfg.FederationSecret, fc.FederationSecret)
	dur(&cfg.AccessTokenValidityDuration, fc.AccessTokenValidityDuration)
	dur(&cfg.RefreshTokenValidityDuration, fc.RefreshTokenValidityDuration)
	dur(&cfg.ResetTokenValidityDuration, fc.ResetTokenValidityDuration)
	str(&cfg.S3RootUser, fc.S3RootUser)
	str(&cfg.S3RootPassword, fc.S3RootPassword)
	str(&cfg.S3Bucket, fc.S3Bucket)
	str(&cfg.S3Region, fc.S3Region)
	str(&cfg.S3BaseEndpoint, fc.S3BaseEndpoint)
	str(&cfg.S3PublicBaseURL, fc.S3PublicBaseURL)
	if fc.AuthRateLimit > 0 {
		cfg.AuthRateLimit = fc.AuthRateLimit
	}
	if fc.AuthRateBurst > 0 {
		cfg.AuthRateBurst = fc.AuthRateBurst
	}
	str(&cfg.JanitorSchedule, fc.JanitorSchedule)
	str(&cfg.LogFormat, fc.LogFormat)
	str(&cfg.LogLevel, fc.LogLevel)
}
