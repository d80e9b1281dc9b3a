// Package configx loads the file and environment layers shared by the
// server and client configuration packages.
package configx

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joeshaw/envdecode"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// LoadFile decodes the file at path into dst. Files ending in .yaml or .yml
// are parsed as YAML, everything else as JSON.
func LoadFile(path string, dst any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, dst)
	default:
		err = json.Unmarshal(data, dst)
	}
	if err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

// LoadEnv loads any of the given dotenv files that exist, then decodes the
// process environment into dst using `env` struct tags. Variables already
// present in the environment win over dotenv values. Having none of the
// tagged variables set is not an error.
func LoadEnv(dst any, dotenvFiles ...string) error {
	var existing []string
	for _, f := range dotenvFiles {
		if _, err := os.Stat(f); err == nil {
			existing = append(existing, f)
		}
	}
	if len(existing) > 0 {
		if err := godotenv.Load(existing...); err != nil {
			return fmt.Errorf("load dotenv: %w", err)
		}
	}

	if err := envdecode.Decode(dst); err != nil && !errors.Is(err, envdecode.ErrNoTargetFieldsAreSet) {
		return fmt.Errorf("decode env: %w", err)
	}
	return nil
}
