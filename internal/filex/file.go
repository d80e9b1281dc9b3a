// Package filex holds local file helpers for the CLI: the data directory
// and poster images picked from disk.
package filex

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

// MaxPosterSize caps the poster files the CLI will upload.
const MaxPosterSize = 10 << 20

var (
	ErrPosterTooLarge = errors.New("poster file is too large")
	ErrNotAnImage     = errors.New("poster file is not an image")
)

// EnsureDir creates dir (and parents) when missing and returns its absolute path.
func EnsureDir(dir string) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("abs %s: %w", dir, err)
	}

	if err := os.MkdirAll(abs, 0o770); err != nil {
		return "", fmt.Errorf("mkdir %s: %w", abs, err)
	}

	return abs, nil
}

// ReadPoster loads an image file and sniffs its content type.
func ReadPoster(path string) ([]byte, string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, "", err
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, MaxPosterSize+1))
	if err != nil {
		return nil, "", fmt.Errorf("read %s: %w", path, err)
	}
	if len(data) > MaxPosterSize {
		return nil, "", ErrPosterTooLarge
	}

	ct := http.DetectContentType(data)
	if !strings.HasPrefix(ct, "image/") {
		return nil, "", fmt.Errorf("%w: %s", ErrNotAnImage, ct)
	}
	return data, ct, nil
}
