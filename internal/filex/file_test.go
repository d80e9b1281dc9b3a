package filex

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsureDir_CreatesNestedDirectory(t *testing.T) {
	tmp := t.TempDir()
	want := filepath.Join(tmp, "moviedeck", "data")

	got, err := EnsureDir(want)
	require.NoError(t, err)
	require.Equal(t, want, got)

	fi, err := os.Stat(want)
	require.NoError(t, err)
	require.True(t, fi.IsDir())

	if runtime.GOOS != "windows" {
		assert.Equal(t, os.FileMode(0o700), fi.Mode().Perm()&0o700)
	}

	again, err := EnsureDir(want)
	require.NoError(t, err)
	assert.Equal(t, got, again)
}

func TestEnsureDir_RelativeIsResolved(t *testing.T) {
	tmp := t.TempDir()
	t.Chdir(tmp)

	got, err := EnsureDir("data")
	require.NoError(t, err)
	want, _ := filepath.EvalSymlinks(filepath.Join(tmp, "data"))
	gotResolved, _ := filepath.EvalSymlinks(got)
	assert.Equal(t, want, gotResolved)
}

func TestEnsureDir_FailsWhenPathIsAFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "taken")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o600))

	_, err := EnsureDir(file)
	assert.Error(t, err)
}

var pngHeader = []byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A, 0, 0, 0, 0}

func TestReadPoster(t *testing.T) {
	dir := t.TempDir()

	png := filepath.Join(dir, "poster.png")
	require.NoError(t, os.WriteFile(png, pngHeader, 0o600))
	data, ct, err := ReadPoster(png)
	require.NoError(t, err)
	assert.Equal(t, "image/png", ct)
	assert.Equal(t, pngHeader, data)

	txt := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(txt, []byte("just text"), 0o600))
	_, _, err = ReadPoster(txt)
	assert.ErrorIs(t, err, ErrNotAnImage)

	_, _, err = ReadPoster(filepath.Join(dir, "missing.png"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestReadPoster_TooLarge(t *testing.T) {
	big := filepath.Join(t.TempDir(), "big.png")
	data := make([]byte, MaxPosterSize+1)
	copy(data, pngHeader)
	require.NoError(t, os.WriteFile(big, data, 0o600))

	_, _, err := ReadPoster(big)
	assert.ErrorIs(t, err, ErrPosterTooLarge)
}
