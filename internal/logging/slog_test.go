package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var out []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var m map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &m), line)
		out = append(out, m)
	}
	return out
}

func TestSlogJSON_Levels(t *testing.T) {
	var buf bytes.Buffer
	log, err := NewSlogJSON(&buf, "debug")
	require.NoError(t, err)
	ctx := context.Background()

	log.Debug(ctx, "dbg", "movie_id", "heat")
	log.Info(ctx, "inf", "count", 10)
	log.Warn(ctx, "wrn")
	log.Error(ctx, "err", "error", errors.New("boom"))

	lines := decodeLines(t, &buf)
	require.Len(t, lines, 4)

	want := []struct{ level, msg string }{
		{"DEBUG", "dbg"}, {"INFO", "inf"}, {"WARN", "wrn"}, {"ERROR", "err"},
	}
	for i, w := range want {
		assert.Equal(t, w.level, lines[i]["level"])
		assert.Equal(t, w.msg, lines[i]["msg"])
	}
	assert.Equal(t, "heat", lines[0]["movie_id"])
	assert.EqualValues(t, 10, lines[1]["count"])
	assert.Equal(t, "boom", lines[3]["error"])
}

func TestSlogJSON_LevelFilter(t *testing.T) {
	var buf bytes.Buffer
	log, err := NewSlogJSON(&buf, "warn")
	require.NoError(t, err)

	log.Info(context.Background(), "quiet")
	log.Warn(context.Background(), "loud")

	lines := decodeLines(t, &buf)
	require.Len(t, lines, 1)
	assert.Equal(t, "loud", lines[0]["msg"])
}

func TestSlogLogger_WithAndNilContext(t *testing.T) {
	var buf bytes.Buffer
	log, err := NewSlogJSON(&buf, "info")
	require.NoError(t, err)

	log.With("module", "catalog").Info(nilCtx(), "seeded", "n", 10)

	lines := decodeLines(t, &buf)
	require.Len(t, lines, 1)
	assert.Equal(t, "catalog", lines[0]["module"])
	assert.Equal(t, "seeded", lines[0]["msg"])
}

func nilCtx() context.Context { return nil }
