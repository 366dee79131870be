package logging

import (
	"bytes"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"

	"github.com/claude/liftrank/internal/config"
)

type failingWriter struct{ err error }

func (f failingWriter) Write([]byte) (int, error) { return 0, f.err }

func TestLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, Level("DEBUG"))
	assert.Equal(t, slog.LevelWarn, Level("warning"))
	assert.Equal(t, slog.LevelError, Level("error"))
	assert.Equal(t, slog.LevelInfo, Level(""))
	assert.Equal(t, slog.LevelInfo, Level("verbose"))
}

func TestCombinedWriter_CollectsErrors(t *testing.T) {
	var buf bytes.Buffer
	errA := errors.New("disk full")
	errB := errors.New("closed")
	cw := NewCombinedWriter(&buf, failingWriter{errA}, failingWriter{errB})

	_, err := cw.Write([]byte("hello"))
	require.Error(t, err)
	assert.Len(t, multierr.Errors(err), 2)
	assert.ErrorIs(t, err, errA)
	assert.ErrorIs(t, err, errB)
	assert.Equal(t, "hello", buf.String())
}

func TestCombinedWriter_AllSucceed(t *testing.T) {
	var a, b bytes.Buffer
	n, err := NewCombinedWriter(&a, &b).Write([]byte("set done"))
	require.NoError(t, err)
	assert.Equal(t, 8, n)
	assert.Equal(t, a.String(), b.String())
}

func TestNewLogger_JSONFormat(t *testing.T) {
	var buf bytes.Buffer
	log, closer := newLogger(config.LogConfig{Level: "info", Format: "json"}, &buf)
	defer closer.Close()

	log.Debug("hidden")
	log.Info("workout started", "workout", "push-a")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, `"workout":"push-a"`)
}

func TestNewLogger_WritesFile(t *testing.T) {
	var buf bytes.Buffer
	path := filepath.Join(t.TempDir(), "liftrank.log")
	log, closer := newLogger(config.LogConfig{Level: "debug", Format: "text", File: path}, &buf)

	log.Debug("rest timer started", "seconds", 90)
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(data), "rest timer started"))
	assert.Contains(t, buf.String(), "rest timer started")
}
