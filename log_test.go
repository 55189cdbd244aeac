package halfedge3d

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
	}
	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			lvl, err := ParseLogLevel(tc.in)
			require.NoError(t, err)
			assert.Equal(t, tc.want, lvl)
		})
	}

	_, err := ParseLogLevel("loud")
	assert.Error(t, err)
}

func TestSetLogger(t *testing.T) {
	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	t.Cleanup(func() { SetLogger(nil) })

	_, err := NewModel("tri", SingleTriangle(), BuildOptions{})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "model=tri")

	SetLogger(nil)
	buf.Reset()
	Logger().Error("dropped")
	assert.Empty(t, buf.String())
}
