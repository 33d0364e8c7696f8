package logger

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_WritesJSONAtLevel(t *testing.T) {
	out := filepath.Join(t.TempDir(), "log.json")
	l, err := New(Config{Level: "warn", OutputPaths: []string{out}})
	require.NoError(t, err)

	l.Info("dropped")
	l.With(String("section", "featured")).Warn("kept", Int("count", 3))
	_ = l.Sync()

	b, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.NotContains(t, string(b), "dropped")
	assert.Contains(t, string(b), `"msg":"kept"`)
	assert.Contains(t, string(b), `"section":"featured"`)
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, "debug", parseLevel("DEBUG").String())
	assert.Equal(t, "warn", parseLevel("warning").String())
	assert.Equal(t, "info", parseLevel("bogus").String())
}

func TestFromContext(t *testing.T) {
	fallback := NewNop()
	assert.Equal(t, fallback, FromContext(context.Background(), fallback))
	assert.NotNil(t, FromContext(context.Background(), nil))

	l, err := New(Config{OutputPaths: []string{filepath.Join(t.TempDir(), "x.log")}})
	require.NoError(t, err)
	ctx := WithContext(context.Background(), l)
	assert.Same(t, l, FromContext(ctx, fallback))
}
