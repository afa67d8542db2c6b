package logger

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWithWriter_Levels(t *testing.T) {
	buf := &bytes.Buffer{}
	NewWithWriter("prod", buf).Debug("hidden")
	assert.Zero(t, buf.Len())

	NewWithWriter("dev", buf).Debug("shown", "k", 1)
	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "shown", rec["msg"])
	assert.Equal(t, "smartcounter", rec["app"])
}

func TestOpenFile(t *testing.T) {
	w, err := OpenFile("")
	require.NoError(t, err)
	_, err = w.Write([]byte("x"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	p := filepath.Join(t.TempDir(), "app.log")
	w, err = OpenFile(p)
	require.NoError(t, err)
	NewWithWriter("prod", w).Info("hello")
	require.NoError(t, w.Close())

	raw, err := os.ReadFile(p)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"msg":"hello"`)
}
