// file: logger/logger_test.go
package logger

import (
	"bytes"
	"encoding/json"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitLogger_JSONLevels(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, InitLogger(Options{JSON: true, Stdout: &buf}))
	t.Cleanup(func() { _ = InitLogger(Options{}) })
	SetLogLevel("development")

	Info.Printf("hello %s", "world")
	Warn.Println("careful")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)

	var first map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &first))
	assert.Equal(t, "info", first["level"])
	assert.Contains(t, first["message"], "hello world")
	assert.Contains(t, first["message"], "logger_test.go:", "call site should be recorded")

	var second map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(lines[1]), &second))
	assert.Equal(t, "warn", second["level"])
}

func TestSetLogLevel_ProductionDropsDebug(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, InitLogger(Options{JSON: true, Stdout: &buf}))
	t.Cleanup(func() {
		SetLogLevel("development")
		_ = InitLogger(Options{})
	})

	SetLogLevel("production")
	Debug.Println("hidden")
	Info.Println("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}

func TestInitLogger_WritesFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, InitLogger(Options{Dir: dir, Stdout: &bytes.Buffer{}}))
	t.Cleanup(func() { _ = InitLogger(Options{}) })

	Error.Println("to disk")
	require.NoError(t, Close())

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	data, err := os.ReadFile(dir + "/" + entries[0].Name())
	require.NoError(t, err)
	assert.Contains(t, string(data), `"level":"error"`)
	assert.Contains(t, string(data), "to disk")
}
