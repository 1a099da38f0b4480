package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestZerologAdapterFields(t *testing.T) {
	var buf bytes.Buffer
	log := NewZerolog(&buf, zerolog.DebugLevel)

	log.Info("Document", "saved", map[string]interface{}{"shapes": 3})

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "Document", entry["component"])
	assert.Equal(t, "saved", entry["message"])
	assert.Equal(t, 3.0, entry["shapes"])
	assert.Contains(t, entry, "time")
}

func TestZerologAdapterError(t *testing.T) {
	var buf bytes.Buffer
	log := NewZerolog(&buf, zerolog.InfoLevel)

	log.Error("Handlers", errors.New("disk full"), map[string]interface{}{"path": "/tmp/x.json"})

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "error", entry["level"])
	assert.Equal(t, "disk full", entry["error"])
	assert.Equal(t, "/tmp/x.json", entry["path"])
	assert.Equal(t, "Handlers", entry["component"])
	assert.Equal(t, "Handlers failed", entry["message"])
}

func TestZerologAdapterFieldOrderIsStable(t *testing.T) {
	var buf bytes.Buffer
	log := NewZerolog(&buf, zerolog.InfoLevel)
	fields := map[string]interface{}{"zeta": 1, "alpha": 2, "mid": 3}

	log.Warning("Canvas", "moved", fields)
	first := buf.String()
	require.NotEmpty(t, first)

	line := first[strings.Index(first, `"alpha"`):]
	assert.Less(t, strings.Index(line, `"alpha"`), strings.Index(line, `"mid"`))
	assert.Less(t, strings.Index(line, `"mid"`), strings.Index(line, `"zeta"`))
	assert.Equal(t, "warn", decode(t, first)["level"])
}

func TestZerologAdapterNilFields(t *testing.T) {
	var buf bytes.Buffer
	log := NewZerolog(&buf, zerolog.DebugLevel)

	log.Debug("Scene", "cleared", nil)

	entry := decode(t, buf.String())
	assert.Equal(t, "Scene", entry["component"])
	assert.Equal(t, "cleared", entry["message"])
}

func decode(t *testing.T, line string) map[string]interface{} {
	t.Helper()
	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(line), &entry))
	return entry
}

func TestZerologAdapterLevelFilter(t *testing.T) {
	var buf bytes.Buffer
	log := NewZerolog(&buf, zerolog.WarnLevel)

	log.Debug("Canvas", "drag", nil)
	log.Info("Canvas", "tool", nil)
	assert.Zero(t, buf.Len())

	log.Warning("Canvas", "empty shape dropped", nil)
	assert.NotZero(t, buf.Len())
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zerolog.DebugLevel, ParseLevel("debug"))
	assert.Equal(t, zerolog.WarnLevel, ParseLevel("WARN"))
	assert.Equal(t, zerolog.ErrorLevel, ParseLevel("error"))
	assert.Equal(t, zerolog.InfoLevel, ParseLevel("bogus"))
}

func TestNoOpLoggerSatisfiesInterface(t *testing.T) {
	var log Logger = NoOpLogger{}
	log.Info("x", "y", nil)
	log.Error("x", errors.New("z"), nil)
}
