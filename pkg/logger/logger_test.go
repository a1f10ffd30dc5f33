package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewJSONWritesFields(t *testing.T) {
	var buf bytes.Buffer
	lgr, err := New(&Config{Level: "info", Format: "json", Writer: &buf})
	require.NoError(t, err)

	lgr.Info("forecast done", String("source", "http"), Int("items", 3), Float64("took", 1.5), Error(errors.New("boom")))

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "forecast done", entry["message"])
	assert.Equal(t, "http", entry["source"])
	assert.EqualValues(t, 3, entry["items"])
	assert.EqualValues(t, 1.5, entry["took"])
	assert.Equal(t, "boom", entry["error"])
}

func TestLevelFiltersDebug(t *testing.T) {
	var buf bytes.Buffer
	lgr, err := New(&Config{Level: "warn", Format: "json", Writer: &buf})
	require.NoError(t, err)

	lgr.Debug("hidden")
	lgr.Info("hidden")
	assert.Zero(t, buf.Len())

	lgr.Warn("shown")
	assert.Contains(t, buf.String(), "shown")
}

func TestWithCarriesFields(t *testing.T) {
	var buf bytes.Buffer
	lgr, err := New(&Config{Level: "info", Format: "json", Writer: &buf})
	require.NoError(t, err)

	lgr.With(String("component", "stdio")).Info("hello")
	assert.Contains(t, buf.String(), `"component":"stdio"`)
}

func TestNewRejectsUnknownLevel(t *testing.T) {
	_, err := New(&Config{Level: "loud"})
	require.Error(t, err)
}

func TestNopDiscards(t *testing.T) {
	lgr := NewNop()
	lgr.Error("nothing", Error(nil))
}
