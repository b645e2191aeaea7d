package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	log := New()
	assert.NotEqual(t, zerolog.Disabled, log.GetLevel())
}

func TestNewWithOptions_JSON(t *testing.T) {
	buf := &bytes.Buffer{}
	log, err := NewWithOptions(Options{Level: "debug", Format: FormatJSON, Out: buf})
	require.NoError(t, err)

	log.Debug().Str("csv", "sales.csv").Msg("loading")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "debug", line["level"])
	assert.Equal(t, "sales.csv", line["csv"])
	assert.Equal(t, "loading", line["message"])
}

func TestNewWithOptions_LevelFilters(t *testing.T) {
	buf := &bytes.Buffer{}
	log, err := NewWithOptions(Options{Level: "warn", Format: FormatJSON, Out: buf})
	require.NoError(t, err)

	log.Info().Msg("hidden")
	assert.Zero(t, buf.Len())

	log.Warn().Msg("shown")
	assert.Contains(t, buf.String(), "shown")
}

func TestNewWithOptions_Console(t *testing.T) {
	buf := &bytes.Buffer{}
	log, err := NewWithOptions(Options{Out: buf})
	require.NoError(t, err)

	log.Info().Msg("test message")
	assert.Contains(t, buf.String(), "test message")
}

func TestNewWithOptions_Invalid(t *testing.T) {
	_, err := NewWithOptions(Options{Level: "loud"})
	assert.Error(t, err)

	_, err = NewWithOptions(Options{Format: "xml"})
	assert.Error(t, err)
}

func TestFromContext(t *testing.T) {
	buf := &bytes.Buffer{}
	ctx := WithContext(context.Background(), NewWithWriter(buf))

	log := FromContext(ctx)
	log.Info().Msg("test")

	assert.Contains(t, buf.String(), `"message":"test"`)
}

func TestFromContext_DefaultLogger(t *testing.T) {
	log := FromContext(context.Background())
	assert.NotEqual(t, zerolog.Disabled, log.GetLevel())
}
