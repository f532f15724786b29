package main

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Shivanand-hulikatti/event-reservations/internal/config"
)

func TestNewLogger_JSON(t *testing.T) {
	var buf bytes.Buffer
	log := newLogger(config.LoggerConfig{Level: "warn", Format: "json"}, &buf)

	log.Info().Msg("dropped")
	log.Warn().Msg("kept")

	var line map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &line))
	assert.Equal(t, "kept", line["message"])
	assert.Equal(t, "event-reservations", line["service"])
	assert.Equal(t, zerolog.WarnLevel, log.GetLevel())
}

func TestOpenStores_Memory(t *testing.T) {
	cfg := &config.Config{Store: config.StoreConfig{Driver: "memory"}}
	st, closeStore, err := openStores(context.Background(), cfg, zerolog.Nop())
	require.NoError(t, err)
	defer closeStore()

	ok, err := st.users.Exists(context.Background(), 1)
	require.NoError(t, err)
	assert.False(t, ok)
}
