package logging

import (
	"bytes"
	"encoding/json"
	"os"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/require"
)

func restore(t *testing.T) {
	t.Cleanup(func() {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
		log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
	})
}

func TestInitJSON(t *testing.T) {
	restore(t)
	var buf bytes.Buffer
	require.NoError(t, Init("", "", &buf))

	log.Debug().Msg("hidden")
	log.Info().Str("conn", "c1").Msg("conn open")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	require.Equal(t, "info", entry["level"])
	require.Equal(t, "c1", entry["conn"])
	require.Equal(t, "conn open", entry["message"])
	require.Contains(t, entry, "time")
}

func TestInitLevel(t *testing.T) {
	restore(t)
	var buf bytes.Buffer
	require.NoError(t, Init("WARN", FormatJSON, &buf))
	require.Equal(t, zerolog.WarnLevel, zerolog.GlobalLevel())

	log.Info().Msg("dropped")
	require.Zero(t, buf.Len())
}

func TestInitConsole(t *testing.T) {
	restore(t)
	var buf bytes.Buffer
	require.NoError(t, Init("debug", FormatConsole, &buf))

	log.Debug().Msg("received")
	require.Contains(t, buf.String(), "received")
	require.False(t, json.Valid(buf.Bytes()))
}

func TestInitErrors(t *testing.T) {
	restore(t)
	require.Error(t, Init("loud", "", &bytes.Buffer{}))
	require.Error(t, Init("info", "xml", &bytes.Buffer{}))
}
