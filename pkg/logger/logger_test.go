package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zerolog.DebugLevel, ParseLevel("debug"))
	assert.Equal(t, zerolog.WarnLevel, ParseLevel(" WARN "))
	assert.Equal(t, zerolog.InfoLevel, ParseLevel(""))
	assert.Equal(t, zerolog.InfoLevel, ParseLevel("verbose"))
}

func TestNamed_AgregaComponente(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&buf, "info").Named("sales")

	l.Debug().Msg("descartado")
	l.Info().Str("order_id", "o1").Msg("pedido creado")

	var line map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &line))
	assert.Equal(t, "sales", line["component"])
	assert.Equal(t, "o1", line["order_id"])
	assert.Equal(t, "pedido creado", line["message"])
}
