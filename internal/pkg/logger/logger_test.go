package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_JSONRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	log, err := newWithWriter(&buf, "warn", false)
	require.NoError(t, err)

	log.Info("dropped")
	log.Warn("kept", "user_id", 3)

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "kept", rec["msg"])
	assert.Equal(t, float64(3), rec["user_id"])
}

func TestNew_UnknownLevel(t *testing.T) {
	_, err := New("loud", false)
	assert.Error(t, err)
}
