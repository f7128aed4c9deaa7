package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_Levels(t *testing.T) {
	tests := []struct {
		level    string
		expected logrus.Level
	}{
		{"debug", logrus.DebugLevel},
		{"info", logrus.InfoLevel},
		{"warn", logrus.WarnLevel},
		{"error", logrus.ErrorLevel},
		{" DEBUG ", logrus.DebugLevel},
		{"", logrus.InfoLevel},
		{"verbose", logrus.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			assert.Equal(t, tt.expected, New(tt.level).GetLevel())
		})
	}
}

func TestNew_WritesJSON(t *testing.T) {
	var buffer bytes.Buffer
	log := newWithOutput("info", &buffer)

	log.WithField("request_id", "abc").Info("HTTP Request")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buffer.Bytes(), &entry))
	assert.Equal(t, "HTTP Request", entry["message"])
	assert.Equal(t, "abc", entry["request_id"])
	assert.Equal(t, "info", entry["level"])
}

func TestDiscard(t *testing.T) {
	log := Discard()
	assert.Equal(t, logrus.DebugLevel, log.GetLevel())
}
