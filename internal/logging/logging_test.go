package logging

import (
	"bytes"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatter(t *testing.T) {
	f := &Formatter{}
	entry := &logrus.Entry{
		Time:    time.Date(2024, 1, 2, 15, 4, 5, 0, time.UTC),
		Level:   logrus.WarnLevel,
		Message: "page skipped",
		Data:    logrus.Fields{"offset": 128, "bytes": 7},
	}

	out, err := f.Format(entry)
	require.NoError(t, err)
	assert.Equal(t, "[15:04:05 UTC 2024/01/02] [WARN] page skipped bytes=7 offset=128\n", string(out))

	f.DisableTimestamp = true
	entry.Level = logrus.DebugLevel
	entry.Data = nil
	out, err = f.Format(entry)
	require.NoError(t, err)
	assert.Equal(t, "[DEBU] page skipped\n", string(out))
}

func TestParseLevel(t *testing.T) {
	tests := map[string]logrus.Level{
		"debug":   logrus.DebugLevel,
		"DEBUG":   logrus.DebugLevel,
		" info ":  logrus.InfoLevel,
		"warning": logrus.WarnLevel,
		"warn":    logrus.WarnLevel,
		"error":   logrus.ErrorLevel,
		"trace":   logrus.TraceLevel,
	}
	for in, want := range tests {
		got, err := ParseLevel(in)
		require.NoError(t, err, "ParseLevel(%q)", in)
		assert.Equal(t, want, got, "ParseLevel(%q)", in)
	}

	for _, in := range []string{"", "bogus", "infoo"} {
		_, err := ParseLevel(in)
		assert.Error(t, err, "ParseLevel(%q)", in)
	}
}

func TestNew(t *testing.T) {
	var buf bytes.Buffer
	l := New(logrus.WarnLevel, &buf)

	l.Info("hidden")
	l.WithField("file", "a.ogg").Warn("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "[WARN] shown file=a.ogg")
}

func TestDiscard(t *testing.T) {
	l := Discard()
	l.Error("dropped")
	assert.Equal(t, logrus.InfoLevel, l.GetLevel())
}
