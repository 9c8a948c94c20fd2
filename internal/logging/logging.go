// Package logging builds the logrus loggers used by the oggtag command.
package logging

import (
	"bytes"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"
)

// DefaultTimestampFormat is used when Formatter.TimestampFormat is empty.
const DefaultTimestampFormat = "15:04:05 MST 2006/01/02"

// Formatter renders one line per entry:
//
//	[15:04:05 UTC 2024/01/02] [INFO] message key=value key=value
//
// The level is upper-cased and cut to four letters. Fields are sorted by key.
type Formatter struct {
	TimestampFormat string

	// DisableTimestamp omits the leading timestamp.
	DisableTimestamp bool
}

// Format implements logrus.Formatter.
func (f *Formatter) Format(entry *logrus.Entry) ([]byte, error) {
	var b bytes.Buffer

	if !f.DisableTimestamp {
		layout := f.TimestampFormat
		if layout == "" {
			layout = DefaultTimestampFormat
		}
		fmt.Fprintf(&b, "[%s] ", entry.Time.Format(layout))
	}

	level := strings.ToUpper(entry.Level.String())
	if len(level) > 4 {
		level = level[:4]
	}
	fmt.Fprintf(&b, "[%s] %s", level, entry.Message)

	keys := make([]string, 0, len(entry.Data))
	for k := range entry.Data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(&b, " %s=%v", k, entry.Data[k])
	}

	b.WriteByte('\n')
	return b.Bytes(), nil
}

// ParseLevel maps a level name such as "debug" or "WARN" to a logrus
// level. Unknown names are an error.
func ParseLevel(level string) (logrus.Level, error) {
	return logrus.ParseLevel(strings.TrimSpace(level))
}

// New returns a logger writing to out at the given level.
func New(level logrus.Level, out io.Writer) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(out)
	l.SetFormatter(&Formatter{})
	l.SetLevel(level)
	return l
}

// Discard returns a logger that drops every entry.
func Discard() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}
