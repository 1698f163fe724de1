package cli

import (
	"io"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/flowlayout/pkg/errors"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

const logTimeFormat = "15:04:05.00"

// logFormats are the record encodings accepted by --log-format.
var logFormats = map[string]log.Formatter{
	"text":   log.TextFormatter,
	"json":   log.JSONFormatter,
	"logfmt": log.LogfmtFormatter,
}

func logFormatNames() []string {
	names := make([]string, 0, len(logFormats))
	for name := range logFormats {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      logTimeFormat,
		Level:           level,
	})
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// SetLogFormat switches the record encoding to text, json or logfmt.
func (c *CLI) SetLogFormat(name string) error {
	f, ok := logFormats[strings.ToLower(name)]
	if !ok {
		return errors.New(errors.ErrCodeInvalidInput, "unknown log format %q (want %s)",
			name, strings.Join(logFormatNames(), ", "))
	}
	c.Logger.SetFormatter(f)
	return nil
}

// progress times one CLI stage. Not safe for concurrent use.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg at info level with keyvals and the elapsed time appended.
func (p *progress) done(msg string, keyvals ...any) {
	elapsed := time.Since(p.start).Round(time.Millisecond)
	p.logger.Info(msg, append(keyvals, "elapsed", elapsed)...)
}
