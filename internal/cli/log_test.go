package cli

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/flowlayout/pkg/errors"
)

func TestLoggerLevel(t *testing.T) {
	var buf bytes.Buffer
	c := New(&buf, LogInfo)

	c.Logger.Debug("hidden")
	c.Logger.Info("visible")
	if strings.Contains(buf.String(), "hidden") || !strings.Contains(buf.String(), "visible") {
		t.Fatalf("info level output = %q", buf.String())
	}

	c.SetLogLevel(LogDebug)
	c.Logger.Debug("now shown")
	if !strings.Contains(buf.String(), "now shown") {
		t.Error("debug should be logged after SetLogLevel(LogDebug)")
	}
}

func TestSetLogFormat(t *testing.T) {
	tests := []struct {
		format string
		check  func(string) bool
	}{
		{"json", func(out string) bool {
			var rec map[string]any
			return json.Unmarshal([]byte(out), &rec) == nil && rec["msg"] == "laid out" && rec["lines"] == float64(3)
		}},
		{"logfmt", func(out string) bool {
			return strings.Contains(out, "msg=\"laid out\"") && strings.Contains(out, "lines=3")
		}},
		{"TEXT", func(out string) bool {
			return strings.Contains(out, "laid out") && strings.Contains(out, "lines=3")
		}},
	}
	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			var buf bytes.Buffer
			c := New(&buf, LogInfo)
			if err := c.SetLogFormat(tt.format); err != nil {
				t.Fatal(err)
			}
			c.Logger.Info("laid out", "lines", 3)
			if out := strings.TrimSpace(buf.String()); !tt.check(out) {
				t.Errorf("%s output = %q", tt.format, out)
			}
		})
	}

	c := New(&bytes.Buffer{}, LogInfo)
	if err := c.SetLogFormat("xml"); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("SetLogFormat(xml) error = %v, want INVALID_INPUT", err)
	}
}

func TestProgress(t *testing.T) {
	var buf bytes.Buffer
	prog := newProgress(newLogger(&buf, log.InfoLevel))
	prog.done("laid out batch", "documents", 3)

	for _, want := range []string{"laid out batch", "documents=3", "elapsed="} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("progress output %q missing %q", buf.String(), want)
		}
	}
}
