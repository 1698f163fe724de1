package observability

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// LogHooks implements every hook interface by logging at debug level.
type LogHooks struct {
	logger *log.Logger
}

// NewLogHooks returns hooks that write to logger. If logger is nil,
// log.Default is used.
func NewLogHooks(logger *log.Logger) *LogHooks {
	if logger == nil {
		logger = log.Default()
	}
	return &LogHooks{logger: logger.WithPrefix("hooks")}
}

func (h *LogHooks) OnLayoutStart(_ context.Context, boxCount int) {
	h.logger.Debug("layout start", "boxes", boxCount)
}

func (h *LogHooks) OnLayoutComplete(_ context.Context, lineCount int, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("layout failed", "duration", d, "error", err)
		return
	}
	h.logger.Debug("layout done", "lines", lineCount, "duration", d)
}

func (h *LogHooks) OnReflowStart(_ context.Context, mode string, boxCount int) {
	h.logger.Debug("reflow start", "mode", mode, "boxes", boxCount)
}

func (h *LogHooks) OnReflowComplete(_ context.Context, mode string, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("reflow failed", "mode", mode, "duration", d, "error", err)
		return
	}
	h.logger.Debug("reflow done", "mode", mode, "duration", d)
}

func (h *LogHooks) OnCacheHit(_ context.Context, keyType string) {
	h.logger.Debug("cache hit", "type", keyType)
}

func (h *LogHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.logger.Debug("cache miss", "type", keyType)
}

func (h *LogHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.logger.Debug("cache set", "type", keyType, "bytes", size)
}

func (h *LogHooks) OnRequest(_ context.Context, method, path string) {
	h.logger.Debug("request", "method", method, "path", path)
}

func (h *LogHooks) OnResponse(_ context.Context, method, path string, status int, d time.Duration) {
	h.logger.Debug("response", "method", method, "path", path, "status", status, "duration", d)
}

func (h *LogHooks) OnError(_ context.Context, method, path string, err error) {
	h.logger.Debug("request error", "method", method, "path", path, "error", err)
}

var (
	_ EngineHooks = (*LogHooks)(nil)
	_ CacheHooks  = (*LogHooks)(nil)
	_ HTTPHooks   = (*LogHooks)(nil)
)
