package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/guidedrag/pkg/observability"
)

// newLogger creates a new logger with timestamp formatting.
// The logger writes to w and filters messages at the specified level.
// Timestamps are formatted as "HH:MM:SS.ms" (e.g., "14:32:01.45").
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress tracks the start time of an operation and logs completion with elapsed duration.
type progress struct {
	logger *log.Logger
	start  time.Time
}

// newProgress creates a progress tracker that captures the current time as start.
func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg along with the elapsed time since progress was created.
// Example output: "Replayed 12 events (3ms)"
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}

// =============================================================================
// Logging Hooks
// =============================================================================

// logHooks traces drag sessions and HTTP requests at debug level.
type logHooks struct {
	logger *log.Logger
}

var (
	_ observability.DragHooks = logHooks{}
	_ observability.HTTPHooks = logHooks{}
)

func (h logHooks) OnDragStart(nodes int) {
	h.logger.Debug("drag started", "nodes", nodes)
}

func (h logHooks) OnMove(candidates int, snapped bool, d time.Duration) {
	h.logger.Debug("move", "candidates", candidates, "snapped", snapped, "took", d)
}

func (h logHooks) OnDragEnd(outcome string, moves int, d time.Duration) {
	h.logger.Debug("drag ended", "outcome", outcome, "moves", moves, "took", d.Round(time.Microsecond))
}

func (h logHooks) OnRequest(_ context.Context, method, path string) {
	h.logger.Debug("request received", "method", method, "path", path)
}

func (h logHooks) OnResponse(_ context.Context, method, path string, status int, d time.Duration) {
	h.logger.Debug("response sent", "method", method, "path", path, "status", status, "took", d)
}

// EnableTracing registers logging observability hooks backed by c.Logger.
func (c *CLI) EnableTracing() {
	h := logHooks{logger: c.Logger}
	observability.SetDragHooks(h)
	observability.SetHTTPHooks(h)
}
