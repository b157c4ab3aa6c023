// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard dependencies
// on specific observability backends. Consumers can register hooks at startup
// to receive events about drag sessions and HTTP API calls.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// Drag controllers read the registered hooks once, at construction, unless
// they are given explicit hooks (see drag.WithHooks).
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetDragHooks(&myDragHooks{})
//	    observability.SetHTTPHooks(&myHTTPHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Drag().OnDragStart(len(ids))
//	// ... moves ...
//	observability.Drag().OnDragEnd(observability.OutcomeCommit, moves, elapsed)
package observability

import (
	"context"
	"sync"
	"time"
)

// Drag session outcomes reported to [DragHooks.OnDragEnd].
const (
	OutcomeCommit = "commit"
	OutcomeCancel = "cancel"
)

// =============================================================================
// Drag Hooks
// =============================================================================

// DragHooks receives events from drag session controllers.
type DragHooks interface {
	// OnDragStart records a new session moving the given number of nodes.
	OnDragStart(nodes int)

	// OnMove records one processed move event.
	OnMove(candidates int, snapped bool, duration time.Duration)

	// OnDragEnd records the end of a session.
	OnDragEnd(outcome string, moves int, duration time.Duration)
}

// =============================================================================
// HTTP Hooks
// =============================================================================

// HTTPHooks receives events from the HTTP API server.
type HTTPHooks interface {
	// OnRequest records an incoming HTTP request.
	OnRequest(ctx context.Context, method, path string)

	// OnResponse records a completed HTTP response.
	OnResponse(ctx context.Context, method, path string, statusCode int, duration time.Duration)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopDragHooks is a no-op implementation of DragHooks.
type NoopDragHooks struct{}

func (NoopDragHooks) OnDragStart(int)                      {}
func (NoopDragHooks) OnMove(int, bool, time.Duration)      {}
func (NoopDragHooks) OnDragEnd(string, int, time.Duration) {}

// NoopHTTPHooks is a no-op implementation of HTTPHooks.
type NoopHTTPHooks struct{}

func (NoopHTTPHooks) OnRequest(context.Context, string, string)                      {}
func (NoopHTTPHooks) OnResponse(context.Context, string, string, int, time.Duration) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	dragHooks DragHooks = NoopDragHooks{}
	httpHooks HTTPHooks = NoopHTTPHooks{}
	hooksMu   sync.RWMutex
)

// SetDragHooks registers custom drag hooks.
// This should be called once at application startup before any drag controller is created.
func SetDragHooks(h DragHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		dragHooks = h
	}
}

// SetHTTPHooks registers custom HTTP hooks.
// This should be called once at application startup before the server starts.
func SetHTTPHooks(h HTTPHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		httpHooks = h
	}
}

// Drag returns the registered drag hooks.
func Drag() DragHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return dragHooks
}

// HTTP returns the registered HTTP hooks.
func HTTP() HTTPHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return httpHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	dragHooks = NoopDragHooks{}
	httpHooks = NoopHTTPHooks{}
}
