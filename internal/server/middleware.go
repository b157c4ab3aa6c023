package server

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/guidedrag/pkg/observability"
)

// scenesPrefix is the path prefix of per-scene routes.
const scenesPrefix = "/v1/scenes/"

// instrument logs every request and reports it to the registered HTTP hooks.
// Both hooks get a route label rather than the raw path so scene IDs do not
// explode labels: OnRequest runs before routing and gets the path with its
// scene ID replaced by {id}, OnResponse gets the matched route pattern.
func (s *Server) instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hooks := observability.HTTP()
		hooks.OnRequest(r.Context(), r.Method, requestLabel(r.URL.Path))

		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		elapsed := time.Since(start)

		pattern := requestLabel(r.URL.Path)
		if rc := chi.RouteContext(r.Context()); rc != nil && rc.RoutePattern() != "" {
			pattern = trimSlash(rc.RoutePattern())
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}

		hooks.OnResponse(r.Context(), r.Method, pattern, status, elapsed)
		s.opts.Logger.Info("request",
			"method", r.Method,
			"path", pattern,
			"status", status,
			"duration", elapsed.Round(time.Microsecond),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}

// requestLabel returns path with the scene ID segment replaced by {id}.
func requestLabel(path string) string {
	rest, ok := strings.CutPrefix(path, scenesPrefix)
	if !ok || rest == "" {
		return trimSlash(path)
	}
	if _, tail, found := strings.Cut(rest, "/"); found {
		return trimSlash(scenesPrefix + "{id}/" + tail)
	}
	return scenesPrefix + "{id}"
}

func trimSlash(p string) string {
	if len(p) > 1 {
		return strings.TrimSuffix(p, "/")
	}
	return p
}
