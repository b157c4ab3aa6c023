// Package server exposes drag sessions over HTTP.
//
// Each uploaded scene gets its own drag controller and guide recorder.
// Events on one scene are serialized by a per-scene mutex; different
// scenes proceed in parallel.
//
// Routes:
//
//	GET    /healthz
//	GET    /v1/scenes
//	POST   /v1/scenes                 scene JSON -> {"id": ...}
//	GET    /v1/scenes/{id}            scene, state and visible guides
//	GET    /v1/scenes/{id}/svg        snapshot as SVG
//	DELETE /v1/scenes/{id}
//	POST   /v1/scenes/{id}/drag       {"nodes": [...], "primary": "..."}
//	POST   /v1/scenes/{id}/move       {"x": ..., "y": ...}
//	POST   /v1/scenes/{id}/drop
//	POST   /v1/scenes/{id}/cancel
package server

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"sort"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/matzehuels/guidedrag/pkg/config"
	"github.com/matzehuels/guidedrag/pkg/drag"
	"github.com/matzehuels/guidedrag/pkg/overlay"
	"github.com/matzehuels/guidedrag/pkg/scene"
)

// Defaults for [Options].
const (
	DefaultAddr      = ":8080"
	DefaultMaxScenes = 1024
	DefaultMaxBody   = 1 << 20
)

// Options configures a [Server].
type Options struct {
	// Config is the drag configuration every session is created with.
	Config config.Config

	// Logger receives request logs. Nil discards.
	Logger *log.Logger

	// MaxScenes caps the number of live scenes.
	MaxScenes int

	// MaxBody caps request body size in bytes.
	MaxBody int64
}

// ValidateAndSetDefaults fills zero fields and validates the drag config.
// A zero Config means [config.Default].
func (o *Options) ValidateAndSetDefaults() error {
	if o.Config == (config.Config{}) {
		o.Config = config.Default()
	}
	if o.MaxScenes <= 0 {
		o.MaxScenes = DefaultMaxScenes
	}
	if o.MaxBody <= 0 {
		o.MaxBody = DefaultMaxBody
	}
	if o.Logger == nil {
		o.Logger = log.New(io.Discard)
	}
	return o.Config.ValidateAndSetDefaults()
}

type session struct {
	mu      sync.Mutex
	id      string
	scene   *scene.Scene
	guides  *overlay.Recorder
	ctl     *drag.Controller
	created time.Time
}

// Server is the HTTP drag API.
type Server struct {
	opts   Options
	mu     sync.RWMutex
	scenes map[string]*session
	router chi.Router
}

// New returns a server with its routes mounted.
func New(opts Options) (*Server, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	s := &Server{opts: opts, scenes: make(map[string]*session)}
	s.router = s.routes()
	return s, nil
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler { return s.router }

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.instrument)

	r.Get("/healthz", s.handleHealth)
	r.Route("/v1/scenes", func(r chi.Router) {
		r.Get("/", s.handleList)
		r.Post("/", s.handleCreate)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.withSession(s.handleGet))
			r.Get("/svg", s.withSession(s.handleSVG))
			r.Delete("/", s.handleDelete)
			r.Post("/drag", s.withSession(s.handleDrag))
			r.Post("/move", s.withSession(s.handleMove))
			r.Post("/drop", s.withSession(s.handleDrop))
			r.Post("/cancel", s.withSession(s.handleCancel))
		})
	})
	return r
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	if addr == "" {
		addr = DefaultAddr
	}
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.opts.Logger.Info("listening", "addr", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.opts.Logger.Info("shutting down")
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	}
}

func (s *Server) add(sc *scene.Scene) (*session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.scenes) >= s.opts.MaxScenes {
		return nil, errTooManyScenes
	}
	rec := overlay.NewRecorder()
	sess := &session{
		id:      uuid.NewString(),
		scene:   sc,
		guides:  rec,
		created: time.Now().UTC(),
	}
	sess.ctl = drag.New(sc.Model(), rec, s.opts.Config, drag.WithLogger(s.opts.Logger))
	s.scenes[sess.id] = sess
	return sess, nil
}

func (s *Server) get(id string) (*session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.scenes[id]
	return sess, ok
}

func (s *Server) remove(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.scenes[id]
	delete(s.scenes, id)
	return ok
}

func (s *Server) ids() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, 0, len(s.scenes))
	for id := range s.scenes {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}
