package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/guidedrag/pkg/buildinfo"
	"github.com/matzehuels/guidedrag/pkg/drag"
	"github.com/matzehuels/guidedrag/pkg/errors"
	"github.com/matzehuels/guidedrag/pkg/overlay"
	"github.com/matzehuels/guidedrag/pkg/render"
	"github.com/matzehuels/guidedrag/pkg/scene"
)

var errTooManyScenes = errors.New(errors.ErrCodeSceneLimit, "scene limit reached")

// sceneResponse describes one scene and its drag session.
type sceneResponse struct {
	ID      string         `json:"id"`
	Scene   *scene.Scene   `json:"scene"`
	State   drag.State     `json:"state"`
	Dragged []string       `json:"dragged,omitempty"`
	Lines   []overlay.Line `json:"lines"`
	Created time.Time      `json:"created"`
}

// eventResponse is the result of a drag event plus the visible lines.
type eventResponse struct {
	drag.Result
	Lines []overlay.Line `json:"lines"`
}

type dragRequest struct {
	Nodes   []string `json:"nodes"`
	Primary string   `json:"primary,omitempty"`
}

type moveRequest struct {
	X *float64 `json:"x"`
	Y *float64 `json:"y"`
}

type errorBody struct {
	Error struct {
		Code    errors.Code `json:"code"`
		Message string      `json:"message"`
	} `json:"error"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status": "ok",
		"build":  buildinfo.Get(),
	})
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string][]string{"scenes": s.ids()})
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	sc, err := scene.Read(http.MaxBytesReader(w, r.Body, s.opts.MaxBody), scene.FormatJSON)
	if err != nil {
		writeError(w, err)
		return
	}
	sess, err := s.add(sc)
	if err != nil {
		writeError(w, err)
		return
	}
	s.opts.Logger.Debug("scene created", "id", sess.id, "nodes", len(sc.Nodes))
	writeJSON(w, http.StatusCreated, map[string]string{"id": sess.id})
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	if !s.remove(chi.URLParam(r, "id")) {
		writeError(w, errors.New(errors.ErrCodeSceneNotFound, "no scene %q", chi.URLParam(r, "id")))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// withSession resolves {id} and holds the session lock for the handler.
func (s *Server) withSession(h func(http.ResponseWriter, *http.Request, *session)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		sess, ok := s.get(id)
		if !ok {
			writeError(w, errors.New(errors.ErrCodeSceneNotFound, "no scene %q", id))
			return
		}
		sess.mu.Lock()
		defer sess.mu.Unlock()
		h(w, r, sess)
	}
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request, sess *session) {
	resp := sceneResponse{
		ID:      sess.id,
		Scene:   sess.scene,
		State:   sess.ctl.State(),
		Lines:   lines(sess),
		Created: sess.created,
	}
	if set := sess.ctl.DragSet(); set != nil {
		resp.Dragged = set.IDs
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleSVG(w http.ResponseWriter, r *http.Request, sess *session) {
	var opts []render.Option
	if set := sess.ctl.DragSet(); set != nil {
		opts = append(opts, render.WithDragged(set.IDs...))
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	w.WriteHeader(http.StatusOK)
	w.Write(render.RenderSVG(sess.scene, sess.guides.Lines(), opts...))
}

func (s *Server) handleDrag(w http.ResponseWriter, r *http.Request, sess *session) {
	var req dragRequest
	if err := s.decode(w, r, &req); err != nil {
		writeError(w, err)
		return
	}
	res, err := sess.ctl.Start(req.Nodes, req.Primary)
	s.respond(w, sess, res, err)
}

func (s *Server) handleMove(w http.ResponseWriter, r *http.Request, sess *session) {
	var req moveRequest
	if err := s.decode(w, r, &req); err != nil {
		writeError(w, err)
		return
	}
	if req.X == nil || req.Y == nil {
		writeError(w, errors.New(errors.ErrCodeInvalidInput, "move needs x and y"))
		return
	}
	res, err := sess.ctl.Move(*req.X, *req.Y)
	s.respond(w, sess, res, err)
}

func (s *Server) handleDrop(w http.ResponseWriter, r *http.Request, sess *session) {
	res, err := sess.ctl.Drop()
	s.respond(w, sess, res, err)
}

func (s *Server) handleCancel(w http.ResponseWriter, r *http.Request, sess *session) {
	res, err := sess.ctl.Cancel()
	s.respond(w, sess, res, err)
}

func (s *Server) respond(w http.ResponseWriter, sess *session, res drag.Result, err error) {
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, eventResponse{Result: res, Lines: lines(sess)})
}

func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, s.opts.MaxBody))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "decode request")
	}
	return nil
}

func lines(sess *session) []overlay.Line {
	l := sess.guides.Lines()
	if l == nil {
		l = []overlay.Line{}
	}
	return l
}

// statusFor maps an error code to an HTTP status.
func statusFor(err error) int {
	if errors.IsNotFound(err) {
		return http.StatusNotFound
	}
	switch errors.GetCode(err) {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidConfig, errors.ErrCodeInvalidGeometry,
		errors.ErrCodeInvalidScene, errors.ErrCodeInvalidDragSet, errors.ErrCodeInvalidFormat,
		errors.ErrCodeInvalidPath:
		return http.StatusBadRequest
	case errors.ErrCodeSceneLimit:
		return http.StatusTooManyRequests
	}
	return http.StatusInternalServerError
}

func writeError(w http.ResponseWriter, err error) {
	var body errorBody
	body.Error.Code = errors.GetCode(err)
	if body.Error.Code == "" {
		body.Error.Code = errors.ErrCodeInternal
	}
	body.Error.Message = errors.UserMessage(err)
	writeJSON(w, statusFor(err), body)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
