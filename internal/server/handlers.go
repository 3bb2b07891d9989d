package server

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/forcegraph/pkg/buildinfo"
	"github.com/matzehuels/forcegraph/pkg/errors"
	"github.com/matzehuels/forcegraph/pkg/layout/force"
	"github.com/matzehuels/forcegraph/pkg/render"
	"github.com/matzehuels/forcegraph/pkg/sim"
	"github.com/matzehuels/forcegraph/pkg/view"
)

// FrameResponse is the JSON body of GET /api/v1/frame.
type FrameResponse struct {
	Steps int64 `json:"steps"`
	force.Snapshot
}

// StepResponse is the JSON body of POST /api/v1/step.
type StepResponse struct {
	RunID      string  `json:"run_id"`
	Steps      int     `json:"steps"`
	Total      int64   `json:"total"`
	DurationMS float64 `json:"duration_ms"`
}

// HitRequest is the JSON body of POST /api/v1/hit. A missing view means the
// identity transform and a zero radius means [view.DefaultHitRadius].
type HitRequest struct {
	X      float64         `json:"x"`
	Y      float64         `json:"y"`
	View   *view.Transform `json:"view,omitempty"`
	Radius float64         `json:"radius,omitempty"`
}

// HitResponse reports the node under a screen point.
type HitResponse struct {
	Hit  bool             `json:"hit"`
	Node *force.NodeState `json:"node,omitempty"`
}

// PositionRequest is the JSON body of PUT /api/v1/nodes/{id}/position.
type PositionRequest struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

func (s *Server) snapshot() force.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.Snapshot()
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "version": buildinfo.Version})
}

func (s *Server) handleFrame(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, FrameResponse{Steps: s.Steps(), Snapshot: s.snapshot()})
}

func (s *Server) handleFrameSVG(w http.ResponseWriter, r *http.Request) {
	s.writeFrame(w, r, render.FormatSVG)
}

func (s *Server) handleFrameFormat(w http.ResponseWriter, r *http.Request) {
	f, err := render.ParseFormat(chi.URLParam(r, "format"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeFrame(w, r, f)
}

func (s *Server) writeFrame(w http.ResponseWriter, r *http.Request, f render.Format) {
	out, err := render.Frame(r.Context(), s.snapshot(), f, s.opts.Render)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", f.ContentType())
	w.Header().Set("Cache-Control", "no-store")
	_, _ = w.Write(out)
}

func (s *Server) handleStep(w http.ResponseWriter, r *http.Request) {
	n := 1
	if raw := r.URL.Query().Get("n"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			s.writeError(w, r, errors.New(errors.ErrCodeInvalidInput, "n must be an integer, got %q", raw))
			return
		}
		n = v
	}
	if n < 1 || n > s.opts.Serve.MaxSteps {
		s.writeError(w, r, errors.New(errors.ErrCodeInvalidInput, "n must be between 1 and %d, got %d", s.opts.Serve.MaxSteps, n))
		return
	}

	res, err := s.sim.Run(r.Context(), s.engine, sim.Options{
		Steps:    n,
		Locker:   &s.mu,
		Progress: func(int, int) { s.steps.Add(1) },
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, StepResponse{
		RunID:      res.RunID,
		Steps:      res.Steps,
		Total:      s.Steps(),
		DurationMS: float64(res.Duration.Microseconds()) / 1000,
	})
}

func (s *Server) handleHit(w http.ResponseWriter, r *http.Request) {
	var req HitRequest
	if err := decode(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	t := view.Identity()
	if req.View != nil {
		t = *req.View
	}

	snap := s.snapshot()
	id, ok := view.HitTest(snap.Nodes, force.Vec{X: req.X, Y: req.Y}, t, req.Radius)
	if !ok {
		s.writeJSON(w, http.StatusOK, HitResponse{})
		return
	}
	n, _ := snap.Lookup(id)
	s.writeJSON(w, http.StatusOK, HitResponse{Hit: true, Node: &n})
}

func (s *Server) handleNode(w http.ResponseWriter, r *http.Request) {
	s.withNode(w, r, func(int) error { return nil })
}

func (s *Server) handlePin(w http.ResponseWriter, r *http.Request) {
	s.withNode(w, r, s.engine.Pin)
}

func (s *Server) handleUnpin(w http.ResponseWriter, r *http.Request) {
	s.withNode(w, r, s.engine.Unpin)
}

func (s *Server) handlePosition(w http.ResponseWriter, r *http.Request) {
	var req PositionRequest
	if err := decode(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	pos := force.Vec{X: req.X, Y: req.Y}
	if !pos.IsFinite() {
		s.writeError(w, r, errors.New(errors.ErrCodeInvalidInput, "position must be finite"))
		return
	}
	s.withNode(w, r, func(id int) error { return s.engine.MoveTo(id, pos) })
}

// withNode applies fn to the node named in the URL under the engine lock and
// answers with the node's state afterwards.
func (s *Server) withNode(w http.ResponseWriter, r *http.Request, fn func(id int) error) {
	id, err := nodeID(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.mu.Lock()
	err = fn(id)
	var state force.NodeState
	if err == nil {
		state, err = nodeState(s.engine, id)
	}
	s.mu.Unlock()

	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, state)
}

func nodeState(e *force.Engine, id int) (force.NodeState, error) {
	n, ok := e.Node(id)
	if !ok {
		return force.NodeState{}, errors.New(errors.ErrCodeUnknownNode, "node %d not found", id)
	}
	return force.NodeState{ID: n.ID, Pos: n.Pos, Pinned: n.Pinned, Name: n.Name, Location: n.Location}, nil
}
