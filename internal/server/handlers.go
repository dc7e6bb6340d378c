package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/lbartels/bionet/pkg/bionet"
	"github.com/lbartels/bionet/pkg/errors"
)

// maxFrameSteps bounds how many ticks a single frame request may advance.
const maxFrameSteps = 100

// =============================================================================
// Response Helpers
// =============================================================================

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func respondError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch errors.GetCode(err) {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidThreshold, errors.ErrCodeInvalidFormat:
		status = http.StatusBadRequest
	case errors.ErrCodeNotFound, errors.ErrCodeNodeNotFound, errors.ErrCodeSessionNotFound:
		status = http.StatusNotFound
	}
	respondJSON(w, status, map[string]string{
		"error": errors.UserMessage(err),
		"code":  string(errors.GetCode(err)),
	})
}

func decodeBody(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid request body")
	}
	return nil
}

// =============================================================================
// Handlers
// =============================================================================

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleGraph returns the full parsed network with degrees.
func (s *Server) handleGraph(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	g := s.graph
	s.mu.Unlock()
	respondJSON(w, http.StatusOK, g)
}

// handleFrame advances the session's simulation up to ?steps ticks (default
// 1) and returns the resulting frame. Settled simulations return the frozen
// frame without advancing.
func (s *Server) handleFrame(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r)
	engine := s.engineFor(sess)

	steps := 1
	if v := r.URL.Query().Get("steps"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			respondError(w, errors.New(errors.ErrCodeInvalidInput, "steps must be a non-negative integer"))
			return
		}
		steps = n
	}
	if steps > maxFrameSteps {
		steps = maxFrameSteps
	}

	for i := 0; i < steps; i++ {
		if !engine.Step() {
			break
		}
	}

	showLabels := r.URL.Query().Get("labels") != "false"
	respondJSON(w, http.StatusOK, engine.Frame(showLabels))
}

// handleThresholds applies new filter thresholds to the session.
func (s *Server) handleThresholds(w http.ResponseWriter, r *http.Request) {
	var t bionet.Thresholds
	if err := decodeBody(r, &t); err != nil {
		respondError(w, err)
		return
	}

	sess := sessionFrom(r)
	engine := s.engineFor(sess)
	engine.Reconfigure(t)

	sess.Thresholds = engine.Thresholds()
	s.saveSession(r.Context(), sess)
	respondJSON(w, http.StatusOK, sess.Thresholds)
}

// handleHighlight sets or toggles the category highlight.
func (s *Server) handleHighlight(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Category string `json:"category"`
		Toggle   bool   `json:"toggle,omitempty"`
	}
	if err := decodeBody(r, &body); err != nil {
		respondError(w, err)
		return
	}

	sess := sessionFrom(r)
	engine := s.engineFor(sess)

	cat := bionet.ParseCategory(body.Category)
	if body.Toggle {
		engine.ToggleHighlight(cat)
	} else {
		engine.SetHighlight(cat)
	}

	sess.Highlight = engine.Highlight().String()
	s.saveSession(r.Context(), sess)
	respondJSON(w, http.StatusOK, map[string]string{"highlight": sess.Highlight})
}

// handleSelect selects a node, handleDeselect clears the selection (a click
// on empty canvas).
func (s *Server) handleSelect(w http.ResponseWriter, r *http.Request) {
	var body struct {
		NodeID string `json:"node_id"`
	}
	if err := decodeBody(r, &body); err != nil {
		respondError(w, err)
		return
	}
	if body.NodeID == "" {
		respondError(w, errors.New(errors.ErrCodeInvalidInput, "node_id is required"))
		return
	}

	sess := sessionFrom(r)
	engine := s.engineFor(sess)
	engine.ClickNode(body.NodeID)

	sess.Selected = engine.Selected()
	s.saveSession(r.Context(), sess)
	respondJSON(w, http.StatusOK, map[string]string{"selected": sess.Selected})
}

func (s *Server) handleDeselect(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r)
	engine := s.engineFor(sess)
	engine.ClickCanvas()

	sess.Selected = ""
	s.saveSession(r.Context(), sess)
	respondJSON(w, http.StatusOK, map[string]string{"selected": ""})
}

// =============================================================================
// Drag Handlers
// =============================================================================

type dragRequest struct {
	NodeID string  `json:"node_id"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
}

func (s *Server) handleDragStart(w http.ResponseWriter, r *http.Request) {
	var body dragRequest
	if err := decodeBody(r, &body); err != nil {
		respondError(w, err)
		return
	}

	engine := s.engineFor(sessionFrom(r))
	if err := engine.DragStart(body.NodeID); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"dragging": body.NodeID})
}

func (s *Server) handleDragMove(w http.ResponseWriter, r *http.Request) {
	var body dragRequest
	if err := decodeBody(r, &body); err != nil {
		respondError(w, err)
		return
	}

	engine := s.engineFor(sessionFrom(r))
	engine.DragMove(body.NodeID, body.X, body.Y)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDragEnd(w http.ResponseWriter, r *http.Request) {
	var body dragRequest
	if err := decodeBody(r, &body); err != nil {
		respondError(w, err)
		return
	}

	engine := s.engineFor(sessionFrom(r))
	engine.DragEnd(body.NodeID)
	w.WriteHeader(http.StatusNoContent)
}
