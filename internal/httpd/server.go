// Package httpd exposes the agent's pass and status over a small local
// HTTP surface so anything that can fetch a PNG can show the pass.
package httpd

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/huihutong/passd/internal/poller"
	"github.com/huihutong/passd/internal/util"
)

const healthResponse = `{"status":"ok"}`

// Options holds the dependencies for creating a Server.
type Options struct {
	Controller *poller.Controller // Required
	Logger     *slog.Logger       // Optional
}

// Server serves the current pass image and controller status.
type Server struct {
	controller *poller.Controller
	logger     *slog.Logger
}

// NewServer validates dependencies and builds the server.
func NewServer(opts Options) (*Server, error) {
	if opts.Controller == nil {
		return nil, errors.New("Controller is required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{controller: opts.Controller, logger: logger}, nil
}

// Handler returns the route mux.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", handleHealth)
	mux.HandleFunc("HEAD /healthz", handleHealth)
	mux.HandleFunc("GET /api/status", s.handleStatus)
	mux.HandleFunc("POST /api/refresh", s.handleRefresh)
	mux.HandleFunc("GET /pass.png", s.handlePass)
	return mux
}

// handleHealth returns a simple 200 OK for readiness/liveness checks.
func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if r.Method == http.MethodHead {
		return
	}
	if _, err := io.WriteString(w, healthResponse); err != nil {
		// Nothing more to do if the client connection is gone.
		return
	}
}

type statusResponse struct {
	State         poller.State `json:"state"`
	Status        string       `json:"status"`
	Detail        string       `json:"detail,omitempty"`
	RenderedAt    *time.Time   `json:"rendered_at,omitempty"`
	NextRefreshAt *time.Time   `json:"next_refresh_at,omitempty"`
	CycleDuration string       `json:"cycle_duration"`
}

func (s *Server) handleStatus(w http.ResponseWriter, _ *http.Request) {
	snap := s.controller.Snapshot()
	resp := statusResponse{
		State:         snap.State,
		Status:        snap.Status,
		Detail:        snap.Detail,
		CycleDuration: util.FormatCycleDuration(snap.CycleDuration),
	}
	if !snap.RenderedAt.IsZero() {
		resp.RenderedAt = &snap.RenderedAt
	}
	if !snap.NextRefreshAt.IsZero() {
		resp.NextRefreshAt = &snap.NextRefreshAt
	}
	writeJSON(w, http.StatusOK, resp)
}

// handleRefresh is the manual tap.
func (s *Server) handleRefresh(w http.ResponseWriter, _ *http.Request) {
	s.controller.Refresh()
	writeJSON(w, http.StatusAccepted, map[string]string{"status": "refresh scheduled"})
}

func (s *Server) handlePass(w http.ResponseWriter, _ *http.Request) {
	snap := s.controller.Snapshot()
	if len(snap.ImagePNG) == 0 {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{
			"error":   "no_pass",
			"message": snap.Status,
		})
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(snap.ImagePNG); err != nil {
		return
	}
}

// writeJSON writes a JSON response with the given status code and data.
func writeJSON(w http.ResponseWriter, code int, v any) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if _, err := buf.WriteTo(w); err != nil {
		// Response writer errors (client disconnect) can't be recovered here.
		return
	}
}
