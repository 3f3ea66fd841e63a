// Package http exposes a gestalt system over HTTP with chi.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/aretw0/gestalt"
	"github.com/aretw0/gestalt/internal/presentation/graph"
	"github.com/aretw0/gestalt/pkg/bindings"
	"github.com/aretw0/gestalt/pkg/domain"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const maxBodyBytes = 1 << 20

// Engine is the subset of gestalt.System the server drives.
type Engine interface {
	Register(b domain.Binding) error
	Unregister(actionID string) bool
	Bindings() []domain.Binding
	State(actionID string) (domain.TriggerState, bool)
	ProcessFace(ctx context.Context, data domain.FaceData) []domain.ActionEvent
	ProcessHand(ctx context.Context, data domain.HandData) []domain.ActionEvent
	Released() bool
}

// Server holds the HTTP handlers.
type Server struct {
	Engine   Engine
	Streams  *StreamManager
	Gatherer prometheus.Gatherer
	Logger   *slog.Logger
}

// Option configures the handler.
type Option func(*Server)

// WithStreams shares a StreamManager, typically one a relay publishes into.
func WithStreams(sm *StreamManager) Option {
	return func(s *Server) {
		s.Streams = sm
	}
}

// WithGatherer exposes the gatherer's metrics on GET /metrics.
func WithGatherer(g prometheus.Gatherer) Option {
	return func(s *Server) {
		s.Gatherer = g
	}
}

// WithLogger sets the request logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.Logger = logger
	}
}

// NewHandler creates a new HTTP handler for the engine.
func NewHandler(engine Engine, opts ...Option) http.Handler {
	server := &Server{Engine: engine}
	for _, opt := range opts {
		opt(server)
	}
	if server.Logger == nil {
		server.Logger = slog.Default()
	}
	if server.Streams == nil {
		server.Streams = NewStreamManager(server.Logger)
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/health", server.GetHealth)
	r.Get("/info", server.GetInfo)
	r.Post("/frames/face", server.PostFace)
	r.Post("/frames/hand", server.PostHand)
	r.Route("/bindings", func(r chi.Router) {
		r.Get("/", server.ListBindings)
		r.Post("/", server.CreateBinding)
		r.Delete("/{id}", server.DeleteBinding)
		r.Get("/{id}/state", server.GetState)
		r.Get("/{id}/graph", server.GetGraph)
	})
	r.Get("/events", server.SubscribeEvents)
	if server.Gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(server.Gatherer, promhttp.HandlerOpts{}))
	}

	return enableCORS(r)
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// PostFace handles the POST /frames/face request.
func (s *Server) PostFace(w http.ResponseWriter, r *http.Request) {
	var frame domain.FaceData
	if !s.decode(w, r, "PostFace", &frame) {
		return
	}
	if s.rejectReleased(w) {
		return
	}
	s.writeEvents(w, "PostFace", s.Engine.ProcessFace(r.Context(), frame))
}

// PostHand handles the POST /frames/hand request.
func (s *Server) PostHand(w http.ResponseWriter, r *http.Request) {
	var frame domain.HandData
	if !s.decode(w, r, "PostHand", &frame) {
		return
	}
	if s.rejectReleased(w) {
		return
	}
	s.writeEvents(w, "PostHand", s.Engine.ProcessHand(r.Context(), frame))
}

// ListBindings handles the GET /bindings request.
func (s *Server) ListBindings(w http.ResponseWriter, r *http.Request) {
	list := s.Engine.Bindings()
	resp := make([]bindings.Definition, 0, len(list))
	for _, b := range list {
		resp = append(resp, bindings.FromBinding(b))
	}
	s.writeJSON(w, "ListBindings", http.StatusOK, resp)
}

// CreateBinding handles the POST /bindings request.
func (s *Server) CreateBinding(w http.ResponseWriter, r *http.Request) {
	var raw map[string]any
	if !s.decode(w, r, "CreateBinding", &raw) {
		return
	}
	def, err := bindings.DecodeDefinition(raw)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		s.Logger.Warn("CreateBinding: Invalid binding", "error", err)
		return
	}
	b, err := def.Build()
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}
	if s.rejectReleased(w) {
		return
	}
	if err := s.Engine.Register(b); err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, domain.ErrDuplicateAction) {
			status = http.StatusConflict
		}
		s.writeError(w, status, err)
		return
	}
	s.writeJSON(w, "CreateBinding", http.StatusCreated, bindings.FromBinding(b))
}

// DeleteBinding handles the DELETE /bindings/{id} request.
func (s *Server) DeleteBinding(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !s.Engine.Unregister(id) {
		s.writeError(w, http.StatusNotFound, fmt.Errorf("binding %q not found", id))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetState handles the GET /bindings/{id}/state request.
func (s *Server) GetState(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	state, ok := s.Engine.State(id)
	if !ok {
		s.writeError(w, http.StatusNotFound, fmt.Errorf("binding %q not found", id))
		return
	}
	s.writeJSON(w, "GetState", http.StatusOK, state)
}

// GetGraph handles the GET /bindings/{id}/graph request.
// It returns a Mermaid state diagram with the current phase highlighted.
func (s *Server) GetGraph(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var binding *domain.Binding
	for _, b := range s.Engine.Bindings() {
		if b.ActionID == id {
			binding = &b
			break
		}
	}
	state, ok := s.Engine.State(id)
	if binding == nil || !ok {
		s.writeError(w, http.StatusNotFound, fmt.Errorf("binding %q not found", id))
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte(graph.GenerateMermaid(*binding, &graph.GraphOverlay{Current: state.Phase})))
}

// GetHealth handles the GET /health request.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	if s.Engine.Released() {
		s.writeJSON(w, "GetHealth", http.StatusServiceUnavailable, map[string]string{"status": "released"})
		return
	}
	s.writeJSON(w, "GetHealth", http.StatusOK, map[string]string{"status": "ok"})
}

// GetInfo handles the GET /info request.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, "GetInfo", http.StatusOK, map[string]any{
		"app":      "gestalt-http",
		"version":  strings.TrimSpace(gestalt.Version),
		"bindings": len(s.Engine.Bindings()),
	})
}

// SubscribeEvents handles the GET /events request (SSE).
// The optional action_id query parameter takes a comma-separated filter.
func (s *Server) SubscribeEvents(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		s.Logger.Error("SubscribeEvents: Streaming not supported")
		return
	}

	var watch map[string]bool
	topic := AllActions
	if raw := r.URL.Query().Get("action_id"); raw != "" {
		ids := strings.Split(raw, ",")
		if len(ids) == 1 {
			topic = strings.TrimSpace(ids[0])
		} else {
			watch = make(map[string]bool, len(ids))
			for _, id := range ids {
				watch[strings.TrimSpace(id)] = true
			}
		}
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	ch, cancel := s.Streams.Subscribe(topic)
	defer cancel()
	s.Logger.Info("SSE: Subscribing to action events", "topic", topic)

	fmt.Fprintf(w, "event: ping\ndata: connected\n\n")
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			s.Logger.Info("SSE Client Disconnected")
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			var rec domain.Record
			if err := json.Unmarshal([]byte(msg), &rec); err != nil {
				continue
			}
			if watch != nil && !watch[rec.ActionID] {
				continue
			}
			fmt.Fprintf(w, "event: %s\ndata: %s\n\n", rec.Type, msg)
			flusher.Flush()
		}
	}
}

// -- Helpers --

func (s *Server) decode(w http.ResponseWriter, r *http.Request, op string, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		s.Logger.Warn(op+": Invalid request body", "error", err)
		return false
	}
	return true
}

func (s *Server) rejectReleased(w http.ResponseWriter) bool {
	if !s.Engine.Released() {
		return false
	}
	s.writeError(w, http.StatusServiceUnavailable, errors.New("action system released"))
	return true
}

func (s *Server) writeEvents(w http.ResponseWriter, op string, events []domain.ActionEvent) {
	resp := make([]domain.Record, 0, len(events))
	for _, ev := range events {
		resp = append(resp, domain.ToRecord(ev))
	}
	s.writeJSON(w, op, http.StatusOK, map[string]any{"events": resp})
}

func (s *Server) writeError(w http.ResponseWriter, status int, err error) {
	resp := map[string]any{"error": err.Error()}
	if details := bindings.ValidationErrors(err); len(details) > 0 {
		msgs := make([]string, len(details))
		for i, d := range details {
			msgs[i] = d.Error()
		}
		resp["details"] = msgs
	}
	s.writeJSON(w, "error", status, resp)
}

func (s *Server) writeJSON(w http.ResponseWriter, op string, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.Logger.Error(op+" response encode failed", "error", err)
	}
}
