// Package api serves the simulation over HTTP.
// GET endpoints are public (read-only observation).
// POST endpoints require a bearer token (admin control plane).
package api

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"sync"

	"seosa/internal/agents"
	"seosa/internal/engine"
	"seosa/internal/persistence"
)

// Server serves a single simulation run over HTTP. Step requests serialize
// through the mutex so turns stay atomic under concurrent clients.
type Server struct {
	Sim      *engine.Simulation
	DB       *persistence.DB
	RunID    string
	Port     int
	AdminKey string // Bearer token for POST endpoints. Empty = POST disabled.

	mu sync.Mutex
}

// Start begins serving the HTTP API in a goroutine.
func (s *Server) Start() {
	mux := http.NewServeMux()

	// Public endpoints (GET, read-only).
	mux.HandleFunc("/api/v1/status", s.handleStatus)
	mux.HandleFunc("/api/v1/characters", s.handleCharacters)
	mux.HandleFunc("/api/v1/character/", s.handleCharacterDetail)
	mux.HandleFunc("/api/v1/graph", s.handleGraph)
	mux.HandleFunc("/api/v1/chronicles", s.handleChronicles)
	mux.HandleFunc("/api/v1/pressure", s.handlePressure)
	mux.HandleFunc("/api/v1/logs", s.handleLogs)

	// Admin endpoints (POST, require bearer token).
	mux.HandleFunc("/api/v1/step", s.adminOnly(s.handleStep))
	mux.HandleFunc("/api/v1/snapshot", s.adminOnly(s.handleSnapshot))

	addr := fmt.Sprintf(":%d", s.Port)
	slog.Info("HTTP API starting", "addr", addr, "admin_auth", s.AdminKey != "")

	go func() {
		if err := http.ListenAndServe(addr, mux); err != nil {
			slog.Error("HTTP server error", "error", err)
		}
	}()
}

// checkBearerToken returns true if the request has a valid admin bearer token.
func (s *Server) checkBearerToken(r *http.Request) bool {
	auth := r.Header.Get("Authorization")
	return strings.HasPrefix(auth, "Bearer ") && strings.TrimPrefix(auth, "Bearer ") == s.AdminKey
}

// adminOnly wraps a handler to require bearer token auth on POST requests.
func (s *Server) adminOnly(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		if s.AdminKey == "" {
			http.Error(w, "admin endpoints disabled (no SEOSA_ADMIN_KEY set)", http.StatusForbidden)
			return
		}
		if !s.checkBearerToken(r) {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		next(w, r)
	}
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	writeJSON(w, map[string]any{
		"run":              s.RunID,
		"turn":             s.Sim.World.Turn,
		"year":             s.Sim.World.Year,
		"population":       s.Sim.Stats.Population,
		"avg_satisfaction": s.Sim.Stats.AvgSatisfaction,
		"total_pressure":   s.Sim.Stats.TotalPressure,
		"chronicles":       s.Sim.Stats.Chronicles,
		"tendency":         s.Sim.World.Tendency,
	})
}

func (s *Server) handleCharacters(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	type characterSummary struct {
		ID           agents.CharacterID `json:"id"`
		Name         string             `json:"name"`
		Location     string             `json:"location"`
		Alive        bool               `json:"alive"`
		Satisfaction float64            `json:"satisfaction"`
		Urgent       string             `json:"urgent_need"`
	}

	out := make([]characterSummary, 0, len(s.Sim.Characters))
	for _, c := range s.Sim.Characters {
		out = append(out, characterSummary{
			ID:           c.ID,
			Name:         c.Name,
			Location:     c.Location,
			Alive:        c.Alive,
			Satisfaction: c.Needs.OverallSatisfaction(),
			Urgent:       c.Needs.Priority().String(),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })

	writeJSON(w, out)
}

// handleCharacterDetail serves GET /api/v1/character/:id with the full
// character record plus its graph standing and beliefs.
func (s *Server) handleCharacterDetail(w http.ResponseWriter, r *http.Request) {
	idStr := strings.TrimPrefix(r.URL.Path, "/api/v1/character/")
	id, err := strconv.ParseUint(idStr, 10, 64)
	if err != nil {
		http.Error(w, "bad character id", http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.Sim.Index[agents.CharacterID(id)]
	if !ok {
		http.Error(w, "character not found", http.StatusNotFound)
		return
	}

	rank := s.Sim.Graph.PageRank()
	beliefs := map[string]float64{}
	if st, ok := s.Sim.Beliefs[c.ID]; ok {
		for _, prop := range st.Propositions() {
			beliefs[prop] = st.Confidence(prop)
		}
	}

	writeJSON(w, map[string]any{
		"id":         c.ID,
		"name":       c.Name,
		"location":   c.Location,
		"alive":      c.Alive,
		"mode":       c.Mode,
		"traits":     c.Traits,
		"needs":      c.Needs,
		"influence":  rank[c.ID],
		"centrality": s.Sim.Graph.DegreeCentrality(c.ID),
		"beliefs":    beliefs,
	})
}

func (s *Server) handleGraph(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	writeJSON(w, map[string]any{
		"nodes":       s.Sim.Graph.NodeCount(),
		"influence":   s.Sim.Graph.PageRank(),
		"communities": s.Sim.Graph.Communities(),
	})
}

func (s *Server) handleChronicles(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if l := r.URL.Query().Get("limit"); l != "" {
		if n, err := strconv.Atoi(l); err == nil && n > 0 && n <= 500 {
			limit = n
		}
	}

	if s.DB != nil {
		rows, err := s.DB.RecentChronicles(s.RunID, limit)
		if err == nil {
			writeJSON(w, rows)
			return
		}
		slog.Warn("chronicle query failed, serving from memory", "error", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	chronicles := s.Sim.World.Chronicles
	if len(chronicles) > limit {
		chronicles = chronicles[len(chronicles)-limit:]
	}
	writeJSON(w, chronicles)
}

func (s *Server) handlePressure(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	writeJSON(w, map[string]any{
		"pressure": s.Sim.World.Pressure,
		"tendency": s.Sim.World.Tendency,
		"echoes":   len(s.Sim.World.Echoes),
	})
}

func (s *Server) handleLogs(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if l := r.URL.Query().Get("limit"); l != "" {
		if n, err := strconv.Atoi(l); err == nil && n > 0 && n <= 500 {
			limit = n
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	logs := s.Sim.World.Logs
	if len(logs) > limit {
		logs = logs[len(logs)-limit:]
	}
	writeJSON(w, logs)
}

// handleStep advances the simulation. POST body may carry {"turns": N},
// capped at 100 per request; default is one.
func (s *Server) handleStep(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Turns int `json:"turns"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Turns < 1 {
		req.Turns = 1
	}
	if req.Turns > 100 {
		req.Turns = 100
	}

	s.mu.Lock()
	result := s.Sim.Run(req.Turns)
	s.mu.Unlock()

	writeJSON(w, result)
}

func (s *Server) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	if s.DB == nil {
		http.Error(w, "no database configured", http.StatusConflict)
		return
	}

	s.mu.Lock()
	err := s.DB.SaveState(s.RunID, s.Sim)
	s.mu.Unlock()

	if err != nil {
		slog.Error("snapshot failed", "error", err)
		http.Error(w, "snapshot failed", http.StatusInternalServerError)
		return
	}
	writeJSON(w, map[string]any{"saved": true, "run": s.RunID})
}

func writeJSON(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.Encode(data)
}
