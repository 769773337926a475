package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"go.uber.org/zap"
)

type correctRequest struct {
	Query    string `json:"query"`
	Language string `json:"language,omitempty"`
}

func (s *Server) handleCorrect(w http.ResponseWriter, r *http.Request) {
	var req correctRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	s.logger.Debug("correct request", zap.String("query", req.Query))
	snap := s.provider.Snapshot()
	result := s.pipeline.Correct(req.Query, snap)
	s.respondJSON(w, http.StatusOK, result)
}

type resolveRequest struct {
	Query     string  `json:"query"`
	GuardLead float64 `json:"guard_lead,omitempty"`
}

func (s *Server) handleResolve(w http.ResponseWriter, r *http.Request) {
	var req resolveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	s.logger.Debug("resolve request", zap.String("query", req.Query), zap.Float64("guard_lead", req.GuardLead))
	snap := s.provider.Snapshot()

	// Resolve on the corrected query so typos don't force no_match.
	corrected := s.pipeline.Correct(req.Query, snap)
	var resolution any
	if req.GuardLead > 0 {
		resolution = s.ranker.ResolveWithLead(corrected.Corrected, snap, req.GuardLead)
	} else {
		resolution = s.ranker.Resolve(corrected.Corrected, snap)
	}
	s.respondJSON(w, http.StatusOK, map[string]any{
		"correction": corrected,
		"resolution": resolution,
	})
}

func (s *Server) handleSuggest(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	if q == "" {
		s.respondError(w, http.StatusBadRequest, "missing query parameter q")
		return
	}
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			s.respondError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = n
	}
	s.logger.Debug("suggest request", zap.String("q", q), zap.Int("limit", limit))
	res := s.suggester.Search(r.Context(), q, limit)
	s.respondJSON(w, http.StatusOK, res)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	snap := s.provider.Snapshot()
	resp := map[string]any{
		"gazetteer_entries": snap.Len(),
		"gazetteer_aliases": len(snap.Aliases()),
		"max_popularity":    snap.MaxPopularity(),
	}
	if s.store != nil {
		count, err := s.store.Count(r.Context())
		if err != nil {
			s.logger.Error("status: count places failed", zap.Error(err))
			s.respondError(w, http.StatusInternalServerError, err.Error())
			return
		}
		resp["stored_places"] = count
	}
	s.respondJSON(w, http.StatusOK, resp)
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, map[string]string{"error": message})
}
