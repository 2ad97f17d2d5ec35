package web

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"clipdeck/clip"
)

// handleSlots returns the published clipboard slot snapshot.
func (s *Server) handleSlots(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	s.mu.RLock()
	slots := s.slots
	s.mu.RUnlock()

	if slots == nil {
		slots = []clip.Slot{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"slots": slots})
}

// handleStatus returns the current machine state.
func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	s.mu.RLock()
	status := s.status
	s.mu.RUnlock()

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"state": status})
}

// handleStats returns journal statistics for the specified time range.
func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if s.db == nil {
		http.Error(w, "Journal unavailable", http.StatusServiceUnavailable)
		return
	}

	days := 7
	if daysStr := r.URL.Query().Get("days"); daysStr != "" {
		if d, err := strconv.Atoi(daysStr); err == nil && d > 0 {
			days = d
		}
	}

	overall, err := s.db.GetOverallStats(days)
	if err != nil {
		slog.Error("Failed to get overall stats", "error", err)
		http.Error(w, "Failed to get statistics", http.StatusInternalServerError)
		return
	}

	byCommand, err := s.db.GetCommandStats(days)
	if err != nil {
		slog.Error("Failed to get command stats", "error", err)
		http.Error(w, "Failed to get statistics", http.StatusInternalServerError)
		return
	}

	response := map[string]any{
		"overall":   overall,
		"byCommand": byCommand,
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

// handleHistory handles GET and DELETE requests for the command journal.
func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	if s.db == nil {
		http.Error(w, "Journal unavailable", http.StatusServiceUnavailable)
		return
	}

	switch r.Method {
	case http.MethodGet:
		s.handleGetHistory(w, r)
	case http.MethodDelete:
		s.handleDeleteHistory(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// handleGetHistory returns paginated journal entries.
func (s *Server) handleGetHistory(w http.ResponseWriter, r *http.Request) {
	limit := 50
	offset := 0

	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 {
			limit = l
		}
	}
	if offsetStr := r.URL.Query().Get("offset"); offsetStr != "" {
		if o, err := strconv.Atoi(offsetStr); err == nil && o >= 0 {
			offset = o
		}
	}

	runs, err := s.db.GetRuns(limit, offset)
	if err != nil {
		slog.Error("Failed to get command runs", "error", err)
		http.Error(w, "Failed to get history", http.StatusInternalServerError)
		return
	}

	total, err := s.db.GetRunCount()
	if err != nil {
		slog.Error("Failed to get run count", "error", err)
		http.Error(w, "Failed to get history", http.StatusInternalServerError)
		return
	}

	response := map[string]any{
		"runs":   runs,
		"total":  total,
		"limit":  limit,
		"offset": offset,
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

// handleDeleteHistory deletes a journal entry by ID (/api/history/123).
func (s *Server) handleDeleteHistory(w http.ResponseWriter, r *http.Request) {
	parts := strings.Split(r.URL.Path, "/")
	idStr := parts[len(parts)-1]
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		http.Error(w, "Invalid ID", http.StatusBadRequest)
		return
	}

	if err := s.db.DeleteRun(id); err != nil {
		slog.Error("Failed to delete command run", "error", err, "id", id)
		http.Error(w, "Failed to delete history entry", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "success"})
}
