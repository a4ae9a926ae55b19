package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/yourusername/futurologia/internal/service"
)

// LeagueSummary is one entry of the league listing
type LeagueSummary struct {
	Name    string   `json:"name"`
	Country string   `json:"country"`
	Teams   []string `json:"teams"`
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxBodyBytes)

	var req service.AnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "request body too large", err.Error())
			return
		}
		writeError(w, http.StatusBadRequest, "invalid JSON body", err.Error())
		return
	}

	analysis, err := s.svc.Analyze(r.Context(), req)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, analysis)
}

func (s *Server) handleRecentAnalyses(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			writeError(w, http.StatusBadRequest, "invalid limit", "limit must be a positive integer")
			return
		}
		limit = n
	}

	records, err := s.svc.RecentAnalyses(r.Context(), limit)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, records)
}

func (s *Server) handleGetAnalysis(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid analysis id", err.Error())
		return
	}

	record, err := s.svc.GetAnalysis(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, record)
}

func (s *Server) handleLeagues(w http.ResponseWriter, r *http.Request) {
	leagues := s.svc.Leagues()
	out := make([]LeagueSummary, 0, len(leagues))
	for i := range leagues {
		out = append(out, LeagueSummary{
			Name:    leagues[i].Name,
			Country: leagues[i].Country,
			Teams:   leagues[i].TeamNames(),
		})
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleLeagueTeams(w http.ResponseWriter, r *http.Request) {
	league, err := s.svc.League(mux.Vars(r)["league"])
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, LeagueSummary{
		Name:    league.Name,
		Country: league.Country,
		Teams:   league.TeamNames(),
	})
}

func (s *Server) handlePlans(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.svc.Plans())
}
