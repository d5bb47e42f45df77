package server

import (
	"net/http"
	"strconv"
)

const defaultLeaderboardLimit = 10

func (s *Service) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	s.serveLeaderboard(w, r, false, "Leaderboard retrieved successfully")
}

func (s *Service) handleMonthlyLeaderboard(w http.ResponseWriter, r *http.Request) {
	s.serveLeaderboard(w, r, true, "Monthly leaderboard retrieved successfully")
}

func (s *Service) serveLeaderboard(w http.ResponseWriter, r *http.Request, monthly bool, message string) {
	limit := defaultLeaderboardLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err == nil && parsed > 0 && parsed <= maxPageLimit {
			limit = parsed
		}
	}

	entries, err := s.leaderboard.TopDonors(r.Context(), limit, monthly)
	if err != nil {
		s.respondFromError(w, err, "Failed to retrieve leaderboard")
		return
	}

	for _, entry := range entries {
		s.imageURL(entry.ProfilePicture)
	}

	s.respondSuccess(w, http.StatusOK, message, entries)
}
