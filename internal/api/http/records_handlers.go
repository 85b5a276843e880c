package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	auth "github.com/radprep/trainer/internal/auth/middleware"
	"github.com/radprep/trainer/internal/cache"
	"github.com/radprep/trainer/internal/quiz"
)

// GET /records/mistakes — the caller's mistake book.
func MistakesHandler(svc *quiz.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		recs, err := svc.Mistakes(r.Context(), auth.SubjectFromContext(r.Context()))
		if err != nil {
			http.Error(w, err.Error(), 500)
			return
		}
		_ = json.NewEncoder(w).Encode(recs)
	}
}

// GET /records/scores — the caller's mock-exam history, newest first.
func ScoresHandler(svc *quiz.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		scores, err := svc.ScoreHistory(r.Context(), auth.SubjectFromContext(r.Context()))
		if err != nil {
			http.Error(w, err.Error(), 500)
			return
		}
		_ = json.NewEncoder(w).Encode(scores)
	}
}

// GET /leaderboard/me — the caller's rank, -1 when they have no entry yet.
func MyRankHandler(lb *cache.Leaderboard) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := auth.SubjectFromContext(r.Context())
		rank, err := lb.GetRank(r.Context(), userID)
		if err != nil {
			http.Error(w, err.Error(), 500)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"user_id": userID, "rank": rank})
	}
}

// GET /leaderboard?limit=10
func LeaderboardHandler(lb *cache.Leaderboard) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit := 10
		if v := r.URL.Query().Get("limit"); v != "" {
			if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 100 {
				limit = n
			}
		}
		entries, err := lb.GetTop(r.Context(), limit)
		if err != nil {
			http.Error(w, err.Error(), 500)
			return
		}
		_ = json.NewEncoder(w).Encode(entries)
	}
}
