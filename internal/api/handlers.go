package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/Cyclone1070/songscout-backend/internal/audio"
)

const (
	msgMissingQuery    = "Missing query"
	msgScrapeFailed    = "Scrape failed"
	msgRecommendFailed = "Recommendation failed"
	msgInvalidVideoID  = "Invalid video id"
	msgAudioFailed     = "Failed to fetch audio"
)

type errorBody struct {
	Error string `json:"error"`
}

type messageBody struct {
	Message string `json:"message"`
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	if query == "" {
		writeError(w, http.StatusBadRequest, msgMissingQuery)
		return
	}

	records, err := s.songs.Search(r.Context(), query, s.limits.SearchMaxResults)
	if err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Str("query", query).Msg("search failed")
		writeError(w, http.StatusInternalServerError, msgScrapeFailed)
		return
	}

	writeJSON(w, http.StatusOK, records)
}

func (s *Server) handleRecommend(w http.ResponseWriter, r *http.Request) {
	mood := r.URL.Query().Get("mood")

	records, err := s.songs.Recommend(r.Context(), mood, s.limits.RecommendMaxResults)
	if err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Str("mood", mood).Msg("recommend failed")
		writeError(w, http.StatusInternalServerError, msgRecommendFailed)
		return
	}

	writeJSON(w, http.StatusOK, records)
}

func (s *Server) handleAudio(w http.ResponseWriter, r *http.Request) {
	videoID := chi.URLParam(r, "videoId")

	track, err := s.audio.Resolve(r.Context(), videoID)
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, track)
	case errors.Is(err, audio.ErrInvalidVideoID):
		writeError(w, http.StatusBadRequest, msgInvalidVideoID)
	default:
		zerolog.Ctx(r.Context()).Error().Err(err).Str("video_id", videoID).Msg("audio failed")
		writeError(w, http.StatusInternalServerError, msgAudioFailed)
	}
}

func (s *Server) handlePing(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, messageBody{Message: "API is alive"})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body) //nolint:errcheck // client went away
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorBody{Error: message})
}
