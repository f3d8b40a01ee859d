// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"github.com/danielhkuo/suggestbox/db"
	"github.com/danielhkuo/suggestbox/handlers"
	"github.com/danielhkuo/suggestbox/middleware"
	"github.com/danielhkuo/suggestbox/models"
)

func NewRouter(store *db.Store) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	pollHandler := handlers.NewPollHandler(store)
	suggestionHandler := handlers.NewSuggestionHandler(store)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		middleware.JSONResponse(w, http.StatusOK, models.HealthResponse{Status: "ok"})
	})

	// Polls
	mux.HandleFunc("GET /api/polls", middleware.WithLogging(pollHandler.ListPolls))
	mux.HandleFunc("POST /api/polls", middleware.WithLogging(pollHandler.CreatePoll))
	mux.HandleFunc("GET /api/polls/{id}", middleware.WithLogging(pollHandler.GetPoll))

	// Suggestions (open operations)
	mux.HandleFunc("POST /api/polls/{id}/suggestions", middleware.WithLogging(suggestionHandler.AddSuggestion))
	mux.HandleFunc("POST /api/polls/{pollId}/suggestions/{suggestionId}/vote", middleware.WithLogging(suggestionHandler.Vote))

	// Suggestions (edit-token operations)
	mux.HandleFunc("PUT /api/polls/{pollId}/suggestions/{suggestionId}", middleware.WithLogging(suggestionHandler.UpdateSuggestion))
	mux.HandleFunc("DELETE /api/polls/{pollId}/suggestions/{suggestionId}", middleware.WithLogging(suggestionHandler.DeleteSuggestion))

	return mux
}
