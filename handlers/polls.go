// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/danielhkuo/suggestbox/auth"
	"github.com/danielhkuo/suggestbox/db"
	"github.com/danielhkuo/suggestbox/middleware"
	"github.com/danielhkuo/suggestbox/models"
)

type PollHandler struct {
	store *db.Store
}

func NewPollHandler(store *db.Store) *PollHandler {
	return &PollHandler{store: store}
}

// ListPolls handles GET /api/polls
// Summary fields only, newest first. The edit token is never listed.
func (h *PollHandler) ListPolls(w http.ResponseWriter, r *http.Request) {
	polls, err := h.store.ListPolls()
	if err != nil {
		slog.Error("failed to list polls", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to fetch polls")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, polls)
}

// CreatePoll handles POST /api/polls
func (h *PollHandler) CreatePoll(w http.ResponseWriter, r *http.Request) {
	var req models.CreatePollRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	// Description must be present but may be empty; title must be
	// present and non-empty.
	if req.Title == "" || req.Description == nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Title and description are required")
		return
	}

	pollID, err := auth.GenerateID(auth.IDLength)
	if err != nil {
		slog.Error("failed to generate poll ID", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create poll")
		return
	}

	editToken, err := auth.NewEditToken()
	if err != nil {
		slog.Error("failed to generate edit token", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create poll")
		return
	}

	poll := models.Poll{
		ID:          pollID,
		Title:       req.Title,
		Description: *req.Description,
		EditToken:   editToken,
		CreatedAt:   time.Now().UnixMilli(),
		TotalVotes:  0,
		Suggestions: []models.Suggestion{},
	}

	if err := h.store.CreatePoll(poll); err != nil {
		slog.Error("failed to insert poll", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create poll")
		return
	}

	slog.Info("poll created", "poll_id", pollID)

	// The only response that ever carries a freshly minted edit token
	middleware.JSONResponse(w, http.StatusOK, poll)
}

// GetPoll handles GET /api/polls/{id}
// Returns the poll with suggestions sorted votes desc, createdAt asc.
func (h *PollHandler) GetPoll(w http.ResponseWriter, r *http.Request) {
	pollID := r.PathValue("id")
	if pollID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "poll id is required")
		return
	}

	poll, err := h.store.GetPoll(pollID)
	if errors.Is(err, db.ErrNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Poll not found")
		return
	}
	if err != nil {
		slog.Error("failed to query poll", "error", err, "poll_id", pollID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to fetch poll")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, poll)
}
