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

// EditTokenHeader carries the poll's bearer edit token on privileged
// suggestion operations.
const EditTokenHeader = "X-Edit-Token"

type SuggestionHandler struct {
	store *db.Store
}

func NewSuggestionHandler(store *db.Store) *SuggestionHandler {
	return &SuggestionHandler{store: store}
}

// checkEditToken enforces the capability check shared by update and
// delete: missing token → 401, unknown poll or wrong token → 403.
// An unknown poll is indistinguishable from a wrong token on purpose.
func (h *SuggestionHandler) checkEditToken(w http.ResponseWriter, r *http.Request, pollID string) bool {
	token := r.Header.Get(EditTokenHeader)
	if token == "" {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Edit token required")
		return false
	}

	stored, err := h.store.EditToken(pollID)
	if errors.Is(err, db.ErrNotFound) {
		middleware.ErrorResponse(w, http.StatusForbidden, "Invalid edit token")
		return false
	}
	if err != nil {
		slog.Error("failed to query edit token", "error", err, "poll_id", pollID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return false
	}

	if err := auth.ValidateEditToken(token, stored); err != nil {
		middleware.ErrorResponse(w, http.StatusForbidden, "Invalid edit token")
		return false
	}
	return true
}

// AddSuggestion handles POST /api/polls/{id}/suggestions
// Open to anyone holding the poll id. The poll's total is not touched:
// a fresh suggestion has no votes to contribute.
func (h *SuggestionHandler) AddSuggestion(w http.ResponseWriter, r *http.Request) {
	pollID := r.PathValue("id")

	var req models.AddSuggestionRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.Text == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Suggestion text is required")
		return
	}

	exists, err := h.store.PollExists(pollID)
	if err != nil {
		slog.Error("failed to query poll", "error", err, "poll_id", pollID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	if !exists {
		middleware.ErrorResponse(w, http.StatusNotFound, "Poll not found")
		return
	}

	suggestionID, err := auth.GenerateID(auth.IDLength)
	if err != nil {
		slog.Error("failed to generate suggestion ID", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create suggestion")
		return
	}

	suggestion := models.Suggestion{
		ID:        suggestionID,
		PollID:    pollID,
		Text:      req.Text,
		Votes:     0,
		CreatedAt: time.Now().UnixMilli(),
	}

	if err := h.store.AddSuggestion(suggestion); err != nil {
		slog.Error("failed to insert suggestion", "error", err, "poll_id", pollID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create suggestion")
		return
	}

	slog.Info("suggestion added", "poll_id", pollID, "suggestion_id", suggestionID)

	middleware.JSONResponse(w, http.StatusOK, suggestion)
}

// Vote handles POST /api/polls/{pollId}/suggestions/{suggestionId}/vote
// No credential required. The suggestion counter and the poll total
// move together in one store transaction.
func (h *SuggestionHandler) Vote(w http.ResponseWriter, r *http.Request) {
	pollID := r.PathValue("pollId")
	suggestionID := r.PathValue("suggestionId")

	err := h.store.Vote(pollID, suggestionID)
	if errors.Is(err, db.ErrNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Suggestion not found")
		return
	}
	if err != nil {
		slog.Error("failed to record vote", "error", err, "poll_id", pollID, "suggestion_id", suggestionID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to vote")
		return
	}

	slog.Info("vote recorded", "poll_id", pollID, "suggestion_id", suggestionID)

	middleware.JSONResponse(w, http.StatusOK, models.SuccessResponse{Success: true})
}

// UpdateSuggestion handles PUT /api/polls/{pollId}/suggestions/{suggestionId}
// Requires the poll's edit token.
func (h *SuggestionHandler) UpdateSuggestion(w http.ResponseWriter, r *http.Request) {
	pollID := r.PathValue("pollId")
	suggestionID := r.PathValue("suggestionId")

	var req models.UpdateSuggestionRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.Text == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Text is required")
		return
	}

	if !h.checkEditToken(w, r, pollID) {
		return
	}

	err := h.store.UpdateSuggestionText(pollID, suggestionID, req.Text)
	if errors.Is(err, db.ErrNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Suggestion not found")
		return
	}
	if err != nil {
		slog.Error("failed to update suggestion", "error", err, "poll_id", pollID, "suggestion_id", suggestionID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to update suggestion")
		return
	}

	slog.Info("suggestion updated", "poll_id", pollID, "suggestion_id", suggestionID)

	middleware.JSONResponse(w, http.StatusOK, models.SuccessResponse{Success: true})
}

// DeleteSuggestion handles DELETE /api/polls/{pollId}/suggestions/{suggestionId}
// Requires the poll's edit token. The deleted suggestion's votes come
// off the poll total in the same transaction.
func (h *SuggestionHandler) DeleteSuggestion(w http.ResponseWriter, r *http.Request) {
	pollID := r.PathValue("pollId")
	suggestionID := r.PathValue("suggestionId")

	if !h.checkEditToken(w, r, pollID) {
		return
	}

	err := h.store.DeleteSuggestion(pollID, suggestionID)
	if errors.Is(err, db.ErrNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Suggestion not found")
		return
	}
	if err != nil {
		slog.Error("failed to delete suggestion", "error", err, "poll_id", pollID, "suggestion_id", suggestionID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to delete suggestion")
		return
	}

	slog.Info("suggestion deleted", "poll_id", pollID, "suggestion_id", suggestionID)

	middleware.JSONResponse(w, http.StatusOK, models.SuccessResponse{Success: true})
}
