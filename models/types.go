// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

// Request types

type CreatePollRequest struct {
	Title string `json:"title"`
	// Pointer so a missing field can be told apart from an empty
	// description, which is allowed.
	Description *string `json:"description"`
}

type AddSuggestionRequest struct {
	Text string `json:"text"`
}

type UpdateSuggestionRequest struct {
	Text string `json:"text"`
}

// Response types

type SuccessResponse struct {
	Success bool `json:"success"`
}

type HealthResponse struct {
	Status string `json:"status"`
}

// Domain types

// PollSummary is the list-view shape of a poll. It never carries the
// edit token.
type PollSummary struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	CreatedAt   int64  `json:"createdAt"`
	TotalVotes  int    `json:"totalVotes"`
}

type Suggestion struct {
	ID        string `json:"id"`
	PollID    string `json:"pollId"`
	Text      string `json:"text"`
	Votes     int    `json:"votes"`
	CreatedAt int64  `json:"createdAt"`
}

// Poll is the full view returned by create and get: summary fields
// plus the edit token and the suggestion list, sorted votes desc then
// createdAt asc.
type Poll struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	EditToken   string       `json:"editToken"`
	CreatedAt   int64        `json:"createdAt"`
	TotalVotes  int          `json:"totalVotes"`
	Suggestions []Suggestion `json:"suggestions"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
