// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	_ "modernc.org/sqlite"

	"github.com/danielhkuo/suggestbox/auth"
	"github.com/danielhkuo/suggestbox/db"
	"github.com/danielhkuo/suggestbox/models"
)

// SetupTestStore creates a fresh in-memory SQLite store with the full
// schema. Each call gets its own named memory database so tests stay
// isolated; the single-connection pool keeps it alive and serializes
// concurrent statements.
func SetupTestStore(t *testing.T) *db.Store {
	t.Helper()

	name, err := auth.GenerateID(12)
	if err != nil {
		t.Fatalf("Failed to generate test database name: %v", err)
	}

	conn, err := sql.Open("sqlite", "file:"+name+"?mode=memory&cache=shared&_pragma=foreign_keys(1)")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	conn.SetMaxOpenConns(1)

	if err := db.CreateSchema(conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	store := db.NewStore(conn)
	t.Cleanup(func() { store.Close() })
	return store
}

// CreateTestPoll inserts a poll and returns its ID and edit token.
func CreateTestPoll(t *testing.T, store *db.Store, title, description string) (pollID, editToken string) {
	t.Helper()

	pollID, err := auth.GenerateID(auth.IDLength)
	if err != nil {
		t.Fatalf("Failed to generate poll ID: %v", err)
	}
	editToken, err = auth.NewEditToken()
	if err != nil {
		t.Fatalf("Failed to generate edit token: %v", err)
	}

	err = store.CreatePoll(models.Poll{
		ID:          pollID,
		Title:       title,
		Description: description,
		EditToken:   editToken,
		CreatedAt:   time.Now().UnixMilli(),
	})
	if err != nil {
		t.Fatalf("Failed to create test poll: %v", err)
	}

	return pollID, editToken
}

// AddTestSuggestion inserts a suggestion with zero votes and returns
// its ID. CreatedAt is taken from the clock; pass successive calls in
// the order the test expects ties to break.
func AddTestSuggestion(t *testing.T, store *db.Store, pollID, text string) string {
	t.Helper()

	suggestionID, err := auth.GenerateID(auth.IDLength)
	if err != nil {
		t.Fatalf("Failed to generate suggestion ID: %v", err)
	}

	err = store.AddSuggestion(models.Suggestion{
		ID:        suggestionID,
		PollID:    pollID,
		Text:      text,
		CreatedAt: time.Now().UnixMilli(),
	})
	if err != nil {
		t.Fatalf("Failed to create test suggestion: %v", err)
	}

	return suggestionID
}

// AddTestSuggestionAt is AddTestSuggestion with an explicit timestamp,
// for tests that exercise the createdAt tie-break ordering.
func AddTestSuggestionAt(t *testing.T, store *db.Store, pollID, text string, createdAt int64) string {
	t.Helper()

	suggestionID, err := auth.GenerateID(auth.IDLength)
	if err != nil {
		t.Fatalf("Failed to generate suggestion ID: %v", err)
	}

	err = store.AddSuggestion(models.Suggestion{
		ID:        suggestionID,
		PollID:    pollID,
		Text:      text,
		CreatedAt: createdAt,
	})
	if err != nil {
		t.Fatalf("Failed to create test suggestion: %v", err)
	}

	return suggestionID
}

// CastTestVotes records n votes for a suggestion through the store,
// keeping the poll total in sync.
func CastTestVotes(t *testing.T, store *db.Store, pollID, suggestionID string, n int) {
	t.Helper()

	for i := 0; i < n; i++ {
		if err := store.Vote(pollID, suggestionID); err != nil {
			t.Fatalf("Failed to cast test vote: %v", err)
		}
	}
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
