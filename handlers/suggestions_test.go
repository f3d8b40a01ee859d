// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/danielhkuo/suggestbox/auth"
	"github.com/danielhkuo/suggestbox/models"
	"github.com/danielhkuo/suggestbox/testutil"
)

func TestAddSuggestion(t *testing.T) {
	store := testutil.SetupTestStore(t)
	handler := NewSuggestionHandler(store)

	pollID, _ := testutil.CreateTestPoll(t, store, "Lunch", "")

	req := testutil.MakeRequest("POST", "/api/polls/"+pollID+"/suggestions",
		models.AddSuggestionRequest{Text: "Tacos"}, nil)
	req.SetPathValue("id", pollID)
	w := httptest.NewRecorder()
	handler.AddSuggestion(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)

	var suggestion models.Suggestion
	testutil.AssertJSON(t, w, &suggestion)

	if len(suggestion.ID) != auth.IDLength {
		t.Errorf("Expected %d-char suggestion id, got %q", auth.IDLength, suggestion.ID)
	}
	if suggestion.PollID != pollID {
		t.Errorf("Expected pollId %q, got %q", pollID, suggestion.PollID)
	}
	if suggestion.Votes != 0 {
		t.Errorf("New suggestion should start at 0 votes, got %d", suggestion.Votes)
	}

	// Creating a suggestion must not bump the poll total
	poll, err := store.GetPoll(pollID)
	if err != nil {
		t.Fatalf("GetPoll failed: %v", err)
	}
	if poll.TotalVotes != 0 {
		t.Errorf("Poll total should stay 0 after adding a suggestion, got %d", poll.TotalVotes)
	}
}

func TestAddSuggestionValidation(t *testing.T) {
	store := testutil.SetupTestStore(t)
	handler := NewSuggestionHandler(store)

	pollID, _ := testutil.CreateTestPoll(t, store, "Lunch", "")

	// Missing text → 400
	req := httptest.NewRequest("POST", "/api/polls/"+pollID+"/suggestions", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	req.SetPathValue("id", pollID)
	w := httptest.NewRecorder()
	handler.AddSuggestion(w, req)
	testutil.AssertStatus(t, w, http.StatusBadRequest)

	// Unknown poll → 404
	req = testutil.MakeRequest("POST", "/api/polls/missing/suggestions",
		models.AddSuggestionRequest{Text: "Tacos"}, nil)
	req.SetPathValue("id", "missing")
	w = httptest.NewRecorder()
	handler.AddSuggestion(w, req)
	testutil.AssertStatus(t, w, http.StatusNotFound)
}

func TestVote(t *testing.T) {
	store := testutil.SetupTestStore(t)
	handler := NewSuggestionHandler(store)

	pollID, _ := testutil.CreateTestPoll(t, store, "Lunch", "")
	suggestionID := testutil.AddTestSuggestion(t, store, pollID, "Tacos")

	req := testutil.MakeRequest("POST", "/api/polls/"+pollID+"/suggestions/"+suggestionID+"/vote", nil, nil)
	req.SetPathValue("pollId", pollID)
	req.SetPathValue("suggestionId", suggestionID)
	w := httptest.NewRecorder()
	handler.Vote(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)

	var ack models.SuccessResponse
	testutil.AssertJSON(t, w, &ack)
	if !ack.Success {
		t.Error("Expected success: true")
	}

	poll, err := store.GetPoll(pollID)
	if err != nil {
		t.Fatalf("GetPoll failed: %v", err)
	}
	if poll.TotalVotes != 1 || poll.Suggestions[0].Votes != 1 {
		t.Errorf("Expected one vote on both counters, got total=%d suggestion=%d",
			poll.TotalVotes, poll.Suggestions[0].Votes)
	}
}

func TestVoteNotFound(t *testing.T) {
	store := testutil.SetupTestStore(t)
	handler := NewSuggestionHandler(store)

	pollID, _ := testutil.CreateTestPoll(t, store, "Lunch", "")

	req := testutil.MakeRequest("POST", "/api/polls/"+pollID+"/suggestions/missing/vote", nil, nil)
	req.SetPathValue("pollId", pollID)
	req.SetPathValue("suggestionId", "missing")
	w := httptest.NewRecorder()
	handler.Vote(w, req)

	testutil.AssertStatus(t, w, http.StatusNotFound)
}

func TestVoteSuggestionUnderWrongPoll(t *testing.T) {
	store := testutil.SetupTestStore(t)
	handler := NewSuggestionHandler(store)

	pollA, _ := testutil.CreateTestPoll(t, store, "A", "")
	pollB, _ := testutil.CreateTestPoll(t, store, "B", "")
	suggestionID := testutil.AddTestSuggestion(t, store, pollA, "Only in A")

	req := testutil.MakeRequest("POST", "/api/polls/"+pollB+"/suggestions/"+suggestionID+"/vote", nil, nil)
	req.SetPathValue("pollId", pollB)
	req.SetPathValue("suggestionId", suggestionID)
	w := httptest.NewRecorder()
	handler.Vote(w, req)

	testutil.AssertStatus(t, w, http.StatusNotFound)
}

func TestUpdateSuggestion(t *testing.T) {
	store := testutil.SetupTestStore(t)
	handler := NewSuggestionHandler(store)

	pollID, editToken := testutil.CreateTestPoll(t, store, "Lunch", "")
	suggestionID := testutil.AddTestSuggestion(t, store, pollID, "Tacos")

	req := testutil.MakeRequest("PUT", "/api/polls/"+pollID+"/suggestions/"+suggestionID,
		models.UpdateSuggestionRequest{Text: "Birria tacos"},
		map[string]string{EditTokenHeader: editToken})
	req.SetPathValue("pollId", pollID)
	req.SetPathValue("suggestionId", suggestionID)
	w := httptest.NewRecorder()
	handler.UpdateSuggestion(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)

	poll, _ := store.GetPoll(pollID)
	if poll.Suggestions[0].Text != "Birria tacos" {
		t.Errorf("Expected updated text, got %q", poll.Suggestions[0].Text)
	}
}

func TestUpdateSuggestionAuth(t *testing.T) {
	store := testutil.SetupTestStore(t)
	handler := NewSuggestionHandler(store)

	pollID, _ := testutil.CreateTestPoll(t, store, "Lunch", "")
	suggestionID := testutil.AddTestSuggestion(t, store, pollID, "Tacos")

	testCases := []struct {
		name     string
		headers  map[string]string
		expected int
	}{
		{"missing token", nil, http.StatusUnauthorized},
		{"wrong token", map[string]string{EditTokenHeader: "wrong-token"}, http.StatusForbidden},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := testutil.MakeRequest("PUT", "/api/polls/"+pollID+"/suggestions/"+suggestionID,
				models.UpdateSuggestionRequest{Text: "Hijacked"}, tc.headers)
			req.SetPathValue("pollId", pollID)
			req.SetPathValue("suggestionId", suggestionID)
			w := httptest.NewRecorder()
			handler.UpdateSuggestion(w, req)

			testutil.AssertStatus(t, w, tc.expected)

			// Rejected requests must not mutate the store
			poll, _ := store.GetPoll(pollID)
			if poll.Suggestions[0].Text != "Tacos" {
				t.Errorf("Rejected update mutated text to %q", poll.Suggestions[0].Text)
			}
		})
	}
}

func TestUpdateSuggestionMissingText(t *testing.T) {
	store := testutil.SetupTestStore(t)
	handler := NewSuggestionHandler(store)

	pollID, editToken := testutil.CreateTestPoll(t, store, "Lunch", "")
	suggestionID := testutil.AddTestSuggestion(t, store, pollID, "Tacos")

	req := httptest.NewRequest("PUT", "/api/polls/"+pollID+"/suggestions/"+suggestionID, strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(EditTokenHeader, editToken)
	req.SetPathValue("pollId", pollID)
	req.SetPathValue("suggestionId", suggestionID)
	w := httptest.NewRecorder()
	handler.UpdateSuggestion(w, req)

	testutil.AssertStatus(t, w, http.StatusBadRequest)
}

func TestUpdateSuggestionNotFound(t *testing.T) {
	store := testutil.SetupTestStore(t)
	handler := NewSuggestionHandler(store)

	pollID, editToken := testutil.CreateTestPoll(t, store, "Lunch", "")

	req := testutil.MakeRequest("PUT", "/api/polls/"+pollID+"/suggestions/missing",
		models.UpdateSuggestionRequest{Text: "New"},
		map[string]string{EditTokenHeader: editToken})
	req.SetPathValue("pollId", pollID)
	req.SetPathValue("suggestionId", "missing")
	w := httptest.NewRecorder()
	handler.UpdateSuggestion(w, req)

	testutil.AssertStatus(t, w, http.StatusNotFound)
}

func TestDeleteSuggestion(t *testing.T) {
	store := testutil.SetupTestStore(t)
	handler := NewSuggestionHandler(store)

	pollID, editToken := testutil.CreateTestPoll(t, store, "Lunch", "")
	suggestionID := testutil.AddTestSuggestion(t, store, pollID, "Tacos")
	testutil.CastTestVotes(t, store, pollID, suggestionID, 3)

	req := testutil.MakeRequest("DELETE", "/api/polls/"+pollID+"/suggestions/"+suggestionID,
		nil, map[string]string{EditTokenHeader: editToken})
	req.SetPathValue("pollId", pollID)
	req.SetPathValue("suggestionId", suggestionID)
	w := httptest.NewRecorder()
	handler.DeleteSuggestion(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)

	// Deleting a 3-vote suggestion drops the total by exactly 3
	poll, _ := store.GetPoll(pollID)
	if poll.TotalVotes != 0 {
		t.Errorf("Expected total back to 0 after delete, got %d", poll.TotalVotes)
	}
	if len(poll.Suggestions) != 0 {
		t.Errorf("Expected no suggestions after delete, got %d", len(poll.Suggestions))
	}
}

func TestDeleteSuggestionAuth(t *testing.T) {
	store := testutil.SetupTestStore(t)
	handler := NewSuggestionHandler(store)

	pollID, _ := testutil.CreateTestPoll(t, store, "Lunch", "")
	suggestionID := testutil.AddTestSuggestion(t, store, pollID, "Tacos")

	testCases := []struct {
		name     string
		headers  map[string]string
		expected int
	}{
		{"missing token", nil, http.StatusUnauthorized},
		{"wrong token", map[string]string{EditTokenHeader: "wrong-token"}, http.StatusForbidden},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := testutil.MakeRequest("DELETE", "/api/polls/"+pollID+"/suggestions/"+suggestionID, nil, tc.headers)
			req.SetPathValue("pollId", pollID)
			req.SetPathValue("suggestionId", suggestionID)
			w := httptest.NewRecorder()
			handler.DeleteSuggestion(w, req)

			testutil.AssertStatus(t, w, tc.expected)

			poll, _ := store.GetPoll(pollID)
			if len(poll.Suggestions) != 1 {
				t.Error("Rejected delete removed the suggestion")
			}
		})
	}
}

func TestDeleteSuggestionNotFound(t *testing.T) {
	store := testutil.SetupTestStore(t)
	handler := NewSuggestionHandler(store)

	pollID, editToken := testutil.CreateTestPoll(t, store, "Lunch", "")

	req := testutil.MakeRequest("DELETE", "/api/polls/"+pollID+"/suggestions/missing",
		nil, map[string]string{EditTokenHeader: editToken})
	req.SetPathValue("pollId", pollID)
	req.SetPathValue("suggestionId", "missing")
	w := httptest.NewRecorder()
	handler.DeleteSuggestion(w, req)

	testutil.AssertStatus(t, w, http.StatusNotFound)
}

func TestEditTokenForUnknownPollIsForbidden(t *testing.T) {
	store := testutil.SetupTestStore(t)
	handler := NewSuggestionHandler(store)

	// A token for a poll that does not exist cannot match anything;
	// the response is the same 403 as a wrong token.
	req := testutil.MakeRequest("DELETE", "/api/polls/missing/suggestions/also-missing",
		nil, map[string]string{EditTokenHeader: "some-token"})
	req.SetPathValue("pollId", "missing")
	req.SetPathValue("suggestionId", "also-missing")
	w := httptest.NewRecorder()
	handler.DeleteSuggestion(w, req)

	testutil.AssertStatus(t, w, http.StatusForbidden)
}
