// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/danielhkuo/suggestbox/handlers"
	"github.com/danielhkuo/suggestbox/models"
	"github.com/danielhkuo/suggestbox/router"
	"github.com/danielhkuo/suggestbox/testutil"
)

// TestFullSuggestionWorkflow drives the complete flow through the
// real router:
// 1. Create a poll
// 2. Add a suggestion
// 3. Vote on it
// 4. Verify poll state
// 5. Edit the suggestion with the token
// 6. Delete it and verify the total drops
func TestFullSuggestionWorkflow(t *testing.T) {
	store := testutil.SetupTestStore(t)
	mux := router.NewRouter(store)

	// Step 1: Create a poll
	desc := "D"
	req := testutil.MakeRequest("POST", "/api/polls", models.CreatePollRequest{
		Title:       "T",
		Description: &desc,
	}, nil)
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Step 1 - Create poll failed: %d - %s", w.Code, w.Body.String())
	}

	var poll models.Poll
	testutil.AssertJSON(t, w, &poll)
	if poll.ID == "" || poll.EditToken == "" {
		t.Fatal("Step 1 - Missing poll id or edit token")
	}
	t.Logf("Step 1 - Created poll: %s", poll.ID)

	// Step 2: Add a suggestion
	req = testutil.MakeRequest("POST", "/api/polls/"+poll.ID+"/suggestions",
		models.AddSuggestionRequest{Text: "X"}, nil)
	w = httptest.NewRecorder()
	mux.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Step 2 - Add suggestion failed: %d - %s", w.Code, w.Body.String())
	}

	var suggestion models.Suggestion
	testutil.AssertJSON(t, w, &suggestion)
	if suggestion.Votes != 0 {
		t.Fatalf("Step 2 - Expected 0 votes, got %d", suggestion.Votes)
	}

	// Step 3: Vote
	req = testutil.MakeRequest("POST", "/api/polls/"+poll.ID+"/suggestions/"+suggestion.ID+"/vote", nil, nil)
	w = httptest.NewRecorder()
	mux.ServeHTTP(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)
	var ack models.SuccessResponse
	testutil.AssertJSON(t, w, &ack)
	if !ack.Success {
		t.Fatal("Step 3 - Expected success: true")
	}

	// Step 4: Fetch the poll, verify counters
	req = testutil.MakeRequest("GET", "/api/polls/"+poll.ID, nil, nil)
	w = httptest.NewRecorder()
	mux.ServeHTTP(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)
	var fetched models.Poll
	testutil.AssertJSON(t, w, &fetched)
	if fetched.TotalVotes != 1 {
		t.Errorf("Step 4 - Expected totalVotes 1, got %d", fetched.TotalVotes)
	}
	if len(fetched.Suggestions) != 1 || fetched.Suggestions[0].Votes != 1 {
		t.Errorf("Step 4 - Expected one suggestion with 1 vote, got %+v", fetched.Suggestions)
	}

	// Step 5: Edit the suggestion with the token
	req = testutil.MakeRequest("PUT", "/api/polls/"+poll.ID+"/suggestions/"+suggestion.ID,
		models.UpdateSuggestionRequest{Text: "Y"},
		map[string]string{handlers.EditTokenHeader: poll.EditToken})
	w = httptest.NewRecorder()
	mux.ServeHTTP(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)

	req = testutil.MakeRequest("GET", "/api/polls/"+poll.ID, nil, nil)
	w = httptest.NewRecorder()
	mux.ServeHTTP(w, req)
	testutil.AssertJSON(t, w, &fetched)
	if fetched.Suggestions[0].Text != "Y" {
		t.Errorf("Step 5 - Expected text %q, got %q", "Y", fetched.Suggestions[0].Text)
	}

	// Step 6: Delete; the vote comes off the total
	req = testutil.MakeRequest("DELETE", "/api/polls/"+poll.ID+"/suggestions/"+suggestion.ID,
		nil, map[string]string{handlers.EditTokenHeader: poll.EditToken})
	w = httptest.NewRecorder()
	mux.ServeHTTP(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)

	req = testutil.MakeRequest("GET", "/api/polls/"+poll.ID, nil, nil)
	w = httptest.NewRecorder()
	mux.ServeHTTP(w, req)
	testutil.AssertJSON(t, w, &fetched)
	if fetched.TotalVotes != 0 || len(fetched.Suggestions) != 0 {
		t.Errorf("Step 6 - Expected empty poll with 0 total, got total=%d suggestions=%d",
			fetched.TotalVotes, len(fetched.Suggestions))
	}
}

// TestEditAuthScenario mirrors the documented token scenario: PUT
// without the header → 401, wrong token → 403, correct token → 200
// and the new text is visible on a subsequent read.
func TestEditAuthScenario(t *testing.T) {
	store := testutil.SetupTestStore(t)
	mux := router.NewRouter(store)

	pollID, editToken := testutil.CreateTestPoll(t, store, "T", "D")
	suggestionID := testutil.AddTestSuggestion(t, store, pollID, "original")
	path := "/api/polls/" + pollID + "/suggestions/" + suggestionID

	// No token
	req := testutil.MakeRequest("PUT", path, models.UpdateSuggestionRequest{Text: "new"}, nil)
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)
	testutil.AssertStatus(t, w, http.StatusUnauthorized)

	// Wrong token
	req = testutil.MakeRequest("PUT", path, models.UpdateSuggestionRequest{Text: "new"},
		map[string]string{handlers.EditTokenHeader: "not-the-token"})
	w = httptest.NewRecorder()
	mux.ServeHTTP(w, req)
	testutil.AssertStatus(t, w, http.StatusForbidden)

	// Store unchanged after both rejections
	poll, err := store.GetPoll(pollID)
	if err != nil {
		t.Fatalf("GetPoll failed: %v", err)
	}
	if poll.Suggestions[0].Text != "original" {
		t.Fatalf("Rejected requests mutated the store: %q", poll.Suggestions[0].Text)
	}

	// Correct token
	req = testutil.MakeRequest("PUT", path, models.UpdateSuggestionRequest{Text: "new"},
		map[string]string{handlers.EditTokenHeader: editToken})
	w = httptest.NewRecorder()
	mux.ServeHTTP(w, req)
	testutil.AssertStatus(t, w, http.StatusOK)

	poll, _ = store.GetPoll(pollID)
	if poll.Suggestions[0].Text != "new" {
		t.Errorf("Expected updated text %q, got %q", "new", poll.Suggestions[0].Text)
	}
}

// TestVoteSequenceKeepsInvariant: after N sequential votes the poll
// total equals both N and the suggestion vote sum.
func TestVoteSequenceKeepsInvariant(t *testing.T) {
	store := testutil.SetupTestStore(t)
	mux := router.NewRouter(store)

	pollID, _ := testutil.CreateTestPoll(t, store, "T", "D")
	s1 := testutil.AddTestSuggestion(t, store, pollID, "one")
	s2 := testutil.AddTestSuggestion(t, store, pollID, "two")

	votes := []string{s1, s2, s1, s1, s2, s1}
	for _, sid := range votes {
		req := testutil.MakeRequest("POST", "/api/polls/"+pollID+"/suggestions/"+sid+"/vote", nil, nil)
		w := httptest.NewRecorder()
		mux.ServeHTTP(w, req)
		testutil.AssertStatus(t, w, http.StatusOK)
	}

	poll, err := store.GetPoll(pollID)
	if err != nil {
		t.Fatalf("GetPoll failed: %v", err)
	}

	sum := 0
	for _, s := range poll.Suggestions {
		sum += s.Votes
	}
	if poll.TotalVotes != len(votes) || sum != len(votes) {
		t.Errorf("Expected total=%d=sum, got total=%d sum=%d", len(votes), poll.TotalVotes, sum)
	}
}
