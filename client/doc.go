// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package client is a Go client for the suggestion-box API.

# Usage

	state, err := client.LoadState("suggestbox-state.json")
	c := client.New("http://localhost:3001", state)

	poll, err := c.CreatePoll(ctx, "Lunch spots", "Where should we go?")
	s, err := c.AddSuggestion(ctx, poll.ID, "Tacos")
	err = c.Vote(ctx, poll.ID, s.ID)

# Caching

GetPoll is a read-through cache keyed by poll id. Every successful
mutation (AddSuggestion, Vote, UpdateSuggestion, DeleteSuggestion)
invalidates the poll's entry, so the next read refetches server state.
The cache is never authoritative and nothing is applied to it
optimistically: a failed request leaves cache and local state
untouched.

# Local State

State holds what the original web client kept in browser storage: the
edit token per poll this device created, and the suggestion ids this
device voted on. Both are best-effort and device-local. HasVoted is
advisory — clearing the state file or switching devices bypasses it,
and the server intentionally does not enforce it.

UpdateSuggestion and DeleteSuggestion read the stored token and return
ErrNoEditPermission without a request when the device has none.

# Errors

Server-side failures surface as *APIError with the HTTP status and
message; GetPoll, Vote, and the edit operations map 404s to
ErrPollNotFound / ErrSuggestionNotFound sentinels for errors.Is checks.
*/
package client
