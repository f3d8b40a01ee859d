// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the suggestion-box API.

# Handler Types

Each handler is a struct holding the injected store:

  - PollHandler: list, create, and fetch polls
  - SuggestionHandler: add, vote, edit, and delete suggestions

Handlers are created via constructor functions that accept *db.Store:

	pollHandler := handlers.NewPollHandler(store)

# Operations

	GET    /api/polls                → ListPolls (summaries, newest first)
	POST   /api/polls                → CreatePoll (returns the edit token)
	GET    /api/polls/{id}           → GetPoll (with sorted suggestions)
	POST   /api/polls/{id}/suggestions                        → AddSuggestion
	POST   /api/polls/{pollId}/suggestions/{suggestionId}/vote → Vote
	PUT    /api/polls/{pollId}/suggestions/{suggestionId}      → UpdateSuggestion
	DELETE /api/polls/{pollId}/suggestions/{suggestionId}      → DeleteSuggestion

Creation and voting are open to anyone holding the poll id. Update and
delete require the X-Edit-Token header matching the poll's stored
token: missing token → 401, wrong token (or unknown poll) → 403.

# Error Taxonomy

Missing required field → 400, missing credential → 401, wrong
credential → 403, absent entity → 404, store failure → 500 with a
generic message (details go to the server log only). Nothing escapes a
handler as a panic.
*/
package handlers
