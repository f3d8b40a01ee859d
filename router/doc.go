// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router wires the HTTP routes to their handlers.

# Routes

NewRouter returns an *http.ServeMux using Go 1.22+ method patterns:

	GET    /health
	GET    /api/polls
	POST   /api/polls
	GET    /api/polls/{id}
	POST   /api/polls/{id}/suggestions
	POST   /api/polls/{pollId}/suggestions/{suggestionId}/vote
	PUT    /api/polls/{pollId}/suggestions/{suggestionId}
	DELETE /api/polls/{pollId}/suggestions/{suggestionId}

All API routes are wrapped in middleware.WithLogging. CORS is applied
around the whole mux in main, not per-route.

# Usage

	store, _ := db.Open(cfg)
	mux := router.NewRouter(store)
	http.ListenAndServe(addr, middleware.CORS(mux))
*/
package router
