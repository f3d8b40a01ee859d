// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and JSON helpers.

# Request Logging

WithLogging wraps a handler and logs request start/completion with
method, path, duration, and a per-request UUID:

	mux.HandleFunc("GET /api/polls", middleware.WithLogging(h.ListPolls))

# JSON Helpers

JSONResponse and ErrorResponse write consistent JSON bodies;
ParseJSONBody decodes a request body:

	var req models.CreatePollRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

ErrorResponse bodies carry the status text plus a short message and
never leak store internals.

# CORS

CORS wraps the whole mux, reflects the request origin, answers
preflight OPTIONS, and allows the X-Edit-Token header the privileged
suggestion operations use.
*/
package middleware
