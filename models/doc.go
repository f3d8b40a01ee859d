// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Request Types

Types for parsing incoming JSON:

  - CreatePollRequest: title, description (pointer — present but empty
    is valid, absent is not)
  - AddSuggestionRequest: text
  - UpdateSuggestionRequest: text

# Response Types

Types for JSON responses:

  - SuccessResponse: success
  - HealthResponse: status
  - ErrorResponse: error, message

# Domain Types

  - PollSummary: list-view fields only, no edit token
  - Poll: full poll including editToken and suggestions
  - Suggestion: one text proposal with its vote count

Timestamps are epoch milliseconds. All JSON field names are camelCase;
this is the wire contract, the database columns are snake_case.
*/
package models
