// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the Suggestbox API server.

Suggestbox is a minimal suggestion-box service: anyone creates a poll,
anonymous visitors add free-text suggestions and up-vote them, and the
poll creator holds a private edit token for editing or deleting
suggestions.

# Starting the Server

The server runs on an embedded SQLite file by default:

	go run .

Or against PostgreSQL:

	go run . -t postgres -d "postgres://..."

A .env file in the working directory is loaded if present.

# Configuration

Optional settings (flags or environment):

  - PORT (-p): Server port (default: 3001)
  - DATABASE_URL (-d): Connection string or sqlite file path
  - DATABASE_TYPE (-t): sqlite (default) or postgres

# Architecture

The server uses a handler-based architecture with dependency injection:

  - handlers: HTTP request handlers (polls, suggestions)
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, JSON helpers
  - models: Request/response types
  - auth: ID and edit-token generation/validation
  - db: Store handle, schema, transactional counter updates
  - cliparse: Configuration parsing
  - client: Go API client with a read-through poll cache

See package documentation for each component.
*/
package main
