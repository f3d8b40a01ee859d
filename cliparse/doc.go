// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - Port: Server listen port (default: 3001)
  - DatabaseURL: Connection string (postgres) or file path (sqlite)
  - DatabaseType: "sqlite" (default) or "postgres"

# CLI Flags

	-p  Server port
	-d  Database URL or sqlite file path
	-t  Database type (sqlite or postgres)

# Environment Variables

Flags fall back to environment variables:

	PORT          → -p
	DATABASE_URL  → -d
	DATABASE_TYPE → -t

CLI flags take precedence over environment variables.

# Validation

ParseFlags returns an error if:

  - DATABASE_TYPE is neither sqlite nor postgres
  - postgres is selected with no DATABASE_URL

With sqlite and no URL, the store defaults to a suggestbox.db file in
the working directory.
*/
package cliparse
