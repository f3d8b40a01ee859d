// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db owns the database connection and all store operations.

# Opening

Open connects per the configured driver, pings, and creates the schema:

	store, err := db.Open(cfg)
	defer store.Close()

Supported drivers are sqlite (modernc.org/sqlite, CGo-free, the
default) and postgres (lib/pq). SQLite file paths are turned into DSNs
with foreign-key enforcement enabled.

# Tables

  - polls: poll metadata, the edit token, and the denormalized
    total_votes counter
  - suggestions: one row per suggestion, with its own votes counter

polls 1──* suggestions, ON DELETE CASCADE, index on
suggestions.poll_id.

# Counter Invariant

polls.total_votes always equals the sum of the poll's suggestion
votes. The two operations that touch both counters — Vote and
DeleteSuggestion — run both row updates inside a single transaction
with SQL-side arithmetic (votes = votes + 1), so a crash or a
concurrent writer cannot leave the counters diverged. AddSuggestion
never touches the total: new suggestions start at zero votes.

# Errors

Operations referencing an absent poll or suggestion return ErrNotFound
(check with errors.Is). Everything else is a wrapped store error the
handlers log and convert to a generic 500.
*/
package db
