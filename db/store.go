// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/danielhkuo/suggestbox/cliparse"
	"github.com/danielhkuo/suggestbox/models"
)

// ErrNotFound is returned when a referenced poll or suggestion does
// not exist (or does not belong to the given poll).
var ErrNotFound = errors.New("not found")

// Store owns the database connection and exposes every operation the
// handlers need. All paired counter updates run inside a transaction
// so total_votes can never diverge from the sum of suggestion votes.
type Store struct {
	db *sql.DB
}

// Open connects to the configured database, verifies the connection,
// and creates the schema.
func Open(cfg cliparse.Config) (*Store, error) {
	dsn := cfg.DatabaseURL
	if cfg.DatabaseType == cliparse.DriverSQLite {
		dsn = sqliteDSN(dsn)
	}

	conn, err := sql.Open(cfg.DatabaseType, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("database ping failed: %w", err)
	}

	if err := CreateSchema(conn); err != nil {
		conn.Close()
		return nil, err
	}

	return &Store{db: conn}, nil
}

// NewStore wraps an already-open connection. The caller is expected to
// have created the schema (used by tests).
func NewStore(conn *sql.DB) *Store {
	return &Store{db: conn}
}

func (s *Store) Close() error {
	return s.db.Close()
}

// sqliteDSN turns a plain file path into a DSN with foreign keys
// enforced. ON DELETE CASCADE is a no-op in sqlite without the pragma.
func sqliteDSN(path string) string {
	if strings.Contains(path, "?") {
		return path
	}
	if path == ":memory:" {
		path = "file::memory:"
	} else if !strings.HasPrefix(path, "file:") {
		path = "file:" + path
	}
	return path + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(10000)"
}

// ListPolls returns summary rows for every poll, newest first.
// The edit token is never part of the list view.
func (s *Store) ListPolls() ([]models.PollSummary, error) {
	rows, err := s.db.Query(`
		SELECT id, title, description, created_at, total_votes
		FROM polls
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query polls: %w", err)
	}
	defer rows.Close()

	polls := []models.PollSummary{}
	for rows.Next() {
		var p models.PollSummary
		if err := rows.Scan(&p.ID, &p.Title, &p.Description, &p.CreatedAt, &p.TotalVotes); err != nil {
			return nil, fmt.Errorf("failed to scan poll: %w", err)
		}
		polls = append(polls, p)
	}
	return polls, rows.Err()
}

// CreatePoll inserts a new poll row. The caller supplies generated ID,
// edit token, and timestamp; total votes always start at zero.
func (s *Store) CreatePoll(p models.Poll) error {
	_, err := s.db.Exec(`
		INSERT INTO polls (id, title, description, edit_token, created_at, total_votes)
		VALUES ($1, $2, $3, $4, $5, 0)
	`, p.ID, p.Title, p.Description, p.EditToken, p.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert poll: %w", err)
	}
	return nil
}

// GetPoll returns a poll with its suggestions sorted by votes
// descending, creation time ascending.
func (s *Store) GetPoll(id string) (models.Poll, error) {
	var p models.Poll
	err := s.db.QueryRow(`
		SELECT id, title, description, edit_token, created_at, total_votes
		FROM polls
		WHERE id = $1
	`, id).Scan(&p.ID, &p.Title, &p.Description, &p.EditToken, &p.CreatedAt, &p.TotalVotes)
	if err == sql.ErrNoRows {
		return models.Poll{}, ErrNotFound
	}
	if err != nil {
		return models.Poll{}, fmt.Errorf("failed to query poll: %w", err)
	}

	rows, err := s.db.Query(`
		SELECT id, poll_id, text, votes, created_at
		FROM suggestions
		WHERE poll_id = $1
		ORDER BY votes DESC, created_at ASC
	`, id)
	if err != nil {
		return models.Poll{}, fmt.Errorf("failed to query suggestions: %w", err)
	}
	defer rows.Close()

	p.Suggestions = []models.Suggestion{}
	for rows.Next() {
		var sg models.Suggestion
		if err := rows.Scan(&sg.ID, &sg.PollID, &sg.Text, &sg.Votes, &sg.CreatedAt); err != nil {
			return models.Poll{}, fmt.Errorf("failed to scan suggestion: %w", err)
		}
		p.Suggestions = append(p.Suggestions, sg)
	}
	return p, rows.Err()
}

// EditToken returns the stored edit token for a poll.
func (s *Store) EditToken(pollID string) (string, error) {
	var token string
	err := s.db.QueryRow(`SELECT edit_token FROM polls WHERE id = $1`, pollID).Scan(&token)
	if err == sql.ErrNoRows {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to query edit token: %w", err)
	}
	return token, nil
}

// PollExists reports whether a poll row exists.
func (s *Store) PollExists(id string) (bool, error) {
	var exists bool
	err := s.db.QueryRow(`SELECT EXISTS(SELECT 1 FROM polls WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to query poll existence: %w", err)
	}
	return exists, nil
}

// AddSuggestion inserts a suggestion with zero votes. The poll's
// total_votes is deliberately untouched: a fresh suggestion
// contributes nothing to the total.
func (s *Store) AddSuggestion(sg models.Suggestion) error {
	_, err := s.db.Exec(`
		INSERT INTO suggestions (id, poll_id, text, votes, created_at)
		VALUES ($1, $2, $3, 0, $4)
	`, sg.ID, sg.PollID, sg.Text, sg.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert suggestion: %w", err)
	}
	return nil
}

// Vote atomically increments a suggestion's vote count and the owning
// poll's total. Both updates are SQL-side arithmetic inside one
// transaction; there is no read-modify-write in the handler, so
// concurrent votes cannot lose increments.
func (s *Store) Vote(pollID, suggestionID string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.Exec(`
		UPDATE suggestions SET votes = votes + 1
		WHERE id = $1 AND poll_id = $2
	`, suggestionID, pollID)
	if err != nil {
		return fmt.Errorf("failed to increment suggestion votes: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}

	_, err = tx.Exec(`
		UPDATE polls SET total_votes = total_votes + 1
		WHERE id = $1
	`, pollID)
	if err != nil {
		return fmt.Errorf("failed to increment poll total: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit vote: %w", err)
	}
	return nil
}

// UpdateSuggestionText replaces a suggestion's text.
func (s *Store) UpdateSuggestionText(pollID, suggestionID, text string) error {
	res, err := s.db.Exec(`
		UPDATE suggestions SET text = $1
		WHERE id = $2 AND poll_id = $3
	`, text, suggestionID, pollID)
	if err != nil {
		return fmt.Errorf("failed to update suggestion: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteSuggestion removes a suggestion and subtracts its vote count
// from the poll total in the same transaction.
func (s *Store) DeleteSuggestion(pollID, suggestionID string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	// RETURNING observes the row as deleted, so a vote committing just
	// before the delete is still subtracted from the total.
	var votes int
	err = tx.QueryRow(`
		DELETE FROM suggestions
		WHERE id = $1 AND poll_id = $2
		RETURNING votes
	`, suggestionID, pollID).Scan(&votes)
	if err == sql.ErrNoRows {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to delete suggestion: %w", err)
	}

	if _, err := tx.Exec(`
		UPDATE polls SET total_votes = total_votes - $1
		WHERE id = $2
	`, votes, pollID); err != nil {
		return fmt.Errorf("failed to decrement poll total: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit delete: %w", err)
	}
	return nil
}
