// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package client

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
)

// State is the device-local, non-authoritative side of the client: the
// edit token for each poll this device created, and the set of
// suggestion ids it has voted on. Voted markers are advisory only — a
// different device or a cleared state file bypasses them, and the
// server does not enforce them.
//
// When bound to a file the state is persisted as JSON after every
// change; with no file it lives in memory only.
type State struct {
	mu   sync.Mutex
	path string
	data stateData
}

type stateData struct {
	// poll id → edit token
	EditTokens map[string]string `json:"editTokens"`
	// poll id → set of suggestion ids voted on from this device
	Voted map[string]map[string]bool `json:"voted"`
}

// NewState returns an in-memory state with no backing file.
func NewState() *State {
	return &State{data: stateData{
		EditTokens: map[string]string{},
		Voted:      map[string]map[string]bool{},
	}}
}

// LoadState binds state to a JSON file, reading it if it exists.
// A missing file is not an error; it yields fresh state that will be
// written on first change.
func LoadState(path string) (*State, error) {
	s := NewState()
	s.path = path

	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read state file: %w", err)
	}

	if err := json.Unmarshal(raw, &s.data); err != nil {
		return nil, fmt.Errorf("failed to parse state file: %w", err)
	}
	if s.data.EditTokens == nil {
		s.data.EditTokens = map[string]string{}
	}
	if s.data.Voted == nil {
		s.data.Voted = map[string]map[string]bool{}
	}
	return s, nil
}

// EditToken returns the stored token for a poll, if this device has one.
func (s *State) EditToken(pollID string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	token, ok := s.data.EditTokens[pollID]
	return token, ok
}

// SetEditToken records the token returned once at poll creation.
func (s *State) SetEditToken(pollID, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.EditTokens[pollID] = token
	return s.save()
}

// HasVoted reports whether this device already voted on a suggestion.
func (s *State) HasVoted(pollID, suggestionID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data.Voted[pollID][suggestionID]
}

// MarkVoted records a confirmed vote from this device.
func (s *State) MarkVoted(pollID, suggestionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.data.Voted[pollID] == nil {
		s.data.Voted[pollID] = map[string]bool{}
	}
	s.data.Voted[pollID][suggestionID] = true
	return s.save()
}

// save must be called with the mutex held.
func (s *State) save() error {
	if s.path == "" {
		return nil
	}
	raw, err := json.MarshalIndent(s.data, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode state: %w", err)
	}
	if err := os.WriteFile(s.path, raw, 0o600); err != nil {
		return fmt.Errorf("failed to write state file: %w", err)
	}
	return nil
}
