// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"

	"github.com/danielhkuo/suggestbox/handlers"
	"github.com/danielhkuo/suggestbox/models"
)

var (
	ErrPollNotFound       = errors.New("poll not found")
	ErrSuggestionNotFound = errors.New("suggestion not found")
	// ErrNoEditPermission means this device never stored an edit token
	// for the poll; the server was not consulted.
	ErrNoEditPermission = errors.New("no edit permission for poll")
)

// APIError is a non-2xx response from the server.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.Status, e.Message)
}

// Client talks to the suggestion-box API and keeps a read-through
// cache of fetched polls. The cache is never authoritative: every
// successful mutation drops the poll's entry so the next read
// refetches, and nothing is applied locally before the server
// confirms success.
type Client struct {
	baseURL string
	httpc   *http.Client
	state   *State

	mu    sync.Mutex
	cache map[string]models.Poll
}

// New creates a client for the given base URL (no trailing slash).
// A nil state gets an in-memory one.
func New(baseURL string, state *State) *Client {
	if state == nil {
		state = NewState()
	}
	return &Client{
		baseURL: baseURL,
		httpc:   http.DefaultClient,
		state:   state,
		cache:   map[string]models.Poll{},
	}
}

// SetHTTPClient overrides the underlying HTTP client (timeouts, test
// transports).
func (c *Client) SetHTTPClient(httpc *http.Client) {
	c.httpc = httpc
}

// State exposes the device-local token/vote record.
func (c *Client) State() *State {
	return c.state
}

// CanEdit reports whether this device holds an edit token for a poll.
func (c *Client) CanEdit(pollID string) bool {
	_, ok := c.state.EditToken(pollID)
	return ok
}

// HasVoted reports whether this device already voted on a suggestion.
// Advisory only; the server accepts repeat votes.
func (c *Client) HasVoted(pollID, suggestionID string) bool {
	return c.state.HasVoted(pollID, suggestionID)
}

// CreatePoll creates a poll and stores its edit token locally. The
// token is only ever returned by this call.
func (c *Client) CreatePoll(ctx context.Context, title, description string) (models.Poll, error) {
	req := models.CreatePollRequest{Title: title, Description: &description}

	var poll models.Poll
	if err := c.do(ctx, http.MethodPost, "/api/polls", req, nil, &poll); err != nil {
		return models.Poll{}, err
	}

	if err := c.state.SetEditToken(poll.ID, poll.EditToken); err != nil {
		return models.Poll{}, err
	}

	c.mu.Lock()
	c.cache[poll.ID] = poll
	c.mu.Unlock()

	return poll, nil
}

// ListPolls fetches poll summaries, newest first. List views are not
// cached.
func (c *Client) ListPolls(ctx context.Context) ([]models.PollSummary, error) {
	var polls []models.PollSummary
	if err := c.do(ctx, http.MethodGet, "/api/polls", nil, nil, &polls); err != nil {
		return nil, err
	}
	return polls, nil
}

// GetPoll returns a poll with its suggestions, reading through the
// cache. Suggestions arrive sorted by votes desc, createdAt asc.
func (c *Client) GetPoll(ctx context.Context, pollID string) (models.Poll, error) {
	c.mu.Lock()
	if poll, ok := c.cache[pollID]; ok {
		c.mu.Unlock()
		return poll, nil
	}
	c.mu.Unlock()

	var poll models.Poll
	err := c.do(ctx, http.MethodGet, "/api/polls/"+pollID, nil, nil, &poll)
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound {
			return models.Poll{}, ErrPollNotFound
		}
		return models.Poll{}, err
	}

	c.mu.Lock()
	c.cache[pollID] = poll
	c.mu.Unlock()

	return poll, nil
}

// AddSuggestion posts a new suggestion and invalidates the poll's
// cache entry on success.
func (c *Client) AddSuggestion(ctx context.Context, pollID, text string) (models.Suggestion, error) {
	req := models.AddSuggestionRequest{Text: text}

	var suggestion models.Suggestion
	err := c.do(ctx, http.MethodPost, "/api/polls/"+pollID+"/suggestions", req, nil, &suggestion)
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound {
			return models.Suggestion{}, ErrPollNotFound
		}
		return models.Suggestion{}, err
	}

	c.invalidate(pollID)
	return suggestion, nil
}

// Vote up-votes a suggestion. On confirmation the suggestion is marked
// voted in local state and the poll's cache entry is dropped.
func (c *Client) Vote(ctx context.Context, pollID, suggestionID string) error {
	path := "/api/polls/" + pollID + "/suggestions/" + suggestionID + "/vote"

	var ack models.SuccessResponse
	err := c.do(ctx, http.MethodPost, path, nil, nil, &ack)
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound {
			return ErrSuggestionNotFound
		}
		return err
	}

	c.invalidate(pollID)
	return c.state.MarkVoted(pollID, suggestionID)
}

// UpdateSuggestion replaces a suggestion's text using the locally
// stored edit token.
func (c *Client) UpdateSuggestion(ctx context.Context, pollID, suggestionID, text string) error {
	token, ok := c.state.EditToken(pollID)
	if !ok {
		return ErrNoEditPermission
	}

	req := models.UpdateSuggestionRequest{Text: text}
	headers := map[string]string{handlers.EditTokenHeader: token}
	path := "/api/polls/" + pollID + "/suggestions/" + suggestionID

	var ack models.SuccessResponse
	err := c.do(ctx, http.MethodPut, path, req, headers, &ack)
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound {
			return ErrSuggestionNotFound
		}
		return err
	}

	c.invalidate(pollID)
	return nil
}

// DeleteSuggestion removes a suggestion using the locally stored edit
// token.
func (c *Client) DeleteSuggestion(ctx context.Context, pollID, suggestionID string) error {
	token, ok := c.state.EditToken(pollID)
	if !ok {
		return ErrNoEditPermission
	}

	headers := map[string]string{handlers.EditTokenHeader: token}
	path := "/api/polls/" + pollID + "/suggestions/" + suggestionID

	var ack models.SuccessResponse
	err := c.do(ctx, http.MethodDelete, path, nil, headers, &ack)
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound {
			return ErrSuggestionNotFound
		}
		return err
	}

	c.invalidate(pollID)
	return nil
}

func (c *Client) invalidate(pollID string) {
	c.mu.Lock()
	delete(c.cache, pollID)
	c.mu.Unlock()
}

// do issues one request and decodes the JSON response into out.
// Non-2xx responses come back as *APIError.
func (c *Client) do(ctx context.Context, method, path string, body interface{}, headers map[string]string, out interface{}) error {
	var reqBody *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reqBody = bytes.NewReader(raw)
	} else {
		reqBody = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var errResp models.ErrorResponse
		_ = json.NewDecoder(resp.Body).Decode(&errResp)
		msg := errResp.Message
		if msg == "" {
			msg = errResp.Error
		}
		return &APIError{Status: resp.StatusCode, Message: msg}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
