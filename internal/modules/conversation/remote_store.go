package conversation

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// RemoteStore talks to the data service REST API under /api/messages.
type RemoteStore struct {
	baseURL string
	httpc   *http.Client
}

// NewRemoteStore returns a client for the data service at baseURL.
func NewRemoteStore(baseURL string, timeout time.Duration) *RemoteStore {
	return &RemoteStore{
		baseURL: strings.TrimRight(baseURL, "/") + "/api/messages",
		httpc:   &http.Client{Timeout: timeout},
	}
}

func (s *RemoteStore) Create(ctx context.Context, m Message) (Message, error) {
	body, err := json.Marshal(m)
	if err != nil {
		return Message{}, fmt.Errorf("conversation: marshal message: %w", err)
	}
	var created Message
	if err := s.do(ctx, http.MethodPost, s.baseURL, body, &created); err != nil {
		return Message{}, err
	}
	return created, nil
}

func (s *RemoteStore) ListByUser(ctx context.Context, userID string) ([]Message, error) {
	var out []Message
	err := s.do(ctx, http.MethodGet, s.baseURL+"/user/"+url.PathEscape(userID), nil, &out)
	return out, err
}

func (s *RemoteStore) ListByConversation(ctx context.Context, userID, conversationID string) ([]Message, error) {
	var out []Message
	err := s.do(ctx, http.MethodGet, s.conversationURL(userID, conversationID), nil, &out)
	return out, err
}

func (s *RemoteStore) DeleteByUser(ctx context.Context, userID string) error {
	return s.do(ctx, http.MethodDelete, s.baseURL+"/user/"+url.PathEscape(userID), nil, nil)
}

func (s *RemoteStore) DeleteConversation(ctx context.Context, userID, conversationID string) error {
	return s.do(ctx, http.MethodDelete, s.conversationURL(userID, conversationID), nil, nil)
}

func (s *RemoteStore) conversationURL(userID, conversationID string) string {
	q := url.Values{}
	q.Set("userId", userID)
	return s.baseURL + "/conversation/" + url.PathEscape(conversationID) + "?" + q.Encode()
}

// do sends one request. Any transport failure or non-2xx status wraps ErrPersistence.
func (s *RemoteStore) do(ctx context.Context, method, target string, body []byte, out any) error {
	var rd io.Reader
	if body != nil {
		rd = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, target, rd)
	if err != nil {
		return fmt.Errorf("conversation: build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := s.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s %s: %v", ErrPersistence, method, target, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: read response: %v", ErrPersistence, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%w: %s %s: status %d", ErrPersistence, method, target, resp.StatusCode)
	}
	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("%w: decode response: %v", ErrPersistence, err)
	}
	return nil
}
