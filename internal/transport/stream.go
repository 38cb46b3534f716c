// Package transport issues chat requests to the mode endpoints and consumes
// their incremental SSE responses.
package transport

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/jonkmatsumo/interview-agent/internal/types"
)

// Client talks to the interview-agent HTTP API. One Stream call opens one
// fresh stream; there are no resume-from-offset semantics.
type Client struct {
	baseURL    string
	authToken  string
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithAuthToken sets a bearer token sent on every request.
func WithAuthToken(token string) Option {
	return func(c *Client) { c.authToken = token }
}

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// New creates a client for the API at baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		// No overall timeout: streams stay open as long as the model is
		// producing. Cancellation comes from the caller's context.
		httpClient: &http.Client{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// chunkEvent is the payload of one SSE chunk event.
type chunkEvent struct {
	Text string `json:"text"`
}

// errorEvent is the payload of an SSE error event.
type errorEvent struct {
	Error string `json:"error"`
}

// Stream POSTs req to the mode endpoint and invokes onChunk for each text
// chunk in arrival order. It returns once the server signals completion or
// the stream closes. Context cancellation aborts the stream without an
// unhandled error surfacing beyond the returned ctx.Err.
func (c *Client) Stream(ctx context.Context, endpoint string, req types.ChatRequest, onChunk func(string)) error {
	body, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("failed to encode chat request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "text/event-stream")
	if c.authToken != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.authToken)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return &ConnectError{Endpoint: endpoint, Cause: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &StatusError{Endpoint: endpoint, StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(msg))}
	}

	return c.consume(ctx, resp.Body, endpoint, onChunk)
}

// consume reads SSE events until done, error, or stream close. Chunks are
// applied strictly in the order they arrive on the wire.
func (c *Client) consume(ctx context.Context, body io.Reader, endpoint string, onChunk func(string)) error {
	scanner := bufio.NewScanner(body)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	event := ""
	for scanner.Scan() {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		line := scanner.Text()

		switch {
		case strings.HasPrefix(line, "event: "):
			event = strings.TrimPrefix(line, "event: ")
		case strings.HasPrefix(line, "data: "):
			data := strings.TrimPrefix(line, "data: ")
			switch event {
			case "chunk":
				var chunk chunkEvent
				if err := json.Unmarshal([]byte(data), &chunk); err == nil && chunk.Text != "" {
					onChunk(chunk.Text)
				}
			case "error":
				var ev errorEvent
				if err := json.Unmarshal([]byte(data), &ev); err == nil && ev.Error != "" {
					return &StreamError{Endpoint: endpoint, Message: ev.Error}
				}
				return &StreamError{Endpoint: endpoint, Message: "stream reported an error"}
			case "done":
				return nil
			}
		case line == "":
			// Event boundary.
		}
	}

	if err := scanner.Err(); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if errors.Is(err, io.ErrUnexpectedEOF) {
			return &StreamError{Endpoint: endpoint, Message: "connection lost mid-stream", Cause: err}
		}
		return &StreamError{Endpoint: endpoint, Message: "failed reading stream", Cause: err}
	}

	// Stream closed without a done event: treat as complete. Some proxies
	// drop the final event but deliver all chunks.
	return nil
}

// Commit posts one confirmed content record to the content persistence
// endpoint and waits for the result.
func (c *Client) Commit(ctx context.Context, req types.CommitContentRequest) error {
	body, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("failed to encode commit request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/content", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if c.authToken != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.authToken)
	}

	commitClient := *c.httpClient
	commitClient.Timeout = 30 * time.Second

	resp, err := commitClient.Do(httpReq)
	if err != nil {
		return &ConnectError{Endpoint: "/api/content", Cause: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &StatusError{Endpoint: "/api/content", StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(msg))}
	}
	return nil
}
