package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"sync"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Client wraps the tracker REST API. It attaches the bearer credential when
// one is held, serializes JSON bodies and maps non-2xx responses to *Error.
// Each call is issued exactly once; there is no retry policy here.
type Client struct {
	baseURL string
	http    *http.Client
	log     zerolog.Logger

	mu    sync.RWMutex
	token string

	onUnauthorized func()
}

func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{},
		log:     log.With().Str("component", "api").Logger(),
	}
}

// SetToken stores the bearer credential attached to subsequent requests.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

// ClearToken drops the bearer credential.
func (c *Client) ClearToken() {
	c.SetToken("")
}

func (c *Client) currentToken() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// OnUnauthorized registers a hook invoked when a request that carried a
// credential is rejected with 401. Login never attaches the credential, so
// login failures cannot trigger it.
func (c *Client) OnUnauthorized(fn func()) {
	c.mu.Lock()
	c.onUnauthorized = fn
	c.mu.Unlock()
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	return c.send(ctx, method, path, body, out, true)
}

// send issues one request. Login is the only caller that suppresses the
// credential: a re-login attempt must stand on the submitted password alone,
// and its failure must not count as a rejection of the held token.
func (c *Client) send(ctx context.Context, method, path string, body, out any, attachCredential bool) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return &Error{Kind: KindClient, Message: "encode request: " + err.Error()}
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return &Error{Kind: KindClient, Message: "build request: " + err.Error()}
	}
	req.Header.Set("Content-Type", "application/json")

	token := ""
	if attachCredential {
		token = c.currentToken()
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Debug().Str("method", method).Str("path", path).Err(err).Msg("transport failure")
		return &Error{Kind: KindTransport, Message: err.Error()}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return &Error{Kind: KindTransport, Message: "read response: " + err.Error()}
	}

	c.log.Debug().Str("method", method).Str("path", path).Int("status", resp.StatusCode).Msg("request")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &Error{
			Status:  resp.StatusCode,
			Kind:    kindForStatus(resp.StatusCode),
			Message: errorMessage(raw, resp.StatusCode),
		}
		if resp.StatusCode == http.StatusUnauthorized && token != "" {
			c.mu.RLock()
			hook := c.onUnauthorized
			c.mu.RUnlock()
			if hook != nil {
				hook()
			}
		}
		return apiErr
	}

	if out != nil && len(raw) > 0 {
		if err := json.Unmarshal(raw, out); err != nil {
			return &Error{Status: resp.StatusCode, Kind: KindServer, Message: "decode response: " + err.Error()}
		}
	}
	return nil
}

// errorMessage pulls the detail field out of an error body, falling back to
// the error field and finally to a generic message for the status class.
func errorMessage(raw []byte, status int) string {
	var body struct {
		Detail string `json:"detail"`
		Err    string `json:"error"`
	}
	if err := json.Unmarshal(raw, &body); err == nil {
		if body.Detail != "" {
			return body.Detail
		}
		if body.Err != "" {
			return body.Err
		}
	}
	return genericMessage(status)
}

// Health probes the API health endpoint.
func (c *Client) Health(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/api/health", nil, nil)
}
