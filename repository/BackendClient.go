package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"strings"
	"sync"
	"time"

	"storegate/models"
)

// BackendClient is the single configured HTTP client every remote
// repository shares. Once a login succeeds the bearer token is attached
// here and rides along on every request until Logout clears it.
type BackendClient struct {
	baseURL string
	hc      *http.Client

	mu    sync.RWMutex
	token string
}

func NewBackendClient(baseURL string, timeout time.Duration) (*BackendClient, error) {
	if baseURL == "" {
		return nil, errors.New("baseURL must be non-empty")
	}
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &BackendClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		hc:      &http.Client{Timeout: timeout},
	}, nil
}

func (c *BackendClient) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

func (c *BackendClient) ClearToken() {
	c.SetToken("")
}

func (c *BackendClient) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

func (c *BackendClient) Get(ctx context.Context, path string) (body []byte, status int, err error) {
	return c.do(ctx, http.MethodGet, path, nil)
}

func (c *BackendClient) Send(ctx context.Context, method, path string, payload any) (body []byte, status int, err error) {
	var buf io.Reader
	if payload != nil {
		data, e := json.Marshal(payload)
		if e != nil {
			log.Printf("Send: %v", e)
			return nil, 0, models.ErrBadRequest
		}
		buf = bytes.NewReader(data)
	}
	return c.do(ctx, method, path, buf)
}

func (c *BackendClient) do(ctx context.Context, method, path string, payload io.Reader) (body []byte, status int, err error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, payload)
	if err != nil {
		log.Printf("do: %v", err)
		return nil, 0, models.ErrBadRequest
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.hc.Do(req)
	if err != nil {
		log.Printf("do %s %s: %v", method, path, err)
		return nil, 0, models.NewRemoteError(models.ErrServerError, err.Error())
	}
	defer resp.Body.Close()

	body, err = io.ReadAll(resp.Body)
	if err != nil {
		log.Printf("do %s %s: %v", method, path, err)
		return nil, resp.StatusCode, models.NewRemoteError(models.ErrServerError, err.Error())
	}
	return body, resp.StatusCode, nil
}

// remoteError maps a non-2xx response onto the sentinel taxonomy, keeping
// whatever message the backend put into its envelope.
func remoteError(status int, body []byte) error {
	msg := envelopeMessage(body)
	if msg == "" {
		msg = http.StatusText(status)
	}
	var kind error
	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		kind = models.ErrUnauthorized
	case status == http.StatusNotFound:
		kind = models.ErrNotFound
	case status >= 400 && status < 500:
		kind = models.ErrBadRequest
	default:
		kind = models.ErrServerError
	}
	return models.NewRemoteError(kind, msg)
}

func isSuccess(status int) bool {
	return status >= 200 && status < 300
}
