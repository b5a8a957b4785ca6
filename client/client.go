package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

type Client struct {
	httpClient *http.Client
	baseUrl    string
	auth       AuthProvider
	limiter    *rate.Limiter
}

var ErrAPIFailure = errors.New("api request failed")

func NewClient(baseUrl string) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseUrl:    baseUrl,
		limiter:    rate.NewLimiter(rate.Limit(10), 20),
	}
}

// SetAuth configures an optional AuthProvider. If set, it will be applied
// to outbound requests for endpoints that require authentication.
func (c *Client) SetAuth(auth AuthProvider) {
	c.auth = auth
}

// SetRateLimit adjusts the outbound request rate. Exchange endpoints
// throttle aggressive clients; the default of 10 req/s is conservative.
func (c *Client) SetRateLimit(requestsPerSecond float64, burst int) {
	c.limiter = rate.NewLimiter(rate.Limit(requestsPerSecond), burst)
}

func (c *Client) doRequest(req *http.Request, result interface{}) error {
	if c.auth != nil {
		if err := c.auth.Apply(req); err != nil {
			return err
		}
	}

	if err := c.limiter.Wait(req.Context()); err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("API error %d: %s: %w", resp.StatusCode, string(body), ErrAPIFailure)
	}

	if result != nil {
		if err := json.Unmarshal(body, result); err != nil {
			return err
		}
	}

	return nil
}

func (c *Client) post(ctx context.Context, endpoint string, payload, result interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseUrl+endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	return c.doRequest(req, result)
}

// postRaw performs a POST and returns the raw response, for endpoints whose
// interesting output lives in response headers rather than the body.
func (c *Client) postRaw(ctx context.Context, endpoint string, headers map[string]string, payload interface{}) (*http.Response, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseUrl+endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	return c.httpClient.Do(req)
}
