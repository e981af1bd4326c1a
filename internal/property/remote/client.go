package remote

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/sony/gobreaker"

	"github.com/i474232898/property-search/internal/property"
)

// Client implements property.Source against the get-properties endpoint.
type Client struct {
	baseURL string
	httpCfg HTTPClientConfig
	circuit *gobreaker.CircuitBreaker
}

// NewClient creates a Client for baseURL (e.g. "http://localhost:5000").
func NewClient(client *http.Client, baseURL string, maxRetries int) *Client {
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "get-properties",
		MaxRequests: 5,
		Interval:    1 * time.Minute,
		Timeout:     30 * time.Second,
	})

	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpCfg: HTTPClientConfig{
			Client: client,
			Backoff: BackoffConfig{
				MaxRetries:      maxRetries,
				InitialInterval: 500 * time.Millisecond,
				MaxInterval:     5 * time.Second,
			},
		},
		circuit: cb,
	}
}

// URL returns the request URL for a filter snapshot.
func (c *Client) URL(f property.Filters) string {
	u := c.baseURL + "/get-properties"
	if q := f.Query().Encode(); q != "" {
		u += "?" + q
	}
	return u
}

// Fetch issues GET /get-properties. Every failure is a *property.NetworkError.
func (c *Client) Fetch(ctx context.Context, f property.Filters) (property.Result, error) {
	u := c.URL(f)
	buildRequest := func(ctx context.Context) (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Accept", "application/json")
		return req, nil
	}

	resp, err := doRequestWithResilience(ctx, c.httpCfg, c.circuit, buildRequest)
	if err != nil {
		netErr := &property.NetworkError{Err: err}
		var se *statusError
		if errors.As(err, &se) {
			netErr.StatusCode = se.Code
		}
		return property.Result{}, netErr
	}
	defer resp.Body.Close()

	var payload property.Result
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return property.Result{}, &property.NetworkError{
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("decode response: %w", err),
		}
	}
	if payload.Data == nil {
		payload.Data = []property.Record{}
	}
	return payload, nil
}
