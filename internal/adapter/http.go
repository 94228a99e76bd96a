package adapter

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"

	"github.com/feral-file/ff-staking-api/internal/logger"
)

// HTTPClient defines an interface for HTTP client operations to enable mocking
//
//go:generate mockgen -source=http.go -destination=../mocks/http.go -package=mocks -mock_names=HTTPClient=MockHTTPClient
type HTTPClient interface {
	// GetBytes performs a GET request with optional headers and returns the raw response body
	GetBytes(ctx context.Context, url string, headers map[string]string) ([]byte, error)
}

// RealHTTPClient implements HTTPClient using the standard http package
type RealHTTPClient struct {
	client       *http.Client
	maxRetryTime time.Duration
}

// NewHTTPClient creates a new real HTTP client.
// maxRetryTime bounds the total time spent retrying rate limited (429) responses;
// zero disables retries.
func NewHTTPClient(timeout time.Duration, maxRetryTime time.Duration) HTTPClient {
	return &RealHTTPClient{
		client: &http.Client{
			Timeout: timeout,
		},
		maxRetryTime: maxRetryTime,
	}
}

// doRequestWithRetry executes an HTTP request, retrying only rate limited responses with exponential backoff
func (c *RealHTTPClient) doRequestWithRetry(ctx context.Context, req *http.Request) ([]byte, error) {
	var respBody []byte

	operation := func() error {
		resp, err := c.client.Do(req)
		if err != nil {
			return backoff.Permanent(fmt.Errorf("failed to perform request: %w", err))
		}
		defer func() {
			if err := resp.Body.Close(); err != nil {
				logger.Warn("failed to close response body", zap.Error(err), zap.String("host", req.URL.Host))
			}
		}()

		if resp.StatusCode == http.StatusTooManyRequests {
			logger.Warn("rate limited, retrying with backoff", zap.String("host", req.URL.Host))
			return fmt.Errorf("rate limited (429), retrying")
		}

		if resp.StatusCode != http.StatusOK {
			body, _ := io.ReadAll(resp.Body)
			return backoff.Permanent(fmt.Errorf("unexpected status code %d: %s", resp.StatusCode, string(body)))
		}

		respBody, err = io.ReadAll(resp.Body)
		if err != nil {
			return backoff.Permanent(fmt.Errorf("failed to read response body: %w", err))
		}

		return nil
	}

	var b backoff.BackOff
	if c.maxRetryTime <= 0 {
		b = &backoff.StopBackOff{}
	} else {
		eb := backoff.NewExponentialBackOff()
		eb.InitialInterval = 1 * time.Second
		eb.MaxInterval = 10 * time.Second
		eb.MaxElapsedTime = c.maxRetryTime
		eb.Multiplier = 2.0
		eb.RandomizationFactor = 0.5
		b = eb
	}

	if err := backoff.Retry(operation, backoff.WithContext(b, ctx)); err != nil {
		return nil, err
	}

	return respBody, nil
}

// GetBytes performs a GET request with optional headers and returns the raw response body
func (c *RealHTTPClient) GetBytes(ctx context.Context, url string, headers map[string]string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	for key, value := range headers {
		req.Header.Set(key, value)
	}

	return c.doRequestWithRetry(ctx, req)
}
