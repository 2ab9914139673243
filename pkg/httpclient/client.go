package httpclient

import (
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/RuvinSL/aeo-analyzer/pkg/interfaces"
	"github.com/RuvinSL/aeo-analyzer/pkg/models"
)

const (
	userAgent = "AEOAnalyzer/1.0"

	// maxBodySize caps how much of a page is read (10MB)
	maxBodySize = 10 * 1024 * 1024
)

// Client implements the HTTPClient interface
type Client struct {
	client  *http.Client
	logger  interfaces.Logger
	timeout time.Duration
}

// New creates a client whose timeout bounds the whole request, body included
func New(timeout time.Duration, logger interfaces.Logger) *Client {
	return &Client{
		client: &http.Client{
			Timeout: timeout, // overall request deadline (includes headers + body)
			Transport: &http.Transport{
				Proxy: http.ProxyFromEnvironment,
				DialContext: (&net.Dialer{
					Timeout:   5 * time.Second,  // TCP connect timeout
					KeepAlive: 30 * time.Second, // keep-alive
				}).DialContext,
				MaxIdleConns:          100,
				MaxIdleConnsPerHost:   10, // pages come from many hosts, few requests each
				IdleConnTimeout:       60 * time.Second,
				DisableCompression:    false,
				TLSHandshakeTimeout:   5 * time.Second,
				ExpectContinueTimeout: 1 * time.Second,
			},
		},
		logger:  logger,
		timeout: timeout,
	}
}

// Get performs an HTTP GET request. Non-2xx responses are returned as-is;
// deciding what a status means is left to the caller.
func (c *Client) Get(ctx context.Context, url string) (*models.HTTPResponse, error) {
	// Create request with context
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	// Set headers
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")
	req.Header.Set("Accept-Encoding", "gzip")

	// Log request
	c.logger.Debug("Making HTTP request",
		"method", req.Method,
		"url", url,
	)

	// Perform request
	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		c.logger.Error("HTTP request failed",
			"url", url,
			"error", err,
			"duration", time.Since(start),
		)
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	// Accept-Encoding is set explicitly, so the transport leaves gzip bodies alone.
	var reader io.Reader = resp.Body
	if resp.Header.Get("Content-Encoding") == "gzip" {
		gz, err := gzip.NewReader(resp.Body)
		if err != nil {
			c.logger.Error("Failed to create gzip reader", "url", url, "error", err)
			return nil, fmt.Errorf("failed to decompress gzip: %w", err)
		}
		defer gz.Close()
		reader = gz
	}

	// Read response body with size limit
	body, err := io.ReadAll(io.LimitReader(reader, maxBodySize))
	if err != nil {
		c.logger.Error("Failed to read response body",
			"url", url,
			"error", err,
		)
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	// Log response
	c.logger.Debug("HTTP response received",
		"url", url,
		"status_code", resp.StatusCode,
		"content_length", len(body),
		"duration", time.Since(start),
	)

	// Build response
	return &models.HTTPResponse{
		StatusCode: resp.StatusCode,
		Status:     resp.Status,
		Body:       body,
		Headers:    resp.Header,
	}, nil
}

// Ensure Client implements interfaces.HTTPClient
var _ interfaces.HTTPClient = (*Client)(nil)
