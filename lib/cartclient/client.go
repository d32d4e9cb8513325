// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cartclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/cartwatch/cartwatch/lib/clock"
	"github.com/cartwatch/cartwatch/lib/netutil"
)

// defaultRequestTimeout bounds every backend call that arrives without
// a caller deadline. The backend contract specifies no timeout; 5s is
// comfortably above a LAN round trip and short enough that a wedged
// request cannot hold the busy flag for long.
const defaultRequestTimeout = 5 * time.Second

// Config holds configuration for creating a cart backend Client.
type Config struct {
	// BaseURL is the root URL for API requests, e.g.
	// "http://localhost:8000". Required.
	BaseURL string

	// HTTPClient is used for all HTTP requests. Defaults to
	// http.DefaultClient.
	HTTPClient *http.Client

	// Clock provides time operations. Defaults to clock.Real().
	// Inject clock.Fake() in tests for deterministic behavior.
	Clock clock.Clock

	// Logger is used for structured logging. Defaults to slog.Default().
	Logger *slog.Logger
}

// Client is a typed client for the cart backend's REST API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	clock      clock.Clock
	logger     *slog.Logger
}

// NewClient creates a cart backend client from the given configuration.
// Returns an error if the base URL is missing or unparseable.
func NewClient(config Config) (*Client, error) {
	baseURL := strings.TrimRight(config.BaseURL, "/")
	if baseURL == "" {
		return nil, fmt.Errorf("cartclient: BaseURL is required")
	}
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("cartclient: invalid BaseURL %q: %w", config.BaseURL, err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, fmt.Errorf("cartclient: BaseURL %q: scheme must be http or https", config.BaseURL)
	}

	httpClient := config.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	clk := config.Clock
	if clk == nil {
		clk = clock.Real()
	}

	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Client{
		baseURL:    baseURL,
		httpClient: httpClient,
		clock:      clk,
		logger:     logger,
	}, nil
}

// Cart fetches the current authoritative state of a cart.
func (client *Client) Cart(ctx context.Context, cartID string) (*Cart, error) {
	var response struct {
		Cart Cart `json:"cart"`
	}
	if err := client.get(ctx, "/api/cart/"+url.PathEscape(cartID), &response); err != nil {
		return nil, err
	}
	return &response.Cart, nil
}

// Scan reports a tag read to the backend. The backend toggles the tag:
// added if absent from the cart, removed if present. The returned
// ScanResult carries the new authoritative cart.
func (client *Client) Scan(ctx context.Context, cartID, tagID string) (*ScanResult, error) {
	request := struct {
		TagID  string `json:"tag_id"`
		CartID string `json:"cart_id"`
	}{TagID: tagID, CartID: cartID}

	var result ScanResult
	if err := client.post(ctx, "/api/scan", request, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Clear empties the cart and returns its (expected-empty) new state.
func (client *Client) Clear(ctx context.Context, cartID string) (*Cart, error) {
	var response struct {
		Cart Cart `json:"cart"`
	}
	if err := client.post(ctx, "/api/cart/"+url.PathEscape(cartID)+"/clear", nil, &response); err != nil {
		return nil, err
	}
	return &response.Cart, nil
}

// Checkout completes the purchase of the cart's current contents. A
// 200 response carrying an "error" field instead of a receipt is a
// structured rejection, returned as *CheckoutError with the backend's
// message verbatim.
func (client *Client) Checkout(ctx context.Context, cartID string) (*Receipt, error) {
	var response struct {
		Receipt *Receipt `json:"receipt"`
		Error   string   `json:"error"`
	}
	if err := client.post(ctx, "/api/cart/"+url.PathEscape(cartID)+"/checkout", nil, &response); err != nil {
		return nil, err
	}
	if response.Error != "" {
		return nil, &CheckoutError{Message: response.Error}
	}
	if response.Receipt == nil {
		return nil, fmt.Errorf("cartclient: checkout response carried neither receipt nor error")
	}
	return response.Receipt, nil
}

// Products fetches the tag-to-product catalog. Loaded once at startup
// and treated as immutable for the session.
func (client *Client) Products(ctx context.Context) (map[string]Product, error) {
	var response struct {
		Products map[string]Product `json:"products"`
	}
	if err := client.get(ctx, "/api/products", &response); err != nil {
		return nil, err
	}
	return response.Products, nil
}

// get executes a GET request and decodes the JSON response into result.
func (client *Client) get(ctx context.Context, path string, result any) error {
	return client.do(ctx, http.MethodGet, path, nil, result)
}

// post executes a POST request with an optional JSON body and decodes
// the JSON response into result.
func (client *Client) post(ctx context.Context, path string, requestBody any, result any) error {
	return client.do(ctx, http.MethodPost, path, requestBody, result)
}

// do executes a backend API request. Applies the default request
// timeout when the caller's context has no deadline. On non-2xx
// responses, returns an *APIError built from the response body.
func (client *Client) do(ctx context.Context, method, path string, requestBody any, result any) error {
	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, defaultRequestTimeout)
		defer cancel()
	}

	var bodyReader io.Reader
	if requestBody != nil {
		encoded, err := json.Marshal(requestBody)
		if err != nil {
			return fmt.Errorf("cartclient: encoding request body: %w", err)
		}
		bodyReader = bytes.NewReader(encoded)
	}

	request, err := http.NewRequestWithContext(ctx, method, client.baseURL+path, bodyReader)
	if err != nil {
		return fmt.Errorf("cartclient: creating request: %w", err)
	}
	request.Header.Set("Accept", "application/json")
	if requestBody != nil {
		request.Header.Set("Content-Type", "application/json")
	}

	start := client.clock.Now()
	response, err := client.httpClient.Do(request)
	if err != nil {
		return fmt.Errorf("cartclient: %s %s: %w", method, path, err)
	}
	defer response.Body.Close()
	client.logger.Debug("backend request",
		"method", method,
		"path", path,
		"status", response.StatusCode,
		"duration", client.clock.Now().Sub(start),
	)

	if response.StatusCode < 200 || response.StatusCode >= 300 {
		return parseAPIError(response)
	}

	if result == nil {
		return nil
	}
	if err := netutil.DecodeResponse(response.Body, result); err != nil {
		return fmt.Errorf("cartclient: %s %s: decoding response: %w", method, path, err)
	}
	return nil
}

// parseAPIError builds an *APIError from a non-2xx response. Prefers
// the backend's structured "error" field; falls back to the raw body.
func parseAPIError(response *http.Response) *APIError {
	body := netutil.ErrorBody(response.Body)

	var wireError struct {
		Error string `json:"error"`
	}
	message := strings.TrimSpace(body)
	if json.Unmarshal([]byte(body), &wireError) == nil && wireError.Error != "" {
		message = wireError.Error
	}
	if message == "" {
		message = http.StatusText(response.StatusCode)
	}

	return &APIError{StatusCode: response.StatusCode, Message: message}
}
