// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cartclient

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cartwatch/cartwatch/lib/clock"
)

// PollResult is one completed cart fetch: the new authoritative cart
// on success, or the error that prevented it. Exactly one of the two
// fields is set.
type PollResult struct {
	Cart *Cart
	Err  error
}

// PollerConfig holds configuration for creating a Poller.
type PollerConfig struct {
	// Client issues the cart fetches. Required.
	Client *Client

	// CartID is the cart to poll. Required.
	CartID string

	// Interval is the fixed time between fetches. Required, positive.
	// There is deliberately no backoff or jitter: the staleness
	// tolerance equals the interval and an idle fetch is cheap.
	Interval time.Duration

	// Clock provides the tick timer. Defaults to clock.Real().
	Clock clock.Clock

	// Logger is used for structured logging. Defaults to slog.Default().
	Logger *slog.Logger
}

// Poller fetches a cart's state on a fixed interval and delivers every
// completed fetch — success or failure — on a channel. Consumers
// derive connectivity from the latest result alone: each fetch
// independently reports up or down, with no hysteresis.
type Poller struct {
	client   *Client
	cartID   string
	interval time.Duration
	clock    clock.Clock
	logger   *slog.Logger
}

// NewPoller creates a Poller from the given configuration.
func NewPoller(config PollerConfig) (*Poller, error) {
	if config.Client == nil {
		return nil, fmt.Errorf("cartclient: poller requires a Client")
	}
	if config.CartID == "" {
		return nil, fmt.Errorf("cartclient: poller requires a cart ID")
	}
	if config.Interval <= 0 {
		return nil, fmt.Errorf("cartclient: poll interval must be positive, got %v", config.Interval)
	}

	clk := config.Clock
	if clk == nil {
		clk = clock.Real()
	}
	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Poller{
		client:   config.Client,
		cartID:   config.CartID,
		interval: config.Interval,
		clock:    clk,
		logger:   logger,
	}, nil
}

// Run starts polling and returns the result channel. The first fetch
// is issued immediately; subsequent fetches follow on the fixed
// interval. When ctx is cancelled the ticker stops, no further results
// are delivered, and the channel is closed — a fetch in flight at
// cancellation is discarded rather than sent to a torn-down consumer.
func (poller *Poller) Run(ctx context.Context) <-chan PollResult {
	results := make(chan PollResult)

	go func() {
		defer close(results)

		ticker := poller.clock.NewTicker(poller.interval)
		defer ticker.Stop()

		// Immediate first fetch so the dashboard isn't blank for a
		// full interval after startup.
		if !poller.fetchAndDeliver(ctx, results) {
			return
		}

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if !poller.fetchAndDeliver(ctx, results) {
					return
				}
			}
		}
	}()

	return results
}

// fetchAndDeliver performs one cart fetch and sends the result. Returns
// false when ctx was cancelled and the poll loop should exit.
func (poller *Poller) fetchAndDeliver(ctx context.Context, results chan<- PollResult) bool {
	cart, err := poller.client.Cart(ctx, poller.cartID)
	if err != nil {
		// Cancellation is teardown, not a connectivity failure.
		if ctx.Err() != nil {
			return false
		}
		poller.logger.Warn("cart poll failed", "cart", poller.cartID, "error", err)
	}

	select {
	case results <- PollResult{Cart: cart, Err: err}:
		return true
	case <-ctx.Done():
		return false
	}
}
