// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cartclient

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/cartwatch/cartwatch/lib/clock"
	"github.com/cartwatch/cartwatch/lib/testutil"
)

var pollerEpoch = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

// pollServer serves cart fetches whose total equals the request count,
// so tests can tell poll payloads apart. When failing is set, responses
// are 503s instead.
type pollServer struct {
	server   *httptest.Server
	requests atomic.Int64
	failing  atomic.Bool
}

func newPollServer(t *testing.T) *pollServer {
	t.Helper()
	ps := &pollServer{}
	ps.server = httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		count := ps.requests.Add(1)
		if ps.failing.Load() {
			writer.WriteHeader(http.StatusServiceUnavailable)
			writer.Write([]byte(`{"error":"backend restarting"}`))
			return
		}
		writer.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(writer, `{"cart":{"items":[],"total":%d}}`, count)
	}))
	t.Cleanup(ps.server.Close)
	return ps
}

func newTestPoller(t *testing.T, ps *pollServer, clk clock.Clock) *Poller {
	t.Helper()
	client, err := NewClient(Config{
		BaseURL:    ps.server.URL,
		HTTPClient: ps.server.Client(),
		Clock:      clock.Real(),
		Logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	poller, err := NewPoller(PollerConfig{
		Client:   client,
		CartID:   "CART-001",
		Interval: 2 * time.Second,
		Clock:    clk,
		Logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	if err != nil {
		t.Fatalf("NewPoller: %v", err)
	}
	return poller
}

func TestNewPollerValidation(t *testing.T) {
	client, err := NewClient(Config{BaseURL: "http://localhost:1"})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}

	if _, err := NewPoller(PollerConfig{CartID: "c", Interval: time.Second}); err == nil {
		t.Error("expected error for missing client")
	}
	if _, err := NewPoller(PollerConfig{Client: client, Interval: time.Second}); err == nil {
		t.Error("expected error for missing cart ID")
	}
	if _, err := NewPoller(PollerConfig{Client: client, CartID: "c", Interval: 0}); err == nil {
		t.Error("expected error for non-positive interval")
	}
}

func TestPollerImmediateFirstFetch(t *testing.T) {
	ps := newPollServer(t)
	fakeClock := clock.Fake(pollerEpoch)
	poller := newTestPoller(t, ps, fakeClock)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	results := poller.Run(ctx)

	// The first result arrives without any clock advance.
	first := testutil.RequireReceive(t, results, 5*time.Second, "immediate first poll")
	if first.Err != nil {
		t.Fatalf("first poll failed: %v", first.Err)
	}
	if first.Cart.Total != 1 {
		t.Errorf("first poll total = %v, want 1", first.Cart.Total)
	}
}

func TestPollerFixedInterval(t *testing.T) {
	ps := newPollServer(t)
	fakeClock := clock.Fake(pollerEpoch)
	poller := newTestPoller(t, ps, fakeClock)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	results := poller.Run(ctx)
	testutil.RequireReceive(t, results, 5*time.Second, "first poll")

	// Each interval elapsed produces exactly one more fetch.
	fakeClock.WaitForTimers(1)
	fakeClock.Advance(2 * time.Second)
	second := testutil.RequireReceive(t, results, 5*time.Second, "second poll")
	if second.Cart.Total != 2 {
		t.Errorf("second poll total = %v, want 2", second.Cart.Total)
	}

	fakeClock.Advance(2 * time.Second)
	third := testutil.RequireReceive(t, results, 5*time.Second, "third poll")
	if third.Cart.Total != 3 {
		t.Errorf("third poll total = %v, want 3", third.Cart.Total)
	}
}

func TestPollerDeliversFailuresAndRecovers(t *testing.T) {
	ps := newPollServer(t)
	fakeClock := clock.Fake(pollerEpoch)
	poller := newTestPoller(t, ps, fakeClock)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	results := poller.Run(ctx)
	testutil.RequireReceive(t, results, 5*time.Second, "first poll")

	// Backend goes down: the poll result carries the error, and the
	// interval does not change (no backoff).
	ps.failing.Store(true)
	fakeClock.WaitForTimers(1)
	fakeClock.Advance(2 * time.Second)
	failed := testutil.RequireReceive(t, results, 5*time.Second, "failed poll")
	if failed.Err == nil {
		t.Fatal("expected poll error while backend is failing")
	}
	if failed.Cart != nil {
		t.Error("failed poll should carry no cart")
	}

	// Backend recovers: the very next tick succeeds.
	ps.failing.Store(false)
	fakeClock.Advance(2 * time.Second)
	recovered := testutil.RequireReceive(t, results, 5*time.Second, "recovered poll")
	if recovered.Err != nil {
		t.Fatalf("expected recovery, got %v", recovered.Err)
	}
}

func TestPollerStopsOnCancel(t *testing.T) {
	ps := newPollServer(t)
	fakeClock := clock.Fake(pollerEpoch)
	poller := newTestPoller(t, ps, fakeClock)

	ctx, cancel := context.WithCancel(context.Background())
	results := poller.Run(ctx)
	testutil.RequireReceive(t, results, 5*time.Second, "first poll")

	cancel()
	testutil.RequireClosed(t, results, 5*time.Second, "poller shut down")

	// No further fetches after teardown, even as time keeps passing.
	requestsAtCancel := ps.requests.Load()
	fakeClock.Advance(10 * time.Second)
	testutil.RequireNoReceive(t, results, 50*time.Millisecond, "no results after teardown")
	if got := ps.requests.Load(); got != requestsAtCancel {
		t.Errorf("requests after cancel = %d, want %d", got, requestsAtCancel)
	}
}
