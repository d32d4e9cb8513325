// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package cartclient is a typed REST client for the cart backend.
//
// The backend owns all authoritative state: cart contents, the product
// catalog, and checkout/receipt generation. This client wraps the five
// JSON endpoints the dashboard consumes (cart fetch, scan, clear,
// checkout, product catalog) and never recomputes anything locally —
// every successful mutation returns the new authoritative cart, which
// callers adopt wholesale.
//
// Poller layers a fixed-interval cart fetch on top of the client and
// delivers results on a channel, giving the dashboard a single place
// to derive connectivity from poll success and failure.
package cartclient
