// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package cartui is the terminal dashboard for an IoT-connected
// shopping cart. It renders the cart's contents and running total,
// lets an operator simulate RFID tag scans, and shows the checkout
// receipt in a modal overlay.
//
// The package follows the Elm architecture via bubbletea: a single
// Model owns all session state (cart, catalog, last scan, receipt,
// connectivity, notice), and state changes happen only in Update in
// response to typed messages. Network calls run as tea.Cmd functions
// whose completions are delivered back as messages, so the model is
// never mutated from an I/O callback.
//
// Authoritative cart state arrives on a poll channel produced by
// cartclient.Poller; user actions (scan, clear, checkout) go through
// the Backend interface. A poll and an in-flight action may race —
// whichever response arrives last wins and overwrites the cart. The
// inconsistency window is bounded by the poll interval, and the next
// poll converges on the backend's truth, so no sequencing guard is
// applied.
package cartui
