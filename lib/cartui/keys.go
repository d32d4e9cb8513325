// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cartui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all key bindings for the cart dashboard TUI.
type KeyMap struct {
	// List scrolling for carts taller than the window.
	Up   key.Binding
	Down key.Binding

	// Actions.
	Scan     key.Binding // Activate the tag entry bar.
	Clear    key.Binding // Empty the cart.
	Checkout key.Binding // Complete the purchase.

	// Tag entry bar (active while typing a tag).
	ScanSubmit key.Binding
	ScanCancel key.Binding

	// Receipt modal.
	DismissReceipt key.Binding

	Quit key.Binding
}

// DefaultKeyMap is the built-in key binding set. Vim-style navigation
// (j/k) alongside standard arrow keys.
var DefaultKeyMap = KeyMap{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "down"),
	),
	Scan: key.NewBinding(
		key.WithKeys("s", "/"),
		key.WithHelp("s", "scan tag"),
	),
	Clear: key.NewBinding(
		key.WithKeys("c"),
		key.WithHelp("c", "clear cart"),
	),
	Checkout: key.NewBinding(
		key.WithKeys("x"),
		key.WithHelp("x", "checkout"),
	),
	ScanSubmit: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("Enter", "scan"),
	),
	ScanCancel: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("Esc", "cancel"),
	),
	DismissReceipt: key.NewBinding(
		key.WithKeys("esc", "enter"),
		key.WithHelp("Esc", "close receipt"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}
