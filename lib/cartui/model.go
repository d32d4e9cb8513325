// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cartui

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/cartwatch/cartwatch/lib/cartclient"
)

// Backend is the subset of the cart client the dashboard invokes for
// user-triggered actions. *cartclient.Client satisfies it; tests
// substitute a fake.
type Backend interface {
	Scan(ctx context.Context, cartID, tagID string) (*cartclient.ScanResult, error)
	Clear(ctx context.Context, cartID string) (*cartclient.Cart, error)
	Checkout(ctx context.Context, cartID string) (*cartclient.Receipt, error)
	Products(ctx context.Context) (map[string]cartclient.Product, error)
}

// pollResultMsg wraps a completed poll for delivery through the
// bubbletea message loop.
type pollResultMsg struct {
	result cartclient.PollResult
}

// catalogLoadedMsg is sent when the one-shot product catalog fetch
// completes. On error the catalog stays empty — quick-scan shortcuts
// degrade to unavailable, cart sync is unaffected.
type catalogLoadedMsg struct {
	products map[string]cartclient.Product
	err      error
}

// scanCompletedMsg is sent when an asynchronous scan call completes.
type scanCompletedMsg struct {
	result *cartclient.ScanResult
	err    error
}

// clearCompletedMsg is sent when an asynchronous clear call completes.
type clearCompletedMsg struct {
	cart *cartclient.Cart
	err  error
}

// checkoutCompletedMsg is sent when an asynchronous checkout call
// completes.
type checkoutCompletedMsg struct {
	receipt *cartclient.Receipt
	err     error
}

// Config holds everything needed to construct the dashboard model.
type Config struct {
	// Backend executes scan, clear, checkout, and catalog requests.
	Backend Backend

	// CartID is the cart this dashboard controls.
	CartID string

	// Polls delivers authoritative cart state from cartclient.Poller.
	// The model adopts every successful result wholesale and derives
	// connectivity from success/failure.
	Polls <-chan cartclient.PollResult
}

// Model is the top-level bubbletea model for the cart dashboard.
type Model struct {
	backend Backend
	cartID  string
	polls   <-chan cartclient.PollResult
	theme   Theme
	keys    KeyMap

	// Terminal dimensions (set by WindowSizeMsg).
	width  int
	height int
	ready  bool

	// Server-authoritative state, replaced wholesale on every
	// successful sync, scan, clear, or checkout response.
	cart      cartclient.Cart
	connected bool

	// Product catalog: tag to metadata, loaded once. quickTags is the
	// catalog's tag IDs in sorted order, backing the numbered
	// quick-scan shortcuts.
	catalog   map[string]cartclient.Product
	quickTags []string

	// Last scan outcome, shown until superseded by the next scan or
	// discarded by a clear/checkout.
	lastScan *cartclient.ScanResult

	// Receipt modal. Non-nil while the receipt overlay is visible.
	receipt *cartclient.Receipt

	// busy is set for the duration of a scan/clear/checkout request:
	// input is disabled and a progress marker is shown.
	busy bool

	// Tag entry bar.
	scanInput ScanInput

	// Transient notice slot plus its replacement sequence number.
	notice    *Notice
	noticeSeq int

	// Item list scroll position.
	scrollOffset int
}

// NewModel creates a Model wired to the given backend and poll stream.
func NewModel(config Config) Model {
	return Model{
		backend: config.Backend,
		cartID:  config.CartID,
		polls:   config.Polls,
		theme:   DefaultTheme,
		keys:    DefaultKeyMap,
		catalog: map[string]cartclient.Product{},
	}
}

// Init implements tea.Model. Starts listening for poll results and
// issues the one-shot catalog fetch.
func (model Model) Init() tea.Cmd {
	return tea.Batch(
		listenForPoll(model.polls),
		model.loadCatalog(),
	)
}

// listenForPoll returns a tea.Cmd that blocks until the next poll
// result arrives, then delivers it as a pollResultMsg. Returns nil
// when the channel closes (poller torn down).
func listenForPoll(polls <-chan cartclient.PollResult) tea.Cmd {
	return func() tea.Msg {
		result, ok := <-polls
		if !ok {
			return nil
		}
		return pollResultMsg{result: result}
	}
}

// loadCatalog returns a tea.Cmd that fetches the product catalog once.
func (model Model) loadCatalog() tea.Cmd {
	backend := model.backend
	return func() tea.Msg {
		products, err := backend.Products(context.Background())
		return catalogLoadedMsg{products: products, err: err}
	}
}

// Update implements tea.Model. Routes keyboard events based on what is
// active (receipt modal, tag entry bar, or the main view) and applies
// completion messages from the async operations.
func (model Model) Update(message tea.Msg) (tea.Model, tea.Cmd) {
	switch message := message.(type) {
	case tea.KeyMsg:
		return model.handleKey(message)

	case tea.WindowSizeMsg:
		model.width = message.Width
		model.height = message.Height
		model.ready = true

	case pollResultMsg:
		if message.result.Err != nil {
			// Cart state stays untouched; only connectivity drops.
			model.connected = false
		} else {
			model.cart = *message.result.Cart
			model.connected = true
			model.clampScroll()
		}
		return model, listenForPoll(model.polls)

	case catalogLoadedMsg:
		if message.err == nil {
			model.setCatalog(message.products)
		}

	case scanCompletedMsg:
		return model.handleScanCompleted(message)

	case clearCompletedMsg:
		model.busy = false
		if message.err != nil {
			return model.notify(message.err.Error(), SeverityError)
		}
		model.cart = *message.cart
		model.lastScan = nil
		model.clampScroll()
		return model.notify("Cart cleared", SeverityInfo)

	case checkoutCompletedMsg:
		return model.handleCheckoutCompleted(message)

	case noticeFadeMsg:
		if message.seq == model.noticeSeq {
			model.notice = nil
		}
	}
	return model, nil
}

// handleKey routes a keystroke. The receipt modal and the tag entry
// bar each capture all input while active.
func (model Model) handleKey(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	if model.receipt != nil {
		switch {
		case key.Matches(message, model.keys.DismissReceipt):
			model.receipt = nil
		case key.Matches(message, model.keys.Quit):
			return model, tea.Quit
		}
		return model, nil
	}

	if model.scanInput.Active {
		return model.handleScanInputKeys(message)
	}

	switch {
	case key.Matches(message, model.keys.Quit):
		return model, tea.Quit

	case key.Matches(message, model.keys.Up):
		if model.scrollOffset > 0 {
			model.scrollOffset--
		}

	case key.Matches(message, model.keys.Down):
		model.scrollOffset++
		model.clampScroll()

	case key.Matches(message, model.keys.Scan):
		if !model.busy {
			model.scanInput.Active = true
		}

	case key.Matches(message, model.keys.Clear):
		if !model.busy {
			return model.dispatchClear()
		}

	case key.Matches(message, model.keys.Checkout):
		if !model.busy {
			return model.dispatchCheckout()
		}

	default:
		// Number keys 1-9 quick-scan the corresponding catalog entry.
		if tag, ok := model.quickTagForKey(message); ok && !model.busy {
			return model.dispatchScan(tag)
		}
	}
	return model, nil
}

// handleScanInputKeys routes keystrokes while the tag entry bar is
// active. Enter submits, Esc cancels, everything else edits the input.
func (model Model) handleScanInputKeys(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(message, model.keys.ScanCancel):
		model.scanInput.Clear()
		return model, nil

	case key.Matches(message, model.keys.ScanSubmit):
		tag := model.scanInput.Value()
		model.scanInput.Clear()
		if tag == "" {
			// Empty or whitespace-only input is a no-op.
			return model, nil
		}
		return model.dispatchScan(tag)
	}

	switch message.Type {
	case tea.KeyRunes, tea.KeySpace:
		for _, character := range message.Runes {
			model.scanInput.HandleRune(character)
		}
	case tea.KeyBackspace:
		model.scanInput.HandleBackspace()
	}
	return model, nil
}

// dispatchScan issues a scan for the given tag. The busy flag holds
// until the completion message arrives.
func (model Model) dispatchScan(tagID string) (tea.Model, tea.Cmd) {
	model.busy = true
	backend, cartID := model.backend, model.cartID
	return model, func() tea.Msg {
		result, err := backend.Scan(context.Background(), cartID, tagID)
		return scanCompletedMsg{result: result, err: err}
	}
}

// dispatchClear issues a clear-cart request.
func (model Model) dispatchClear() (tea.Model, tea.Cmd) {
	model.busy = true
	backend, cartID := model.backend, model.cartID
	return model, func() tea.Msg {
		cart, err := backend.Clear(context.Background(), cartID)
		return clearCompletedMsg{cart: cart, err: err}
	}
}

// dispatchCheckout issues a checkout request. Guarded client-side: an
// empty cart is a no-op — no request leaves, no receipt opens — since
// the backend may not reject empty checkouts itself.
func (model Model) dispatchCheckout() (tea.Model, tea.Cmd) {
	if len(model.cart.Items) == 0 {
		return model, nil
	}
	model.busy = true
	backend, cartID := model.backend, model.cartID
	return model, func() tea.Msg {
		receipt, err := backend.Checkout(context.Background(), cartID)
		return checkoutCompletedMsg{receipt: receipt, err: err}
	}
}

// handleScanCompleted applies a finished scan. The busy flag clears on
// every path; cart state changes only on success.
func (model Model) handleScanCompleted(message scanCompletedMsg) (tea.Model, tea.Cmd) {
	model.busy = false
	if message.err != nil {
		return model.notify(message.err.Error(), SeverityError)
	}

	model.cart = message.result.Cart
	model.lastScan = message.result
	model.clampScroll()

	if message.result.Action == cartclient.ActionRemoved {
		return model.notify(fmt.Sprintf("%s removed", message.result.Product), SeverityWarning)
	}
	return model.notify(fmt.Sprintf("✓ %s added", message.result.Product), SeveritySuccess)
}

// handleCheckoutCompleted applies a finished checkout. A structured
// backend rejection surfaces its text verbatim and changes nothing;
// success opens the receipt modal and resets the local cart.
func (model Model) handleCheckoutCompleted(message checkoutCompletedMsg) (tea.Model, tea.Cmd) {
	model.busy = false
	if message.err != nil {
		return model.notify(message.err.Error(), SeverityError)
	}

	model.receipt = message.receipt
	model.cart = cartclient.Cart{}
	model.lastScan = nil
	model.scrollOffset = 0
	return model.notify("Checkout complete", SeveritySuccess)
}

// notify replaces the notice slot and schedules its auto-dismiss. The
// bumped sequence number invalidates any pending fade from a previous
// notice, so the new one gets the full display duration.
func (model Model) notify(text string, severity Severity) (tea.Model, tea.Cmd) {
	model.notice = &Notice{Message: text, Severity: severity}
	model.noticeSeq++
	seq := model.noticeSeq
	return model, tea.Tick(noticeFadeDelay, func(time.Time) tea.Msg {
		return noticeFadeMsg{seq: seq}
	})
}

// setCatalog stores the product catalog and derives the quick-scan
// ordering. Tags are sorted so the numbered shortcuts are stable
// across sessions.
func (model *Model) setCatalog(products map[string]cartclient.Product) {
	if products == nil {
		products = map[string]cartclient.Product{}
	}
	model.catalog = products

	tags := make([]string, 0, len(products))
	for tag := range products {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	if len(tags) > maxQuickTags {
		tags = tags[:maxQuickTags]
	}
	model.quickTags = tags
}

// maxQuickTags caps the quick-scan shortcut row at the digit keys 1-9.
const maxQuickTags = 9

// quickTagForKey maps a digit keystroke to a catalog tag, if the
// catalog has an entry at that position.
func (model Model) quickTagForKey(message tea.KeyMsg) (string, bool) {
	runes := message.Runes
	if message.Type != tea.KeyRunes || len(runes) != 1 {
		return "", false
	}
	if runes[0] < '1' || runes[0] > '9' {
		return "", false
	}
	index := int(runes[0] - '1')
	if index >= len(model.quickTags) {
		return "", false
	}
	return model.quickTags[index], true
}

// clampScroll keeps the item list scroll position within bounds after
// the cart shrinks or the window resizes.
func (model *Model) clampScroll() {
	maxOffset := len(model.cart.Items) - model.itemRows()
	if maxOffset < 0 {
		maxOffset = 0
	}
	if model.scrollOffset > maxOffset {
		model.scrollOffset = maxOffset
	}
	if model.scrollOffset < 0 {
		model.scrollOffset = 0
	}
}
