// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cartui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/cartwatch/cartwatch/lib/tui"
)

// currencySymbol prefixes every rendered price. Fixed symbol, no
// locale formatting.
const currencySymbol = "₹"

// formatPrice renders a price with the currency prefix. Whole amounts
// print without decimals ("₹40"), fractional ones with their natural
// precision ("₹40.5").
func formatPrice(price float64) string {
	return currencySymbol + strconv.FormatFloat(price, 'f', -1, 64)
}

// Fixed chrome rows around the item list: header, two separators,
// total, last scan, quick-scan row, status line, help bar.
const chromeRows = 8

// itemRows returns how many cart lines fit between the chrome.
func (model Model) itemRows() int {
	rows := model.height - chromeRows
	if rows < 0 {
		return 0
	}
	return rows
}

// View implements tea.Model.
func (model Model) View() string {
	if !model.ready {
		return "Loading..."
	}

	sections := []string{
		model.renderHeader(),
		model.renderSeparator(),
		model.renderItems(),
		model.renderSeparator(),
		model.renderTotal(),
		model.renderLastScan(),
		model.renderQuickTags(),
		model.renderStatusLine(),
		model.renderHelp(),
	}
	output := strings.Join(sections, "\n")

	// The receipt modal overlays everything else.
	if model.receipt != nil {
		lines, anchorX, anchorY := renderReceipt(*model.receipt, model.theme, model.width, model.height)
		output = tui.SpliceOverlay(output, lines, anchorX, anchorY)
	}
	return output
}

// renderHeader renders the title line: dashboard name, cart ID, and
// the connectivity badge. A busy marker appears while a user action is
// in flight.
func (model Model) renderHeader() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(model.theme.HeaderForeground)

	badge := lipgloss.NewStyle().
		Bold(true).
		Foreground(model.theme.ConnectivityDown).
		Render("OFFLINE")
	if model.connected {
		badge = lipgloss.NewStyle().
			Bold(true).
			Foreground(model.theme.ConnectivityUp).
			Render("ONLINE")
	}

	busy := ""
	if model.busy {
		busy = lipgloss.NewStyle().
			Foreground(model.theme.FaintText).
			Render("  …working")
	}

	left := titleStyle.Render(" cartwatch ") +
		lipgloss.NewStyle().Foreground(model.theme.FaintText).Render(model.cartID) +
		busy

	gap := model.width - lipgloss.Width(left) - lipgloss.Width(badge) - 1
	if gap < 1 {
		gap = 1
	}
	return left + strings.Repeat(" ", gap) + badge + " "
}

// renderSeparator renders a full-width horizontal rule.
func (model Model) renderSeparator() string {
	return lipgloss.NewStyle().
		Foreground(model.theme.BorderColor).
		Render(strings.Repeat("─", model.width))
}

// renderItems renders the scrollable cart line items, padded to the
// full list height. An empty cart shows a placeholder.
func (model Model) renderItems() string {
	visible := model.itemRows()
	if visible <= 0 {
		return ""
	}

	if len(model.cart.Items) == 0 {
		placeholder := lipgloss.NewStyle().
			Foreground(model.theme.FaintText).
			Render(" Cart is empty — scan a tag to add items")
		lines := make([]string, visible)
		lines[0] = placeholder
		return strings.Join(lines, "\n")
	}

	tagStyle := lipgloss.NewStyle().Foreground(model.theme.FaintText)
	nameStyle := lipgloss.NewStyle().Foreground(model.theme.NormalText)
	categoryStyle := lipgloss.NewStyle().Foreground(model.theme.FaintText)
	priceStyle := lipgloss.NewStyle().Foreground(model.theme.PriceForeground)

	var rows []string
	for index := model.scrollOffset; index < model.scrollOffset+visible && index < len(model.cart.Items); index++ {
		item := model.cart.Items[index]
		left := fmt.Sprintf(" %s  %s",
			tagStyle.Render(item.TagID),
			nameStyle.Render(item.Name),
		)
		if item.Category != "" {
			left += categoryStyle.Render("  (" + item.Category + ")")
		}
		price := priceStyle.Render(formatPrice(item.Price))

		gap := model.width - lipgloss.Width(left) - lipgloss.Width(price) - 1
		if gap < 1 {
			gap = 1
		}
		rows = append(rows, left+strings.Repeat(" ", gap)+price+" ")
	}

	for len(rows) < visible {
		rows = append(rows, "")
	}
	return strings.Join(rows, "\n")
}

// renderTotal renders the running total as returned by the backend.
// The client never re-sums item prices.
func (model Model) renderTotal() string {
	label := lipgloss.NewStyle().
		Foreground(model.theme.NormalText).
		Render(fmt.Sprintf(" %d item(s)", len(model.cart.Items)))
	total := lipgloss.NewStyle().
		Bold(true).
		Foreground(model.theme.TotalForeground).
		Render("Total: " + formatPrice(model.cart.Total))

	gap := model.width - lipgloss.Width(label) - lipgloss.Width(total) - 1
	if gap < 1 {
		gap = 1
	}
	return label + strings.Repeat(" ", gap) + total + " "
}

// renderLastScan renders the most recent scan outcome, or a blank line
// when there is none.
func (model Model) renderLastScan() string {
	if model.lastScan == nil {
		return ""
	}
	style := lipgloss.NewStyle().Foreground(model.theme.FaintText)
	return style.Render(fmt.Sprintf(" last scan: %s %s (%s)",
		model.lastScan.Product,
		model.lastScan.Action,
		formatPrice(model.lastScan.Price),
	))
}

// renderQuickTags renders the numbered quick-scan shortcuts derived
// from the catalog. Hidden (blank line) when the catalog failed to
// load.
func (model Model) renderQuickTags() string {
	if len(model.quickTags) == 0 {
		return ""
	}

	numberStyle := lipgloss.NewStyle().Foreground(model.theme.HeaderForeground).Bold(true)
	nameStyle := lipgloss.NewStyle().Foreground(model.theme.FaintText)

	parts := make([]string, 0, len(model.quickTags))
	for index, tag := range model.quickTags {
		product := model.catalog[tag]
		parts = append(parts,
			numberStyle.Render(strconv.Itoa(index+1))+
				nameStyle.Render(":"+product.Name))
	}
	return " " + strings.Join(parts, "  ")
}

// renderStatusLine renders the tag entry bar while it is active,
// otherwise the current notice, otherwise a blank line. A single line
// so the layout never shifts.
func (model Model) renderStatusLine() string {
	if view := model.scanInput.View(model.theme, model.width); view != "" {
		return view
	}
	if model.notice != nil {
		return lipgloss.NewStyle().
			Bold(true).
			Foreground(model.theme.NoticeColor(string(model.notice.Severity))).
			Width(model.width).
			Render(" " + model.notice.Message)
	}
	return ""
}

// renderHelp renders the key binding help bar.
func (model Model) renderHelp() string {
	style := lipgloss.NewStyle().Foreground(model.theme.HelpText)
	entries := []string{
		"s scan", "1-9 quick scan", "c clear", "x checkout", "j/k scroll", "q quit",
	}
	return style.Render(" " + strings.Join(entries, "  ·  "))
}
