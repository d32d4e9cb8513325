// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cartui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/cartwatch/cartwatch/lib/cartclient"
	"github.com/cartwatch/cartwatch/lib/tui"
)

const (
	receiptMinWidth = 34
	receiptMaxWidth = 56
)

// renderReceipt renders the checkout receipt as a bordered modal and
// returns its lines plus the anchor position that centers it in a
// width x height window. The modal is spliced over the main view, so
// every line must have uniform display width.
func renderReceipt(receipt cartclient.Receipt, theme Theme, width, height int) (lines []string, anchorX, anchorY int) {
	background := lipgloss.NewStyle().
		Background(theme.ModalBackground).
		Foreground(theme.ModalForeground)
	title := lipgloss.NewStyle().
		Background(theme.ModalBackground).
		Foreground(theme.HeaderForeground).
		Bold(true)
	faint := lipgloss.NewStyle().
		Background(theme.ModalBackground).
		Foreground(theme.FaintText)
	price := lipgloss.NewStyle().
		Background(theme.ModalBackground).
		Foreground(theme.PriceForeground)
	total := lipgloss.NewStyle().
		Background(theme.ModalBackground).
		Foreground(theme.TotalForeground).
		Bold(true)

	innerWidth := receiptInnerWidth(receipt, width)

	var body []string
	pad := func(content string) {
		body = append(body, tui.PadOverlayLine(content, innerWidth, background))
	}

	pad(title.Render("Receipt " + receipt.ReceiptID))
	pad(faint.Render(strings.Repeat("─", innerWidth)))

	for _, item := range receipt.Items {
		pad(receiptRow(
			background.Render(item.Name),
			price.Render(formatPrice(item.Price)),
			innerWidth, background))
	}
	if len(receipt.Items) == 0 {
		pad(faint.Render("(no items)"))
	}

	pad(faint.Render(strings.Repeat("─", innerWidth)))
	pad(receiptRow(
		background.Render("Total"),
		total.Render(formatPrice(receipt.Total)),
		innerWidth, background))
	pad(faint.Render("Esc to close"))

	border := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.BorderColor).
		BorderBackground(theme.ModalBackground)
	boxed := border.Render(strings.Join(body, "\n"))
	lines = strings.Split(boxed, "\n")

	modalWidth := innerWidth + 4 // inner + one space padding + border, each side
	anchorX = (width - modalWidth) / 2
	if anchorX < 0 {
		anchorX = 0
	}
	anchorY = (height - len(lines)) / 2
	if anchorY < 0 {
		anchorY = 0
	}
	return lines, anchorX, anchorY
}

// receiptRow lays out a left label and right-aligned amount across the
// modal's inner width.
func receiptRow(left, right string, innerWidth int, background lipgloss.Style) string {
	gap := innerWidth - ansi.StringWidth(left) - ansi.StringWidth(right)
	if gap < 1 {
		gap = 1
	}
	return left + background.Render(strings.Repeat(" ", gap)) + right
}

// receiptInnerWidth picks the content width: wide enough for the
// longest line, clamped to fit the window.
func receiptInnerWidth(receipt cartclient.Receipt, width int) int {
	widest := len("Receipt ") + len(receipt.ReceiptID)
	for _, item := range receipt.Items {
		needed := ansi.StringWidth(item.Name) + len(formatPrice(item.Price)) + 2
		if needed > widest {
			widest = needed
		}
	}

	innerWidth := widest
	if innerWidth < receiptMinWidth {
		innerWidth = receiptMinWidth
	}
	if innerWidth > receiptMaxWidth {
		innerWidth = receiptMaxWidth
	}
	if max := width - 6; max > 0 && innerWidth > max {
		innerWidth = max
	}
	return innerWidth
}
