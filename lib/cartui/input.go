// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cartui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ScanInput is the free-text tag entry bar. While active it captures
// keystrokes; submitting hands the trimmed tag to the scan dispatcher.
type ScanInput struct {
	// Input is the current tag text.
	Input string

	// Active is true when the entry bar has keyboard focus (the user
	// pressed the scan key to start typing).
	Active bool
}

// Value returns the tag identifier to scan: the input with surrounding
// whitespace trimmed. An empty value means there is nothing to scan.
func (input *ScanInput) Value() string {
	return strings.TrimSpace(input.Input)
}

// HandleRune appends a typed character to the input.
func (input *ScanInput) HandleRune(character rune) {
	input.Input += string(character)
}

// HandleBackspace removes the last character from the input. Returns
// true if the input changed.
func (input *ScanInput) HandleBackspace() bool {
	if len(input.Input) == 0 {
		return false
	}
	runes := []rune(input.Input)
	input.Input = string(runes[:len(runes)-1])
	return true
}

// Clear resets the input and deactivates it.
func (input *ScanInput) Clear() {
	input.Input = ""
	input.Active = false
}

// View renders the entry bar. When active, shows the input with a
// cursor. When inactive, returns empty string (hidden).
func (input *ScanInput) View(theme Theme, width int) string {
	if !input.Active {
		return ""
	}

	style := lipgloss.NewStyle().
		Foreground(theme.NormalText).
		Width(width)

	cursor := lipgloss.NewStyle().
		Foreground(theme.HeaderForeground).
		Bold(true).
		Render("▎")
	return style.Render(" scan tag: " + input.Input + cursor)
}
