// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import "github.com/charmbracelet/lipgloss"

// Theme defines the color palette and visual properties for cartwatch's
// terminal UI. All colors use lipgloss ANSI 256-color codes for broad
// terminal compatibility.
//
// The fields cover both universal chrome (text, borders)
// and the semantic categories that recur across the dashboard:
// connectivity state and notice severity.
type Theme struct {
	// Text colors.
	NormalText lipgloss.Color
	FaintText  lipgloss.Color

	// Connectivity badge.
	ConnectivityUp   lipgloss.Color
	ConnectivityDown lipgloss.Color

	// Notice severity colors.
	NoticeSuccess lipgloss.Color
	NoticeError   lipgloss.Color
	NoticeWarning lipgloss.Color
	NoticeInfo    lipgloss.Color

	// UI chrome.
	HeaderForeground lipgloss.Color
	BorderColor      lipgloss.Color
	HelpText         lipgloss.Color

	// Price and total emphasis.
	PriceForeground lipgloss.Color
	TotalForeground lipgloss.Color

	// Modal overlays (the checkout receipt).
	ModalForeground lipgloss.Color
	ModalBackground lipgloss.Color
}

// NoticeColor returns the color for a notice severity string.
// Recognizes the four severities (success, error, warning, info) and
// returns FaintText for unknown values.
func (theme Theme) NoticeColor(severity string) lipgloss.Color {
	switch severity {
	case "success":
		return theme.NoticeSuccess
	case "error":
		return theme.NoticeError
	case "warning":
		return theme.NoticeWarning
	case "info":
		return theme.NoticeInfo
	default:
		return theme.FaintText
	}
}

// DefaultTheme is the built-in dark-terminal color scheme. Designed for
// 256-color terminals with a dark background (the common case for
// development environments and tmux sessions).
var DefaultTheme = Theme{
	NormalText: lipgloss.Color("252"),
	FaintText:  lipgloss.Color("245"),

	ConnectivityUp:   lipgloss.Color("114"), // green
	ConnectivityDown: lipgloss.Color("196"), // bright red

	NoticeSuccess: lipgloss.Color("114"), // green
	NoticeError:   lipgloss.Color("196"), // bright red
	NoticeWarning: lipgloss.Color("208"), // orange
	NoticeInfo:    lipgloss.Color("75"),  // blue

	HeaderForeground: lipgloss.Color("255"),
	BorderColor:      lipgloss.Color("240"),
	HelpText:         lipgloss.Color("241"),

	PriceForeground: lipgloss.Color("220"), // yellow/amber
	TotalForeground: lipgloss.Color("255"),

	ModalForeground: lipgloss.Color("252"),
	ModalBackground: lipgloss.Color("237"), // slightly lighter than terminal background
}
