// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package tui provides shared terminal user interface primitives for
// cartwatch's interactive dashboard. Built on bubbletea (Elm
// architecture), these components handle the common patterns: the
// color theme and ANSI-aware overlay splicing used for modal views.
//
// The dashboard (lib/cartui) imports this package for consistent look
// and behavior; it owns its own data source, layout, and
// domain-specific rendering.
package tui
