// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cartui

import "time"

// Severity classifies a notice for presentation. It never changes
// behavior — only the color of the notice bar.
type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// Notice is the single transient message slot. At most one notice is
// visible at a time; a new notice replaces the current one immediately
// rather than queueing behind it.
type Notice struct {
	Message  string
	Severity Severity
}

// noticeFadeDelay is how long a notice stays visible before
// auto-dismissing.
const noticeFadeDelay = 3 * time.Second

// noticeFadeMsg is sent after noticeFadeDelay to clear the notice bar.
// The sequence number identifies which notice the fade belongs to: a
// replacement bumps the model's sequence, so a stale fade from a
// superseded notice is ignored and the replacement gets its full
// display time.
type noticeFadeMsg struct {
	seq int
}
