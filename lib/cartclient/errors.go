// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cartclient

import (
	"errors"
	"fmt"
)

// APIError represents a non-2xx response from the cart backend. The
// backend returns JSON error bodies with an "error" message where it
// can; otherwise Message carries the raw body.
type APIError struct {
	// StatusCode is the HTTP response status code.
	StatusCode int

	// Message is the error description from the backend.
	Message string
}

func (err *APIError) Error() string {
	return fmt.Sprintf("cartclient: HTTP %d: %s", err.StatusCode, err.Message)
}

// CheckoutError is a structured application-level checkout rejection:
// the backend answered 200 but the body carried an "error" field
// instead of a receipt. Its message is meant to be shown to the
// operator verbatim.
type CheckoutError struct {
	Message string
}

func (err *CheckoutError) Error() string {
	return err.Message
}

// IsNotFound reports whether err is a backend 404 Not Found response
// (unknown cart or unknown tag).
func IsNotFound(err error) bool {
	var apiError *APIError
	return errors.As(err, &apiError) && apiError.StatusCode == 404
}

// IsCheckoutRejected reports whether err is a structured checkout
// rejection rather than a transport or HTTP-level failure.
func IsCheckoutRejected(err error) bool {
	var checkoutError *CheckoutError
	return errors.As(err, &checkoutError)
}
