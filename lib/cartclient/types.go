// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cartclient

// LineItem is a single scanned product in a cart. Identity within a
// cart is the tag ID.
type LineItem struct {
	TagID    string  `json:"tag_id"`
	Name     string  `json:"name"`
	Category string  `json:"category"`
	Price    float64 `json:"price"`
}

// Cart is the server-authoritative cart state: an ordered item list
// plus a total. The total is whatever the backend computed — clients
// display it as-is and never re-sum item prices.
type Cart struct {
	Items []LineItem `json:"items"`
	Total float64    `json:"total"`
}

// Product is a catalog entry: the metadata a tag ID maps to.
type Product struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// Scan actions reported by the backend. A scan of a tag already in the
// cart removes it; otherwise it is added.
const (
	ActionAdded   = "added"
	ActionRemoved = "removed"
)

// ScanResult is the backend's response to a tag scan: what happened,
// to which product, and the resulting authoritative cart.
type ScanResult struct {
	Action  string  `json:"action"`
	Product string  `json:"product"`
	Price   float64 `json:"price"`
	Cart    Cart    `json:"cart"`
}

// ReceiptItem is one purchased line on a checkout receipt.
type ReceiptItem struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// Receipt is the immutable summary of a completed checkout.
type Receipt struct {
	ReceiptID string        `json:"receiptId"`
	Items     []ReceiptItem `json:"items"`
	Total     float64       `json:"total"`
}
