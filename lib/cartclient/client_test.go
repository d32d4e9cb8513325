// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cartclient

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
)

// newTestClient creates a Client backed by the given httptest.Server.
func newTestClient(t *testing.T, server *httptest.Server) *Client {
	t.Helper()
	client, err := NewClient(Config{
		BaseURL:    server.URL,
		HTTPClient: server.Client(),
		Logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	return client
}

func TestNewClient_RequiresBaseURL(t *testing.T) {
	_, err := NewClient(Config{})
	if err == nil {
		t.Fatal("expected error for missing BaseURL")
	}
}

func TestNewClient_RejectsBadScheme(t *testing.T) {
	_, err := NewClient(Config{BaseURL: "ftp://cart.example"})
	if err == nil {
		t.Fatal("expected error for non-HTTP scheme")
	}
}

func TestNewClient_TrimsTrailingSlash(t *testing.T) {
	var requestedPath string
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		requestedPath = request.URL.Path
		writer.Write([]byte(`{"products":{}}`))
	}))
	defer server.Close()

	client, err := NewClient(Config{BaseURL: server.URL + "/", HTTPClient: server.Client()})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	if _, err := client.Products(context.Background()); err != nil {
		t.Fatalf("Products: %v", err)
	}
	if requestedPath != "/api/products" {
		t.Errorf("path = %q, want %q", requestedPath, "/api/products")
	}
}

func TestClient_Cart(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		if request.Method != http.MethodGet {
			t.Errorf("method = %s, want GET", request.Method)
		}
		if request.URL.Path != "/api/cart/CART-001" {
			t.Errorf("path = %q, want /api/cart/CART-001", request.URL.Path)
		}
		writer.Header().Set("Content-Type", "application/json")
		writer.Write([]byte(`{"cart":{"items":[{"tag_id":"A1B2","name":"Milk","category":"Dairy","price":40}],"total":40}}`))
	}))
	defer server.Close()

	cart, err := newTestClient(t, server).Cart(context.Background(), "CART-001")
	if err != nil {
		t.Fatalf("Cart: %v", err)
	}
	if len(cart.Items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(cart.Items))
	}
	if cart.Items[0].TagID != "A1B2" || cart.Items[0].Name != "Milk" {
		t.Errorf("unexpected item: %+v", cart.Items[0])
	}
	if cart.Total != 40 {
		t.Errorf("total = %v, want 40", cart.Total)
	}
}

func TestClient_Scan(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		if request.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", request.Method)
		}
		if request.URL.Path != "/api/scan" {
			t.Errorf("path = %q, want /api/scan", request.URL.Path)
		}
		var body struct {
			TagID  string `json:"tag_id"`
			CartID string `json:"cart_id"`
		}
		if err := json.NewDecoder(request.Body).Decode(&body); err != nil {
			t.Errorf("decoding request body: %v", err)
		}
		if body.TagID != "A1B2" || body.CartID != "CART-001" {
			t.Errorf("unexpected request body: %+v", body)
		}
		writer.Header().Set("Content-Type", "application/json")
		writer.Write([]byte(`{"action":"added","product":"Milk","price":40,"cart":{"items":[{"tag_id":"A1B2","name":"Milk","category":"Dairy","price":40}],"total":40}}`))
	}))
	defer server.Close()

	result, err := newTestClient(t, server).Scan(context.Background(), "CART-001", "A1B2")
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if result.Action != ActionAdded {
		t.Errorf("action = %q, want %q", result.Action, ActionAdded)
	}
	if result.Product != "Milk" || result.Price != 40 {
		t.Errorf("unexpected scan result: %+v", result)
	}
	if result.Cart.Total != 40 {
		t.Errorf("cart total = %v, want 40", result.Cart.Total)
	}
}

func TestClient_Clear(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		if request.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", request.Method)
		}
		if request.URL.Path != "/api/cart/CART-001/clear" {
			t.Errorf("path = %q, want clear path", request.URL.Path)
		}
		writer.Header().Set("Content-Type", "application/json")
		writer.Write([]byte(`{"cart":{"items":[],"total":0}}`))
	}))
	defer server.Close()

	cart, err := newTestClient(t, server).Clear(context.Background(), "CART-001")
	if err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if len(cart.Items) != 0 || cart.Total != 0 {
		t.Errorf("expected empty cart, got %+v", cart)
	}
}

func TestClient_CheckoutSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		if request.URL.Path != "/api/cart/CART-001/checkout" {
			t.Errorf("path = %q, want checkout path", request.URL.Path)
		}
		writer.Header().Set("Content-Type", "application/json")
		writer.Write([]byte(`{"receipt":{"receiptId":"RCP-9","items":[{"name":"Milk","price":40},{"name":"Bread","price":25}],"total":65}}`))
	}))
	defer server.Close()

	receipt, err := newTestClient(t, server).Checkout(context.Background(), "CART-001")
	if err != nil {
		t.Fatalf("Checkout: %v", err)
	}
	if receipt.ReceiptID != "RCP-9" {
		t.Errorf("receipt ID = %q, want RCP-9", receipt.ReceiptID)
	}
	if len(receipt.Items) != 2 {
		t.Errorf("expected 2 receipt items, got %d", len(receipt.Items))
	}
	if receipt.Total != 65 {
		t.Errorf("total = %v, want 65", receipt.Total)
	}
}

func TestClient_CheckoutStructuredError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		writer.Header().Set("Content-Type", "application/json")
		writer.Write([]byte(`{"error":"payment provider unavailable"}`))
	}))
	defer server.Close()

	_, err := newTestClient(t, server).Checkout(context.Background(), "CART-001")
	if err == nil {
		t.Fatal("expected structured checkout error")
	}
	if !IsCheckoutRejected(err) {
		t.Fatalf("expected CheckoutError, got %T: %v", err, err)
	}
	// The backend's message must survive verbatim — it is shown to the
	// operator as-is.
	if err.Error() != "payment provider unavailable" {
		t.Errorf("message = %q, want backend text verbatim", err.Error())
	}
}

func TestClient_CheckoutEmptyResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		writer.Write([]byte(`{}`))
	}))
	defer server.Close()

	if _, err := newTestClient(t, server).Checkout(context.Background(), "CART-001"); err == nil {
		t.Fatal("expected error for response with neither receipt nor error")
	}
}

func TestClient_Products(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		writer.Header().Set("Content-Type", "application/json")
		writer.Write([]byte(`{"products":{"A1B2":{"name":"Milk","price":40},"C3D4":{"name":"Bread","price":25}}}`))
	}))
	defer server.Close()

	products, err := newTestClient(t, server).Products(context.Background())
	if err != nil {
		t.Fatalf("Products: %v", err)
	}
	if len(products) != 2 {
		t.Fatalf("expected 2 products, got %d", len(products))
	}
	if products["A1B2"].Name != "Milk" || products["A1B2"].Price != 40 {
		t.Errorf("unexpected product: %+v", products["A1B2"])
	}
}

func TestClient_NonSuccessStatusBecomesAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		writer.WriteHeader(http.StatusNotFound)
		writer.Write([]byte(`{"error":"unknown cart"}`))
	}))
	defer server.Close()

	_, err := newTestClient(t, server).Cart(context.Background(), "CART-404")
	if err == nil {
		t.Fatal("expected error for 404")
	}
	if !IsNotFound(err) {
		t.Fatalf("expected APIError 404, got %T: %v", err, err)
	}
	apiError := err.(*APIError)
	if apiError.Message != "unknown cart" {
		t.Errorf("message = %q, want structured error text", apiError.Message)
	}
}

func TestClient_PlainTextErrorBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		writer.WriteHeader(http.StatusBadGateway)
		writer.Write([]byte("upstream exploded"))
	}))
	defer server.Close()

	_, err := newTestClient(t, server).Cart(context.Background(), "CART-001")
	apiError, ok := err.(*APIError)
	if !ok {
		t.Fatalf("expected APIError, got %T: %v", err, err)
	}
	if apiError.StatusCode != http.StatusBadGateway {
		t.Errorf("status = %d, want 502", apiError.StatusCode)
	}
	if apiError.Message != "upstream exploded" {
		t.Errorf("message = %q, want raw body", apiError.Message)
	}
}

func TestClient_TransportFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	server.Close() // refuse all connections

	_, err := newTestClient(t, server).Cart(context.Background(), "CART-001")
	if err == nil {
		t.Fatal("expected transport error against closed server")
	}
	if _, ok := err.(*APIError); ok {
		t.Fatal("transport failure should not be an APIError")
	}
}
