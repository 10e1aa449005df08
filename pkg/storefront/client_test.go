package storefront

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestClientAttachesBearerToken(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data":{"items":[],"total":0}}`))
	}))
	defer server.Close()

	client, err := NewClient(server.URL, WithTokenProvider(func() string { return "token-123" }))
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	var cart Cart
	if err := client.do(context.Background(), http.MethodGet, "/cart", nil, &cart); err != nil {
		t.Fatalf("do: %v", err)
	}
	if gotAuth != "Bearer token-123" {
		t.Fatalf("unexpected authorization header: %q", gotAuth)
	}
}

func TestClientOmitsAuthWithoutToken(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{"data":[]}`))
	}))
	defer server.Close()

	client, err := NewClient(server.URL)
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	if err := client.do(context.Background(), http.MethodGet, "/products", nil, nil); err != nil {
		t.Fatalf("do: %v", err)
	}
	if gotAuth != "" {
		t.Fatalf("expected no authorization header, got %q", gotAuth)
	}
}

func TestClientParsesStructuredError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusConflict)
		w.Write([]byte(`{"error":{"code":"INSUFFICIENT_STOCK","message":"Stock insuffisant. Seulement 2 disponible(s).","details":{"availableStock":2}}}`))
	}))
	defer server.Close()

	client, err := NewClient(server.URL)
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	err = client.do(context.Background(), http.MethodPost, "/cart/add", map[string]any{}, nil)
	reqErr, ok := err.(*RequestError)
	if !ok {
		t.Fatalf("expected RequestError got %T", err)
	}
	if reqErr.StatusCode != http.StatusConflict {
		t.Fatalf("unexpected status: %d", reqErr.StatusCode)
	}
	if reqErr.Message != "Stock insuffisant. Seulement 2 disponible(s)." {
		t.Fatalf("unexpected message: %q", reqErr.Message)
	}
	if reqErr.Response == nil || reqErr.Response.AvailableStock == nil || *reqErr.Response.AvailableStock != 2 {
		t.Fatalf("expected availableStock 2 got %+v", reqErr.Response)
	}
}

func TestClientNormalizesTransportFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	client, err := NewClient(server.URL)
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	err = client.do(context.Background(), http.MethodGet, "/cart", nil, nil)
	if _, ok := err.(*NetworkError); !ok {
		t.Fatalf("expected NetworkError got %T", err)
	}
}

func TestNewClientRequiresBaseURL(t *testing.T) {
	if _, err := NewClient("  "); err == nil {
		t.Fatal("expected error for empty base url")
	}
}
