package storefront

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestCanCancelWindowBoundaries(t *testing.T) {
	now := time.Date(2025, 6, 2, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		name    string
		age     time.Duration
		status  string
		allowed bool
	}{
		{"just placed", 0, OrderStatusPending, true},
		{"23h59m", 23*time.Hour + 59*time.Minute, OrderStatusPending, true},
		{"exactly 24h", 24 * time.Hour, OrderStatusPending, false},
		{"25h", 25 * time.Hour, OrderStatusPending, false},
		{"delivered in window", time.Hour, "livrée", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			order := Order{Status: tc.status, CreatedAt: now.Add(-tc.age)}
			if got := CanCancel(order, now); got != tc.allowed {
				t.Fatalf("expected %v got %v", tc.allowed, got)
			}
		})
	}
}

func TestCancelOrderExpiredWindowSkipsRequest(t *testing.T) {
	requests := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
	}))
	defer server.Close()

	client, err := NewClient(server.URL)
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	now := time.Date(2025, 6, 2, 12, 0, 0, 0, time.UTC)
	client.now = func() time.Time { return now }

	order := Order{ID: "o-1", Status: OrderStatusPending, CreatedAt: now.Add(-24 * time.Hour)}
	_, err = client.CancelOrder(context.Background(), order)

	valErr, ok := err.(*ValidationError)
	if !ok {
		t.Fatalf("expected ValidationError got %T", err)
	}
	if valErr.Message != CancelExpiredMessage {
		t.Fatalf("unexpected message: %q", valErr.Message)
	}
	if requests != 0 {
		t.Fatalf("expected no network request, got %d", requests)
	}
}

func TestCancelOrderPostsInsideWindow(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/orders/o-1/cancel" {
			t.Errorf("unexpected %s %s", r.Method, r.URL.Path)
		}
		w.Write([]byte(`{"data":{"id":"o-1","status":"annulée"}}`))
	}))
	defer server.Close()

	client, err := NewClient(server.URL)
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	now := time.Date(2025, 6, 2, 12, 0, 0, 0, time.UTC)
	client.now = func() time.Time { return now }

	order := Order{ID: "o-1", Status: OrderStatusPending, CreatedAt: now.Add(-23*time.Hour - 59*time.Minute)}
	updated, err := client.CancelOrder(context.Background(), order)
	if err != nil {
		t.Fatalf("cancel order: %v", err)
	}
	if updated.Status != "annulée" {
		t.Fatalf("unexpected status: %s", updated.Status)
	}
}

func TestUserOrdersFetchesList(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/orders/user-orders" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Write([]byte(`{"data":[{"id":"o-2","status":"en cours","total":30000},{"id":"o-1","status":"livrée","total":5000}]}`))
	}))
	defer server.Close()

	client, err := NewClient(server.URL)
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	orders, err := client.UserOrders(context.Background())
	if err != nil {
		t.Fatalf("user orders: %v", err)
	}
	if len(orders) != 2 {
		t.Fatalf("expected 2 orders got %d", len(orders))
	}
	if orders[0].ID != "o-2" || orders[0].Total != 30000 {
		t.Fatalf("unexpected first order: %+v", orders[0])
	}
}
