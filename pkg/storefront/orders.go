package storefront

import (
	"context"
	"net/http"
	"time"

	"github.com/hadyba/hadyshop/internal/cancelwindow"
)

// CancelExpiredMessage is shown when the cancellation window has elapsed.
const CancelExpiredMessage = "L'annulation n'est plus possible après 24h"

// OrderStatusPending is the only status a cancel may start from.
const OrderStatusPending = "en cours"

// OrderItem is one frozen line of a submitted order.
type OrderItem struct {
	ID        string `json:"id"`
	ProductID string `json:"productId,omitempty"`
	Name      string `json:"name"`
	Image     *Image `json:"image,omitempty"`
	Size      string `json:"size"`
	Color     string `json:"color"`
	UnitPrice int64  `json:"unitPrice"`
	Quantity  int    `json:"quantity"`
	Price     int64  `json:"price"`
}

// Order is an order as rendered in the account pages.
type Order struct {
	ID             string      `json:"id"`
	Adresse        string      `json:"adresse"`
	AdditionalInfo *string     `json:"additionalInfo,omitempty"`
	PaymentMethod  string      `json:"paymentMethod"`
	PhoneNumber    string      `json:"phoneNumber"`
	PaymentStatus  string      `json:"paymentStatus"`
	Status         string      `json:"status"`
	Total          int64       `json:"total"`
	Items          []OrderItem `json:"items"`
	CancelledAt    *time.Time  `json:"cancelledAt,omitempty"`
	CreatedAt      time.Time   `json:"createdAt"`
}

// UserOrders fetches the caller's orders, newest first.
func (c *Client) UserOrders(ctx context.Context) ([]Order, error) {
	var orders []Order
	if err := c.do(ctx, http.MethodGet, "/orders/user-orders", nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// CanCancel gates display of the cancel action: only pending orders still
// inside the cancellation window qualify.
func CanCancel(order Order, now time.Time) bool {
	return order.Status == OrderStatusPending && cancelwindow.Allows(order.CreatedAt, now)
}

// CancelOrder posts a cancel request for an in-window order. An elapsed
// window is rejected with a fixed message and no network round-trip. Callers
// refetch the order list on success so status is always server-confirmed.
func (c *Client) CancelOrder(ctx context.Context, order Order) (*Order, error) {
	if !cancelwindow.Allows(order.CreatedAt, c.now()) {
		return nil, &ValidationError{Message: CancelExpiredMessage}
	}

	var updated Order
	if err := c.do(ctx, http.MethodPost, "/orders/"+order.ID+"/cancel", nil, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}
