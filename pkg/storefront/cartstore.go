package storefront

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"
)

const stockMessageFormat = "Stock insuffisant. Seulement %d disponible(s)."

// messageTTL is how long transient banner messages stay visible.
const messageTTL = 3 * time.Second

// Image references a hosted asset by URL.
type Image struct {
	URL string `json:"url"`
}

// Variant is the selected size/color pair for a cart line.
type Variant struct {
	Size  string `json:"size"`
	Color string `json:"color"`
}

// Product is the client-side cached product reference attached to a cart
// line. The server cart payload may omit it; MergeItems keeps the local copy.
type Product struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Price  int64   `json:"price"`
	Images []Image `json:"images,omitempty"`
}

// CartItem is one line of the cart as the storefront sees it.
type CartItem struct {
	ID        string   `json:"id"`
	ProductID string   `json:"productId"`
	Product   *Product `json:"product,omitempty"`
	Name      string   `json:"name"`
	Image     *Image   `json:"image,omitempty"`
	Size      string   `json:"size"`
	Color     string   `json:"color"`
	Variant   *Variant `json:"variant,omitempty"`
	UnitPrice int64    `json:"unitPrice"`
	Quantity  int      `json:"quantity"`
	Price     int64    `json:"price"`
}

// Cart is the payload returned by every cart endpoint.
type Cart struct {
	ID    string     `json:"id"`
	Items []CartItem `json:"items"`
	Total int64      `json:"total"`
}

// CartStore holds the client's copy of the cart and is the only legitimate
// writer of it. Reads elsewhere (navigation badge, checkout) subscribe to the
// count instead of refetching independently.
type CartStore struct {
	client *Client

	mu          sync.Mutex
	items       []CartItem
	total       int64
	message     string
	messageTime *time.Timer
	subscribers []func(count int)
}

// NewCartStore builds a store backed by the provided client.
func NewCartStore(client *Client) (*CartStore, error) {
	if client == nil {
		return nil, fmt.Errorf("storefront client required")
	}
	return &CartStore{client: client}, nil
}

// Subscribe registers a listener invoked with the item count after every
// settled state change.
func (s *CartStore) Subscribe(fn func(count int)) {
	if fn == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subscribers = append(s.subscribers, fn)
}

// Items returns a copy of the current lines.
func (s *CartStore) Items() []CartItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]CartItem, len(s.items))
	copy(out, s.items)
	return out
}

// Total returns the current cart total.
func (s *CartStore) Total() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.total
}

// Count returns the number of lines in the cart. The badge counts distinct
// lines, not summed quantities.
func (s *CartStore) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

// Message returns the current transient banner message, empty once cleared.
func (s *CartStore) Message() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.message
}

// FetchCart replaces local state with server truth. Failures fall back to an
// empty cart and a recorded message; they are not propagated so views render
// an empty cart rather than an error page.
func (s *CartStore) FetchCart(ctx context.Context) {
	var cart Cart
	if err := s.client.do(ctx, http.MethodGet, "/cart", nil, &cart); err != nil {
		s.mu.Lock()
		s.items = nil
		s.total = 0
		s.setMessageLocked(err.Error())
		s.notifyLocked()
		s.mu.Unlock()
		return
	}

	s.mu.Lock()
	s.items = cart.Items
	s.total = cart.Total
	s.notifyLocked()
	s.mu.Unlock()
}

type addItemRequest struct {
	ProductID   string  `json:"productId"`
	VariantInfo Variant `json:"variantInfo"`
	Quantity    int     `json:"quantity"`
}

// AddItem posts a new line and refetches the cart so the shared count stays
// in sync. A missing size or color fails before any request is sent.
func (s *CartStore) AddItem(ctx context.Context, productID string, variant Variant, quantity int) error {
	if variant.Size == "" || variant.Color == "" {
		return &ValidationError{Message: "Veuillez sélectionner une taille et une couleur"}
	}
	if quantity < 1 {
		return &ValidationError{Message: "La quantité doit être au moins 1"}
	}

	err := s.client.do(ctx, http.MethodPost, "/cart/add", addItemRequest{
		ProductID:   productID,
		VariantInfo: variant,
		Quantity:    quantity,
	}, nil)
	if err != nil {
		s.mu.Lock()
		s.setMessageLocked(stockAwareMessage(err))
		s.mu.Unlock()
		return err
	}

	s.FetchCart(ctx)

	s.mu.Lock()
	s.setMessageLocked("Produit ajouté au panier")
	s.mu.Unlock()
	return nil
}

type updateQuantityRequest struct {
	ItemID   string `json:"itemId"`
	Quantity int    `json:"quantity"`
}

// UpdateQuantity applies the new quantity optimistically, then reconciles
// against the server response or rolls back to the pre-update snapshot.
func (s *CartStore) UpdateQuantity(ctx context.Context, itemID string, quantity int) error {
	if quantity < 1 {
		return s.RemoveItem(ctx, itemID)
	}

	s.mu.Lock()
	snapshotItems := make([]CartItem, len(s.items))
	copy(snapshotItems, s.items)
	snapshotTotal := s.total

	localByID := make(map[string]CartItem, len(s.items))
	for _, item := range s.items {
		localByID[item.ID] = item
	}

	for i := range s.items {
		if s.items[i].ID != itemID {
			continue
		}
		old := s.items[i].Quantity
		if old > 0 {
			s.items[i].Price = s.items[i].Price / int64(old) * int64(quantity)
		}
		s.items[i].Quantity = quantity
	}
	s.total = totalOf(s.items)
	s.notifyLocked()
	s.mu.Unlock()

	var cart Cart
	err := s.client.do(ctx, http.MethodPut, "/cart/update", updateQuantityRequest{
		ItemID:   itemID,
		Quantity: quantity,
	}, &cart)

	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		s.items = snapshotItems
		s.total = snapshotTotal
		s.setMessageLocked(stockAwareMessage(err))
		s.notifyLocked()
		return err
	}

	s.items = MergeItems(cart.Items, localByID)
	s.total = cart.Total
	s.setMessageLocked("Quantité mise à jour !")
	s.notifyLocked()
	return nil
}

// RemoveItem deletes a line and replaces local state with the returned cart,
// or an empty cart when the server sends none back.
func (s *CartStore) RemoveItem(ctx context.Context, itemID string) error {
	var cart Cart
	err := s.client.do(ctx, http.MethodDelete, "/cart/remove/"+itemID, nil, &cart)

	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		s.setMessageLocked(err.Error())
		return err
	}

	s.items = cart.Items
	s.total = cart.Total
	s.setMessageLocked("Article supprimé du panier !")
	s.notifyLocked()
	return nil
}

// MergeItems reconciles server-returned lines with locally cached nested
// references. The server may omit or under-populate product and variant
// copies on write responses, so when a local line with the same id exists
// the local references win; the server's copy is used only where the local
// line has none.
func MergeItems(serverItems []CartItem, localByID map[string]CartItem) []CartItem {
	merged := make([]CartItem, len(serverItems))
	for i, item := range serverItems {
		if local, ok := localByID[item.ID]; ok {
			if local.Product != nil {
				item.Product = local.Product
			}
			if local.Variant != nil {
				item.Variant = local.Variant
			}
			if local.Image != nil {
				item.Image = local.Image
			}
		}
		merged[i] = item
	}
	return merged
}

func stockAwareMessage(err error) string {
	if reqErr, ok := err.(*RequestError); ok {
		if reqErr.Response != nil && reqErr.Response.AvailableStock != nil {
			return fmt.Sprintf(stockMessageFormat, *reqErr.Response.AvailableStock)
		}
	}
	return err.Error()
}

func totalOf(items []CartItem) int64 {
	var total int64
	for _, item := range items {
		total += item.Price
	}
	return total
}

// setMessageLocked records a transient message and arms its expiry. Callers
// hold s.mu.
func (s *CartStore) setMessageLocked(message string) {
	s.message = message
	if s.messageTime != nil {
		s.messageTime.Stop()
	}
	s.messageTime = time.AfterFunc(messageTTL, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if s.message == message {
			s.message = ""
		}
	})
}

// notifyLocked pushes the current line count to subscribers. Callers hold
// s.mu.
func (s *CartStore) notifyLocked() {
	count := len(s.items)
	for _, fn := range s.subscribers {
		fn(count)
	}
}
