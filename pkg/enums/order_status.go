package enums

// OrderStatus mirrors the French statuses the storefront displays.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "en cours"
	OrderStatusDelivered OrderStatus = "livrée"
	OrderStatusCancelled OrderStatus = "annulée"
)

// Terminal reports whether no further transition is allowed from the status.
func (s OrderStatus) Terminal() bool {
	switch s {
	case OrderStatusDelivered, OrderStatusCancelled:
		return true
	default:
		return false
	}
}

// Valid reports whether the status is one of the known values.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusDelivered, OrderStatusCancelled:
		return true
	default:
		return false
	}
}
