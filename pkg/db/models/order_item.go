package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/hadyba/hadyshop/pkg/types"
)

// OrderItem freezes the cart line at submission time. ProductID is nullable so
// hard-removed catalog rows do not orphan past orders.
type OrderItem struct {
	ID        uuid.UUID    `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	OrderID   uuid.UUID    `gorm:"column:order_id;type:uuid;not null;index"`
	ProductID *uuid.UUID   `gorm:"column:product_id;type:uuid"`
	Name      string       `gorm:"column:name;not null"`
	Image     *types.Image `gorm:"column:image;type:jsonb;serializer:json"`
	Size      string       `gorm:"column:size;not null"`
	Color     string       `gorm:"column:color;not null"`
	UnitPrice int64        `gorm:"column:unit_price;not null"`
	Quantity  int          `gorm:"column:quantity;not null"`
	Price     int64        `gorm:"column:price;not null"`
	CreatedAt time.Time    `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time    `gorm:"column:updated_at;autoUpdateTime"`
}
