package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/hadyba/hadyshop/pkg/types"
)

// CartItem snapshots the product at add time: name, image and unit price are
// copied so later catalog edits do not rewrite carts. Price is the line price
// (unit price x quantity) at the last settled write.
type CartItem struct {
	ID        uuid.UUID    `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	CartID    uuid.UUID    `gorm:"column:cart_id;type:uuid;not null;index"`
	ProductID uuid.UUID    `gorm:"column:product_id;type:uuid;not null"`
	Product   *Product     `gorm:"foreignKey:ProductID"`
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
