package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/hadyba/hadyshop/pkg/types"
)

// Product is the catalog listing. Sizes and Colors are the distinct values
// across variants, denormalized for storefront filters; Stock is the aggregate
// across variants and is recomputed whenever variants change.
type Product struct {
	ID          uuid.UUID        `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name        string           `gorm:"column:name;not null"`
	Description *string          `gorm:"column:description"`
	Price       int64            `gorm:"column:price;not null"`
	CategoryID  uuid.UUID        `gorm:"column:category_id;type:uuid;not null"`
	Category    *Category        `gorm:"foreignKey:CategoryID"`
	Images      types.Images     `gorm:"column:images;type:jsonb;serializer:json"`
	Sizes       pq.StringArray   `gorm:"column:sizes;type:text[]"`
	Colors      pq.StringArray   `gorm:"column:colors;type:text[]"`
	Stock       int              `gorm:"column:stock;not null;default:0"`
	Variants    []ProductVariant `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	DeletedAt   gorm.DeletedAt   `gorm:"column:deleted_at;index"`
	CreatedAt   time.Time        `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time        `gorm:"column:updated_at;autoUpdateTime"`
}
