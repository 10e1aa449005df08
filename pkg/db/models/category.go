package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/hadyba/hadyshop/pkg/types"
)

// Category groups products; deletion is soft so listings can be restored.
type Category struct {
	ID          uuid.UUID      `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name        string         `gorm:"column:name;not null;uniqueIndex"`
	Description *string        `gorm:"column:description"`
	Image       *types.Image   `gorm:"column:image;type:jsonb;serializer:json"`
	DeletedAt   gorm.DeletedAt `gorm:"column:deleted_at;index"`
	CreatedAt   time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time      `gorm:"column:updated_at;autoUpdateTime"`
}
