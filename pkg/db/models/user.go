package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/hadyba/hadyshop/pkg/enums"
)

// User is the account record the storefront and admin surfaces act for.
// Credential handling lives outside this service; only profile data is kept.
type User struct {
	ID        uuid.UUID      `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name      string         `gorm:"column:name;not null"`
	Email     string         `gorm:"column:email;not null;uniqueIndex"`
	Phone     *string        `gorm:"column:phone"`
	Adresse   *string        `gorm:"column:adresse"`
	Role      enums.UserRole `gorm:"column:role;not null;default:'client'"`
	CreatedAt time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time      `gorm:"column:updated_at;autoUpdateTime"`
}
