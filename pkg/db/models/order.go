package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/hadyba/hadyshop/pkg/enums"
)

// Order is created from the active cart at submission. Status follows the
// storefront lifecycle: "en cours" until delivery or an in-window cancel.
type Order struct {
	ID             uuid.UUID           `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	UserID         uuid.UUID           `gorm:"column:user_id;type:uuid;not null;index"`
	Items          []OrderItem         `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	Adresse        string              `gorm:"column:adresse;not null"`
	AdditionalInfo *string             `gorm:"column:additional_info"`
	PaymentMethod  enums.PaymentMethod `gorm:"column:payment_method;not null"`
	PhoneNumber    string              `gorm:"column:phone_number;not null"`
	PaymentStatus  enums.PaymentStatus `gorm:"column:payment_status;not null;default:'en attente'"`
	Status         enums.OrderStatus   `gorm:"column:status;not null;default:'en cours'"`
	Total          int64               `gorm:"column:total;not null"`
	CancelledAt    *time.Time          `gorm:"column:cancelled_at"`
	CreatedAt      time.Time           `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time           `gorm:"column:updated_at;autoUpdateTime"`
}
