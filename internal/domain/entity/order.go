package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/salonkit/settlement-api/internal/domain/enum"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Order is an order fact in the order & payment ledger. The settlement
// engine never mutates orders beyond recording them; it only aggregates
// them into daily stats.
type Order struct {
	ID             uuid.UUID        `gorm:"type:uuid;primary_key" json:"id"`
	OrganizationID uuid.UUID        `gorm:"type:uuid;not null;index" json:"organization_id"`
	OrderDate      time.Time        `gorm:"not null;index" json:"order_date"`
	Status         enum.OrderStatus `gorm:"size:20;not null;default:'pending';index" json:"status"`
	PaymentMethod  enum.PaymentMethod `gorm:"size:20;not null" json:"payment_method"`
	Total          decimal.Decimal  `gorm:"type:decimal(12,2);not null" json:"total"`
	CustomerName   string           `gorm:"size:255" json:"customer_name,omitempty"`
	CreatedAt      time.Time        `json:"created_at"`
	UpdatedAt      time.Time        `json:"updated_at"`
	DeletedAt      gorm.DeletedAt   `gorm:"index" json:"-"`

	// Relationships
	Organization Organization `gorm:"foreignKey:OrganizationID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new order
func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Order model
func (Order) TableName() string {
	return "orders"
}
