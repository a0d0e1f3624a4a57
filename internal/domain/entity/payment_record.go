package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/salonkit/settlement-api/internal/domain/enum"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// PaymentRecord is a payment fact in the order & payment ledger. Completed
// payments are what the daily stats aggregator classifies into revenue
// channels; refunded and cancelled payments are excluded from revenue.
type PaymentRecord struct {
	ID             uuid.UUID          `gorm:"type:uuid;primary_key" json:"id"`
	OrganizationID uuid.UUID          `gorm:"type:uuid;not null;index" json:"organization_id"`
	OrderID        *uuid.UUID         `gorm:"type:uuid;index" json:"order_id,omitempty"`
	AppointmentID  *uuid.UUID         `gorm:"type:uuid;index" json:"appointment_id,omitempty"`
	PaymentMethod  enum.PaymentMethod `gorm:"size:20;not null" json:"payment_method"`
	Amount         decimal.Decimal    `gorm:"type:decimal(12,2);not null" json:"amount"`
	Currency       string             `gorm:"size:10;default:'TWD'" json:"currency"`
	Status         enum.PaymentStatus `gorm:"size:20;not null;default:'pending';index" json:"status"`
	ReceivedBy     *uuid.UUID         `gorm:"type:uuid" json:"received_by,omitempty"`
	PaidAt         *time.Time         `gorm:"index" json:"paid_at,omitempty"`
	CreatedAt      time.Time          `json:"created_at"`
	UpdatedAt      time.Time          `json:"updated_at"`
	DeletedAt      gorm.DeletedAt     `gorm:"index" json:"-"`

	// Relationships
	Organization Organization `gorm:"foreignKey:OrganizationID" json:"-"`
	Order        *Order       `gorm:"foreignKey:OrderID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new payment record
func (p *PaymentRecord) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the PaymentRecord model
func (PaymentRecord) TableName() string {
	return "payment_records"
}
