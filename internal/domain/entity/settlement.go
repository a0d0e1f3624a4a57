package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/salonkit/settlement-api/internal/domain/enum"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Settlement is the record of one organization's business day, from cash
// drawer open to close. At most one row exists per (organization, date);
// a day without a row is still pending.
//
// OpeningCash is fixed at open. ClosingCash, CashDifference, ClosedBy,
// Notes and ClosedAt are set once at close and never change afterwards.
type Settlement struct {
	ID             uuid.UUID             `gorm:"type:uuid;primary_key" json:"id"`
	OrganizationID uuid.UUID             `gorm:"type:uuid;not null;uniqueIndex:idx_settlements_org_date" json:"organization_id"`
	SettlementDate time.Time             `gorm:"type:date;not null;uniqueIndex:idx_settlements_org_date" json:"settlement_date"`
	Status         enum.SettlementStatus `gorm:"size:20;not null;default:'open';index" json:"status"`

	OpeningCash decimal.Decimal  `gorm:"type:decimal(12,2);not null" json:"opening_cash"`
	ClosingCash *decimal.Decimal `gorm:"type:decimal(12,2)" json:"closing_cash,omitempty"`
	// CashDifference = closing cash counted at the drawer minus the expected
	// cash computed by the reconciliation calculator. Positive is a surplus,
	// negative a shortage.
	CashDifference *decimal.Decimal `gorm:"type:decimal(12,2)" json:"cash_difference,omitempty"`

	OpenedBy *uuid.UUID `gorm:"type:uuid" json:"opened_by,omitempty"`
	ClosedBy *uuid.UUID `gorm:"type:uuid" json:"closed_by,omitempty"`
	OpenedAt *time.Time `json:"opened_at,omitempty"`
	ClosedAt *time.Time `json:"closed_at,omitempty"`

	Notes string `gorm:"type:text" json:"notes,omitempty"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Organization Organization       `gorm:"foreignKey:OrganizationID" json:"-"`
	Records      []CashDrawerRecord `gorm:"foreignKey:SettlementID" json:"records,omitempty"`
}

// BeforeCreate generates a UUID before creating a new settlement
func (s *Settlement) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Settlement model
func (Settlement) TableName() string {
	return "settlements"
}

// IsOpen reports whether the settlement still accepts cash operations
func (s *Settlement) IsOpen() bool {
	return s.Status == enum.SettlementStatusOpen
}

// IsClosed reports whether the settlement has reached its terminal state
func (s *Settlement) IsClosed() bool {
	return s.Status == enum.SettlementStatusClosed
}
