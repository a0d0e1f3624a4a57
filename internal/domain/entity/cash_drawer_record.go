package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/salonkit/settlement-api/internal/domain/enum"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CashDrawerRecord is one entry in the append-only cash drawer ledger of a
// settlement. Ordered by sequence the records form a chain: each record's
// BalanceBefore equals the previous record's BalanceAfter, starting from
// zero at the open record.
//
// For open and close records Amount is the counted cash at that instant;
// for deposits and withdrawals it is the delta applied to the balance.
// Balance fields are always derived server-side, never accepted from callers.
type CashDrawerRecord struct {
	ID             uuid.UUID          `gorm:"type:uuid;primary_key" json:"id"`
	SettlementID   uuid.UUID          `gorm:"type:uuid;not null;index" json:"settlement_id"`
	OrganizationID uuid.UUID          `gorm:"type:uuid;not null;index" json:"organization_id"`
	OperationType  enum.OperationType `gorm:"size:20;not null" json:"operation_type"`

	Amount        decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"amount"`
	BalanceBefore decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"balance_before"`
	BalanceAfter  decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"balance_after"`

	Reason     string     `gorm:"type:text" json:"reason,omitempty"`
	OperatedBy *uuid.UUID `gorm:"type:uuid" json:"operated_by,omitempty"`

	// Sequence is assigned by the database and strictly increases across
	// inserts, so replaying records in sequence order always reproduces
	// the balance chain even when two records share a timestamp.
	Sequence uint64 `gorm:"column:seq;autoIncrement;not null;uniqueIndex" json:"sequence"`

	CreatedAt time.Time `gorm:"index" json:"created_at"`

	// Relationships
	Settlement Settlement `gorm:"foreignKey:SettlementID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new cash drawer record
func (r *CashDrawerRecord) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the CashDrawerRecord model
func (CashDrawerRecord) TableName() string {
	return "cash_drawer_records"
}
