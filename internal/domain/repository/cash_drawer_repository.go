package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/salonkit/settlement-api/internal/domain/entity"
)

// CashDrawerRepository defines the interface for the append-only cash
// drawer ledger. Records are never updated or deleted.
type CashDrawerRepository interface {
	Append(ctx context.Context, record *entity.CashDrawerRecord) error
	// ListBySettlement returns the ledger ordered by creation time ascending.
	ListBySettlement(ctx context.Context, settlementID uuid.UUID) ([]entity.CashDrawerRecord, error)
	// LastBySettlement returns the most recent record, or nil when the
	// ledger is empty.
	LastBySettlement(ctx context.Context, settlementID uuid.UUID) (*entity.CashDrawerRecord, error)
}
