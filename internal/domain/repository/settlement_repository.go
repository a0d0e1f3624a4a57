package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/salonkit/settlement-api/internal/domain/entity"
	"github.com/salonkit/settlement-api/internal/domain/enum"
	"github.com/salonkit/settlement-api/pkg/pagination"
	"github.com/shopspring/decimal"
)

// SettlementRepository defines the interface for settlement data operations
type SettlementRepository interface {
	Create(ctx context.Context, settlement *entity.Settlement) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Settlement, error)
	// GetByDate returns the settlement for a calendar day, or nil when the
	// day is still pending (no row).
	GetByDate(ctx context.Context, organizationID uuid.UUID, date time.Time) (*entity.Settlement, error)
	Update(ctx context.Context, settlement *entity.Settlement) error
	List(ctx context.Context, organizationID uuid.UUID, params *SettlementFilterParams) ([]entity.Settlement, int64, error)
	// ListOperators returns the distinct users that have opened or closed
	// settlements for the organization.
	ListOperators(ctx context.Context, organizationID uuid.UUID) ([]entity.User, error)
}

// SettlementFilterParams contains filtering parameters for settlement queries
type SettlementFilterParams struct {
	Pagination *pagination.PaginationParams
	StartDate  *time.Time
	EndDate    *time.Time
	Status     *enum.SettlementStatus
	OperatorID *uuid.UUID
	// MinDifference/MaxDifference bound the recorded cash difference, so a
	// back office can pull up only the days that were short or over.
	MinDifference *decimal.Decimal
	MaxDifference *decimal.Decimal
	SortBy        string // date, cash_difference
	SortOrder     string // asc, desc; defaults to most recent date first
}
