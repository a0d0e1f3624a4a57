package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/salonkit/settlement-api/internal/domain/enum"
	"github.com/shopspring/decimal"
)

// OrderCounts holds order tallies for a period
type OrderCounts struct {
	Total     int64
	Completed int64
	Cancelled int64
	Refunded  int64
}

// AppointmentCounts holds appointment tallies for a period
type AppointmentCounts struct {
	Total     int64
	Completed int64
	NoShow    int64
}

// SettlementAggregates holds settlement-level aggregates for a period
type SettlementAggregates struct {
	SettlementCount    int64
	CashDifferenceTotal decimal.Decimal
}

// StatsRepository defines interface for the aggregation queries behind
// daily stats and the settlement summary. Implementations read the order
// & payment ledger; nothing here is ever persisted back.
type StatsRepository interface {
	// PaymentTotalsByMethod sums completed payments per payment method for
	// the half-open interval [from, to).
	PaymentTotalsByMethod(ctx context.Context, organizationID uuid.UUID, from, to time.Time) (map[enum.PaymentMethod]decimal.Decimal, error)

	// OrderCounts tallies orders by status for [from, to).
	OrderCounts(ctx context.Context, organizationID uuid.UUID, from, to time.Time) (*OrderCounts, error)

	// AppointmentCounts tallies appointments by status for [from, to).
	AppointmentCounts(ctx context.Context, organizationID uuid.UUID, from, to time.Time) (*AppointmentCounts, error)

	// SettlementAggregates aggregates closed settlements since the given time.
	SettlementAggregates(ctx context.Context, organizationID uuid.UUID, since time.Time) (*SettlementAggregates, error)
}
