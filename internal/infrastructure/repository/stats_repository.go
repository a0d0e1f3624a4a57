package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/salonkit/settlement-api/internal/domain/enum"
	domainRepo "github.com/salonkit/settlement-api/internal/domain/repository"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type statsRepository struct {
	db *gorm.DB
}

// NewStatsRepository creates a new stats repository
func NewStatsRepository(db *gorm.DB) domainRepo.StatsRepository {
	return &statsRepository{db: db}
}

func (r *statsRepository) PaymentTotalsByMethod(ctx context.Context, organizationID uuid.UUID, from, to time.Time) (map[enum.PaymentMethod]decimal.Decimal, error) {
	var rows []struct {
		PaymentMethod enum.PaymentMethod
		Total         decimal.Decimal
	}

	err := r.db.WithContext(ctx).Raw(`
		SELECT
			payment_method,
			COALESCE(SUM(amount), 0) as total
		FROM payment_records
		WHERE organization_id = ?
			AND status = 'completed'
			AND paid_at >= ? AND paid_at < ?
			AND deleted_at IS NULL
		GROUP BY payment_method
	`, organizationID, from, to).Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	totals := make(map[enum.PaymentMethod]decimal.Decimal, len(rows))
	for _, row := range rows {
		totals[row.PaymentMethod] = row.Total
	}
	return totals, nil
}

func (r *statsRepository) OrderCounts(ctx context.Context, organizationID uuid.UUID, from, to time.Time) (*domainRepo.OrderCounts, error) {
	var counts domainRepo.OrderCounts

	err := r.db.WithContext(ctx).Raw(`
		SELECT
			COUNT(*) as total,
			COUNT(*) FILTER (WHERE status = 'completed') as completed,
			COUNT(*) FILTER (WHERE status = 'cancelled') as cancelled,
			COUNT(*) FILTER (WHERE status = 'refunded') as refunded
		FROM orders
		WHERE organization_id = ?
			AND order_date >= ? AND order_date < ?
			AND deleted_at IS NULL
	`, organizationID, from, to).Scan(&counts).Error

	return &counts, err
}

func (r *statsRepository) AppointmentCounts(ctx context.Context, organizationID uuid.UUID, from, to time.Time) (*domainRepo.AppointmentCounts, error) {
	var counts domainRepo.AppointmentCounts

	err := r.db.WithContext(ctx).Raw(`
		SELECT
			COUNT(*) as total,
			COUNT(*) FILTER (WHERE status = 'completed') as completed,
			COUNT(*) FILTER (WHERE status = 'no_show') as no_show
		FROM appointments
		WHERE organization_id = ?
			AND scheduled_at >= ? AND scheduled_at < ?
			AND deleted_at IS NULL
	`, organizationID, from, to).Scan(&counts).Error

	return &counts, err
}

func (r *statsRepository) SettlementAggregates(ctx context.Context, organizationID uuid.UUID, since time.Time) (*domainRepo.SettlementAggregates, error) {
	var aggregates domainRepo.SettlementAggregates

	err := r.db.WithContext(ctx).Raw(`
		SELECT
			COUNT(*) as settlement_count,
			COALESCE(SUM(cash_difference), 0) as cash_difference_total
		FROM settlements
		WHERE organization_id = ?
			AND status = 'closed'
			AND settlement_date >= ?
			AND deleted_at IS NULL
	`, organizationID, since.Format("2006-01-02")).Scan(&aggregates).Error

	return &aggregates, err
}
