package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/salonkit/settlement-api/internal/domain/enum"
	"github.com/salonkit/settlement-api/internal/domain/repository"
	"github.com/salonkit/settlement-api/pkg/apperror"
	"github.com/shopspring/decimal"
)

// DailyStats summarizes the order & payment ledger for one organization-day.
// It is recomputed on every read and never persisted, so late-arriving
// refunds for the day are reflected until the settlement closes.
type DailyStats struct {
	TotalOrders     int64 `json:"total_orders"`
	CompletedOrders int64 `json:"completed_orders"`
	CancelledOrders int64 `json:"cancelled_orders"`
	RefundedOrders  int64 `json:"refunded_orders"`

	TotalAppointments     int64 `json:"total_appointments"`
	CompletedAppointments int64 `json:"completed_appointments"`
	NoShowAppointments    int64 `json:"no_show_appointments"`

	CashRevenue    decimal.Decimal `json:"cash_revenue"`
	CardRevenue    decimal.Decimal `json:"card_revenue"`
	LinePayRevenue decimal.Decimal `json:"line_pay_revenue"`
	OtherRevenue   decimal.Decimal `json:"other_revenue"`
	// TotalRevenue is always the sum of the four channel totals, computed
	// here and nowhere else, so displayed and reconciled figures cannot
	// drift apart.
	TotalRevenue decimal.Decimal `json:"total_revenue"`
}

// SettlementSummary aggregates settlements and revenue across recent history
type SettlementSummary struct {
	TotalRevenue        decimal.Decimal `json:"total_revenue"`
	TotalCash           decimal.Decimal `json:"total_cash"`
	TotalCard           decimal.Decimal `json:"total_card"`
	TotalLinePay        decimal.Decimal `json:"total_line_pay"`
	TotalOther          decimal.Decimal `json:"total_other"`
	TotalOrders         int64           `json:"total_orders"`
	AvgOrderValue       decimal.Decimal `json:"avg_order_value"`
	CashDifferenceTotal decimal.Decimal `json:"cash_difference_total"`
	SettlementCount     int64           `json:"settlement_count"`
}

// StatsService computes daily stats and summaries from the order & payment
// ledger. It is stateless; two calls with no intervening ledger changes
// return identical results.
type StatsService struct {
	statsRepo repository.StatsRepository
	orgRepo   repository.OrganizationRepository
}

// NewStatsService creates a new stats service
func NewStatsService(statsRepo repository.StatsRepository, orgRepo repository.OrganizationRepository) *StatsService {
	return &StatsService{
		statsRepo: statsRepo,
		orgRepo:   orgRepo,
	}
}

// ComputeDailyStats aggregates the ledger for one organization-local
// calendar day into per-channel revenue totals and operational counts.
func (s *StatsService) ComputeDailyStats(ctx context.Context, organizationID uuid.UUID, date time.Time) (*DailyStats, error) {
	org, err := s.orgRepo.GetByID(ctx, organizationID)
	if err != nil {
		return nil, err
	}
	if org == nil {
		return nil, apperror.NewNotFoundError("Organization")
	}

	from, to := dayWindow(date, org.Location())
	return s.computeRange(ctx, organizationID, from, to)
}

func (s *StatsService) computeRange(ctx context.Context, organizationID uuid.UUID, from, to time.Time) (*DailyStats, error) {
	totals, err := s.statsRepo.PaymentTotalsByMethod(ctx, organizationID, from, to)
	if err != nil {
		return nil, err
	}

	orderCounts, err := s.statsRepo.OrderCounts(ctx, organizationID, from, to)
	if err != nil {
		return nil, err
	}

	apptCounts, err := s.statsRepo.AppointmentCounts(ctx, organizationID, from, to)
	if err != nil {
		return nil, err
	}

	stats := &DailyStats{
		TotalOrders:           orderCounts.Total,
		CompletedOrders:       orderCounts.Completed,
		CancelledOrders:       orderCounts.Cancelled,
		RefundedOrders:        orderCounts.Refunded,
		TotalAppointments:     apptCounts.Total,
		CompletedAppointments: apptCounts.Completed,
		NoShowAppointments:    apptCounts.NoShow,
		CashRevenue:           decimal.Zero,
		CardRevenue:           decimal.Zero,
		LinePayRevenue:        decimal.Zero,
		OtherRevenue:          decimal.Zero,
	}

	// Each payment method contributes to exactly one revenue channel.
	for method, amount := range totals {
		switch method.Channel() {
		case enum.RevenueChannelCash:
			stats.CashRevenue = stats.CashRevenue.Add(amount)
		case enum.RevenueChannelCard:
			stats.CardRevenue = stats.CardRevenue.Add(amount)
		case enum.RevenueChannelLinePay:
			stats.LinePayRevenue = stats.LinePayRevenue.Add(amount)
		default:
			stats.OtherRevenue = stats.OtherRevenue.Add(amount)
		}
	}

	stats.TotalRevenue = stats.CashRevenue.
		Add(stats.CardRevenue).
		Add(stats.LinePayRevenue).
		Add(stats.OtherRevenue)

	return stats, nil
}

// GetSummary aggregates revenue and reconciliation outcomes across the
// last `days` days of history.
func (s *StatsService) GetSummary(ctx context.Context, organizationID uuid.UUID, days int) (*SettlementSummary, error) {
	org, err := s.orgRepo.GetByID(ctx, organizationID)
	if err != nil {
		return nil, err
	}
	if org == nil {
		return nil, apperror.NewNotFoundError("Organization")
	}

	if days <= 0 {
		days = 30
	}

	now := time.Now().In(org.Location())
	since := now.AddDate(0, 0, -days)

	stats, err := s.computeRange(ctx, organizationID, since, now)
	if err != nil {
		return nil, err
	}

	aggregates, err := s.statsRepo.SettlementAggregates(ctx, organizationID, since)
	if err != nil {
		return nil, err
	}

	summary := &SettlementSummary{
		TotalRevenue:        stats.TotalRevenue,
		TotalCash:           stats.CashRevenue,
		TotalCard:           stats.CardRevenue,
		TotalLinePay:        stats.LinePayRevenue,
		TotalOther:          stats.OtherRevenue,
		TotalOrders:         stats.TotalOrders,
		AvgOrderValue:       decimal.Zero,
		CashDifferenceTotal: aggregates.CashDifferenceTotal,
		SettlementCount:     aggregates.SettlementCount,
	}

	if stats.CompletedOrders > 0 {
		summary.AvgOrderValue = stats.TotalRevenue.
			Div(decimal.NewFromInt(stats.CompletedOrders)).
			Round(2)
	}

	return summary, nil
}

// dayWindow returns the half-open interval covering one calendar day in
// the given location. The input names the day through its wall-clock
// fields; the bounds are built in the location directly, so DST days keep
// their real length and the day never shifts across zones.
func dayWindow(date time.Time, loc *time.Location) (time.Time, time.Time) {
	if date.IsZero() {
		date = time.Now().In(loc)
	}
	y, m, d := date.Date()
	start := time.Date(y, m, d, 0, 0, 0, 0, loc)
	return start, start.AddDate(0, 0, 1)
}
