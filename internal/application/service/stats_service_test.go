package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/salonkit/settlement-api/internal/domain/entity"
	"github.com/salonkit/settlement-api/internal/domain/enum"
	"github.com/salonkit/settlement-api/internal/domain/repository"
	"github.com/salonkit/settlement-api/pkg/apperror"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStatsFixture(statsRepo *fakeStatsRepo) (*StatsService, uuid.UUID) {
	orgID := uuid.New()
	orgs := &fakeOrgRepo{orgs: map[uuid.UUID]*entity.Organization{
		orgID: {ID: orgID, Name: "Demo Salon", Slug: "demo-salon", Currency: "TWD", Timezone: "UTC"},
	}}
	return NewStatsService(statsRepo, orgs), orgID
}

func TestComputeDailyStats(t *testing.T) {
	day := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)

	t.Run("each payment method lands in one revenue channel", func(t *testing.T) {
		svc, orgID := newStatsFixture(&fakeStatsRepo{
			paymentTotals: map[enum.PaymentMethod]decimal.Decimal{
				enum.PaymentMethodCash:       dec("5000.00"),
				enum.PaymentMethodCreditCard: dec("2000.00"),
				enum.PaymentMethodDebitCard:  dec("1000.00"),
				enum.PaymentMethodLinePay:    dec("800.00"),
				enum.PaymentMethodTransfer:   dec("300.00"),
				enum.PaymentMethodOther:      dec("150.00"),
			},
		})

		stats, err := svc.ComputeDailyStats(context.Background(), orgID, day)
		require.NoError(t, err)

		assert.True(t, stats.CashRevenue.Equal(dec("5000.00")))
		// Credit and debit cards share the card bucket.
		assert.True(t, stats.CardRevenue.Equal(dec("3000.00")))
		assert.True(t, stats.LinePayRevenue.Equal(dec("800.00")))
		// Transfers count as other.
		assert.True(t, stats.OtherRevenue.Equal(dec("450.00")))
		assert.True(t, stats.TotalRevenue.Equal(dec("9250.00")),
			"total revenue = %s", stats.TotalRevenue)
	})

	t.Run("day with no activity is all zeros", func(t *testing.T) {
		svc, orgID := newStatsFixture(&fakeStatsRepo{
			paymentTotals: map[enum.PaymentMethod]decimal.Decimal{},
		})

		stats, err := svc.ComputeDailyStats(context.Background(), orgID, day)
		require.NoError(t, err)

		assert.True(t, stats.TotalRevenue.Equal(decimal.Zero))
		assert.True(t, stats.CashRevenue.Equal(decimal.Zero))
		assert.Zero(t, stats.TotalOrders)
		assert.Zero(t, stats.TotalAppointments)
	})

	t.Run("order and appointment counts pass through", func(t *testing.T) {
		svc, orgID := newStatsFixture(&fakeStatsRepo{
			paymentTotals: map[enum.PaymentMethod]decimal.Decimal{},
			orderCounts:   repository.OrderCounts{Total: 12, Completed: 9, Cancelled: 2, Refunded: 1},
			apptCounts:    repository.AppointmentCounts{Total: 8, Completed: 6, NoShow: 1},
		})

		stats, err := svc.ComputeDailyStats(context.Background(), orgID, day)
		require.NoError(t, err)

		assert.Equal(t, int64(12), stats.TotalOrders)
		assert.Equal(t, int64(9), stats.CompletedOrders)
		assert.Equal(t, int64(2), stats.CancelledOrders)
		assert.Equal(t, int64(1), stats.RefundedOrders)
		assert.Equal(t, int64(8), stats.TotalAppointments)
		assert.Equal(t, int64(6), stats.CompletedAppointments)
		assert.Equal(t, int64(1), stats.NoShowAppointments)
	})

	t.Run("unknown organization", func(t *testing.T) {
		svc, _ := newStatsFixture(&fakeStatsRepo{})
		_, err := svc.ComputeDailyStats(context.Background(), uuid.New(), day)
		assert.True(t, apperror.IsKind(err, apperror.KindNotFound))
	})

	t.Run("recomputation with unchanged ledger is identical", func(t *testing.T) {
		svc, orgID := newStatsFixture(&fakeStatsRepo{
			paymentTotals: map[enum.PaymentMethod]decimal.Decimal{
				enum.PaymentMethodCash:       dec("5000.00"),
				enum.PaymentMethodCreditCard: dec("2000.00"),
				enum.PaymentMethodLinePay:    dec("800.00"),
			},
			orderCounts: repository.OrderCounts{Total: 12, Completed: 9, Cancelled: 2, Refunded: 1},
			apptCounts:  repository.AppointmentCounts{Total: 8, Completed: 6, NoShow: 1},
		})

		first, err := svc.ComputeDailyStats(context.Background(), orgID, day)
		require.NoError(t, err)
		second, err := svc.ComputeDailyStats(context.Background(), orgID, day)
		require.NoError(t, err)

		assert.Equal(t, first, second)
	})
}

func TestDayWindow(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	t.Run("UTC midnight keeps its calendar day west of UTC", func(t *testing.T) {
		from, to := dayWindow(time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), ny)
		assert.True(t, from.Equal(time.Date(2024, 3, 15, 0, 0, 0, 0, ny)), "from = %s", from)
		assert.True(t, to.Equal(time.Date(2024, 3, 16, 0, 0, 0, 0, ny)), "to = %s", to)
	})

	t.Run("spring forward day is twenty-three hours", func(t *testing.T) {
		from, to := dayWindow(time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC), ny)
		assert.Equal(t, 23*time.Hour, to.Sub(from))
	})
}

func TestGetSummary(t *testing.T) {
	t.Run("average order value from completed orders", func(t *testing.T) {
		svc, orgID := newStatsFixture(&fakeStatsRepo{
			paymentTotals: map[enum.PaymentMethod]decimal.Decimal{
				enum.PaymentMethodCash:       dec("7000.00"),
				enum.PaymentMethodCreditCard: dec("3000.00"),
			},
			orderCounts: repository.OrderCounts{Total: 10, Completed: 3},
			aggregates:  repository.SettlementAggregates{SettlementCount: 7, CashDifferenceTotal: dec("-120.00")},
		})

		summary, err := svc.GetSummary(context.Background(), orgID, 30)
		require.NoError(t, err)

		assert.True(t, summary.TotalRevenue.Equal(dec("10000.00")))
		assert.True(t, summary.TotalCash.Equal(dec("7000.00")))
		assert.True(t, summary.TotalCard.Equal(dec("3000.00")))
		// 10000 / 3 rounded to cents
		assert.True(t, summary.AvgOrderValue.Equal(dec("3333.33")),
			"avg order value = %s", summary.AvgOrderValue)
		assert.Equal(t, int64(7), summary.SettlementCount)
		assert.True(t, summary.CashDifferenceTotal.Equal(dec("-120.00")))
	})

	t.Run("no completed orders means zero average", func(t *testing.T) {
		svc, orgID := newStatsFixture(&fakeStatsRepo{
			paymentTotals: map[enum.PaymentMethod]decimal.Decimal{
				enum.PaymentMethodCash: dec("500.00"),
			},
		})

		summary, err := svc.GetSummary(context.Background(), orgID, 30)
		require.NoError(t, err)
		assert.True(t, summary.AvgOrderValue.Equal(decimal.Zero))
	})

	t.Run("non-positive day count defaults to thirty", func(t *testing.T) {
		svc, orgID := newStatsFixture(&fakeStatsRepo{
			paymentTotals: map[enum.PaymentMethod]decimal.Decimal{},
		})

		_, err := svc.GetSummary(context.Background(), orgID, 0)
		require.NoError(t, err)
	})
}

func TestPaymentMethodChannel(t *testing.T) {
	tests := []struct {
		method enum.PaymentMethod
		want   enum.RevenueChannel
	}{
		{enum.PaymentMethodCash, enum.RevenueChannelCash},
		{enum.PaymentMethodCreditCard, enum.RevenueChannelCard},
		{enum.PaymentMethodDebitCard, enum.RevenueChannelCard},
		{enum.PaymentMethodLinePay, enum.RevenueChannelLinePay},
		{enum.PaymentMethodTransfer, enum.RevenueChannelOther},
		{enum.PaymentMethodOther, enum.RevenueChannelOther},
	}

	for _, tt := range tests {
		t.Run(tt.method.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.method.Channel())
		})
	}
}
