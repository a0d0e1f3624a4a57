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

type fakeSettlementRepo struct {
	settlements map[uuid.UUID]*entity.Settlement
}

func newFakeSettlementRepo() *fakeSettlementRepo {
	return &fakeSettlementRepo{settlements: make(map[uuid.UUID]*entity.Settlement)}
}

func (r *fakeSettlementRepo) Create(ctx context.Context, s *entity.Settlement) error {
	for _, existing := range r.settlements {
		if existing.OrganizationID == s.OrganizationID && existing.SettlementDate.Equal(s.SettlementDate) {
			return apperror.NewAlreadyOpenError("A settlement already exists for " + s.SettlementDate.Format("2006-01-02"))
		}
	}
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	copied := *s
	r.settlements[s.ID] = &copied
	return nil
}

func (r *fakeSettlementRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Settlement, error) {
	s, ok := r.settlements[id]
	if !ok {
		return nil, nil
	}
	copied := *s
	return &copied, nil
}

func (r *fakeSettlementRepo) GetByDate(ctx context.Context, organizationID uuid.UUID, date time.Time) (*entity.Settlement, error) {
	for _, s := range r.settlements {
		if s.OrganizationID == organizationID && s.SettlementDate.Equal(date) {
			copied := *s
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakeSettlementRepo) Update(ctx context.Context, s *entity.Settlement) error {
	copied := *s
	r.settlements[s.ID] = &copied
	return nil
}

func (r *fakeSettlementRepo) List(ctx context.Context, organizationID uuid.UUID, params *repository.SettlementFilterParams) ([]entity.Settlement, int64, error) {
	var out []entity.Settlement
	for _, s := range r.settlements {
		if s.OrganizationID == organizationID {
			out = append(out, *s)
		}
	}
	return out, int64(len(out)), nil
}

func (r *fakeSettlementRepo) ListOperators(ctx context.Context, organizationID uuid.UUID) ([]entity.User, error) {
	return nil, nil
}

type fakeDrawerRepo struct {
	records []entity.CashDrawerRecord
}

func (r *fakeDrawerRepo) Append(ctx context.Context, rec *entity.CashDrawerRecord) error {
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	rec.Sequence = uint64(len(r.records) + 1)
	rec.CreatedAt = time.Now()
	r.records = append(r.records, *rec)
	return nil
}

func (r *fakeDrawerRepo) ListBySettlement(ctx context.Context, settlementID uuid.UUID) ([]entity.CashDrawerRecord, error) {
	var out []entity.CashDrawerRecord
	for _, rec := range r.records {
		if rec.SettlementID == settlementID {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (r *fakeDrawerRepo) LastBySettlement(ctx context.Context, settlementID uuid.UUID) (*entity.CashDrawerRecord, error) {
	for i := len(r.records) - 1; i >= 0; i-- {
		if r.records[i].SettlementID == settlementID {
			copied := r.records[i]
			return &copied, nil
		}
	}
	return nil, nil
}

type fakeOrgRepo struct {
	orgs map[uuid.UUID]*entity.Organization
}

func (r *fakeOrgRepo) Create(ctx context.Context, org *entity.Organization) error { return nil }
func (r *fakeOrgRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Organization, error) {
	org, ok := r.orgs[id]
	if !ok {
		return nil, nil
	}
	return org, nil
}
func (r *fakeOrgRepo) GetBySlug(ctx context.Context, slug string) (*entity.Organization, error) {
	return nil, nil
}
func (r *fakeOrgRepo) IsMember(ctx context.Context, organizationID, userID uuid.UUID) (bool, error) {
	return true, nil
}
func (r *fakeOrgRepo) AddMember(ctx context.Context, m *entity.OrganizationMembership) error {
	return nil
}

type fakeStatsRepo struct {
	paymentTotals map[enum.PaymentMethod]decimal.Decimal
	orderCounts   repository.OrderCounts
	apptCounts    repository.AppointmentCounts
	aggregates    repository.SettlementAggregates

	// window passed to the most recent aggregation query
	lastFrom time.Time
	lastTo   time.Time
}

func (r *fakeStatsRepo) PaymentTotalsByMethod(ctx context.Context, organizationID uuid.UUID, from, to time.Time) (map[enum.PaymentMethod]decimal.Decimal, error) {
	r.lastFrom, r.lastTo = from, to
	return r.paymentTotals, nil
}
func (r *fakeStatsRepo) OrderCounts(ctx context.Context, organizationID uuid.UUID, from, to time.Time) (*repository.OrderCounts, error) {
	counts := r.orderCounts
	return &counts, nil
}
func (r *fakeStatsRepo) AppointmentCounts(ctx context.Context, organizationID uuid.UUID, from, to time.Time) (*repository.AppointmentCounts, error) {
	counts := r.apptCounts
	return &counts, nil
}
func (r *fakeStatsRepo) SettlementAggregates(ctx context.Context, organizationID uuid.UUID, since time.Time) (*repository.SettlementAggregates, error) {
	aggregates := r.aggregates
	return &aggregates, nil
}

// fakeUnitOfWork runs the function against the same fakes without any
// transaction semantics.
type fakeUnitOfWork struct {
	settlements *fakeSettlementRepo
	drawer      *fakeDrawerRepo
}

func (u *fakeUnitOfWork) Execute(ctx context.Context, fn func(repos repository.TxRepositories) error) error {
	return fn(u)
}
func (u *fakeUnitOfWork) Settlements() repository.SettlementRepository { return u.settlements }
func (u *fakeUnitOfWork) CashDrawer() repository.CashDrawerRepository  { return u.drawer }

type noopLocker struct{}

func (noopLocker) Acquire(ctx context.Context, key string) (func(), error) {
	return func() {}, nil
}

type settlementFixture struct {
	service *SettlementService
	repo    *fakeSettlementRepo
	drawer  *fakeDrawerRepo
	stats   *fakeStatsRepo
	orgID   uuid.UUID
	userID  uuid.UUID
}

func newSettlementFixture() *settlementFixture {
	return newSettlementFixtureIn("UTC")
}

func newSettlementFixtureIn(timezone string) *settlementFixture {
	orgID := uuid.New()
	orgs := &fakeOrgRepo{orgs: map[uuid.UUID]*entity.Organization{
		orgID: {ID: orgID, Name: "Demo Salon", Slug: "demo-salon", Currency: "TWD", Timezone: timezone},
	}}
	settlementRepo := newFakeSettlementRepo()
	drawerRepo := &fakeDrawerRepo{}
	statsRepo := &fakeStatsRepo{paymentTotals: map[enum.PaymentMethod]decimal.Decimal{}}
	uow := &fakeUnitOfWork{settlements: settlementRepo, drawer: drawerRepo}
	statsService := NewStatsService(statsRepo, orgs)

	return &settlementFixture{
		service: NewSettlementService(uow, settlementRepo, drawerRepo, orgs, statsService, noopLocker{}),
		repo:    settlementRepo,
		drawer:  drawerRepo,
		stats:   statsRepo,
		orgID:   orgID,
		userID:  uuid.New(),
	}
}

func (f *settlementFixture) open(t *testing.T, openingCash string) *entity.Settlement {
	t.Helper()
	settlement, err := f.service.Open(context.Background(), &OpenSettlementInput{
		OrganizationID: f.orgID,
		Date:           time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC),
		OpeningCash:    dec(openingCash),
		OpenedBy:       &f.userID,
	})
	require.NoError(t, err)
	return settlement
}

func TestSettlementServiceOpen(t *testing.T) {
	t.Run("creates settlement with opening anchor", func(t *testing.T) {
		f := newSettlementFixture()

		settlement := f.open(t, "1000.00")

		assert.Equal(t, enum.SettlementStatusOpen, settlement.Status)
		assert.True(t, settlement.OpeningCash.Equal(dec("1000.00")))
		assert.NotNil(t, settlement.OpenedAt)

		ledger, err := f.drawer.ListBySettlement(context.Background(), settlement.ID)
		require.NoError(t, err)
		require.Len(t, ledger, 1)
		assert.Equal(t, enum.OperationTypeOpen, ledger[0].OperationType)
		assert.True(t, ledger[0].BalanceBefore.Equal(decimal.Zero))
		assert.True(t, ledger[0].BalanceAfter.Equal(dec("1000.00")))
	})

	t.Run("zero opening cash is allowed", func(t *testing.T) {
		f := newSettlementFixture()
		settlement := f.open(t, "0.00")
		assert.True(t, settlement.OpeningCash.Equal(decimal.Zero))
	})

	t.Run("negative opening cash is rejected", func(t *testing.T) {
		f := newSettlementFixture()
		_, err := f.service.Open(context.Background(), &OpenSettlementInput{
			OrganizationID: f.orgID,
			OpeningCash:    dec("-1.00"),
		})
		assert.True(t, apperror.IsKind(err, apperror.KindInvalidAmount))
	})

	t.Run("second open for the same day is rejected", func(t *testing.T) {
		f := newSettlementFixture()
		f.open(t, "1000.00")

		_, err := f.service.Open(context.Background(), &OpenSettlementInput{
			OrganizationID: f.orgID,
			Date:           time.Date(2024, 3, 15, 22, 0, 0, 0, time.UTC),
			OpeningCash:    dec("500.00"),
		})
		assert.True(t, apperror.IsKind(err, apperror.KindAlreadyOpen))
	})

	t.Run("unknown organization", func(t *testing.T) {
		f := newSettlementFixture()
		_, err := f.service.Open(context.Background(), &OpenSettlementInput{
			OrganizationID: uuid.New(),
			OpeningCash:    dec("100.00"),
		})
		assert.True(t, apperror.IsKind(err, apperror.KindNotFound))
	})

	t.Run("date names the same day west of UTC", func(t *testing.T) {
		f := newSettlementFixtureIn("America/New_York")

		// A parsed YYYY-MM-DD arrives as a UTC midnight. The stored day
		// must stay March 15 even though that instant is March 14 in
		// New York.
		settlement, err := f.service.Open(context.Background(), &OpenSettlementInput{
			OrganizationID: f.orgID,
			Date:           time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
			OpeningCash:    dec("1000.00"),
			OpenedBy:       &f.userID,
		})
		require.NoError(t, err)

		y, m, d := settlement.SettlementDate.Date()
		assert.Equal(t, 2024, y)
		assert.Equal(t, time.March, m)
		assert.Equal(t, 15, d)
	})
}

func TestSettlementServiceAddCashOperation(t *testing.T) {
	t.Run("deposit extends the balance chain", func(t *testing.T) {
		f := newSettlementFixture()
		settlement := f.open(t, "1000.00")

		record, err := f.service.AddCashOperation(context.Background(), &CashOperationInput{
			SettlementID:   settlement.ID,
			OrganizationID: f.orgID,
			OperationType:  enum.OperationTypeDeposit,
			Amount:         dec("250.00"),
			Reason:         "change fund top-up",
			OperatedBy:     &f.userID,
		})
		require.NoError(t, err)

		assert.True(t, record.BalanceBefore.Equal(dec("1000.00")))
		assert.True(t, record.BalanceAfter.Equal(dec("1250.00")))
	})

	t.Run("withdrawal to exactly zero is allowed", func(t *testing.T) {
		f := newSettlementFixture()
		settlement := f.open(t, "1000.00")

		record, err := f.service.AddCashOperation(context.Background(), &CashOperationInput{
			SettlementID:   settlement.ID,
			OrganizationID: f.orgID,
			OperationType:  enum.OperationTypeWithdrawal,
			Amount:         dec("1000.00"),
		})
		require.NoError(t, err)
		assert.True(t, record.BalanceAfter.Equal(decimal.Zero))
	})

	t.Run("withdrawal past zero is rejected", func(t *testing.T) {
		f := newSettlementFixture()
		settlement := f.open(t, "1000.00")

		_, err := f.service.AddCashOperation(context.Background(), &CashOperationInput{
			SettlementID:   settlement.ID,
			OrganizationID: f.orgID,
			OperationType:  enum.OperationTypeWithdrawal,
			Amount:         dec("1000.01"),
		})
		assert.True(t, apperror.IsKind(err, apperror.KindInsufficientCash))

		// The rejected operation must not leave a record behind.
		ledger, _ := f.drawer.ListBySettlement(context.Background(), settlement.ID)
		assert.Len(t, ledger, 1)
	})

	t.Run("zero amount is rejected", func(t *testing.T) {
		f := newSettlementFixture()
		settlement := f.open(t, "1000.00")

		_, err := f.service.AddCashOperation(context.Background(), &CashOperationInput{
			SettlementID:   settlement.ID,
			OrganizationID: f.orgID,
			OperationType:  enum.OperationTypeDeposit,
			Amount:         decimal.Zero,
		})
		assert.True(t, apperror.IsKind(err, apperror.KindInvalidAmount))
	})

	t.Run("anchor operation types are rejected", func(t *testing.T) {
		f := newSettlementFixture()
		settlement := f.open(t, "1000.00")

		_, err := f.service.AddCashOperation(context.Background(), &CashOperationInput{
			SettlementID:   settlement.ID,
			OrganizationID: f.orgID,
			OperationType:  enum.OperationTypeOpen,
			Amount:         dec("100.00"),
		})
		require.Error(t, err)
	})

	t.Run("closed settlement refuses operations", func(t *testing.T) {
		f := newSettlementFixture()
		settlement := f.open(t, "1000.00")

		_, err := f.service.Close(context.Background(), &CloseSettlementInput{
			SettlementID:   settlement.ID,
			OrganizationID: f.orgID,
			ClosingCash:    dec("1000.00"),
		})
		require.NoError(t, err)

		_, err = f.service.AddCashOperation(context.Background(), &CashOperationInput{
			SettlementID:   settlement.ID,
			OrganizationID: f.orgID,
			OperationType:  enum.OperationTypeDeposit,
			Amount:         dec("50.00"),
		})
		assert.True(t, apperror.IsKind(err, apperror.KindSettlementNotOpen))
	})

	t.Run("settlement from another organization is not found", func(t *testing.T) {
		f := newSettlementFixture()
		settlement := f.open(t, "1000.00")

		_, err := f.service.AddCashOperation(context.Background(), &CashOperationInput{
			SettlementID:   settlement.ID,
			OrganizationID: uuid.New(),
			OperationType:  enum.OperationTypeDeposit,
			Amount:         dec("50.00"),
		})
		assert.True(t, apperror.IsKind(err, apperror.KindNotFound))
	})
}

func TestSettlementServiceClose(t *testing.T) {
	t.Run("computes cash difference from counted cash", func(t *testing.T) {
		f := newSettlementFixture()
		f.stats.paymentTotals = map[enum.PaymentMethod]decimal.Decimal{
			enum.PaymentMethodCash:       dec("5000.00"),
			enum.PaymentMethodCreditCard: dec("3000.00"),
		}
		settlement := f.open(t, "1000.00")

		_, err := f.service.AddCashOperation(context.Background(), &CashOperationInput{
			SettlementID:   settlement.ID,
			OrganizationID: f.orgID,
			OperationType:  enum.OperationTypeWithdrawal,
			Amount:         dec("2000.00"),
		})
		require.NoError(t, err)

		// expected = 1000 + 5000 - 2000 = 4000; counted 3950 -> short 50
		closed, err := f.service.Close(context.Background(), &CloseSettlementInput{
			SettlementID:   settlement.ID,
			OrganizationID: f.orgID,
			ClosingCash:    dec("3950.00"),
			Notes:          "till was short",
			ClosedBy:       &f.userID,
		})
		require.NoError(t, err)

		assert.Equal(t, enum.SettlementStatusClosed, closed.Status)
		require.NotNil(t, closed.CashDifference)
		assert.True(t, closed.CashDifference.Equal(dec("-50.00")), "cash difference = %s", closed.CashDifference)
		require.NotNil(t, closed.ClosingCash)
		assert.True(t, closed.ClosingCash.Equal(dec("3950.00")))
		assert.NotNil(t, closed.ClosedAt)
		assert.Equal(t, "till was short", closed.Notes)
	})

	t.Run("writes closing anchor and keeps chain valid", func(t *testing.T) {
		f := newSettlementFixture()
		settlement := f.open(t, "1000.00")

		_, err := f.service.Close(context.Background(), &CloseSettlementInput{
			SettlementID:   settlement.ID,
			OrganizationID: f.orgID,
			ClosingCash:    dec("1000.00"),
		})
		require.NoError(t, err)

		ledger, err := f.drawer.ListBySettlement(context.Background(), settlement.ID)
		require.NoError(t, err)
		require.Len(t, ledger, 2)
		assert.Equal(t, enum.OperationTypeClose, ledger[1].OperationType)
		assert.Less(t, ledger[0].Sequence, ledger[1].Sequence)
		require.NoError(t, VerifyBalanceChain(ledger))
	})

	t.Run("close aggregates the settlement's own day", func(t *testing.T) {
		f := newSettlementFixtureIn("America/New_York")
		ny, err := time.LoadLocation("America/New_York")
		require.NoError(t, err)

		settlement, err := f.service.Open(context.Background(), &OpenSettlementInput{
			OrganizationID: f.orgID,
			Date:           time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
			OpeningCash:    dec("1000.00"),
		})
		require.NoError(t, err)

		_, err = f.service.Close(context.Background(), &CloseSettlementInput{
			SettlementID:   settlement.ID,
			OrganizationID: f.orgID,
			ClosingCash:    dec("1000.00"),
		})
		require.NoError(t, err)

		// Revenue for March 15 is aggregated over the New York day, not a
		// UTC day shifted backwards.
		assert.True(t, f.stats.lastFrom.Equal(time.Date(2024, 3, 15, 0, 0, 0, 0, ny)),
			"window start = %s", f.stats.lastFrom)
		assert.True(t, f.stats.lastTo.Equal(time.Date(2024, 3, 16, 0, 0, 0, 0, ny)),
			"window end = %s", f.stats.lastTo)
	})

	t.Run("closing twice is rejected", func(t *testing.T) {
		f := newSettlementFixture()
		settlement := f.open(t, "1000.00")

		_, err := f.service.Close(context.Background(), &CloseSettlementInput{
			SettlementID:   settlement.ID,
			OrganizationID: f.orgID,
			ClosingCash:    dec("1000.00"),
		})
		require.NoError(t, err)

		_, err = f.service.Close(context.Background(), &CloseSettlementInput{
			SettlementID:   settlement.ID,
			OrganizationID: f.orgID,
			ClosingCash:    dec("1000.00"),
		})
		assert.True(t, apperror.IsKind(err, apperror.KindSettlementNotOpen))
	})

	t.Run("negative closing cash is rejected", func(t *testing.T) {
		f := newSettlementFixture()
		settlement := f.open(t, "1000.00")

		_, err := f.service.Close(context.Background(), &CloseSettlementInput{
			SettlementID:   settlement.ID,
			OrganizationID: f.orgID,
			ClosingCash:    dec("-0.01"),
		})
		assert.True(t, apperror.IsKind(err, apperror.KindInvalidAmount))
	})
}

func TestSettlementServiceGetByDate(t *testing.T) {
	t.Run("pending day returns not found", func(t *testing.T) {
		f := newSettlementFixture()
		_, err := f.service.GetByDate(context.Background(), f.orgID, time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC))
		assert.True(t, apperror.IsKind(err, apperror.KindNotFound))
	})

	t.Run("any time of day resolves to the same settlement", func(t *testing.T) {
		f := newSettlementFixture()
		opened := f.open(t, "1000.00")

		got, err := f.service.GetByDate(context.Background(), f.orgID, time.Date(2024, 3, 15, 23, 59, 0, 0, time.UTC))
		require.NoError(t, err)
		assert.Equal(t, opened.ID, got.ID)
	})
}
