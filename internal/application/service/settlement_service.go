package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/salonkit/settlement-api/internal/domain/entity"
	"github.com/salonkit/settlement-api/internal/domain/enum"
	"github.com/salonkit/settlement-api/internal/domain/repository"
	"github.com/salonkit/settlement-api/pkg/apperror"
	"github.com/salonkit/settlement-api/pkg/pagination"
	"github.com/shopspring/decimal"
)

// Locker serializes mutating operations per settlement. Acquire blocks
// concurrent holders of the same key and returns a release function.
// Cross-settlement keys are fully independent.
type Locker interface {
	Acquire(ctx context.Context, key string) (release func(), err error)
}

// SettlementService owns the settlement lifecycle: it creates the day's
// record at open, appends cash operations against the running balance, and
// finalizes the record with the reconciliation variance at close.
//
// Every mutating method takes a per-settlement lock and runs its writes in
// one transaction, so the balance chain can never interleave and either the
// full effect commits or nothing does.
type SettlementService struct {
	uow            repository.UnitOfWork
	settlementRepo repository.SettlementRepository
	drawerRepo     repository.CashDrawerRepository
	orgRepo        repository.OrganizationRepository
	statsService   *StatsService
	locker         Locker
}

// NewSettlementService creates a new settlement service
func NewSettlementService(
	uow repository.UnitOfWork,
	settlementRepo repository.SettlementRepository,
	drawerRepo repository.CashDrawerRepository,
	orgRepo repository.OrganizationRepository,
	statsService *StatsService,
	locker Locker,
) *SettlementService {
	return &SettlementService{
		uow:            uow,
		settlementRepo: settlementRepo,
		drawerRepo:     drawerRepo,
		orgRepo:        orgRepo,
		statsService:   statsService,
		locker:         locker,
	}
}

// OpenSettlementInput represents the open settlement input
type OpenSettlementInput struct {
	OrganizationID uuid.UUID
	Date           time.Time // zero value means today in the organization's timezone
	OpeningCash    decimal.Decimal
	OpenedBy       *uuid.UUID
}

// Open creates the settlement for one organization-day and writes the
// opening anchor record to the cash drawer ledger.
func (s *SettlementService) Open(ctx context.Context, input *OpenSettlementInput) (*entity.Settlement, error) {
	if input.OpeningCash.IsNegative() {
		return nil, apperror.NewInvalidAmountError("Opening cash must not be negative")
	}

	org, err := s.orgRepo.GetByID(ctx, input.OrganizationID)
	if err != nil {
		return nil, err
	}
	if org == nil {
		return nil, apperror.NewNotFoundError("Organization")
	}

	date := normalizeDate(input.Date, org.Location())

	release, err := s.locker.Acquire(ctx, dateLockKey(input.OrganizationID, date))
	if err != nil {
		return nil, err
	}
	defer release()

	existing, err := s.settlementRepo.GetByDate(ctx, input.OrganizationID, date)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewAlreadyOpenError(
			fmt.Sprintf("A settlement already exists for %s", date.Format("2006-01-02")))
	}

	now := time.Now()
	settlement := &entity.Settlement{
		OrganizationID: input.OrganizationID,
		SettlementDate: date,
		Status:         enum.SettlementStatusOpen,
		OpeningCash:    input.OpeningCash,
		OpenedBy:       input.OpenedBy,
		OpenedAt:       &now,
	}

	err = s.uow.Execute(ctx, func(repos repository.TxRepositories) error {
		if err := repos.Settlements().Create(ctx, settlement); err != nil {
			return err
		}
		return repos.CashDrawer().Append(ctx, &entity.CashDrawerRecord{
			SettlementID:   settlement.ID,
			OrganizationID: settlement.OrganizationID,
			OperationType:  enum.OperationTypeOpen,
			Amount:         input.OpeningCash,
			BalanceBefore:  decimal.Zero,
			BalanceAfter:   input.OpeningCash,
			OperatedBy:     input.OpenedBy,
		})
	})
	if err != nil {
		return nil, err
	}

	return settlement, nil
}

// CashOperationInput represents a deposit or withdrawal against an open
// settlement
type CashOperationInput struct {
	SettlementID   uuid.UUID
	OrganizationID uuid.UUID
	OperationType  enum.OperationType
	Amount         decimal.Decimal
	Reason         string
	OperatedBy     *uuid.UUID
}

// AddCashOperation appends a deposit or withdrawal to the ledger of an
// open settlement. The new record's balance is always derived from the
// latest existing record, never from caller input.
func (s *SettlementService) AddCashOperation(ctx context.Context, input *CashOperationInput) (*entity.CashDrawerRecord, error) {
	if !input.OperationType.IsAdjustment() {
		return nil, apperror.NewBadRequestError("Operation type must be deposit or withdrawal")
	}
	if !input.Amount.IsPositive() {
		return nil, apperror.NewInvalidAmountError("Amount must be greater than zero")
	}

	release, err := s.locker.Acquire(ctx, settlementLockKey(input.SettlementID))
	if err != nil {
		return nil, err
	}
	defer release()

	var record *entity.CashDrawerRecord
	err = s.uow.Execute(ctx, func(repos repository.TxRepositories) error {
		settlement, err := repos.Settlements().GetByID(ctx, input.SettlementID)
		if err != nil {
			return err
		}
		if settlement == nil || settlement.OrganizationID != input.OrganizationID {
			return apperror.NewNotFoundError("Settlement")
		}
		if !settlement.IsOpen() {
			return apperror.NewSettlementNotOpenError("Cash operations require an open settlement")
		}

		balance, err := s.currentBalance(ctx, repos.CashDrawer(), settlement)
		if err != nil {
			return err
		}

		var newBalance decimal.Decimal
		if input.OperationType == enum.OperationTypeDeposit {
			newBalance = balance.Add(input.Amount)
		} else {
			newBalance = balance.Sub(input.Amount)
			if newBalance.IsNegative() {
				return apperror.NewInsufficientCashError(
					fmt.Sprintf("Withdrawal of %s exceeds drawer balance of %s", input.Amount, balance))
			}
		}

		record = &entity.CashDrawerRecord{
			SettlementID:   settlement.ID,
			OrganizationID: settlement.OrganizationID,
			OperationType:  input.OperationType,
			Amount:         input.Amount,
			BalanceBefore:  balance,
			BalanceAfter:   newBalance,
			Reason:         input.Reason,
			OperatedBy:     input.OperatedBy,
		}
		return repos.CashDrawer().Append(ctx, record)
	})
	if err != nil {
		return nil, err
	}

	return record, nil
}

// CloseSettlementInput represents the close settlement input
type CloseSettlementInput struct {
	SettlementID   uuid.UUID
	OrganizationID uuid.UUID
	ClosingCash    decimal.Decimal
	Notes          string
	ClosedBy       *uuid.UUID
}

// Close finalizes an open settlement: it recomputes the day's cash revenue,
// derives the expected drawer balance, records the variance against the
// physically counted amount, and writes the closing anchor record. Closed
// is terminal; there is no reopen.
func (s *SettlementService) Close(ctx context.Context, input *CloseSettlementInput) (*entity.Settlement, error) {
	if input.ClosingCash.IsNegative() {
		return nil, apperror.NewInvalidAmountError("Closing cash must not be negative")
	}

	release, err := s.locker.Acquire(ctx, settlementLockKey(input.SettlementID))
	if err != nil {
		return nil, err
	}
	defer release()

	var closed *entity.Settlement
	err = s.uow.Execute(ctx, func(repos repository.TxRepositories) error {
		settlement, err := repos.Settlements().GetByID(ctx, input.SettlementID)
		if err != nil {
			return err
		}
		if settlement == nil || settlement.OrganizationID != input.OrganizationID {
			return apperror.NewNotFoundError("Settlement")
		}
		if !settlement.IsOpen() {
			return apperror.NewSettlementNotOpenError("Settlement is not open")
		}

		// Stats are recomputed at close time so refunds recorded earlier the
		// same day are part of the reconciled figure.
		stats, err := s.statsService.ComputeDailyStats(ctx, settlement.OrganizationID, settlement.SettlementDate)
		if err != nil {
			return err
		}

		ledger, err := repos.CashDrawer().ListBySettlement(ctx, settlement.ID)
		if err != nil {
			return err
		}

		expected := ExpectedCash(settlement.OpeningCash, stats.CashRevenue, ledger)
		difference := CashDifference(input.ClosingCash, expected)

		balance, err := s.currentBalance(ctx, repos.CashDrawer(), settlement)
		if err != nil {
			return err
		}

		now := time.Now()
		settlement.Status = enum.SettlementStatusClosed
		settlement.ClosingCash = &input.ClosingCash
		settlement.CashDifference = &difference
		settlement.ClosedBy = input.ClosedBy
		settlement.ClosedAt = &now
		settlement.Notes = input.Notes

		if err := repos.Settlements().Update(ctx, settlement); err != nil {
			return err
		}

		if err := repos.CashDrawer().Append(ctx, &entity.CashDrawerRecord{
			SettlementID:   settlement.ID,
			OrganizationID: settlement.OrganizationID,
			OperationType:  enum.OperationTypeClose,
			Amount:         input.ClosingCash,
			BalanceBefore:  balance,
			BalanceAfter:   input.ClosingCash,
			OperatedBy:     input.ClosedBy,
		}); err != nil {
			return err
		}

		closed = settlement
		return nil
	})
	if err != nil {
		return nil, err
	}

	return closed, nil
}

// Get returns a settlement by ID
func (s *SettlementService) Get(ctx context.Context, organizationID, settlementID uuid.UUID) (*entity.Settlement, error) {
	settlement, err := s.settlementRepo.GetByID(ctx, settlementID)
	if err != nil {
		return nil, err
	}
	if settlement == nil || settlement.OrganizationID != organizationID {
		return nil, apperror.NewNotFoundError("Settlement")
	}
	return settlement, nil
}

// GetByDate returns the settlement for an organization-local calendar day
func (s *SettlementService) GetByDate(ctx context.Context, organizationID uuid.UUID, date time.Time) (*entity.Settlement, error) {
	org, err := s.orgRepo.GetByID(ctx, organizationID)
	if err != nil {
		return nil, err
	}
	if org == nil {
		return nil, apperror.NewNotFoundError("Organization")
	}

	settlement, err := s.settlementRepo.GetByDate(ctx, organizationID, normalizeDate(date, org.Location()))
	if err != nil {
		return nil, err
	}
	if settlement == nil {
		return nil, apperror.NewNotFoundError("Settlement")
	}
	return settlement, nil
}

// List returns settlements for an organization, most recent date first by
// default
func (s *SettlementService) List(ctx context.Context, organizationID uuid.UUID, params *repository.SettlementFilterParams) (*pagination.PaginatedResult[entity.Settlement], error) {
	if params.Pagination == nil {
		params.Pagination = pagination.DefaultPagination()
	}
	params.Pagination.Normalize()

	settlements, total, err := s.settlementRepo.List(ctx, organizationID, params)
	if err != nil {
		return nil, err
	}

	return pagination.NewPaginatedResult(settlements, total, params.Pagination), nil
}

// GetCashDrawerRecords returns the settlement's ledger ordered by creation
// time ascending
func (s *SettlementService) GetCashDrawerRecords(ctx context.Context, organizationID, settlementID uuid.UUID) ([]entity.CashDrawerRecord, error) {
	settlement, err := s.settlementRepo.GetByID(ctx, settlementID)
	if err != nil {
		return nil, err
	}
	if settlement == nil || settlement.OrganizationID != organizationID {
		return nil, apperror.NewNotFoundError("Settlement")
	}

	return s.drawerRepo.ListBySettlement(ctx, settlementID)
}

// CalculateDailyStats computes the daily stats for an organization-day
func (s *SettlementService) CalculateDailyStats(ctx context.Context, organizationID uuid.UUID, date time.Time) (*DailyStats, error) {
	return s.statsService.ComputeDailyStats(ctx, organizationID, date)
}

// GetSummary aggregates settlements and revenue across recent history
func (s *SettlementService) GetSummary(ctx context.Context, organizationID uuid.UUID, days int) (*SettlementSummary, error) {
	return s.statsService.GetSummary(ctx, organizationID, days)
}

// GetOperators returns the users that have opened or closed settlements
func (s *SettlementService) GetOperators(ctx context.Context, organizationID uuid.UUID) ([]entity.User, error) {
	return s.settlementRepo.ListOperators(ctx, organizationID)
}

// currentBalance reads the running balance from the latest ledger record,
// falling back to the opening cash when only the open anchor is missing.
func (s *SettlementService) currentBalance(ctx context.Context, drawer repository.CashDrawerRepository, settlement *entity.Settlement) (decimal.Decimal, error) {
	last, err := drawer.LastBySettlement(ctx, settlement.ID)
	if err != nil {
		return decimal.Zero, err
	}
	if last == nil {
		return settlement.OpeningCash, nil
	}
	return last.BalanceAfter, nil
}

// normalizeDate reduces its input to the calendar day it names. A non-zero
// input carries the day in its wall-clock fields and is never converted
// between zones, so a parsed YYYY-MM-DD always stays that day. Only the
// zero value, meaning today, depends on the organization's location.
func normalizeDate(date time.Time, loc *time.Location) time.Time {
	if date.IsZero() {
		date = time.Now().In(loc)
	}
	y, m, d := date.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func dateLockKey(organizationID uuid.UUID, date time.Time) string {
	return fmt.Sprintf("settlement:%s:%s", organizationID, date.Format("2006-01-02"))
}

func settlementLockKey(settlementID uuid.UUID) string {
	return fmt.Sprintf("settlement:%s", settlementID)
}
