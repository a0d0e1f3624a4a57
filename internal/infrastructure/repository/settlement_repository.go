package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/salonkit/settlement-api/internal/domain/entity"
	domainRepo "github.com/salonkit/settlement-api/internal/domain/repository"
	"github.com/salonkit/settlement-api/pkg/apperror"
	"gorm.io/gorm"
)

type settlementRepository struct {
	db *gorm.DB
}

// NewSettlementRepository creates a new settlement repository
func NewSettlementRepository(db *gorm.DB) domainRepo.SettlementRepository {
	return &settlementRepository{db: db}
}

func (r *settlementRepository) Create(ctx context.Context, settlement *entity.Settlement) error {
	err := r.db.WithContext(ctx).Create(settlement).Error
	// The unique index on (organization_id, settlement_date) is the last
	// line of defense against two concurrent opens for the same day.
	if err != nil && isDuplicateKey(err) {
		return apperror.NewAlreadyOpenError(
			"A settlement already exists for " + settlement.SettlementDate.Format("2006-01-02"))
	}
	return err
}

func (r *settlementRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Settlement, error) {
	var settlement entity.Settlement
	err := r.db.WithContext(ctx).First(&settlement, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &settlement, err
}

func (r *settlementRepository) GetByDate(ctx context.Context, organizationID uuid.UUID, date time.Time) (*entity.Settlement, error) {
	var settlement entity.Settlement
	err := r.db.WithContext(ctx).
		Where("organization_id = ? AND settlement_date = ?", organizationID, date.Format("2006-01-02")).
		First(&settlement).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &settlement, err
}

func (r *settlementRepository) Update(ctx context.Context, settlement *entity.Settlement) error {
	return r.db.WithContext(ctx).Save(settlement).Error
}

func (r *settlementRepository) List(ctx context.Context, organizationID uuid.UUID, params *domainRepo.SettlementFilterParams) ([]entity.Settlement, int64, error) {
	var settlements []entity.Settlement
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Settlement{}).
		Where("organization_id = ?", organizationID)

	if params.StartDate != nil {
		query = query.Where("settlement_date >= ?", params.StartDate.Format("2006-01-02"))
	}
	if params.EndDate != nil {
		query = query.Where("settlement_date <= ?", params.EndDate.Format("2006-01-02"))
	}
	if params.Status != nil {
		query = query.Where("status = ?", *params.Status)
	}
	if params.OperatorID != nil {
		query = query.Where("opened_by = ? OR closed_by = ?", *params.OperatorID, *params.OperatorID)
	}
	if params.MinDifference != nil {
		query = query.Where("cash_difference >= ?", *params.MinDifference)
	}
	if params.MaxDifference != nil {
		query = query.Where("cash_difference <= ?", *params.MaxDifference)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.Limit()).
		Order(settlementOrderClause(params.SortBy, params.SortOrder)).
		Find(&settlements).Error

	return settlements, total, err
}

func (r *settlementRepository) ListOperators(ctx context.Context, organizationID uuid.UUID) ([]entity.User, error) {
	var users []entity.User

	err := r.db.WithContext(ctx).Raw(`
		SELECT DISTINCT u.*
		FROM users u
		JOIN settlements s ON u.id = s.opened_by OR u.id = s.closed_by
		WHERE s.organization_id = ? AND s.deleted_at IS NULL
		ORDER BY u.name ASC
	`, organizationID).Scan(&users).Error

	return users, err
}

// settlementOrderClause maps the API's sort parameters onto column names so
// callers can never inject arbitrary SQL through them.
func settlementOrderClause(sortBy, sortOrder string) string {
	column := "settlement_date"
	if sortBy == "cash_difference" {
		column = "cash_difference"
	}
	direction := "DESC"
	if strings.EqualFold(sortOrder, "asc") {
		direction = "ASC"
	}
	return column + " " + direction
}

func isDuplicateKey(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey) ||
		strings.Contains(err.Error(), "duplicate key") ||
		strings.Contains(err.Error(), "SQLSTATE 23505")
}
