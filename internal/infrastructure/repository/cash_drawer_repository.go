package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/salonkit/settlement-api/internal/domain/entity"
	domainRepo "github.com/salonkit/settlement-api/internal/domain/repository"
	"gorm.io/gorm"
)

type cashDrawerRepository struct {
	db *gorm.DB
}

// NewCashDrawerRepository creates a new cash drawer repository. The ledger
// is append-only; this type deliberately has no update or delete method.
func NewCashDrawerRepository(db *gorm.DB) domainRepo.CashDrawerRepository {
	return &cashDrawerRepository{db: db}
}

func (r *cashDrawerRepository) Append(ctx context.Context, record *entity.CashDrawerRecord) error {
	return r.db.WithContext(ctx).Create(record).Error
}

func (r *cashDrawerRepository) ListBySettlement(ctx context.Context, settlementID uuid.UUID) ([]entity.CashDrawerRecord, error) {
	var records []entity.CashDrawerRecord
	err := r.db.WithContext(ctx).
		Where("settlement_id = ?", settlementID).
		Order("seq ASC").
		Find(&records).Error
	return records, err
}

func (r *cashDrawerRepository) LastBySettlement(ctx context.Context, settlementID uuid.UUID) (*entity.CashDrawerRecord, error) {
	var record entity.CashDrawerRecord
	err := r.db.WithContext(ctx).
		Where("settlement_id = ?", settlementID).
		Order("seq DESC").
		First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &record, err
}
