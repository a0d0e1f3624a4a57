package repository

import (
	"context"

	domainRepo "github.com/salonkit/settlement-api/internal/domain/repository"
	"gorm.io/gorm"
)

type gormUnitOfWork struct {
	db *gorm.DB
}

// NewUnitOfWork creates a unit of work backed by database transactions
func NewUnitOfWork(db *gorm.DB) domainRepo.UnitOfWork {
	return &gormUnitOfWork{db: db}
}

func (u *gormUnitOfWork) Execute(ctx context.Context, fn func(repos domainRepo.TxRepositories) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&txRepositories{tx: tx})
	})
}

type txRepositories struct {
	tx *gorm.DB
}

func (t *txRepositories) Settlements() domainRepo.SettlementRepository {
	return NewSettlementRepository(t.tx)
}

func (t *txRepositories) CashDrawer() domainRepo.CashDrawerRepository {
	return NewCashDrawerRepository(t.tx)
}
