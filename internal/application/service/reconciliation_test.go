package service

import (
	"testing"

	"github.com/google/uuid"
	"github.com/salonkit/settlement-api/internal/domain/entity"
	"github.com/salonkit/settlement-api/internal/domain/enum"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func record(op enum.OperationType, amount, before, after string) entity.CashDrawerRecord {
	return entity.CashDrawerRecord{
		ID:            uuid.New(),
		OperationType: op,
		Amount:        dec(amount),
		BalanceBefore: dec(before),
		BalanceAfter:  dec(after),
	}
}

func TestExpectedCash(t *testing.T) {
	tests := []struct {
		name        string
		openingCash string
		cashRevenue string
		ledger      []entity.CashDrawerRecord
		want        string
	}{
		{
			name:        "no adjustments",
			openingCash: "1000.00",
			cashRevenue: "5000.00",
			want:        "6000.00",
		},
		{
			name:        "withdrawal reduces expected cash",
			openingCash: "1000.00",
			cashRevenue: "5000.00",
			ledger: []entity.CashDrawerRecord{
				record(enum.OperationTypeWithdrawal, "2000.00", "6000.00", "4000.00"),
			},
			want: "4000.00",
		},
		{
			name:        "deposit increases expected cash",
			openingCash: "500.00",
			cashRevenue: "1200.50",
			ledger: []entity.CashDrawerRecord{
				record(enum.OperationTypeDeposit, "300.00", "500.00", "800.00"),
			},
			want: "2000.50",
		},
		{
			name:        "open and close anchors are ignored",
			openingCash: "1000.00",
			cashRevenue: "0.00",
			ledger: []entity.CashDrawerRecord{
				record(enum.OperationTypeOpen, "1000.00", "0.00", "1000.00"),
				record(enum.OperationTypeDeposit, "250.00", "1000.00", "1250.00"),
				record(enum.OperationTypeClose, "1250.00", "1250.00", "1250.00"),
			},
			want: "1250.00",
		},
		{
			name:        "mixed deposits and withdrawals",
			openingCash: "2000.00",
			cashRevenue: "3500.00",
			ledger: []entity.CashDrawerRecord{
				record(enum.OperationTypeDeposit, "100.00", "2000.00", "2100.00"),
				record(enum.OperationTypeWithdrawal, "1500.00", "2100.00", "600.00"),
				record(enum.OperationTypeWithdrawal, "600.00", "600.00", "0.00"),
			},
			want: "3500.00",
		},
		{
			name:        "cents accumulate without drift",
			openingCash: "0.10",
			cashRevenue: "0.20",
			ledger: []entity.CashDrawerRecord{
				record(enum.OperationTypeDeposit, "0.10", "0.10", "0.20"),
				record(enum.OperationTypeDeposit, "0.10", "0.20", "0.30"),
				record(enum.OperationTypeDeposit, "0.10", "0.30", "0.40"),
			},
			want: "0.60",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExpectedCash(dec(tt.openingCash), dec(tt.cashRevenue), tt.ledger)
			assert.True(t, got.Equal(dec(tt.want)), "ExpectedCash = %s, want %s", got, tt.want)
		})
	}
}

func TestCashDifference(t *testing.T) {
	tests := []struct {
		name     string
		counted  string
		expected string
		want     string
	}{
		{"exact reconciliation", "4000.00", "4000.00", "0.00"},
		{"shortage", "3950.00", "4000.00", "-50.00"},
		{"surplus", "4100.00", "4000.00", "100.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CashDifference(dec(tt.counted), dec(tt.expected))
			assert.True(t, got.Equal(dec(tt.want)), "CashDifference = %s, want %s", got, tt.want)
		})
	}
}

func TestVerifyBalanceChain(t *testing.T) {
	t.Run("valid chain", func(t *testing.T) {
		ledger := []entity.CashDrawerRecord{
			record(enum.OperationTypeOpen, "1000.00", "0.00", "1000.00"),
			record(enum.OperationTypeDeposit, "500.00", "1000.00", "1500.00"),
			record(enum.OperationTypeWithdrawal, "200.00", "1500.00", "1300.00"),
			record(enum.OperationTypeClose, "1300.00", "1300.00", "1300.00"),
		}
		require.NoError(t, VerifyBalanceChain(ledger))
	})

	t.Run("empty ledger", func(t *testing.T) {
		require.NoError(t, VerifyBalanceChain(nil))
	})

	t.Run("broken link between records", func(t *testing.T) {
		ledger := []entity.CashDrawerRecord{
			record(enum.OperationTypeOpen, "1000.00", "0.00", "1000.00"),
			record(enum.OperationTypeDeposit, "500.00", "900.00", "1400.00"),
		}
		err := VerifyBalanceChain(ledger)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "balance chain broken")
	})

	t.Run("deposit with wrong balance after", func(t *testing.T) {
		ledger := []entity.CashDrawerRecord{
			record(enum.OperationTypeOpen, "1000.00", "0.00", "1000.00"),
			record(enum.OperationTypeDeposit, "500.00", "1000.00", "1600.00"),
		}
		require.Error(t, VerifyBalanceChain(ledger))
	})

	t.Run("close not anchored to counted amount", func(t *testing.T) {
		ledger := []entity.CashDrawerRecord{
			record(enum.OperationTypeOpen, "1000.00", "0.00", "1000.00"),
			record(enum.OperationTypeClose, "900.00", "1000.00", "1000.00"),
		}
		require.Error(t, VerifyBalanceChain(ledger))
	})
}
