package service

import (
	"fmt"

	"github.com/salonkit/settlement-api/internal/domain/entity"
	"github.com/salonkit/settlement-api/internal/domain/enum"
	"github.com/shopspring/decimal"
)

// ExpectedCash computes the cash the drawer should contain at close:
//
//	openingCash + cashRevenue + Σ(deposits) − Σ(withdrawals)
//
// Open and close records are anchors, not adjustments, and are skipped.
// All arithmetic is fixed-point decimal; chains of deposits and
// withdrawals accumulate no rounding error.
func ExpectedCash(openingCash, cashRevenue decimal.Decimal, ledger []entity.CashDrawerRecord) decimal.Decimal {
	expected := openingCash.Add(cashRevenue)
	for i := range ledger {
		switch ledger[i].OperationType {
		case enum.OperationTypeDeposit:
			expected = expected.Add(ledger[i].Amount)
		case enum.OperationTypeWithdrawal:
			expected = expected.Sub(ledger[i].Amount)
		}
	}
	return expected
}

// CashDifference is the counted cash minus the expected cash. Positive
// means surplus, negative means shortage, zero an exact reconciliation.
func CashDifference(countedCash, expectedCash decimal.Decimal) decimal.Decimal {
	return countedCash.Sub(expectedCash)
}

// VerifyBalanceChain replays a settlement's ledger in order and checks that
// each record's BalanceBefore equals the previous record's BalanceAfter,
// starting from zero at the open record. It returns the first violation
// found, or nil for a consistent chain.
func VerifyBalanceChain(ledger []entity.CashDrawerRecord) error {
	prev := decimal.Zero
	for i := range ledger {
		rec := &ledger[i]
		if !rec.BalanceBefore.Equal(prev) {
			return fmt.Errorf("balance chain broken at record %s: balance_before %s, want %s",
				rec.ID, rec.BalanceBefore, prev)
		}
		switch rec.OperationType {
		case enum.OperationTypeDeposit:
			if !rec.BalanceAfter.Equal(rec.BalanceBefore.Add(rec.Amount)) {
				return fmt.Errorf("deposit record %s: balance_after %s, want %s",
					rec.ID, rec.BalanceAfter, rec.BalanceBefore.Add(rec.Amount))
			}
		case enum.OperationTypeWithdrawal:
			if !rec.BalanceAfter.Equal(rec.BalanceBefore.Sub(rec.Amount)) {
				return fmt.Errorf("withdrawal record %s: balance_after %s, want %s",
					rec.ID, rec.BalanceAfter, rec.BalanceBefore.Sub(rec.Amount))
			}
		default:
			// open/close anchor the balance to the counted amount
			if !rec.BalanceAfter.Equal(rec.Amount) {
				return fmt.Errorf("%s record %s: balance_after %s, want counted amount %s",
					rec.OperationType, rec.ID, rec.BalanceAfter, rec.Amount)
			}
		}
		prev = rec.BalanceAfter
	}
	return nil
}
