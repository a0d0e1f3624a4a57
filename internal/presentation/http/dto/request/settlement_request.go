package request

import "github.com/shopspring/decimal"

// OpenSettlementRequest represents a request to open the day's settlement.
// Date is optional and defaults to today in the organization's timezone.
type OpenSettlementRequest struct {
	Date        string          `json:"date" binding:"omitempty,datetime=2006-01-02"`
	OpeningCash decimal.Decimal `json:"opening_cash"`
}

// CashOperationRequest represents a deposit or withdrawal against an open
// settlement
type CashOperationRequest struct {
	OperationType string          `json:"operation_type" binding:"required,oneof=deposit withdrawal"`
	Amount        decimal.Decimal `json:"amount"`
	Reason        string          `json:"reason" binding:"max=500"`
}

// CloseSettlementRequest represents a request to close a settlement with
// the physically counted cash
type CloseSettlementRequest struct {
	ClosingCash decimal.Decimal `json:"closing_cash"`
	Notes       string          `json:"notes" binding:"max=2000"`
}
