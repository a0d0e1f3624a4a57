package enum

// OperationType represents a cash drawer operation.
// open and close are anchors: their amount is the counted cash at that
// instant. deposit and withdrawal are adjustments: their amount is a delta
// applied to the running balance.
type OperationType string

const (
	OperationTypeOpen       OperationType = "open"
	OperationTypeDeposit    OperationType = "deposit"
	OperationTypeWithdrawal OperationType = "withdrawal"
	OperationTypeClose      OperationType = "close"
)

func (t OperationType) String() string {
	return string(t)
}

// IsValid checks if the operation type is known
func (t OperationType) IsValid() bool {
	switch t {
	case OperationTypeOpen, OperationTypeDeposit, OperationTypeWithdrawal, OperationTypeClose:
		return true
	}
	return false
}

// IsAdjustment returns true for operations that move the running balance
// by a delta rather than anchoring it to a counted amount.
func (t OperationType) IsAdjustment() bool {
	return t == OperationTypeDeposit || t == OperationTypeWithdrawal
}
