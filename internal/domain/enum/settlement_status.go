package enum

// SettlementStatus represents the lifecycle state of a daily settlement.
// A day with no settlement row is "pending" by definition and is never
// persisted; only open and closed rows exist in the database.
type SettlementStatus string

const (
	SettlementStatusOpen   SettlementStatus = "open"
	SettlementStatusClosed SettlementStatus = "closed"
)

func (s SettlementStatus) String() string {
	return string(s)
}

// IsValid checks if the status is a known settlement status
func (s SettlementStatus) IsValid() bool {
	return s == SettlementStatusOpen || s == SettlementStatusClosed
}

// IsTerminal returns true once the settlement can no longer be mutated
func (s SettlementStatus) IsTerminal() bool {
	return s == SettlementStatusClosed
}
