package repository

import "context"

// UnitOfWork executes a function with repositories bound to a single
// database transaction. If the function returns an error nothing is
// persisted; this is what keeps a settlement mutation (row update plus
// ledger append) all-or-nothing.
type UnitOfWork interface {
	Execute(ctx context.Context, fn func(repos TxRepositories) error) error
}

// TxRepositories exposes the repositories that participate in settlement
// mutations, all sharing the same transaction.
type TxRepositories interface {
	Settlements() SettlementRepository
	CashDrawer() CashDrawerRepository
}
