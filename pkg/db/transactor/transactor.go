package transactor

import "context"

// Transactor runs a function within a single database transaction.
// The transaction is committed when the function returns nil and rolled
// back otherwise, so multi-repository operations are all-or-nothing.
type Transactor interface {
	WithinTransaction(context.Context, func(context.Context) error) error
}
