package fakes

import "context"

// Transactor runs fn directly and counts how often it was asked for a transaction.
type Transactor struct {
	Calls int
}

func (t *Transactor) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	t.Calls++
	return fn(ctx)
}
