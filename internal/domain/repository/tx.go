package repository

import "context"

// TxManager runs a unit of work inside one database transaction. The
// transaction handle travels through the context so repositories picked up
// inside fn share it; any error rolls the whole unit back.
type TxManager interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}
