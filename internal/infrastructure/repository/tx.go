package repository

import (
	"context"

	domainRepo "github.com/petrodesk/station-api/internal/domain/repository"
	"gorm.io/gorm"
)

type ctxKey string

// txKey is the context key carrying an open transaction handle. Repositories
// resolve their connection through dbFor so a unit of work started by the
// transaction manager flows through every repository call inside it.
const txKey ctxKey = "gorm_tx"

// WithTx returns a context carrying the given transaction handle
func WithTx(ctx context.Context, tx *gorm.DB) context.Context {
	return context.WithValue(ctx, txKey, tx)
}

// dbFor returns the transaction handle from the context if present,
// otherwise the repository's own connection.
func dbFor(ctx context.Context, fallback *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(txKey).(*gorm.DB); ok && tx != nil {
		return tx.WithContext(ctx)
	}
	return fallback.WithContext(ctx)
}

type txManager struct {
	db *gorm.DB
}

// NewTxManager creates a transaction manager backed by the given connection
func NewTxManager(db *gorm.DB) domainRepo.TxManager {
	return &txManager{db: db}
}

// WithinTx runs fn inside one database transaction. Returning an error from
// fn rolls back everything written through the scoped handle.
func (m *txManager) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(WithTx(ctx, tx))
	})
}
