package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// TxManager runs a unit of work inside a single transaction.
type TxManager struct {
	db *sqlx.DB
}

func NewTxManager(db *sqlx.DB) *TxManager {
	return &TxManager{db: db}
}

// WithTx begins a transaction, runs fn and commits if fn returns nil.
// Otherwise the transaction is rolled back and fn's error is returned.
// The transaction is finished exactly once, including when fn panics.
func (m *TxManager) WithTx(ctx context.Context, fn func(tx *sqlx.Tx) error) (err error) {
	tx, err := m.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		return translateError(fmt.Errorf("failed to commit transaction: %w", err))
	}
	return nil
}
