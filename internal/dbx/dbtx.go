// Package dbx holds what the local stores share on top of database/sql:
// the DBTX handle, the Beginner that opens transactions, and WithTx.
package dbx

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// DBTX is implemented by *sql.DB, *sql.Conn and *sql.Tx.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type Beginner interface {
	BeginTx(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error)
}

// WithTx runs fn in one transaction and commits when fn returns nil.
// A failing fn rolls the transaction back; if the rollback fails too,
// both errors are returned joined. A panic in fn rolls back and is
// rethrown.
//
//	err := dbx.WithTx(ctx, db, nil, func(ctx context.Context, tx dbx.DBTX) error {
//	    if _, err := tx.ExecContext(ctx, "DELETE FROM metadata WHERE key = ?", "token"); err != nil {
//	        return err
//	    }
//	    _, err := tx.ExecContext(ctx, "DELETE FROM metadata WHERE key = ?", "userInfo")
//	    return err
//	})
func WithTx(ctx context.Context, db Beginner, opts *sql.TxOptions, fn func(ctx context.Context, tx DBTX) error) (err error) {
	tx, err := db.BeginTx(ctx, opts)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}

	committed := false
	defer func() {
		if committed {
			return
		}
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			err = errors.Join(err, fmt.Errorf("rollback tx: %w", rbErr))
		}
	}()

	if err = fn(ctx, tx); err != nil {
		return err
	}

	committed = true
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}
