package repo

import (
	"context"
	"database/sql"

	"github.com/shopfront/account-service/pkg/trm"

	"github.com/jmoiron/sqlx"
)

// Query helpers that prefer the transaction carried by ctx, so repo
// methods participate in a Manager.Do sequence transparently.

func execContext(ctx context.Context, db *sqlx.DB, query string, args ...any) (sql.Result, error) {
	if tx := trm.ExtractTx(ctx); tx != nil {
		return tx.ExecContext(ctx, query, args...)
	}
	return db.ExecContext(ctx, query, args...)
}

func getContext(ctx context.Context, db *sqlx.DB, dest any, query string, args ...any) error {
	if tx := trm.ExtractTx(ctx); tx != nil {
		return tx.GetContext(ctx, dest, query, args...)
	}
	return db.GetContext(ctx, dest, query, args...)
}

func selectContext(ctx context.Context, db *sqlx.DB, dest any, query string, args ...any) error {
	if tx := trm.ExtractTx(ctx); tx != nil {
		return tx.SelectContext(ctx, dest, query, args...)
	}
	return db.SelectContext(ctx, dest, query, args...)
}
