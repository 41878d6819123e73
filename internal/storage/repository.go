// Package storage persists categories, expenses, subscriptions and budgets in
// a single SQLite file and runs the aggregate queries over them.
package storage

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/pkg/errors"

	"fintrack/internal/core"
	applog "fintrack/internal/log"

	_ "modernc.org/sqlite"
)

var sqlb = sq.StatementBuilder.PlaceholderFormat(sq.Question)

type SQLiteRepository struct {
	db *sql.DB
}

// NewSQLiteRepository opens (creating if needed) the database at dbPath and
// applies pending migrations. The returned repository owns the connection
// and must be closed by the caller.
func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, storageErr("create db directory", err)
	}

	dsn := dataSourceName(dbPath)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, storageErr("open sqlite database", err)
	}
	// One writer, one reader, same process.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, storageErr("ping database", err)
	}

	start := time.Now()
	if err := RunMigrations(dsn); err != nil {
		db.Close()
		return nil, storageErr("migrate", err)
	}

	applog.FromContext(context.Background(), applog.ComponentStorage).Debug("SQLite repository ready",
		applog.FieldOperation, applog.OpStartup,
		"path", dbPath,
		applog.FieldDuration, time.Since(start).Milliseconds())
	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

func dataSourceName(dbPath string) string {
	return "file:" + dbPath + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
}

// withTx runs fn inside a transaction that is committed as soon as fn
// succeeds. Any error from fn rolls the transaction back.
func (r *SQLiteRepository) withTx(ctx context.Context, op string, fn func(tx *sql.Tx) error) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return storageErr(op, errors.Wrap(err, "begin transaction"))
	}
	defer func() {
		if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
			applog.FromContext(ctx, applog.ComponentStorage).WarnContext(ctx, "Transaction rollback failed",
				applog.FieldOperation, op,
				applog.FieldError, err)
		}
	}()

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return storageErr(op, errors.Wrap(err, "commit transaction"))
	}
	return nil
}

// rowExists reports whether table holds a row with the given id.
func rowExists(ctx context.Context, runner sq.BaseRunner, table string, id int64) (bool, error) {
	var one int
	err := sqlb.Select("1").
		From(table).
		Where(sq.Eq{"id": id}).
		RunWith(runner).
		QueryRowContext(ctx).
		Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, errors.Wrapf(err, "look up %s %d", table, id)
	}
	return true, nil
}

func storageErr(op string, err error) error {
	return &core.StorageError{Op: op, Err: err}
}
