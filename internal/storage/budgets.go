package storage

import (
	"context"
	"database/sql"

	sq "github.com/Masterminds/squirrel"
	"github.com/pkg/errors"

	"fintrack/internal/core"
	applog "fintrack/internal/log"
)

// AddBudget inserts a budget. Several budgets may exist for one month;
// LatestBudget decides which one applies.
func (r *SQLiteRepository) AddBudget(ctx context.Context, b core.Budget) (int64, error) {
	const op = "add budget"

	var id int64
	err := r.withTx(ctx, op, func(tx *sql.Tx) error {
		res, err := sqlb.Insert("budgets").
			Columns("month", "limit_cents").
			Values(b.Month, b.Limit.Cents).
			RunWith(tx).
			ExecContext(ctx)
		if err != nil {
			return storageErr(op, errors.Wrap(err, "insert budget"))
		}
		id, err = res.LastInsertId()
		if err != nil {
			return storageErr(op, errors.Wrap(err, "read budget id"))
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	applog.FromContext(ctx, applog.ComponentStorage).InfoContext(ctx, "Budget saved to SQLite",
		applog.FieldOperation, applog.OpCreate,
		"id", id,
		applog.FieldMonth, b.Month,
		"limit_cents", b.Limit.Cents)
	return id, nil
}

// LatestBudget returns the most recently created budget for month.
func (r *SQLiteRepository) LatestBudget(ctx context.Context, month string) (core.Budget, bool, error) {
	var b core.Budget
	err := sqlb.Select("id", "month", "limit_cents").
		From("budgets").
		Where(sq.Eq{"month": month}).
		OrderBy("id DESC").
		Limit(1).
		RunWith(r.db).
		QueryRowContext(ctx).
		Scan(&b.ID, &b.Month, &b.Limit.Cents)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Budget{}, false, nil
	}
	if err != nil {
		return core.Budget{}, false, storageErr("get budget", err)
	}
	return b, true, nil
}
