package storage

import (
	"context"
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/pkg/errors"

	"fintrack/internal/core"
	applog "fintrack/internal/log"
)

// AddExpense inserts e and returns its new id. The referenced category must
// already exist, otherwise core.ErrUnknownCategory is returned and nothing
// is written. Title, amount and date are stored as given.
func (r *SQLiteRepository) AddExpense(ctx context.Context, e core.Expense) (int64, error) {
	const op = "add expense"

	var id int64
	err := r.withTx(ctx, op, func(tx *sql.Tx) error {
		exists, err := rowExists(ctx, tx, "categories", e.CategoryID)
		if err != nil {
			return storageErr(op, err)
		}
		if !exists {
			return fmt.Errorf("%w: id %d", core.ErrUnknownCategory, e.CategoryID)
		}

		res, err := sqlb.Insert("expenses").
			Columns("title", "amount_cents", "date", "category_id").
			Values(e.Title, e.Amount.Cents, e.Date, e.CategoryID).
			RunWith(tx).
			ExecContext(ctx)
		if err != nil {
			return storageErr(op, errors.Wrap(err, "insert expense"))
		}

		id, err = res.LastInsertId()
		if err != nil {
			return storageErr(op, errors.Wrap(err, "read expense id"))
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	applog.FromContext(ctx, applog.ComponentStorage).InfoContext(ctx, "Expense saved to SQLite",
		applog.NewFields().
			WithOperation(applog.OpCreate).
			WithExpense(id, e.Amount.Cents, e.Date, e.CategoryID).
			With("title", e.Title).
			ToSlice()...)

	return id, nil
}

// UpdateExpenseAmount sets the amount of expense id. found is false when no
// such expense exists; the store is left untouched in that case.
func (r *SQLiteRepository) UpdateExpenseAmount(ctx context.Context, id int64, amount core.Money) (found bool, err error) {
	const op = "update expense amount"

	err = r.withTx(ctx, op, func(tx *sql.Tx) error {
		exists, err := rowExists(ctx, tx, "expenses", id)
		if err != nil {
			return storageErr(op, err)
		}
		if !exists {
			return nil
		}

		_, err = sqlb.Update("expenses").
			Set("amount_cents", amount.Cents).
			Where(sq.Eq{"id": id}).
			RunWith(tx).
			ExecContext(ctx)
		if err != nil {
			return storageErr(op, errors.Wrap(err, "update expense"))
		}
		found = true
		return nil
	})
	if err != nil {
		return false, err
	}

	logger := applog.FromContext(ctx, applog.ComponentStorage)
	if found {
		logger.InfoContext(ctx, "Expense amount updated",
			applog.FieldOperation, applog.OpUpdate,
			applog.FieldExpenseID, id,
			applog.FieldAmountCents, amount.Cents)
	} else {
		logger.DebugContext(ctx, "Expense not found for update",
			applog.FieldOperation, applog.OpUpdate,
			applog.FieldExpenseID, id,
			applog.FieldErrorType, applog.ErrorTypeNotFound)
	}
	return found, nil
}

// DeleteExpense removes expense id. found is false when it did not exist,
// so deleting twice reports not found the second time.
func (r *SQLiteRepository) DeleteExpense(ctx context.Context, id int64) (found bool, err error) {
	const op = "delete expense"

	err = r.withTx(ctx, op, func(tx *sql.Tx) error {
		exists, err := rowExists(ctx, tx, "expenses", id)
		if err != nil {
			return storageErr(op, err)
		}
		if !exists {
			return nil
		}

		_, err = sqlb.Delete("expenses").
			Where(sq.Eq{"id": id}).
			RunWith(tx).
			ExecContext(ctx)
		if err != nil {
			return storageErr(op, errors.Wrap(err, "delete expense"))
		}
		found = true
		return nil
	})
	if err != nil {
		return false, err
	}

	logger := applog.FromContext(ctx, applog.ComponentStorage)
	if found {
		logger.InfoContext(ctx, "Expense deleted",
			applog.FieldOperation, applog.OpDelete,
			applog.FieldExpenseID, id)
	} else {
		logger.DebugContext(ctx, "Expense not found for delete",
			applog.FieldOperation, applog.OpDelete,
			applog.FieldExpenseID, id,
			applog.FieldErrorType, applog.ErrorTypeNotFound)
	}
	return found, nil
}

// GetExpense loads a single expense by id.
func (r *SQLiteRepository) GetExpense(ctx context.Context, id int64) (core.Expense, bool, error) {
	var e core.Expense
	err := sqlb.Select("id", "title", "amount_cents", "date", "category_id").
		From("expenses").
		Where(sq.Eq{"id": id}).
		RunWith(r.db).
		QueryRowContext(ctx).
		Scan(&e.ID, &e.Title, &e.Amount.Cents, &e.Date, &e.CategoryID)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Expense{}, false, nil
	}
	if err != nil {
		return core.Expense{}, false, storageErr("get expense", err)
	}
	return e, true, nil
}

// FindExpensesByDate returns every expense whose date column equals date
// exactly, as a string. "2024-1-5" does not match "2024-01-05".
func (r *SQLiteRepository) FindExpensesByDate(ctx context.Context, date string) ([]core.ExpenseView, error) {
	const op = "find expenses by date"

	rows, err := sqlb.Select("e.id", "e.title", "e.amount_cents", "e.date", "e.category_id", "c.name").
		From("expenses e").
		LeftJoin("categories c ON c.id = e.category_id").
		Where(sq.Eq{"e.date": date}).
		OrderBy("e.id").
		RunWith(r.db).
		QueryContext(ctx)
	if err != nil {
		return nil, storageErr(op, err)
	}
	defer rows.Close()

	var out []core.ExpenseView
	for rows.Next() {
		var (
			v    core.ExpenseView
			name sql.NullString
		)
		if err := rows.Scan(&v.ID, &v.Title, &v.Amount.Cents, &v.Date, &v.CategoryID, &name); err != nil {
			return nil, storageErr(op, errors.Wrap(err, "scan expense"))
		}
		v.CategoryName = name.String
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr(op, errors.Wrap(err, "iterate expenses"))
	}

	return out, nil
}
