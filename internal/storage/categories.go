package storage

import (
	"context"
	"database/sql"

	"github.com/pkg/errors"

	"fintrack/internal/core"
	applog "fintrack/internal/log"
)

// AddCategory inserts a category. Duplicate names are allowed.
func (r *SQLiteRepository) AddCategory(ctx context.Context, name string) (int64, error) {
	const op = "add category"

	var id int64
	err := r.withTx(ctx, op, func(tx *sql.Tx) error {
		res, err := sqlb.Insert("categories").
			Columns("name").
			Values(name).
			RunWith(tx).
			ExecContext(ctx)
		if err != nil {
			return storageErr(op, errors.Wrap(err, "insert category"))
		}
		id, err = res.LastInsertId()
		if err != nil {
			return storageErr(op, errors.Wrap(err, "read category id"))
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	applog.FromContext(ctx, applog.ComponentStorage).InfoContext(ctx, "Category saved to SQLite",
		applog.FieldOperation, applog.OpCreate,
		applog.FieldCategoryID, id,
		"name", name)
	return id, nil
}

// ListCategories returns all categories ordered by id.
func (r *SQLiteRepository) ListCategories(ctx context.Context) ([]core.Category, error) {
	const op = "list categories"

	rows, err := sqlb.Select("id", "name").
		From("categories").
		OrderBy("id").
		RunWith(r.db).
		QueryContext(ctx)
	if err != nil {
		return nil, storageErr(op, err)
	}
	defer rows.Close()

	var out []core.Category
	for rows.Next() {
		var c core.Category
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, storageErr(op, errors.Wrap(err, "scan category"))
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr(op, errors.Wrap(err, "iterate categories"))
	}
	return out, nil
}
