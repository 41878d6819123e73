package storage

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/pkg/errors"

	"fintrack/internal/core"
)

// isoDateGlob matches the exact YYYY-MM-DD shape so that malformed dates
// sorting inside a range ("2024-01-5x") are not counted.
const isoDateGlob = "[0-9][0-9][0-9][0-9]-[0-9][0-9]-[0-9][0-9]"

// CategoryTotals sums expense amounts per category name. Categories without
// expenses do not appear; categories sharing a name are merged.
func (r *SQLiteRepository) CategoryTotals(ctx context.Context) ([]core.CategoryTotal, error) {
	const op = "category totals"

	rows, err := sqlb.Select("c.name", "SUM(e.amount_cents)").
		From("categories c").
		Join("expenses e ON c.id = e.category_id").
		GroupBy("c.name").
		OrderBy("c.name").
		RunWith(r.db).
		QueryContext(ctx)
	if err != nil {
		return nil, storageErr(op, err)
	}
	defer rows.Close()

	var out []core.CategoryTotal
	for rows.Next() {
		var ct core.CategoryTotal
		if err := rows.Scan(&ct.Name, &ct.Total.Cents); err != nil {
			return nil, storageErr(op, errors.Wrap(err, "scan category total"))
		}
		out = append(out, ct)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr(op, errors.Wrap(err, "iterate category totals"))
	}
	return out, nil
}

// SumExpensesBetween totals expenses dated within [first, last], both
// inclusive YYYY-MM-DD strings. No matching rows yields zero.
func (r *SQLiteRepository) SumExpensesBetween(ctx context.Context, first, last string) (core.Money, error) {
	var total core.Money
	err := sqlb.Select("COALESCE(SUM(amount_cents), 0)").
		From("expenses").
		Where(sq.And{
			sq.Expr("date GLOB ?", isoDateGlob),
			sq.GtOrEq{"date": first},
			sq.LtOrEq{"date": last},
		}).
		RunWith(r.db).
		QueryRowContext(ctx).
		Scan(&total.Cents)
	if err != nil {
		return core.Money{}, storageErr("sum expenses", err)
	}
	return total, nil
}
