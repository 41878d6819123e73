package storage

import (
	"context"
	"database/sql"

	"github.com/pkg/errors"

	"fintrack/internal/core"
	applog "fintrack/internal/log"
)

// AddSubscription stores a subscription. Nothing reads subscriptions back yet.
func (r *SQLiteRepository) AddSubscription(ctx context.Context, s core.Subscription) (int64, error) {
	const op = "add subscription"

	var id int64
	err := r.withTx(ctx, op, func(tx *sql.Tx) error {
		res, err := sqlb.Insert("subscriptions").
			Columns("name", "amount_cents", "next_date").
			Values(s.Name, s.Amount.Cents, s.NextDate).
			RunWith(tx).
			ExecContext(ctx)
		if err != nil {
			return storageErr(op, errors.Wrap(err, "insert subscription"))
		}
		id, err = res.LastInsertId()
		if err != nil {
			return storageErr(op, errors.Wrap(err, "read subscription id"))
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	applog.FromContext(ctx, applog.ComponentStorage).InfoContext(ctx, "Subscription saved to SQLite",
		applog.FieldOperation, applog.OpCreate,
		"id", id,
		"name", s.Name,
		"next_date", s.NextDate)
	return id, nil
}
