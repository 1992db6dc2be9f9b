package transaction

import (
	"context"
	"database/sql"
	"errors"

	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/dialect"
	"github.com/stephenafamo/bob/dialect/psql/dm"
	"github.com/stephenafamo/bob/dialect/psql/im"
	"github.com/stephenafamo/bob/dialect/psql/sm"
	"github.com/stephenafamo/bob/dialect/psql/um"
	"github.com/stephenafamo/scan"
)

var _ ITransactionTable = (*Table)(nil)

var columns = []any{"id", "user_id", "title", "amount", "description", "transaction_date", "type", "category_id", "created_at"}

// Table provides access to the transactions table over any bob executor
// (pooled DB or transaction).
type Table struct {
	exec bob.Executor
}

func NewTable(exec bob.Executor) *Table {
	return &Table{exec: exec}
}

// FindByID retrieves a transaction by primary key, scoped to the user.
func (t *Table) FindByID(ctx context.Context, userID string, id int64) (*Transaction, error) {
	q := psql.Select(
		sm.Columns(columns...),
		sm.From("transactions"),
		sm.Where(psql.Quote("id").EQ(psql.Arg(id))),
		sm.Where(psql.Quote("user_id").EQ(psql.Arg(userID))),
	)
	row, err := bob.One(ctx, t.exec, q, scan.StructMapper[*Transaction]())
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return row, nil
}

// FindAnyByID retrieves a transaction regardless of owner. The sync bridge
// uses it to detect id collisions across users before upserting.
func (t *Table) FindAnyByID(ctx context.Context, id int64) (*Transaction, error) {
	q := psql.Select(
		sm.Columns(columns...),
		sm.From("transactions"),
		sm.Where(psql.Quote("id").EQ(psql.Arg(id))),
	)
	row, err := bob.One(ctx, t.exec, q, scan.StructMapper[*Transaction]())
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return row, nil
}

// Insert creates a new transaction and returns its generated ID.
func (t *Table) Insert(ctx context.Context, create *TransactionCreate) (int64, error) {
	q := psql.Insert(
		im.Into("transactions", "user_id", "title", "amount", "description", "transaction_date", "type", "category_id"),
		im.Values(psql.Arg(create.UserID, create.Title, create.Amount, create.Description, create.Date, create.Type, create.CategoryID)),
		im.Returning("id"),
	)
	return bob.One(ctx, t.exec, q, scan.SingleColumnMapper[int64])
}

// List returns all of the user's transactions ordered by transaction date
// descending, id descending. Export relies on this ordering being stable.
func (t *Table) List(ctx context.Context, userID string) ([]*Transaction, error) {
	q := psql.Select(
		sm.Columns(columns...),
		sm.From("transactions"),
		sm.Where(psql.Quote("user_id").EQ(psql.Arg(userID))),
		sm.OrderBy("transaction_date").Desc(),
		sm.OrderBy("id").Desc(),
	)
	return bob.All(ctx, t.exec, q, scan.StructMapper[*Transaction]())
}

// Update applies the non-nil fields of update to the user's transaction.
func (t *Table) Update(ctx context.Context, userID string, id int64, update *TransactionUpdate) error {
	mods := []bob.Mod[*dialect.UpdateQuery]{um.Table("transactions")}
	if update.Title != nil {
		mods = append(mods, um.SetCol("title").ToArg(*update.Title))
	}
	if update.Amount != nil {
		mods = append(mods, um.SetCol("amount").ToArg(*update.Amount))
	}
	if update.Description != nil {
		mods = append(mods, um.SetCol("description").ToArg(*update.Description))
	}
	if update.Date != nil {
		mods = append(mods, um.SetCol("transaction_date").ToArg(*update.Date))
	}
	if update.Type != nil {
		mods = append(mods, um.SetCol("type").ToArg(*update.Type))
	}
	if update.ClearCategory {
		mods = append(mods, um.SetCol("category_id").ToArg(nil))
	} else if update.CategoryID != nil {
		mods = append(mods, um.SetCol("category_id").ToArg(*update.CategoryID))
	}
	mods = append(mods,
		um.Where(psql.Quote("id").EQ(psql.Arg(id))),
		um.Where(psql.Quote("user_id").EQ(psql.Arg(userID))),
	)

	res, err := bob.Exec(ctx, t.exec, psql.Update(mods...))
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes the user's transaction. Deleting a nonexistent id is a
// not-found error, never a silent success.
func (t *Table) Delete(ctx context.Context, userID string, id int64) error {
	q := psql.Delete(
		dm.From("transactions"),
		dm.Where(psql.Quote("id").EQ(psql.Arg(id))),
		dm.Where(psql.Quote("user_id").EQ(psql.Arg(userID))),
	)
	res, err := bob.Exec(ctx, t.exec, q)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// Upsert inserts the record under its caller-supplied id, or overwrites the
// existing row's fields. Returns whether a new row was inserted. The id
// sequence is advanced past explicit ids so later server-side inserts
// cannot collide with synced rows.
func (t *Table) Upsert(ctx context.Context, upsert *TransactionUpsert) (bool, error) {
	q := psql.Insert(
		im.Into("transactions", "id", "user_id", "title", "amount", "description", "transaction_date", "type", "category_id"),
		im.Values(psql.Arg(upsert.ID, upsert.UserID, upsert.Title, upsert.Amount, upsert.Description, upsert.Date, upsert.Type, upsert.CategoryID)),
		im.OnConflict("id").DoUpdate(
			im.SetExcluded("title", "amount", "description", "transaction_date", "type", "category_id"),
		),
		im.Returning("(xmax = 0)"),
	)
	inserted, err := bob.One(ctx, t.exec, q, scan.SingleColumnMapper[bool])
	if err != nil {
		return false, err
	}

	seq := psql.RawQuery(
		"SELECT setval(pg_get_serial_sequence('transactions', 'id'), GREATEST($1::bigint, (SELECT COALESCE(MAX(id), 1) FROM transactions)), true)",
		upsert.ID,
	)
	if _, err := bob.Exec(ctx, t.exec, seq); err != nil {
		return inserted, err
	}
	return inserted, nil
}
