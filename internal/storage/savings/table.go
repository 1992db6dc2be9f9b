package savings

import (
	"context"
	"database/sql"
	"errors"

	"github.com/shopspring/decimal"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/dialect"
	"github.com/stephenafamo/bob/dialect/psql/dm"
	"github.com/stephenafamo/bob/dialect/psql/im"
	"github.com/stephenafamo/bob/dialect/psql/sm"
	"github.com/stephenafamo/bob/dialect/psql/um"
	"github.com/stephenafamo/scan"
)

var _ ISavingsTable = (*Table)(nil)

var columns = []any{"id", "user_id", "name", "initial_balance", "current_amount", "created_at"}

// Table provides access to the savings_pools table.
type Table struct {
	exec bob.Executor
}

func NewTable(exec bob.Executor) *Table {
	return &Table{exec: exec}
}

// FindByID retrieves a savings pool by primary key, scoped to the user.
func (t *Table) FindByID(ctx context.Context, userID string, id int64) (*SavingsPool, error) {
	q := psql.Select(
		sm.Columns(columns...),
		sm.From("savings_pools"),
		sm.Where(psql.Quote("id").EQ(psql.Arg(id))),
		sm.Where(psql.Quote("user_id").EQ(psql.Arg(userID))),
	)
	row, err := bob.One(ctx, t.exec, q, scan.StructMapper[*SavingsPool]())
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return row, nil
}

// FindAnyByID retrieves a savings pool regardless of owner, for sync id
// collision checks.
func (t *Table) FindAnyByID(ctx context.Context, id int64) (*SavingsPool, error) {
	q := psql.Select(
		sm.Columns(columns...),
		sm.From("savings_pools"),
		sm.Where(psql.Quote("id").EQ(psql.Arg(id))),
	)
	row, err := bob.One(ctx, t.exec, q, scan.StructMapper[*SavingsPool]())
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return row, nil
}

// Insert creates a new savings pool and returns its generated ID.
func (t *Table) Insert(ctx context.Context, create *SavingsPoolCreate) (int64, error) {
	q := psql.Insert(
		im.Into("savings_pools", "user_id", "name", "initial_balance", "current_amount"),
		im.Values(psql.Arg(create.UserID, create.Name, create.InitialBalance, create.CurrentAmount)),
		im.Returning("id"),
	)
	return bob.One(ctx, t.exec, q, scan.SingleColumnMapper[int64])
}

// List returns all of the user's savings pools in the requested order.
func (t *Table) List(ctx context.Context, userID string, order ListOrder) ([]*SavingsPool, error) {
	mods := []bob.Mod[*dialect.SelectQuery]{
		sm.Columns(columns...),
		sm.From("savings_pools"),
		sm.Where(psql.Quote("user_id").EQ(psql.Arg(userID))),
	}
	switch order {
	case OrderNameAsc:
		mods = append(mods, sm.OrderBy("name").Asc(), sm.OrderBy("id").Asc())
	default:
		mods = append(mods, sm.OrderBy("created_at").Desc(), sm.OrderBy("id").Desc())
	}
	return bob.All(ctx, t.exec, psql.Select(mods...), scan.StructMapper[*SavingsPool]())
}

// Update applies the non-nil fields of update to the user's savings pool.
func (t *Table) Update(ctx context.Context, userID string, id int64, update *SavingsPoolUpdate) error {
	mods := []bob.Mod[*dialect.UpdateQuery]{um.Table("savings_pools")}
	if update.Name != nil {
		mods = append(mods, um.SetCol("name").ToArg(*update.Name))
	}
	if update.InitialBalance != nil {
		mods = append(mods, um.SetCol("initial_balance").ToArg(*update.InitialBalance))
	}
	mods = append(mods,
		um.Where(psql.Quote("id").EQ(psql.Arg(id))),
		um.Where(psql.Quote("user_id").EQ(psql.Arg(userID))),
	)

	res, err := bob.Exec(ctx, t.exec, psql.Update(mods...))
	if err != nil {
		return err
	}
	return requireAffected(res)
}

// UpdateBalance sets current_amount only. Manual balance corrections go
// through here; initial_balance is never touched.
func (t *Table) UpdateBalance(ctx context.Context, userID string, id int64, currentAmount decimal.Decimal) error {
	q := psql.Update(
		um.Table("savings_pools"),
		um.SetCol("current_amount").ToArg(currentAmount),
		um.Where(psql.Quote("id").EQ(psql.Arg(id))),
		um.Where(psql.Quote("user_id").EQ(psql.Arg(userID))),
	)
	res, err := bob.Exec(ctx, t.exec, q)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

// Delete removes the user's savings pool.
func (t *Table) Delete(ctx context.Context, userID string, id int64) error {
	q := psql.Delete(
		dm.From("savings_pools"),
		dm.Where(psql.Quote("id").EQ(psql.Arg(id))),
		dm.Where(psql.Quote("user_id").EQ(psql.Arg(userID))),
	)
	res, err := bob.Exec(ctx, t.exec, q)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

// Upsert inserts the record under its caller-supplied id, or overwrites the
// existing row's fields. Returns whether a new row was inserted.
func (t *Table) Upsert(ctx context.Context, upsert *SavingsPoolUpsert) (bool, error) {
	q := psql.Insert(
		im.Into("savings_pools", "id", "user_id", "name", "initial_balance", "current_amount"),
		im.Values(psql.Arg(upsert.ID, upsert.UserID, upsert.Name, upsert.InitialBalance, upsert.CurrentAmount)),
		im.OnConflict("id").DoUpdate(
			im.SetExcluded("name", "initial_balance", "current_amount"),
		),
		im.Returning("(xmax = 0)"),
	)
	inserted, err := bob.One(ctx, t.exec, q, scan.SingleColumnMapper[bool])
	if err != nil {
		return false, err
	}

	seq := psql.RawQuery(
		"SELECT setval(pg_get_serial_sequence('savings_pools', 'id'), GREATEST($1::bigint, (SELECT COALESCE(MAX(id), 1) FROM savings_pools)), true)",
		upsert.ID,
	)
	if _, err := bob.Exec(ctx, t.exec, seq); err != nil {
		return inserted, err
	}
	return inserted, nil
}

func requireAffected(res sql.Result) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
