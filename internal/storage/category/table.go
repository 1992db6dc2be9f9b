package category

import (
	"context"
	"database/sql"
	"errors"

	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/sm"
	"github.com/stephenafamo/scan"
)

var _ ICategoryTable = (*Table)(nil)

// Table provides access to the categories table.
type Table struct {
	exec bob.Executor
}

func NewTable(exec bob.Executor) *Table {
	return &Table{exec: exec}
}

// FindByID retrieves a category by primary key.
func (t *Table) FindByID(ctx context.Context, id int64) (*Category, error) {
	q := psql.Select(
		sm.Columns("id", "name", "kind"),
		sm.From("categories"),
		sm.Where(psql.Quote("id").EQ(psql.Arg(id))),
	)
	row, err := bob.One(ctx, t.exec, q, scan.StructMapper[*Category]())
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return row, nil
}

// FindByNameKind retrieves a category by its unique (name, kind) pair. The
// name match is case-insensitive so imported spreadsheets don't have to
// reproduce seed-data casing.
func (t *Table) FindByNameKind(ctx context.Context, name, kind string) (*Category, error) {
	q := psql.Select(
		sm.Columns("id", "name", "kind"),
		sm.From("categories"),
		sm.Where(psql.Raw("LOWER(name) = LOWER(?)", psql.Arg(name))),
		sm.Where(psql.Quote("kind").EQ(psql.Arg(kind))),
	)
	row, err := bob.One(ctx, t.exec, q, scan.StructMapper[*Category]())
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return row, nil
}

// List returns all categories ordered by kind then name.
func (t *Table) List(ctx context.Context) ([]*Category, error) {
	q := psql.Select(
		sm.Columns("id", "name", "kind"),
		sm.From("categories"),
		sm.OrderBy("kind").Asc(),
		sm.OrderBy("name").Asc(),
	)
	return bob.All(ctx, t.exec, q, scan.StructMapper[*Category]())
}
