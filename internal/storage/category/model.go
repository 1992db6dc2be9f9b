package category

import (
	"context"
	"errors"
)

// Category kinds match transaction types one-to-one.
const (
	KindIncome  = "income"
	KindExpense = "expense"
)

// FallbackName is the category the import pipeline falls back to when a
// spreadsheet names a category that does not exist for the row's type.
const FallbackName = "Uncategorized"

// ErrNotFound is returned when no category matches a lookup.
var ErrNotFound = errors.New("category not found")

// Category is seed/reference data classifying transactions. Lookup is by
// the (name, kind) pair, which is unique.
type Category struct {
	ID   int64  `db:"id"`
	Name string `db:"name"`
	Kind string `db:"kind"`
}

// ICategoryTable defines the interface for category storage operations.
type ICategoryTable interface {
	FindByID(ctx context.Context, id int64) (*Category, error)
	FindByNameKind(ctx context.Context, name, kind string) (*Category, error)
	List(ctx context.Context) ([]*Category, error)
}
