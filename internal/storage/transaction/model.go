package transaction

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// Transaction types. A transaction's persisted amount is always
// non-negative; direction is carried solely by the type.
const (
	TypeIncome  = "income"
	TypeExpense = "expense"
)

// ErrNotFound is returned when an id does not exist for the given user.
var ErrNotFound = errors.New("transaction not found")

// Transaction represents a transactions table row.
type Transaction struct {
	ID          int64           `db:"id"`
	UserID      string          `db:"user_id"`
	Title       string          `db:"title"`
	Amount      decimal.Decimal `db:"amount"`
	Description string          `db:"description"`
	Date        time.Time       `db:"transaction_date"`
	Type        string          `db:"type"`
	CategoryID  *int64          `db:"category_id"`
	CreatedAt   time.Time       `db:"created_at"`
}

// TransactionCreate is the input for creating a new transaction.
type TransactionCreate struct {
	UserID      string
	Title       string
	Amount      decimal.Decimal
	Description string
	Date        time.Time
	Type        string
	CategoryID  *int64
}

// TransactionUpdate carries partial updates. Nil fields are left untouched;
// ClearCategory removes the category reference.
type TransactionUpdate struct {
	Title         *string
	Amount        *decimal.Decimal
	Description   *string
	Date          *time.Time
	Type          *string
	CategoryID    *int64
	ClearCategory bool
}

// TransactionUpsert is the input for the sync bridge's upsert. The id is
// caller-supplied and must be stable across replays; that stability is the
// precondition that makes re-sync idempotent.
type TransactionUpsert struct {
	ID          int64
	UserID      string
	Title       string
	Amount      decimal.Decimal
	Description string
	Date        time.Time
	Type        string
	CategoryID  *int64
}

// ITransactionTable defines the interface for transaction storage
// operations. This abstraction allows swapping the implementation without
// changing callers.
type ITransactionTable interface {
	FindByID(ctx context.Context, userID string, id int64) (*Transaction, error)
	FindAnyByID(ctx context.Context, id int64) (*Transaction, error)
	Insert(ctx context.Context, create *TransactionCreate) (int64, error)
	List(ctx context.Context, userID string) ([]*Transaction, error)
	Update(ctx context.Context, userID string, id int64, update *TransactionUpdate) error
	Delete(ctx context.Context, userID string, id int64) error
	Upsert(ctx context.Context, upsert *TransactionUpsert) (inserted bool, err error)
}
