package savings

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// ErrNotFound is returned when an id does not exist for the given user.
var ErrNotFound = errors.New("savings pool not found")

// ListOrder selects the ordering of List results.
type ListOrder int

const (
	// OrderCreatedDesc is the default read ordering.
	OrderCreatedDesc ListOrder = iota
	// OrderNameAsc is used by the savings export.
	OrderNameAsc
)

// SavingsPool represents a savings_pools table row. CurrentAmount is
// independently settable (manual balance correction) and is not derived
// from transaction history.
type SavingsPool struct {
	ID             int64           `db:"id"`
	UserID         string          `db:"user_id"`
	Name           string          `db:"name"`
	InitialBalance decimal.Decimal `db:"initial_balance"`
	CurrentAmount  decimal.Decimal `db:"current_amount"`
	CreatedAt      time.Time       `db:"created_at"`
}

// SavingsPoolCreate is the input for creating a new savings pool.
type SavingsPoolCreate struct {
	UserID         string
	Name           string
	InitialBalance decimal.Decimal
	CurrentAmount  decimal.Decimal
}

// SavingsPoolUpdate carries partial updates. Nil fields are left untouched.
type SavingsPoolUpdate struct {
	Name           *string
	InitialBalance *decimal.Decimal
}

// SavingsPoolUpsert is the input for the sync bridge's upsert, keyed by the
// record's caller-supplied id.
type SavingsPoolUpsert struct {
	ID             int64
	UserID         string
	Name           string
	InitialBalance decimal.Decimal
	CurrentAmount  decimal.Decimal
}

// ISavingsTable defines the interface for savings pool storage operations.
type ISavingsTable interface {
	FindByID(ctx context.Context, userID string, id int64) (*SavingsPool, error)
	FindAnyByID(ctx context.Context, id int64) (*SavingsPool, error)
	Insert(ctx context.Context, create *SavingsPoolCreate) (int64, error)
	List(ctx context.Context, userID string, order ListOrder) ([]*SavingsPool, error)
	Update(ctx context.Context, userID string, id int64, update *SavingsPoolUpdate) error
	UpdateBalance(ctx context.Context, userID string, id int64, currentAmount decimal.Decimal) error
	Delete(ctx context.Context, userID string, id int64) error
	Upsert(ctx context.Context, upsert *SavingsPoolUpsert) (inserted bool, err error)
}
