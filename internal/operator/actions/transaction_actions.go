package actions

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/duitku/duitku-server/internal/storage"
	"github.com/duitku/duitku-server/internal/storage/category"
	"github.com/duitku/duitku-server/internal/storage/transaction"
)

// ErrCategoryKindMismatch is returned when a referenced category's kind
// does not match the transaction's type.
var ErrCategoryKindMismatch = errors.New("category kind does not match transaction type")

// checkCategory verifies the referenced category exists and shares its kind
// with the transaction's type. A nil reference is always valid.
func checkCategory(ctx context.Context, writer *storage.Writer, categoryID *int64, txType string) error {
	if categoryID == nil {
		return nil
	}
	cat, err := writer.Categories.FindByID(ctx, *categoryID)
	if err != nil {
		return err
	}
	if cat.Kind != txType {
		return ErrCategoryKindMismatch
	}
	return nil
}

// CreateTransaction inserts a new transaction. CreatedID is set on success.
type CreateTransaction struct {
	UserID      string
	Title       string
	Amount      decimal.Decimal
	Description string
	Date        time.Time
	Type        string
	CategoryID  *int64

	CreatedID int64
}

func (a *CreateTransaction) Perform(ctx context.Context, writer *storage.Writer) error {
	if err := checkCategory(ctx, writer, a.CategoryID, a.Type); err != nil {
		return err
	}

	id, err := writer.Transactions.Insert(ctx, &transaction.TransactionCreate{
		UserID:      a.UserID,
		Title:       a.Title,
		Amount:      a.Amount.Abs(),
		Description: a.Description,
		Date:        a.Date,
		Type:        a.Type,
		CategoryID:  a.CategoryID,
	})
	if err != nil {
		return err
	}
	a.CreatedID = id
	return nil
}

// UpdateTransaction applies a partial update to the user's transaction.
type UpdateTransaction struct {
	UserID string
	ID     int64
	Update transaction.TransactionUpdate
}

func (a *UpdateTransaction) Perform(ctx context.Context, writer *storage.Writer) error {
	if a.Update.CategoryID != nil && !a.Update.ClearCategory {
		existing, err := writer.Transactions.FindByID(ctx, a.UserID, a.ID)
		if err != nil {
			return err
		}
		txType := existing.Type
		if a.Update.Type != nil {
			txType = *a.Update.Type
		}
		if err := checkCategory(ctx, writer, a.Update.CategoryID, txType); err != nil {
			return err
		}
	}
	if a.Update.Amount != nil {
		abs := a.Update.Amount.Abs()
		a.Update.Amount = &abs
	}
	return writer.Transactions.Update(ctx, a.UserID, a.ID, &a.Update)
}

// DeleteTransaction removes the user's transaction; a missing id surfaces
// transaction.ErrNotFound.
type DeleteTransaction struct {
	UserID string
	ID     int64
}

func (a *DeleteTransaction) Perform(ctx context.Context, writer *storage.Writer) error {
	return writer.Transactions.Delete(ctx, a.UserID, a.ID)
}

// ErrIDOwnedByOtherUser rejects a sync upsert whose id already belongs to a
// different user's row.
var ErrIDOwnedByOtherUser = errors.New("record id belongs to another user")

// UpsertTransaction is the sync bridge's unit of work: insert the record
// under its original id, or overwrite the existing row's fields. Replaying
// the same record is idempotent. Inserted reports which branch ran.
type UpsertTransaction struct {
	UserID      string
	ID          int64
	Title       string
	Amount      decimal.Decimal
	Description string
	Date        time.Time
	Type        string
	CategoryID  *int64

	Inserted bool
}

func (a *UpsertTransaction) Perform(ctx context.Context, writer *storage.Writer) error {
	existing, err := writer.Transactions.FindAnyByID(ctx, a.ID)
	if err != nil && !errors.Is(err, transaction.ErrNotFound) {
		return err
	}
	if existing != nil && existing.UserID != a.UserID {
		return ErrIDOwnedByOtherUser
	}

	if err := checkCategory(ctx, writer, a.CategoryID, a.Type); err != nil {
		// Synced records may reference categories deleted since the guest
		// recorded them; fall back to uncategorized rather than failing.
		if errors.Is(err, category.ErrNotFound) || errors.Is(err, ErrCategoryKindMismatch) {
			a.CategoryID = nil
		} else {
			return err
		}
	}

	inserted, err := writer.Transactions.Upsert(ctx, &transaction.TransactionUpsert{
		ID:          a.ID,
		UserID:      a.UserID,
		Title:       a.Title,
		Amount:      a.Amount.Abs(),
		Description: a.Description,
		Date:        a.Date,
		Type:        a.Type,
		CategoryID:  a.CategoryID,
	})
	if err != nil {
		return err
	}
	a.Inserted = inserted
	return nil
}
