package actions

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"

	"github.com/duitku/duitku-server/internal/storage"
	"github.com/duitku/duitku-server/internal/storage/savings"
)

// CreateSavings inserts a new savings pool. CreatedID is set on success.
type CreateSavings struct {
	UserID         string
	Name           string
	InitialBalance decimal.Decimal

	CreatedID int64
}

func (a *CreateSavings) Perform(ctx context.Context, writer *storage.Writer) error {
	id, err := writer.Savings.Insert(ctx, &savings.SavingsPoolCreate{
		UserID:         a.UserID,
		Name:           a.Name,
		InitialBalance: a.InitialBalance,
		// A new pool starts at its initial balance; later corrections go
		// through UpdateSavingsBalance.
		CurrentAmount: a.InitialBalance,
	})
	if err != nil {
		return err
	}
	a.CreatedID = id
	return nil
}

// UpdateSavings applies a partial update to the user's savings pool.
type UpdateSavings struct {
	UserID string
	ID     int64
	Update savings.SavingsPoolUpdate
}

func (a *UpdateSavings) Perform(ctx context.Context, writer *storage.Writer) error {
	return writer.Savings.Update(ctx, a.UserID, a.ID, &a.Update)
}

// UpdateSavingsBalance sets current_amount only.
type UpdateSavingsBalance struct {
	UserID        string
	ID            int64
	CurrentAmount decimal.Decimal
}

func (a *UpdateSavingsBalance) Perform(ctx context.Context, writer *storage.Writer) error {
	return writer.Savings.UpdateBalance(ctx, a.UserID, a.ID, a.CurrentAmount)
}

// DeleteSavings removes the user's savings pool.
type DeleteSavings struct {
	UserID string
	ID     int64
}

func (a *DeleteSavings) Perform(ctx context.Context, writer *storage.Writer) error {
	return writer.Savings.Delete(ctx, a.UserID, a.ID)
}

// UpsertSavings is the sync bridge's unit of work for savings pools.
type UpsertSavings struct {
	UserID         string
	ID             int64
	Name           string
	InitialBalance decimal.Decimal
	CurrentAmount  decimal.Decimal

	Inserted bool
}

func (a *UpsertSavings) Perform(ctx context.Context, writer *storage.Writer) error {
	existing, err := writer.Savings.FindAnyByID(ctx, a.ID)
	if err != nil && !errors.Is(err, savings.ErrNotFound) {
		return err
	}
	if existing != nil && existing.UserID != a.UserID {
		return ErrIDOwnedByOtherUser
	}

	inserted, err := writer.Savings.Upsert(ctx, &savings.SavingsPoolUpsert{
		ID:             a.ID,
		UserID:         a.UserID,
		Name:           a.Name,
		InitialBalance: a.InitialBalance,
		CurrentAmount:  a.CurrentAmount,
	})
	if err != nil {
		return err
	}
	a.Inserted = inserted
	return nil
}
