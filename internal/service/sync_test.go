package service

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/duitku/duitku-server/internal/localstore"
	"github.com/duitku/duitku-server/internal/operator/actions"
	"github.com/duitku/duitku-server/internal/storage/transaction"
)

func testMirror() localstore.Mirror {
	categoryID := int64(7)
	return localstore.Mirror{
		Transactions: []localstore.TransactionRecord{
			{ID: 101, Title: "Coffee", Amount: "12.50", Date: "2025-06-01", Type: "expense", CategoryID: &categoryID},
			{ID: 102, Title: "Salary", Amount: "1000", Date: "2025-06-02", Type: "pemasukan"},
		},
		Savings: []localstore.SavingsRecord{
			{ID: 201, Name: "Emergency", InitialBalance: "500", CurrentAmount: "650"},
		},
	}
}

func TestReplay_AllRecordsUpserted(t *testing.T) {
	op := &fakeProcessor{}
	op.perform = func(a actions.IAction) error {
		switch action := a.(type) {
		case *actions.UpsertTransaction:
			action.Inserted = true
		case *actions.UpsertSavings:
			action.Inserted = true
		}
		return nil
	}
	svc := NewSyncService(op)

	report := svc.Replay(context.Background(), testUserID, testMirror())

	assert.Equal(t, 3, report.Total)
	assert.Equal(t, 3, report.Inserted)
	assert.Equal(t, 0, report.Updated)
	assert.Empty(t, report.Errors)

	assert.Len(t, op.actions, 3)
	first := op.actions[0].(*actions.UpsertTransaction)
	assert.Equal(t, int64(101), first.ID, "client-assigned id is preserved")
	assert.Equal(t, testUserID, first.UserID)
	assert.True(t, first.Amount.Equal(decimal.RequireFromString("12.50")))

	second := op.actions[1].(*actions.UpsertTransaction)
	assert.Equal(t, transaction.TypeIncome, second.Type, "local-store alias normalized")

	pool := op.actions[2].(*actions.UpsertSavings)
	assert.Equal(t, int64(201), pool.ID)
	assert.True(t, pool.CurrentAmount.Equal(decimal.RequireFromString("650")))
}

func TestReplay_SecondRunCountsUpdates(t *testing.T) {
	op := &fakeProcessor{}
	op.perform = func(a actions.IAction) error {
		// Every record already exists; the upsert takes the update branch.
		return nil
	}
	svc := NewSyncService(op)

	report := svc.Replay(context.Background(), testUserID, testMirror())

	assert.Equal(t, 3, report.Total)
	assert.Equal(t, 0, report.Inserted)
	assert.Equal(t, 3, report.Updated)
	assert.Empty(t, report.Errors)
}

func TestReplay_BadRecordDoesNotBlockOthers(t *testing.T) {
	op := &fakeProcessor{}
	op.perform = func(a actions.IAction) error {
		if tx, ok := a.(*actions.UpsertTransaction); ok {
			tx.Inserted = true
		}
		if pool, ok := a.(*actions.UpsertSavings); ok {
			pool.Inserted = true
		}
		return nil
	}
	svc := NewSyncService(op)

	mirror := testMirror()
	mirror.Transactions[0].Amount = "not-a-number"
	mirror.Savings = append(mirror.Savings, localstore.SavingsRecord{
		ID: 202, Name: "Broken", InitialBalance: "abc", CurrentAmount: "0",
	})

	report := svc.Replay(context.Background(), testUserID, mirror)

	assert.Equal(t, 4, report.Total)
	assert.Equal(t, 2, report.Inserted)
	assert.Len(t, report.Errors, 2)

	assert.Equal(t, "transaction", report.Errors[0].Kind)
	assert.Equal(t, int64(101), report.Errors[0].ID)
	assert.Equal(t, "savings", report.Errors[1].Kind)
	assert.Equal(t, int64(202), report.Errors[1].ID)
}

func TestReplay_ForeignIDRejectedPerRecord(t *testing.T) {
	op := &fakeProcessor{}
	op.perform = func(a actions.IAction) error {
		if tx, ok := a.(*actions.UpsertTransaction); ok {
			if tx.ID == 101 {
				return actions.ErrIDOwnedByOtherUser
			}
			tx.Inserted = true
		}
		if pool, ok := a.(*actions.UpsertSavings); ok {
			pool.Inserted = true
		}
		return nil
	}
	svc := NewSyncService(op)

	report := svc.Replay(context.Background(), testUserID, testMirror())

	assert.Equal(t, 3, report.Total)
	assert.Equal(t, 2, report.Inserted)
	assert.Len(t, report.Errors, 1)
	assert.Equal(t, int64(101), report.Errors[0].ID)
}

func TestReplay_EmptyMirror(t *testing.T) {
	op := &fakeProcessor{}
	svc := NewSyncService(op)

	report := svc.Replay(context.Background(), testUserID, localstore.Mirror{})

	assert.Equal(t, 0, report.Total)
	assert.Empty(t, report.Errors)
	assert.Empty(t, op.actions)
}

func TestReplay_ProcessorFailureIsolated(t *testing.T) {
	op := &fakeProcessor{}
	op.perform = func(a actions.IAction) error {
		if tx, ok := a.(*actions.UpsertTransaction); ok && tx.ID == 102 {
			return errors.New("connection reset")
		}
		return nil
	}
	svc := NewSyncService(op)

	report := svc.Replay(context.Background(), testUserID, testMirror())

	assert.Equal(t, 3, report.Total)
	assert.Len(t, report.Errors, 1)
	assert.Equal(t, int64(102), report.Errors[0].ID)
	assert.Len(t, op.actions, 3, "remaining records still dispatched")
}
