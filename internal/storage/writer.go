package storage

import (
	"context"

	"github.com/stephenafamo/bob"

	"github.com/duitku/duitku-server/internal/storage/category"
	"github.com/duitku/duitku-server/internal/storage/savings"
	"github.com/duitku/duitku-server/internal/storage/transaction"
)

// Writer exposes the per-entity tables over a single database transaction.
// One operator action runs against one Writer.
type Writer struct {
	tx           bob.Tx
	Transactions transaction.ITransactionTable
	Savings      savings.ISavingsTable
	Categories   category.ICategoryTable
}

func NewWriter(tx bob.Tx) *Writer {
	return &Writer{
		tx:           tx,
		Transactions: transaction.NewTable(tx),
		Savings:      savings.NewTable(tx),
		Categories:   category.NewTable(tx),
	}
}

func (w *Writer) Commit() error {
	return w.tx.Commit(context.Background())
}

func (w *Writer) Rollback() error {
	return w.tx.Rollback(context.Background())
}
