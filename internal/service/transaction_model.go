package service

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/duitku/duitku-server/internal/storage/transaction"
)

// Transaction represents a transaction in the service layer.
type Transaction struct {
	ID          int64
	Title       string
	Amount      decimal.Decimal
	Description string
	Date        time.Time
	Type        string
	CategoryID  *int64
	CreatedAt   time.Time
}

// TransactionInput is the input for creating a transaction. Amount may
// arrive signed; it is stored as its absolute value with direction carried
// by Type.
type TransactionInput struct {
	Title       string
	Amount      decimal.Decimal
	Description string
	Date        time.Time
	Type        string
	CategoryID  *int64
}

// TransactionUpdate carries a partial update. Nil fields are untouched.
type TransactionUpdate struct {
	Title         *string
	Amount        *decimal.Decimal
	Description   *string
	Date          *time.Time
	Type          *string
	CategoryID    *int64
	ClearCategory bool
}

func transactionFromStorage(row *transaction.Transaction) Transaction {
	return Transaction{
		ID:          row.ID,
		Title:       row.Title,
		Amount:      row.Amount,
		Description: row.Description,
		Date:        row.Date,
		Type:        row.Type,
		CategoryID:  row.CategoryID,
		CreatedAt:   row.CreatedAt,
	}
}

func validTransactionType(t string) bool {
	return t == transaction.TypeIncome || t == transaction.TypeExpense
}
