package service

import (
	"context"

	"github.com/duitku/duitku-server/internal/operator/actions"
	"github.com/duitku/duitku-server/internal/storage"
	"github.com/duitku/duitku-server/internal/storage/transaction"
)

// TransactionService handles transaction business logic. Reads go straight
// to the table; mutations are dispatched through the operator.
type TransactionService struct {
	storage *storage.Storage
	op      Processor
}

// NewTransactionService creates a new TransactionService.
func NewTransactionService(store *storage.Storage, op Processor) *TransactionService {
	return &TransactionService{storage: store, op: op}
}

// Create creates a new transaction and returns it with its generated id.
func (s *TransactionService) Create(ctx context.Context, userID string, in TransactionInput) (Transaction, error) {
	if !validTransactionType(in.Type) {
		return Transaction{}, ErrInvalidType
	}

	action := &actions.CreateTransaction{
		UserID:      userID,
		Title:       in.Title,
		Amount:      in.Amount.Abs(),
		Description: in.Description,
		Date:        in.Date,
		Type:        in.Type,
		CategoryID:  in.CategoryID,
	}
	if err := s.op.Process(ctx, action); err != nil {
		return Transaction{}, mapStorageErr(err)
	}

	return Transaction{
		ID:          action.CreatedID,
		Title:       in.Title,
		Amount:      in.Amount.Abs(),
		Description: in.Description,
		Date:        in.Date,
		Type:        in.Type,
		CategoryID:  in.CategoryID,
	}, nil
}

// List returns the user's full transaction collection, ordered by
// transaction date descending. No pagination.
func (s *TransactionService) List(ctx context.Context, userID string) ([]Transaction, error) {
	rows, err := s.storage.Transactions.List(ctx, userID)
	if err != nil {
		return nil, err
	}

	converted := make([]Transaction, len(rows))
	for i, row := range rows {
		converted[i] = transactionFromStorage(row)
	}
	return converted, nil
}

// Update applies a partial update to the user's transaction.
func (s *TransactionService) Update(ctx context.Context, userID string, id int64, upd TransactionUpdate) error {
	if upd.Type != nil && !validTransactionType(*upd.Type) {
		return ErrInvalidType
	}

	action := &actions.UpdateTransaction{
		UserID: userID,
		ID:     id,
		Update: transaction.TransactionUpdate{
			Title:         upd.Title,
			Amount:        upd.Amount,
			Description:   upd.Description,
			Date:          upd.Date,
			Type:          upd.Type,
			CategoryID:    upd.CategoryID,
			ClearCategory: upd.ClearCategory,
		},
	}
	return mapStorageErr(s.op.Process(ctx, action))
}

// Delete removes the user's transaction. A missing id is ErrNotFound,
// never a silent success.
func (s *TransactionService) Delete(ctx context.Context, userID string, id int64) error {
	return mapStorageErr(s.op.Process(ctx, &actions.DeleteTransaction{UserID: userID, ID: id}))
}
