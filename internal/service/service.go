package service

import (
	"context"
	"errors"

	"github.com/duitku/duitku-server/internal/operator/actions"
	"github.com/duitku/duitku-server/internal/storage"
	"github.com/duitku/duitku-server/internal/storage/category"
	"github.com/duitku/duitku-server/internal/storage/savings"
	"github.com/duitku/duitku-server/internal/storage/transaction"
)

// Processor dispatches one mutation action; the operator implements it.
type Processor interface {
	Process(ctx context.Context, action actions.IAction) error
}

// Service-level error taxonomy. Handlers map these onto HTTP statuses:
// ErrNotFound -> 404, the rest of the Err* sentinels -> 400.
var (
	ErrNotFound        = errors.New("record not found")
	ErrInvalidType     = errors.New("type must be income or expense")
	ErrInvalidCategory = errors.New("invalid category for this transaction type")
)

// Service holds all business logic services.
type Service struct {
	Transactions *TransactionService
	Savings      *SavingsService
	Importer     *ImportService
	Exporter     *ExportService
	Sync         *SyncService
}

// NewService creates a new Service over the given storage and processor.
func NewService(store *storage.Storage, op Processor) *Service {
	return &Service{
		Transactions: NewTransactionService(store, op),
		Savings:      NewSavingsService(store, op),
		Importer:     NewImportService(store.Categories, op),
		Exporter:     NewExportService(store),
		Sync:         NewSyncService(op),
	}
}

// mapStorageErr folds per-entity sentinels into the service taxonomy.
func mapStorageErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, transaction.ErrNotFound), errors.Is(err, savings.ErrNotFound):
		return ErrNotFound
	case errors.Is(err, category.ErrNotFound), errors.Is(err, actions.ErrCategoryKindMismatch):
		return ErrInvalidCategory
	default:
		return err
	}
}
