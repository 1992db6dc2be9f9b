package service

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/duitku/duitku-server/internal/operator/actions"
	"github.com/duitku/duitku-server/internal/storage"
	"github.com/duitku/duitku-server/internal/storage/savings"
)

// SavingsPool represents a savings pool in the service layer.
type SavingsPool struct {
	ID             int64
	Name           string
	InitialBalance decimal.Decimal
	CurrentAmount  decimal.Decimal
	CreatedAt      time.Time
}

// SavingsUpdate carries a partial update. Nil fields are untouched.
type SavingsUpdate struct {
	Name           *string
	InitialBalance *decimal.Decimal
}

// SavingsService handles savings pool business logic.
type SavingsService struct {
	storage *storage.Storage
	op      Processor
}

// NewSavingsService creates a new SavingsService.
func NewSavingsService(store *storage.Storage, op Processor) *SavingsService {
	return &SavingsService{storage: store, op: op}
}

// Create creates a new savings pool starting at its initial balance.
func (s *SavingsService) Create(ctx context.Context, userID, name string, initialBalance decimal.Decimal) (SavingsPool, error) {
	action := &actions.CreateSavings{
		UserID:         userID,
		Name:           name,
		InitialBalance: initialBalance,
	}
	if err := s.op.Process(ctx, action); err != nil {
		return SavingsPool{}, mapStorageErr(err)
	}
	return SavingsPool{
		ID:             action.CreatedID,
		Name:           name,
		InitialBalance: initialBalance,
		CurrentAmount:  initialBalance,
	}, nil
}

// List returns the user's savings pools by creation time descending.
func (s *SavingsService) List(ctx context.Context, userID string) ([]SavingsPool, error) {
	return s.list(ctx, userID, savings.OrderCreatedDesc)
}

// ListByName returns the user's savings pools by name ascending; the
// savings export reads through here so its ordering matches.
func (s *SavingsService) ListByName(ctx context.Context, userID string) ([]SavingsPool, error) {
	return s.list(ctx, userID, savings.OrderNameAsc)
}

func (s *SavingsService) list(ctx context.Context, userID string, order savings.ListOrder) ([]SavingsPool, error) {
	rows, err := s.storage.Savings.List(ctx, userID, order)
	if err != nil {
		return nil, err
	}

	converted := make([]SavingsPool, len(rows))
	for i, row := range rows {
		converted[i] = SavingsPool{
			ID:             row.ID,
			Name:           row.Name,
			InitialBalance: row.InitialBalance,
			CurrentAmount:  row.CurrentAmount,
			CreatedAt:      row.CreatedAt,
		}
	}
	return converted, nil
}

// Update applies a partial update to the user's savings pool.
func (s *SavingsService) Update(ctx context.Context, userID string, id int64, upd SavingsUpdate) error {
	action := &actions.UpdateSavings{
		UserID: userID,
		ID:     id,
		Update: savings.SavingsPoolUpdate{
			Name:           upd.Name,
			InitialBalance: upd.InitialBalance,
		},
	}
	return mapStorageErr(s.op.Process(ctx, action))
}

// UpdateBalance sets current_amount only (manual balance correction).
func (s *SavingsService) UpdateBalance(ctx context.Context, userID string, id int64, currentAmount decimal.Decimal) error {
	action := &actions.UpdateSavingsBalance{
		UserID:        userID,
		ID:            id,
		CurrentAmount: currentAmount,
	}
	return mapStorageErr(s.op.Process(ctx, action))
}

// Delete removes the user's savings pool.
func (s *SavingsService) Delete(ctx context.Context, userID string, id int64) error {
	return mapStorageErr(s.op.Process(ctx, &actions.DeleteSavings{UserID: userID, ID: id}))
}
