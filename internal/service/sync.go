package service

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/duitku/duitku-server/internal/localstore"
	"github.com/duitku/duitku-server/internal/operator/actions"
)

// RecordError describes one local-store record that failed to sync.
type RecordError struct {
	Kind   string `json:"kind"`
	ID     int64  `json:"id"`
	Reason string `json:"reason"`
}

// SyncReport tallies one replay of the local store.
type SyncReport struct {
	Total    int
	Inserted int
	Updated  int
	Errors   []RecordError
}

// SyncService is the bridge from guest-held local records to the durable
// store. Each record is an independent upsert keyed by the record's
// original id; id stability across the guest-to-cloud transition is the
// precondition that makes replay idempotent. A failure on one record never
// blocks the others.
type SyncService struct {
	op Processor
}

// NewSyncService creates a new SyncService.
func NewSyncService(op Processor) *SyncService {
	return &SyncService{op: op}
}

// Replay upserts every record of the local-store mirror into the durable
// store, attributed to the given account. Records are processed in payload
// order, transactions first.
func (s *SyncService) Replay(ctx context.Context, accountID string, mirror localstore.Mirror) *SyncReport {
	report := &SyncReport{}

	for _, rec := range mirror.Transactions {
		report.Total++
		inserted, err := s.replayTransaction(ctx, accountID, rec)
		if err != nil {
			report.Errors = append(report.Errors, RecordError{Kind: "transaction", ID: rec.ID, Reason: err.Error()})
			continue
		}
		report.tally(inserted)
	}

	for _, rec := range mirror.Savings {
		report.Total++
		inserted, err := s.replaySavings(ctx, accountID, rec)
		if err != nil {
			report.Errors = append(report.Errors, RecordError{Kind: "savings", ID: rec.ID, Reason: err.Error()})
			continue
		}
		report.tally(inserted)
	}

	return report
}

func (r *SyncReport) tally(inserted bool) {
	if inserted {
		r.Inserted++
	} else {
		r.Updated++
	}
}

func (s *SyncService) replayTransaction(ctx context.Context, accountID string, rec localstore.TransactionRecord) (bool, error) {
	amount, err := decimal.NewFromString(rec.Amount)
	if err != nil {
		return false, fmt.Errorf("invalid amount %q", rec.Amount)
	}
	date, err := parseImportDate(rec.Date)
	if err != nil {
		return false, err
	}
	txType, err := parseImportType(rec.Type)
	if err != nil {
		return false, err
	}

	action := &actions.UpsertTransaction{
		UserID:      accountID,
		ID:          rec.ID,
		Title:       rec.Title,
		Amount:      amount.Abs(),
		Description: rec.Description,
		Date:        date,
		Type:        txType,
		CategoryID:  rec.CategoryID,
	}
	if err := s.op.Process(ctx, action); err != nil {
		return false, err
	}
	return action.Inserted, nil
}

func (s *SyncService) replaySavings(ctx context.Context, accountID string, rec localstore.SavingsRecord) (bool, error) {
	initial, err := decimal.NewFromString(rec.InitialBalance)
	if err != nil {
		return false, fmt.Errorf("invalid initial balance %q", rec.InitialBalance)
	}
	current, err := decimal.NewFromString(rec.CurrentAmount)
	if err != nil {
		return false, fmt.Errorf("invalid current amount %q", rec.CurrentAmount)
	}

	action := &actions.UpsertSavings{
		UserID:         accountID,
		ID:             rec.ID,
		Name:           rec.Name,
		InitialBalance: initial,
		CurrentAmount:  current,
	}
	if err := s.op.Process(ctx, action); err != nil {
		return false, err
	}
	return action.Inserted, nil
}
