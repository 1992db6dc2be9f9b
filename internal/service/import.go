package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/duitku/duitku-server/internal/operator/actions"
	"github.com/duitku/duitku-server/internal/storage/category"
	"github.com/duitku/duitku-server/internal/storage/transaction"
)

// Import-level failures that reject the whole upload before any row is
// processed. Everything past these is per-row and isolated.
var (
	ErrUnsupportedFile = errors.New("only .xls and .xlsx files are accepted")
	ErrUnreadableFile  = errors.New("unable to parse spreadsheet")
)

// Spreadsheet column order. Matches the export layout so an exported file
// can be re-imported.
const (
	colTitle = iota
	colAmount
	colDescription
	colDate
	colType
	colCategory
)

var importDateLayouts = []string{"2006-01-02", "02/01/2006", "1/2/06"}

// RowError describes one failed spreadsheet row.
type RowError struct {
	Row    int    `json:"row"`
	Reason string `json:"reason"`
}

// ImportReport tallies one upload. Total counts every data row in the
// file, including failed ones; Imported counts rows actually persisted.
type ImportReport struct {
	Imported     int
	Total        int
	Errors       []RowError
	Transactions []Transaction
}

// ImportService turns an uploaded spreadsheet into persisted transactions.
// Rows are processed sequentially in file order; a failed row is recorded
// and skipped, never aborting the batch.
type ImportService struct {
	categories category.ICategoryTable
	op         Processor
}

// NewImportService creates a new ImportService.
func NewImportService(categories category.ICategoryTable, op Processor) *ImportService {
	return &ImportService{categories: categories, op: op}
}

// ValidateFilename rejects non-spreadsheet extensions. Called before any
// byte of the upload is parsed.
func ValidateFilename(filename string) error {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xls", ".xlsx":
		return nil
	default:
		return ErrUnsupportedFile
	}
}

// Import parses the upload and persists every resolvable row for the user.
func (s *ImportService) Import(ctx context.Context, userID, filename string, data []byte) (*ImportReport, error) {
	if err := ValidateFilename(filename); err != nil {
		return nil, err
	}

	file, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreadableFile, err)
	}
	defer file.Close()

	rows, err := file.GetRows(file.GetSheetName(0))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreadableFile, err)
	}

	report := &ImportReport{}
	for i, cells := range rows {
		rowNum := i + 1
		if i == 0 && isHeaderRow(cells) {
			continue
		}
		if isEmptyRow(cells) {
			continue
		}
		report.Total++

		candidate, err := parseImportRow(cells)
		if err != nil {
			report.Errors = append(report.Errors, RowError{Row: rowNum, Reason: err.Error()})
			continue
		}

		categoryID, err := s.resolveCategory(ctx, candidate.categoryName, candidate.txType)
		if err != nil {
			report.Errors = append(report.Errors, RowError{Row: rowNum, Reason: err.Error()})
			continue
		}

		action := &actions.CreateTransaction{
			UserID:      userID,
			Title:       candidate.title,
			Amount:      candidate.amount,
			Description: candidate.description,
			Date:        candidate.date,
			Type:        candidate.txType,
			CategoryID:  categoryID,
		}
		if err := s.op.Process(ctx, action); err != nil {
			report.Errors = append(report.Errors, RowError{Row: rowNum, Reason: err.Error()})
			continue
		}

		report.Imported++
		report.Transactions = append(report.Transactions, Transaction{
			ID:          action.CreatedID,
			Title:       candidate.title,
			Amount:      candidate.amount,
			Description: candidate.description,
			Date:        candidate.date,
			Type:        candidate.txType,
			CategoryID:  categoryID,
		})
	}

	return report, nil
}

// resolveCategory maps a spreadsheet category name onto a category id:
// exact (name, type) match first, then the uncategorized fallback for the
// type, then nil. An unknown name is never an error; the category
// reference is optional.
func (s *ImportService) resolveCategory(ctx context.Context, name, txType string) (*int64, error) {
	if name != "" {
		cat, err := s.categories.FindByNameKind(ctx, name, txType)
		if err == nil {
			return &cat.ID, nil
		}
		if !errors.Is(err, category.ErrNotFound) {
			return nil, err
		}
	}

	fallback, err := s.categories.FindByNameKind(ctx, category.FallbackName, txType)
	if err == nil {
		return &fallback.ID, nil
	}
	if errors.Is(err, category.ErrNotFound) {
		return nil, nil
	}
	return nil, err
}

type importCandidate struct {
	title        string
	amount       decimal.Decimal
	description  string
	date         time.Time
	txType       string
	categoryName string
}

func parseImportRow(cells []string) (*importCandidate, error) {
	title := strings.TrimSpace(cell(cells, colTitle))
	if title == "" {
		return nil, errors.New("missing title")
	}

	amountStr := strings.TrimSpace(cell(cells, colAmount))
	if amountStr == "" {
		return nil, errors.New("missing amount")
	}
	amount, err := decimal.NewFromString(strings.ReplaceAll(amountStr, ",", ""))
	if err != nil {
		return nil, fmt.Errorf("invalid amount %q", amountStr)
	}

	date, err := parseImportDate(strings.TrimSpace(cell(cells, colDate)))
	if err != nil {
		return nil, err
	}

	txType, err := parseImportType(strings.TrimSpace(cell(cells, colType)))
	if err != nil {
		return nil, err
	}

	return &importCandidate{
		title: title,
		// Sign is not imported; direction is carried by the type column.
		amount:       amount.Abs(),
		description:  strings.TrimSpace(cell(cells, colDescription)),
		date:         date,
		txType:       txType,
		categoryName: strings.TrimSpace(cell(cells, colCategory)),
	}, nil
}

func parseImportDate(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, errors.New("missing date")
	}
	for _, layout := range importDateLayouts {
		if date, err := time.Parse(layout, value); err == nil {
			return date, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q", value)
}

func parseImportType(value string) (string, error) {
	switch strings.ToLower(value) {
	case transaction.TypeIncome, "pemasukan":
		return transaction.TypeIncome, nil
	case transaction.TypeExpense, "pengeluaran":
		return transaction.TypeExpense, nil
	case "":
		return "", errors.New("missing type")
	default:
		return "", fmt.Errorf("invalid type %q", value)
	}
}

// cell reads column idx, tolerating the trailing-cell trimming excelize
// applies to sparse rows.
func cell(cells []string, idx int) string {
	if idx >= len(cells) {
		return ""
	}
	return cells[idx]
}

func isEmptyRow(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

func isHeaderRow(cells []string) bool {
	return strings.EqualFold(strings.TrimSpace(cell(cells, colTitle)), "Judul")
}
