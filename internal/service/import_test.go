package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/xuri/excelize/v2"

	"github.com/duitku/duitku-server/internal/operator/actions"
	"github.com/duitku/duitku-server/internal/storage/category"
	"github.com/duitku/duitku-server/internal/storage/transaction"
)

// buildSheet renders rows into an in-memory xlsx workbook.
func buildSheet(t *testing.T, rows [][]any) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		assert.NoError(t, err)
		assert.NoError(t, f.SetSheetRow(f.GetSheetName(0), cell, &row))
	}

	buf, err := f.WriteToBuffer()
	assert.NoError(t, err)
	return buf.Bytes()
}

func newTestImportService(t *testing.T) (*ImportService, *mockCategoryTable, *fakeProcessor) {
	t.Helper()
	mockCategories := new(mockCategoryTable)
	op := &fakeProcessor{}
	var nextID int64
	op.perform = func(a actions.IAction) error {
		if create, ok := a.(*actions.CreateTransaction); ok {
			nextID++
			create.CreatedID = nextID
		}
		return nil
	}
	return NewImportService(mockCategories, op), mockCategories, op
}

func TestValidateFilename(t *testing.T) {
	assert.NoError(t, ValidateFilename("report.xlsx"))
	assert.NoError(t, ValidateFilename("report.xls"))
	assert.NoError(t, ValidateFilename("REPORT.XLSX"))
	assert.ErrorIs(t, ValidateFilename("report.csv"), ErrUnsupportedFile)
	assert.ErrorIs(t, ValidateFilename("report"), ErrUnsupportedFile)
}

func TestImport_UnsupportedExtension(t *testing.T) {
	svc, _, op := newTestImportService(t)

	_, err := svc.Import(context.Background(), testUserID, "report.pdf", []byte("whatever"))

	assert.ErrorIs(t, err, ErrUnsupportedFile)
	assert.Empty(t, op.actions)
}

func TestImport_UnreadableFile(t *testing.T) {
	svc, _, op := newTestImportService(t)

	_, err := svc.Import(context.Background(), testUserID, "report.xlsx", []byte("not a zip archive"))

	assert.ErrorIs(t, err, ErrUnreadableFile)
	assert.Empty(t, op.actions)
}

func TestImport_HeaderAndEmptyRowsSkipped(t *testing.T) {
	svc, mockCategories, op := newTestImportService(t)
	mockCategories.On("FindByNameKind", mock.Anything, category.FallbackName, mock.Anything).
		Return(nil, category.ErrNotFound)

	data := buildSheet(t, [][]any{
		{"Judul", "Jumlah", "Deskripsi", "Tanggal", "Tipe", "Kategori"},
		{"Coffee", "12.50", "", "2025-06-01", "expense", ""},
		{"", "", "", "", "", ""},
		{"Salary", "1000", "June salary", "2025-06-02", "income", ""},
	})

	report, err := svc.Import(context.Background(), testUserID, "report.xlsx", data)

	assert.NoError(t, err)
	assert.Equal(t, 2, report.Total, "header and empty rows are not data rows")
	assert.Equal(t, 2, report.Imported)
	assert.Empty(t, report.Errors)
	assert.Len(t, op.actions, 2)
}

func TestImport_FailedRowDoesNotAbortBatch(t *testing.T) {
	svc, mockCategories, _ := newTestImportService(t)
	mockCategories.On("FindByNameKind", mock.Anything, category.FallbackName, mock.Anything).
		Return(nil, category.ErrNotFound)

	data := buildSheet(t, [][]any{
		{"Judul", "Jumlah", "Deskripsi", "Tanggal", "Tipe", "Kategori"},
		{"Good", "10.00", "", "2025-06-01", "expense", ""},
		{"Bad amount", "ten dollars", "", "2025-06-02", "expense", ""},
		{"Bad date", "5.00", "", "June 3rd", "expense", ""},
		{"Bad type", "5.00", "", "2025-06-04", "transfer", ""},
		{"Also good", "20.00", "", "2025-06-05", "income", ""},
	})

	report, err := svc.Import(context.Background(), testUserID, "report.xlsx", data)

	assert.NoError(t, err)
	assert.Equal(t, 5, report.Total)
	assert.Equal(t, 2, report.Imported)
	assert.Len(t, report.Errors, 3)

	// Row numbers are 1-based positions in the sheet, header included.
	assert.Equal(t, 3, report.Errors[0].Row)
	assert.Equal(t, 4, report.Errors[1].Row)
	assert.Equal(t, 5, report.Errors[2].Row)

	assert.Len(t, report.Transactions, 2)
	assert.Equal(t, "Good", report.Transactions[0].Title)
	assert.Equal(t, "Also good", report.Transactions[1].Title)
}

func TestImport_IndonesianTypeAliases(t *testing.T) {
	svc, mockCategories, op := newTestImportService(t)
	mockCategories.On("FindByNameKind", mock.Anything, category.FallbackName, mock.Anything).
		Return(nil, category.ErrNotFound)

	data := buildSheet(t, [][]any{
		{"Judul", "Jumlah", "Deskripsi", "Tanggal", "Tipe", "Kategori"},
		{"Gaji", "1000", "", "2025-06-01", "Pemasukan", ""},
		{"Makan", "50", "", "2025-06-01", "pengeluaran", ""},
	})

	report, err := svc.Import(context.Background(), testUserID, "report.xlsx", data)

	assert.NoError(t, err)
	assert.Equal(t, 2, report.Imported)
	assert.Equal(t, transaction.TypeIncome, op.actions[0].(*actions.CreateTransaction).Type)
	assert.Equal(t, transaction.TypeExpense, op.actions[1].(*actions.CreateTransaction).Type)
}

func TestImport_NegativeAmountStoredAbsolute(t *testing.T) {
	svc, mockCategories, op := newTestImportService(t)
	mockCategories.On("FindByNameKind", mock.Anything, category.FallbackName, mock.Anything).
		Return(nil, category.ErrNotFound)

	data := buildSheet(t, [][]any{
		{"Refund", "-25.00", "", "2025-06-01", "income", ""},
	})

	report, err := svc.Import(context.Background(), testUserID, "report.xlsx", data)

	assert.NoError(t, err)
	assert.Equal(t, 1, report.Imported)
	action := op.actions[0].(*actions.CreateTransaction)
	assert.True(t, action.Amount.Equal(decimal.RequireFromString("25.00")))
	assert.Nil(t, action.CategoryID, "no fallback category seeded; row persists uncategorized")
}

func TestImport_CategoryResolution(t *testing.T) {
	svc, mockCategories, op := newTestImportService(t)

	food := &category.Category{ID: 7, Name: "Makanan", Kind: category.KindExpense}
	fallback := &category.Category{ID: 1, Name: category.FallbackName, Kind: category.KindExpense}

	mockCategories.On("FindByNameKind", mock.Anything, "Makanan", category.KindExpense).Return(food, nil)
	mockCategories.On("FindByNameKind", mock.Anything, "Nonexistent", category.KindExpense).Return(nil, category.ErrNotFound)
	mockCategories.On("FindByNameKind", mock.Anything, category.FallbackName, category.KindExpense).Return(fallback, nil)

	data := buildSheet(t, [][]any{
		{"Judul", "Jumlah", "Deskripsi", "Tanggal", "Tipe", "Kategori"},
		{"Lunch", "15.00", "", "2025-06-01", "expense", "Makanan"},
		{"Mystery", "5.00", "", "2025-06-01", "expense", "Nonexistent"},
		{"Plain", "5.00", "", "2025-06-01", "expense", ""},
	})

	report, err := svc.Import(context.Background(), testUserID, "report.xlsx", data)

	assert.NoError(t, err)
	assert.Equal(t, 3, report.Imported)

	assert.Equal(t, int64(7), *op.actions[0].(*actions.CreateTransaction).CategoryID, "exact match")
	assert.Equal(t, int64(1), *op.actions[1].(*actions.CreateTransaction).CategoryID, "unknown name falls back")
	assert.Equal(t, int64(1), *op.actions[2].(*actions.CreateTransaction).CategoryID, "blank name falls back")
}

func TestImport_PersistFailureRecordedPerRow(t *testing.T) {
	svc, mockCategories, op := newTestImportService(t)
	mockCategories.On("FindByNameKind", mock.Anything, category.FallbackName, mock.Anything).
		Return(nil, category.ErrNotFound)

	calls := 0
	op.perform = func(a actions.IAction) error {
		calls++
		if calls == 1 {
			return fmt.Errorf("constraint violation")
		}
		a.(*actions.CreateTransaction).CreatedID = int64(calls)
		return nil
	}

	data := buildSheet(t, [][]any{
		{"First", "10.00", "", "2025-06-01", "expense", ""},
		{"Second", "20.00", "", "2025-06-02", "expense", ""},
	})

	report, err := svc.Import(context.Background(), testUserID, "report.xlsx", data)

	assert.NoError(t, err)
	assert.Equal(t, 2, report.Total)
	assert.Equal(t, 1, report.Imported)
	assert.Len(t, report.Errors, 1)
	assert.Equal(t, 1, report.Errors[0].Row)
}

func TestImport_EmptyWorkbook(t *testing.T) {
	svc, _, op := newTestImportService(t)

	data := buildSheet(t, nil)

	report, err := svc.Import(context.Background(), testUserID, "report.xlsx", data)

	assert.NoError(t, err)
	assert.Equal(t, 0, report.Total)
	assert.Equal(t, 0, report.Imported)
	assert.Empty(t, report.Errors)
	assert.Empty(t, op.actions)
}

func TestImport_SlashDateFormat(t *testing.T) {
	svc, mockCategories, op := newTestImportService(t)
	mockCategories.On("FindByNameKind", mock.Anything, category.FallbackName, mock.Anything).
		Return(nil, category.ErrNotFound)

	data := buildSheet(t, [][]any{
		{"Lunch", "15.00", "", "15/06/2025", "expense", ""},
	})

	report, err := svc.Import(context.Background(), testUserID, "report.xlsx", data)

	assert.NoError(t, err)
	assert.Equal(t, 1, report.Imported)
	action := op.actions[0].(*actions.CreateTransaction)
	assert.Equal(t, 2025, action.Date.Year())
	assert.Equal(t, 6, int(action.Date.Month()))
	assert.Equal(t, 15, action.Date.Day())
}
