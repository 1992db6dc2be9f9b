package importer

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/duitku/duitku-server/internal/identity"
	"github.com/duitku/duitku-server/internal/logging"
	"github.com/duitku/duitku-server/internal/service"
)

const importDateLayout = "2006-01-02"

// ImportFormData is the multipart form carrying the spreadsheet upload.
type ImportFormData struct {
	File huma.FormFile `form:"file" required:"true" doc:"Spreadsheet file (.xls or .xlsx)"`
}

// ImportTransactionsInput is the Huma input for a spreadsheet import.
type ImportTransactionsInput struct {
	RawBody huma.MultipartFormFiles[ImportFormData]
}

// ImportedTransaction is one persisted row echoed back to the client.
type ImportedTransaction struct {
	ID          int64  `json:"id" doc:"Transaction id"`
	Title       string `json:"judul" doc:"Title"`
	Amount      string `json:"jumlah" doc:"Decimal amount"`
	Description string `json:"deskripsi,omitempty" doc:"Description"`
	Date        string `json:"tanggal" doc:"Transaction date (YYYY-MM-DD)"`
	Type        string `json:"tipe" enum:"income,expense" doc:"Transaction type"`
	CategoryID  *int64 `json:"kategoriId,omitempty" doc:"Resolved category id"`
}

// RowError describes one spreadsheet row that could not be imported.
type RowError struct {
	Row    int    `json:"row" doc:"1-based row number in the sheet"`
	Reason string `json:"reason" doc:"Why the row was skipped"`
}

// ImportTransactionsResponseBody is the per-upload import report.
type ImportTransactionsResponseBody struct {
	Imported     int                   `json:"imported" doc:"Rows persisted"`
	Total        int                   `json:"total" doc:"Data rows seen, including failed ones"`
	Errors       []RowError            `json:"errors,omitempty" doc:"Failed rows"`
	Transactions []ImportedTransaction `json:"transactions" doc:"Persisted rows in file order"`
}

// ImportTransactionsOutput is the Huma output for a spreadsheet import.
type ImportTransactionsOutput struct {
	Body ImportTransactionsResponseBody
}

// spreadsheetImporter is the interface for importing transaction spreadsheets.
type spreadsheetImporter interface {
	Import(ctx context.Context, userID, filename string, data []byte) (*service.ImportReport, error)
}

// ImportTransactionsHandler handles POST /v1/import/transactions.
type ImportTransactionsHandler struct {
	ImportService spreadsheetImporter
}

// NewImportTransactionsHandler creates a new ImportTransactionsHandler.
func NewImportTransactionsHandler(svc spreadsheetImporter) *ImportTransactionsHandler {
	return &ImportTransactionsHandler{ImportService: svc}
}

// Register registers the import endpoint with the Huma API.
func (h *ImportTransactionsHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "import-transactions",
		Method:      http.MethodPost,
		Path:        "/v1/import/transactions",
		Summary:     "Import transactions",
		Description: "Uploads a spreadsheet of transactions. Failed rows are reported and skipped without aborting the batch.",
		Tags:        []string{"Import"},
	}, h.handle)
}

func (h *ImportTransactionsHandler) handle(ctx context.Context, input *ImportTransactionsInput) (*ImportTransactionsOutput, error) {
	caller := identity.FromContext(ctx)
	if !caller.IsAccount() {
		return nil, huma.NewError(http.StatusUnauthorized, "authentication required")
	}

	formData := input.RawBody.Data()
	data, err := io.ReadAll(formData.File)
	if err != nil {
		return nil, huma.NewError(http.StatusBadRequest, "unable to read upload", err)
	}

	report, err := h.ImportService.Import(ctx, caller.UserID, formData.File.Filename, data)
	if err != nil {
		if errors.Is(err, service.ErrUnsupportedFile) || errors.Is(err, service.ErrUnreadableFile) {
			return nil, huma.NewError(http.StatusBadRequest, err.Error())
		}
		return nil, huma.NewError(http.StatusInternalServerError, "import failed", err)
	}

	if logData := logging.GetLogData(ctx); logData != nil {
		logData.AddData("importTotal", report.Total)
		logData.AddData("importErrors", len(report.Errors))
	}

	return &ImportTransactionsOutput{Body: fromReport(report)}, nil
}

func fromReport(report *service.ImportReport) ImportTransactionsResponseBody {
	body := ImportTransactionsResponseBody{
		Imported:     report.Imported,
		Total:        report.Total,
		Transactions: make([]ImportedTransaction, len(report.Transactions)),
	}
	for _, rowErr := range report.Errors {
		body.Errors = append(body.Errors, RowError{Row: rowErr.Row, Reason: rowErr.Reason})
	}
	for i, tx := range report.Transactions {
		body.Transactions[i] = ImportedTransaction{
			ID:          tx.ID,
			Title:       tx.Title,
			Amount:      tx.Amount.String(),
			Description: tx.Description,
			Date:        tx.Date.Format(importDateLayout),
			Type:        tx.Type,
			CategoryID:  tx.CategoryID,
		}
	}
	return body
}
