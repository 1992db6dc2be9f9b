package export

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/duitku/duitku-server/internal/identity"
	"github.com/duitku/duitku-server/internal/logging"
)

// ExportTransactionsHandler handles GET /v1/export/transactions.
type ExportTransactionsHandler struct {
	ExportService artifactRenderer
}

// NewExportTransactionsHandler creates a new ExportTransactionsHandler.
func NewExportTransactionsHandler(svc artifactRenderer) *ExportTransactionsHandler {
	return &ExportTransactionsHandler{ExportService: svc}
}

// Register registers the transactions export endpoint with the Huma API.
func (h *ExportTransactionsHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "export-transactions",
		Method:      http.MethodGet,
		Path:        "/v1/export/transactions",
		Summary:     "Export transactions",
		Description: "Downloads the caller's transactions and savings pools as one CSV report.",
		Tags:        []string{"Export"},
	}, h.handle)
}

func (h *ExportTransactionsHandler) handle(ctx context.Context, _ *struct{}) (*DownloadOutput, error) {
	caller := identity.FromContext(ctx)
	if !caller.IsAccount() {
		return nil, huma.NewError(http.StatusUnauthorized, "authentication required")
	}

	artifact, err := h.ExportService.TransactionsCSV(ctx, caller.UserID)
	if err != nil {
		return nil, exportError(err)
	}

	if logData := logging.GetLogData(ctx); logData != nil {
		logData.AddData("exportBytes", len(artifact.Data))
	}

	return downloadOutput(artifact), nil
}
