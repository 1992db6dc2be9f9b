package export

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/duitku/duitku-server/internal/identity"
	"github.com/duitku/duitku-server/internal/logging"
)

// ExportSavingsHandler handles GET /v1/export/savings.
type ExportSavingsHandler struct {
	ExportService artifactRenderer
}

// NewExportSavingsHandler creates a new ExportSavingsHandler.
func NewExportSavingsHandler(svc artifactRenderer) *ExportSavingsHandler {
	return &ExportSavingsHandler{ExportService: svc}
}

// Register registers the savings export endpoint with the Huma API.
func (h *ExportSavingsHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "export-savings",
		Method:      http.MethodGet,
		Path:        "/v1/export/savings",
		Summary:     "Export savings pools",
		Description: "Downloads the caller's savings pools as a CSV report.",
		Tags:        []string{"Export"},
	}, h.handle)
}

func (h *ExportSavingsHandler) handle(ctx context.Context, _ *struct{}) (*DownloadOutput, error) {
	caller := identity.FromContext(ctx)
	if !caller.IsAccount() {
		return nil, huma.NewError(http.StatusUnauthorized, "authentication required")
	}

	artifact, err := h.ExportService.SavingsCSV(ctx, caller.UserID)
	if err != nil {
		return nil, exportError(err)
	}

	if logData := logging.GetLogData(ctx); logData != nil {
		logData.AddData("exportBytes", len(artifact.Data))
	}

	return downloadOutput(artifact), nil
}
