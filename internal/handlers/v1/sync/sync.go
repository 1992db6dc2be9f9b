package sync

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/duitku/duitku-server/internal/identity"
	"github.com/duitku/duitku-server/internal/localstore"
	"github.com/duitku/duitku-server/internal/logging"
	"github.com/duitku/duitku-server/internal/service"
)

// SyncInput is the Huma input for replaying a local-store mirror.
type SyncInput struct {
	Body localstore.Mirror
}

// RecordError describes one record that failed to sync.
type RecordError struct {
	Kind   string `json:"kind" enum:"transaction,savings" doc:"Record kind"`
	ID     int64  `json:"id" doc:"Client-assigned record id"`
	Reason string `json:"reason" doc:"Why the record was skipped"`
}

// SyncResponseBody is the per-replay sync report.
type SyncResponseBody struct {
	Total    int           `json:"total" doc:"Records seen, including failed ones"`
	Inserted int           `json:"inserted" doc:"Records newly created"`
	Updated  int           `json:"updated" doc:"Records that already existed and were overwritten"`
	Errors   []RecordError `json:"errors,omitempty" doc:"Failed records"`
}

// SyncOutput is the Huma output for replaying a local-store mirror.
type SyncOutput struct {
	Body SyncResponseBody
}

// mirrorReplayer is the interface for replaying local-store mirrors.
type mirrorReplayer interface {
	Replay(ctx context.Context, accountID string, mirror localstore.Mirror) *service.SyncReport
}

// SyncHandler handles POST /v1/sync.
type SyncHandler struct {
	SyncService mirrorReplayer
}

// NewSyncHandler creates a new SyncHandler.
func NewSyncHandler(svc mirrorReplayer) *SyncHandler {
	return &SyncHandler{SyncService: svc}
}

// Register registers the sync endpoint with the Huma API.
func (h *SyncHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "sync-local-store",
		Method:      http.MethodPost,
		Path:        "/v1/sync",
		Summary:     "Sync local store",
		Description: "Replays a guest local-store mirror into the caller's account. Replay is idempotent per record.",
		Tags:        []string{"Sync"},
	}, h.handle)
}

func (h *SyncHandler) handle(ctx context.Context, input *SyncInput) (*SyncOutput, error) {
	caller := identity.FromContext(ctx)
	if !caller.IsAccount() {
		return nil, huma.NewError(http.StatusUnauthorized, "authentication required")
	}

	report := h.SyncService.Replay(ctx, caller.UserID, input.Body)

	if logData := logging.GetLogData(ctx); logData != nil {
		logData.AddData("syncTotal", report.Total)
		logData.AddData("syncErrors", len(report.Errors))
	}

	body := SyncResponseBody{
		Total:    report.Total,
		Inserted: report.Inserted,
		Updated:  report.Updated,
	}
	for _, recErr := range report.Errors {
		body.Errors = append(body.Errors, RecordError{Kind: recErr.Kind, ID: recErr.ID, Reason: recErr.Reason})
	}

	return &SyncOutput{Body: body}, nil
}
