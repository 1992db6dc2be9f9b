package status

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/duitku/duitku-server/internal/identity"
)

// StatusResponseBody is the health check response.
type StatusResponseBody struct {
	Status string `json:"status" doc:"Always ok when the server is up"`
}

// StatusOutput is the Huma output for the health check.
type StatusOutput struct {
	Body StatusResponseBody
}

// StatusHandler handles GET /status.
type StatusHandler struct{}

// NewStatusHandler creates a new StatusHandler.
func NewStatusHandler() *StatusHandler {
	return &StatusHandler{}
}

// Register registers the health check endpoint with the Huma API.
func (h *StatusHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "status",
		Method:      http.MethodGet,
		Path:        "/status",
		Summary:     "Health check",
		Tags:        []string{"Status"},
		Metadata:    map[string]any{identity.MetadataPublic: true},
	}, h.handle)
}

func (h *StatusHandler) handle(_ context.Context, _ *struct{}) (*StatusOutput, error) {
	return &StatusOutput{Body: StatusResponseBody{Status: "ok"}}, nil
}
