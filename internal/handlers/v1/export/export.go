package export

import (
	"context"
	"fmt"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/duitku/duitku-server/internal/service"
)

// artifactRenderer is the interface for rendering CSV export artifacts.
type artifactRenderer interface {
	TransactionsCSV(ctx context.Context, userID string) (*service.Artifact, error)
	SavingsCSV(ctx context.Context, userID string) (*service.Artifact, error)
}

// DownloadOutput is the Huma output for a CSV download.
type DownloadOutput struct {
	ContentType        string `header:"Content-Type"`
	ContentDisposition string `header:"Content-Disposition"`
	Body               []byte
}

func downloadOutput(artifact *service.Artifact) *DownloadOutput {
	return &DownloadOutput{
		ContentType:        service.ContentTypeCSV,
		ContentDisposition: fmt.Sprintf("attachment; filename=%q", artifact.Filename),
		Body:               artifact.Data,
	}
}

func exportError(err error) error {
	return huma.NewError(http.StatusInternalServerError, "failed to render export", err)
}
