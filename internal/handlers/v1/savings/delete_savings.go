package savings

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/duitku/duitku-server/internal/identity"
)

// DeleteSavingsInput is the Huma input for deleting a savings pool.
type DeleteSavingsInput struct {
	ID int64 `path:"id" doc:"Savings pool id"`
}

// DeleteSavingsOutput is the Huma output for deleting a savings pool.
type DeleteSavingsOutput struct {
	Status int
}

// savingsDeleter is the interface for deleting savings pools.
type savingsDeleter interface {
	Delete(ctx context.Context, userID string, id int64) error
}

// DeleteSavingsHandler handles DELETE /v1/savings/{id}.
type DeleteSavingsHandler struct {
	SavingsService savingsDeleter
}

// NewDeleteSavingsHandler creates a new DeleteSavingsHandler.
func NewDeleteSavingsHandler(svc savingsDeleter) *DeleteSavingsHandler {
	return &DeleteSavingsHandler{SavingsService: svc}
}

// Register registers the delete savings endpoint with the Huma API.
func (h *DeleteSavingsHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "delete-savings",
		Method:      http.MethodDelete,
		Path:        "/v1/savings/{id}",
		Summary:     "Delete savings pool",
		Description: "Deletes a savings pool by id. Deleting a nonexistent id is a 404, not a silent success.",
		Tags:        []string{"Savings"},
	}, h.handle)
}

func (h *DeleteSavingsHandler) handle(ctx context.Context, input *DeleteSavingsInput) (*DeleteSavingsOutput, error) {
	caller := identity.FromContext(ctx)
	if !caller.IsAccount() {
		return nil, huma.NewError(http.StatusUnauthorized, "authentication required")
	}

	if err := h.SavingsService.Delete(ctx, caller.UserID, input.ID); err != nil {
		return nil, serviceError(err)
	}

	return &DeleteSavingsOutput{Status: http.StatusNoContent}, nil
}
