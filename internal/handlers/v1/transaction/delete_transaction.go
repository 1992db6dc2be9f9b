package transaction

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/duitku/duitku-server/internal/identity"
)

// DeleteTransactionBody is the request body for deleting a transaction.
type DeleteTransactionBody struct {
	ID int64 `json:"id" required:"true" doc:"Transaction id"`
}

// DeleteTransactionInput is the Huma input for deleting a transaction.
type DeleteTransactionInput struct {
	Body DeleteTransactionBody
}

// DeleteTransactionOutput is the Huma output for deleting a transaction.
type DeleteTransactionOutput struct {
	Status int
}

// transactionDeleter is the interface for deleting transactions.
type transactionDeleter interface {
	Delete(ctx context.Context, userID string, id int64) error
}

// DeleteTransactionHandler handles DELETE /v1/transactions.
type DeleteTransactionHandler struct {
	TransactionService transactionDeleter
}

// NewDeleteTransactionHandler creates a new DeleteTransactionHandler.
func NewDeleteTransactionHandler(svc transactionDeleter) *DeleteTransactionHandler {
	return &DeleteTransactionHandler{TransactionService: svc}
}

// Register registers the delete transaction endpoint with the Huma API.
func (h *DeleteTransactionHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "delete-transaction",
		Method:      http.MethodDelete,
		Path:        "/v1/transactions",
		Summary:     "Delete transaction",
		Description: "Deletes a transaction by id. Deleting a nonexistent id is a 404, not a silent success.",
		Tags:        []string{"Transactions"},
	}, h.handle)
}

func (h *DeleteTransactionHandler) handle(ctx context.Context, input *DeleteTransactionInput) (*DeleteTransactionOutput, error) {
	caller := identity.FromContext(ctx)
	if !caller.IsAccount() {
		return nil, huma.NewError(http.StatusUnauthorized, "authentication required")
	}

	if err := h.TransactionService.Delete(ctx, caller.UserID, input.Body.ID); err != nil {
		return nil, serviceError(err, "transaction not found")
	}

	return &DeleteTransactionOutput{Status: http.StatusNoContent}, nil
}
