package transaction

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/shopspring/decimal"

	"github.com/duitku/duitku-server/internal/identity"
	"github.com/duitku/duitku-server/internal/service"
)

// UpdateTransactionBody is the request body for updating a transaction.
// Omitted fields are left untouched.
type UpdateTransactionBody struct {
	ID            int64   `json:"id" required:"true" doc:"Transaction id"`
	Title         *string `json:"judul,omitempty" minLength:"1" doc:"New title"`
	Amount        *string `json:"jumlah,omitempty" doc:"New decimal amount"`
	Description   *string `json:"deskripsi,omitempty" doc:"New description"`
	Date          *string `json:"tanggal,omitempty" doc:"New transaction date (YYYY-MM-DD)"`
	Type          *string `json:"tipe,omitempty" enum:"income,expense" doc:"New type"`
	CategoryID    *int64  `json:"kategoriId,omitempty" doc:"New category id"`
	ClearCategory bool    `json:"hapusKategori,omitempty" doc:"Remove the category reference"`
}

// UpdateTransactionInput is the Huma input for updating a transaction.
type UpdateTransactionInput struct {
	Body UpdateTransactionBody
}

// UpdateTransactionOutput is the Huma output for updating a transaction.
type UpdateTransactionOutput struct {
	Status int
}

// transactionUpdater is the interface for updating transactions.
type transactionUpdater interface {
	Update(ctx context.Context, userID string, id int64, upd service.TransactionUpdate) error
}

// UpdateTransactionHandler handles PUT /v1/transactions.
type UpdateTransactionHandler struct {
	TransactionService transactionUpdater
}

// NewUpdateTransactionHandler creates a new UpdateTransactionHandler.
func NewUpdateTransactionHandler(svc transactionUpdater) *UpdateTransactionHandler {
	return &UpdateTransactionHandler{TransactionService: svc}
}

// Register registers the update transaction endpoint with the Huma API.
func (h *UpdateTransactionHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "update-transaction",
		Method:      http.MethodPut,
		Path:        "/v1/transactions",
		Summary:     "Update transaction",
		Description: "Applies a partial update to a transaction identified by id.",
		Tags:        []string{"Transactions"},
	}, h.handle)
}

// parseUpdateTransactionInput parses the partial update. A present but
// non-numeric amount is a format error, never zero.
func parseUpdateTransactionInput(input *UpdateTransactionInput) (service.TransactionUpdate, error) {
	upd := service.TransactionUpdate{
		Title:         input.Body.Title,
		Description:   input.Body.Description,
		Type:          input.Body.Type,
		CategoryID:    input.Body.CategoryID,
		ClearCategory: input.Body.ClearCategory,
	}

	if input.Body.Amount != nil {
		amount, err := decimal.NewFromString(*input.Body.Amount)
		if err != nil {
			return service.TransactionUpdate{}, huma.NewError(http.StatusBadRequest, "invalid jumlah", err)
		}
		upd.Amount = &amount
	}

	if input.Body.Date != nil {
		date, err := time.Parse(dateLayout, *input.Body.Date)
		if err != nil {
			return service.TransactionUpdate{}, huma.NewError(http.StatusBadRequest, "invalid tanggal", err)
		}
		upd.Date = &date
	}

	return upd, nil
}

func (h *UpdateTransactionHandler) handle(ctx context.Context, input *UpdateTransactionInput) (*UpdateTransactionOutput, error) {
	caller := identity.FromContext(ctx)
	if !caller.IsAccount() {
		return nil, huma.NewError(http.StatusUnauthorized, "authentication required")
	}

	upd, err := parseUpdateTransactionInput(input)
	if err != nil {
		return nil, err
	}

	if err := h.TransactionService.Update(ctx, caller.UserID, input.Body.ID, upd); err != nil {
		return nil, serviceError(err, "transaction not found")
	}

	return &UpdateTransactionOutput{Status: http.StatusNoContent}, nil
}
