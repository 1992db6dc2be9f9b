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

// CreateTransactionBody is the request body for creating a transaction.
type CreateTransactionBody struct {
	Title       string `json:"judul" required:"true" minLength:"1" doc:"Title"`
	Amount      string `json:"jumlah" required:"true" doc:"Decimal amount; sign is ignored, direction comes from tipe"`
	Description string `json:"deskripsi,omitempty" doc:"Optional description"`
	Date        string `json:"tanggal" required:"true" doc:"Transaction date (YYYY-MM-DD)"`
	Type        string `json:"tipe" required:"true" enum:"income,expense" doc:"Transaction type"`
	CategoryID  *int64 `json:"kategoriId,omitempty" doc:"Category id; must match tipe's kind"`
}

// CreateTransactionInput is the Huma input for creating a transaction.
type CreateTransactionInput struct {
	Body CreateTransactionBody
}

// CreateTransactionOutput is the Huma output for creating a transaction.
type CreateTransactionOutput struct {
	Status int
	Body   Transaction
}

// transactionCreator is the interface for creating transactions.
type transactionCreator interface {
	Create(ctx context.Context, userID string, in service.TransactionInput) (service.Transaction, error)
}

// CreateTransactionHandler handles POST /v1/transactions.
type CreateTransactionHandler struct {
	TransactionService transactionCreator
}

// NewCreateTransactionHandler creates a new CreateTransactionHandler.
func NewCreateTransactionHandler(svc transactionCreator) *CreateTransactionHandler {
	return &CreateTransactionHandler{TransactionService: svc}
}

// Register registers the create transaction endpoint with the Huma API.
func (h *CreateTransactionHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "create-transaction",
		Method:      http.MethodPost,
		Path:        "/v1/transactions",
		Summary:     "Create transaction",
		Description: "Creates a new transaction. The amount is stored as its absolute value.",
		Tags:        []string{"Transactions"},
	}, h.handle)
}

// parseCreateTransactionInput parses and validates the API input. A
// missing or non-numeric amount fails the request; it is never silently
// treated as zero.
func parseCreateTransactionInput(input *CreateTransactionInput) (service.TransactionInput, error) {
	amount, err := decimal.NewFromString(input.Body.Amount)
	if err != nil {
		return service.TransactionInput{}, huma.NewError(http.StatusBadRequest, "invalid jumlah", err)
	}

	date, err := time.Parse(dateLayout, input.Body.Date)
	if err != nil {
		return service.TransactionInput{}, huma.NewError(http.StatusBadRequest, "invalid tanggal", err)
	}

	return service.TransactionInput{
		Title:       input.Body.Title,
		Amount:      amount,
		Description: input.Body.Description,
		Date:        date,
		Type:        input.Body.Type,
		CategoryID:  input.Body.CategoryID,
	}, nil
}

func (h *CreateTransactionHandler) handle(ctx context.Context, input *CreateTransactionInput) (*CreateTransactionOutput, error) {
	caller := identity.FromContext(ctx)
	if !caller.IsAccount() {
		return nil, huma.NewError(http.StatusUnauthorized, "authentication required")
	}

	in, err := parseCreateTransactionInput(input)
	if err != nil {
		return nil, err
	}

	created, err := h.TransactionService.Create(ctx, caller.UserID, in)
	if err != nil {
		return nil, serviceError(err, "transaction not found")
	}

	return &CreateTransactionOutput{
		Status: http.StatusCreated,
		Body:   fromService(created),
	}, nil
}
