package savings

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/shopspring/decimal"

	"github.com/duitku/duitku-server/internal/identity"
	"github.com/duitku/duitku-server/internal/service"
)

// CreateSavingsBody is the request body for creating a savings pool.
type CreateSavingsBody struct {
	Name           string `json:"nama" required:"true" minLength:"1" doc:"Pool name"`
	InitialBalance string `json:"saldoAwal,omitempty" doc:"Decimal initial balance; an unparseable value is treated as 0"`
}

// CreateSavingsInput is the Huma input for creating a savings pool.
type CreateSavingsInput struct {
	Body CreateSavingsBody
}

// CreateSavingsOutput is the Huma output for creating a savings pool.
type CreateSavingsOutput struct {
	Status int
	Body   SavingsPool
}

// savingsCreator is the interface for creating savings pools.
type savingsCreator interface {
	Create(ctx context.Context, userID, name string, initialBalance decimal.Decimal) (service.SavingsPool, error)
}

// CreateSavingsHandler handles POST /v1/savings.
type CreateSavingsHandler struct {
	SavingsService savingsCreator
}

// NewCreateSavingsHandler creates a new CreateSavingsHandler.
func NewCreateSavingsHandler(svc savingsCreator) *CreateSavingsHandler {
	return &CreateSavingsHandler{SavingsService: svc}
}

// Register registers the create savings endpoint with the Huma API.
func (h *CreateSavingsHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "create-savings",
		Method:      http.MethodPost,
		Path:        "/v1/savings",
		Summary:     "Create savings pool",
		Description: "Creates a new savings pool starting at its initial balance.",
		Tags:        []string{"Savings"},
	}, h.handle)
}

func (h *CreateSavingsHandler) handle(ctx context.Context, input *CreateSavingsInput) (*CreateSavingsOutput, error) {
	caller := identity.FromContext(ctx)
	if !caller.IsAccount() {
		return nil, huma.NewError(http.StatusUnauthorized, "authentication required")
	}

	// Unlike transaction amounts, an unparseable initial balance falls
	// back to zero instead of failing the request.
	initialBalance, err := decimal.NewFromString(input.Body.InitialBalance)
	if err != nil {
		initialBalance = decimal.Zero
	}

	created, err := h.SavingsService.Create(ctx, caller.UserID, input.Body.Name, initialBalance)
	if err != nil {
		return nil, serviceError(err)
	}

	return &CreateSavingsOutput{
		Status: http.StatusCreated,
		Body:   fromService(created),
	}, nil
}
