package savings

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/shopspring/decimal"

	"github.com/duitku/duitku-server/internal/identity"
	"github.com/duitku/duitku-server/internal/service"
)

// UpdateSavingsBody is the request body for updating a savings pool.
// Omitted fields are left untouched.
type UpdateSavingsBody struct {
	ID             int64   `json:"id" required:"true" doc:"Savings pool id"`
	Name           *string `json:"nama,omitempty" minLength:"1" doc:"New pool name"`
	InitialBalance *string `json:"saldoAwal,omitempty" doc:"New decimal initial balance"`
}

// UpdateSavingsInput is the Huma input for updating a savings pool.
type UpdateSavingsInput struct {
	Body UpdateSavingsBody
}

// UpdateSavingsOutput is the Huma output for updating a savings pool.
type UpdateSavingsOutput struct {
	Status int
}

// savingsUpdater is the interface for updating savings pools.
type savingsUpdater interface {
	Update(ctx context.Context, userID string, id int64, upd service.SavingsUpdate) error
}

// UpdateSavingsHandler handles PUT /v1/savings.
type UpdateSavingsHandler struct {
	SavingsService savingsUpdater
}

// NewUpdateSavingsHandler creates a new UpdateSavingsHandler.
func NewUpdateSavingsHandler(svc savingsUpdater) *UpdateSavingsHandler {
	return &UpdateSavingsHandler{SavingsService: svc}
}

// Register registers the update savings endpoint with the Huma API.
func (h *UpdateSavingsHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "update-savings",
		Method:      http.MethodPut,
		Path:        "/v1/savings",
		Summary:     "Update savings pool",
		Description: "Applies a partial update to a savings pool identified by id.",
		Tags:        []string{"Savings"},
	}, h.handle)
}

func parseUpdateSavingsInput(input *UpdateSavingsInput) (service.SavingsUpdate, error) {
	upd := service.SavingsUpdate{Name: input.Body.Name}

	if input.Body.InitialBalance != nil {
		balance, err := decimal.NewFromString(*input.Body.InitialBalance)
		if err != nil {
			return service.SavingsUpdate{}, huma.NewError(http.StatusBadRequest, "invalid saldoAwal", err)
		}
		upd.InitialBalance = &balance
	}

	return upd, nil
}

func (h *UpdateSavingsHandler) handle(ctx context.Context, input *UpdateSavingsInput) (*UpdateSavingsOutput, error) {
	caller := identity.FromContext(ctx)
	if !caller.IsAccount() {
		return nil, huma.NewError(http.StatusUnauthorized, "authentication required")
	}

	upd, err := parseUpdateSavingsInput(input)
	if err != nil {
		return nil, err
	}

	if err := h.SavingsService.Update(ctx, caller.UserID, input.Body.ID, upd); err != nil {
		return nil, serviceError(err)
	}

	return &UpdateSavingsOutput{Status: http.StatusNoContent}, nil
}
