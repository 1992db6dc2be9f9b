package savings

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/shopspring/decimal"

	"github.com/duitku/duitku-server/internal/identity"
)

// UpdateBalanceBody is the request body for a manual balance correction.
type UpdateBalanceBody struct {
	ID            int64  `json:"id" required:"true" doc:"Savings pool id"`
	CurrentAmount string `json:"jumlahSaatIni" required:"true" doc:"New decimal current amount"`
}

// UpdateBalanceInput is the Huma input for a manual balance correction.
type UpdateBalanceInput struct {
	Body UpdateBalanceBody
}

// UpdateBalanceOutput is the Huma output for a manual balance correction.
type UpdateBalanceOutput struct {
	Status int
}

// balanceUpdater is the interface for correcting savings balances.
type balanceUpdater interface {
	UpdateBalance(ctx context.Context, userID string, id int64, currentAmount decimal.Decimal) error
}

// UpdateBalanceHandler handles PUT /v1/savings/balance.
type UpdateBalanceHandler struct {
	SavingsService balanceUpdater
}

// NewUpdateBalanceHandler creates a new UpdateBalanceHandler.
func NewUpdateBalanceHandler(svc balanceUpdater) *UpdateBalanceHandler {
	return &UpdateBalanceHandler{SavingsService: svc}
}

// Register registers the balance correction endpoint with the Huma API.
func (h *UpdateBalanceHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "update-savings-balance",
		Method:      http.MethodPut,
		Path:        "/v1/savings/balance",
		Summary:     "Correct savings balance",
		Description: "Sets a savings pool's current amount without touching its initial balance.",
		Tags:        []string{"Savings"},
	}, h.handle)
}

func (h *UpdateBalanceHandler) handle(ctx context.Context, input *UpdateBalanceInput) (*UpdateBalanceOutput, error) {
	caller := identity.FromContext(ctx)
	if !caller.IsAccount() {
		return nil, huma.NewError(http.StatusUnauthorized, "authentication required")
	}

	currentAmount, err := decimal.NewFromString(input.Body.CurrentAmount)
	if err != nil {
		return nil, huma.NewError(http.StatusBadRequest, "invalid jumlahSaatIni", err)
	}

	if err := h.SavingsService.UpdateBalance(ctx, caller.UserID, input.Body.ID, currentAmount); err != nil {
		return nil, serviceError(err)
	}

	return &UpdateBalanceOutput{Status: http.StatusNoContent}, nil
}
