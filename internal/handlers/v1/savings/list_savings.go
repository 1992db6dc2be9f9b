package savings

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/duitku/duitku-server/internal/identity"
	"github.com/duitku/duitku-server/internal/logging"
	"github.com/duitku/duitku-server/internal/service"
)

// ListSavingsResponseBody is the response body for listing savings pools.
type ListSavingsResponseBody struct {
	Savings []SavingsPool `json:"savings" doc:"Full collection, creation time descending"`
}

// ListSavingsOutput is the Huma output for listing savings pools.
type ListSavingsOutput struct {
	Body ListSavingsResponseBody
}

// savingsLister is the interface for listing savings pools.
type savingsLister interface {
	List(ctx context.Context, userID string) ([]service.SavingsPool, error)
}

// ListSavingsHandler handles GET /v1/savings.
type ListSavingsHandler struct {
	SavingsService savingsLister
}

// NewListSavingsHandler creates a new ListSavingsHandler.
func NewListSavingsHandler(svc savingsLister) *ListSavingsHandler {
	return &ListSavingsHandler{SavingsService: svc}
}

// Register registers the list savings endpoint with the Huma API.
func (h *ListSavingsHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "list-savings",
		Method:      http.MethodGet,
		Path:        "/v1/savings",
		Summary:     "List savings pools",
		Description: "Returns the caller's savings pools ordered by creation time descending.",
		Tags:        []string{"Savings"},
	}, h.handle)
}

func (h *ListSavingsHandler) handle(ctx context.Context, _ *struct{}) (*ListSavingsOutput, error) {
	caller := identity.FromContext(ctx)
	if !caller.IsAccount() {
		return nil, huma.NewError(http.StatusUnauthorized, "authentication required")
	}

	pools, err := h.SavingsService.List(ctx, caller.UserID)
	if err != nil {
		return nil, huma.NewError(http.StatusInternalServerError, "failed to list savings pools", err)
	}

	if logData := logging.GetLogData(ctx); logData != nil {
		logData.AddData("savingsCount", len(pools))
	}

	resp := ListSavingsResponseBody{Savings: make([]SavingsPool, len(pools))}
	for i, pool := range pools {
		resp.Savings[i] = fromService(pool)
	}

	return &ListSavingsOutput{Body: resp}, nil
}
