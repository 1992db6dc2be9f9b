package savings

import (
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/duitku/duitku-server/internal/service"
)

// SavingsPool is the API model for a savings pool.
type SavingsPool struct {
	ID             int64  `json:"id" doc:"Savings pool id"`
	Name           string `json:"nama" doc:"Pool name"`
	InitialBalance string `json:"saldoAwal" doc:"Decimal initial balance"`
	CurrentAmount  string `json:"jumlahSaatIni" doc:"Decimal current amount"`
}

func fromService(pool service.SavingsPool) SavingsPool {
	return SavingsPool{
		ID:             pool.ID,
		Name:           pool.Name,
		InitialBalance: pool.InitialBalance.String(),
		CurrentAmount:  pool.CurrentAmount.String(),
	}
}

// serviceError maps the service error taxonomy onto HTTP statuses.
func serviceError(err error) error {
	if errors.Is(err, service.ErrNotFound) {
		return huma.NewError(http.StatusNotFound, "savings pool not found", err)
	}
	return huma.NewError(http.StatusInternalServerError, "savings operation failed", err)
}
