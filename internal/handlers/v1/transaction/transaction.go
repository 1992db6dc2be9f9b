package transaction

import (
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/duitku/duitku-server/internal/service"
)

const dateLayout = "2006-01-02"

// Transaction is the API model for a transaction. It is used only for
// responses, not for request bodies.
type Transaction struct {
	ID          int64  `json:"id" doc:"Transaction id"`
	Title       string `json:"judul" doc:"Title"`
	Amount      string `json:"jumlah" doc:"Decimal amount, always non-negative"`
	Description string `json:"deskripsi,omitempty" doc:"Optional description"`
	Date        string `json:"tanggal" doc:"Transaction date (YYYY-MM-DD)"`
	Type        string `json:"tipe" doc:"income or expense"`
	CategoryID  *int64 `json:"kategoriId,omitempty" doc:"Category id, absent when uncategorized"`
}

func fromService(tx service.Transaction) Transaction {
	return Transaction{
		ID:          tx.ID,
		Title:       tx.Title,
		Amount:      tx.Amount.String(),
		Description: tx.Description,
		Date:        tx.Date.Format(dateLayout),
		Type:        tx.Type,
		CategoryID:  tx.CategoryID,
	}
}

// serviceError maps the service error taxonomy onto HTTP statuses.
func serviceError(err error, notFoundMsg string) error {
	switch {
	case errors.Is(err, service.ErrNotFound):
		return huma.NewError(http.StatusNotFound, notFoundMsg, err)
	case errors.Is(err, service.ErrInvalidType), errors.Is(err, service.ErrInvalidCategory):
		return huma.NewError(http.StatusBadRequest, err.Error())
	default:
		return huma.NewError(http.StatusInternalServerError, "transaction operation failed", err)
	}
}
