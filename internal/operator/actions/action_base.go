package actions

import (
	"context"

	"github.com/duitku/duitku-server/internal/storage"
)

// IAction is one mutation performed inside a single database transaction.
// Actions carry their inputs as fields and report results through result
// fields set during Perform.
type IAction interface {
	Perform(ctx context.Context, writer *storage.Writer) error
}
