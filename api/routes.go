package api

import (
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humago"
	"github.com/sirupsen/logrus"

	"github.com/duitku/duitku-server/internal/handlers/v1/export"
	"github.com/duitku/duitku-server/internal/handlers/v1/importer"
	"github.com/duitku/duitku-server/internal/handlers/v1/savings"
	"github.com/duitku/duitku-server/internal/handlers/v1/status"
	syncHandler "github.com/duitku/duitku-server/internal/handlers/v1/sync"
	"github.com/duitku/duitku-server/internal/handlers/v1/transaction"
	"github.com/duitku/duitku-server/internal/identity"
	"github.com/duitku/duitku-server/internal/logging"
	"github.com/duitku/duitku-server/internal/service"
)

type Rest struct {
	Logger   *logrus.Logger
	Port     string
	Service  *service.Service
	Resolver *identity.Resolver
}

// BuildAPI assembles the Huma API with middleware and every route
// registered. Split out from Serve so tests can mount it without a
// listener.
func (r *Rest) BuildAPI() (huma.API, *http.ServeMux) {
	mux := http.NewServeMux()
	api := humago.New(mux, huma.DefaultConfig("duitku-server", "1.0.0"))
	api.UseMiddleware(logging.Middleware(r.Logger))
	api.UseMiddleware(identity.Middleware(api, r.Resolver))

	status.NewStatusHandler().Register(api)

	transaction.NewListTransactionsHandler(r.Service.Transactions).Register(api)
	transaction.NewCreateTransactionHandler(r.Service.Transactions).Register(api)
	transaction.NewUpdateTransactionHandler(r.Service.Transactions).Register(api)
	transaction.NewDeleteTransactionHandler(r.Service.Transactions).Register(api)

	savings.NewListSavingsHandler(r.Service.Savings).Register(api)
	savings.NewCreateSavingsHandler(r.Service.Savings).Register(api)
	savings.NewUpdateSavingsHandler(r.Service.Savings).Register(api)
	savings.NewUpdateBalanceHandler(r.Service.Savings).Register(api)
	savings.NewDeleteSavingsHandler(r.Service.Savings).Register(api)

	importer.NewImportTransactionsHandler(r.Service.Importer).Register(api)
	export.NewExportTransactionsHandler(r.Service.Exporter).Register(api)
	export.NewExportSavingsHandler(r.Service.Exporter).Register(api)
	syncHandler.NewSyncHandler(r.Service.Sync).Register(api)

	return api, mux
}

func (r *Rest) Serve() {
	_, mux := r.BuildAPI()

	server := http.Server{
		Addr:              ":" + r.Port,
		Handler:           mux,
		ReadTimeout:       time.Duration(30) * time.Second,
		WriteTimeout:      time.Duration(30) * time.Second,
		IdleTimeout:       time.Duration(10) * time.Second,
		ReadHeaderTimeout: time.Duration(10) * time.Second,
	}

	r.Logger.Info("HttpServer.Serve.listening")
	err := server.ListenAndServe()
	if err != nil {
		r.Logger.WithError(err).Error("HttpServer.Serve.listen error")
	}
	r.Logger.Info("HttpServer.Serve.shutting down")
}
