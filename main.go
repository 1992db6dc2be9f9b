package main

import (
	"sync"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/duitku/duitku-server/api"
	"github.com/duitku/duitku-server/internal/config"
	"github.com/duitku/duitku-server/internal/identity"
	"github.com/duitku/duitku-server/internal/logging"
	"github.com/duitku/duitku-server/internal/operator"
	"github.com/duitku/duitku-server/internal/service"
	"github.com/duitku/duitku-server/internal/storage"
)

const numOperatorWorkers = 4

func main() {
	_ = godotenv.Load()

	logger := logging.SetupLogging()
	logrus.Info("duitku-server starting")

	envConfig, err := config.ProcessEnvironmentVariables()
	if err != nil {
		logrus.WithError(err).Fatal("config.ProcessEnvironmentVariables")
		return
	}

	dbStorage, err := storage.NewStorage(envConfig)
	if err != nil {
		logrus.WithError(err).Fatal("storage.NewStorage")
		return
	}

	delegator := operator.NewOperatorDelegator(dbStorage, numOperatorWorkers)
	delegator.Start()
	defer delegator.Stop()

	svc := service.NewService(dbStorage, delegator)
	resolver := identity.NewResolver(envConfig.SessionCookie, envConfig.GuestCookie, envConfig.SessionSecret)

	wg := sync.WaitGroup{}
	wg.Add(1)

	go func() {
		httpRest := api.Rest{
			Logger:   logger,
			Port:     envConfig.HTTPPort,
			Service:  svc,
			Resolver: resolver,
		}
		httpRest.Serve()
	}()

	wg.Wait()
}
