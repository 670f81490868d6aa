package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/sirupsen/logrus"

	"salescrm/internal/config"
	"salescrm/internal/infra"
	"salescrm/internal/job"
)

const defaultConnectTimeout = 5 * time.Second

func main() {
	cfg, err := config.Build()
	if err != nil {
		logrus.Fatalf("failed to build config - %v", err)
	}

	connectCtx, cancel := context.WithTimeout(context.Background(), defaultConnectTimeout)
	defer cancel()

	pgPool, err := infra.Postgresql(connectCtx, cfg.PostgresCfg)
	if err != nil {
		logrus.Fatalf("failed to connect to postgresql - %v", err)
	}
	defer pgPool.Close()

	redisClient, err := infra.Redis(connectCtx, cfg.RedisCfg)
	if err != nil {
		logrus.Fatalf("failed to connect to redis - %v", err)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logrus.Errorf("failed to close redis client - %v", err)
		}
	}()

	app, err := infra.Build(pgPool, redisClient, cfg.AuthCfg)
	if err != nil {
		logrus.Fatalf("failed to build application - %v", err)
	}

	start(app, cfg)
}

func start(app *infra.App, cfg config.Config) {
	jobCtx, stopJobs := context.WithCancel(context.Background())
	defer stopJobs()

	sweeper := job.NewRecycleSweeper(app.PoolSvc, cfg.JobCfg.RecycleSweepInterval)
	go sweeper.Run(jobCtx)

	shutdownCh := make(chan os.Signal, 1)
	errorCh := make(chan error, 1)
	signal.Notify(shutdownCh, os.Interrupt)

	go func() {
		errorCh <- app.Router.Start(fmt.Sprintf(":%d", cfg.ServerCfg.Port))
	}()

	select {
	case <-shutdownCh:
		stopJobs()

		ctx, cancel := context.WithTimeout(context.Background(), cfg.ServerCfg.ShutdownTimeout)
		defer cancel()

		logrus.Info("shutdown signal has been sent, stopping the server...")
		if err := app.Router.Shutdown(ctx); err != nil {
			logrus.Fatalf("failed to stop server gracefully - %v", err)
		}
	case err := <-errorCh:
		if !errors.Is(err, http.ErrServerClosed) {
			logrus.Fatalf("shutting down the server, unexpected error occurred - %v", err)
		}
	}
}
