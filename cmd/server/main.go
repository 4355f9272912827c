package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/samber/do"
	"go.uber.org/zap"

	"github.com/marconi-lab/annotator/internal/bootstrap"
	"github.com/marconi-lab/annotator/internal/config"
	"github.com/marconi-lab/annotator/internal/modules/handler"
	"github.com/marconi-lab/annotator/internal/modules/repo"
	"github.com/marconi-lab/annotator/internal/router"
	"github.com/marconi-lab/annotator/internal/telemetry"
)

//	@title			Annotator API
//	@version		0.0.1
//	@description	Multi-tenant image labelling platform: datasets, cases, annotations and exports.

//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Type "Bearer" followed by a space and the access token.

func main() {
	// .env is optional; real deployments configure through the environment.
	_ = godotenv.Load()

	inj := bootstrap.BuildContainer()

	cfg := do.MustInvoke[*config.Config](inj)
	log := do.MustInvoke[*zap.Logger](inj)
	defer log.Sync() //nolint:errcheck

	if _, err := telemetry.SetupTracing(cfg); err != nil {
		log.Fatal("setup tracing", zap.Error(err))
	}
	if _, err := telemetry.SetupMetrics(cfg); err != nil {
		log.Fatal("setup metrics", zap.Error(err))
	}
	if err := telemetry.InitLabellingMetrics(); err != nil {
		log.Fatal("init labelling metrics", zap.Error(err))
	}

	engine := router.NewRouter(router.RouterDeps{
		Config:            cfg,
		Log:               log,
		Blacklist:         do.MustInvoke[repo.BlacklistRepo](inj),
		AuthHandler:       do.MustInvoke[*handler.AuthHandler](inj),
		DatasetHandler:    do.MustInvoke[*handler.DatasetHandler](inj),
		ProjectHandler:    do.MustInvoke[*handler.ProjectHandler](inj),
		UserAdminHandler:  do.MustInvoke[*handler.UserAdminHandler](inj),
		AssignmentHandler: do.MustInvoke[*handler.AssignmentHandler](inj),
		ItemHandler:       do.MustInvoke[*handler.ItemHandler](inj),
		ImageHandler:      do.MustInvoke[*handler.ImageHandler](inj),
		UserHandler:       do.MustInvoke[*handler.UserHandler](inj),
		UploadHandler:     do.MustInvoke[*handler.UploadHandler](inj),
		ExportHandler:     do.MustInvoke[*handler.ExportHandler](inj),
		PredictHandler:    do.MustInvoke[*handler.PredictHandler](inj),
	})

	srv := &http.Server{
		Addr:              cfg.App.Addr,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Info("server listening", zap.String("addr", cfg.App.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("http shutdown", zap.Error(err))
	}
	if err := telemetry.Shutdown(shutdownCtx); err != nil {
		log.Error("tracing shutdown", zap.Error(err))
	}
	if err := telemetry.ShutdownMetrics(shutdownCtx); err != nil {
		log.Error("metrics shutdown", zap.Error(err))
	}

	if err := inj.Shutdown(); err != nil {
		log.Error("container shutdown", zap.Error(err))
	}
}
