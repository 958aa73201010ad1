package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/MKhiriev/go-odk-sync/internal/adapter"
	"github.com/MKhiriev/go-odk-sync/internal/client"
	"github.com/MKhiriev/go-odk-sync/internal/config"
	"github.com/MKhiriev/go-odk-sync/internal/filecache"
	"github.com/MKhiriev/go-odk-sync/internal/layout"
	"github.com/MKhiriev/go-odk-sync/internal/logger"
	"github.com/MKhiriev/go-odk-sync/internal/service"
	"github.com/MKhiriev/go-odk-sync/internal/store"
	"github.com/MKhiriev/go-odk-sync/internal/utils"
	"github.com/MKhiriev/go-odk-sync/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	build := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)
	fmt.Println(build)

	cfg, err := config.GetClientConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error getting configs: %v\n", err)
		os.Exit(1)
	}

	log := logger.NewClientLogger("odksync", logger.FileOptions{Path: cfg.Log.File, Level: cfg.Log.Level})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	ctx = log.WithContext(ctx)

	cache, err := filecache.Open(cfg.Storage.FileCachePath)
	if err != nil {
		log.Fatal().Err(err).Msg("open file cache")
	}
	defer cache.Close()

	cfg.App.InstallationID, err = client.InstallationID(cache, cfg.App.InstallationID, utils.NewUUIDGenerator())
	if err != nil {
		log.Fatal().Err(err).Msg("resolve installation id")
	}

	storages, err := store.NewClientStorages(ctx, cfg.Storage, log)
	if err != nil {
		log.Fatal().Err(err).Msg("create local storage")
	}
	defer storages.Close()

	if err = client.ForgetServerOnChange(ctx, cache, storages.Database, cfg.Adapter.BaseURL); err != nil {
		log.Fatal().Err(err).Msg("check server change")
	}

	synchronizer, err := adapter.NewHTTPSynchronizer(cfg.Adapter, cfg.App, build.UserAgent(), log)
	if err != nil {
		log.Fatal().Err(err).Msg("create server adapter")
	}

	session := service.NewSyncSession(synchronizer, storages.Database, cache, layout.New(cfg.App.RootDir), nil, service.SettingsFromConfig(cfg.App))
	services := service.NewClientServices(session, cfg.App.Direction, client.NewReportWriter(os.Stdout), log)

	app, err := client.NewApp(services, cfg.Workers, cfg.App.RootDir, log)
	if err != nil {
		log.Fatal().Err(err).Msg("init client app error")
	}

	if err = app.Run(ctx); err != nil {
		log.Error().Err(err).Msg("client run error")
		stop()
		storages.Close()
		cache.Close()
		os.Exit(1)
	}
}
