package cmd

import (
	"fmt"

	"github.com/Zurki/immich-avif-generator/core/config"
	"github.com/Zurki/immich-avif-generator/core/database"
	"github.com/Zurki/immich-avif-generator/core/immich"
	"github.com/Zurki/immich-avif-generator/core/logger"
	"github.com/Zurki/immich-avif-generator/core/store"
	"github.com/Zurki/immich-avif-generator/core/transcode"
	"github.com/Zurki/immich-avif-generator/feature/sync"

	"go.uber.org/zap"
)

// app bundles the wired components every subcommand starts from.
type app struct {
	cfg    *config.Config
	logger *zap.Logger
	client *immich.Client
	store  *store.Store
}

// initApp loads configuration and wires the shared components. A storage
// root or index that cannot be opened is fatal here: no command can make
// progress without them.
func initApp() (*app, error) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	l, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	zap.ReplaceGlobals(l)

	db, err := database.Connect(cfg.Database)
	if err != nil {
		return nil, err
	}

	st, err := store.New(cfg.Store, db, l)
	if err != nil {
		return nil, err
	}

	client := immich.NewClient(cfg.Immich, l)

	return &app{cfg: cfg, logger: l, client: client, store: st}, nil
}

// syncService builds the reconciliation engine on the shared components.
func (a *app) syncService() *sync.Service {
	return sync.NewService(a.client, transcode.New(a.cfg.Image), a.store, a.cfg.Sync, a.logger)
}
