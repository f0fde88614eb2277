package root

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/spf13/cobra"

	"synthevix/internal/backup"
	"synthevix/internal/config"
	"synthevix/internal/engine"
	"synthevix/internal/storage"
	"synthevix/internal/telemetry"
	"synthevix/internal/ui"
)

// app is everything a command needs once config, logging and the store are open.
type app struct {
	cfg     config.Config
	logger  *slog.Logger
	db      *sql.DB
	svc     *engine.Service
	backups *backup.Manager
}

// loadConfig reads the configuration and applies the theme. Commands that do not
// touch the store stop here.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return cfg, err
	}
	if err := ui.UseTheme(cfg.Theme.Active); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func openApp(ctx context.Context) (*app, func(), error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}

	logger, logCloser, err := telemetry.NewLogger(cfg.HomeDir, cfg.Log.Level)
	if err != nil {
		return nil, nil, fmt.Errorf("open log: %w", err)
	}

	db, err := storage.Open(ctx, cfg.Storage.DBPath)
	if err != nil {
		_ = logCloser.Close()
		return nil, nil, err
	}
	cleanup := func() {
		_ = db.Close()
		_ = logCloser.Close()
	}

	svc := engine.NewService(db,
		engine.WithLogger(logger),
		engine.WithStreakResetHour(cfg.Quest.StreakResetHour),
		engine.WithUsername(cfg.General.Username),
	)
	if err := svc.Bootstrap(ctx); err != nil {
		cleanup()
		return nil, nil, err
	}

	mgr, err := backup.NewManager(backup.Config{
		Dir:      cfg.Storage.BackupDir,
		Schedule: cfg.Storage.BackupSchedule,
		Keep:     cfg.Storage.BackupKeep,
		Logger:   logger,
	})
	if err != nil {
		cleanup()
		return nil, nil, err
	}
	// A failed automatic backup is logged, never fatal to the command.
	if _, _, err := mgr.MaybeRun(ctx, db); err != nil {
		logger.Warn("scheduled backup failed", "error", err)
	}

	return &app{cfg: cfg, logger: logger, db: db, svc: svc, backups: mgr}, cleanup, nil
}

// withApp wraps a command body with openApp and its cleanup.
func withApp(fn func(cmd *cobra.Command, args []string, a *app) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		a, cleanup, err := openApp(cmd.Context())
		if err != nil {
			return err
		}
		defer cleanup()
		return fn(cmd, args, a)
	}
}

func idArg(cmd *cobra.Command, args []string) error {
	if len(args) != 1 {
		return errors.New("id is required")
	}
	if _, err := strconv.ParseInt(args[0], 10, 64); err != nil {
		return errors.New("id must be an integer")
	}
	return nil
}

func parseID(s string) int64 {
	id, _ := strconv.ParseInt(s, 10, 64)
	return id
}
