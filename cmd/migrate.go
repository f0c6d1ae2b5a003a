package main

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/m04kA/PrismCRM/internal/config"
	"github.com/m04kA/PrismCRM/internal/infra/storage/migrations"
	"github.com/m04kA/PrismCRM/pkg/logger"
)

func runMigrate(ctx context.Context, configPath string) error {
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Close()

	db, err := openDB(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := migrations.Apply(ctx, db, log); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}

	log.Info("Migrations applied (db=%s)", cfg.Database.DBName)
	return nil
}

// openDB открывает пул соединений и проверяет доступность БД
func openDB(ctx context.Context, cfg config.DatabaseConfig) (*sql.DB, error) {
	db, err := sql.Open("postgres", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.ConnMaxLifetime) * time.Second)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database (host=%s, port=%d, db=%s): %w", cfg.Host, cfg.Port, cfg.DBName, err)
	}
	return db, nil
}
