package pg

import (
	"context"
	"fmt"

	"github.com/GlebRadaev/novafunded/migrations"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"go.uber.org/zap"
)

// EmbeddedMigrations lists the schema and plan seed migrations compiled into
// the binary, oldest first.
func EmbeddedMigrations() (goose.Migrations, error) {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("postgres"); err != nil {
		return nil, fmt.Errorf("set goose dialect: %w", err)
	}
	known, err := goose.CollectMigrations(".", 0, goose.MaxVersion)
	if err != nil {
		return nil, fmt.Errorf("collect migrations: %w", err)
	}
	return known, nil
}

// RunMigrations brings the schema up to the newest embedded migration and
// returns the resulting database version.
func RunMigrations(ctx context.Context, pool *pgxpool.Pool) (int64, error) {
	known, err := EmbeddedMigrations()
	if err != nil {
		return 0, err
	}

	db := stdlib.OpenDBFromPool(pool)
	defer func() {
		if err := db.Close(); err != nil {
			zap.L().Warn("can't close migration connection", zap.Error(err))
		}
	}()

	if err := goose.UpContext(ctx, db, "."); err != nil {
		return 0, fmt.Errorf("apply migrations: %w", err)
	}
	version, err := goose.GetDBVersionContext(ctx, db)
	if err != nil {
		return 0, fmt.Errorf("read schema version: %w", err)
	}

	latest := known[len(known)-1].Version
	if version > latest {
		zap.L().Warn("database schema is newer than this binary",
			zap.Int64("version", version), zap.Int64("embedded", latest))
	} else {
		zap.L().Info("database schema is up to date", zap.Int64("version", version))
	}
	return version, nil
}
