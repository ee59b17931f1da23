package main

import (
	"context"
	"database/sql"

	_ "github.com/go-sql-driver/mysql"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"middlebro/internal/adapters/observability"
	redisad "middlebro/internal/adapters/redis"
	"middlebro/internal/adapters/sheets"
	"middlebro/internal/app"
	"middlebro/internal/shared"
	mysqlrepo "middlebro/internal/storage/mysql"
)

// syncer is a one-shot job (run it from cron) that mirrors the directory
// spreadsheet into MySQL and drops the cached snapshot.
func main() {
	ctx := context.Background()
	_ = godotenv.Load()
	cfg := shared.Load()

	log.Logger = observability.NewLogger(cfg.AppEnv)

	log.Info().
		Str("sheet", cfg.SheetURL).
		Int("workers", cfg.SyncWorkers).
		Msg("syncer starting")

	db, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("sql.Open failed")
	}
	if err := db.Ping(); err != nil {
		log.Fatal().Err(err).Msg("db.Ping failed")
	}
	log.Info().Msg("db ping ok")

	repo := mysqlrepo.New(db)

	source, err := sheets.New(cfg.SheetURL, cfg.SheetRPS)
	if err != nil {
		log.Fatal().Err(err).Msg("sheet client init failed")
	}
	cache := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	svc := app.NewSyncService(source, repo, cache, cfg.SyncWorkers)
	synced, failed, err := svc.Sync(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("sync failed")
	}
	log.Info().Int("synced", synced).Int("failed", failed).Msg("sync completed")
}
