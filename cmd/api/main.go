package main

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"middlebro/internal/adapters/email"
	"middlebro/internal/adapters/gcal"
	server "middlebro/internal/adapters/http_server"
	"middlebro/internal/adapters/observability"
	redisad "middlebro/internal/adapters/redis"
	"middlebro/internal/adapters/sheets"
	"middlebro/internal/adapters/token"
	"middlebro/internal/app"
	"middlebro/internal/domain"
	"middlebro/internal/shared"
	mysqlrepo "middlebro/internal/storage/mysql"
)

func main() {
	_ = godotenv.Load()
	cfg := shared.Load()

	// set global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv)

	observability.Serve()

	loc, err := time.LoadLocation(cfg.BookingTZ)
	if err != nil {
		log.Fatal().Err(err).Str("tz", cfg.BookingTZ).Msg("invalid booking timezone")
	}

	// db
	db, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("sql.Open failed")
	}
	if err := db.Ping(); err != nil {
		log.Fatal().Err(err).Msg("db.Ping failed")
	}
	log.Info().Msg("database connection ok")

	// deps
	repo := mysqlrepo.New(db)
	cache := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	var source domain.DirectorySource
	if cfg.SheetURL != "" {
		source, err = sheets.New(cfg.SheetURL, cfg.SheetRPS)
		if err != nil {
			log.Fatal().Err(err).Msg("sheet client init failed")
		}
	} else {
		// mirror-only mode: the sheet source always errors, matching
		// falls through to the MySQL mirror
		source = mirrorOnly{}
	}

	notifier := email.New(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.SMTPFrom)

	var cal domain.Calendar
	if cfg.GoogleCredsFile != "" {
		cal, err = gcal.New(context.Background(), cfg.GoogleCredsFile, cfg.CalendarID, cfg.BookingTZ)
		if err != nil {
			log.Fatal().Err(err).Msg("calendar sink init failed")
		}
	} else {
		log.Warn().Msg("GOOGLE_CREDENTIALS_FILE is empty; calendar events disabled")
	}

	tokens := token.New(cfg.JWTSecret, cfg.TokenTTL)

	now := func() time.Time { return time.Now().In(loc) }
	matchSvc := app.NewMatchService(source, repo, cache, cfg.CacheTTL, now)
	bookingSvc := app.NewBookingService(repo, notifier, cal, loc, now)
	authSvc := app.NewAuthService(repo, tokens)

	// http
	srv := server.New()
	reg := observability.InitRegistry()
	srv.Mount("/metrics", observability.MetricsHandler(reg))
	srv.MountHandlers(&server.Handlers{
		Match:    matchSvc,
		Bookings: bookingSvc,
		Auth:     authSvc,
		Tokens:   tokens,
	})

	log.Info().Str("addr", cfg.HTTPAddr).Msg("API listening")
	httpSrv := &http.Server{Addr: cfg.HTTPAddr, Handler: srv.Mux()}

	if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("http server failed")
	}
}

type mirrorOnly struct{}

func (mirrorOnly) Businesses(ctx context.Context) ([]domain.BusinessRecord, error) {
	return nil, sheets.ErrNotFound
}
