package shared

import (
	"os"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"
)

type Config struct {
	AppEnv      string
	HTTPAddr    string
	MetricsAddr string

	MySQLDSN  string
	RedisAddr string
	RedisDB   int
	RedisPass string

	SheetURL string
	SheetRPS int
	CacheTTL time.Duration

	BookingTZ string

	SMTPHost string
	SMTPPort int
	SMTPUser string
	SMTPPass string
	SMTPFrom string

	GoogleCredsFile string
	CalendarID      string

	JWTSecret string
	TokenTTL  time.Duration

	SyncWorkers int
}

func Load() Config {
	atoi := func(k string, def int) int {
		if v := os.Getenv(k); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				return n
			}
		}
		return def
	}
	c := Config{
		AppEnv:      env("APP_ENV", "prod"),
		HTTPAddr:    env("HTTP_ADDR", ":8080"),
		MetricsAddr: env("METRICS_ADDR", ":9100"),
		MySQLDSN:    env("MYSQL_DSN", "root:root@tcp(localhost:3306)/middlebro?parseTime=true&charset=utf8mb4,utf8&loc=UTC"),
		RedisAddr:   env("REDIS_ADDR", "localhost:6379"),
		RedisDB:     atoi("REDIS_DB", 0),
		RedisPass:   env("REDIS_PASSWORD", ""),
		SheetURL:    env("SHEET_CSV_URL", ""),
		SheetRPS:    atoi("SHEET_RPS", 2),
		CacheTTL:    time.Duration(atoi("CACHE_TTL_SECONDS", 300)) * time.Second,
		BookingTZ:   env("BOOKING_TZ", "Europe/Bucharest"),
		SMTPHost:    env("SMTP_HOST", "localhost"),
		SMTPPort:    atoi("SMTP_PORT", 25),
		SMTPUser:    env("SMTP_USER", ""),
		SMTPPass:    env("SMTP_PASSWORD", ""),
		SMTPFrom:    env("SMTP_FROM", "no-reply@middlebro.app"),

		GoogleCredsFile: env("GOOGLE_CREDENTIALS_FILE", ""),
		CalendarID:      env("CALENDAR_ID", "primary"),

		JWTSecret: env("JWT_SECRET", ""),
		TokenTTL:  time.Duration(atoi("TOKEN_TTL_SECONDS", 86400)) * time.Second,

		SyncWorkers: atoi("SYNC_WORKERS", 4),
	}
	if c.SheetURL == "" {
		log.Warn().Msg("SHEET_CSV_URL is empty; directory lookups will rely on the MySQL mirror")
	}
	if c.JWTSecret == "" {
		log.Warn().Msg("JWT_SECRET is empty; auth routes will reject every token")
	}
	return c
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
