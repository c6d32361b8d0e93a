package config

import (
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Env struct {
	AppAddr  string
	GinMode  string
	LogLevel string

	DBDSN string

	JWTSecret string
	TokenTTL  time.Duration
	OwnerRole string

	CORSAllowedOrigins   []string
	ExpenseCategoryKinds []string
}

// LoadEnv reads configuration from the process environment. A .env file in the
// working directory is loaded first when present; real env vars win over it.
func LoadEnv() Env {
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("APP_ADDR", ":8080")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("DB_USER", "root")
	v.SetDefault("DB_PASS", "")
	v.SetDefault("DB_HOST", "127.0.0.1:3306")
	v.SetDefault("DB_NAME", "armada")
	v.SetDefault("JWT_SECRET", "super-secret-key-change-me")
	v.SetDefault("TOKEN_TTL", "24h")
	v.SetDefault("OWNER_ROLE", "owner")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000,http://127.0.0.1:3000,http://localhost:5173,http://127.0.0.1:5173")
	v.SetDefault("EXPENSE_CATEGORY_KINDS", "maintenance,general,trip")

	ttl := v.GetDuration("TOKEN_TTL")
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}

	dsn := strings.TrimSpace(v.GetString("DB_DSN"))
	if dsn == "" {
		dsn = BuildDSN(v.GetString("DB_USER"), v.GetString("DB_PASS"), v.GetString("DB_HOST"), v.GetString("DB_NAME"))
	} else {
		dsn = NormalizeDSN(dsn)
	}

	return Env{
		AppAddr:              strings.TrimSpace(v.GetString("APP_ADDR")),
		GinMode:              strings.TrimSpace(v.GetString("GIN_MODE")),
		LogLevel:             strings.TrimSpace(v.GetString("LOG_LEVEL")),
		DBDSN:                dsn,
		JWTSecret:            v.GetString("JWT_SECRET"),
		TokenTTL:             ttl,
		OwnerRole:            strings.ToLower(strings.TrimSpace(v.GetString("OWNER_ROLE"))),
		CORSAllowedOrigins:   splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
		ExpenseCategoryKinds: splitList(v.GetString("EXPENSE_CATEGORY_KINDS")),
	}
}

// BuildDSN renders a MySQL DSN with the pool-friendly timeouts the service relies on.
func BuildDSN(user, pass, host, name string) string {
	cfg := mysql.NewConfig()
	cfg.User = user
	cfg.Passwd = pass
	cfg.Net = "tcp"
	cfg.Addr = host
	cfg.DBName = name
	cfg.ParseTime = true
	cfg.ClientFoundRows = true
	cfg.Loc = time.Local
	cfg.Timeout = 5 * time.Second
	cfg.ReadTimeout = 30 * time.Second
	cfg.WriteTimeout = 30 * time.Second
	cfg.Params = map[string]string{"charset": "utf8mb4"}
	return cfg.FormatDSN()
}

// NormalizeDSN forces the options guarded updates depend on: matched-row counts
// and time parsing. An unparsable DSN is returned unchanged for the driver to reject.
func NormalizeDSN(dsn string) string {
	cfg, err := mysql.ParseDSN(dsn)
	if err != nil {
		return dsn
	}
	cfg.ParseTime = true
	cfg.ClientFoundRows = true
	return cfg.FormatDSN()
}

func splitList(raw string) []string {
	out := []string{}
	for _, p := range strings.Split(raw, ",") {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
