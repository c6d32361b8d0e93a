package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBuildDSNForcesDriverOptions(t *testing.T) {
	dsn := BuildDSN("app", "secret", "db:3306", "armada")
	assert.Contains(t, dsn, "app:secret@tcp(db:3306)/armada?")
	assert.Contains(t, dsn, "clientFoundRows=true")
	assert.Contains(t, dsn, "parseTime=true")
	assert.Contains(t, dsn, "charset=utf8mb4")
}

func TestNormalizeDSN(t *testing.T) {
	dsn := NormalizeDSN("app:secret@tcp(db:3306)/armada")
	assert.Contains(t, dsn, "clientFoundRows=true")
	assert.Contains(t, dsn, "parseTime=true")

	assert.Equal(t, "not-a-dsn", NormalizeDSN("not-a-dsn"))
}

func TestLoadEnv(t *testing.T) {
	t.Setenv("DB_DSN", "app:secret@tcp(db:3306)/armada")
	t.Setenv("TOKEN_TTL", "2h")
	t.Setenv("OWNER_ROLE", " Owner ")
	t.Setenv("EXPENSE_CATEGORY_KINDS", "maintenance, trip,")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://armada.example")

	env := LoadEnv()
	assert.Contains(t, env.DBDSN, "clientFoundRows=true")
	assert.Equal(t, 2*time.Hour, env.TokenTTL)
	assert.Equal(t, "owner", env.OwnerRole)
	assert.Equal(t, []string{"maintenance", "trip"}, env.ExpenseCategoryKinds)
	assert.Equal(t, []string{"https://armada.example"}, env.CORSAllowedOrigins)
	assert.Equal(t, ":8080", env.AppAddr)
}
