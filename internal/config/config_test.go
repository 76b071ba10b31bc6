package config

import (
	"crypto/rand"
	"crypto/rsa"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestJWT(t *testing.T) *JWT {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	return NewJWTWithKeys(key, &key.PublicKey, time.Hour)
}

func TestIssueAndParse(t *testing.T) {
	j := newTestJWT(t)

	token, err := j.Issue("player@example.com", time.Now())
	require.NoError(t, err)

	claims, err := j.ParseAccountClaims(token)
	require.NoError(t, err)
	assert.Equal(t, "player@example.com", claims.Email)
}

func TestParseRejectsExpiredToken(t *testing.T) {
	j := newTestJWT(t)

	token, err := j.Issue("player@example.com", time.Now().Add(-2*time.Hour))
	require.NoError(t, err)

	_, err = j.ParseAccountClaims(token)
	assert.Error(t, err)
}

func TestParseRejectsForeignKey(t *testing.T) {
	token, err := newTestJWT(t).Issue("player@example.com", time.Now())
	require.NoError(t, err)

	_, err = newTestJWT(t).ParseAccountClaims(token)
	assert.Error(t, err)
}

func TestDatabaseFromEnv(t *testing.T) {
	t.Setenv("POSTGRES_USER", "mines")
	t.Setenv("POSTGRES_PASSWORD", "p@ss word")
	t.Setenv("POSTGRES_HOST", "db")
	t.Setenv("POSTGRES_DB", "minesweeper")

	cfg, err := NewDatabase()
	require.NoError(t, err)
	assert.Equal(t, uint16(5432), cfg.Port)
	assert.Equal(t, "disable", cfg.SSLMode)
	assert.Equal(t,
		"postgresql://mines:p%40ss+word@db:5432/minesweeper?sslmode=disable",
		cfg.URL(),
	)
}

func TestDatabaseRequiresUser(t *testing.T) {
	t.Setenv("POSTGRES_USER", "")
	t.Setenv("POSTGRES_HOST", "db")
	t.Setenv("POSTGRES_DB", "minesweeper")
	t.Setenv("POSTGRES_PASSWORD", "secret")

	_, err := NewDatabase()
	assert.Error(t, err)
}

func TestAppDefaults(t *testing.T) {
	app, err := NewApp()
	require.NoError(t, err)
	assert.Equal(t, ":8080", app.Addr)
	assert.Equal(t, StoragePostgres, app.Storage)
}
