package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"ENV", "SERVER_HOST", "SERVER_PORT",
		"DB_HOST", "DB_PORT", "DB_USER", "DB_PASSWORD", "DB_NAME", "DB_SSL_MODE",
		"REDIS_HOST", "REDIS_PORT", "REDIS_PASSWORD", "REDIS_DB",
		"JWT_SECRET", "JWT_SECRET_FILE", "SEED_DEMO", "SECRETS_DIR",
	} {
		t.Setenv(key, "")
	}
	// Keep secret() away from any real /run/secrets on the test host.
	t.Setenv("SECRETS_DIR", t.TempDir())
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, "localhost", cfg.DBHost)
	assert.Equal(t, "creativehub", cfg.DBName)
	assert.Equal(t, "dev-only-secret", cfg.JWTSecret, "development fills in a JWT secret")
	assert.True(t, cfg.SeedDemo)
}

func TestLoadProductionRequiresSecrets(t *testing.T) {
	clearEnv(t)
	t.Setenv("ENV", "production")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET")
	assert.Contains(t, err.Error(), "DB_PASSWORD")

	t.Setenv("JWT_SECRET", "super-secret")
	t.Setenv("DB_PASSWORD", "db-pass")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "super-secret", cfg.JWTSecret)
}

func TestSecretFileFallback(t *testing.T) {
	clearEnv(t)

	secretFile := filepath.Join(t.TempDir(), "jwt_secret")
	require.NoError(t, os.WriteFile(secretFile, []byte("file-secret\n"), 0o600))
	t.Setenv("JWT_SECRET_FILE", secretFile)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "file-secret", cfg.JWTSecret, "file contents are trimmed")
}

func TestSecretsDirFallback(t *testing.T) {
	clearEnv(t)

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "db_password"), []byte("from-secrets-dir"), 0o600))
	t.Setenv("SECRETS_DIR", dir)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "from-secrets-dir", cfg.DBPassword)
}

func TestDSNAndRedisAddr(t *testing.T) {
	clearEnv(t)
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_PASSWORD", "pw")
	t.Setenv("REDIS_HOST", "cache.internal")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "host=db.internal port=5432 user=creativehub password=pw dbname=creativehub sslmode=disable", cfg.DSN())
	assert.Equal(t, "cache.internal:6379", cfg.RedisAddr())
}

func TestInvalidRedisDB(t *testing.T) {
	clearEnv(t)
	t.Setenv("REDIS_DB", "not-a-number")

	_, err := Load()
	assert.Error(t, err)
}

func TestGetEnvironment(t *testing.T) {
	clearEnv(t)
	assert.Equal(t, Development, GetEnvironment())

	t.Setenv("ENV", "test")
	assert.Equal(t, Test, GetEnvironment())

	t.Setenv("ENV", "production")
	assert.Equal(t, Production, GetEnvironment())
	assert.True(t, IsProduction())
}
