// file: config/config_test.go
package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	chdir(t, t.TempDir()) // no .env here
	t.Setenv("CONFIG_FILE", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, 3000, cfg.Port)
	assert.Equal(t, ":3000", cfg.Addr())
	assert.Equal(t, "mysql", cfg.Database.Driver)
	assert.Equal(t, "festdb", cfg.Database.Name)
	assert.Equal(t, "cookie", cfg.Session.Store)
	assert.Equal(t, 2*time.Hour, cfg.Session.TTL)
	assert.False(t, cfg.SecureCookies(), "auto should be insecure outside production")
	assert.Empty(t, cfg.TrustedProxies, "no proxy is trusted by default")
}

func TestLoad_EnvOverrides(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("PORT", "8081")
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("DB_NAME", ":memory:")
	t.Setenv("SESSION_TTL", "15m")
	t.Setenv("CORS_ORIGINS", "https://a.example,https://b.example")
	t.Setenv("TRUSTED_PROXIES", "10.0.0.1,10.0.1.0/24")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8081, cfg.Port)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, 15*time.Minute, cfg.Session.TTL)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSOrigins)
	assert.Equal(t, []string{"10.0.0.1", "10.0.1.0/24"}, cfg.TrustedProxies)
}

func TestLoad_DotEnvFile(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("DB_NAME=fromdotenv\n"), 0600))
	t.Cleanup(func() { os.Unsetenv("DB_NAME") })

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "fromdotenv", cfg.Database.Name)
}

func TestLoad_YAMLFile(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	path := filepath.Join(dir, "festreg.yaml")
	yaml := "port: 9000\ndatabase:\n  driver: postgres\n  name: fest\n"
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0600))
	t.Setenv("CONFIG_FILE", path)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 9000, cfg.Port)
	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, "fest", cfg.Database.Name)
}

func TestLoad_ProductionRequiresSecret(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("APP_ENV", "production")
	t.Setenv("SESSION_SECRET", "")

	_, err := Load()
	assert.ErrorIs(t, err, ErrMissingSecret)
}

func TestValidate(t *testing.T) {
	base := Config{
		Database: Database{Driver: "sqlite"},
		Session:  Session{Store: "cookie", TTL: time.Hour},
	}
	assert.NoError(t, base.Validate())

	bad := base
	bad.Database.Driver = "oracle"
	assert.Error(t, bad.Validate())

	bad = base
	bad.Session.Store = "memcached"
	assert.Error(t, bad.Validate())

	bad = base
	bad.Session.TTL = 0
	assert.Error(t, bad.Validate())
}

func TestSecureCookies(t *testing.T) {
	cfg := Config{Env: "production", Session: Session{Secure: "auto"}}
	assert.True(t, cfg.SecureCookies())

	cfg.Session.Secure = "false"
	assert.False(t, cfg.SecureCookies())

	cfg = Config{Env: "development", Session: Session{Secure: "true"}}
	assert.True(t, cfg.SecureCookies())
}

// chdir mirrors testing.T.Chdir (Go 1.24+) for older toolchains: it changes
// the working directory and restores it when the test finishes.
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(old) })
}
