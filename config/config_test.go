package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o600))
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 8080
database:
  uri: mongodb://localhost:27017/querynest
jwt:
  secret: local-secret
  expiry: 1440
admin:
  username: admin
  password: admin-pass
scoring:
  askPoint: 7
jobs:
  leaderboardEveryMinutes: 30
  cleanupEveryMinutes: 10
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "mongodb://localhost:27017/querynest", cfg.Database.URI)
	assert.Equal(t, "local-secret", cfg.JWT.Secret)
	assert.Equal(t, 1440, cfg.JWT.Expiry)
	assert.Equal(t, "admin", cfg.Admin.Username)
	assert.Equal(t, 7, cfg.Scoring.AskPoint)
	assert.Equal(t, 30, cfg.Jobs.LeaderboardEveryMinutes)
	assert.Equal(t, 10, cfg.Jobs.CleanupEveryMinutes)
}

func TestLoadConfigDefaults(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 8080
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 5, cfg.Scoring.AskPoint)
	assert.Equal(t, 60, cfg.Jobs.LeaderboardEveryMinutes)
	assert.Equal(t, 5, cfg.Jobs.CleanupEveryMinutes)
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	path := writeConfig(t, `
database:
  uri: mongodb://file-host:27017
jwt:
  secret: file-secret
`)

	t.Setenv("MONGO_URI", "mongodb://env-host:27017")
	t.Setenv("JWT_SECRET", "env-secret")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "mongodb://env-host:27017", cfg.Database.URI)
	assert.Equal(t, "env-secret", cfg.JWT.Secret)
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yml"))
	assert.Error(t, err)
}
