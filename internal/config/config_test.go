package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadExplicitPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := `
[mainConfig]
port = 9100

[databaseConfig]
driver = "postgres"
host = "db"

[kafkaConfig]
eventMode = "kafka"
topic = "family"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	conf, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9100, conf.MainConfig.Port)
	assert.Equal(t, "family-connections", conf.MainConfig.AppName)
	assert.Equal(t, "postgres", conf.DatabaseConfig.Driver)
	assert.Equal(t, "disable", conf.DatabaseConfig.SSLMode)
	assert.Equal(t, "kafka", conf.KafkaConfig.EventMode)
	assert.Equal(t, 300, conf.RedisConfig.CacheTTL)
	assert.Same(t, conf, GetConfig())
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	assert.Error(t, err)
}
