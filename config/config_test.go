package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyDefaults(t *testing.T) {
	var c AppConfig
	applyDefaults(&c)

	assert.Equal(t, "8080", c.AppPort)
	assert.Equal(t, "release", c.GinMode)
	assert.Equal(t, "upload/images", c.UploadDir)
	assert.Equal(t, 60, c.RateLimitPerMinute)
	assert.Equal(t, []string{"*"}, c.AllowedOrigins)
	assert.Equal(t, "3306", c.DBPort)
	assert.Equal(t, "info", c.LogLevel)
	assert.Equal(t, 100, c.LogMaxSizeMB)
}

func TestApplyDefaultsKeepsExistingValues(t *testing.T) {
	c := AppConfig{AppPort: "9000", UploadDir: "blobs"}
	applyDefaults(&c)

	assert.Equal(t, "9000", c.AppPort)
	assert.Equal(t, "blobs", c.UploadDir)
}

func TestLoadJSONConfigGroupedSections(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"app": {"AppPort": "9090", "UploadDir": "data/images", "RateLimitPerMinute": 30},
		"database": {"DBHost": "db.internal", "DBName": "blog"},
		"log": {"Level": "debug", "MaxBackups": 5}
	}`), 0o644))

	var c AppConfig
	require.NoError(t, loadJSONConfig(path, &c))

	assert.Equal(t, "9090", c.AppPort)
	assert.Equal(t, "data/images", c.UploadDir)
	assert.Equal(t, 30, c.RateLimitPerMinute)
	assert.Equal(t, "db.internal", c.DBHost)
	assert.Equal(t, "blog", c.DBName)
	assert.Equal(t, "debug", c.LogLevel)
	assert.Equal(t, 5, c.LogMaxBackups)
}

func TestLoadJSONConfigFlatKeys(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"AppPort": "7070", "DBUser": "blog"}`), 0o644))

	var c AppConfig
	require.NoError(t, loadJSONConfig(path, &c))

	assert.Equal(t, "7070", c.AppPort)
	assert.Equal(t, "blog", c.DBUser)
}

func TestLoadJSONConfigMissingFile(t *testing.T) {
	var c AppConfig
	assert.NoError(t, loadJSONConfig(filepath.Join(t.TempDir(), "nope.json"), &c))
	assert.Zero(t, c)
}

func TestApplyEnvOverrides(t *testing.T) {
	t.Setenv("APP_PORT", "8888")
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("UPLOAD_DIR", "var/uploads")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("LOG_COMPRESS", "true")

	var c AppConfig
	applyDefaults(&c)
	applyEnvOverrides(&c)

	assert.Equal(t, "8888", c.AppPort)
	assert.Equal(t, "secret", c.DBPassword)
	assert.Equal(t, "var/uploads", c.UploadDir)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, c.AllowedOrigins)
	assert.True(t, c.LogCompress)
}

func TestSplitAndTrim(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, splitAndTrim(" a , b ,, "))
	assert.Empty(t, splitAndTrim(""))
}
