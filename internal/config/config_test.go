package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestLoad_Defaults проверяет значения по умолчанию
func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "https://backend.sufactura.store/api", cfg.ServerURL)
	assert.Equal(t, "clipers-client.db", cfg.DBPath)
	assert.Equal(t, 30*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, 10, cfg.PageSize)
}

// TestLoad_Environment проверяет чтение из переменных окружения
func TestLoad_Environment(t *testing.T) {
	t.Setenv("CLIPERS_SERVER_URL", "http://localhost:8080/api")
	t.Setenv("CLIPERS_DB_PATH", "/tmp/test.db")
	t.Setenv("CLIPERS_HTTP_TIMEOUT", "5s")
	t.Setenv("CLIPERS_PAGE_SIZE", "25")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8080/api", cfg.ServerURL)
	assert.Equal(t, "/tmp/test.db", cfg.DBPath)
	assert.Equal(t, 5*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, 25, cfg.PageSize)
}

// TestLoad_InvalidValue проверяет ошибку разбора некорректного значения
func TestLoad_InvalidValue(t *testing.T) {
	t.Setenv("CLIPERS_HTTP_TIMEOUT", "not-a-duration")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse env")
}
