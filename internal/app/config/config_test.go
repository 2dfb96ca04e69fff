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
	cfg, err := Load("test", nil)
	require.NoError(t, err)

	assert.Equal(t, "localhost:5173", cfg.ServerAddress)
	assert.Equal(t, "http://127.0.0.1:8090", cfg.APIBase)
	assert.Equal(t, 10*time.Second, cfg.RequestTimeout)
	assert.Equal(t, 24*time.Hour, cfg.SessionTTL)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Len(t, cfg.SessionKey, 64, "generated key is 32 random bytes in hex")
	assert.Empty(t, cfg.Args)
}

func TestLoad_Env(t *testing.T) {
	t.Setenv("SERVER_ADDRESS", ":9000")
	t.Setenv("API_BASE", "https://short.example.com")
	t.Setenv("REQUEST_TIMEOUT", "3s")
	t.Setenv("SESSION_KEY", "secret")
	t.Setenv("SESSION_TTL", "1h")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load("test", nil)
	require.NoError(t, err)

	assert.Equal(t, ":9000", cfg.ServerAddress)
	assert.Equal(t, "https://short.example.com", cfg.APIBase)
	assert.Equal(t, 3*time.Second, cfg.RequestTimeout)
	assert.Equal(t, "secret", cfg.SessionKey)
	assert.Equal(t, time.Hour, cfg.SessionTTL)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoad_ViteAPIBase(t *testing.T) {
	t.Setenv("VITE_API_BASE", "http://vite.local:8090")

	cfg, err := Load("test", nil)
	require.NoError(t, err)
	assert.Equal(t, "http://vite.local:8090", cfg.APIBase)

	t.Setenv("API_BASE", "http://api.local")
	cfg, err = Load("test", nil)
	require.NoError(t, err)
	assert.Equal(t, "http://api.local", cfg.APIBase, "API_BASE wins over VITE_API_BASE")
}

func TestLoad_FlagsOverrideEnv(t *testing.T) {
	t.Setenv("API_BASE", "http://from-env")

	cfg, err := Load("test", []string{"-a", "127.0.0.1:7000", "-b", "http://from-flag", "-t", "0", "-l", "warn", "https://example.com/long"})
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:7000", cfg.ServerAddress)
	assert.Equal(t, "http://from-flag", cfg.APIBase)
	assert.Equal(t, time.Duration(0), cfg.RequestTimeout)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, []string{"https://example.com/long"}, cfg.Args)
}

func TestLoad_DotEnv(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("API_BASE=http://dotenv.local\nLOG_LEVEL=error\n"), 0o600))

	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load("test", nil)
	require.NoError(t, err)
	assert.Equal(t, "http://dotenv.local", cfg.APIBase)
	assert.Equal(t, "debug", cfg.LogLevel, "environment wins over .env")
}

func TestLoad_BadFlag(t *testing.T) {
	_, err := Load("test", []string{"-unknown"})
	assert.Error(t, err)
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr error
	}{
		{
			name: "корректная конфигурация",
			cfg:  Config{APIBase: "http://127.0.0.1:8090", RequestTimeout: time.Second},
		},
		{
			name:    "пустой адрес",
			cfg:     Config{},
			wantErr: ErrEmptyAPIBase,
		},
		{
			name:    "адрес без схемы",
			cfg:     Config{APIBase: "127.0.0.1:8090"},
			wantErr: ErrInvalidAPIBase,
		},
		{
			name:    "неподдерживаемая схема",
			cfg:     Config{APIBase: "ftp://example.com"},
			wantErr: ErrInvalidAPIBase,
		},
		{
			name:    "отрицательный таймаут",
			cfg:     Config{APIBase: "https://example.com", RequestTimeout: -time.Second},
			wantErr: ErrNegativeTimeout,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
