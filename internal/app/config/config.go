package config

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"flag"
	"fmt"
	"net/url"
	"time"

	"github.com/spf13/viper"
)

const (
	defaultServerAddress  = "localhost:5173"
	defaultAPIBase        = "http://127.0.0.1:8090"
	defaultRequestTimeout = 10 * time.Second
	defaultSessionTTL     = 24 * time.Hour
	defaultLogLevel       = "info"
)

const (
	envServerAddress  = "SERVER_ADDRESS"
	envAPIBase        = "API_BASE"
	envViteAPIBase    = "VITE_API_BASE"
	envRequestTimeout = "REQUEST_TIMEOUT"
	envSessionKey     = "SESSION_KEY"
	envSessionTTL     = "SESSION_TTL"
	envLogLevel       = "LOG_LEVEL"
)

var (
	ErrEmptyAPIBase    = errors.New("API base address is empty")
	ErrInvalidAPIBase  = errors.New("API base address must be an absolute http(s) URL")
	ErrNegativeTimeout = errors.New("request timeout must not be negative")
)

type Config struct {
	ServerAddress  string        // адрес HTTP-сервера фронтенда
	APIBase        string        // базовый адрес сервиса сокращения
	RequestTimeout time.Duration // таймаут одного запроса к сервису, 0 без таймаута
	SessionKey     string        // ключ шифрования куки сессии
	SessionTTL     time.Duration // время жизни неактивной сессии
	LogLevel       string
	Args           []string // позиционные аргументы командной строки
}

// Load собирает конфигурацию. Приоритет по возрастанию: значения по
// умолчанию, файл .env, переменные окружения, флаги.
func Load(name string, args []string) (*Config, error) {
	v := viper.New()

	v.SetDefault(envServerAddress, defaultServerAddress)
	v.SetDefault(envAPIBase, defaultAPIBase)
	v.SetDefault(envRequestTimeout, defaultRequestTimeout)
	v.SetDefault(envSessionKey, "")
	v.SetDefault(envSessionTTL, defaultSessionTTL)
	v.SetDefault(envLogLevel, defaultLogLevel)

	// имя переменной из исходного фронтенда тоже принимается
	if err := v.BindEnv(envAPIBase, envAPIBase, envViteAPIBase); err != nil {
		return nil, err
	}
	v.AutomaticEnv()

	// .env не переопределяет переменные окружения
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	_ = v.ReadInConfig()

	cfg := &Config{
		ServerAddress:  v.GetString(envServerAddress),
		APIBase:        v.GetString(envAPIBase),
		RequestTimeout: v.GetDuration(envRequestTimeout),
		SessionKey:     v.GetString(envSessionKey),
		SessionTTL:     v.GetDuration(envSessionTTL),
		LogLevel:       v.GetString(envLogLevel),
	}

	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.StringVar(&cfg.ServerAddress, "a", cfg.ServerAddress, "HTTP server address")
	fs.StringVar(&cfg.APIBase, "b", cfg.APIBase, "base address of the shortening service")
	fs.DurationVar(&cfg.RequestTimeout, "t", cfg.RequestTimeout, "timeout of one shortening request, 0 disables it")
	fs.StringVar(&cfg.SessionKey, "k", cfg.SessionKey, "session cookie encryption key")
	fs.DurationVar(&cfg.SessionTTL, "ttl", cfg.SessionTTL, "idle session lifetime")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	cfg.Args = fs.Args()

	if cfg.SessionKey == "" {
		key, err := randomKey()
		if err != nil {
			return nil, fmt.Errorf("cannot generate session key: %w", err)
		}
		cfg.SessionKey = key
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate проверяет корректность конфигурации
func (c *Config) Validate() error {
	if c.APIBase == "" {
		return ErrEmptyAPIBase
	}

	u, err := url.Parse(c.APIBase)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidAPIBase, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: %q", ErrInvalidAPIBase, c.APIBase)
	}

	if c.RequestTimeout < 0 {
		return ErrNegativeTimeout
	}

	return nil
}

func randomKey() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
