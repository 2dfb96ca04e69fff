// Package client вызывает удалённый сервис сокращения URL
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/m-molecula741/tinyurl/internal/app/logger"
	"github.com/m-molecula741/tinyurl/internal/app/usecase"
)

// ShortenPath путь эндпоинта сокращения относительно базового адреса
const ShortenPath = "/api/shorten"

// Client выполняет запросы к сервису сокращения.
// Базовый адрес задаётся при создании и дальше не меняется.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Option настраивает Client
type Option func(*Client)

// WithHTTPClient подменяет HTTP-клиент, по умолчанию http.DefaultClient
func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) {
		cl.httpClient = c
	}
}

func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: http.DefaultClient,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Endpoint возвращает полный адрес эндпоинта сокращения
func (c *Client) Endpoint() string {
	return c.baseURL + ShortenPath
}

// Shorten отправляет longURL как есть и возвращает ответ сервиса.
//
// Таймаут и отмена задаются через ctx, повторов нет. Любая ошибка
// имеет тип *usecase.SubmissionError: при неуспешном статусе Detail
// содержит тело ответа, иначе описание транспортной ошибки.
func (c *Client) Shorten(ctx context.Context, longURL string) (usecase.ShortenResult, error) {
	var result usecase.ShortenResult

	payload, err := json.Marshal(usecase.ShortenRequest{LongURL: longURL})
	if err != nil {
		return result, usecase.NewTransportError(err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Endpoint(), bytes.NewReader(payload))
	if err != nil {
		return result, usecase.NewTransportError(err)
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		logger.Debug().
			Str("url", req.URL.String()).
			Err(err).
			Dur("duration", time.Since(start)).
			Msg("shorten request failed")
		return result, usecase.NewTransportError(err)
	}
	defer resp.Body.Close()

	logger.Debug().
		Str("url", req.URL.String()).
		Int("status", resp.StatusCode).
		Dur("duration", time.Since(start)).
		Msg("shorten request done")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return result, usecase.NewTransportError(err)
		}
		return result, usecase.NewApplicationError(resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return usecase.ShortenResult{}, usecase.NewTransportError(err)
	}

	return result, nil
}
