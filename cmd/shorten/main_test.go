package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m-molecula741/tinyurl/internal/app/client"
	"github.com/m-molecula741/tinyurl/internal/app/config"
)

func TestShorten(t *testing.T) {
	tests := []struct {
		name        string
		args        []string
		status      int
		body        string
		wantLongURL string
		wantStdout  string
		wantStderr  string
		wantErr     bool
	}{
		{
			name:        "успешное сокращение",
			args:        []string{"example.com/a/b"},
			status:      http.StatusOK,
			body:        `{"message":"OK","short_url":"https://t.ly/abc","code":"abc","reduced":true}`,
			wantLongURL: "example.com/a/b",
			wantStdout:  "OK\nLink: https://t.ly/abc\nCode: abc\nReduced: true\n",
		},
		{
			name:        "пустой ввод и ошибка сервиса",
			args:        nil,
			status:      http.StatusUnprocessableEntity,
			body:        "long_url is required",
			wantLongURL: "",
			wantStderr:  "long_url is required\n",
			wantErr:     true,
		},
		{
			name:        "аргументы склеиваются и обрезаются",
			args:        []string{" https://example.com/a", "b "},
			status:      http.StatusOK,
			body:        `{"message":"m","short_url":"https://t.ly/q","reduced":false}`,
			wantLongURL: "https://example.com/a b",
			wantStdout:  "m\nLink: https://t.ly/q\nReduced: false\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got map[string]string
			backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				raw, _ := io.ReadAll(r.Body)
				_ = json.Unmarshal(raw, &got)
				w.WriteHeader(tt.status)
				_, _ = io.WriteString(w, tt.body)
			}))
			defer backend.Close()

			cfg := &config.Config{APIBase: backend.URL, Args: tt.args}
			var stdout, stderr bytes.Buffer

			err := shorten(context.Background(), cfg, client.NewClient(cfg.APIBase), &stdout, &stderr)

			if tt.wantErr {
				assert.ErrorIs(t, err, errSubmissionFailed)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, map[string]string{"long_url": tt.wantLongURL}, got)
			assert.Equal(t, tt.wantStdout, stdout.String())
			assert.Equal(t, tt.wantStderr, stderr.String())
		})
	}
}

func TestShorten_Unreachable(t *testing.T) {
	backend := httptest.NewServer(http.NotFoundHandler())
	addr := backend.URL
	backend.Close()

	cfg := &config.Config{APIBase: addr}
	var stdout, stderr bytes.Buffer

	err := shorten(context.Background(), cfg, client.NewClient(addr), &stdout, &stderr)

	assert.ErrorIs(t, err, errSubmissionFailed)
	assert.Empty(t, stdout.String())
	assert.Contains(t, stderr.String(), "connection refused")
}

func TestRun_InvalidConfig(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr error
		wantMsg string
	}{
		{
			name:    "схема не http",
			args:    []string{"-b", "ftp://nohost", "example.com"},
			wantErr: config.ErrInvalidAPIBase,
			wantMsg: "API base address must be an absolute http(s) URL",
		},
		{
			name:    "отрицательный таймаут",
			args:    []string{"-t", "-1s", "example.com"},
			wantErr: config.ErrNegativeTimeout,
			wantMsg: "request timeout must not be negative",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer

			err := run(tt.args, &stdout, &stderr)
			require.ErrorIs(t, err, tt.wantErr)

			reportError(&stderr, err)
			assert.Empty(t, stdout.String())
			assert.Contains(t, stderr.String(), tt.wantMsg)
		})
	}
}

func TestReportError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{name: "ошибка сокращения уже напечатана", err: errSubmissionFailed, want: ""},
		{name: "обёрнутая ошибка сокращения", err: fmt.Errorf("wrap: %w", errSubmissionFailed), want: ""},
		{name: "прочие ошибки печатаются", err: errors.New("boom"), want: "shorten: boom\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stderr bytes.Buffer
			reportError(&stderr, tt.err)
			assert.Equal(t, tt.want, stderr.String())
		})
	}
}

func TestRun_ErrorTextNotRepeated(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = io.WriteString(w, "invalid url")
	}))
	defer backend.Close()

	t.Setenv("LOG_LEVEL", "info")

	var stdout, stderr bytes.Buffer
	err := run([]string{"-b", backend.URL, "bad"}, &stdout, &stderr)
	require.ErrorIs(t, err, errSubmissionFailed)

	reportError(&stderr, err)
	assert.Equal(t, "invalid url\n", stderr.String())
}
