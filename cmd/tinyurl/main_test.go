package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m-molecula741/tinyurl/internal/app/config"
	"github.com/m-molecula741/tinyurl/internal/app/logger"
)

func TestRun_InvalidConfigIsLogged(t *testing.T) {
	var out bytes.Buffer

	err := run([]string{"-b", "ftp://nohost"}, &out)
	require.ErrorIs(t, err, config.ErrInvalidAPIBase)

	// main пишет ошибку тем же логгером, что настроен в run
	logger.Error().Err(err).Msg("Сервер завершился с ошибкой")
	assert.Contains(t, out.String(), "API base address must be an absolute http(s) URL")
}
