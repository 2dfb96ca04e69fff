// Команда shorten отправляет один URL в сервис сокращения и печатает ответ.
//
//	shorten [-b http://127.0.0.1:8090] [-t 10s] <long-url>
//
// При ошибке текст ошибки печатается в stderr без изменений,
// код возврата ненулевой.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/m-molecula741/tinyurl/internal/app/client"
	"github.com/m-molecula741/tinyurl/internal/app/config"
	"github.com/m-molecula741/tinyurl/internal/app/logger"
	"github.com/m-molecula741/tinyurl/internal/app/render"
	"github.com/m-molecula741/tinyurl/internal/app/usecase"
)

var errSubmissionFailed = errors.New("submission failed")

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		exit(os.Stderr, err)
	}
}

// exit печатает причину ошибки и завершает процесс с кодом 1
func exit(stderr io.Writer, err error) {
	reportError(stderr, err)
	os.Exit(1)
}

// reportError печатает ошибку, если она ещё не показана.
// Текст ошибки сокращения уже выведен как есть, повторять его нельзя.
func reportError(stderr io.Writer, err error) {
	if errors.Is(err, errSubmissionFailed) {
		return
	}
	fmt.Fprintf(stderr, "shorten: %v\n", err)
}

func run(args []string, stdout, stderr io.Writer) error {
	cfg, err := config.Load("shorten", args)
	if err != nil {
		return err
	}

	// логи не должны смешиваться с результатом в stdout
	if err := logger.InitWithWriter(stderr, cfg.LogLevel); err != nil {
		return err
	}

	return shorten(context.Background(), cfg, client.NewClient(cfg.APIBase), stdout, stderr)
}

func shorten(ctx context.Context, cfg *config.Config, shortener usecase.Shortener, stdout, stderr io.Writer) error {
	// URL из нескольких аргументов склеивается, как если бы его ввели в поле
	view := usecase.NewView(shortener)
	view.SetInput(strings.Join(cfg.Args, " "))

	if cfg.RequestTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.RequestTimeout)
		defer cancel()
	}

	snap := view.Submit(ctx)

	if snap.State.Kind() == usecase.StateError {
		if err := render.Text(stderr, snap); err != nil {
			return err
		}
		fmt.Fprintln(stderr)
		return errSubmissionFailed
	}

	return render.Text(stdout, snap)
}
