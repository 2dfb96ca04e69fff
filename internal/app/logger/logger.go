package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// до вызова Init логгер ничего не пишет
var log = zerolog.Nop()

// Init настраивает логгер с заданным уровнем. Неизвестный уровень
// заменяется на info, а ошибка разбора возвращается вызывающему.
func Init(level string) error {
	return InitWithWriter(os.Stdout, level)
}

// InitWithWriter как Init, но пишет в out
func InitWithWriter(out io.Writer, level string) error {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}

	output := zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339, NoColor: out != os.Stdout}
	log = zerolog.New(output).Level(lvl).With().Timestamp().Logger()

	return err
}

func Debug() *zerolog.Event {
	return log.Debug()
}

func Info() *zerolog.Event {
	return log.Info()
}

func Warn() *zerolog.Event {
	return log.Warn()
}

func Error() *zerolog.Event {
	return log.Error()
}

func Fatal() *zerolog.Event {
	return log.Fatal()
}

func GetLogger() *zerolog.Logger {
	return &log
}
