package usecase

import (
	"context"
	"strings"
	"sync"

	"github.com/m-molecula741/tinyurl/internal/app/logger"
)

// View модель формы сокращения: введённый URL и состояние последней отправки.
// Безопасна для конкурентного использования.
type View struct {
	shortener Shortener

	mu    sync.Mutex
	input string
	state State
	seq   uint64
}

func NewView(shortener Shortener) *View {
	return &View{
		shortener: shortener,
		state:     Idle(),
	}
}

// SetInput сохраняет ввод пользователя как есть.
// Разрешено в любой момент, в том числе во время отправки.
func (v *View) SetInput(input string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.input = input
}

func (v *View) Input() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.input
}

func (v *View) Snapshot() Snapshot {
	v.mu.Lock()
	defer v.mu.Unlock()
	return Snapshot{Input: v.input, State: v.state}
}

// Submit отправляет текущий ввод на сокращение.
//
// Перед запросом состояние сбрасывается в Idle. Каждая отправка получает
// порядковый номер, ответ применяется только если номер всё ещё последний:
// ответы на более ранние отправки отбрасываются.
func (v *View) Submit(ctx context.Context) Snapshot {
	v.mu.Lock()
	v.seq++
	seq := v.seq
	v.state = Idle()
	longURL := strings.TrimSpace(v.input)
	v.mu.Unlock()

	result, err := v.shortener.Shorten(ctx, longURL)

	next := Succeeded(result)
	if err != nil {
		next = Failed(errorText(err))
	}

	v.mu.Lock()
	defer v.mu.Unlock()

	if seq != v.seq {
		logger.Debug().
			Uint64("seq", seq).
			Uint64("latest", v.seq).
			Msg("stale submission discarded")
		return Snapshot{Input: v.input, State: v.state}
	}

	v.state = next
	return Snapshot{Input: v.input, State: v.state}
}
