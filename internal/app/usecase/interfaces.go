// Package usecase предоставляет модель представления формы сокращения URL
package usecase

import "context"

//go:generate mockgen -destination=mocks/mock_shortener.go -package=mocks github.com/m-molecula741/tinyurl/internal/app/usecase Shortener

// Shortener определяет интерфейс клиента сервиса сокращения.
// Ошибка всегда имеет тип *SubmissionError.
type Shortener interface {
	Shorten(ctx context.Context, longURL string) (ShortenResult, error)
}
