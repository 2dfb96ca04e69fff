package usecase

import (
	"errors"
	"fmt"
)

// ErrorKind происхождение ошибки отправки
type ErrorKind int

const (
	// ErrorTransport запрос не отправлен или ответ не получен
	ErrorTransport ErrorKind = iota
	// ErrorApplication сервис ответил неуспешным статусом
	ErrorApplication
)

// SubmissionError единая ошибка отправки URL на сокращение.
// Detail содержит тело ответа как есть либо описание транспортной ошибки.
type SubmissionError struct {
	Kind       ErrorKind
	StatusCode int
	Detail     string
	Err        error
}

// NewTransportError создаёт ошибку транспорта из исходной ошибки
func NewTransportError(err error) *SubmissionError {
	detail := ""
	if err != nil {
		detail = err.Error()
	}
	return &SubmissionError{Kind: ErrorTransport, Detail: detail, Err: err}
}

// NewApplicationError создаёт ошибку по неуспешному ответу сервиса
func NewApplicationError(statusCode int, body string) *SubmissionError {
	return &SubmissionError{Kind: ErrorApplication, StatusCode: statusCode, Detail: body}
}

// Error возвращает Detail, а если он пуст, строковое представление ошибки
func (e *SubmissionError) Error() string {
	if e.Detail != "" {
		return e.Detail
	}
	if e.Kind == ErrorApplication {
		return fmt.Sprintf("unexpected status %d", e.StatusCode)
	}
	return "transport error"
}

func (e *SubmissionError) Unwrap() error {
	return e.Err
}

// IsSubmissionError проверяет, является ли ошибка ошибкой отправки
func IsSubmissionError(err error) (*SubmissionError, bool) {
	var subErr *SubmissionError
	if errors.As(err, &subErr) {
		return subErr, true
	}
	return nil, false
}

// errorText текст ошибки для показа пользователю
func errorText(err error) string {
	if subErr, ok := IsSubmissionError(err); ok {
		return subErr.Error()
	}
	if msg := err.Error(); msg != "" {
		return msg
	}
	return fmt.Sprintf("%T", err)
}
